package flight

import (
	"bufio"
	"bytes"
	"errors"
	"io"
	"net"
	"strings"
	"testing"

	"github.com/danmuck/towerctl/internal/mapper"
	"github.com/danmuck/towerctl/internal/testutil/testlog"
	"github.com/danmuck/towerctl/internal/tower"
)

func startTower(t *testing.T, id, info, mapperPort string) string {
	t.Helper()
	cfg := tower.DefaultServiceConfig()
	cfg.ID = id
	cfg.Info = info
	cfg.MapperPort = mapperPort
	pr, pw := io.Pipe()
	svc := tower.NewService(cfg)
	go func() {
		_ = svc.Run(pw)
	}()
	line, err := bufio.NewReader(pr).ReadString('\n')
	if err != nil {
		t.Fatalf("read tower port: %v", err)
	}
	return strings.TrimSpace(line)
}

func startMapper(t *testing.T) string {
	t.Helper()
	pr, pw := io.Pipe()
	svc := mapper.NewService(mapper.DefaultServiceConfig())
	go func() {
		_ = svc.Run(pw)
	}()
	line, err := bufio.NewReader(pr).ReadString('\n')
	if err != nil {
		t.Fatalf("read mapper port: %v", err)
	}
	return strings.TrimSpace(line)
}

func closedPort(t *testing.T) string {
	t.Helper()
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatalf("reserve port: %v", err)
	}
	_, port, err := net.SplitHostPort(ln.Addr().String())
	if err != nil {
		t.Fatalf("split addr: %v", err)
	}
	ln.Close()
	return port
}

func TestRunByLiteralPorts(t *testing.T) {
	testlog.Start(t)

	p1 := startTower(t, "ZQN", "ZQN,VFR", "")
	p2 := startTower(t, "AKL", "AKL,IFR", "")

	var out bytes.Buffer
	err := Run(Plan{ID: "NZ123", Destinations: []string{p1, p2}}, &out)
	if err != nil {
		t.Fatalf("run failed: %v", err)
	}
	want := "ZQN,VFR\nAKL,IFR\n"
	if out.String() != want {
		t.Fatalf("report mismatch: got %q want %q", out.String(), want)
	}
}

func TestRunResolvesNamesViaMapper(t *testing.T) {
	testlog.Start(t)

	mp := startMapper(t)
	startTower(t, "ZQN", "ZQN,VFR", mp)
	akl := startTower(t, "AKL", "AKL,IFR", mp)

	var out bytes.Buffer
	err := Run(Plan{ID: "NZ123", Mapper: mp, Destinations: []string{"ZQN", akl}}, &out)
	if err != nil {
		t.Fatalf("run failed: %v", err)
	}
	want := "ZQN,VFR\nAKL,IFR\n"
	if out.String() != want {
		t.Fatalf("report mismatch: got %q want %q", out.String(), want)
	}
}

func TestRunPartialFailureStillReportsRest(t *testing.T) {
	testlog.Start(t)

	p1 := startTower(t, "ZQN", "ZQN,VFR", "")
	dead := closedPort(t)
	p3 := startTower(t, "AKL", "AKL,IFR", "")

	var out bytes.Buffer
	err := Run(Plan{ID: "NZ123", Destinations: []string{p1, dead, p3}}, &out)
	if !errors.Is(err, ErrDestinationFailed) {
		t.Fatalf("expected ErrDestinationFailed, got %v", err)
	}
	want := "ZQN,VFR\nAKL,IFR\n"
	if out.String() != want {
		t.Fatalf("report mismatch: got %q want %q", out.String(), want)
	}
}

func TestRunUnknownNameAbortsAllDestinations(t *testing.T) {
	testlog.Start(t)

	mp := startMapper(t)
	live := startTower(t, "ZQN", "ZQN,VFR", "")

	var out bytes.Buffer
	err := Run(Plan{ID: "NZ123", Mapper: mp, Destinations: []string{live, "GHOST"}}, &out)
	if !errors.Is(err, ErrNoMapEntry) {
		t.Fatalf("expected ErrNoMapEntry, got %v", err)
	}
	if out.Len() != 0 {
		t.Fatalf("expected no report after resolution failure, got %q", out.String())
	}
}

func TestRunNamesWithoutMapper(t *testing.T) {
	testlog.Start(t)

	var out bytes.Buffer
	err := Run(Plan{ID: "NZ123", Destinations: []string{"ZQN"}}, &out)
	if !errors.Is(err, ErrMapperRequired) {
		t.Fatalf("expected ErrMapperRequired, got %v", err)
	}
}

func TestRunInvalidMapperPort(t *testing.T) {
	testlog.Start(t)

	var out bytes.Buffer
	err := Run(Plan{ID: "NZ123", Mapper: "0", Destinations: []string{"ZQN"}}, &out)
	if !errors.Is(err, ErrInvalidMapperPort) {
		t.Fatalf("expected ErrInvalidMapperPort, got %v", err)
	}
	err = Run(Plan{ID: "NZ123", Mapper: "not-a-port", Destinations: nil}, &out)
	if !errors.Is(err, ErrInvalidMapperPort) {
		t.Fatalf("expected ErrInvalidMapperPort, got %v", err)
	}
}

func TestRunUnreachableMapper(t *testing.T) {
	testlog.Start(t)

	var out bytes.Buffer
	err := Run(Plan{ID: "NZ123", Mapper: closedPort(t), Destinations: []string{"ZQN"}}, &out)
	if !errors.Is(err, ErrMapperUnreachable) {
		t.Fatalf("expected ErrMapperUnreachable, got %v", err)
	}
}

func TestRunEmptyPlanContactsMapperAnyway(t *testing.T) {
	testlog.Start(t)

	// the mapper connection is opened even with nothing to resolve, so an
	// unreachable mapper fails the run before the (empty) visit pass
	var out bytes.Buffer
	err := Run(Plan{ID: "NZ123", Mapper: closedPort(t), Destinations: nil}, &out)
	if !errors.Is(err, ErrMapperUnreachable) {
		t.Fatalf("expected ErrMapperUnreachable, got %v", err)
	}

	mp := startMapper(t)
	out.Reset()
	if err := Run(Plan{ID: "NZ123", Mapper: mp, Destinations: nil}, &out); err != nil {
		t.Fatalf("empty plan with live mapper failed: %v", err)
	}
	if out.Len() != 0 {
		t.Fatalf("expected empty report, got %q", out.String())
	}
}

func TestRunLeavesPlanUnmodified(t *testing.T) {
	testlog.Start(t)

	mp := startMapper(t)
	startTower(t, "ZQN", "ZQN,VFR", mp)

	dests := []string{"ZQN"}
	var out bytes.Buffer
	if err := Run(Plan{ID: "NZ123", Mapper: mp, Destinations: dests}, &out); err != nil {
		t.Fatalf("run failed: %v", err)
	}
	if dests[0] != "ZQN" {
		t.Fatalf("caller's destination slice was mutated: %v", dests)
	}
}
