package protocol

import (
	"testing"

	"github.com/danmuck/towerctl/internal/testutil/testlog"
)

func TestWireForms(t *testing.T) {
	testlog.Start(t)

	if got := QueryLine("bravo"); got != "?bravo" {
		t.Fatalf("unexpected query line: %q", got)
	}
	if got := RegisterLine("bravo", "4001"); got != "!bravo:4001" {
		t.Fatalf("unexpected register line: %q", got)
	}
	if got := EntryLine("bravo", "4001"); got != "bravo:4001" {
		t.Fatalf("unexpected entry line: %q", got)
	}
}

func TestParseRegistration(t *testing.T) {
	testlog.Start(t)

	name, port, ok := ParseRegistration("bravo:4001")
	if !ok || name != "bravo" || port != "4001" {
		t.Fatalf("unexpected parse: name=%q port=%q ok=%v", name, port, ok)
	}

	rejected := []string{
		"bravo",       // no colon
		"bravo:",      // empty port
		":4001",       // empty name
		"bravo:40a1",  // non-digit port
		"bravo:40:01", // second colon lands in the port
	}
	for _, body := range rejected {
		if _, _, ok := ParseRegistration(body); ok {
			t.Fatalf("expected rejection: %q", body)
		}
	}
}
