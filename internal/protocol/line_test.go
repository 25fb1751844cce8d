package protocol

import (
	"strings"
	"testing"

	"github.com/danmuck/towerctl/internal/testutil/testlog"
)

func TestValidMessage(t *testing.T) {
	testlog.Start(t)

	valid := []string{
		"NZ123\n",
		"a\n",
		strings.Repeat("x", MaxLineLen-1) + "\n",
	}
	for _, line := range valid {
		if !ValidMessage(line) {
			t.Fatalf("expected valid: %q", line)
		}
	}

	invalid := []string{
		"",
		"\n",
		"no terminator",
		"colon:inside\n",
		"carriage\rreturn\n",
		"embedded\nnewline\n",
		strings.Repeat("x", MaxLineLen) + "\n",
	}
	for _, line := range invalid {
		if ValidMessage(line) {
			t.Fatalf("expected invalid: %q", line)
		}
	}
}

func TestValidIdentifier(t *testing.T) {
	testlog.Start(t)

	if !ValidIdentifier("ZQN,VFR") {
		t.Fatalf("expected comma identifier valid")
	}
	for _, s := range []string{"a:b", "a\rb", "a\nb"} {
		if ValidIdentifier(s) {
			t.Fatalf("expected invalid identifier: %q", s)
		}
	}
}

func TestValidPort(t *testing.T) {
	testlog.Start(t)

	for _, s := range []string{"1", "4001", "65535"} {
		if !ValidPort(s) {
			t.Fatalf("expected valid port: %q", s)
		}
	}
	for _, s := range []string{"", "0", "65536", "-1", "40a1", "999999999999999999999"} {
		if ValidPort(s) {
			t.Fatalf("expected invalid port: %q", s)
		}
	}
}

func TestDigitString(t *testing.T) {
	testlog.Start(t)

	if !DigitString("0042") {
		t.Fatalf("expected digit string valid")
	}
	for _, s := range []string{"", "4x2", " 42"} {
		if DigitString(s) {
			t.Fatalf("expected invalid digit string: %q", s)
		}
	}
}
