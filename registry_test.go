package embsh

import (
	"bytes"
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func nopCmd(inv *Invocation) int { return 0 }

func TestRegisterAndFind(t *testing.T) {
	r := New()
	if err := r.Register("reboot", nopCmd, nil, "Reboot the system"); err != nil {
		t.Fatalf("register: %v", err)
	}
	cmd := r.Find("reboot")
	if cmd == nil {
		t.Fatalf("expected to find reboot")
	}
	if cmd.Desc != "Reboot the system" {
		t.Fatalf("unexpected desc %q", cmd.Desc)
	}
	if r.Find("nope") != nil {
		t.Fatalf("did not expect a hit for unregistered name")
	}
}

func TestRegisterDuplicateName(t *testing.T) {
	r := New()
	if err := r.Register("status", nopCmd, nil, ""); err != nil {
		t.Fatalf("register: %v", err)
	}
	err := r.Register("status", nopCmd, nil, "")
	if !errors.Is(err, ErrDuplicateName) {
		t.Fatalf("expected ErrDuplicateName, got %v", err)
	}
}

func TestRegisterFull(t *testing.T) {
	r := New()
	for i := r.Len(); i < MaxCommands; i++ {
		if err := r.Register(fmt.Sprintf("cmd%02d", i), nopCmd, nil, ""); err != nil {
			t.Fatalf("register %d: %v", i, err)
		}
	}
	err := r.Register("overflow", nopCmd, nil, "")
	if !errors.Is(err, ErrRegistryFull) {
		t.Fatalf("expected ErrRegistryFull, got %v", err)
	}
}

func TestRegisterInvalidArguments(t *testing.T) {
	r := New()
	if err := r.Register("", nopCmd, nil, ""); !errors.Is(err, ErrInvalidArgument) {
		t.Fatalf("expected ErrInvalidArgument for empty name, got %v", err)
	}
	if err := r.Register("x", nil, nil, ""); !errors.Is(err, ErrInvalidArgument) {
		t.Fatalf("expected ErrInvalidArgument for nil fn, got %v", err)
	}
}

func TestForEachVisitsAllInOrder(t *testing.T) {
	r := New()
	names := []string{"alpha", "bravo", "charlie"}
	for _, n := range names {
		if err := r.Register(n, nopCmd, nil, ""); err != nil {
			t.Fatalf("register %s: %v", n, err)
		}
	}
	var got []string
	r.ForEach(func(c *Command) { got = append(got, c.Name) })
	want := append([]string{"help"}, names...)
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("iteration order mismatch (-want +got):\n%s", diff)
	}
	if r.Len() != len(want) {
		t.Fatalf("Len() = %d, want %d", r.Len(), len(want))
	}
}

func TestAutoComplete(t *testing.T) {
	r := New()
	for _, n := range []string{"reboot", "status_a", "status_b"} {
		if err := r.Register(n, nopCmd, nil, ""); err != nil {
			t.Fatalf("register %s: %v", n, err)
		}
	}

	tests := []struct {
		prefix      string
		max         int
		wantComp    string
		wantMatches int
	}{
		{"re", 64, "reboot", 1},
		{"sta", 64, "status_", 2},
		{"status_a", 64, "status_a", 1},
		{"zzz", 64, "", 0},
		{"", 64, "", 4}, // help, reboot, status_a, status_b share no prefix
		{"re", 4, "reb", 1},
	}
	for _, tt := range tests {
		comp, matches := r.AutoComplete(tt.prefix, tt.max)
		if comp != tt.wantComp || matches != tt.wantMatches {
			t.Fatalf("AutoComplete(%q, %d) = (%q, %d), want (%q, %d)",
				tt.prefix, tt.max, comp, matches, tt.wantComp, tt.wantMatches)
		}
	}
}

func TestHelpCommandOutput(t *testing.T) {
	r := New()
	if err := r.Register("reboot", nopCmd, nil, "Reboot the system"); err != nil {
		t.Fatalf("register: %v", err)
	}
	help := r.Find("help")
	if help == nil {
		t.Fatalf("help not auto-registered")
	}
	var out bytes.Buffer
	help.Fn(NewInvocation(&out, []string{"help"}, help.Data))
	text := out.String()
	if !strings.Contains(text, "reboot") || !strings.Contains(text, "- Reboot the system\r\n") {
		t.Fatalf("unexpected help output %q", text)
	}
	if !strings.Contains(text, "help") {
		t.Fatalf("help should list itself, got %q", text)
	}
}
