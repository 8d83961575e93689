package logging

import (
	"bytes"
	"strings"
	"testing"

	"github.com/rs/zerolog"
)

func TestRuntimeLoggerWritesFields(t *testing.T) {
	var buf bytes.Buffer
	logger := NewRuntimeLogger(zerolog.New(&buf))

	logger.WithField(MatchIDKey, "m1").WithField(SeatKey, 2).Info("played %s", "card_2_clubs")

	out := buf.String()
	for _, want := range []string{`"matchID":"m1"`, `"seat":2`, `"message":"played card_2_clubs"`, `"level":"info"`} {
		if !strings.Contains(out, want) {
			t.Fatalf("log output %q missing %q", out, want)
		}
	}
}

func TestRuntimeLoggerFieldsAreCopied(t *testing.T) {
	base := Nop()
	child := base.WithFields(map[string]interface{}{UserIDKey: "u1"})
	grandchild := child.WithField(RoundKey, 3)

	if len(base.Fields()) != 0 {
		t.Fatalf("base fields mutated: %v", base.Fields())
	}
	if len(child.Fields()) != 1 {
		t.Fatalf("child fields = %v", child.Fields())
	}
	if f := grandchild.Fields(); f[UserIDKey] != "u1" || f[RoundKey] != 3 {
		t.Fatalf("grandchild fields = %v", f)
	}
}

func TestGetZeroLoggerTagsName(t *testing.T) {
	t.Setenv("COLORIZE_LOG", "false")
	var buf bytes.Buffer
	GetZeroLogger("simulate", &buf).Info().Msg("hello")

	if out := buf.String(); !strings.Contains(out, "logger=simulate") || !strings.Contains(out, "hello") {
		t.Fatalf("unexpected console output %q", out)
	}
}
