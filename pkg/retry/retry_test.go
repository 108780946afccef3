package retry

import (
	"context"
	"errors"
	"io"
	"testing"
	"time"

	"github.com/orgball2608/wallify-bot/pkg/logger"
)

func fastConfig() Config {
	return Config{
		MaxRetries:      3,
		InitialInterval: time.Millisecond,
		MaxInterval:     2 * time.Millisecond,
		Multiplier:      1.5,
	}
}

func TestDoRetriesUntilSuccess(t *testing.T) {
	log := logger.New(logger.Opts{Env: "production", Level: "error", Writer: io.Discard})
	calls := 0
	err := Do(context.Background(), log, "flaky", func() error {
		calls++
		if calls < 3 {
			return errors.New("temporary")
		}
		return nil
	}, fastConfig())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if calls != 3 {
		t.Errorf("calls = %d, want 3", calls)
	}
}

func TestDoStopsOnPermanent(t *testing.T) {
	log := logger.New(logger.Opts{Env: "production", Level: "error", Writer: io.Discard})
	sentinel := errors.New("unauthorized")
	calls := 0
	err := Do(context.Background(), log, "auth", func() error {
		calls++
		return Permanent(sentinel)
	}, fastConfig())
	if !errors.Is(err, sentinel) {
		t.Fatalf("err = %v, want %v", err, sentinel)
	}
	if calls != 1 {
		t.Errorf("calls = %d, want 1", calls)
	}
}

func TestDoGivesUpAfterMaxRetries(t *testing.T) {
	log := logger.New(logger.Opts{Env: "production", Level: "error", Writer: io.Discard})
	calls := 0
	err := Do(context.Background(), log, "down", func() error {
		calls++
		return errors.New("still down")
	}, fastConfig())
	if err == nil {
		t.Fatal("expected error")
	}
	if calls != 4 {
		t.Errorf("calls = %d, want 4", calls)
	}
}

func TestPermanentNil(t *testing.T) {
	if Permanent(nil) != nil {
		t.Error("Permanent(nil) should be nil")
	}
}
