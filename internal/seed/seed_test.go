package seed

import (
	"context"
	"errors"
	"testing"

	"github.com/rs/zerolog"
)

type fakeSeeder struct {
	calls    int
	username string
	err      error
}

func (f *fakeSeeder) EnsureUser(_ context.Context, username, _ string) (int64, error) {
	f.calls++
	f.username = username
	return 1, f.err
}

func TestCreateDefaultData(t *testing.T) {
	ctx := context.Background()
	lgr := zerolog.Nop()

	skipped := &fakeSeeder{}
	if err := CreateDefaultData(ctx, skipped, Options{}, lgr); err != nil || skipped.calls != 0 {
		t.Errorf("unconfigured seed: err=%v calls=%d", err, skipped.calls)
	}

	seeded := &fakeSeeder{}
	if err := CreateDefaultData(ctx, seeded, Options{AdminUsername: "admin", AdminPassword: "pw"}, lgr); err != nil {
		t.Fatalf("CreateDefaultData() error = %v", err)
	}
	if seeded.calls != 1 || seeded.username != "admin" {
		t.Errorf("got calls=%d username=%q", seeded.calls, seeded.username)
	}

	failing := &fakeSeeder{err: errors.New("db down")}
	if err := CreateDefaultData(ctx, failing, Options{AdminUsername: "admin", AdminPassword: "pw"}, lgr); err == nil {
		t.Error("expected error")
	}
}
