package seed

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"
)

// AccountSeeder creates or resets an API account
type AccountSeeder interface {
	EnsureUser(ctx context.Context, username, password string) (int64, error)
}

// Options selects the default data to create
type Options struct {
	AdminUsername string
	AdminPassword string
}

// CreateDefaultData creates the bootstrap admin account when one is
// configured. Running it again resets the account's password.
func CreateDefaultData(ctx context.Context, accounts AccountSeeder, opts Options, lgr zerolog.Logger) error {
	if opts.AdminUsername == "" || opts.AdminPassword == "" {
		lgr.Info().Msg("No bootstrap account configured, skipping seed")
		return nil
	}

	lgr.Info().Str("username", opts.AdminUsername).Msg("Checking/Creating bootstrap account...")
	id, err := accounts.EnsureUser(ctx, opts.AdminUsername, opts.AdminPassword)
	if err != nil {
		lgr.Error().Err(err).Str("username", opts.AdminUsername).Msg("Error creating bootstrap account")
		return fmt.Errorf("failed to seed bootstrap account: %w", err)
	}

	lgr.Info().Int64("userID", id).Str("username", opts.AdminUsername).Msg("Bootstrap account ready")
	return nil
}
