package main

import (
	"errors"
	"flag"
	"os"
	"strings"
	"time"

	"github.com/google/uuid"
)

type migrateOptions struct {
	Timeout time.Duration
	Status  bool
}

type dbSeedOptions struct {
	Timeout     time.Duration
	AllowRemote bool
}

type grantCreditsOptions struct {
	EmployerID string
	Amount     int
	// ExpiresIn sets the new expiry relative to now; zero keeps the current expiry.
	ExpiresIn time.Duration
	Actor     string
	Timeout   time.Duration
}

type clearCacheOptions struct {
	JobID   string
	Timeout time.Duration
}

func newFlagSet(name string) *flag.FlagSet {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.SetOutput(os.Stderr)
	return fs
}

func parseMigrateFlags(args []string) (migrateOptions, error) {
	fs := newFlagSet("migrate")

	opts := migrateOptions{}
	fs.DurationVar(&opts.Timeout, "timeout", defaultMigrationTimeout, "Maximum duration to wait for migrations to complete")
	fs.BoolVar(&opts.Status, "status", false, "List embedded migrations and whether each is applied, without migrating")

	if err := fs.Parse(args); err != nil {
		return migrateOptions{}, err
	}
	if opts.Timeout <= 0 {
		return migrateOptions{}, errors.New("--timeout must be greater than zero")
	}
	return opts, nil
}

func parseDBSeedFlags(args []string) (dbSeedOptions, error) {
	fs := newFlagSet("db-seed")

	opts := dbSeedOptions{}
	fs.DurationVar(&opts.Timeout, "timeout", defaultMigrationTimeout, "Maximum duration to wait for seeding to complete")
	fs.BoolVar(&opts.AllowRemote, "allow-remote", false, "Permit running against database hosts that do not look local")

	if err := fs.Parse(args); err != nil {
		return dbSeedOptions{}, err
	}
	if opts.Timeout <= 0 {
		return dbSeedOptions{}, errors.New("--timeout must be greater than zero")
	}
	return opts, nil
}

func parseGrantCreditsFlags(args []string) (grantCreditsOptions, error) {
	fs := newFlagSet("grant-credits")

	opts := grantCreditsOptions{}
	fs.StringVar(&opts.EmployerID, "employer", "", "Employer id (UUID) to credit")
	fs.IntVar(&opts.Amount, "amount", 0, "Number of ad credits to add")
	fs.DurationVar(&opts.ExpiresIn, "expires-in", 0, "Set credit expiry this far from now (e.g. 720h); omit to keep the current expiry")
	fs.StringVar(&opts.Actor, "actor", "admin-cli", "Actor recorded on the audit trail")
	fs.DurationVar(&opts.Timeout, "timeout", time.Minute, "Maximum duration for the grant")

	if err := fs.Parse(args); err != nil {
		return grantCreditsOptions{}, err
	}

	opts.EmployerID = strings.TrimSpace(opts.EmployerID)
	if _, err := uuid.Parse(opts.EmployerID); err != nil {
		return grantCreditsOptions{}, errors.New("--employer must be a valid UUID")
	}
	if opts.Amount < 1 {
		return grantCreditsOptions{}, errors.New("--amount must be at least 1")
	}
	if opts.ExpiresIn < 0 {
		return grantCreditsOptions{}, errors.New("--expires-in must not be negative")
	}
	if opts.Timeout <= 0 {
		return grantCreditsOptions{}, errors.New("--timeout must be greater than zero")
	}
	return opts, nil
}

func parseClearCacheFlags(args []string) (clearCacheOptions, error) {
	fs := newFlagSet("clear-candidate-cache")

	opts := clearCacheOptions{}
	fs.StringVar(&opts.JobID, "job", "", "Only drop the cached list for this job id")
	fs.DurationVar(&opts.Timeout, "timeout", 2*time.Minute, "Maximum duration for the purge")

	if err := fs.Parse(args); err != nil {
		return clearCacheOptions{}, err
	}

	opts.JobID = strings.TrimSpace(opts.JobID)
	if opts.JobID != "" {
		if _, err := uuid.Parse(opts.JobID); err != nil {
			return clearCacheOptions{}, errors.New("--job must be a valid UUID")
		}
	}
	if opts.Timeout <= 0 {
		return clearCacheOptions{}, errors.New("--timeout must be greater than zero")
	}
	return opts, nil
}
