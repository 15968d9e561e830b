package main

import (
	"bufio"
	"context"
	"database/sql"
	"errors"
	"fmt"
	"io"
	"net"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"text/tabwriter"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/target/jobmarket-api/internal/bootstrap"
	"github.com/target/jobmarket-api/internal/core"
	"github.com/target/jobmarket-api/internal/data"
	"github.com/target/jobmarket-api/internal/devseed"
	"github.com/target/jobmarket-api/internal/domain/model"
	"github.com/target/jobmarket-api/internal/migrate"
	"github.com/target/jobmarket-api/internal/service"
)

func runMigrations(cmdCtx *commandContext, args []string) error {
	opts, err := parseMigrateFlags(args)
	if err != nil {
		return err
	}

	return withDatabase(cmdCtx, opts.Timeout, func(ctx context.Context, db *sql.DB) error {
		if opts.Status {
			statuses, statusErr := migrate.Status(ctx, db)
			if statusErr != nil {
				return fmt.Errorf("migration status: %w", statusErr)
			}
			return printMigrationStatus(cmdCtx.Out, statuses)
		}

		cmdCtx.Logger.Info("running database migrations")
		if migrateErr := bootstrap.RunMigrations(ctx, db, cmdCtx.Logger); migrateErr != nil {
			return fmt.Errorf("run migrations: %w", migrateErr)
		}
		return nil
	})
}

func printMigrationStatus(w io.Writer, statuses []migrate.MigrationStatus) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	if err := writef(tw, "VERSION\tAPPLIED\n"); err != nil {
		return err
	}
	pending := 0
	for _, s := range statuses {
		applied := "yes"
		if !s.Applied {
			applied = "no"
			pending++
		}
		if err := writef(tw, "%s\t%s\n", s.Version, applied); err != nil {
			return err
		}
	}
	if err := tw.Flush(); err != nil {
		return err
	}
	return writef(w, "\n%d pending of %d\n", pending, len(statuses))
}

func runDBSeed(cmdCtx *commandContext, args []string) error {
	opts, err := parseDBSeedFlags(args)
	if err != nil {
		return err
	}

	if _, guardErr := guardRemoteHost(cmdCtx, opts.AllowRemote, "seed development data on the configured database"); guardErr != nil {
		return guardErr
	}

	return withDatabase(cmdCtx, opts.Timeout, func(ctx context.Context, db *sql.DB) error {
		cmdCtx.Logger.Info("ensuring database migrations are current")
		if migrateErr := bootstrap.RunMigrations(ctx, db, cmdCtx.Logger); migrateErr != nil {
			return fmt.Errorf("run migrations: %w", migrateErr)
		}

		cmdCtx.Logger.Info("seeding development data")
		if seedErr := devseed.Run(ctx, devseed.NewServices(db, cmdCtx.Logger), cmdCtx.Logger); seedErr != nil {
			return fmt.Errorf("seed data: %w", seedErr)
		}

		cmdCtx.Logger.Info("database seeding completed successfully")
		return nil
	})
}

func runGrantCredits(cmdCtx *commandContext, args []string) error {
	opts, err := parseGrantCreditsFlags(args)
	if err != nil {
		return err
	}

	req := buildGrantRequest(opts, cmdCtx.now())

	return withDatabase(cmdCtx, opts.Timeout, func(ctx context.Context, db *sql.DB) error {
		employers := service.MustNewEmployerService(service.EmployerServiceOptions{
			Repo: data.NewEmployerRepo(db),
			Audit: service.NewAuditService(service.AuditServiceOptions{
				Repo:   data.NewAuditRepo(db),
				Logger: cmdCtx.Logger,
			}),
			Logger: cmdCtx.Logger,
		})

		employer, grantErr := employers.GrantCredits(service.WithActor(ctx, opts.Actor), req)
		if grantErr != nil {
			return fmt.Errorf("grant credits: %w", grantErr)
		}
		return printEmployerCredit(cmdCtx.Out, employer)
	})
}

func buildGrantRequest(opts grantCreditsOptions, now time.Time) model.GrantCreditsRequest {
	req := model.GrantCreditsRequest{EmployerID: opts.EmployerID, Amount: opts.Amount}
	if opts.ExpiresIn > 0 {
		expires := now.Add(opts.ExpiresIn).UTC()
		req.ExpiresAt = &expires
	}
	return req
}

func printEmployerCredit(w io.Writer, e *model.Employer) error {
	expiry := "none"
	if e.CreditExpiryAt != nil {
		expiry = e.CreditExpiryAt.UTC().Format(time.RFC3339)
	}
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	if err := writef(tw, "EMPLOYER\tNAME\tAD CREDIT\tTOTAL\tEXPIRES\n"); err != nil {
		return err
	}
	if err := writef(tw, "%s\t%s\t%d\t%d\t%s\n", e.ID, e.Name, e.AdCredit, e.TotalAdCredit, expiry); err != nil {
		return err
	}
	return tw.Flush()
}

func runClearCandidateCache(cmdCtx *commandContext, args []string) error {
	opts, err := parseClearCacheFlags(args)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(cmdCtx.Ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()
	ctx, cancel := context.WithTimeout(ctx, opts.Timeout)
	defer cancel()

	client, err := bootstrap.ConnectRedis(bootstrap.DatabaseConfig{
		RedisConfig: cmdCtx.Config.Redis,
		Logger:      cmdCtx.Logger,
	})
	if err != nil {
		return fmt.Errorf("connect redis: %w", err)
	}
	defer func() {
		if closeErr := client.Close(); closeErr != nil {
			cmdCtx.Logger.Warn("redis close failed", "error", closeErr)
		}
	}()

	removed, err := clearCandidateCache(ctx, client, opts.JobID)
	if err != nil {
		return err
	}
	cmdCtx.Logger.Info("candidate cache cleared", "job_id", opts.JobID, "keys_removed", removed)
	return writef(cmdCtx.Out, "removed %d cached candidate list(s)\n", removed)
}

func clearCandidateCache(ctx context.Context, client redis.UniversalClient, jobID string) (int, error) {
	cache := core.NewCandidateCache(core.CandidateCacheOptions{Cache: data.NewRedisCacheRepo(client)})
	if jobID == "" {
		removed, err := cache.Purge(ctx)
		if err != nil {
			return 0, fmt.Errorf("purge candidate cache: %w", err)
		}
		return removed, nil
	}

	found, err := cache.Invalidate(ctx, jobID)
	if err != nil {
		return 0, fmt.Errorf("invalidate candidate cache: %w", err)
	}
	if !found {
		return 0, nil
	}
	return 1, nil
}

func withDatabase(
	cmdCtx *commandContext,
	timeout time.Duration,
	f func(context.Context, *sql.DB) error,
) error {
	ctx, stop := signal.NotifyContext(cmdCtx.Ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	db, err := bootstrap.ConnectDB(bootstrap.DatabaseConfig{
		DBConfig: cmdCtx.Config.Postgres,
		Logger:   cmdCtx.Logger,
	})
	if err != nil {
		return fmt.Errorf("connect db: %w", err)
	}
	defer func() {
		if cerr := db.Close(); cerr != nil {
			cmdCtx.Logger.Warn("db close failed", "error", cerr)
		}
	}()

	return f(ctx, db)
}

func (cmdCtx *commandContext) now() time.Time {
	if cmdCtx.Now == nil {
		return time.Now()
	}
	return cmdCtx.Now()
}

func guardRemoteHost(cmdCtx *commandContext, allow bool, action string) (bool, error) {
	remote := isLikelyRemoteHost(cmdCtx.Config.Postgres.Host)
	if !remote {
		return false, nil
	}
	if !allow {
		return true, fmt.Errorf(
			"refusing to run against potentially remote database host %q; re-run with --allow-remote if this is intentional",
			cmdCtx.Config.Postgres.Host,
		)
	}
	if err := requireRemoteHostConfirmation(os.Stdin, action, cmdCtx.Config.Postgres.Host); err != nil {
		return true, err
	}
	return true, nil
}

func isLikelyRemoteHost(host string) bool {
	h := strings.ToLower(strings.TrimSpace(host))
	if h == "" || h == "localhost" || strings.HasSuffix(h, ".local") {
		return false
	}
	if ip := net.ParseIP(h); ip != nil {
		return !ip.IsLoopback()
	}
	return true
}

func requireRemoteHostConfirmation(in io.Reader, action, host string) error {
	if err := writef(os.Stderr,
		"\nWARNING: database host %q does not look like a local address.\nThis operation will %s.\n",
		host, action,
	); err != nil {
		return fmt.Errorf("print remote host warning: %w", err)
	}
	if err := writef(os.Stderr, "Type %q to continue or press enter to abort: ", host); err != nil {
		return fmt.Errorf("print remote host prompt: %w", err)
	}
	resp, err := bufio.NewReader(in).ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		return fmt.Errorf("read confirmation: %w", err)
	}
	if strings.TrimSpace(resp) != host {
		return errors.New("aborted by user")
	}
	return nil
}

func writef(w io.Writer, format string, args ...any) error {
	_, err := fmt.Fprintf(w, format, args...)
	return err
}
