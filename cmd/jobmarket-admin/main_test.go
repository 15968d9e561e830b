package main

import (
	"bytes"
	"context"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/target/jobmarket-api/internal/core"
	"github.com/target/jobmarket-api/internal/domain/model"
	"github.com/target/jobmarket-api/internal/migrate"
	"github.com/target/jobmarket-api/internal/testutil"
)

const employerID = "6f1c2f1e-3b7a-4d0e-9a51-2f0b8c1d4e01"

func TestPrintUsageListsEveryCommand(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, printUsage(&buf))

	out := buf.String()
	for name := range commands() {
		assert.Contains(t, out, name)
	}
	assert.Less(t, strings.Index(out, "clear-candidate-cache"), strings.Index(out, "migrate"),
		"commands are listed alphabetically")
}

func TestParseGrantCreditsFlags(t *testing.T) {
	tests := []struct {
		name    string
		args    []string
		want    grantCreditsOptions
		wantErr string
	}{
		{
			name: "amount with expiry",
			args: []string{"--employer", employerID, "--amount", "5", "--expires-in", "720h"},
			want: grantCreditsOptions{
				EmployerID: employerID, Amount: 5, ExpiresIn: 720 * time.Hour,
				Actor: "admin-cli", Timeout: time.Minute,
			},
		},
		{
			name: "custom actor keeps expiry",
			args: []string{"--employer", " " + employerID + " ", "--amount", "1", "--actor", "ops-7"},
			want: grantCreditsOptions{EmployerID: employerID, Amount: 1, Actor: "ops-7", Timeout: time.Minute},
		},
		{name: "missing employer", args: []string{"--amount", "5"}, wantErr: "--employer"},
		{name: "malformed employer", args: []string{"--employer", "42", "--amount", "5"}, wantErr: "--employer"},
		{name: "zero amount", args: []string{"--employer", employerID}, wantErr: "--amount"},
		{
			name:    "negative expiry",
			args:    []string{"--employer", employerID, "--amount", "2", "--expires-in", "-1h"},
			wantErr: "--expires-in",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := parseGrantCreditsFlags(tt.args)
			if tt.wantErr != "" {
				require.ErrorContains(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParseMigrateFlags(t *testing.T) {
	opts, err := parseMigrateFlags([]string{"--status"})
	require.NoError(t, err)
	assert.True(t, opts.Status)
	assert.Equal(t, defaultMigrationTimeout, opts.Timeout)

	_, err = parseMigrateFlags([]string{"--timeout", "0s"})
	require.ErrorContains(t, err, "--timeout")
}

func TestParseClearCacheFlags(t *testing.T) {
	opts, err := parseClearCacheFlags(nil)
	require.NoError(t, err)
	assert.Empty(t, opts.JobID)

	_, err = parseClearCacheFlags([]string{"--job", "not-a-uuid"})
	require.ErrorContains(t, err, "--job")
}

func TestBuildGrantRequest(t *testing.T) {
	now := testutil.TestTime()

	req := buildGrantRequest(grantCreditsOptions{EmployerID: employerID, Amount: 3, ExpiresIn: 48 * time.Hour}, now)
	require.NotNil(t, req.ExpiresAt)
	assert.Equal(t, now.Add(48*time.Hour).UTC(), *req.ExpiresAt)
	assert.Equal(t, 3, req.Amount)

	req = buildGrantRequest(grantCreditsOptions{EmployerID: employerID, Amount: 3}, now)
	assert.Nil(t, req.ExpiresAt, "no --expires-in leaves the current expiry untouched")
}

func TestPrintEmployerCredit(t *testing.T) {
	expiry := time.Date(2026, 11, 1, 0, 0, 0, 0, time.UTC)
	var buf bytes.Buffer
	require.NoError(t, printEmployerCredit(&buf, &model.Employer{
		ID: employerID, Name: "Ravi", AdCredit: 7, TotalAdCredit: 12, CreditExpiryAt: &expiry,
	}))

	out := buf.String()
	assert.Contains(t, out, employerID)
	assert.Contains(t, out, "2026-11-01T00:00:00Z")

	buf.Reset()
	require.NoError(t, printEmployerCredit(&buf, &model.Employer{ID: employerID}))
	assert.Contains(t, buf.String(), "none")
}

func TestPrintMigrationStatus(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, printMigrationStatus(&buf, []migrate.MigrationStatus{
		{Version: "0001_employers_employees", Applied: true},
		{Version: "0002_jobs", Applied: false},
	}))

	out := buf.String()
	assert.Contains(t, out, "0001_employers_employees  yes")
	assert.Contains(t, out, "0002_jobs                 no")
	assert.Contains(t, out, "1 pending of 2")
}

func TestIsLikelyRemoteHost(t *testing.T) {
	for _, host := range []string{"", "localhost", "127.0.0.1", "::1", "db.local", " LOCALHOST "} {
		assert.False(t, isLikelyRemoteHost(host), host)
	}
	for _, host := range []string{"10.0.0.5", "db.prod.example.com"} {
		assert.True(t, isLikelyRemoteHost(host), host)
	}
}

func TestRequireRemoteHostConfirmation(t *testing.T) {
	require.NoError(t, requireRemoteHostConfirmation(strings.NewReader("db.prod\n"), "seed", "db.prod"))
	require.Error(t, requireRemoteHostConfirmation(strings.NewReader("\n"), "seed", "db.prod"))
	require.Error(t, requireRemoteHostConfirmation(strings.NewReader(""), "seed", "db.prod"))
}

func TestClearCandidateCache(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}

	client := testutil.SetupTestRedis(t)
	t.Cleanup(func() { _ = client.Close() })
	ctx := context.Background()
	jobA := "11111111-1111-4111-8111-111111111111"
	jobB := "22222222-2222-4222-8222-222222222222"

	for _, id := range []string{jobA, jobB} {
		require.NoError(t, client.Set(ctx, core.CandidateCacheKey(id), "[]", time.Minute).Err())
	}
	require.NoError(t, client.Set(ctx, "unrelated:key", "x", time.Minute).Err())

	removed, err := clearCandidateCache(ctx, client, jobA)
	require.NoError(t, err)
	assert.Equal(t, 1, removed)

	removed, err = clearCandidateCache(ctx, client, jobA)
	require.NoError(t, err)
	assert.Equal(t, 0, removed)

	removed, err = clearCandidateCache(ctx, client, "")
	require.NoError(t, err)
	assert.Equal(t, 1, removed)

	exists, err := client.Exists(ctx, "unrelated:key").Result()
	require.NoError(t, err)
	assert.Equal(t, int64(1), exists)
}
