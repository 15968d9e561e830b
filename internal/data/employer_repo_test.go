package data

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/target/jobmarket-api/internal/domain/credit"
	"github.com/target/jobmarket-api/internal/domain/model"
	apperrors "github.com/target/jobmarket-api/internal/errors"
	"github.com/target/jobmarket-api/internal/testutil"
)

func TestEmployerRepo_GrantCredits(t *testing.T) {
	testutil.SkipIfNoTestDB(t)

	testutil.WithAutoDB(t, func(db *sql.DB) {
		ctx := context.Background()
		now := testutil.TestTime()
		repo := NewEmployerRepoWithTimeProvider(db, NewFixedTimeProvider(now))
		jobs := NewJobRepoWithTimeProvider(db, NewFixedTimeProvider(now))

		past := now.Add(-24 * time.Hour)
		employerID := testutil.InsertEmployer(t, db, testutil.EmployerSeed{AdCredit: 0, ExpiresAt: &past})

		_, err := jobs.Create(ctx, testutil.NewJobRequest(employerID).Build())
		require.True(t, credit.IsExhausted(err))

		t.Run("amount without expiry keeps the old expiry", func(t *testing.T) {
			got, err := repo.GrantCredits(ctx, model.GrantCreditsRequest{EmployerID: employerID, Amount: 2})
			require.NoError(t, err)
			assert.Equal(t, 2, got.AdCredit)
			assert.Equal(t, 2, got.TotalAdCredit)
			require.NotNil(t, got.CreditExpiryAt)
			assert.True(t, got.CreditExpiryAt.Equal(past))
		})

		t.Run("new expiry reopens posting", func(t *testing.T) {
			future := now.Add(30 * 24 * time.Hour)
			got, err := repo.GrantCredits(ctx, model.GrantCreditsRequest{
				EmployerID: employerID, Amount: 1, ExpiresAt: &future,
			})
			require.NoError(t, err)
			assert.Equal(t, 3, got.AdCredit)
			assert.Equal(t, 3, got.TotalAdCredit)

			_, err = jobs.Create(ctx, testutil.NewJobRequest(employerID).Build())
			require.NoError(t, err)

			after, err := repo.GetByID(ctx, employerID)
			require.NoError(t, err)
			assert.Equal(t, 2, after.AdCredit)
			assert.Equal(t, 3, after.TotalAdCredit)
		})

		t.Run("rejects non-positive amount", func(t *testing.T) {
			_, err := repo.GrantCredits(ctx, model.GrantCreditsRequest{EmployerID: employerID, Amount: 0})
			assert.True(t, apperrors.IsValidation(err))
		})

		t.Run("unknown employer", func(t *testing.T) {
			_, err := repo.GrantCredits(ctx, model.GrantCreditsRequest{
				EmployerID: "0b7c1c53-2f6e-4b8b-9f7d-3d1c2e4a5b6c", Amount: 1,
			})
			assert.True(t, apperrors.IsNotFound(err))
		})
	})
}

func TestEmployerRepo_GetByIDs(t *testing.T) {
	testutil.SkipIfNoTestDB(t)

	testutil.WithAutoDB(t, func(db *sql.DB) {
		ctx := context.Background()
		repo := NewEmployerRepo(db)

		a := testutil.InsertEmployer(t, db, testutil.EmployerSeed{Name: "Acme"})
		b := testutil.InsertEmployer(t, db, testutil.EmployerSeed{Name: "Globex"})
		_, err := db.ExecContext(ctx, `UPDATE employers SET deleted_at = now() WHERE id = $1`, b)
		require.NoError(t, err)

		got, err := repo.GetByIDs(ctx, []string{a, b})
		require.NoError(t, err)
		assert.Len(t, got, 2)

		_, err = repo.GetByID(ctx, b)
		assert.True(t, apperrors.IsNotFound(err))

		empty, err := repo.GetByIDs(ctx, nil)
		require.NoError(t, err)
		assert.Empty(t, empty)
	})
}
