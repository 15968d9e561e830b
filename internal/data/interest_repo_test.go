package data

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/target/jobmarket-api/internal/domain/model"
	apperrors "github.com/target/jobmarket-api/internal/errors"
	"github.com/target/jobmarket-api/internal/testutil"
)

func TestInterestRepo(t *testing.T) {
	testutil.SkipIfNoTestDB(t)

	testutil.WithAutoDB(t, func(db *sql.DB) {
		ctx := context.Background()
		repo := NewInterestRepo(db)
		jobs := NewJobRepo(db)

		employerID := testutil.InsertEmployer(t, db, testutil.EmployerSeed{AdCredit: 2})
		otherEmployer := testutil.InsertEmployer(t, db, testutil.EmployerSeed{AdCredit: 1})
		employeeID := testutil.InsertEmployee(t, db, testutil.EmployeeSeed{Name: "Kiran"})

		job, err := jobs.Create(ctx, testutil.NewJobRequest(employerID).Build())
		require.NoError(t, err)
		otherJob, err := jobs.Create(ctx, testutil.NewJobRequest(otherEmployer).Build())
		require.NoError(t, err)

		base := testutil.TestTime()
		applied := testutil.InsertInterest(t, db, testutil.InterestSeed{
			SenderType: model.SenderEmployee, SenderID: employeeID, ReceiverID: employerID,
			JobID: job.ID, CreatedAt: base,
		})
		invited := testutil.InsertInterest(t, db, testutil.InterestSeed{
			SenderType: model.SenderEmployer, SenderID: employerID, ReceiverID: employeeID,
			JobID: job.ID, Status: model.InterestHired, CreatedAt: base.Add(time.Minute),
		})
		unrelated := testutil.InsertInterest(t, db, testutil.InterestSeed{
			SenderType: model.SenderEmployer, SenderID: otherEmployer, ReceiverID: employeeID,
			JobID: otherJob.ID, CreatedAt: base.Add(2 * time.Minute),
		})

		t.Run("by job newest first", func(t *testing.T) {
			got, err := repo.ListByJob(ctx, job.ID)
			require.NoError(t, err)
			require.Len(t, got, 2)
			assert.Equal(t, invited, got[0].ID)
			assert.Equal(t, applied, got[1].ID)
		})

		t.Run("employee sees sent and received rows", func(t *testing.T) {
			got, err := repo.ListByParty(ctx, model.SenderEmployee, employeeID)
			require.NoError(t, err)
			ids := make([]string, len(got))
			for i, r := range got {
				ids[i] = r.ID
			}
			assert.Equal(t, []string{unrelated, invited, applied}, ids)
		})

		t.Run("employer sees only its own rows", func(t *testing.T) {
			got, err := repo.ListByParty(ctx, model.SenderEmployer, employerID)
			require.NoError(t, err)
			require.Len(t, got, 2)
		})

		t.Run("unknown role", func(t *testing.T) {
			_, err := repo.ListByParty(ctx, model.SenderType("admin"), employerID)
			assert.True(t, apperrors.IsValidation(err))
		})
	})
}

func TestAuditRepo(t *testing.T) {
	testutil.SkipIfNoTestDB(t)

	testutil.WithAutoDB(t, func(db *sql.DB) {
		ctx := context.Background()
		repo := NewAuditRepo(db)

		created, err := repo.Create(ctx, model.AuditEntry{
			Action:     model.AuditJobStatusChanged,
			EntityType: "job",
			EntityID:   "job-1",
			ActorID:    "admin-7",
			Payload:    map[string]string{"status": "active"},
		})
		require.NoError(t, err)
		require.NotNil(t, created.ActorID)
		assert.Equal(t, "admin-7", *created.ActorID)
		assert.JSONEq(t, `{"status":"active"}`, string(created.Payload))

		_, err = repo.Create(ctx, model.AuditEntry{Action: model.AuditJobDeleted, EntityType: "job", EntityID: "job-1"})
		require.NoError(t, err)

		logs, err := repo.ListByEntity(ctx, "job", "job-1", 10)
		require.NoError(t, err)
		assert.Len(t, logs, 2)

		_, err = repo.Create(ctx, model.AuditEntry{EntityType: "job", EntityID: "job-1"})
		assert.True(t, apperrors.IsValidation(err))
	})
}
