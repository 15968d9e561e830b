package data

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/target/jobmarket-api/internal/data/database"
	"github.com/target/jobmarket-api/internal/domain/matching"
	"github.com/target/jobmarket-api/internal/domain/model"
	"github.com/target/jobmarket-api/internal/testutil"
)

func TestEmployeeRepo_FindCandidates(t *testing.T) {
	testutil.SkipIfNoTestDB(t)

	testutil.WithAutoDB(t, func(db *sql.DB) {
		ctx := context.Background()
		repo := NewEmployeeRepo(db)
		base := testutil.TestTime()
		state, city := int64(4), int64(40)
		qual := int64(3)

		seed := func(name string, age time.Duration, mut func(*testutil.EmployeeSeed)) string {
			s := testutil.EmployeeSeed{
				Name:            name,
				Gender:          "female",
				StateID:         &state,
				CityID:          &city,
				QualificationID: &qual,
				ExpectedSalary:  testutil.Int64Ptr(15000),
				JobProfileIDs:   []int64{8},
				CreatedAt:       base.Add(-age),
			}
			if mut != nil {
				mut(&s)
			}
			return testutil.InsertEmployee(t, db, s)
		}

		match := seed("match", 3*time.Hour, nil)
		newest := seed("no salary", time.Hour, func(s *testutil.EmployeeSeed) { s.ExpectedSalary = nil })
		seed("wrong city", 2*time.Hour, func(s *testutil.EmployeeSeed) { s.CityID = testutil.Int64Ptr(41) })
		seed("inactive", 2*time.Hour, func(s *testutil.EmployeeSeed) { s.Inactive = true })
		seed("male", 2*time.Hour, func(s *testutil.EmployeeSeed) { s.Gender = "male" })
		seed("too expensive", 2*time.Hour, func(s *testutil.EmployeeSeed) { s.ExpectedSalary = testutil.Int64Ptr(90000) })
		seed("other profile", 2*time.Hour, func(s *testutil.EmployeeSeed) { s.JobProfileIDs = []int64{9} })
		seed("other qualification", 2*time.Hour, func(s *testutil.EmployeeSeed) { s.QualificationID = testutil.Int64Ptr(5) })

		criteria := matching.Criteria{
			StateID:        &state,
			CityID:         &city,
			Qualifications: []int64{qual},
			Genders:        []string{"female"},
			SalaryMin:      testutil.Int64Ptr(10000),
			SalaryMax:      testutil.Int64Ptr(20000),
			JobProfileID:   testutil.Int64Ptr(8),
		}

		got, err := repo.FindCandidates(ctx, criteria)
		require.NoError(t, err)
		require.Len(t, got, 2)
		assert.Equal(t, newest, got[0].ID, "newest first")
		assert.Equal(t, match, got[1].ID)
		assert.Equal(t, []int64{8}, got[1].JobProfileIDs)

		t.Run("salary bounds are inclusive", func(t *testing.T) {
			exact := criteria
			exact.SalaryMin = testutil.Int64Ptr(15000)
			exact.SalaryMax = testutil.Int64Ptr(15000)
			got, err := repo.FindCandidates(ctx, exact)
			require.NoError(t, err)
			assert.Len(t, got, 2)
		})

		t.Run("empty gender set matches every gender", func(t *testing.T) {
			open := criteria
			open.Genders = nil
			got, err := repo.FindCandidates(ctx, open)
			require.NoError(t, err)
			assert.Len(t, got, 3)
		})

		t.Run("limit caps the result", func(t *testing.T) {
			limited := criteria
			limited.Limit = 1
			got, err := repo.FindCandidates(ctx, limited)
			require.NoError(t, err)
			require.Len(t, got, 1)
			assert.Equal(t, newest, got[0].ID)
		})

		t.Run("matches agree with the in-memory predicate", func(t *testing.T) {
			all, err := repo.FindCandidates(ctx, matching.Criteria{Limit: matching.MaxLimit})
			require.NoError(t, err)
			var want []string
			for _, e := range all {
				if criteria.Matches(*e) {
					want = append(want, e.ID)
				}
			}
			assert.ElementsMatch(t, want, []string{match, newest})
		})
	})
}

func TestBuildCandidateQuery(t *testing.T) {
	query, args := database.BuildListQuery(buildCandidateQuery(matching.Criteria{
		Qualifications: []int64{1, 2},
		Genders:        []string{"male"},
		SalaryMax:      testutil.Int64Ptr(500),
	}))

	assert.Contains(t, query, `"is_active" = $1`)
	assert.Contains(t, query, `"deleted_at" IS NULL`)
	assert.Contains(t, query, "qualification_id = ANY($2::bigint[])")
	assert.Contains(t, query, "lower(gender) = ANY($3::text[])")
	assert.Contains(t, query, "(expected_salary IS NULL OR expected_salary <= $4)")
	assert.Contains(t, query, `ORDER BY "created_at" DESC LIMIT $5`)
	assert.Equal(t, []any{true, []int64{1, 2}, []string{"male"}, int64(500), matching.DefaultLimit}, args)
}

func TestEmployeeRepo_GetByIDs(t *testing.T) {
	testutil.SkipIfNoTestDB(t)

	testutil.WithAutoDB(t, func(db *sql.DB) {
		ctx := context.Background()
		repo := NewEmployeeRepo(db)
		a := testutil.InsertEmployee(t, db, testutil.EmployeeSeed{Name: "Ravi", JobProfileIDs: []int64{1, 2}})
		b := testutil.InsertEmployee(t, db, testutil.EmployeeSeed{Name: "Meena", Inactive: true})

		got, err := repo.GetByIDs(ctx, []string{a, b})
		require.NoError(t, err)
		require.Len(t, got, 2)

		byID := map[string]*model.Employee{}
		for _, e := range got {
			byID[e.ID] = e
		}
		assert.ElementsMatch(t, []int64{1, 2}, byID[a].JobProfileIDs)
		assert.Equal(t, "Meena", byID[b].Name)
	})
}
