package testutil

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDefaultTestDBConfig(t *testing.T) {
	t.Run("defaults to local test database port 55432", func(t *testing.T) {
		for _, key := range []string{"TEST_DB_HOST", "TEST_DB_PORT", "TEST_DB_USER", "TEST_DB_PASSWORD", "TEST_DB_NAME"} {
			t.Setenv(key, "")
		}

		cfg := DefaultTestDBConfig()
		assert.Equal(t, TestDBConfig{
			Host:     "localhost",
			Port:     "55432",
			User:     "jobmarket",
			Password: "jobmarket",
			DBName:   "jobmarket",
		}, cfg)
	})

	t.Run("respects TEST_DB_PORT environment variable", func(t *testing.T) {
		t.Setenv("TEST_DB_PORT", "5432")
		t.Setenv("TEST_DB_HOST", "postgres")

		cfg := DefaultTestDBConfig()
		assert.Equal(t, "5432", cfg.Port)
		assert.Equal(t, "postgres", cfg.Host)
	})
}

func TestCleanupTablesOrder(t *testing.T) {
	index := make(map[string]int, len(cleanupTables))
	for i, table := range cleanupTables {
		index[table] = i
	}

	// Children must be cleared before the rows they reference.
	assert.Less(t, index["job_interests"], index["jobs"])
	assert.Less(t, index["job_genders"], index["jobs"])
	assert.Less(t, index["jobs"], index["employers"])
	assert.Less(t, index["employee_job_profiles"], index["employees"])
}
