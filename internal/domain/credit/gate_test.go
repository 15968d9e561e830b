package credit

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEvaluate(t *testing.T) {
	now := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)
	past := now.Add(-time.Hour)
	future := now.Add(time.Hour)

	tests := []struct {
		name        string
		balance     int
		expiry      *time.Time
		wantErr     bool
		wantExpired bool
	}{
		{name: "balance without expiry", balance: 1},
		{name: "balance with future expiry", balance: 3, expiry: &future},
		{name: "zero balance", balance: 0, wantErr: true},
		{name: "expiry overrides balance", balance: 5, expiry: &past, wantErr: true, wantExpired: true},
		{name: "expiry at now is expired", balance: 5, expiry: &now, wantErr: true, wantExpired: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := Evaluate(tt.balance, tt.expiry, now)
			if !tt.wantErr {
				assert.NoError(t, err)
				return
			}
			ex, ok := AsExhausted(err)
			require.True(t, ok)
			assert.Equal(t, tt.balance, ex.Balance)
			assert.Equal(t, tt.expiry, ex.ExpiresAt)
			assert.Equal(t, tt.wantExpired, ex.Expired)
		})
	}
}

func TestIsExhausted_Wrapped(t *testing.T) {
	err := fmt.Errorf("create job: %w", &ExhaustedError{Balance: 0})
	assert.True(t, IsExhausted(err))
	assert.False(t, IsExhausted(fmt.Errorf("other")))
	assert.Contains(t, err.Error(), "balance 0")
}
