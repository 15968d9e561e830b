package interest

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/target/jobmarket-api/internal/domain/model"
)

func TestResolve(t *testing.T) {
	t.Run("employee sender applies to employer", func(t *testing.T) {
		p, err := Resolve(model.JobInterest{SenderType: model.SenderEmployee, SenderID: "emp", ReceiverID: "org"})
		require.NoError(t, err)
		assert.Equal(t, "emp", p.EmployeeID)
		assert.Equal(t, "org", p.EmployerID)
		assert.Equal(t, EmployeeParty{ID: "emp"}, p.Sender)
		assert.Equal(t, EmployerParty{ID: "org"}, p.Receiver)
	})

	t.Run("employer sender invites employee", func(t *testing.T) {
		p, err := Resolve(model.JobInterest{SenderType: model.SenderEmployer, SenderID: "org", ReceiverID: "emp"})
		require.NoError(t, err)
		assert.Equal(t, "emp", p.EmployeeID)
		assert.Equal(t, "org", p.EmployerID)
	})

	t.Run("unknown sender type", func(t *testing.T) {
		_, err := Resolve(model.JobInterest{ID: "x", SenderType: "admin"})
		require.Error(t, err)
	})
}

func TestPairing_DirectionFor(t *testing.T) {
	applied, err := Resolve(model.JobInterest{SenderType: model.SenderEmployee, SenderID: "emp", ReceiverID: "org"})
	require.NoError(t, err)
	invited, err := Resolve(model.JobInterest{SenderType: model.SenderEmployer, SenderID: "org", ReceiverID: "emp"})
	require.NoError(t, err)

	employer := EmployerParty{ID: "org"}
	employee := EmployeeParty{ID: "emp"}

	assert.Equal(t, model.DirectionReceived, applied.DirectionFor(employer))
	assert.Equal(t, model.DirectionSent, applied.DirectionFor(employee))
	assert.Equal(t, model.DirectionSent, invited.DirectionFor(employer))
	assert.Equal(t, model.DirectionReceived, invited.DirectionFor(employee))
}

func TestBucket(t *testing.T) {
	views := []model.InterestView{
		{ID: "1", Direction: model.DirectionSent, Status: model.InterestPending},
		{ID: "2", Direction: model.DirectionReceived, Status: model.InterestHired},
		{ID: "3", Direction: model.DirectionSent, Status: model.InterestHired},
	}
	b := Bucket(views)
	assert.Len(t, b.Sent, 2)
	assert.Len(t, b.Received, 1)
	require.Len(t, b.Hired, 2)
	assert.Equal(t, "2", b.Hired[0].ID)

	empty := Bucket(nil)
	assert.NotNil(t, empty.Sent)
	assert.NotNil(t, empty.Hired)
}
