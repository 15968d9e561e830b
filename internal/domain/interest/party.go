// Package interest resolves the polymorphic parties of interest records.
package interest

import (
	"fmt"

	"github.com/target/jobmarket-api/internal/domain/model"
)

// Party is one side of an interest record. The set of implementations is closed.
type Party interface {
	PartyID() string
	party()
}

// EmployeeParty is a job seeker acting as sender or receiver.
type EmployeeParty struct{ ID string }

// EmployerParty is a hiring organization acting as sender or receiver.
type EmployerParty struct{ ID string }

func (p EmployeeParty) PartyID() string { return p.ID }
func (p EmployerParty) PartyID() string { return p.ID }

func (EmployeeParty) party() {}
func (EmployerParty) party() {}

// Pairing is the concrete employee and employer behind an interest record.
type Pairing struct {
	Sender     Party
	Receiver   Party
	EmployeeID string
	EmployerID string
}

// Resolve maps sender and receiver ids to roles using sender_type.
func Resolve(row model.JobInterest) (Pairing, error) {
	switch row.SenderType {
	case model.SenderEmployee:
		return Pairing{
			Sender:     EmployeeParty{ID: row.SenderID},
			Receiver:   EmployerParty{ID: row.ReceiverID},
			EmployeeID: row.SenderID,
			EmployerID: row.ReceiverID,
		}, nil
	case model.SenderEmployer:
		return Pairing{
			Sender:     EmployerParty{ID: row.SenderID},
			Receiver:   EmployeeParty{ID: row.ReceiverID},
			EmployeeID: row.ReceiverID,
			EmployerID: row.SenderID,
		}, nil
	default:
		return Pairing{}, fmt.Errorf("interest %s: unknown sender_type %q", row.ID, row.SenderType)
	}
}

// DirectionFor classifies the pairing relative to the role of perspective.
// An employer perspective sees employer-sent rows as sent; an employee perspective sees
// employee-sent rows as sent.
func (p Pairing) DirectionFor(perspective Party) model.InterestDirection {
	var sentBySameRole bool
	switch perspective.(type) {
	case EmployeeParty:
		_, sentBySameRole = p.Sender.(EmployeeParty)
	case EmployerParty:
		_, sentBySameRole = p.Sender.(EmployerParty)
	}
	if sentBySameRole {
		return model.DirectionSent
	}
	return model.DirectionReceived
}

// Bucket splits views into sent and received, and separately collects hired rows.
// The returned slices are never nil.
func Bucket(views []model.InterestView) model.InterestBuckets {
	out := model.InterestBuckets{
		Sent:     []model.InterestView{},
		Received: []model.InterestView{},
		Hired:    []model.InterestView{},
	}
	for _, v := range views {
		if v.Direction == model.DirectionSent {
			out.Sent = append(out.Sent, v)
		} else {
			out.Received = append(out.Received, v)
		}
		if v.Status == model.InterestHired {
			out.Hired = append(out.Hired, v)
		}
	}
	return out
}
