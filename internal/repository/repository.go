package repository

import (
	"context"
	"errors"

	"github.com/immxrtalbeast/santa_bot/internal/domain"
)

var (
	ErrParticipantNotFound = errors.New("participant not found")
	ErrInvalidAssignment   = errors.New("draw records reference unknown participant")
)

// ParticipantRepository is the durable participant registry. Assignment
// fields are written only through ReplaceAssignments.
type ParticipantRepository interface {
	Upsert(ctx context.Context, id int64, handle, displayName string, policy domain.RejoinPolicy) (*domain.Participant, error)
	SetAddress(ctx context.Context, id int64, address string) error
	SetGiftProof(ctx context.Context, id int64, proof domain.GiftProof) error
	GetByID(ctx context.Context, id int64) (*domain.Participant, error)
	ListActive(ctx context.Context) ([]*domain.Participant, error)
	GetRecipientOf(ctx context.Context, santaID int64) (*domain.Participant, error)
	GetSantaOf(ctx context.Context, recipientID int64) (*domain.Participant, error)
	HasCompletedDraw(ctx context.Context) (bool, error)
	// ReplaceAssignments clears every current assignment, applies records and
	// appends them to the draw history as one atomic unit.
	ReplaceAssignments(ctx context.Context, records []domain.DrawRecord) error
	ListDrawRecords(ctx context.Context) ([]domain.DrawRecord, error)
}
