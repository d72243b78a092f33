package service

import (
	"context"
	"errors"

	"github.com/immxrtalbeast/santa_bot/internal/domain"
)

var (
	ErrInsufficientParticipants = errors.New("at least two active participants are required")
	ErrDuplicateParticipant     = errors.New("participant listed twice")
	ErrUnauthorized             = errors.New("caller is not the administrator")
	ErrNotRegistered            = errors.New("participant is not registered")
	ErrDrawNotPerformed         = errors.New("draw has not been performed")
	ErrNotInDraw                = errors.New("participant is not in the current draw")
	ErrRecipientNotFound        = errors.New("recipient not found")
	ErrEmptyInput               = errors.New("input is empty")
)

type DrawPerformer interface {
	PerformDraw(ctx context.Context, participants []*domain.Participant) (*domain.Draw, error)
}

type ParticipantInteractor interface {
	Register(ctx context.Context, id int64, handle, displayName string) (*domain.Participant, error)
	Participant(ctx context.Context, id int64) (*domain.Participant, error)
	SetAddress(ctx context.Context, id int64, address string) error
	MyRecipient(ctx context.Context, id int64) (*domain.Participant, error)
	SubmitProof(ctx context.Context, santaID int64, proof domain.GiftProof) (*ProofReceipt, error)
}

type AdminInteractor interface {
	IsAdmin(callerID int64) bool
	ListParticipants(ctx context.Context, callerID int64) ([]*domain.Participant, error)
	ListDraws(ctx context.Context, callerID int64) ([]domain.DrawRecord, error)
	Draw(ctx context.Context, callerID int64) (*DrawSummary, error)
	Broadcast(ctx context.Context, callerID int64, text string) (*BroadcastSummary, error)
}

// ProofReceipt reports what happened to a stored gift proof.
type ProofReceipt struct {
	RecipientID int64
	Delivered   bool
}

type DrawSummary struct {
	Draw         *domain.Draw
	Participants int
	Notified     int
	Failed       int
}

type BroadcastSummary struct {
	Sent   int
	Failed int
}
