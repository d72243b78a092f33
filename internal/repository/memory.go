package repository

import (
	"context"
	"sync"

	"github.com/immxrtalbeast/santa_bot/internal/domain"
	"github.com/jonboulle/clockwork"
)

type InMemoryParticipantRepository struct {
	mu           sync.RWMutex
	clock        clockwork.Clock
	participants map[int64]*domain.Participant
	order        []int64
	draws        []domain.DrawRecord
}

func NewInMemoryParticipantRepository(clock clockwork.Clock) *InMemoryParticipantRepository {
	if clock == nil {
		clock = clockwork.NewRealClock()
	}
	return &InMemoryParticipantRepository{
		clock:        clock,
		participants: make(map[int64]*domain.Participant),
	}
}

func (r *InMemoryParticipantRepository) Upsert(ctx context.Context, id int64, handle, displayName string, policy domain.RejoinPolicy) (*domain.Participant, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	p, ok := r.participants[id]
	if !ok {
		p = domain.NewParticipant(id, handle, displayName, r.clock.Now())
		r.participants[id] = p
		r.order = append(r.order, id)
		return p.Clone(), nil
	}

	p.Handle = handle
	p.DisplayName = displayName
	if policy == domain.RejoinReset {
		p.Address = ""
		p.GiftProof = nil
	}
	return p.Clone(), nil
}

func (r *InMemoryParticipantRepository) SetAddress(ctx context.Context, id int64, address string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if p, ok := r.participants[id]; ok {
		p.Address = address
	}
	return nil
}

func (r *InMemoryParticipantRepository) SetGiftProof(ctx context.Context, id int64, proof domain.GiftProof) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if p, ok := r.participants[id]; ok {
		p.GiftProof = &proof
	}
	return nil
}

func (r *InMemoryParticipantRepository) GetByID(ctx context.Context, id int64) (*domain.Participant, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	p, ok := r.participants[id]
	if !ok {
		return nil, ErrParticipantNotFound
	}
	return p.Clone(), nil
}

func (r *InMemoryParticipantRepository) ListActive(ctx context.Context) ([]*domain.Participant, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	result := make([]*domain.Participant, 0, len(r.order))
	for _, id := range r.order {
		p := r.participants[id]
		if p.Active {
			result = append(result, p.Clone())
		}
	}
	return result, nil
}

func (r *InMemoryParticipantRepository) GetRecipientOf(ctx context.Context, santaID int64) (*domain.Participant, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	santa, ok := r.participants[santaID]
	if !ok || santa.RecipientID == nil {
		return nil, ErrParticipantNotFound
	}
	recipient, ok := r.participants[*santa.RecipientID]
	if !ok {
		return nil, ErrParticipantNotFound
	}
	return recipient.Clone(), nil
}

func (r *InMemoryParticipantRepository) GetSantaOf(ctx context.Context, recipientID int64) (*domain.Participant, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	recipient, ok := r.participants[recipientID]
	if !ok || recipient.SantaID == nil {
		return nil, ErrParticipantNotFound
	}
	santa, ok := r.participants[*recipient.SantaID]
	if !ok {
		return nil, ErrParticipantNotFound
	}
	return santa.Clone(), nil
}

func (r *InMemoryParticipantRepository) HasCompletedDraw(ctx context.Context) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, err
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	return len(r.draws) > 0, nil
}

func (r *InMemoryParticipantRepository) ReplaceAssignments(ctx context.Context, records []domain.DrawRecord) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	for _, rec := range records {
		if _, ok := r.participants[rec.SantaID]; !ok {
			return ErrInvalidAssignment
		}
		if _, ok := r.participants[rec.RecipientID]; !ok {
			return ErrInvalidAssignment
		}
	}

	for _, p := range r.participants {
		p.RecipientID = nil
		p.SantaID = nil
	}
	for _, rec := range records {
		recipientID, santaID := rec.RecipientID, rec.SantaID
		r.participants[rec.SantaID].RecipientID = &recipientID
		r.participants[rec.RecipientID].SantaID = &santaID
	}
	r.draws = append(r.draws, records...)
	return nil
}

func (r *InMemoryParticipantRepository) ListDrawRecords(ctx context.Context) ([]domain.DrawRecord, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	result := make([]domain.DrawRecord, len(r.draws))
	copy(result, r.draws)
	return result, nil
}
