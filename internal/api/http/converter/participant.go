package converter

import (
	"time"

	"github.com/google/uuid"
	"github.com/immxrtalbeast/santa_bot/internal/domain"
)

type ParticipantResponse struct {
	ID           int64     `json:"id"`
	Handle       string    `json:"handle,omitempty"`
	DisplayName  string    `json:"display_name"`
	HasAddress   bool      `json:"has_address"`
	HasGiftProof bool      `json:"has_gift_proof"`
	Assigned     bool      `json:"assigned"`
	RegisteredAt time.Time `json:"registered_at"`
}

type DrawResponse struct {
	ID      uuid.UUID      `json:"id"`
	DrawnAt time.Time      `json:"drawn_at"`
	Pairs   []PairResponse `json:"pairs"`
}

type PairResponse struct {
	SantaID     int64 `json:"santa_id"`
	RecipientID int64 `json:"recipient_id"`
}

// ParticipantsToApi hides addresses and pairings; the listing only says
// whether they are set.
func ParticipantsToApi(participants []*domain.Participant) []ParticipantResponse {
	result := make([]ParticipantResponse, 0, len(participants))
	for _, p := range participants {
		result = append(result, ParticipantResponse{
			ID:           p.ID,
			Handle:       p.Handle,
			DisplayName:  p.Name(),
			HasAddress:   p.HasAddress(),
			HasGiftProof: p.GiftProof != nil,
			Assigned:     p.RecipientID != nil,
			RegisteredAt: p.RegisteredAt,
		})
	}
	return result
}

// DrawsToApi groups history records by draw, oldest draw first.
func DrawsToApi(records []domain.DrawRecord) []DrawResponse {
	result := make([]DrawResponse, 0)
	index := make(map[uuid.UUID]int)
	for _, r := range records {
		i, ok := index[r.DrawID]
		if !ok {
			i = len(result)
			index[r.DrawID] = i
			result = append(result, DrawResponse{ID: r.DrawID, DrawnAt: r.DrawnAt})
		}
		result[i].Pairs = append(result[i].Pairs, PairResponse{SantaID: r.SantaID, RecipientID: r.RecipientID})
	}
	return result
}
