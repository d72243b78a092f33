package domain

import (
	"time"

	"github.com/google/uuid"
)

// DrawRecord is one santa -> recipient pair of a draw. Records are
// append-only; only the participant assignment fields are used for lookups.
type DrawRecord struct {
	DrawID      uuid.UUID `json:"draw_id"`
	SantaID     int64     `json:"santa_id"`
	RecipientID int64     `json:"recipient_id"`
	DrawnAt     time.Time `json:"drawn_at"`
}

// Draw is the result of a committed draw.
type Draw struct {
	ID       uuid.UUID
	DrawnAt  time.Time
	Records  []DrawRecord
	Attempts int
}

func NewDraw(santas, recipients []int64, now time.Time) *Draw {
	draw := &Draw{
		ID:      uuid.New(),
		DrawnAt: now.UTC(),
		Records: make([]DrawRecord, 0, len(santas)),
	}
	for i := range santas {
		draw.Records = append(draw.Records, DrawRecord{
			DrawID:      draw.ID,
			SantaID:     santas[i],
			RecipientID: recipients[i],
			DrawnAt:     draw.DrawnAt,
		})
	}
	return draw
}

// RecipientOf returns the recipient assigned to santaID in this draw.
func (d *Draw) RecipientOf(santaID int64) (int64, bool) {
	for _, r := range d.Records {
		if r.SantaID == santaID {
			return r.RecipientID, true
		}
	}
	return 0, false
}
