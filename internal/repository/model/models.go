package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

type Participant struct {
	ID           int64          `gorm:"primaryKey;autoIncrement:false"`
	Handle       string         `gorm:"size:255"`
	DisplayName  string         `gorm:"size:255"`
	Address      string         `gorm:"type:text"`
	GiftProof    datatypes.JSON `gorm:"type:jsonb"`
	RecipientID  *int64         `gorm:"index"`
	SantaID      *int64         `gorm:"index"`
	IsActive     bool           `gorm:"not null;default:true"`
	RegisteredAt time.Time      `gorm:"index;not null"`
}

type DrawRecord struct {
	ID          uint      `gorm:"primaryKey"`
	DrawID      uuid.UUID `gorm:"type:uuid;uniqueIndex:idx_draw_pair;not null"`
	SantaID     int64     `gorm:"uniqueIndex:idx_draw_pair;not null"`
	RecipientID int64     `gorm:"uniqueIndex:idx_draw_pair;not null"`
	DrawnAt     time.Time `gorm:"index;not null"`
}
