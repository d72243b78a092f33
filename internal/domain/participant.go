package domain

import (
	"fmt"
	"time"
)

// RejoinPolicy decides what happens to an existing participant's mutable
// fields when they register again.
type RejoinPolicy string

const (
	// RejoinKeep refreshes handle and display name only.
	RejoinKeep RejoinPolicy = "keep"
	// RejoinReset also clears the address and gift proof. Assignment fields
	// are never reset by registration.
	RejoinReset RejoinPolicy = "reset"
)

func ParseRejoinPolicy(s string) (RejoinPolicy, error) {
	switch RejoinPolicy(s) {
	case "", RejoinKeep:
		return RejoinKeep, nil
	case RejoinReset:
		return RejoinReset, nil
	default:
		return "", fmt.Errorf("unknown rejoin policy %q", s)
	}
}

// Participant is a registered member of the gift exchange.
type Participant struct {
	ID           int64      `json:"id"`
	Handle       string     `json:"handle,omitempty"`
	DisplayName  string     `json:"display_name,omitempty"`
	Address      string     `json:"address,omitempty"`
	GiftProof    *GiftProof `json:"gift_proof,omitempty"`
	RecipientID  *int64     `json:"recipient_id,omitempty"`
	SantaID      *int64     `json:"santa_id,omitempty"`
	Active       bool       `json:"active"`
	RegisteredAt time.Time  `json:"registered_at"`
}

func NewParticipant(id int64, handle, displayName string, now time.Time) *Participant {
	return &Participant{
		ID:           id,
		Handle:       handle,
		DisplayName:  displayName,
		Active:       true,
		RegisteredAt: now.UTC(),
	}
}

func (p *Participant) HasAddress() bool {
	return p != nil && p.Address != ""
}

// Name returns the display name, falling back to the handle and the id.
func (p *Participant) Name() string {
	switch {
	case p.DisplayName != "":
		return p.DisplayName
	case p.Handle != "":
		return "@" + p.Handle
	default:
		return fmt.Sprintf("participant %d", p.ID)
	}
}

func (p *Participant) Clone() *Participant {
	if p == nil {
		return nil
	}
	c := *p
	if p.GiftProof != nil {
		proof := *p.GiftProof
		c.GiftProof = &proof
	}
	if p.RecipientID != nil {
		id := *p.RecipientID
		c.RecipientID = &id
	}
	if p.SantaID != nil {
		id := *p.SantaID
		c.SantaID = &id
	}
	return &c
}

// GiftProof is what a santa hands over so the recipient can collect the gift:
// either a code, or a photo reference with the pickup address.
type GiftProof struct {
	Code          string `json:"code,omitempty"`
	PhotoRef      string `json:"photo_ref,omitempty"`
	PickupAddress string `json:"pickup_address,omitempty"`
}

func (g *GiftProof) IsPhoto() bool {
	return g != nil && g.PhotoRef != ""
}
