package conversation

import "fmt"

type Action string

const (
	ActionNone             Action = ""
	ActionStart            Action = "start"
	ActionHelp             Action = "help"
	ActionJoin             Action = "join"
	ActionConfirmJoin      Action = "confirm_join"
	ActionRequestAddress   Action = "request_address"
	ActionMyRecipient      Action = "my_recipient"
	ActionSendProof        Action = "send_proof"
	ActionCancel           Action = "cancel"
	ActionBack             Action = "back"
	ActionAdmin            Action = "admin"
	ActionListParticipants Action = "list_participants"
	ActionDraw             Action = "draw"
	ActionConfirmDraw      Action = "confirm_draw"
	ActionBroadcast        Action = "broadcast"
)

// Keyboard names the button set the transport should show with a reply.
type Keyboard string

const (
	KeyboardNone        Keyboard = "none"
	KeyboardMain        Keyboard = "main"
	KeyboardAdmin       Keyboard = "admin"
	KeyboardConfirmJoin Keyboard = "confirm_join"
	KeyboardConfirmDraw Keyboard = "confirm_draw"
)

// ProofMode selects which gift proof flow send_proof starts.
type ProofMode string

const (
	// ProofModeCode accepts a text code only.
	ProofModeCode ProofMode = "code"
	// ProofModePhoto expects a photo followed by the pickup address.
	ProofModePhoto ProofMode = "photo"
	// ProofModeAny accepts either.
	ProofModeAny ProofMode = "any"
)

func ParseProofMode(s string) (ProofMode, error) {
	switch ProofMode(s) {
	case "", ProofModeAny:
		return ProofModeAny, nil
	case ProofModeCode:
		return ProofModeCode, nil
	case ProofModePhoto:
		return ProofModePhoto, nil
	default:
		return "", fmt.Errorf("unknown proof mode %q", s)
	}
}

func (m ProofMode) acceptsCode() bool  { return m != ProofModePhoto }
func (m ProofMode) acceptsPhoto() bool { return m != ProofModeCode }

// Interaction is one inbound event from a participant: a button press
// (Action) or a free-form message (Text and/or PhotoRef).
type Interaction struct {
	UserID      int64  `json:"user_id" binding:"required"`
	Handle      string `json:"handle"`
	DisplayName string `json:"display_name"`
	Action      Action `json:"action"`
	Text        string `json:"text"`
	PhotoRef    string `json:"photo_ref"`
}

type Reply struct {
	Text     string   `json:"text"`
	Keyboard Keyboard `json:"keyboard"`
	State    State    `json:"state"`
}
