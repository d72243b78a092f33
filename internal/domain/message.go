package domain

// Message is an outbound delivery to a participant's chat.
type Message struct {
	Type     string `json:"type"`
	Text     string `json:"text"`
	PhotoRef string `json:"photo_ref,omitempty"`
	PhotoURL string `json:"photo_url,omitempty"`
}

const (
	MessageTypeDraw      = "draw"
	MessageTypeProof     = "gift_proof"
	MessageTypeBroadcast = "broadcast"
	MessageTypeReminder  = "reminder"
)
