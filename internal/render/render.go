// Package render holds every user-facing text of the bot in
// golang.org/x/text message catalogs; the rest of the code only deals in keys.
package render

import (
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

const (
	Welcome            = "santa.welcome"
	Help               = "santa.help"
	AdminPanel         = "santa.admin.panel"
	Unauthorized       = "santa.admin.unauthorized"
	AlreadyRegistered  = "santa.join.already_registered"
	JoinPrompt         = "santa.join.prompt"
	Joined             = "santa.join.done"
	NotRegistered      = "santa.join.required"
	AddressPrompt      = "santa.address.prompt"
	AddressSaved       = "santa.address.saved"
	AddressEmpty       = "santa.address.empty"
	DrawNotDone        = "santa.recipient.draw_not_done"
	NotInDraw          = "santa.recipient.not_in_draw"
	RecipientInfo      = "santa.recipient.info"
	RecipientAddress   = "santa.recipient.address"
	RecipientNoAddress = "santa.recipient.no_address"
	ProofPrompt        = "santa.proof.prompt"
	ProofPromptCode    = "santa.proof.prompt_code"
	ProofPromptPhoto   = "santa.proof.prompt_photo"
	ProofPickupPrompt  = "santa.proof.pickup_prompt"
	ProofExpectCode    = "santa.proof.expect_code"
	ProofExpectPhoto   = "santa.proof.expect_photo"
	ProofDelivered     = "santa.proof.delivered"
	ProofUndelivered   = "santa.proof.undelivered"
	RecipientNotFound  = "santa.proof.recipient_not_found"
	ProofRelayCode     = "santa.proof.relay_code"
	ProofRelayPhoto    = "santa.proof.relay_photo"
	NoParticipants     = "santa.admin.no_participants"
	ParticipantsHeader = "santa.admin.participants_header"
	ParticipantLine    = "santa.admin.participant_line"
	DrawConfirm        = "santa.draw.confirm"
	DrawInsufficient   = "santa.draw.insufficient"
	DrawDone           = "santa.draw.done"
	DrawFailed         = "santa.draw.failed"
	DrawNotice         = "santa.draw.notice"
	BroadcastPrompt    = "santa.broadcast.prompt"
	BroadcastMessage   = "santa.broadcast.message"
	BroadcastDone      = "santa.broadcast.done"
	BroadcastEmpty     = "santa.broadcast.empty"
	Cancelled          = "santa.cancelled"
	Unknown            = "santa.unknown"
	ReminderAddress    = "santa.reminder.address"
	HandleUnknown      = "santa.handle.unknown"
	Failure            = "santa.failure"
)

// Printer is the subset of *message.Printer the bot needs.
type Printer interface {
	Sprintf(key message.Reference, args ...any) string
}

// NewPrinter returns a printer for lang ("en", "ru"). Unknown languages fall
// back to English.
func NewPrinter(lang string) *message.Printer {
	tag, err := language.Parse(lang)
	if err != nil {
		tag = language.English
	}
	matcher := language.NewMatcher([]language.Tag{language.English, language.Russian})
	_, idx, _ := matcher.Match(tag)
	if idx == 1 {
		return message.NewPrinter(language.Russian)
	}
	return message.NewPrinter(language.English)
}

// Handle formats an optional chat handle.
func Handle(p Printer, handle string) string {
	if handle == "" {
		return p.Sprintf(HandleUnknown)
	}
	return "@" + handle
}
