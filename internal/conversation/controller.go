// Package conversation turns participant interactions into store, draw and
// delivery operations, tracking which step every participant is at.
package conversation

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	"github.com/immxrtalbeast/santa_bot/internal/domain"
	"github.com/immxrtalbeast/santa_bot/internal/render"
	"github.com/immxrtalbeast/santa_bot/internal/service"
	"github.com/immxrtalbeast/santa_bot/lib/logger/sl"
)

type Controller struct {
	participants service.ParticipantInteractor
	admin        service.AdminInteractor
	sessions     *SessionStore
	printer      render.Printer
	proofMode    ProofMode
	log          *slog.Logger
}

func NewController(
	participants service.ParticipantInteractor,
	admin service.AdminInteractor,
	sessions *SessionStore,
	printer render.Printer,
	proofMode ProofMode,
	log *slog.Logger,
) *Controller {
	if sessions == nil {
		sessions = NewSessionStore()
	}
	return &Controller{
		participants: participants,
		admin:        admin,
		sessions:     sessions,
		printer:      printer,
		proofMode:    proofMode,
		log:          log,
	}
}

// Handle processes one interaction and returns the reply for its sender. A
// button press always starts over from Idle, dropping any pending step.
func (c *Controller) Handle(ctx context.Context, in Interaction) Reply {
	if in.Action != ActionNone {
		c.sessions.Reset(in.UserID)
		return c.handleAction(ctx, in)
	}

	session := c.sessions.Get(in.UserID)
	switch session.State {
	case AwaitingAddress:
		return c.receiveAddress(ctx, in)
	case AwaitingGiftCodeOrPhoto:
		return c.receiveProof(ctx, in)
	case AwaitingPickupAddress:
		return c.receivePickupAddress(ctx, in, session)
	case AwaitingBroadcastText:
		return c.receiveBroadcast(ctx, in)
	default:
		return c.reply(in.UserID, render.Unknown, KeyboardMain)
	}
}

func (c *Controller) handleAction(ctx context.Context, in Interaction) Reply {
	switch in.Action {
	case ActionStart, ActionBack:
		return c.reply(in.UserID, render.Welcome, KeyboardMain)
	case ActionHelp:
		return c.reply(in.UserID, render.Help, KeyboardMain)
	case ActionCancel:
		return c.reply(in.UserID, render.Cancelled, KeyboardMain)
	case ActionJoin:
		return c.join(ctx, in)
	case ActionConfirmJoin:
		return c.confirmJoin(ctx, in)
	case ActionRequestAddress:
		return c.requireRegistered(ctx, in, AwaitingAddress, render.AddressPrompt)
	case ActionMyRecipient:
		return c.myRecipient(ctx, in)
	case ActionSendProof:
		return c.requireRegistered(ctx, in, AwaitingGiftCodeOrPhoto, c.proofPrompt())
	case ActionAdmin:
		if !c.admin.IsAdmin(in.UserID) {
			return c.reply(in.UserID, render.Unauthorized, KeyboardMain)
		}
		return c.reply(in.UserID, render.AdminPanel, KeyboardAdmin)
	case ActionListParticipants:
		return c.listParticipants(ctx, in)
	case ActionDraw:
		return c.promptDraw(ctx, in)
	case ActionConfirmDraw:
		return c.confirmDraw(ctx, in)
	case ActionBroadcast:
		if !c.admin.IsAdmin(in.UserID) {
			return c.reply(in.UserID, render.Unauthorized, KeyboardMain)
		}
		c.sessions.Set(in.UserID, Session{State: AwaitingBroadcastText})
		return c.reply(in.UserID, render.BroadcastPrompt, KeyboardNone)
	default:
		return c.reply(in.UserID, render.Unknown, KeyboardMain)
	}
}

func (c *Controller) join(ctx context.Context, in Interaction) Reply {
	p, err := c.participants.Participant(ctx, in.UserID)
	switch {
	case err == nil:
		return c.replyText(in.UserID, c.printer.Sprintf(render.AlreadyRegistered, p.Name()), KeyboardMain)
	case errors.Is(err, service.ErrNotRegistered):
		return c.reply(in.UserID, render.JoinPrompt, KeyboardConfirmJoin)
	default:
		return c.failure(in.UserID, "conversation.join", err)
	}
}

func (c *Controller) confirmJoin(ctx context.Context, in Interaction) Reply {
	if _, err := c.participants.Register(ctx, in.UserID, in.Handle, in.DisplayName); err != nil {
		return c.failure(in.UserID, "conversation.confirm_join", err)
	}
	return c.reply(in.UserID, render.Joined, KeyboardMain)
}

// requireRegistered moves a registered participant to next and shows prompt.
func (c *Controller) requireRegistered(ctx context.Context, in Interaction, next State, prompt string) Reply {
	if _, err := c.participants.Participant(ctx, in.UserID); err != nil {
		if errors.Is(err, service.ErrNotRegistered) {
			return c.reply(in.UserID, render.NotRegistered, KeyboardMain)
		}
		return c.failure(in.UserID, "conversation.require_registered", err)
	}
	c.sessions.Set(in.UserID, Session{State: next})
	return c.reply(in.UserID, prompt, KeyboardNone)
}

func (c *Controller) proofPrompt() string {
	switch c.proofMode {
	case ProofModeCode:
		return render.ProofPromptCode
	case ProofModePhoto:
		return render.ProofPromptPhoto
	default:
		return render.ProofPrompt
	}
}

func (c *Controller) myRecipient(ctx context.Context, in Interaction) Reply {
	recipient, err := c.participants.MyRecipient(ctx, in.UserID)
	switch {
	case errors.Is(err, service.ErrDrawNotPerformed):
		return c.reply(in.UserID, render.DrawNotDone, KeyboardMain)
	case errors.Is(err, service.ErrNotInDraw):
		return c.reply(in.UserID, render.NotInDraw, KeyboardMain)
	case err != nil:
		return c.failure(in.UserID, "conversation.my_recipient", err)
	}

	var b strings.Builder
	b.WriteString(c.printer.Sprintf(render.RecipientInfo, recipient.Name(), render.Handle(c.printer, recipient.Handle)))
	if recipient.HasAddress() {
		b.WriteString(c.printer.Sprintf(render.RecipientAddress, recipient.Address))
	} else {
		b.WriteString(c.printer.Sprintf(render.RecipientNoAddress))
	}
	return c.replyText(in.UserID, b.String(), KeyboardMain)
}

func (c *Controller) receiveAddress(ctx context.Context, in Interaction) Reply {
	err := c.participants.SetAddress(ctx, in.UserID, in.Text)
	switch {
	case errors.Is(err, service.ErrEmptyInput):
		return c.reply(in.UserID, render.AddressEmpty, KeyboardNone)
	case errors.Is(err, service.ErrNotRegistered):
		c.sessions.Reset(in.UserID)
		return c.reply(in.UserID, render.NotRegistered, KeyboardMain)
	case err != nil:
		c.sessions.Reset(in.UserID)
		return c.failure(in.UserID, "conversation.receive_address", err)
	}
	c.sessions.Reset(in.UserID)
	return c.reply(in.UserID, render.AddressSaved, KeyboardMain)
}

func (c *Controller) receiveProof(ctx context.Context, in Interaction) Reply {
	if in.PhotoRef != "" {
		if !c.proofMode.acceptsPhoto() {
			return c.reply(in.UserID, render.ProofExpectCode, KeyboardNone)
		}
		c.sessions.Set(in.UserID, Session{State: AwaitingPickupAddress, PendingPhotoRef: in.PhotoRef})
		return c.reply(in.UserID, render.ProofPickupPrompt, KeyboardNone)
	}

	if strings.TrimSpace(in.Text) == "" || !c.proofMode.acceptsCode() {
		if c.proofMode.acceptsCode() {
			return c.reply(in.UserID, c.proofPrompt(), KeyboardNone)
		}
		return c.reply(in.UserID, render.ProofExpectPhoto, KeyboardNone)
	}
	return c.submitProof(ctx, in.UserID, domain.GiftProof{Code: in.Text})
}

func (c *Controller) receivePickupAddress(ctx context.Context, in Interaction, session Session) Reply {
	if strings.TrimSpace(in.Text) == "" {
		return c.reply(in.UserID, render.ProofPickupPrompt, KeyboardNone)
	}
	return c.submitProof(ctx, in.UserID, domain.GiftProof{
		PhotoRef:      session.PendingPhotoRef,
		PickupAddress: in.Text,
	})
}

func (c *Controller) submitProof(ctx context.Context, userID int64, proof domain.GiftProof) Reply {
	receipt, err := c.participants.SubmitProof(ctx, userID, proof)
	c.sessions.Reset(userID)
	switch {
	case errors.Is(err, service.ErrRecipientNotFound):
		return c.reply(userID, render.RecipientNotFound, KeyboardMain)
	case errors.Is(err, service.ErrNotRegistered):
		return c.reply(userID, render.NotRegistered, KeyboardMain)
	case err != nil:
		return c.failure(userID, "conversation.submit_proof", err)
	case !receipt.Delivered:
		return c.reply(userID, render.ProofUndelivered, KeyboardMain)
	default:
		return c.reply(userID, render.ProofDelivered, KeyboardMain)
	}
}

func (c *Controller) listParticipants(ctx context.Context, in Interaction) Reply {
	participants, err := c.admin.ListParticipants(ctx, in.UserID)
	if errors.Is(err, service.ErrUnauthorized) {
		return c.reply(in.UserID, render.Unauthorized, KeyboardMain)
	}
	if err != nil {
		return c.failure(in.UserID, "conversation.list_participants", err)
	}
	if len(participants) == 0 {
		return c.reply(in.UserID, render.NoParticipants, KeyboardAdmin)
	}

	var b strings.Builder
	b.WriteString(c.printer.Sprintf(render.ParticipantsHeader))
	for _, p := range participants {
		status := "❌"
		if p.HasAddress() {
			status = "✅"
		}
		b.WriteString(c.printer.Sprintf(render.ParticipantLine, p.Name(), render.Handle(c.printer, p.Handle), status))
	}
	return c.replyText(in.UserID, b.String(), KeyboardAdmin)
}

// promptDraw asks for confirmation; the draw itself replaces every pairing.
func (c *Controller) promptDraw(ctx context.Context, in Interaction) Reply {
	participants, err := c.admin.ListParticipants(ctx, in.UserID)
	if errors.Is(err, service.ErrUnauthorized) {
		return c.reply(in.UserID, render.Unauthorized, KeyboardMain)
	}
	if err != nil {
		return c.failure(in.UserID, "conversation.prompt_draw", err)
	}
	if len(participants) < 2 {
		return c.reply(in.UserID, render.DrawInsufficient, KeyboardAdmin)
	}
	return c.replyText(in.UserID, c.printer.Sprintf(render.DrawConfirm, len(participants)), KeyboardConfirmDraw)
}

func (c *Controller) confirmDraw(ctx context.Context, in Interaction) Reply {
	summary, err := c.admin.Draw(ctx, in.UserID)
	switch {
	case errors.Is(err, service.ErrUnauthorized):
		return c.reply(in.UserID, render.Unauthorized, KeyboardMain)
	case errors.Is(err, service.ErrInsufficientParticipants):
		return c.reply(in.UserID, render.DrawInsufficient, KeyboardAdmin)
	case err != nil:
		c.log.Error("draw failed", slog.Int64("caller_id", in.UserID), sl.Err(err))
		return c.reply(in.UserID, render.DrawFailed, KeyboardAdmin)
	}
	text := c.printer.Sprintf(render.DrawDone, summary.Participants, summary.Notified, summary.Failed)
	return c.replyText(in.UserID, text, KeyboardAdmin)
}

func (c *Controller) receiveBroadcast(ctx context.Context, in Interaction) Reply {
	summary, err := c.admin.Broadcast(ctx, in.UserID, in.Text)
	switch {
	case errors.Is(err, service.ErrEmptyInput):
		return c.reply(in.UserID, render.BroadcastEmpty, KeyboardNone)
	case errors.Is(err, service.ErrUnauthorized):
		c.sessions.Reset(in.UserID)
		return c.reply(in.UserID, render.Unauthorized, KeyboardMain)
	case err != nil:
		c.sessions.Reset(in.UserID)
		return c.failure(in.UserID, "conversation.broadcast", err)
	}
	c.sessions.Reset(in.UserID)
	return c.replyText(in.UserID, c.printer.Sprintf(render.BroadcastDone, summary.Sent, summary.Failed), KeyboardAdmin)
}

func (c *Controller) reply(userID int64, key string, kb Keyboard) Reply {
	return c.replyText(userID, c.printer.Sprintf(key), kb)
}

func (c *Controller) replyText(userID int64, text string, kb Keyboard) Reply {
	return Reply{Text: text, Keyboard: kb, State: c.sessions.Get(userID).State}
}

func (c *Controller) failure(userID int64, op string, err error) Reply {
	c.log.Error("interaction failed", slog.String("op", op), slog.Int64("user_id", userID), sl.Err(err))
	return c.reply(userID, render.Failure, KeyboardMain)
}
