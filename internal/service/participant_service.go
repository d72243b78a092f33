package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/immxrtalbeast/santa_bot/internal/domain"
	"github.com/immxrtalbeast/santa_bot/internal/notifier"
	"github.com/immxrtalbeast/santa_bot/internal/render"
	"github.com/immxrtalbeast/santa_bot/internal/repository"
	"github.com/immxrtalbeast/santa_bot/lib/logger/sl"
)

// PhotoLocator turns a stored photo reference into a URL the recipient can
// open.
type PhotoLocator interface {
	URL(ctx context.Context, key string) (string, error)
}

type ParticipantService struct {
	participants repository.ParticipantRepository
	notifier     notifier.Notifier
	photos       PhotoLocator
	printer      render.Printer
	policy       domain.RejoinPolicy
	log          *slog.Logger
}

func NewParticipantService(
	participants repository.ParticipantRepository,
	n notifier.Notifier,
	photos PhotoLocator,
	printer render.Printer,
	policy domain.RejoinPolicy,
	log *slog.Logger,
) *ParticipantService {
	return &ParticipantService{
		participants: participants,
		notifier:     n,
		photos:       photos,
		printer:      printer,
		policy:       policy,
		log:          log,
	}
}

func (s *ParticipantService) Register(ctx context.Context, id int64, handle, displayName string) (*domain.Participant, error) {
	const op = "service.participant.register"
	log := s.log.With(slog.String("op", op), slog.Int64("participant_id", id))

	p, err := s.participants.Upsert(ctx, id, handle, displayName, s.policy)
	if err != nil {
		log.Error("failed to register participant", sl.Err(err))
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	log.Info("participant registered", slog.String("policy", string(s.policy)))
	return p, nil
}

func (s *ParticipantService) Participant(ctx context.Context, id int64) (*domain.Participant, error) {
	const op = "service.participant.get"

	p, err := s.participants.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrParticipantNotFound) {
			return nil, ErrNotRegistered
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return p, nil
}

func (s *ParticipantService) SetAddress(ctx context.Context, id int64, address string) error {
	const op = "service.participant.set_address"
	log := s.log.With(slog.String("op", op), slog.Int64("participant_id", id))

	address = strings.TrimSpace(address)
	if address == "" {
		return ErrEmptyInput
	}
	if _, err := s.Participant(ctx, id); err != nil {
		return err
	}
	if err := s.participants.SetAddress(ctx, id, address); err != nil {
		log.Error("failed to save address", sl.Err(err))
		return fmt.Errorf("%s: %w", op, err)
	}
	log.Info("address saved")
	return nil
}

// MyRecipient resolves the caller's current recipient. It distinguishes "no
// draw yet" from "not part of the draw".
func (s *ParticipantService) MyRecipient(ctx context.Context, id int64) (*domain.Participant, error) {
	const op = "service.participant.my_recipient"

	done, err := s.participants.HasCompletedDraw(ctx)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	if !done {
		return nil, ErrDrawNotPerformed
	}

	recipient, err := s.participants.GetRecipientOf(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrParticipantNotFound) {
			return nil, ErrNotInDraw
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return recipient, nil
}

// SubmitProof stores the santa's gift proof and relays it to their recipient.
// The proof stays stored whatever happens to the delivery; a failed delivery
// is reported through the receipt, not as an error.
func (s *ParticipantService) SubmitProof(ctx context.Context, santaID int64, proof domain.GiftProof) (*ProofReceipt, error) {
	const op = "service.participant.submit_proof"
	log := s.log.With(slog.String("op", op), slog.Int64("santa_id", santaID))

	proof.Code = strings.TrimSpace(proof.Code)
	proof.PickupAddress = strings.TrimSpace(proof.PickupAddress)
	if proof.Code == "" && (proof.PhotoRef == "" || proof.PickupAddress == "") {
		return nil, ErrEmptyInput
	}

	santa, err := s.Participant(ctx, santaID)
	if err != nil {
		return nil, err
	}

	if err := s.participants.SetGiftProof(ctx, santaID, proof); err != nil {
		log.Error("failed to store gift proof", sl.Err(err))
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	recipient, err := s.participants.GetRecipientOf(ctx, santaID)
	if err != nil {
		if errors.Is(err, repository.ErrParticipantNotFound) {
			log.Warn("gift proof stored without a recipient")
			return nil, ErrRecipientNotFound
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	msg := s.proofMessage(ctx, santa, proof)
	receipt := &ProofReceipt{RecipientID: recipient.ID, Delivered: true}
	if err := s.notifier.Deliver(ctx, recipient.ID, msg); err != nil {
		log.Warn("gift proof not delivered",
			slog.Int64("recipient_id", recipient.ID),
			sl.Err(err),
		)
		receipt.Delivered = false
		return receipt, nil
	}

	log.Info("gift proof delivered", slog.Int64("recipient_id", recipient.ID))
	return receipt, nil
}

func (s *ParticipantService) proofMessage(ctx context.Context, santa *domain.Participant, proof domain.GiftProof) domain.Message {
	handle := render.Handle(s.printer, santa.Handle)
	if !proof.IsPhoto() {
		return domain.Message{
			Type: domain.MessageTypeProof,
			Text: s.printer.Sprintf(render.ProofRelayCode, proof.Code, santa.Name(), handle),
		}
	}

	msg := domain.Message{
		Type:     domain.MessageTypeProof,
		Text:     s.printer.Sprintf(render.ProofRelayPhoto, proof.PickupAddress, santa.Name(), handle),
		PhotoRef: proof.PhotoRef,
	}
	if s.photos != nil {
		url, err := s.photos.URL(ctx, proof.PhotoRef)
		if err != nil {
			s.log.Warn("failed to resolve photo url", slog.String("photo_ref", proof.PhotoRef), sl.Err(err))
		} else {
			msg.PhotoURL = url
		}
	}
	return msg
}
