package service

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/immxrtalbeast/santa_bot/internal/domain"
	"github.com/immxrtalbeast/santa_bot/internal/notifier"
	"github.com/immxrtalbeast/santa_bot/internal/render"
	"github.com/immxrtalbeast/santa_bot/internal/repository"
	"github.com/immxrtalbeast/santa_bot/lib/logger/sl"
	"github.com/jonboulle/clockwork"
)

// AdminService runs the administrator operations. Every operation checks the
// caller against the configured administrator id itself.
type AdminService struct {
	adminID        int64
	participants   repository.ParticipantRepository
	draws          DrawPerformer
	notifier       notifier.Notifier
	printer        render.Printer
	clock          clockwork.Clock
	broadcastDelay time.Duration
	log            *slog.Logger
}

func NewAdminService(
	adminID int64,
	participants repository.ParticipantRepository,
	draws DrawPerformer,
	n notifier.Notifier,
	printer render.Printer,
	clock clockwork.Clock,
	broadcastDelay time.Duration,
	log *slog.Logger,
) *AdminService {
	if clock == nil {
		clock = clockwork.NewRealClock()
	}
	return &AdminService{
		adminID:        adminID,
		participants:   participants,
		draws:          draws,
		notifier:       n,
		printer:        printer,
		clock:          clock,
		broadcastDelay: broadcastDelay,
		log:            log,
	}
}

func (s *AdminService) IsAdmin(callerID int64) bool {
	return callerID == s.adminID
}

func (s *AdminService) authorize(op string, callerID int64) error {
	if s.IsAdmin(callerID) {
		return nil
	}
	s.log.Warn("unauthorized admin call", slog.String("op", op), slog.Int64("caller_id", callerID))
	return ErrUnauthorized
}

func (s *AdminService) ListParticipants(ctx context.Context, callerID int64) ([]*domain.Participant, error) {
	const op = "service.admin.list_participants"
	if err := s.authorize(op, callerID); err != nil {
		return nil, err
	}

	participants, err := s.participants.ListActive(ctx)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return participants, nil
}

func (s *AdminService) ListDraws(ctx context.Context, callerID int64) ([]domain.DrawRecord, error) {
	const op = "service.admin.list_draws"
	if err := s.authorize(op, callerID); err != nil {
		return nil, err
	}

	records, err := s.participants.ListDrawRecords(ctx)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return records, nil
}

// Draw pairs all active participants and tells each santa who their
// recipient is. Notification failures are counted, never fatal.
func (s *AdminService) Draw(ctx context.Context, callerID int64) (*DrawSummary, error) {
	const op = "service.admin.draw"
	if err := s.authorize(op, callerID); err != nil {
		return nil, err
	}
	log := s.log.With(slog.String("op", op))

	participants, err := s.participants.ListActive(ctx)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	draw, err := s.draws.PerformDraw(ctx, participants)
	if err != nil {
		return nil, err
	}

	byID := make(map[int64]*domain.Participant, len(participants))
	for _, p := range participants {
		byID[p.ID] = p
	}

	summary := &DrawSummary{Draw: draw, Participants: len(participants)}
	for _, record := range draw.Records {
		recipient := byID[record.RecipientID]
		msg := domain.Message{
			Type: domain.MessageTypeDraw,
			Text: s.printer.Sprintf(render.DrawNotice, recipient.Name(), render.Handle(s.printer, recipient.Handle)),
		}
		if err := s.notifier.Deliver(ctx, record.SantaID, msg); err != nil {
			log.Warn("failed to notify santa", slog.Int64("santa_id", record.SantaID), sl.Err(err))
			summary.Failed++
			continue
		}
		summary.Notified++
	}

	log.Info("draw finished",
		slog.Int("participants", summary.Participants),
		slog.Int("notified", summary.Notified),
		slog.Int("failed", summary.Failed),
	)
	return summary, nil
}

// Broadcast sends text to every active participant one by one, pausing
// broadcastDelay between deliveries.
func (s *AdminService) Broadcast(ctx context.Context, callerID int64, text string) (*BroadcastSummary, error) {
	const op = "service.admin.broadcast"
	if err := s.authorize(op, callerID); err != nil {
		return nil, err
	}
	log := s.log.With(slog.String("op", op))

	text = strings.TrimSpace(text)
	if text == "" {
		return nil, ErrEmptyInput
	}

	participants, err := s.participants.ListActive(ctx)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	msg := domain.Message{
		Type: domain.MessageTypeBroadcast,
		Text: s.printer.Sprintf(render.BroadcastMessage, text),
	}

	summary := &BroadcastSummary{}
	for i, p := range participants {
		if i > 0 && s.broadcastDelay > 0 {
			s.clock.Sleep(s.broadcastDelay)
		}
		if err := s.notifier.Deliver(ctx, p.ID, msg); err != nil {
			log.Warn("broadcast delivery failed", slog.Int64("participant_id", p.ID), sl.Err(err))
			summary.Failed++
			continue
		}
		summary.Sent++
	}

	log.Info("broadcast finished", slog.Int("sent", summary.Sent), slog.Int("failed", summary.Failed))
	return summary, nil
}
