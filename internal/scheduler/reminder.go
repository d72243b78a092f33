// Package scheduler runs the bot's periodic jobs.
package scheduler

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/go-co-op/gocron/v2"
	"github.com/immxrtalbeast/santa_bot/internal/domain"
	"github.com/immxrtalbeast/santa_bot/internal/notifier"
	"github.com/immxrtalbeast/santa_bot/internal/render"
	"github.com/immxrtalbeast/santa_bot/internal/repository"
	"github.com/immxrtalbeast/santa_bot/lib/logger/sl"
	"github.com/jonboulle/clockwork"
)

// AddressReminder nudges every active participant who has not set a
// delivery address yet.
type AddressReminder struct {
	participants repository.ParticipantRepository
	notifier     notifier.Notifier
	printer      render.Printer
	log          *slog.Logger
}

type ReminderResult struct {
	Reminded int
	Failed   int
}

func NewAddressReminder(
	participants repository.ParticipantRepository,
	n notifier.Notifier,
	printer render.Printer,
	log *slog.Logger,
) *AddressReminder {
	return &AddressReminder{participants: participants, notifier: n, printer: printer, log: log}
}

func (r *AddressReminder) Run(ctx context.Context) (ReminderResult, error) {
	const op = "scheduler.reminder.run"
	log := r.log.With(slog.String("op", op))

	var res ReminderResult
	participants, err := r.participants.ListActive(ctx)
	if err != nil {
		return res, fmt.Errorf("%s: %w", op, err)
	}

	msg := domain.Message{Type: domain.MessageTypeReminder, Text: r.printer.Sprintf(render.ReminderAddress)}
	for _, p := range participants {
		if p.HasAddress() {
			continue
		}
		if err := r.notifier.Deliver(ctx, p.ID, msg); err != nil {
			log.Debug("reminder not delivered", slog.Int64("participant_id", p.ID), sl.Err(err))
			res.Failed++
			continue
		}
		res.Reminded++
	}

	log.Info("address reminders sent", slog.Int("reminded", res.Reminded), slog.Int("failed", res.Failed))
	return res, nil
}

// Scheduler wraps a gocron scheduler.
type Scheduler struct {
	sched gocron.Scheduler
	log   *slog.Logger
}

func New(clock clockwork.Clock, log *slog.Logger) (*Scheduler, error) {
	opts := []gocron.SchedulerOption{gocron.WithLocation(time.UTC)}
	if clock != nil {
		opts = append(opts, gocron.WithClock(clock))
	}
	sched, err := gocron.NewScheduler(opts...)
	if err != nil {
		return nil, fmt.Errorf("create scheduler: %w", err)
	}
	return &Scheduler{sched: sched, log: log}, nil
}

// ScheduleReminders runs reminder every interval, each run bounded by the
// interval itself.
func (s *Scheduler) ScheduleReminders(reminder *AddressReminder, interval time.Duration) error {
	_, err := s.sched.NewJob(
		gocron.DurationJob(interval),
		gocron.NewTask(func() {
			ctx, cancel := context.WithTimeout(context.Background(), interval)
			defer cancel()
			if _, err := reminder.Run(ctx); err != nil {
				s.log.Error("address reminder failed", sl.Err(err))
			}
		}),
		gocron.WithName("address-reminder"),
		gocron.WithSingletonMode(gocron.LimitModeReschedule),
	)
	if err != nil {
		return fmt.Errorf("schedule reminders: %w", err)
	}
	return nil
}

func (s *Scheduler) Start() {
	s.sched.Start()
}

func (s *Scheduler) Shutdown() error {
	return s.sched.Shutdown()
}
