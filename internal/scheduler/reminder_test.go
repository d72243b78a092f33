package scheduler

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/immxrtalbeast/santa_bot/internal/domain"
	"github.com/immxrtalbeast/santa_bot/internal/notifier"
	"github.com/immxrtalbeast/santa_bot/internal/notifier/mocks"
	"github.com/immxrtalbeast/santa_bot/internal/render"
	"github.com/immxrtalbeast/santa_bot/internal/repository"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestAddressReminderSkipsParticipantsWithAddress(t *testing.T) {
	ctx := context.Background()
	repo := repository.NewInMemoryParticipantRepository(nil)
	for _, id := range []int64{1, 2, 3} {
		_, err := repo.Upsert(ctx, id, "", "", domain.RejoinKeep)
		require.NoError(t, err)
	}
	require.NoError(t, repo.SetAddress(ctx, 2, "Moscow"))

	printer := render.NewPrinter("en")
	n := mocks.NewMockNotifier(gomock.NewController(t))
	want := domain.Message{Type: domain.MessageTypeReminder, Text: printer.Sprintf(render.ReminderAddress)}
	n.EXPECT().Deliver(gomock.Any(), int64(1), want).Return(nil)
	n.EXPECT().Deliver(gomock.Any(), int64(3), want).Return(notifier.ErrRecipientUnreachable)

	reminder := NewAddressReminder(repo, n, printer, discardLogger())
	res, err := reminder.Run(ctx)
	require.NoError(t, err)
	assert.Equal(t, ReminderResult{Reminded: 1, Failed: 1}, res)
}

func TestAddressReminderCancelled(t *testing.T) {
	repo := repository.NewInMemoryParticipantRepository(nil)
	n := mocks.NewMockNotifier(gomock.NewController(t))
	reminder := NewAddressReminder(repo, n, render.NewPrinter("en"), discardLogger())

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := reminder.Run(ctx)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestSchedulerLifecycle(t *testing.T) {
	repo := repository.NewInMemoryParticipantRepository(nil)
	n := mocks.NewMockNotifier(gomock.NewController(t))
	reminder := NewAddressReminder(repo, n, render.NewPrinter("en"), discardLogger())

	s, err := New(nil, discardLogger())
	require.NoError(t, err)

	require.Error(t, s.ScheduleReminders(reminder, 0))
	require.NoError(t, s.ScheduleReminders(reminder, time.Hour))

	s.Start()
	require.NoError(t, s.Shutdown())
}
