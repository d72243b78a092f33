package service

import (
	"context"
	"errors"
	"strings"
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

type stubPhotos struct{}

func (stubPhotos) URL(_ context.Context, key string) (string, error) {
	return "https://cdn.example/" + key, nil
}

type participantFixture struct {
	svc      *ParticipantService
	repo     *repository.InMemoryParticipantRepository
	notifier *mocks.MockNotifier
}

func newParticipantFixture(t *testing.T, policy domain.RejoinPolicy) participantFixture {
	t.Helper()
	ctrl := gomock.NewController(t)
	repo := repository.NewInMemoryParticipantRepository(nil)
	n := mocks.NewMockNotifier(ctrl)
	svc := NewParticipantService(repo, n, stubPhotos{}, render.NewPrinter("en"), policy, discardLogger())
	return participantFixture{svc: svc, repo: repo, notifier: n}
}

// pair registers santa and recipient and assigns santa -> recipient.
func (f participantFixture) pair(t *testing.T, santa, recipient int64) {
	t.Helper()
	ctx := context.Background()
	_, err := f.svc.Register(ctx, santa, "santa", "Santa")
	require.NoError(t, err)
	_, err = f.svc.Register(ctx, recipient, "elf", "Elf")
	require.NoError(t, err)
	draw := domain.NewDraw([]int64{santa, recipient}, []int64{recipient, santa}, time.Now())
	require.NoError(t, f.repo.ReplaceAssignments(ctx, draw.Records))
}

func TestRegisterPolicies(t *testing.T) {
	ctx := context.Background()

	keep := newParticipantFixture(t, domain.RejoinKeep)
	_, err := keep.svc.Register(ctx, 1, "a", "Alice")
	require.NoError(t, err)
	require.NoError(t, keep.svc.SetAddress(ctx, 1, "Moscow"))
	p, err := keep.svc.Register(ctx, 1, "alice", "Alice B")
	require.NoError(t, err)
	assert.Equal(t, "Moscow", p.Address)
	assert.Equal(t, "alice", p.Handle)
	assert.Equal(t, "Alice B", p.DisplayName)

	reset := newParticipantFixture(t, domain.RejoinReset)
	_, err = reset.svc.Register(ctx, 1, "a", "Alice")
	require.NoError(t, err)
	require.NoError(t, reset.svc.SetAddress(ctx, 1, "Moscow"))
	p, err = reset.svc.Register(ctx, 1, "a", "Alice")
	require.NoError(t, err)
	assert.Empty(t, p.Address)
}

func TestParticipantNotRegistered(t *testing.T) {
	f := newParticipantFixture(t, domain.RejoinKeep)
	_, err := f.svc.Participant(context.Background(), 99)
	assert.ErrorIs(t, err, ErrNotRegistered)
}

func TestSetAddress(t *testing.T) {
	ctx := context.Background()
	f := newParticipantFixture(t, domain.RejoinKeep)

	require.ErrorIs(t, f.svc.SetAddress(ctx, 1, "Moscow"), ErrNotRegistered)
	_, err := f.repo.GetByID(ctx, 1)
	require.ErrorIs(t, err, repository.ErrParticipantNotFound)

	_, err = f.svc.Register(ctx, 1, "a", "Alice")
	require.NoError(t, err)
	require.ErrorIs(t, f.svc.SetAddress(ctx, 1, "   "), ErrEmptyInput)
	require.NoError(t, f.svc.SetAddress(ctx, 1, "  Moscow, Tverskaya 1 "))

	p, err := f.repo.GetByID(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, "Moscow, Tverskaya 1", p.Address)
}

func TestMyRecipient(t *testing.T) {
	ctx := context.Background()
	f := newParticipantFixture(t, domain.RejoinKeep)

	_, err := f.svc.Register(ctx, 1, "santa", "Santa")
	require.NoError(t, err)
	_, err = f.svc.MyRecipient(ctx, 1)
	require.ErrorIs(t, err, ErrDrawNotPerformed)

	f.pair(t, 1, 2)
	recipient, err := f.svc.MyRecipient(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, int64(2), recipient.ID)

	_, err = f.svc.Register(ctx, 3, "late", "Late")
	require.NoError(t, err)
	_, err = f.svc.MyRecipient(ctx, 3)
	assert.ErrorIs(t, err, ErrNotInDraw)
}

func TestSubmitProofBeforeDraw(t *testing.T) {
	ctx := context.Background()
	f := newParticipantFixture(t, domain.RejoinKeep)
	_, err := f.svc.Register(ctx, 1, "a", "Alice")
	require.NoError(t, err)

	receipt, err := f.svc.SubmitProof(ctx, 1, domain.GiftProof{Code: "TRACK-1"})
	require.ErrorIs(t, err, ErrRecipientNotFound)
	assert.Nil(t, receipt)

	p, err := f.repo.GetByID(ctx, 1)
	require.NoError(t, err)
	require.NotNil(t, p.GiftProof)
	assert.Equal(t, "TRACK-1", p.GiftProof.Code)
	assert.Nil(t, p.RecipientID)
	assert.Nil(t, p.SantaID)
}

func TestSubmitProofCodeDelivered(t *testing.T) {
	ctx := context.Background()
	f := newParticipantFixture(t, domain.RejoinKeep)
	f.pair(t, 1, 2)

	f.notifier.EXPECT().
		Deliver(gomock.Any(), int64(2), gomock.Any()).
		DoAndReturn(func(_ context.Context, _ int64, msg domain.Message) error {
			assert.Equal(t, domain.MessageTypeProof, msg.Type)
			assert.Contains(t, msg.Text, "TRACK-1")
			assert.Contains(t, msg.Text, "@santa")
			assert.Empty(t, msg.PhotoRef)
			return nil
		})

	receipt, err := f.svc.SubmitProof(ctx, 1, domain.GiftProof{Code: " TRACK-1 "})
	require.NoError(t, err)
	assert.True(t, receipt.Delivered)
	assert.Equal(t, int64(2), receipt.RecipientID)
}

func TestSubmitProofPhotoDelivered(t *testing.T) {
	ctx := context.Background()
	f := newParticipantFixture(t, domain.RejoinKeep)
	f.pair(t, 1, 2)

	f.notifier.EXPECT().
		Deliver(gomock.Any(), int64(2), gomock.Any()).
		DoAndReturn(func(_ context.Context, _ int64, msg domain.Message) error {
			assert.Equal(t, "photos/qr.jpg", msg.PhotoRef)
			assert.Equal(t, "https://cdn.example/photos/qr.jpg", msg.PhotoURL)
			assert.Contains(t, msg.Text, "Pickup point 7")
			return nil
		})

	receipt, err := f.svc.SubmitProof(ctx, 1, domain.GiftProof{PhotoRef: "photos/qr.jpg", PickupAddress: "Pickup point 7"})
	require.NoError(t, err)
	assert.True(t, receipt.Delivered)

	p, err := f.repo.GetByID(ctx, 1)
	require.NoError(t, err)
	assert.True(t, p.GiftProof.IsPhoto())
}

func TestSubmitProofDeliveryFailureKeepsProof(t *testing.T) {
	ctx := context.Background()
	f := newParticipantFixture(t, domain.RejoinKeep)
	f.pair(t, 1, 2)

	f.notifier.EXPECT().
		Deliver(gomock.Any(), int64(2), gomock.Any()).
		Return(errors.Join(notifier.ErrDeliveryFailed, notifier.ErrRecipientUnreachable))

	receipt, err := f.svc.SubmitProof(ctx, 1, domain.GiftProof{Code: "CODE"})
	require.NoError(t, err)
	assert.False(t, receipt.Delivered)

	p, err := f.repo.GetByID(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, "CODE", p.GiftProof.Code)
}

func TestSubmitProofValidation(t *testing.T) {
	ctx := context.Background()
	f := newParticipantFixture(t, domain.RejoinKeep)

	_, err := f.svc.SubmitProof(ctx, 1, domain.GiftProof{Code: "x"})
	require.ErrorIs(t, err, ErrNotRegistered)

	_, err = f.svc.Register(ctx, 1, "a", "Alice")
	require.NoError(t, err)
	for _, proof := range []domain.GiftProof{
		{},
		{Code: strings.Repeat(" ", 3)},
		{PhotoRef: "photo"},
		{PickupAddress: "somewhere"},
	} {
		_, err := f.svc.SubmitProof(ctx, 1, proof)
		assert.ErrorIs(t, err, ErrEmptyInput)
	}

	p, err := f.repo.GetByID(ctx, 1)
	require.NoError(t, err)
	assert.Nil(t, p.GiftProof)
}
