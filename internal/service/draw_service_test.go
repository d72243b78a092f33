package service

import (
	"context"
	"io"
	"log/slog"
	"math/rand/v2"
	"slices"
	"testing"
	"time"

	"github.com/immxrtalbeast/santa_bot/internal/domain"
	"github.com/immxrtalbeast/santa_bot/internal/repository"
	"github.com/jonboulle/clockwork"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func seededRand(seed uint64) *rand.Rand {
	return rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
}

func sequentialIDs(n int) []int64 {
	ids := make([]int64, n)
	for i := range ids {
		ids[i] = int64(i + 1)
	}
	return ids
}

func registerAll(t *testing.T, repo repository.ParticipantRepository, ids ...int64) []*domain.Participant {
	t.Helper()
	ctx := context.Background()
	for _, id := range ids {
		_, err := repo.Upsert(ctx, id, "", "", domain.RejoinKeep)
		require.NoError(t, err)
	}
	participants, err := repo.ListActive(ctx)
	require.NoError(t, err)
	return participants
}

func requireDerangement(t *testing.T, ids, perm []int64) {
	t.Helper()
	require.Len(t, perm, len(ids))
	for i := range ids {
		require.NotEqual(t, ids[i], perm[i], "participant %d drew themselves", ids[i])
	}
	sortedIDs := slices.Clone(ids)
	sortedPerm := slices.Clone(perm)
	slices.Sort(sortedIDs)
	slices.Sort(sortedPerm)
	require.Equal(t, sortedIDs, sortedPerm, "recipients are not a permutation")
}

func newDrawFixture(t *testing.T, seed uint64, opts ...DrawOption) (*DrawService, *repository.InMemoryParticipantRepository) {
	t.Helper()
	clock := clockwork.NewFakeClockAt(time.Date(2025, 12, 1, 12, 0, 0, 0, time.UTC))
	repo := repository.NewInMemoryParticipantRepository(clock)
	return NewDrawService(repo, seededRand(seed), clock, discardLogger(), opts...), repo
}

func TestDerangeSmallSets(t *testing.T) {
	for n := 2; n <= 7; n++ {
		ids := sequentialIDs(n)
		for seed := uint64(0); seed < 300; seed++ {
			perm, attempts := derange(seededRand(seed), ids, DefaultMaxShuffleAttempts)
			requireDerangement(t, ids, perm)
			require.GreaterOrEqual(t, attempts, 1)
			require.LessOrEqual(t, attempts, DefaultMaxShuffleAttempts)
		}
	}
}

func TestDerangeLargeSet(t *testing.T) {
	ids := sequentialIDs(500)
	rng := seededRand(42)

	total := 0
	for range 50 {
		perm, attempts := derange(rng, ids, DefaultMaxShuffleAttempts)
		requireDerangement(t, ids, perm)
		total += attempts
	}
	// expected attempts per draw is about e
	assert.Less(t, float64(total)/50, 6.0)
}

func TestDerangeCoversAllDerangements(t *testing.T) {
	// 4 elements have exactly 9 derangements.
	ids := sequentialIDs(4)
	rng := seededRand(7)
	seen := make(map[[4]int64]int)
	for range 3000 {
		perm, _ := derange(rng, ids, DefaultMaxShuffleAttempts)
		seen[[4]int64(perm)]++
	}
	require.Len(t, seen, 9)
	for perm, count := range seen {
		assert.Greater(t, count, 200, "derangement %v underrepresented", perm)
	}
}

func TestDerangeTwoIsAlwaysSwap(t *testing.T) {
	ids := []int64{10, 20}
	for seed := uint64(0); seed < 100; seed++ {
		perm, _ := derange(seededRand(seed), ids, DefaultMaxShuffleAttempts)
		require.Equal(t, []int64{20, 10}, perm)
	}
}

func TestDerangeFallbackIsSingleCycle(t *testing.T) {
	for n := 2; n <= 9; n++ {
		ids := sequentialIDs(n)
		for seed := uint64(0); seed < 50; seed++ {
			perm, attempts := derange(seededRand(seed), ids, 0)
			require.Equal(t, 1, attempts)
			requireDerangement(t, ids, perm)

			next := make(map[int64]int64, n)
			for i := range ids {
				next[ids[i]] = perm[i]
			}
			cur, steps := ids[0], 0
			for {
				cur = next[cur]
				steps++
				if cur == ids[0] {
					break
				}
			}
			require.Equal(t, n, steps, "fallback must yield one cycle")
		}
	}
}

func TestPerformDrawThreeParticipants(t *testing.T) {
	ctx := context.Background()
	svc, repo := newDrawFixture(t, 1)
	participants := registerAll(t, repo, 1, 2, 3)

	draw, err := svc.PerformDraw(ctx, participants)
	require.NoError(t, err)
	require.Len(t, draw.Records, 3)

	got := make([]int64, 0, 3)
	for _, id := range []int64{1, 2, 3} {
		recipient, err := repo.GetRecipientOf(ctx, id)
		require.NoError(t, err)
		assert.NotEqual(t, id, recipient.ID)
		assert.Contains(t, []int64{1, 2, 3}, recipient.ID)
		got = append(got, recipient.ID)
	}
	slices.Sort(got)
	assert.Equal(t, []int64{1, 2, 3}, got)

	done, err := repo.HasCompletedDraw(ctx)
	require.NoError(t, err)
	assert.True(t, done)
}

func TestPerformDrawInverseConsistency(t *testing.T) {
	ctx := context.Background()
	svc, repo := newDrawFixture(t, 2)
	participants := registerAll(t, repo, sequentialIDs(25)...)

	_, err := svc.PerformDraw(ctx, participants)
	require.NoError(t, err)

	for _, p := range participants {
		recipient, err := repo.GetRecipientOf(ctx, p.ID)
		require.NoError(t, err)
		santaOfRecipient, err := repo.GetSantaOf(ctx, recipient.ID)
		require.NoError(t, err)
		assert.Equal(t, p.ID, santaOfRecipient.ID)

		santa, err := repo.GetSantaOf(ctx, p.ID)
		require.NoError(t, err)
		recipientOfSanta, err := repo.GetRecipientOf(ctx, santa.ID)
		require.NoError(t, err)
		assert.Equal(t, p.ID, recipientOfSanta.ID)
	}
}

func TestPerformDrawInsufficientKeepsPriorAssignment(t *testing.T) {
	ctx := context.Background()
	svc, repo := newDrawFixture(t, 3)
	participants := registerAll(t, repo, 1, 2, 3)

	first, err := svc.PerformDraw(ctx, participants)
	require.NoError(t, err)

	for _, subset := range [][]*domain.Participant{nil, participants[:1]} {
		draw, err := svc.PerformDraw(ctx, subset)
		require.ErrorIs(t, err, ErrInsufficientParticipants)
		require.Nil(t, draw)
	}

	for _, p := range participants {
		want, ok := first.RecipientOf(p.ID)
		require.True(t, ok)
		recipient, err := repo.GetRecipientOf(ctx, p.ID)
		require.NoError(t, err)
		assert.Equal(t, want, recipient.ID)
	}

	history, err := repo.ListDrawRecords(ctx)
	require.NoError(t, err)
	assert.Len(t, history, 3)
}

func TestPerformDrawInsufficientOnEmptyStore(t *testing.T) {
	ctx := context.Background()
	svc, repo := newDrawFixture(t, 4)
	participants := registerAll(t, repo, 1)

	_, err := svc.PerformDraw(ctx, participants)
	require.ErrorIs(t, err, ErrInsufficientParticipants)

	done, err := repo.HasCompletedDraw(ctx)
	require.NoError(t, err)
	assert.False(t, done)
	_, err = repo.GetRecipientOf(ctx, 1)
	assert.ErrorIs(t, err, repository.ErrParticipantNotFound)
}

func TestPerformDrawRedrawSupersedes(t *testing.T) {
	ctx := context.Background()
	svc, repo := newDrawFixture(t, 5)
	participants := registerAll(t, repo, sequentialIDs(6)...)

	first, err := svc.PerformDraw(ctx, participants)
	require.NoError(t, err)
	second, err := svc.PerformDraw(ctx, participants)
	require.NoError(t, err)
	assert.NotEqual(t, first.ID, second.ID)

	ids := sequentialIDs(6)
	recipients := make([]int64, 0, len(ids))
	for _, id := range ids {
		want, ok := second.RecipientOf(id)
		require.True(t, ok)

		recipient, err := repo.GetRecipientOf(ctx, id)
		require.NoError(t, err)
		assert.Equal(t, want, recipient.ID)

		santa, err := repo.GetSantaOf(ctx, want)
		require.NoError(t, err)
		assert.Equal(t, id, santa.ID)

		recipients = append(recipients, recipient.ID)
	}
	requireDerangement(t, ids, recipients)

	history, err := repo.ListDrawRecords(ctx)
	require.NoError(t, err)
	assert.Len(t, history, 12)
}

func TestPerformDrawForcedFallback(t *testing.T) {
	ctx := context.Background()
	svc, repo := newDrawFixture(t, 6, WithMaxShuffleAttempts(0))
	participants := registerAll(t, repo, sequentialIDs(5)...)

	draw, err := svc.PerformDraw(ctx, participants)
	require.NoError(t, err)
	assert.Equal(t, 1, draw.Attempts)

	recipients := make([]int64, 0, 5)
	for _, r := range draw.Records {
		recipients = append(recipients, r.RecipientID)
	}
	requireDerangement(t, sequentialIDs(5), recipients)
}

func TestPerformDrawRejectsDuplicates(t *testing.T) {
	ctx := context.Background()
	svc, repo := newDrawFixture(t, 7)
	participants := registerAll(t, repo, 1, 2)

	_, err := svc.PerformDraw(ctx, append(participants, participants[0]))
	require.ErrorIs(t, err, ErrDuplicateParticipant)

	done, err := repo.HasCompletedDraw(ctx)
	require.NoError(t, err)
	assert.False(t, done)
}

func TestPerformDrawUsesClock(t *testing.T) {
	ctx := context.Background()
	svc, repo := newDrawFixture(t, 8)
	participants := registerAll(t, repo, 1, 2)

	draw, err := svc.PerformDraw(ctx, participants)
	require.NoError(t, err)
	want := time.Date(2025, 12, 1, 12, 0, 0, 0, time.UTC)
	assert.Equal(t, want, draw.DrawnAt)
	for _, r := range draw.Records {
		assert.Equal(t, draw.ID, r.DrawID)
		assert.Equal(t, want, r.DrawnAt)
	}
}

func TestPerformDrawCancelledContext(t *testing.T) {
	svc, repo := newDrawFixture(t, 9)
	participants := registerAll(t, repo, 1, 2, 3)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := svc.PerformDraw(ctx, participants)
	require.ErrorIs(t, err, context.Canceled)

	done, err := repo.HasCompletedDraw(context.Background())
	require.NoError(t, err)
	assert.False(t, done)
}
