package service

import (
	"context"
	"fmt"
	"log/slog"
	"math/rand/v2"
	"slices"
	"sync"

	"github.com/immxrtalbeast/santa_bot/internal/domain"
	"github.com/immxrtalbeast/santa_bot/internal/repository"
	"github.com/immxrtalbeast/santa_bot/lib/logger/sl"
	"github.com/jonboulle/clockwork"
)

// DefaultMaxShuffleAttempts bounds rejection sampling. A uniform shuffle is a
// derangement with probability ~1/e.
const DefaultMaxShuffleAttempts = 1000

// DrawService assigns every active participant a recipient other than
// themselves and commits the pairing atomically.
type DrawService struct {
	participants repository.ParticipantRepository
	clock        clockwork.Clock
	log          *slog.Logger

	mu          sync.Mutex
	rng         *rand.Rand
	maxAttempts int
}

type DrawOption func(*DrawService)

// WithMaxShuffleAttempts overrides the rejection sampling cap. Zero skips
// straight to the single-cycle fallback.
func WithMaxShuffleAttempts(n int) DrawOption {
	return func(s *DrawService) {
		if n >= 0 {
			s.maxAttempts = n
		}
	}
}

func NewDrawService(
	participants repository.ParticipantRepository,
	rng *rand.Rand,
	clock clockwork.Clock,
	log *slog.Logger,
	opts ...DrawOption,
) *DrawService {
	if clock == nil {
		clock = clockwork.NewRealClock()
	}
	s := &DrawService{
		participants: participants,
		clock:        clock,
		log:          log,
		rng:          rng,
		maxAttempts:  DefaultMaxShuffleAttempts,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *DrawService) PerformDraw(ctx context.Context, participants []*domain.Participant) (*domain.Draw, error) {
	const op = "service.draw.perform"
	log := s.log.With(slog.String("op", op))

	if len(participants) < 2 {
		log.Warn("not enough participants", slog.Int("count", len(participants)))
		return nil, ErrInsufficientParticipants
	}

	ids := make([]int64, 0, len(participants))
	seen := make(map[int64]struct{}, len(participants))
	for _, p := range participants {
		if _, ok := seen[p.ID]; ok {
			return nil, fmt.Errorf("%s: %w: %d", op, ErrDuplicateParticipant, p.ID)
		}
		seen[p.ID] = struct{}{}
		ids = append(ids, p.ID)
	}

	s.mu.Lock()
	recipients, attempts := derange(s.rng, ids, s.maxAttempts)
	s.mu.Unlock()

	draw := domain.NewDraw(ids, recipients, s.clock.Now())
	draw.Attempts = attempts

	if err := s.participants.ReplaceAssignments(ctx, draw.Records); err != nil {
		log.Error("failed to commit draw", sl.Err(err))
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	log.Info("draw committed",
		slog.String("draw_id", draw.ID.String()),
		slog.Int("participants", len(ids)),
		slog.Int("attempts", attempts),
	)
	return draw, nil
}

// derange returns a permutation of ids with no fixed point and the number of
// attempts it took. Whole shuffles are retried up to maxAttempts times; past
// that Sattolo's algorithm produces a single cycle, which never has a fixed
// point. len(ids) must be at least 2.
func derange(rng *rand.Rand, ids []int64, maxAttempts int) ([]int64, int) {
	perm := slices.Clone(ids)
	for attempt := 1; attempt <= maxAttempts; attempt++ {
		rng.Shuffle(len(perm), func(i, j int) {
			perm[i], perm[j] = perm[j], perm[i]
		})
		if isDerangement(ids, perm) {
			return perm, attempt
		}
	}

	copy(perm, ids)
	for i := len(perm) - 1; i > 0; i-- {
		j := rng.IntN(i)
		perm[i], perm[j] = perm[j], perm[i]
	}
	return perm, maxAttempts + 1
}

func isDerangement(ids, perm []int64) bool {
	for i := range ids {
		if ids[i] == perm[i] {
			return false
		}
	}
	return true
}
