package notifier

import (
	"context"
	"errors"

	"github.com/immxrtalbeast/santa_bot/internal/domain"
)

//go:generate mockgen -source=notifier.go -destination=mocks/mock_notifier.go -package=mocks

var (
	ErrDeliveryFailed       = errors.New("delivery failed")
	ErrRecipientUnreachable = errors.New("recipient unreachable")
)

// Notifier delivers messages to a participant's chat. Implementations report
// failures through the returned error and never panic.
type Notifier interface {
	Deliver(ctx context.Context, participantID int64, msg domain.Message) error
}
