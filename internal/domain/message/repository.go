package message

import (
	"context"
)

// Repository persists chat messages and exposes a live-updating window
// over the most recent ones. Subscribe pushes the full window on every
// change; consumers replace their local view on each push.
type Repository interface {
	// FetchMessages returns the recent window in chronological order.
	FetchMessages(ctx context.Context) (Messages, error)
	CreateMessage(ctx context.Context, req *Message) (*Message, error)

	// SearchMessages matches term against content and sender name,
	// newest first, over the whole history rather than the window.
	SearchMessages(ctx context.Context, term string) (Messages, error)

	// Subscribe delivers full windows until ctx is cancelled or the
	// underlying channel fails. A channel failure is terminal for this
	// subscription; callers re-subscribe explicitly.
	Subscribe(ctx context.Context) (<-chan Messages, <-chan error, error)
}
