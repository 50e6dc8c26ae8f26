package ports

import (
	"context"

	"team-files-api/internal/domain/message"
	"team-files-api/internal/domain/user"
)

type MessageService interface {
	Run(ctx context.Context) error
	Refresh(ctx context.Context) error

	Messages() (message.Messages, error)
	SendMessage(ctx context.Context, actor *user.User, content string) (*message.Message, error)
	SearchMessages(ctx context.Context, term string) (message.Messages, error)
}
