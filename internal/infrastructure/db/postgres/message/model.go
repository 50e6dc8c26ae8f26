package message

import (
	"time"

	"github.com/google/uuid"
)

type (
	Message struct {
		ID         uint64
		UUID       uuid.UUID
		SenderUUID uuid.UUID
		SenderName string
		Content    string
		CreatedAt  time.Time
	}
	Messages []*Message
)
