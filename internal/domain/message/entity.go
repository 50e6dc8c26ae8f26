package message

import (
	"time"

	"github.com/google/uuid"
)

type (
	// Message is one team-chat entry. Content is plain text; the sender
	// name is denormalized at write time so history survives account
	// removal, same as file ownership.
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
