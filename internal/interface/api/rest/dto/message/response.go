package message

import (
	"time"

	"github.com/google/uuid"
)

type (
	Message struct {
		UUID       uuid.UUID `json:"uuid"`
		SenderUUID uuid.UUID `json:"sender_uuid"`
		SenderName string    `json:"sender_name"`
		Content    string    `json:"content"`
		CreatedAt  time.Time `json:"created_at"`
	}
	Messages     []Message
	ResponseData struct {
		Data Messages `json:"data"`
	}
)
