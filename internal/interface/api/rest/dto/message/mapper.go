package message

import (
	domain "team-files-api/internal/domain/message"
)

func ToResponseMessage(mDomain domain.Message) Message {
	var m = Message{
		UUID:       mDomain.UUID,
		SenderUUID: mDomain.SenderUUID,
		SenderName: mDomain.SenderName,
		Content:    mDomain.Content,
		CreatedAt:  mDomain.CreatedAt,
	}

	return m
}

func ToResponseMessages(msDomain domain.Messages) Messages {
	ms := make(Messages, len(msDomain))
	for idx, m := range msDomain {
		ms[idx] = ToResponseMessage(*m)
	}

	return ms
}
