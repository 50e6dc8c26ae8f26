package message

import (
	domain "team-files-api/internal/domain/message"
)

func fromDBModel(model *Message) *domain.Message {
	var m = &domain.Message{
		ID:         model.ID,
		UUID:       model.UUID,
		SenderUUID: model.SenderUUID,
		SenderName: model.SenderName,
		Content:    model.Content,
		CreatedAt:  model.CreatedAt,
	}

	return m
}

func fromDBModels(models *Messages) domain.Messages {
	ms := make(domain.Messages, len(*models))
	for idx, m := range *models {
		ms[idx] = fromDBModel(m)
	}

	return ms
}
