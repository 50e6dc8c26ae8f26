package user

import (
	domain "team-files-api/internal/domain/user"
)

func fromDBModel(model *User) *domain.User {
	var deletedBy *domain.ID
	if model.DeletedBy != nil {
		id := domain.ID(*model.DeletedBy)
		deletedBy = &id
	}

	var u = &domain.User{
		UUID:         model.UUID,
		Email:        model.Email,
		PasswordHash: model.PasswordHash,
		Role:         model.Role,
		Name:         model.Name,

		CreatedAt: model.CreatedAt,
		UpdatedAt: model.UpdatedAt,

		DeletedAt: model.DeletedAt,
		DeletedBy: deletedBy,
	}

	return u
}

func fromDBModels(models *Users) domain.Users {
	us := make(domain.Users, len(*models))
	for idx, u := range *models {
		us[idx] = fromDBModel(u)
	}

	return us
}
