package file

import (
	domain "team-files-api/internal/domain/file"
)

func fromDBModel(model *File) *domain.File {
	var f = &domain.File{
		UUID: model.UUID,

		StorageName:  model.StorageName,
		OriginalName: model.OriginalName,
		MimeType:     model.MimeType,
		Category:     domain.Category(model.Category),
		SizeBytes:    model.SizeBytes,

		OwnerUUID: model.OwnerUUID,
		OwnerName: model.OwnerName,

		DownloadURL: model.DownloadURL,
		Provider:    domain.Provider(model.Provider),
		Bucket:      model.Bucket,
		StorageKey:  model.StorageKey,

		Downloads:        model.Downloads,
		LastDownloadedAt: model.LastDownloadedAt,

		CreatedAt: model.CreatedAt,
		DeletedAt: model.DeletedAt,
	}

	return f
}

func fromDBModels(models *Files) domain.Files {
	fs := make(domain.Files, len(*models))
	for idx, f := range *models {
		fs[idx] = fromDBModel(f)
	}

	return fs
}
