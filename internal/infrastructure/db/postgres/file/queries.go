package file

const (
	fileColumns = `id, uuid, storage_name, original_name, mime_type, category, size_bytes, owner_uuid, owner_name, download_url, provider, bucket, storage_key, downloads, last_downloaded_at, created_at, deleted_at`

	SelectFiles = `
		SELECT ` + fileColumns + `
		FROM files
		WHERE deleted_at IS NULL
		ORDER BY created_at DESC
	`
	SelectFileByUUID = `
		SELECT ` + fileColumns + `
		FROM files
		WHERE uuid = $1 AND deleted_at IS NULL
	`
	InsertFile = `
		INSERT INTO files (storage_name, original_name, mime_type, category, size_bytes, owner_uuid, owner_name, download_url, provider, bucket, storage_key)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
		RETURNING ` + fileColumns + `
	`
	SoftDeleteFileByUUID = `
		UPDATE files
		SET deleted_at = now()
		WHERE uuid = $1 AND deleted_at IS NULL
	`
	// Relative increment: correct under concurrent downloaders, no
	// read-modify-write window.
	IncrementDownloads = `
		UPDATE files
		SET downloads = downloads + 1,
		    last_downloaded_at = now()
		WHERE uuid = $1 AND deleted_at IS NULL
	`
	InsertDownloadEntry = `
		INSERT INTO download_history (file_uuid, file_name, downloader_uuid, downloader_name)
		VALUES ($1, $2, $3, $4)
	`

	// The files_changed trigger (see migrations) fires pg_notify on
	// every insert/update/delete, so any client's write lands here.
	listenFilesChanged = `LISTEN files_changed`
)
