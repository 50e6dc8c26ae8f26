package message

const (
	messageColumns = `id, uuid, sender_uuid, sender_name, content, created_at`

	// Chat shows the newest window in chronological order, so select
	// the recent slice descending and flip it back.
	SelectMessages = `
		SELECT ` + messageColumns + `
		FROM (
			SELECT ` + messageColumns + `
			FROM messages
			ORDER BY created_at DESC
			LIMIT 200
		) recent
		ORDER BY created_at ASC
	`
	InsertMessage = `
		INSERT INTO messages (sender_uuid, sender_name, content)
		VALUES ($1, $2, $3)
		RETURNING ` + messageColumns + `
	`
	SearchMessagesQuery = `
		SELECT ` + messageColumns + `
		FROM messages
		WHERE content ILIKE '%' || $1 || '%' OR sender_name ILIKE '%' || $1 || '%'
		ORDER BY created_at DESC
		LIMIT 100
	`

	// The messages_changed trigger (see migrations) fires pg_notify on
	// every insert/update/delete, so any client's write lands here.
	listenMessagesChanged = `LISTEN messages_changed`
)
