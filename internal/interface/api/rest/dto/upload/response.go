package upload

import "time"

type (
	Session struct {
		ID        string    `json:"id"`
		FileName  string    `json:"file_name"`
		SizeBytes int64     `json:"size_bytes"`
		Progress  int       `json:"progress"`
		Status    string    `json:"status"`
		Error     string    `json:"error,omitempty"`
		FileUUID  string    `json:"file_uuid,omitempty"`
		StartedAt time.Time `json:"started_at"`
	}
	Sessions     []Session
	ResponseData struct {
		Data Sessions `json:"data"`
	}
)
