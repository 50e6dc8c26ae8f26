package upload

import (
	domain "team-files-api/internal/domain/upload"
)

func ToResponseSession(sDomain domain.Session) Session {
	s := Session{
		ID:        sDomain.ID,
		FileName:  sDomain.FileName,
		SizeBytes: sDomain.SizeBytes,
		Progress:  sDomain.Progress,
		Status:    string(sDomain.Status),
		Error:     sDomain.Error,
		StartedAt: sDomain.StartedAt,
	}
	if sDomain.Metadata != nil {
		s.FileUUID = sDomain.Metadata.UUID.String()
	}

	return s
}

func ToResponseSessions(ssDomain []*domain.Session) Sessions {
	ss := make(Sessions, len(ssDomain))
	for idx, s := range ssDomain {
		ss[idx] = ToResponseSession(*s)
	}

	return ss
}
