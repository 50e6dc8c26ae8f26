package file

import (
	domain "team-files-api/internal/domain/file"
)

func ToResponseFile(fDomain domain.File) File {
	var f = File{
		UUID:         fDomain.UUID,
		StorageName:  fDomain.StorageName,
		OriginalName: fDomain.OriginalName,
		MimeType:     fDomain.MimeType,
		Category:     string(fDomain.Category),
		SizeBytes:    fDomain.SizeBytes,
		OwnerUUID:    fDomain.OwnerUUID,
		OwnerName:    fDomain.OwnerName,
		DownloadURL:  fDomain.DownloadURL,
		Provider:     string(fDomain.Provider),
		Bucket:       fDomain.Bucket,
		StorageKey:   fDomain.StorageKey,
		Downloads:    fDomain.Downloads,
		LastDownload: fDomain.LastDownloadedAt,
		CreatedAt:    fDomain.CreatedAt,
	}

	return f
}

func ToResponseFiles(fsDomain domain.Files) Files {
	fs := make(Files, len(fsDomain))
	for idx, f := range fsDomain {
		fs[idx] = ToResponseFile(*f)
	}

	return fs
}

func ToResponseStats(sDomain domain.Stats) Stats {
	cats := make(map[string]int, len(sDomain.Categories))
	for c, n := range sDomain.Categories {
		cats[string(c)] = n
	}

	return Stats{
		TotalFiles:     sDomain.TotalFiles,
		TotalSizeBytes: sDomain.TotalSizeBytes,
		TotalDownloads: sDomain.TotalDownloads,
		Categories:     cats,
	}
}
