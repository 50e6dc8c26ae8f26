package services

import (
	"context"
	"errors"
	"fmt"
	"mime/multipart"
	"path"
	"strings"
	"sync"
	"time"
	"unicode"
	"unicode/utf8"

	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"

	"team-files-api/internal/application/ports"
	domain "team-files-api/internal/domain/file"
	"team-files-api/internal/domain/upload"
	"team-files-api/internal/domain/user"
	"team-files-api/internal/infrastructure/mq"
	dtoFile "team-files-api/internal/interface/api/rest/dto/file"
)

var (
	ErrNotAuthenticated = errors.New("user is not authenticated")
	ErrPermissionDenied = errors.New("no permission to delete this file")
	ErrFileNotFound     = errors.New("file not found")
)

const maxBaseNameLen = 100

var (
	windowsReserved = map[string]struct{}{
		"con": {}, "prn": {}, "aux": {}, "nul": {},
		"com1": {}, "com2": {}, "com3": {}, "com4": {}, "com5": {}, "com6": {}, "com7": {}, "com8": {}, "com9": {},
		"lpt1": {}, "lpt2": {}, "lpt3": {}, "lpt4": {}, "lpt5": {}, "lpt6": {}, "lpt7": {}, "lpt8": {}, "lpt9": {},
	}
)

type FileService struct {
	storage        ports.StorageClient
	fileRepository domain.Repository
	mq             ports.RabbitMQ
	mCounter       *prometheus.CounterVec
	logger         *zap.Logger
	uploads        *UploadTracker
	strictDelete   bool

	mu        sync.RWMutex
	files     domain.Files
	subErr    error
	cancelSub context.CancelFunc
}

func NewFileService(
	storage ports.StorageClient,
	fileRepository domain.Repository,
	rabbit ports.RabbitMQ,
	mCounter *prometheus.CounterVec,
	logger *zap.Logger,
	strictDelete bool,
) ports.FileService {
	return &FileService{
		storage:        storage,
		fileRepository: fileRepository,
		mq:             rabbit,
		mCounter:       mCounter,
		logger:         logger,
		uploads:        NewUploadTracker(),
		strictDelete:   strictDelete,
	}
}

// Run establishes the live metadata subscription and blocks until ctx
// is done. A later channel failure does not stop the service; it is
// surfaced through Files() until an explicit Refresh.
func (fs *FileService) Run(ctx context.Context) error {
	if err := fs.Refresh(ctx); err != nil {
		return err
	}

	<-ctx.Done()

	fs.mu.Lock()
	if fs.cancelSub != nil {
		fs.cancelSub()
	}
	fs.mu.Unlock()

	return nil
}

// Refresh (re-)subscribes to the metadata store. This is also the
// manual-retry affordance after a subscription failure; the channel is
// never retried silently in a loop.
//
// The subscription must outlive the call: Refresh is reachable from an
// HTTP handler whose request context dies as soon as the response is
// written, and a listener bound to it would stop without ever pushing
// an error. The caller's ctx is used for values only; cancellation
// comes from the next Refresh or from Run's teardown.
func (fs *FileService) Refresh(ctx context.Context) error {
	subCtx, cancel := context.WithCancel(context.WithoutCancel(ctx))
	snapshots, errs, err := fs.fileRepository.Subscribe(subCtx)
	if err != nil {
		cancel()
		fs.mu.Lock()
		fs.subErr = err
		fs.mu.Unlock()
		return err
	}

	fs.mu.Lock()
	if fs.cancelSub != nil {
		fs.cancelSub()
	}
	fs.cancelSub = cancel
	fs.subErr = nil
	fs.mu.Unlock()

	go fs.consume(snapshots, errs)

	return nil
}

// consume replaces the whole local view on every push; the latest full
// snapshot is authoritative, local writes are never merged in.
func (fs *FileService) consume(snapshots <-chan domain.Files, errs <-chan error) {
	for snapshots != nil || errs != nil {
		select {
		case snap, ok := <-snapshots:
			if !ok {
				snapshots = nil
				continue
			}
			fs.mu.Lock()
			fs.files = snap
			fs.mu.Unlock()
		case err, ok := <-errs:
			if !ok {
				errs = nil
				continue
			}
			if err != nil {
				fs.logger.Error("files subscription failed", zap.Error(err))
				fs.mu.Lock()
				fs.subErr = err
				fs.mu.Unlock()
			}
		}
	}
}

// Files returns the current snapshot and the terminal subscription
// error, if any.
func (fs *FileService) Files() (domain.Files, error) {
	fs.mu.RLock()
	defer fs.mu.RUnlock()

	out := make(domain.Files, len(fs.files))
	copy(out, fs.files)
	return out, fs.subErr
}

func (fs *FileService) snapshotFile(id uuid.UUID) *domain.File {
	fs.mu.RLock()
	defer fs.mu.RUnlock()

	for _, f := range fs.files {
		if f.UUID == id {
			return f
		}
	}
	return nil
}

// UploadFile runs validate -> session -> transfer -> metadata ->
// complete. Validation failures reject before a session exists.
func (fs *FileService) UploadFile(
	ctx context.Context,
	actor *user.User,
	in *multipart.FileHeader,
) (*domain.File, string, error) {
	if actor == nil {
		return nil, "", ErrNotAuthenticated
	}

	check := ValidateFile(in.Filename, in.Size, UploadLimits{
		MaxSizeBytes:   fs.storage.MaxFileSize(),
		AllowedFormats: fs.storage.AllowedFormats(),
	})
	if !check.Valid {
		return nil, "", check.Err
	}

	sessionID := fs.uploads.Begin(in, actor)

	out, err := fs.runPipeline(ctx, sessionID, in, actor, check.Category)
	return out, sessionID, err
}

func (fs *FileService) runPipeline(
	ctx context.Context,
	sessionID string,
	in *multipart.FileHeader,
	owner *user.User,
	category domain.Category,
) (*domain.File, error) {
	fs.uploads.MarkUploading(sessionID)

	src, err := in.Open()
	if err != nil {
		fs.uploads.Fail(sessionID, err.Error())
		return nil, err
	}
	defer src.Close()

	storageName := sanitizeFileName(in.Filename)
	key := fs.genStorageKey(owner.UUID, storageName)

	obj, err := fs.storage.Upload(ctx, src, in.Size, key, contentTypeOf(in), func(percent int) {
		fs.uploads.UpdateProgress(sessionID, percent)
	})
	if err != nil {
		fs.uploads.Fail(sessionID, err.Error())
		fs.mCounter.WithLabelValues("file_uploads_failed_total").Inc()
		return nil, err
	}

	// metadata-write phase
	fs.uploads.MarkProcessing(sessionID)

	out, err := fs.fileRepository.CreateFile(ctx, &domain.File{
		StorageName:  storageName,
		OriginalName: in.Filename,
		MimeType:     contentTypeOf(in),
		Category:     category,
		SizeBytes:    uint64(in.Size),
		OwnerUUID:    owner.UUID,
		OwnerName:    owner.Name,
		DownloadURL:  obj.URL,
		Provider:     fs.storage.Provider(),
		Bucket:       obj.Bucket,
		StorageKey:   obj.Key,
	})
	if err != nil {
		// The transfer already succeeded; the blob stays orphaned
		// rather than metadata pointing at nothing.
		fs.logger.Warn("metadata write failed after upload, remote object orphaned",
			zap.String("storage_key", obj.Key), zap.Error(err))
		fs.uploads.Fail(sessionID, err.Error())
		fs.mCounter.WithLabelValues("file_uploads_failed_total").Inc()
		return nil, err
	}

	fs.uploads.Complete(sessionID, out)
	fs.publishEvent(mq.ActionUploaded, owner, out)
	fs.mCounter.WithLabelValues("files_uploaded_total").Inc()

	return out, nil
}

// DownloadFile bumps the counter and audit log, both best-effort: the
// download itself proceeds even if tracking fails.
func (fs *FileService) DownloadFile(
	ctx context.Context,
	actor *user.User,
	fileUUID uuid.UUID,
) (*domain.File, error) {
	if actor == nil {
		return nil, ErrNotAuthenticated
	}

	rec, err := fs.fileRepository.FetchFileByID(ctx, fileUUID)
	if err != nil {
		return nil, err
	}
	if rec == nil {
		return nil, ErrFileNotFound
	}

	if err = fs.fileRepository.RecordDownload(ctx, rec.UUID); err != nil {
		fs.logger.Warn("download count update failed", zap.Stringer("file_uuid", rec.UUID), zap.Error(err))
	}
	if err = fs.fileRepository.AddDownloadEntry(ctx, &domain.DownloadEntry{
		FileUUID:       rec.UUID,
		FileName:       rec.OriginalName,
		DownloaderUUID: actor.UUID,
		DownloaderName: actor.Name,
	}); err != nil {
		fs.logger.Warn("download history write failed", zap.Stringer("file_uuid", rec.UUID), zap.Error(err))
	}

	fs.publishEvent(mq.ActionDownloaded, actor, rec)
	fs.mCounter.WithLabelValues("files_downloaded_total").Inc()

	return rec, nil
}

// DeleteFile rejects non-owner non-admin actors before any storage or
// repository call. Remote delete failures are non-fatal unless strict
// delete is configured: orphaned metadata would surface as broken
// downloads, an orphaned blob is invisible.
func (fs *FileService) DeleteFile(
	ctx context.Context,
	actor *user.User,
	fileUUID uuid.UUID,
) error {
	if actor == nil {
		return ErrNotAuthenticated
	}

	rec := fs.snapshotFile(fileUUID)
	if rec == nil {
		return ErrFileNotFound
	}
	if !rec.CanBeDeletedBy(actor) {
		return ErrPermissionDenied
	}

	if err := fs.storage.Delete(ctx, rec.StorageKey); err != nil {
		if fs.strictDelete {
			return err
		}
		fs.logger.Warn("remote object delete failed, blob orphaned",
			zap.String("storage_key", rec.StorageKey), zap.Error(err))
	}

	if err := fs.fileRepository.DeleteFile(ctx, rec.UUID); err != nil {
		return err
	}

	fs.publishEvent(mq.ActionDeleted, actor, rec)
	fs.mCounter.WithLabelValues("files_deleted_total").Inc()

	return nil
}

// SearchFiles matches the term against original and owner names.
func (fs *FileService) SearchFiles(term string) domain.Files {
	term = strings.ToLower(term)

	fs.mu.RLock()
	defer fs.mu.RUnlock()

	var out domain.Files
	for _, f := range fs.files {
		if strings.Contains(strings.ToLower(f.OriginalName), term) ||
			strings.Contains(strings.ToLower(f.OwnerName), term) {
			out = append(out, f)
		}
	}
	return out
}

func (fs *FileService) FilesByCategory(c domain.Category) domain.Files {
	fs.mu.RLock()
	defer fs.mu.RUnlock()

	var out domain.Files
	for _, f := range fs.files {
		if f.Category == c {
			out = append(out, f)
		}
	}
	return out
}

func (fs *FileService) FilesByOwner(owner user.UUID) domain.Files {
	fs.mu.RLock()
	defer fs.mu.RUnlock()

	var out domain.Files
	for _, f := range fs.files {
		if f.OwnerUUID == owner {
			out = append(out, f)
		}
	}
	return out
}

// Stats is pure computation over the current snapshot, no I/O.
func (fs *FileService) Stats() domain.Stats {
	fs.mu.RLock()
	defer fs.mu.RUnlock()

	stats := domain.Stats{Categories: make(map[domain.Category]int)}
	for _, f := range fs.files {
		stats.TotalFiles++
		stats.TotalSizeBytes += f.SizeBytes
		stats.TotalDownloads += f.Downloads
		stats.Categories[f.Category]++
	}
	return stats
}

func (fs *FileService) Uploads() []*upload.Session { return fs.uploads.Sessions() }

func (fs *FileService) CancelUpload(id string) error { return fs.uploads.Cancel(id) }

// RetryUpload re-runs the full pipeline on the session's retained file
// handle; failure modes are identical to a fresh upload.
func (fs *FileService) RetryUpload(ctx context.Context, id string) (*domain.File, error) {
	src, owner, err := fs.uploads.Source(id)
	if err != nil {
		return nil, err
	}

	check := ValidateFile(src.Filename, src.Size, UploadLimits{
		MaxSizeBytes:   fs.storage.MaxFileSize(),
		AllowedFormats: fs.storage.AllowedFormats(),
	})
	if !check.Valid {
		return nil, check.Err
	}

	if err = fs.uploads.Reset(id); err != nil {
		return nil, err
	}

	return fs.runPipeline(ctx, id, src, owner, check.Category)
}

func (fs *FileService) ClearCompletedUploads() { fs.uploads.ClearCompleted() }
func (fs *FileService) ClearAllUploads()       { fs.uploads.ClearAll() }

// publishEvent never blocks the request path: when the publisher has
// stopped draining (shutdown, broker outage) the event is dropped with
// a log line instead of wedging the handler on a full buffer.
func (fs *FileService) publishEvent(action string, actor *user.User, rec *domain.File) {
	e := mq.Event{
		Id:        uuid.New(),
		TS:        time.Now(),
		Action:    action,
		ActorUUID: actor.UUID.String(),
		Payload:   dtoFile.ToResponseFile(*rec),
	}
	select {
	case fs.mq.GetInputChan() <- e:
	default:
		fs.logger.Warn("audit event dropped, publisher buffer full",
			zap.String("action", action))
	}
}

// genStorageKey: "files/<useruuid>/<unix-nanosec>_<filename>.ext" —
// unique per uploading user and upload attempt.
func (fs *FileService) genStorageKey(ownerUUID user.UUID, fileName string) string {
	return fmt.Sprintf(
		"files/%s/%d_%s",
		strings.ToLower(strings.ReplaceAll(ownerUUID.String(), "-", "")),
		time.Now().UnixNano(),
		fileName,
	)
}

func contentTypeOf(in *multipart.FileHeader) string {
	if ct := in.Header.Get("Content-Type"); ct != "" {
		return ct
	}
	return "application/octet-stream"
}

// sanitizeFileName make file name ASCII standard
func sanitizeFileName(original string) string {
	if original == "" {
		return "file"
	}

	s := strings.TrimSpace(original)
	s = strings.ReplaceAll(s, "\\", "/")
	s = path.Base(s)

	if s == "." || s == ".." || s == "" {
		return "file"
	}

	t := transform.Chain(norm.NFD, transform.RemoveFunc(isMn), norm.NFC)
	s, _, _ = transform.String(t, s)

	ext := strings.ToLower(path.Ext(s))
	base := strings.TrimSuffix(s, ext)

	//  [a-z0-9], '-' и '_', dot/space → '-'
	var b strings.Builder
	b.Grow(len(base))
	prevDash := false
	for _, r := range base {
		switch {
		case r >= '0' && r <= '9':
			b.WriteRune(r)
			prevDash = false
		case r >= 'a' && r <= 'z':
			b.WriteRune(r)
			prevDash = false
		case r >= 'A' && r <= 'Z':
			b.WriteRune(unicode.ToLower(r))
			prevDash = false
		case r == '-' || r == '_':
			if !prevDash {
				b.WriteRune('-')
				prevDash = true
			}
		case r == '.' || unicode.IsSpace(r):
			if !prevDash {
				b.WriteRune('-')
				prevDash = true
			}
		default:
		}
	}
	base = strings.Trim(b.String(), "-")

	if base == "" {
		base = "file"
	}
	if _, bad := windowsReserved[base]; bad {
		base = "_" + base
	}

	for utf8.RuneCountInString(base)+len(ext) > maxBaseNameLen {
		_, size := utf8.DecodeLastRuneInString(base)
		if size <= 0 || size > len(base) {
			break
		}
		base = base[:len(base)-size]
	}

	return base + ext
}

func isMn(r rune) bool { return unicode.Is(unicode.Mn, r) }
