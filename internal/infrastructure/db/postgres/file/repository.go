package file

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"team-files-api/internal/domain/file"
	"team-files-api/internal/infrastructure/db/postgres"
)

var ErrOwnerRequired = errors.New("file record requires an owner")

type Repository struct {
	db   postgres.Querier
	pool *pgxpool.Pool
}

func NewRepository(db *pgxpool.Pool) file.Repository {
	return &Repository{db: db, pool: db}
}

func (r *Repository) scanFile(row pgx.Row) (*File, error) {
	f := new(File)
	err := row.Scan(
		&f.ID,
		&f.UUID,

		&f.StorageName,
		&f.OriginalName,
		&f.MimeType,
		&f.Category,
		&f.SizeBytes,

		&f.OwnerUUID,
		&f.OwnerName,

		&f.DownloadURL,
		&f.Provider,
		&f.Bucket,
		&f.StorageKey,

		&f.Downloads,
		&f.LastDownloadedAt,

		&f.CreatedAt,
		&f.DeletedAt,
	)
	if err != nil {
		return nil, err
	}

	return f, nil
}

func (r *Repository) FetchFiles(ctx context.Context) (file.Files, error) {
	rows, err := r.db.Query(ctx, SelectFiles)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var fs Files
	for rows.Next() {
		f, err := r.scanFile(rows)
		if err != nil {
			return nil, err
		}

		fs = append(fs, f)
	}
	if err = rows.Err(); err != nil {
		return nil, err
	}

	return fromDBModels(&fs), nil
}

func (r *Repository) FetchFileByID(ctx context.Context, id uuid.UUID) (*file.File, error) {
	f, err := r.scanFile(r.db.QueryRow(ctx, SelectFileByUUID, id.String()))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}

	return fromDBModel(f), nil
}

func (r *Repository) CreateFile(ctx context.Context, req *file.File) (*file.File, error) {
	if req.OwnerUUID == uuid.Nil {
		return nil, ErrOwnerRequired
	}

	f, err := r.scanFile(r.db.QueryRow(
		ctx,
		InsertFile,
		req.StorageName, req.OriginalName, req.MimeType, string(req.Category), req.SizeBytes,
		req.OwnerUUID, req.OwnerName,
		req.DownloadURL, string(req.Provider), req.Bucket, req.StorageKey,
	))
	if err != nil {
		return nil, err
	}

	return fromDBModel(f), nil
}

func (r *Repository) DeleteFile(ctx context.Context, id uuid.UUID) error {
	_, err := r.db.Exec(ctx, SoftDeleteFileByUUID, id.String())
	return err
}

func (r *Repository) RecordDownload(ctx context.Context, id uuid.UUID) error {
	_, err := r.db.Exec(ctx, IncrementDownloads, id.String())
	return err
}

func (r *Repository) AddDownloadEntry(ctx context.Context, e *file.DownloadEntry) error {
	_, err := r.db.Exec(
		ctx,
		InsertDownloadEntry,
		e.FileUUID.String(), e.FileName, e.DownloaderUUID.String(), e.DownloaderName,
	)
	return err
}

// Subscribe holds a dedicated connection on LISTEN files_changed and
// re-reads the full ordered snapshot for every notification. The first
// snapshot is delivered immediately. A notification/connection error
// is pushed to the error channel and ends the subscription; callers
// re-subscribe explicitly.
func (r *Repository) Subscribe(ctx context.Context) (<-chan file.Files, <-chan error, error) {
	conn, err := r.pool.Acquire(ctx)
	if err != nil {
		return nil, nil, err
	}
	if _, err = conn.Exec(ctx, listenFilesChanged); err != nil {
		conn.Release()
		return nil, nil, err
	}

	snapshots := make(chan file.Files, 1)
	errs := make(chan error, 1)

	go func() {
		defer close(snapshots)
		defer close(errs)
		defer conn.Release()

		push := func() bool {
			fs, err := r.FetchFiles(ctx)
			if err != nil {
				errs <- err
				return false
			}
			select {
			case snapshots <- fs:
			case <-ctx.Done():
				return false
			}
			return true
		}

		if !push() {
			return
		}

		for {
			if _, err := conn.Conn().WaitForNotification(ctx); err != nil {
				if ctx.Err() == nil {
					errs <- err
				}
				return
			}
			if !push() {
				return
			}
		}
	}()

	return snapshots, errs, nil
}
