package message

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"team-files-api/internal/domain/message"
	"team-files-api/internal/infrastructure/db/postgres"
)

var ErrSenderRequired = errors.New("message requires a sender")

type Repository struct {
	db   postgres.Querier
	pool *pgxpool.Pool
}

func NewRepository(db *pgxpool.Pool) message.Repository {
	return &Repository{db: db, pool: db}
}

func (r *Repository) scanMessage(row pgx.Row) (*Message, error) {
	m := new(Message)
	err := row.Scan(
		&m.ID,
		&m.UUID,
		&m.SenderUUID,
		&m.SenderName,
		&m.Content,
		&m.CreatedAt,
	)
	if err != nil {
		return nil, err
	}

	return m, nil
}

func (r *Repository) fetch(ctx context.Context, query string, args ...any) (message.Messages, error) {
	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var ms Messages
	for rows.Next() {
		m, err := r.scanMessage(rows)
		if err != nil {
			return nil, err
		}

		ms = append(ms, m)
	}
	if err = rows.Err(); err != nil {
		return nil, err
	}

	return fromDBModels(&ms), nil
}

func (r *Repository) FetchMessages(ctx context.Context) (message.Messages, error) {
	return r.fetch(ctx, SelectMessages)
}

func (r *Repository) SearchMessages(ctx context.Context, term string) (message.Messages, error) {
	return r.fetch(ctx, SearchMessagesQuery, term)
}

func (r *Repository) CreateMessage(ctx context.Context, req *message.Message) (*message.Message, error) {
	if req.SenderUUID == uuid.Nil {
		return nil, ErrSenderRequired
	}

	m, err := r.scanMessage(r.db.QueryRow(
		ctx,
		InsertMessage,
		req.SenderUUID, req.SenderName, req.Content,
	))
	if err != nil {
		return nil, err
	}

	return fromDBModel(m), nil
}

// Subscribe holds a dedicated connection on LISTEN messages_changed
// and re-reads the recent window for every notification. The first
// window is delivered immediately. A notification/connection error is
// pushed to the error channel and ends the subscription; callers
// re-subscribe explicitly.
func (r *Repository) Subscribe(ctx context.Context) (<-chan message.Messages, <-chan error, error) {
	conn, err := r.pool.Acquire(ctx)
	if err != nil {
		return nil, nil, err
	}
	if _, err = conn.Exec(ctx, listenMessagesChanged); err != nil {
		conn.Release()
		return nil, nil, err
	}

	windows := make(chan message.Messages, 1)
	errs := make(chan error, 1)

	go func() {
		defer close(windows)
		defer close(errs)
		defer conn.Release()

		push := func() bool {
			ms, err := r.FetchMessages(ctx)
			if err != nil {
				errs <- err
				return false
			}
			select {
			case windows <- ms:
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

	return windows, errs, nil
}
