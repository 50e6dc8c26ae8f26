package user

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/pashagolub/pgxmock/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	domain "team-files-api/internal/domain/user"
)

var userCols = []string{
	"id", "uuid", "email", "password_hash", "role", "name",
	"created_at", "updated_at", "deleted_at", "deleted_by",
}

func newMockRepo(t *testing.T) (*Repository, pgxmock.PgxPoolIface) {
	t.Helper()

	mock, err := pgxmock.NewPool(pgxmock.QueryMatcherOption(pgxmock.QueryMatcherEqual))
	require.NoError(t, err)
	t.Cleanup(mock.Close)

	return &Repository{db: mock}, mock
}

func sampleUserRow(mock pgxmock.PgxPoolIface, id uint64, email string) *pgxmock.Rows {
	hash := "$2a$10$fakefakefakefakefakefake"
	now := time.Date(2025, 3, 1, 9, 0, 0, 0, time.UTC)

	return mock.NewRows(userCols).AddRow(
		id, uuid.New(), email, &hash, "employee", "Jane Doe",
		now, now, nil, nil,
	)
}

func TestRepository_FetchUserByEmail(t *testing.T) {
	repo, mock := newMockRepo(t)

	mock.ExpectQuery(SelectUserByEmail).
		WithArgs("jane@corp.test").
		WillReturnRows(sampleUserRow(mock, 7, "jane@corp.test"))

	u, err := repo.FetchUserByEmail(context.Background(), "jane@corp.test")
	require.NoError(t, err)
	require.NotNil(t, u)

	assert.Equal(t, "jane@corp.test", u.Email)
	assert.Equal(t, "employee", u.Role)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRepository_FetchUserByEmail_NotFound(t *testing.T) {
	repo, mock := newMockRepo(t)

	mock.ExpectQuery(SelectUserByEmail).
		WithArgs("ghost@corp.test").
		WillReturnError(pgx.ErrNoRows)

	u, err := repo.FetchUserByEmail(context.Background(), "ghost@corp.test")
	require.NoError(t, err)
	assert.Nil(t, u)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRepository_CreateUser_DuplicateEmail(t *testing.T) {
	repo, mock := newMockRepo(t)

	hash := "$2a$10$fakefakefakefakefakefake"
	mock.ExpectQuery(InsertUser).
		WithArgs("jane@corp.test", &hash, "employee", "Jane Doe").
		WillReturnError(&pgconn.PgError{Code: "23505"})

	_, err := repo.CreateUser(context.Background(), domain.User{
		Email:        "jane@corp.test",
		PasswordHash: &hash,
		Role:         "employee",
		Name:         "Jane Doe",
	})
	assert.ErrorIs(t, err, ErrEmailAlreadyExists)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRepository_CreateUser(t *testing.T) {
	repo, mock := newMockRepo(t)

	hash := "$2a$10$fakefakefakefakefakefake"
	mock.ExpectQuery(InsertUser).
		WithArgs("jane@corp.test", &hash, "employee", "Jane Doe").
		WillReturnRows(sampleUserRow(mock, 7, "jane@corp.test"))

	u, err := repo.CreateUser(context.Background(), domain.User{
		Email:        "jane@corp.test",
		PasswordHash: &hash,
		Role:         "employee",
		Name:         "Jane Doe",
	})
	require.NoError(t, err)
	require.NotNil(t, u)
	assert.Equal(t, "Jane Doe", u.Name)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRepository_FetchInternalID(t *testing.T) {
	repo, mock := newMockRepo(t)

	id := uuid.New()
	mock.ExpectQuery(SelectIdByUUID).
		WithArgs(id.String()).
		WillReturnRows(mock.NewRows([]string{"id"}).AddRow(uint64(42)))

	got, err := repo.FetchInternalID(context.Background(), id)
	require.NoError(t, err)
	assert.Equal(t, domain.ID(42), got)
	assert.NoError(t, mock.ExpectationsWereMet())
}
