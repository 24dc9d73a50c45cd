package postgres

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"

	"urlshort/internal/database"
	"urlshort/internal/models"
)

var errUnknown = errors.New("unknown error")

var columns = []string{"id", "short_code", "original_url", "clicks", "created_at"}

func setupURLRepository(t testing.TB) (*URLRepository, sqlmock.Sqlmock) {
	t.Helper()

	mockDB, mock, err := sqlmock.New()
	if err != nil {
		t.Fatal(err)
	}

	db := sqlx.NewDb(mockDB, "sqlmock")
	repo := NewURLRepository(db)

	t.Cleanup(func() {
		mockDB.Close()
		db.Close()
	})

	return repo, mock
}

func TestURLRepository_Create(t *testing.T) {
	t.Run("short code exists", func(t *testing.T) {
		repo, mock := setupURLRepository(t)

		mock.ExpectQuery(`INSERT INTO urls`).
			WithArgs("abc123", "https://example.com").
			WillReturnError(&pgconn.PgError{Code: uniqueViolationErrCode})

		url, err := repo.Create(context.TODO(), "abc123", "https://example.com")

		assert.Error(t, err)
		assert.ErrorIs(t, err, database.ErrShortCodeExists)
		assert.Nil(t, url)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("unknown error", func(t *testing.T) {
		repo, mock := setupURLRepository(t)

		mock.ExpectQuery(`INSERT INTO urls`).
			WithArgs("abc123", "https://example.com").
			WillReturnError(errUnknown)

		url, err := repo.Create(context.TODO(), "abc123", "https://example.com")

		assert.Error(t, err)
		assert.ErrorIs(t, err, errUnknown)
		assert.Nil(t, url)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("success", func(t *testing.T) {
		repo, mock := setupURLRepository(t)

		rows := sqlmock.NewRows(columns).
			AddRow(1, "abc123", "https://example.com", 0, time.Time{})

		mock.ExpectQuery(`INSERT INTO urls`).
			WithArgs("abc123", "https://example.com").
			WillReturnRows(rows)

		wantURL := models.URL{
			ID:          1,
			ShortCode:   "abc123",
			OriginalURL: "https://example.com",
		}

		url, err := repo.Create(context.TODO(), "abc123", "https://example.com")

		assert.NoError(t, err)
		assert.NotNil(t, url)
		assert.Equal(t, wantURL, *url)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestURLRepository_ExistsByShortCode(t *testing.T) {
	t.Run("unknown error", func(t *testing.T) {
		repo, mock := setupURLRepository(t)

		mock.ExpectQuery(`SELECT EXISTS`).
			WithArgs("abc123").
			WillReturnError(errUnknown)

		exists, err := repo.ExistsByShortCode(context.TODO(), "abc123")

		assert.Error(t, err)
		assert.ErrorIs(t, err, errUnknown)
		assert.False(t, exists)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("short code taken", func(t *testing.T) {
		repo, mock := setupURLRepository(t)

		rows := sqlmock.NewRows([]string{"exists"}).AddRow(true)

		mock.ExpectQuery(`SELECT EXISTS`).
			WithArgs("abc123").
			WillReturnRows(rows)

		exists, err := repo.ExistsByShortCode(context.TODO(), "abc123")

		assert.NoError(t, err)
		assert.True(t, exists)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("short code free", func(t *testing.T) {
		repo, mock := setupURLRepository(t)

		rows := sqlmock.NewRows([]string{"exists"}).AddRow(false)

		mock.ExpectQuery(`SELECT EXISTS`).
			WithArgs("abc123").
			WillReturnRows(rows)

		exists, err := repo.ExistsByShortCode(context.TODO(), "abc123")

		assert.NoError(t, err)
		assert.False(t, exists)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestURLRepository_GetByShortCode(t *testing.T) {
	t.Run("url not found", func(t *testing.T) {
		repo, mock := setupURLRepository(t)

		mock.ExpectQuery(`UPDATE urls`).
			WithArgs("xyz123").
			WillReturnError(sql.ErrNoRows)

		url, err := repo.GetByShortCode(context.TODO(), "xyz123")

		assert.Error(t, err)
		assert.ErrorIs(t, err, database.ErrURLNotFound)
		assert.Nil(t, url)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("unknown error", func(t *testing.T) {
		repo, mock := setupURLRepository(t)

		mock.ExpectQuery(`UPDATE urls`).
			WithArgs("abc123").
			WillReturnError(errUnknown)

		url, err := repo.GetByShortCode(context.TODO(), "abc123")

		assert.Error(t, err)
		assert.ErrorIs(t, err, errUnknown)
		assert.Nil(t, url)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("success", func(t *testing.T) {
		repo, mock := setupURLRepository(t)

		rows := sqlmock.NewRows(columns).
			AddRow(1, "abc123", "https://example.com", 1, time.Time{})

		mock.ExpectQuery(`UPDATE urls`).
			WithArgs("abc123").
			WillReturnRows(rows)

		wantURL := models.URL{
			ID:          1,
			ShortCode:   "abc123",
			OriginalURL: "https://example.com",
			Clicks:      1,
		}

		url, err := repo.GetByShortCode(context.TODO(), "abc123")

		assert.NoError(t, err)
		assert.NotNil(t, url)
		assert.Equal(t, wantURL, *url)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestURLRepository_GetStats(t *testing.T) {
	t.Run("url not found", func(t *testing.T) {
		repo, mock := setupURLRepository(t)

		mock.ExpectQuery(`SELECT (.+) FROM urls`).
			WithArgs("xyz123").
			WillReturnError(sql.ErrNoRows)

		url, err := repo.GetStats(context.TODO(), "xyz123")

		assert.Error(t, err)
		assert.ErrorIs(t, err, database.ErrURLNotFound)
		assert.Nil(t, url)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("unknown error", func(t *testing.T) {
		repo, mock := setupURLRepository(t)

		mock.ExpectQuery(`SELECT (.+) FROM urls`).
			WithArgs("abc123").
			WillReturnError(errUnknown)

		url, err := repo.GetStats(context.TODO(), "abc123")

		assert.Error(t, err)
		assert.ErrorIs(t, err, errUnknown)
		assert.Nil(t, url)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("success", func(t *testing.T) {
		repo, mock := setupURLRepository(t)

		rows := sqlmock.NewRows(columns).
			AddRow(1, "abc123", "https://example.com", 1, time.Time{})

		mock.ExpectQuery(`SELECT (.+) FROM urls`).
			WithArgs("abc123").
			WillReturnRows(rows)

		wantURL := models.URL{
			ID:          1,
			ShortCode:   "abc123",
			OriginalURL: "https://example.com",
			Clicks:      1,
		}

		url, err := repo.GetStats(context.TODO(), "abc123")

		assert.NoError(t, err)
		assert.NotNil(t, url)
		assert.Equal(t, wantURL, *url)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}
