package storage

import (
	"database/sql"
	"errors"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newMockSQLiteStore(t *testing.T) (*SQLiteStore, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherEqual))
	require.NoError(t, err)
	t.Cleanup(func() {
		assert.NoError(t, mock.ExpectationsWereMet())
		_ = db.Close()
	})
	return NewSQLiteStore(sqlx.NewDb(db, "sqlite3")), mock
}

func TestSQLiteStoreRead(t *testing.T) {
	tests := []struct {
		name      string
		prepare   func(mock sqlmock.Sqlmock)
		wantValue string
		wantOK    bool
	}{
		{
			name: "present key",
			prepare: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery("SELECT value FROM kv WHERE key = ?").
					WithArgs("current_profile_id").
					WillReturnRows(sqlmock.NewRows([]string{"value"}).AddRow("p1"))
			},
			wantValue: "p1",
			wantOK:    true,
		},
		{
			name: "absent key",
			prepare: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery("SELECT value FROM kv WHERE key = ?").
					WithArgs("current_profile_id").
					WillReturnError(sql.ErrNoRows)
			},
		},
		{
			name: "database failure reports absent",
			prepare: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery("SELECT value FROM kv WHERE key = ?").
					WithArgs("current_profile_id").
					WillReturnError(errors.New("database is locked"))
			},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store, mock := newMockSQLiteStore(t)
			tt.prepare(mock)

			value, ok := store.Read("current_profile_id")
			assert.Equal(t, tt.wantOK, ok)
			assert.Equal(t, tt.wantValue, value)
		})
	}
}

func TestSQLiteStoreWrite(t *testing.T) {
	upsert := "INSERT INTO kv (key, value) VALUES (?, ?) ON CONFLICT(key) DO UPDATE SET value = excluded.value"

	tests := []struct {
		name    string
		prepare func(mock sqlmock.Sqlmock)
		wantErr error
	}{
		{
			name: "upsert succeeds",
			prepare: func(mock sqlmock.Sqlmock) {
				mock.ExpectExec(upsert).
					WithArgs("english_learning_profiles", "[]").
					WillReturnResult(sqlmock.NewResult(1, 1))
			},
		},
		{
			name: "full database maps to quota error",
			prepare: func(mock sqlmock.Sqlmock) {
				mock.ExpectExec(upsert).
					WithArgs("english_learning_profiles", "[]").
					WillReturnError(errors.New("database or disk is full"))
			},
			wantErr: ErrQuotaExceeded,
		},
		{
			name: "other failures map to unavailable",
			prepare: func(mock sqlmock.Sqlmock) {
				mock.ExpectExec(upsert).
					WithArgs("english_learning_profiles", "[]").
					WillReturnError(errors.New("database is locked"))
			},
			wantErr: ErrUnavailable,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store, mock := newMockSQLiteStore(t)
			tt.prepare(mock)

			err := store.Write("english_learning_profiles", "[]")
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			assert.NoError(t, err)
		})
	}
}

func TestSQLiteStoreRemove(t *testing.T) {
	store, mock := newMockSQLiteStore(t)
	mock.ExpectExec("DELETE FROM kv WHERE key = ?").
		WithArgs("current_profile_id").
		WillReturnResult(sqlmock.NewResult(0, 0))

	assert.NoError(t, store.Remove("current_profile_id"))
}

func TestSQLiteStoreUsage(t *testing.T) {
	store, mock := newMockSQLiteStore(t)
	mock.ExpectQuery("SELECT COALESCE(SUM(LENGTH(value)), 0), COUNT(*) FROM kv").
		WillReturnRows(sqlmock.NewRows([]string{"sum", "count"}).AddRow(1234, 3))

	usage, err := store.Usage()
	require.NoError(t, err)
	assert.Equal(t, int64(1234), usage.UsedBytes)
	assert.Equal(t, 3, usage.Keys)
}
