package storage

import (
	"context"
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func TestMemoryStorage_GetMissingKey(t *testing.T) {
	s := NewMemoryStorage()

	val, err := s.Get(context.Background(), "dental-center-patients")
	require.NoError(t, err)
	assert.Equal(t, "", val)
}

func TestMemoryStorage_SetGetDelete(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStorage()

	require.NoError(t, s.Set(ctx, "k", `[1,2]`))
	val, err := s.Get(ctx, "k")
	require.NoError(t, err)
	assert.Equal(t, `[1,2]`, val)

	require.NoError(t, s.Delete(ctx, "k"))
	val, err = s.Get(ctx, "k")
	require.NoError(t, err)
	assert.Empty(t, val)
}

func TestMemoryStorage_DeleteAllMatchesPattern(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStorage()
	require.NoError(t, s.Set(ctx, "dental-center-patients", "[]"))
	require.NoError(t, s.Set(ctx, "dental-center-incidents", "[]"))
	require.NoError(t, s.Set(ctx, "other", "x"))

	require.NoError(t, s.DeleteAll(ctx, "dental-center-*"))

	for _, key := range []string{"dental-center-patients", "dental-center-incidents"} {
		val, _ := s.Get(ctx, key)
		assert.Empty(t, val, key)
	}
	val, _ := s.Get(ctx, "other")
	assert.Equal(t, "x", val)
}

func TestNewRedisStorage_NilClient(t *testing.T) {
	_, err := NewRedisStorage(nil)
	assert.Error(t, err)
}

func setupGormMock(t *testing.T) (*GormStorage, sqlmock.Sqlmock) {
	t.Helper()
	sqlDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { sqlDB.Close() })

	db, err := gorm.Open(postgres.New(postgres.Config{Conn: sqlDB}), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	s, err := NewGormStorage(db)
	require.NoError(t, err)
	return s, mock
}

func TestGormStorage_Get(t *testing.T) {
	s, mock := setupGormMock(t)

	mock.ExpectQuery(regexp.QuoteMeta(`SELECT * FROM "stored_collection" WHERE storage_key = $1`)).
		WillReturnRows(sqlmock.NewRows([]string{"storage_key", "value", "updated_at"}).
			AddRow("dental-center-patients", `[{"id":"p1"}]`, time.Now()))

	val, err := s.Get(context.Background(), "dental-center-patients")
	require.NoError(t, err)
	assert.Equal(t, `[{"id":"p1"}]`, val)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGormStorage_GetMissingKey(t *testing.T) {
	s, mock := setupGormMock(t)

	mock.ExpectQuery(regexp.QuoteMeta(`SELECT * FROM "stored_collection"`)).
		WillReturnRows(sqlmock.NewRows([]string{"storage_key", "value", "updated_at"}))

	val, err := s.Get(context.Background(), "dental-center-incidents")
	require.NoError(t, err)
	assert.Empty(t, val)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGormStorage_GetError(t *testing.T) {
	s, mock := setupGormMock(t)

	mock.ExpectQuery(regexp.QuoteMeta(`SELECT * FROM "stored_collection"`)).
		WillReturnError(errors.New("connection reset"))

	_, err := s.Get(context.Background(), "dental-center-incidents")
	assert.Error(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGormStorage_SetUpserts(t *testing.T) {
	s, mock := setupGormMock(t)

	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta(`INSERT INTO "stored_collection"`)).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	require.NoError(t, s.Set(context.Background(), "dental-center-patients", "[]"))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGormStorage_Delete(t *testing.T) {
	s, mock := setupGormMock(t)

	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta(`DELETE FROM "stored_collection" WHERE storage_key = $1`)).
		WithArgs("dental-center-auth-user").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	require.NoError(t, s.Delete(context.Background(), "dental-center-auth-user"))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGormStorage_DeleteAllUsesLike(t *testing.T) {
	s, mock := setupGormMock(t)

	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta(`DELETE FROM "stored_collection" WHERE storage_key LIKE $1`)).
		WithArgs("dental-center-%").
		WillReturnResult(sqlmock.NewResult(0, 3))
	mock.ExpectCommit()

	require.NoError(t, s.DeleteAll(context.Background(), "dental-center-*"))
	assert.NoError(t, mock.ExpectationsWereMet())
}
