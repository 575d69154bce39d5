package repository

import (
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
)

// openMockDB opens a GORM connection over a sqlmock driver so the exact SQL
// the repository issues can be asserted on.
func openMockDB(t *testing.T) (*gorm.DB, sqlmock.Sqlmock) {
	t.Helper()

	sqlDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { sqlDB.Close() })

	db, err := gorm.Open(mysql.New(mysql.Config{
		Conn:                      sqlDB,
		SkipInitializeWithVersion: true,
	}), &gorm.Config{})
	require.NoError(t, err)

	return db, mock
}

// TestPositionDelete_CountsDependentsInTransaction verifies the delete runs
// the existence check, the dependent count and the delete inside one
// transaction.
func TestPositionDelete_CountsDependentsInTransaction(t *testing.T) {
	db, mock := openMockDB(t)
	repo := NewPositionRepository(db)

	now := time.Now()

	mock.ExpectBegin()
	mock.ExpectQuery("SELECT \\* FROM `positions` WHERE `positions`.`id` = \\?").
		WithArgs(1, 1).
		WillReturnRows(sqlmock.NewRows([]string{"id", "name", "created_at", "updated_at"}).
			AddRow(1, "QA Engineer", now, now))
	mock.ExpectQuery("SELECT count\\(\\*\\) FROM `workers` WHERE position_id = \\?").
		WithArgs(1).
		WillReturnRows(sqlmock.NewRows([]string{"count(*)"}).AddRow(0))
	mock.ExpectExec("DELETE FROM `positions` WHERE `positions`.`id` = \\?").
		WithArgs(1).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	err := repo.Delete(1)
	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

// TestPositionDelete_DependentsRollBack verifies a held position rolls the
// transaction back instead of deleting.
func TestPositionDelete_DependentsRollBack(t *testing.T) {
	db, mock := openMockDB(t)
	repo := NewPositionRepository(db)

	now := time.Now()

	mock.ExpectBegin()
	mock.ExpectQuery("SELECT \\* FROM `positions` WHERE `positions`.`id` = \\?").
		WithArgs(1, 1).
		WillReturnRows(sqlmock.NewRows([]string{"id", "name", "created_at", "updated_at"}).
			AddRow(1, "QA Engineer", now, now))
	mock.ExpectQuery("SELECT count\\(\\*\\) FROM `workers` WHERE position_id = \\?").
		WithArgs(1).
		WillReturnRows(sqlmock.NewRows([]string{"count(*)"}).AddRow(3))
	mock.ExpectRollback()

	err := repo.Delete(1)
	assert.ErrorIs(t, err, ErrDependentRows)
	assert.NoError(t, mock.ExpectationsWereMet())
}

// TestPositionDelete_NotFoundRollsBack verifies an unknown id surfaces as
// gorm.ErrRecordNotFound without reaching the dependent count.
func TestPositionDelete_NotFoundRollsBack(t *testing.T) {
	db, mock := openMockDB(t)
	repo := NewPositionRepository(db)

	mock.ExpectBegin()
	mock.ExpectQuery("SELECT \\* FROM `positions` WHERE `positions`.`id` = \\?").
		WithArgs(42, 1).
		WillReturnRows(sqlmock.NewRows([]string{"id", "name", "created_at", "updated_at"}))
	mock.ExpectRollback()

	err := repo.Delete(42)
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}
