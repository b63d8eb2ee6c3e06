package balance_test

import (
	"context"
	"database/sql"
	"regexp"
	"testing"

	"go-leave/internal/balance"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func beginTx(t *testing.T, db *sql.DB, mock sqlmock.Sqlmock) *sql.Tx {
	t.Helper()
	mock.ExpectBegin()
	tx, err := db.Begin()
	assert.NoError(t, err)
	return tx
}

func TestRepository_Debit(t *testing.T) {
	ctx := context.Background()

	t.Run("success guard admits the debit", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		assert.NoError(t, err)
		defer db.Close()

		employeeID := uuid.New().String()
		leaveTypeID := uuid.New().String()

		tx := beginTx(t, db, mock)
		mock.ExpectExec(regexp.QuoteMeta("used_days + $4 <= total_allocated")).
			WithArgs(employeeID, leaveTypeID, 2030, 5).
			WillReturnResult(sqlmock.NewResult(0, 1))

		repo := balance.NewRepository(nil).WithTx(tx)
		ok, err := repo.Debit(ctx, employeeID, leaveTypeID, 2030, 5)

		assert.NoError(t, err)
		assert.True(t, ok)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("negative guard rejects an overdraw", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		assert.NoError(t, err)
		defer db.Close()

		employeeID := uuid.New().String()
		leaveTypeID := uuid.New().String()

		tx := beginTx(t, db, mock)
		mock.ExpectExec(regexp.QuoteMeta("used_days + $4 <= total_allocated")).
			WithArgs(employeeID, leaveTypeID, 2030, 40).
			WillReturnResult(sqlmock.NewResult(0, 0))

		repo := balance.NewRepository(nil).WithTx(tx)
		ok, err := repo.Debit(ctx, employeeID, leaveTypeID, 2030, 40)

		assert.NoError(t, err)
		assert.False(t, ok)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestRepository_Credit(t *testing.T) {
	ctx := context.Background()

	t.Run("success floors used days at zero", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		assert.NoError(t, err)
		defer db.Close()

		employeeID := uuid.New().String()
		leaveTypeID := uuid.New().String()

		tx := beginTx(t, db, mock)
		mock.ExpectExec(regexp.QuoteMeta("SET used_days = GREATEST(used_days - $4, 0)")).
			WithArgs(employeeID, leaveTypeID, 2030, 3).
			WillReturnResult(sqlmock.NewResult(0, 1))

		repo := balance.NewRepository(nil).WithTx(tx)
		err = repo.Credit(ctx, employeeID, leaveTypeID, 2030, 3)

		assert.NoError(t, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}
