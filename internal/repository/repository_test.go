package repository_test

import (
	"context"
	"testing"
	"time"

	"kanmind/internal/repository"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func TestTokenRepository_DeleteByKey(t *testing.T) {
	// Arrange
	gormDB, mock := setupMockDB(t)
	tokenRepo := repository.NewTokenRepository(gormDB)

	mock.ExpectBegin()
	mock.ExpectExec(`DELETE FROM "tokens"`).
		WithArgs("abc").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	// Act
	err := tokenRepo.DeleteByKey(context.Background(), "abc")

	// Assert
	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestTokenRepository_DeleteByKey_NotFound(t *testing.T) {
	gormDB, mock := setupMockDB(t)
	tokenRepo := repository.NewTokenRepository(gormDB)

	mock.ExpectBegin()
	mock.ExpectExec(`DELETE FROM "tokens"`).
		WithArgs("gone").
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectCommit()

	err := tokenRepo.DeleteByKey(context.Background(), "gone")

	assert.ErrorIs(t, err, repository.ErrTokenNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestTokenRepository_EmptyKeyNeverQueries(t *testing.T) {
	gormDB, mock := setupMockDB(t)
	tokenRepo := repository.NewTokenRepository(gormDB)

	_, err := tokenRepo.GetByKey(context.Background(), "")
	assert.ErrorIs(t, err, repository.ErrTokenNotFound)

	err = tokenRepo.DeleteByKey(context.Background(), "")
	assert.ErrorIs(t, err, repository.ErrTokenNotFound)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestBoardRepository_Stats(t *testing.T) {
	// Arrange
	gormDB, mock := setupMockDB(t)
	boardRepo := repository.NewBoardRepository(gormDB)

	mock.ExpectQuery(`SELECT board_id, COUNT\(\*\) AS ticket_count`).
		WillReturnRows(sqlmock.NewRows([]string{"board_id", "ticket_count", "tasks_to_do_count", "tasks_high_prio_count"}).
			AddRow(1, 5, 2, 1))

	// Act
	stats, err := boardRepo.Stats(context.Background(), []uint{1, 2})

	// Assert
	require.NoError(t, err)
	assert.Equal(t, int64(5), stats[1].TicketCount)
	assert.Equal(t, int64(2), stats[1].TasksToDoCount)
	assert.Equal(t, int64(1), stats[1].TasksHighPrioCount)
	_, ok := stats[2]
	assert.False(t, ok)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestBoardRepository_Delete_NotFoundRollsBack(t *testing.T) {
	// Arrange
	gormDB, mock := setupMockDB(t)
	boardRepo := repository.NewBoardRepository(gormDB)

	mock.ExpectBegin()
	mock.ExpectExec(`DELETE FROM "comments"`).WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectExec(`DELETE FROM "tasks"`).WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectExec(`DELETE FROM "board_members"`).WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectExec(`DELETE FROM "boards"`).WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectRollback()

	// Act
	err := boardRepo.Delete(context.Background(), 99)

	// Assert
	assert.ErrorIs(t, err, repository.ErrBoardNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestTaskRepository_Delete_RemovesCommentsFirst(t *testing.T) {
	// Arrange
	gormDB, mock := setupMockDB(t)
	taskRepo := repository.NewTaskRepository(gormDB)

	mock.ExpectBegin()
	mock.ExpectExec(`DELETE FROM "comments" WHERE task_id = \$1`).
		WithArgs(10).
		WillReturnResult(sqlmock.NewResult(0, 3))
	mock.ExpectExec(`DELETE FROM "tasks" WHERE "tasks"."id" = \$1`).
		WithArgs(10).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	// Act
	err := taskRepo.Delete(context.Background(), 10)

	// Assert
	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

var tokenColumns = []string{"key", "user_id", "created_at"}

func TestTokenRepository_GetOrCreate_Existing(t *testing.T) {
	// Arrange
	gormDB, mock := setupMockDB(t)
	tokenRepo := repository.NewTokenRepository(gormDB)

	mock.ExpectBegin()
	mock.ExpectQuery(`SELECT \* FROM "tokens" WHERE user_id = \$1`).
		WillReturnRows(sqlmock.NewRows(tokenColumns).AddRow("existing-key", 7, time.Now()))
	mock.ExpectCommit()

	// Act
	token, err := tokenRepo.GetOrCreate(context.Background(), 7, func(uint) (string, error) {
		t.Fatal("no key should be issued for a user that already has one")
		return "", nil
	})

	// Assert
	require.NoError(t, err)
	assert.Equal(t, "existing-key", token.Key)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestTokenRepository_GetOrCreate_ConcurrentInsertReturnsStoredToken(t *testing.T) {
	// Arrange
	gormDB, mock := setupMockDB(t)
	tokenRepo := repository.NewTokenRepository(gormDB)

	mock.ExpectBegin()
	mock.ExpectQuery(`SELECT \* FROM "tokens" WHERE user_id = \$1`).
		WillReturnRows(sqlmock.NewRows(tokenColumns))
	mock.ExpectExec(`INSERT INTO "tokens"`).
		WillReturnError(gorm.ErrDuplicatedKey)
	mock.ExpectRollback()
	mock.ExpectQuery(`SELECT \* FROM "tokens" WHERE user_id = \$1`).
		WillReturnRows(sqlmock.NewRows(tokenColumns).AddRow("winner-key", 7, time.Now()))

	// Act
	token, err := tokenRepo.GetOrCreate(context.Background(), 7, func(uint) (string, error) {
		return "loser-key", nil
	})

	// Assert
	require.NoError(t, err)
	assert.Equal(t, "winner-key", token.Key)
	assert.Equal(t, uint(7), token.UserID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestTokenRepository_GetOrCreate_InsertFailure(t *testing.T) {
	gormDB, mock := setupMockDB(t)
	tokenRepo := repository.NewTokenRepository(gormDB)

	mock.ExpectBegin()
	mock.ExpectQuery(`SELECT \* FROM "tokens" WHERE user_id = \$1`).
		WillReturnRows(sqlmock.NewRows(tokenColumns))
	mock.ExpectExec(`INSERT INTO "tokens"`).
		WillReturnError(assert.AnError)
	mock.ExpectRollback()

	token, err := tokenRepo.GetOrCreate(context.Background(), 7, func(uint) (string, error) {
		return "key", nil
	})

	assert.ErrorIs(t, err, assert.AnError)
	assert.Nil(t, token)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCommentRepository_UpdateContent(t *testing.T) {
	// Arrange
	gormDB, mock := setupMockDB(t)
	commentRepo := repository.NewCommentRepository(gormDB)

	mock.ExpectBegin()
	mock.ExpectExec(`UPDATE "comments" SET "content"=\$1 WHERE id = \$2`).
		WithArgs("edited", 4).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	// Act
	err := commentRepo.UpdateContent(context.Background(), 4, "edited")

	// Assert
	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCommentRepository_UpdateContent_NotFound(t *testing.T) {
	gormDB, mock := setupMockDB(t)
	commentRepo := repository.NewCommentRepository(gormDB)

	mock.ExpectBegin()
	mock.ExpectExec(`UPDATE "comments"`).WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectCommit()

	err := commentRepo.UpdateContent(context.Background(), 99, "edited")

	assert.ErrorIs(t, err, repository.ErrCommentNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}
