package repository

import (
	"context"
	"errors"

	"kanmind/internal/model"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type BoardRepository struct {
	db *gorm.DB
}

type BoardRepositoryInterface interface {
	Create(ctx context.Context, board *model.Board, memberIDs []uint) error
	GetByID(ctx context.Context, id uint) (*model.Board, error)
	ListForMember(ctx context.Context, userID uint) ([]model.Board, error)
	Stats(ctx context.Context, boardIDs []uint) (map[uint]model.BoardStats, error)
	Update(ctx context.Context, board *model.Board, memberIDs []uint) error
	Delete(ctx context.Context, id uint) error
}

var _ BoardRepositoryInterface = (*BoardRepository)(nil)

func NewBoardRepository(db *gorm.DB) *BoardRepository {
	return &BoardRepository{db: db}
}

// Create inserts the board and its membership rows in one transaction.
func (r *BoardRepository) Create(ctx context.Context, board *model.Board, memberIDs []uint) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit(clause.Associations).Create(board).Error; err != nil {
			return err
		}
		return insertMembers(tx, board.ID, memberIDs)
	})
}

// GetByID loads the board with its owner and members.
func (r *BoardRepository) GetByID(ctx context.Context, id uint) (*model.Board, error) {
	var board model.Board
	err := r.db.WithContext(ctx).
		Preload("Owner").
		Preload("Members", func(db *gorm.DB) *gorm.DB { return db.Order("users.id") }).
		Where("id = ?", id).
		First(&board).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrBoardNotFound
	}
	if err != nil {
		return nil, err
	}
	return &board, nil
}

// ListForMember returns the boards userID belongs to, oldest first.
func (r *BoardRepository) ListForMember(ctx context.Context, userID uint) ([]model.Board, error) {
	var boards []model.Board
	err := r.db.WithContext(ctx).
		Preload("Members").
		Where("id IN (?)", r.db.Model(&model.BoardMember{}).Select("board_id").Where("user_id = ?", userID)).
		Order("id").
		Find(&boards).Error
	return boards, err
}

// Stats counts tasks per board. Boards without tasks are absent from the map.
func (r *BoardRepository) Stats(ctx context.Context, boardIDs []uint) (map[uint]model.BoardStats, error) {
	stats := make(map[uint]model.BoardStats, len(boardIDs))
	if len(boardIDs) == 0 {
		return stats, nil
	}

	var rows []model.BoardStats
	err := r.db.WithContext(ctx).Model(&model.Task{}).
		Select("board_id, COUNT(*) AS ticket_count, "+
			"SUM(CASE WHEN status = ? THEN 1 ELSE 0 END) AS tasks_to_do_count, "+
			"SUM(CASE WHEN priority = ? THEN 1 ELSE 0 END) AS tasks_high_prio_count",
			model.StatusTodo, model.PriorityHigh).
		Where("board_id IN ?", boardIDs).
		Group("board_id").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	for _, row := range rows {
		stats[row.BoardID] = row
	}
	return stats, nil
}

// Update saves title and description. A non-nil memberIDs replaces the
// membership set.
func (r *BoardRepository) Update(ctx context.Context, board *model.Board, memberIDs []uint) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		result := tx.Model(&model.Board{ID: board.ID}).
			Select("Title", "Description", "UpdatedAt").
			Updates(board)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return ErrBoardNotFound
		}

		if memberIDs == nil {
			return nil
		}
		if err := tx.Where("board_id = ?", board.ID).Delete(&model.BoardMember{}).Error; err != nil {
			return err
		}
		return insertMembers(tx, board.ID, memberIDs)
	})
}

// Delete removes the board with its tasks, their comments and the membership
// rows.
func (r *BoardRepository) Delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		taskIDs := tx.Model(&model.Task{}).Select("id").Where("board_id = ?", id)

		if err := tx.Where("task_id IN (?)", taskIDs).Delete(&model.Comment{}).Error; err != nil {
			return err
		}
		if err := tx.Where("board_id = ?", id).Delete(&model.Task{}).Error; err != nil {
			return err
		}
		if err := tx.Where("board_id = ?", id).Delete(&model.BoardMember{}).Error; err != nil {
			return err
		}

		result := tx.Delete(&model.Board{}, id)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return ErrBoardNotFound
		}
		return nil
	})
}

func insertMembers(tx *gorm.DB, boardID uint, memberIDs []uint) error {
	if len(memberIDs) == 0 {
		return nil
	}
	rows := make([]model.BoardMember, 0, len(memberIDs))
	for _, userID := range memberIDs {
		rows = append(rows, model.BoardMember{BoardID: boardID, UserID: userID})
	}
	return tx.Clauses(clause.OnConflict{DoNothing: true}).Create(&rows).Error
}
