package repository

import (
	"context"
	"errors"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"kanmind/internal/model"
)

type TaskRepository struct {
	db *gorm.DB
}

type TaskRepositoryInterface interface {
	Create(ctx context.Context, task *model.Task) error
	GetByID(ctx context.Context, id uint) (*model.Task, error)
	ListForMember(ctx context.Context, userID uint) ([]model.Task, error)
	ListByBoard(ctx context.Context, boardID uint) ([]model.Task, error)
	ListByAssignee(ctx context.Context, userID uint) ([]model.Task, error)
	ListByReviewer(ctx context.Context, userID uint) ([]model.Task, error)
	Update(ctx context.Context, task *model.Task) error
	Delete(ctx context.Context, id uint) error
}

var _ TaskRepositoryInterface = (*TaskRepository)(nil)

func NewTaskRepository(db *gorm.DB) *TaskRepository {
	return &TaskRepository{db: db}
}

// Create adds a new task to the database
func (r *TaskRepository) Create(ctx context.Context, task *model.Task) error {
	return r.db.WithContext(ctx).Omit(clause.Associations).Create(task).Error
}

// GetByID loads a task with its board (and the board's members), assignee,
// reviewer and comment count.
func (r *TaskRepository) GetByID(ctx context.Context, id uint) (*model.Task, error) {
	var task model.Task
	err := r.withRelations(ctx).Preload("Board.Members").Where("id = ?", id).First(&task).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrTaskNotFound
	}
	if err != nil {
		return nil, err
	}

	tasks := []model.Task{task}
	if err := r.attachCommentCounts(ctx, tasks); err != nil {
		return nil, err
	}
	return &tasks[0], nil
}

// ListForMember retrieves the tasks of every board userID belongs to
func (r *TaskRepository) ListForMember(ctx context.Context, userID uint) ([]model.Task, error) {
	memberBoards := r.db.Model(&model.BoardMember{}).Select("board_id").Where("user_id = ?", userID)
	return r.list(ctx, "board_id IN (?)", memberBoards)
}

func (r *TaskRepository) ListByBoard(ctx context.Context, boardID uint) ([]model.Task, error) {
	return r.list(ctx, "board_id = ?", boardID)
}

func (r *TaskRepository) ListByAssignee(ctx context.Context, userID uint) ([]model.Task, error) {
	return r.list(ctx, "assignee_id = ?", userID)
}

func (r *TaskRepository) ListByReviewer(ctx context.Context, userID uint) ([]model.Task, error) {
	return r.list(ctx, "reviewer_id = ?", userID)
}

// Update writes every editable column, including NULLs for cleared
// assignee, reviewer and due date.
func (r *TaskRepository) Update(ctx context.Context, task *model.Task) error {
	result := r.db.WithContext(ctx).
		Model(&model.Task{ID: task.ID}).
		Select("Title", "Description", "Status", "Priority", "DueDate", "AssigneeID", "ReviewerID", "UpdatedAt").
		Updates(task)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrTaskNotFound
	}
	return nil
}

// Delete removes a task and its comments
func (r *TaskRepository) Delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("task_id = ?", id).Delete(&model.Comment{}).Error; err != nil {
			return err
		}
		result := tx.Delete(&model.Task{}, id)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return ErrTaskNotFound
		}
		return nil
	})
}

func (r *TaskRepository) withRelations(ctx context.Context) *gorm.DB {
	return r.db.WithContext(ctx).Preload("Assignee").Preload("Reviewer")
}

func (r *TaskRepository) list(ctx context.Context, query string, args ...any) ([]model.Task, error) {
	var tasks []model.Task
	if err := r.withRelations(ctx).Where(query, args...).Order("id").Find(&tasks).Error; err != nil {
		return nil, err
	}
	if err := r.attachCommentCounts(ctx, tasks); err != nil {
		return nil, err
	}
	return tasks, nil
}

func (r *TaskRepository) attachCommentCounts(ctx context.Context, tasks []model.Task) error {
	if len(tasks) == 0 {
		return nil
	}

	ids := make([]uint, len(tasks))
	for i := range tasks {
		ids[i] = tasks[i].ID
	}

	var rows []struct {
		TaskID uint
		Count  int64
	}
	err := r.db.WithContext(ctx).Model(&model.Comment{}).
		Select("task_id, COUNT(*) AS count").
		Where("task_id IN ?", ids).
		Group("task_id").
		Scan(&rows).Error
	if err != nil {
		return err
	}

	counts := make(map[uint]int64, len(rows))
	for _, row := range rows {
		counts[row.TaskID] = row.Count
	}
	for i := range tasks {
		tasks[i].CommentsCount = counts[tasks[i].ID]
	}
	return nil
}
