package repository

import (
	"context"
	"errors"

	"kanmind/internal/model"

	"gorm.io/gorm"
)

// KeyFunc produces a token key for a freshly persisted user.
type KeyFunc func(userID uint) (string, error)

type UserRepository struct {
	db *gorm.DB
}

type UserRepositoryInterface interface {
	CreateWithToken(ctx context.Context, user *model.User, newKey KeyFunc) (*model.Token, error)
	FindByEmail(ctx context.Context, email string) (*model.User, error)
	GetByID(ctx context.Context, id uint) (*model.User, error)
	GetByIDs(ctx context.Context, ids []uint) ([]model.User, error)
	List(ctx context.Context) ([]model.User, error)
}

var _ UserRepositoryInterface = (*UserRepository)(nil)

func NewUserRepository(db *gorm.DB) *UserRepository {
	return &UserRepository{db: db}
}

// CreateWithToken inserts the user and its first token in one transaction.
func (r *UserRepository) CreateWithToken(ctx context.Context, user *model.User, newKey KeyFunc) (*model.Token, error) {
	var token *model.Token
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(user).Error; err != nil {
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				return ErrEmailTaken
			}
			return err
		}

		key, err := newKey(user.ID)
		if err != nil {
			return err
		}

		token = &model.Token{Key: key, UserID: user.ID}
		return tx.Omit("User").Create(token).Error
	})
	if err != nil {
		return nil, err
	}
	return token, nil
}

// FindByEmail returns nil, nil when no user has the email.
func (r *UserRepository) FindByEmail(ctx context.Context, email string) (*model.User, error) {
	var user model.User
	err := r.db.WithContext(ctx).Where("email = ?", email).First(&user).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// GetByID returns nil, nil when the user does not exist.
func (r *UserRepository) GetByID(ctx context.Context, id uint) (*model.User, error) {
	var user model.User
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&user).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// GetByIDs loads the users that exist among ids; missing ids are skipped.
func (r *UserRepository) GetByIDs(ctx context.Context, ids []uint) ([]model.User, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	var users []model.User
	err := r.db.WithContext(ctx).Where("id IN ?", ids).Order("id").Find(&users).Error
	return users, err
}

// List returns every registered user ordered by id.
func (r *UserRepository) List(ctx context.Context) ([]model.User, error) {
	var users []model.User
	err := r.db.WithContext(ctx).Order("id").Find(&users).Error
	return users, err
}
