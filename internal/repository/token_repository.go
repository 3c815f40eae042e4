package repository

import (
	"context"
	"errors"

	"kanmind/internal/model"

	"gorm.io/gorm"
)

type TokenRepository struct {
	db *gorm.DB
}

type TokenRepositoryInterface interface {
	GetByKey(ctx context.Context, key string) (*model.Token, error)
	GetOrCreate(ctx context.Context, userID uint, newKey KeyFunc) (*model.Token, error)
	DeleteByKey(ctx context.Context, key string) error
}

var _ TokenRepositoryInterface = (*TokenRepository)(nil)

func NewTokenRepository(db *gorm.DB) *TokenRepository {
	return &TokenRepository{db: db}
}

// GetByKey loads the token together with its user.
func (r *TokenRepository) GetByKey(ctx context.Context, key string) (*model.Token, error) {
	if key == "" {
		return nil, ErrTokenNotFound
	}
	var token model.Token
	err := r.db.WithContext(ctx).Preload("User").Where(&model.Token{Key: key}).First(&token).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrTokenNotFound
	}
	if err != nil {
		return nil, err
	}
	return &token, nil
}

// GetOrCreate returns the user's token, issuing one when none exists.
func (r *TokenRepository) GetOrCreate(ctx context.Context, userID uint, newKey KeyFunc) (*model.Token, error) {
	var token model.Token
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		err := tx.Where("user_id = ?", userID).First(&token).Error
		if err == nil {
			return nil
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}

		key, err := newKey(userID)
		if err != nil {
			return err
		}
		token = model.Token{Key: key, UserID: userID}
		return tx.Omit("User").Create(&token).Error
	})
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		// A concurrent login for the same user inserted first; the failed
		// transaction is gone, so read the winner's row outside it.
		token = model.Token{}
		err = r.db.WithContext(ctx).Where("user_id = ?", userID).First(&token).Error
	}
	if err != nil {
		return nil, err
	}
	return &token, nil
}

func (r *TokenRepository) DeleteByKey(ctx context.Context, key string) error {
	if key == "" {
		return ErrTokenNotFound
	}
	result := r.db.WithContext(ctx).Where(&model.Token{Key: key}).Delete(&model.Token{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrTokenNotFound
	}
	return nil
}
