package repository

import (
	"context"

	"gorm.io/gorm"

	"boardapi/internal/model"
)

// BoardPostRepository defines board post persistence operations.
// Reads preload the owning account so callers can render an owner summary.
type BoardPostRepository interface {
	Create(ctx context.Context, post *model.BoardPost) error
	FindByID(ctx context.Context, id uint) (*model.BoardPost, error)
	FindOwned(ctx context.Context, id, accountID uint) (*model.BoardPost, error)
	List(ctx context.Context) ([]model.BoardPost, error)
	ListByAccount(ctx context.Context, accountID uint) ([]model.BoardPost, error)
	Update(ctx context.Context, post *model.BoardPost) error
	Delete(ctx context.Context, id uint) error
}

type boardPostRepository struct {
	db *gorm.DB
}

// NewBoardPostRepository creates a new board post repository.
func NewBoardPostRepository(db *gorm.DB) BoardPostRepository {
	return &boardPostRepository{db: db}
}

func (r *boardPostRepository) Create(ctx context.Context, post *model.BoardPost) error {
	if err := r.db.WithContext(ctx).Omit("Account").Create(post).Error; err != nil {
		return mapError(err)
	}
	return mapError(r.db.WithContext(ctx).First(&post.Account, post.AccountID).Error)
}

func (r *boardPostRepository) FindByID(ctx context.Context, id uint) (*model.BoardPost, error) {
	var post model.BoardPost
	if err := r.db.WithContext(ctx).Preload("Account").First(&post, id).Error; err != nil {
		return nil, mapError(err)
	}
	return &post, nil
}

// FindOwned returns the post only when it belongs to accountID. A post owned
// by someone else is reported as ErrNotFound.
func (r *boardPostRepository) FindOwned(ctx context.Context, id, accountID uint) (*model.BoardPost, error) {
	var post model.BoardPost
	err := r.db.WithContext(ctx).
		Preload("Account").
		Where("id = ? AND account_id = ?", id, accountID).
		First(&post).Error
	if err != nil {
		return nil, mapError(err)
	}
	return &post, nil
}

// List returns all posts, newest first.
func (r *boardPostRepository) List(ctx context.Context) ([]model.BoardPost, error) {
	return r.list(r.db.WithContext(ctx))
}

func (r *boardPostRepository) ListByAccount(ctx context.Context, accountID uint) ([]model.BoardPost, error) {
	return r.list(r.db.WithContext(ctx).Where("account_id = ?", accountID))
}

func (r *boardPostRepository) list(q *gorm.DB) ([]model.BoardPost, error) {
	var posts []model.BoardPost
	err := q.Preload("Account").
		Order("created_at DESC").
		Order("id DESC").
		Find(&posts).Error
	if err != nil {
		return nil, err
	}
	return posts, nil
}

// Update writes name and message. created_at and account_id are never touched.
func (r *boardPostRepository) Update(ctx context.Context, post *model.BoardPost) error {
	err := r.db.WithContext(ctx).
		Model(&model.BoardPost{}).
		Where("id = ?", post.ID).
		Updates(map[string]interface{}{
			"name":    post.Name,
			"message": post.Message,
		}).Error
	return mapError(err)
}

func (r *boardPostRepository) Delete(ctx context.Context, id uint) error {
	res := r.db.WithContext(ctx).Delete(&model.BoardPost{}, id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}
