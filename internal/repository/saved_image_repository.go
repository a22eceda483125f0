package repository

import (
	"context"

	"gorm.io/gorm"

	"boardapi/internal/model"
)

// SavedImageRepository defines saved image persistence operations.
type SavedImageRepository interface {
	Create(ctx context.Context, image *model.SavedImage) error
	ExistsForAccount(ctx context.Context, accountID uint, imageURL string) (bool, error)
	FindOwned(ctx context.Context, id, accountID uint) (*model.SavedImage, error)
	ListByAccount(ctx context.Context, accountID uint) ([]model.SavedImage, error)
	Delete(ctx context.Context, id uint) error
	CountDistinctAccounts(ctx context.Context) (int64, error)
	CountDistinctAccountsForURL(ctx context.Context, imageURL string) (int64, error)
}

type savedImageRepository struct {
	db *gorm.DB
}

// NewSavedImageRepository creates a new saved image repository.
func NewSavedImageRepository(db *gorm.DB) SavedImageRepository {
	return &savedImageRepository{db: db}
}

func (r *savedImageRepository) Create(ctx context.Context, image *model.SavedImage) error {
	return mapError(r.db.WithContext(ctx).Omit("Account").Create(image).Error)
}

func (r *savedImageRepository) ExistsForAccount(ctx context.Context, accountID uint, imageURL string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&model.SavedImage{}).
		Where("image_url = ? AND account_id = ?", imageURL, accountID).
		Limit(1).
		Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

// FindOwned returns ErrNotFound both for a missing image and for one saved by
// another account.
func (r *savedImageRepository) FindOwned(ctx context.Context, id, accountID uint) (*model.SavedImage, error) {
	var image model.SavedImage
	err := r.db.WithContext(ctx).Where("id = ? AND account_id = ?", id, accountID).First(&image).Error
	if err != nil {
		return nil, mapError(err)
	}
	return &image, nil
}

// ListByAccount returns the account's images in insertion order.
func (r *savedImageRepository) ListByAccount(ctx context.Context, accountID uint) ([]model.SavedImage, error) {
	var images []model.SavedImage
	err := r.db.WithContext(ctx).Where("account_id = ?", accountID).Order("id").Find(&images).Error
	if err != nil {
		return nil, err
	}
	return images, nil
}

func (r *savedImageRepository) Delete(ctx context.Context, id uint) error {
	res := r.db.WithContext(ctx).Delete(&model.SavedImage{}, id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// CountDistinctAccounts counts accounts that have saved at least one image.
func (r *savedImageRepository) CountDistinctAccounts(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&model.SavedImage{}).Distinct("account_id").Count(&count).Error
	return count, err
}

// CountDistinctAccountsForURL counts accounts that saved exactly imageURL.
func (r *savedImageRepository) CountDistinctAccountsForURL(ctx context.Context, imageURL string) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&model.SavedImage{}).
		Where("image_url = ?", imageURL).
		Distinct("account_id").
		Count(&count).Error
	return count, err
}
