package repository

import (
	"context"

	"gorm.io/gorm"

	"boardapi/internal/model"
)

// AccountRepository defines account persistence operations.
type AccountRepository interface {
	Create(ctx context.Context, account *model.Account) error
	FindByID(ctx context.Context, id uint) (*model.Account, error)
	FindByEmail(ctx context.Context, email string) (*model.Account, error)
	List(ctx context.Context) ([]model.Account, error)
	UpdateName(ctx context.Context, id uint, name string) error
	UpdatePasswordHash(ctx context.Context, id uint, hash string) error
	Delete(ctx context.Context, id uint) error
}

type accountRepository struct {
	db *gorm.DB
}

// NewAccountRepository creates a new account repository.
func NewAccountRepository(db *gorm.DB) AccountRepository {
	return &accountRepository{db: db}
}

// Create inserts a new account. A taken email yields ErrDuplicateEntry.
func (r *accountRepository) Create(ctx context.Context, account *model.Account) error {
	return mapError(r.db.WithContext(ctx).Create(account).Error)
}

// FindByID finds an account by ID.
func (r *accountRepository) FindByID(ctx context.Context, id uint) (*model.Account, error) {
	var account model.Account
	if err := r.db.WithContext(ctx).First(&account, id).Error; err != nil {
		return nil, mapError(err)
	}
	return &account, nil
}

// FindByEmail finds an account by exact email match.
func (r *accountRepository) FindByEmail(ctx context.Context, email string) (*model.Account, error) {
	var account model.Account
	if err := r.db.WithContext(ctx).Where("email = ?", email).First(&account).Error; err != nil {
		return nil, mapError(err)
	}
	return &account, nil
}

// List returns every account ordered by ID.
func (r *accountRepository) List(ctx context.Context) ([]model.Account, error) {
	var accounts []model.Account
	if err := r.db.WithContext(ctx).Order("id").Find(&accounts).Error; err != nil {
		return nil, err
	}
	return accounts, nil
}

func (r *accountRepository) UpdateName(ctx context.Context, id uint, name string) error {
	return r.updateColumn(ctx, id, "name", name)
}

func (r *accountRepository) UpdatePasswordHash(ctx context.Context, id uint, hash string) error {
	return r.updateColumn(ctx, id, "password_hash", hash)
}

func (r *accountRepository) updateColumn(ctx context.Context, id uint, column string, value interface{}) error {
	err := r.db.WithContext(ctx).Model(&model.Account{}).Where("id = ?", id).Update(column, value).Error
	return mapError(err)
}

// Delete removes an account together with its board posts and saved images.
// The foreign keys cascade as well; deleting children explicitly keeps the
// behavior identical on stores where the constraint was never created.
func (r *accountRepository) Delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("account_id = ?", id).Delete(&model.BoardPost{}).Error; err != nil {
			return err
		}
		if err := tx.Where("account_id = ?", id).Delete(&model.SavedImage{}).Error; err != nil {
			return err
		}
		res := tx.Delete(&model.Account{}, id)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return ErrNotFound
		}
		return nil
	})
}
