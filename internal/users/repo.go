package users

import (
	"context"
	"errors"

	"gorm.io/gorm"
)

type Repo struct {
	db *gorm.DB
}

func NewRepo(db *gorm.DB) *Repo {
	return &Repo{db: db}
}

func (r *Repo) Create(ctx context.Context, u *User) error {
	return r.db.WithContext(ctx).Create(u).Error
}

func (r *Repo) GetByID(ctx context.Context, id uint64) (*User, error) {
	var u User
	if err := r.db.WithContext(ctx).First(&u, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &u, nil
}

func (r *Repo) GetByEmail(ctx context.Context, email string) (*User, error) {
	var u User
	if err := r.db.WithContext(ctx).
		Where("email = ?", email).
		First(&u).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &u, nil
}

func (r *Repo) Count(ctx context.Context) (int64, error) {
	var n int64
	err := r.db.WithContext(ctx).Model(&User{}).Count(&n).Error
	return n, err
}

// CreateOrGetExisting inserts u, or returns the row that already owns u.Email
// when the unique index rejects the insert.
func (r *Repo) CreateOrGetExisting(ctx context.Context, u *User) (*User, bool, error) {
	err := r.Create(ctx, u)
	if err == nil {
		return u, true, nil
	}

	existing, getErr := r.GetByEmail(ctx, u.Email)
	if getErr == nil {
		return existing, false, nil
	}
	if errors.Is(getErr, ErrNotFound) {
		return nil, false, err
	}
	return nil, false, getErr
}
