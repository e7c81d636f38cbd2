package egg

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"
)

type Repo struct {
	db *gorm.DB
}

func NewRepo(db *gorm.DB) *Repo {
	return &Repo{db: db}
}

func (r *Repo) CreateEgg(ctx context.Context, e *Egg) error {
	return r.db.WithContext(ctx).Create(e).Error
}

func (r *Repo) GetEgg(ctx context.Context, id uint64) (*Egg, error) {
	var e Egg
	if err := r.db.WithContext(ctx).First(&e, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrEggNotFound
		}
		return nil, err
	}
	return &e, nil
}

// GetActiveEgg returns the owner's unhatched egg.
func (r *Repo) GetActiveEgg(ctx context.Context, ownerID uint64) (*Egg, error) {
	var e Egg
	if err := r.db.WithContext(ctx).
		Where("owner_id = ? AND hatched = ?", ownerID, false).
		Order("id ASC").
		First(&e).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrEggNotFound
		}
		return nil, err
	}
	return &e, nil
}

// GetOrCreateActiveEgg returns the owner's unhatched egg, creating one when
// there is none. A concurrent creator loses on the active owner unique index
// and gets the winner's egg back.
func (r *Repo) GetOrCreateActiveEgg(ctx context.Context, ownerID uint64, now time.Time) (*Egg, bool, error) {
	existing, err := r.GetActiveEgg(ctx, ownerID)
	if err == nil {
		return existing, false, nil
	}
	if !errors.Is(err, ErrEggNotFound) {
		return nil, false, err
	}

	active := ownerID
	e := &Egg{
		OwnerID:       ownerID,
		ActiveOwnerID: &active,
		Hatched:       false,
		CreatedAt:     now,
	}
	createErr := r.CreateEgg(ctx, e)
	if createErr == nil {
		return e, true, nil
	}

	existing, getErr := r.GetActiveEgg(ctx, ownerID)
	if getErr == nil {
		return existing, false, nil
	}
	if errors.Is(getErr, ErrEggNotFound) {
		return nil, false, createErr
	}
	return nil, false, getErr
}

func (r *Repo) AppendLog(ctx context.Context, l *ConversationLog) error {
	return r.db.WithContext(ctx).Create(l).Error
}

// ListLogs returns an egg's conversation oldest -> newest.
func (r *Repo) ListLogs(ctx context.Context, eggID uint64) ([]ConversationLog, error) {
	var logs []ConversationLog
	if err := r.db.WithContext(ctx).
		Where("egg_id = ?", eggID).
		Order("created_at ASC").
		Order("id ASC").
		Find(&logs).Error; err != nil {
		return nil, err
	}
	return logs, nil
}

// Hatch flips the egg to hatched and inserts the pet in one transaction. The
// update only matches an unhatched egg, so a concurrent second hatch gets
// ErrAlreadyHatched and leaves no pet behind.
func (r *Repo) Hatch(ctx context.Context, eggID uint64, hatchedAt time.Time, pet *Pet) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Model(&Egg{}).
			Where("id = ? AND hatched = ?", eggID, false).
			Updates(map[string]any{
				"hatched":         true,
				"hatched_at":      hatchedAt,
				"active_owner_id": nil,
			})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return ErrAlreadyHatched
		}
		return tx.Create(pet).Error
	})
}

func (r *Repo) ListPetsByOwner(ctx context.Context, ownerID uint64) ([]Pet, error) {
	var pets []Pet
	if err := r.db.WithContext(ctx).
		Where("owner_id = ?", ownerID).
		Order("id DESC").
		Find(&pets).Error; err != nil {
		return nil, err
	}
	return pets, nil
}
