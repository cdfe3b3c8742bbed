package repository

import (
	"errors"
	"time"

	"gorm.io/gorm"

	"github.com/CuCryptos/cruise-photos/model"
)

type PhotoRepo struct {
	db *gorm.DB
}

func NewPhotoRepo(db *gorm.DB) *PhotoRepo {
	return &PhotoRepo{db: db}
}

func (r *PhotoRepo) Create(photo *model.Photo) error {
	return r.db.Create(photo).Error
}

func (r *PhotoRepo) FindByID(id uint) (*model.Photo, error) {
	var photo model.Photo
	err := r.db.First(&photo, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &photo, nil
}

// FindByIDs re-fetches the authoritative rows for a checkout. Ids that no
// longer resolve are silently dropped; callers decide what an empty result
// means.
func (r *PhotoRepo) FindByIDs(ids []uint) ([]model.Photo, error) {
	var photos []model.Photo
	if err := r.db.Where("id IN ?", ids).Find(&photos).Error; err != nil {
		return nil, err
	}
	return photos, nil
}

func (r *PhotoRepo) Delete(id uint) error {
	result := r.db.Delete(&model.Photo{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// DeleteOlderThan removes photos created before cutoff and returns the
// deleted rows so the caller can purge their blobs.
func (r *PhotoRepo) DeleteOlderThan(cutoff time.Time) ([]model.Photo, error) {
	var photos []model.Photo
	err := r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("created_at < ?", cutoff).Find(&photos).Error; err != nil {
			return err
		}
		if len(photos) == 0 {
			return nil
		}
		return tx.Where("created_at < ?", cutoff).Delete(&model.Photo{}).Error
	})
	if err != nil {
		return nil, err
	}
	return photos, nil
}
