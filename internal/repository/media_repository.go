package repository

import (
	"editor-media-backend/internal/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type MediaRepository interface {
	Create(image *models.MediaImage) error
	Upsert(image *models.MediaImage) error
	GetByID(id uint) (*models.MediaImage, error)
	GetByURL(url string) (*models.MediaImage, error)
	List(offset, limit int) ([]models.MediaImage, int64, error)
	ListProbePending(limit int) ([]models.MediaImage, error)
	UpdateDimensions(id uint, width, height int, pending bool) error
	Delete(id uint) error
}

type mediaRepository struct {
	db *gorm.DB
}

func NewMediaRepository(db *gorm.DB) MediaRepository {
	return &mediaRepository{db: db}
}

func (r *mediaRepository) Create(image *models.MediaImage) error {
	return r.db.Create(image).Error
}

func (r *mediaRepository) Upsert(image *models.MediaImage) error {
	return r.db.Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "url"}},
		DoUpdates: clause.AssignmentColumns([]string{
			"mime_type", "size", "natural_width", "natural_height", "probe_pending", "updated_at",
		}),
	}).Create(image).Error
}

func (r *mediaRepository) GetByID(id uint) (*models.MediaImage, error) {
	var image models.MediaImage
	err := r.db.First(&image, id).Error
	if err != nil {
		return nil, err
	}
	return &image, nil
}

func (r *mediaRepository) GetByURL(url string) (*models.MediaImage, error) {
	var image models.MediaImage
	err := r.db.First(&image, "url = ?", url).Error
	if err != nil {
		return nil, err
	}
	return &image, nil
}

func (r *mediaRepository) List(offset, limit int) ([]models.MediaImage, int64, error) {
	var images []models.MediaImage
	var total int64

	if err := r.db.Model(&models.MediaImage{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := r.db.Order("created_at DESC").Offset(offset).Limit(limit).Find(&images).Error
	return images, total, err
}

func (r *mediaRepository) ListProbePending(limit int) ([]models.MediaImage, error) {
	var images []models.MediaImage
	err := r.db.Where("probe_pending = ?", true).Limit(limit).Find(&images).Error
	return images, err
}

func (r *mediaRepository) UpdateDimensions(id uint, width, height int, pending bool) error {
	return r.db.Model(&models.MediaImage{}).Where("id = ?", id).Updates(map[string]interface{}{
		"natural_width":  width,
		"natural_height": height,
		"probe_pending":  pending,
	}).Error
}

func (r *mediaRepository) Delete(id uint) error {
	return r.db.Delete(&models.MediaImage{}, id).Error
}
