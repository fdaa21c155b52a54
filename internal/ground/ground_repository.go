package ground

import (
	"errors"

	"gorm.io/gorm"
)

// GroundRepository defines data operations for grounds.
type GroundRepository interface {
	Create(g *Ground) error
	GetByID(id uint) (*Ground, error)
	GetByOwnerID(ownerID uint) (*Ground, error)
	Update(g *Ground) error
	Search(district, village, name string, page, limit int) ([]Ground, int64, error)
}

type groundRepository struct {
	db *gorm.DB
}

// NewGroundRepository creates a new instance of GroundRepository.
func NewGroundRepository(db *gorm.DB) GroundRepository {
	return &groundRepository{db: db}
}

func (r *groundRepository) Create(g *Ground) error {
	return r.db.Create(g).Error
}

func (r *groundRepository) GetByID(id uint) (*Ground, error) {
	var g Ground
	if err := r.db.First(&g, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &g, nil
}

func (r *groundRepository) GetByOwnerID(ownerID uint) (*Ground, error) {
	var g Ground
	if err := r.db.Where("owner_id = ?", ownerID).First(&g).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &g, nil
}

func (r *groundRepository) Update(g *Ground) error {
	return r.db.Save(g).Error
}

func (r *groundRepository) Search(district, village, name string, page, limit int) ([]Ground, int64, error) {
	var grounds []Ground
	var total int64

	query := r.db.Model(&Ground{})
	if district != "" {
		query = query.Where("district = ?", district)
	}
	if village != "" {
		query = query.Where("village = ?", village)
	}
	if name != "" {
		query = query.Where("name ILIKE ?", "%"+name+"%")
	}

	query.Count(&total)
	offset := (page - 1) * limit
	if err := query.Offset(offset).Limit(limit).Order("rating_average desc, created_at desc").Find(&grounds).Error; err != nil {
		return nil, 0, err
	}
	return grounds, total, nil
}
