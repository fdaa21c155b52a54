package booking

import (
	"errors"

	"gorm.io/gorm"
)

// BookingRepository defines data operations for bookings.
type BookingRepository interface {
	Create(b *Booking) error
	GetByID(id uint) (*Booking, error)
	Update(b *Booking) error
	Delete(id uint) error

	ListByGround(groundID uint, page, limit int) ([]Booking, int64, error)
	ListByGroundAndDate(groundID uint, date string) ([]Booking, error)
	ListBookedDates(groundID uint) ([]string, error)
	ListByPlayer(playerID uint, page, limit int) ([]Booking, int64, error)
	CountByPlayer(playerID uint) (int64, error)
}

type bookingRepository struct {
	db *gorm.DB
}

// NewBookingRepository creates a new instance of BookingRepository.
func NewBookingRepository(db *gorm.DB) BookingRepository {
	return &bookingRepository{db: db}
}

func (r *bookingRepository) Create(b *Booking) error {
	return r.db.Create(b).Error
}

func (r *bookingRepository) GetByID(id uint) (*Booking, error) {
	var b Booking
	if err := r.db.First(&b, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &b, nil
}

func (r *bookingRepository) Update(b *Booking) error {
	return r.db.Save(b).Error
}

func (r *bookingRepository) Delete(id uint) error {
	return r.db.Delete(&Booking{}, id).Error
}

func (r *bookingRepository) ListByGround(groundID uint, page, limit int) ([]Booking, int64, error) {
	var bookings []Booking
	var total int64
	query := r.db.Model(&Booking{}).Where("ground_id = ?", groundID)
	query.Count(&total)
	offset := (page - 1) * limit
	if err := query.Offset(offset).Limit(limit).Order("date desc, created_at desc").Find(&bookings).Error; err != nil {
		return nil, 0, err
	}
	return bookings, total, nil
}

func (r *bookingRepository) ListByGroundAndDate(groundID uint, date string) ([]Booking, error) {
	var bookings []Booking
	if err := r.db.Where("ground_id = ? AND date = ?", groundID, date).Order("created_at asc").Find(&bookings).Error; err != nil {
		return nil, err
	}
	return bookings, nil
}

func (r *bookingRepository) ListBookedDates(groundID uint) ([]string, error) {
	var dates []string
	err := r.db.Model(&Booking{}).
		Where("ground_id = ? AND status <> ?", groundID, StatusCancelled).
		Distinct("date").
		Order("date asc").
		Pluck("date", &dates).Error
	if err != nil {
		return nil, err
	}
	return dates, nil
}

func (r *bookingRepository) CountByPlayer(playerID uint) (int64, error) {
	var count int64
	err := r.db.Model(&Booking{}).Where("player_id = ?", playerID).Count(&count).Error
	return count, err
}

func (r *bookingRepository) ListByPlayer(playerID uint, page, limit int) ([]Booking, int64, error) {
	var bookings []Booking
	var total int64
	query := r.db.Model(&Booking{}).Where("player_id = ?", playerID)
	query.Count(&total)
	offset := (page - 1) * limit
	if err := query.Offset(offset).Limit(limit).Order("date desc, created_at desc").Find(&bookings).Error; err != nil {
		return nil, 0, err
	}
	return bookings, total, nil
}
