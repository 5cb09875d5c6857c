package services

import (
	"context"
	"fmt"

	"github.com/yeremiapane/restaurant-booking/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

var activeStatuses = []models.BookingStatus{models.BookingPending, models.BookingConfirmed}

// IsSlotAvailable reports whether no pending or confirmed booking other than
// excludeID holds (date, clock). An excludeID of 0 excludes nothing.
func (s *BookingService) IsSlotAvailable(ctx context.Context, date models.Date, clock models.Clock, excludeID uint) (bool, error) {
	return slotAvailable(s.DB.WithContext(ctx), date, clock, excludeID, false)
}

// slotAvailable runs the check on db, locking the matching rows when lock is set.
func slotAvailable(db *gorm.DB, date models.Date, clock models.Clock, excludeID uint, lock bool) (bool, error) {
	query := db.Model(&models.Booking{}).
		Where("booking_date = ? AND booking_time = ?", date, clock).
		Where("status IN ?", activeStatuses)
	if excludeID != 0 {
		query = query.Where("id <> ?", excludeID)
	}
	if lock {
		query = query.Clauses(clause.Locking{Strength: "UPDATE"})
	}

	var count int64
	if err := query.Count(&count).Error; err != nil {
		return false, fmt.Errorf("check slot %s: %w", models.SlotKey(date, clock), err)
	}
	return count == 0, nil
}
