package database

import (
	"fmt"
	"time"

	"github.com/yeremiapane/restaurant-booking/models"
	"github.com/yeremiapane/restaurant-booking/utils"
	"gorm.io/gorm"
)

// SeedBookings inserts a sample confirmed booking when the table is empty.
func SeedBookings(db *gorm.DB, now time.Time) error {
	var count int64
	if err := db.Model(&models.Booking{}).Count(&count).Error; err != nil {
		return fmt.Errorf("count bookings: %w", err)
	}
	if count > 0 {
		utils.InfoLogger.Printf("Skipping seed, %d bookings present", count)
		return nil
	}

	notes := "Window seat please"
	sample := models.Booking{
		FullName:    "Ivan Petrov",
		Email:       "ivan.petrov@example.com",
		Phone:       "+77001234567",
		BookingDate: models.DateOf(now.AddDate(0, 0, 2)),
		BookingTime: models.Clock{Hour: 15, Minute: 30},
		Guests:      3,
		Notes:       &notes,
		Status:      models.BookingConfirmed,
	}
	sample.SyncSlotHold()

	if err := db.Create(&sample).Error; err != nil {
		return fmt.Errorf("seed booking: %w", err)
	}
	utils.InfoLogger.Printf("Seeded booking #%d", sample.ID)
	return nil
}
