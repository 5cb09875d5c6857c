package database

import (
	"fmt"

	"github.com/yeremiapane/restaurant-booking/models"
	"github.com/yeremiapane/restaurant-booking/utils"
	"gorm.io/gorm"
)

// Migrate creates or updates the bookings table and fills slot holds for
// rows written before the hold column existed.
func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(&models.Booking{}); err != nil {
		return fmt.Errorf("auto migrate: %w", err)
	}
	utils.InfoLogger.Println("AutoMigrate completed.")

	if err := db.Model(&models.Booking{}).
		Where("status = ? AND slot_hold IS NOT NULL", models.BookingCancelled).
		Update("slot_hold", nil).Error; err != nil {
		return fmt.Errorf("release cancelled slot holds: %w", err)
	}

	var pending []models.Booking
	if err := db.Where("status IN ? AND slot_hold IS NULL", []models.BookingStatus{models.BookingPending, models.BookingConfirmed}).
		Order("id").Find(&pending).Error; err != nil {
		return fmt.Errorf("load bookings without slot hold: %w", err)
	}

	for _, b := range pending {
		key := models.SlotKey(b.BookingDate, b.BookingTime)
		err := db.Model(&models.Booking{}).Where("id = ?", b.ID).Update("slot_hold", key).Error
		if err != nil {
			// Two active rows already share this slot; the older one keeps the hold.
			utils.ErrorLogger.Printf("Booking #%d shares slot %s with another active booking: %v", b.ID, key, err)
		}
	}
	if len(pending) > 0 {
		utils.InfoLogger.Printf("Backfilled slot holds for %d bookings", len(pending))
	}

	return backfillSearchText(db)
}

// backfillSearchText fills search_text for rows saved before the column existed.
func backfillSearchText(db *gorm.DB) error {
	var stale []models.Booking
	if err := db.Where("search_text = ?", "").Order("id").Find(&stale).Error; err != nil {
		return fmt.Errorf("load bookings without search text: %w", err)
	}
	for _, b := range stale {
		text := models.SearchTextOf(b.FullName, b.Email, b.Phone)
		if err := db.Model(&models.Booking{}).Where("id = ?", b.ID).UpdateColumn("search_text", text).Error; err != nil {
			return fmt.Errorf("backfill search text for booking %d: %w", b.ID, err)
		}
	}
	if len(stale) > 0 {
		utils.InfoLogger.Printf("Backfilled search text for %d bookings", len(stale))
	}
	return nil
}
