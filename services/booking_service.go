package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/yeremiapane/restaurant-booking/models"
	"github.com/yeremiapane/restaurant-booking/utils"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type BookingService struct {
	DB       *gorm.DB
	Notifier Notifier
	// Now is the clock used for the "not in the past" rule and event timestamps.
	Now func() time.Time
}

func NewBookingService(db *gorm.DB, notifier Notifier) *BookingService {
	return &BookingService{
		DB:       db,
		Notifier: notifier,
		Now:      time.Now,
	}
}

func (s *BookingService) today() models.Date {
	return models.DateOf(s.Now())
}

// Get loads one booking by id.
func (s *BookingService) Get(ctx context.Context, id uint) (*models.Booking, error) {
	var booking models.Booking
	if err := s.DB.WithContext(ctx).First(&booking, id).Error; err != nil {
		return nil, lookupError(id, err)
	}
	return &booking, nil
}

// Create validates the input, forces the pending status and stores the booking
// unless an active booking already holds the slot.
func (s *BookingService) Create(ctx context.Context, in BookingInput) (*models.Booking, error) {
	fields := in.fields()
	if err := validateFields(fields, s.today(), nil); err != nil {
		return nil, err
	}

	booking := models.Booking{Status: models.BookingPending}
	if err := fields.apply(&booking); err != nil {
		return nil, err
	}
	booking.SyncSlotHold()

	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		free, err := slotAvailable(tx, booking.BookingDate, booking.BookingTime, 0, true)
		if err != nil {
			return err
		}
		if !free {
			return ErrSlotConflict
		}
		if err := tx.Create(&booking).Error; err != nil {
			if isDuplicateKey(err) {
				return ErrSlotConflict
			}
			return fmt.Errorf("create booking: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	utils.InfoLogger.Printf("Booking #%d created for %s", booking.ID, models.SlotKey(booking.BookingDate, booking.BookingTime))
	s.notify(ctx, models.EventBookingCreated, booking)
	return &booking, nil
}

// Update applies the keys present in patch. The slot is re-checked against the
// effective date and time, excluding the booking itself.
func (s *BookingService) Update(ctx context.Context, id uint, patch BookingPatch) (*models.Booking, error) {
	var booking models.Booking
	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).First(&booking, id).Error; err != nil {
			return lookupError(id, err)
		}

		fields := patch.overlay(booking)
		if err := validateFields(fields, s.today(), patch.presentFields()); err != nil {
			return err
		}

		updated := booking
		if err := fields.apply(&updated); err != nil {
			return err
		}

		free, err := slotAvailable(tx, updated.BookingDate, updated.BookingTime, booking.ID, true)
		if err != nil {
			return err
		}
		if !free {
			return ErrSlotConflict
		}

		updated.SyncSlotHold()
		if err := tx.Save(&updated).Error; err != nil {
			if isDuplicateKey(err) {
				return ErrSlotConflict
			}
			return fmt.Errorf("update booking %d: %w", id, err)
		}
		booking = updated
		return nil
	})
	if err != nil {
		return nil, err
	}

	utils.InfoLogger.Printf("Booking #%d updated", booking.ID)
	s.notify(ctx, models.EventBookingUpdated, booking)
	return &booking, nil
}

// UpdateStatus changes only the status. It never fails on slot grounds:
// a booking brought back from cancelled reclaims its slot hold only when free.
func (s *BookingService) UpdateStatus(ctx context.Context, id uint, rawStatus string) (*models.Booking, error) {
	var booking models.Booking
	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).First(&booking, id).Error; err != nil {
			return lookupError(id, err)
		}

		status, err := validateStatus(rawStatus)
		if err != nil {
			return err
		}

		updates := map[string]interface{}{"status": status}
		if !status.IsActive() {
			updates["slot_hold"] = nil
		}
		if err := tx.Model(&booking).Updates(updates).Error; err != nil {
			return fmt.Errorf("update booking %d status: %w", id, err)
		}

		if status.IsActive() && booking.SlotHold == nil {
			key := models.SlotKey(booking.BookingDate, booking.BookingTime)
			err := tx.Transaction(func(sp *gorm.DB) error {
				return sp.Model(&models.Booking{}).Where("id = ?", booking.ID).Update("slot_hold", key).Error
			})
			switch {
			case err == nil:
			case isDuplicateKey(err):
				utils.InfoLogger.Printf("Booking #%d reactivated while slot %s is held by another booking", booking.ID, key)
			default:
				return fmt.Errorf("claim slot for booking %d: %w", id, err)
			}
		}

		return tx.First(&booking, id).Error
	})
	if err != nil {
		return nil, err
	}

	utils.InfoLogger.Printf("Booking #%d status set to %s", booking.ID, booking.Status)
	s.notify(ctx, models.EventBookingStatusChanged, booking)
	return &booking, nil
}

// Delete removes the booking permanently.
func (s *BookingService) Delete(ctx context.Context, id uint) error {
	var booking models.Booking
	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&booking, id).Error; err != nil {
			return lookupError(id, err)
		}
		if err := tx.Delete(&booking).Error; err != nil {
			return fmt.Errorf("delete booking %d: %w", id, err)
		}
		return nil
	})
	if err != nil {
		return err
	}

	utils.InfoLogger.Printf("Booking #%d deleted", booking.ID)
	s.notify(ctx, models.EventBookingDeleted, booking)
	return nil
}

func (s *BookingService) notify(ctx context.Context, eventType string, booking models.Booking) {
	if s.Notifier == nil {
		return
	}
	event := models.BookingEvent{Type: eventType, Booking: booking, OccurredAt: s.Now()}
	if err := s.Notifier.Notify(ctx, event); err != nil {
		utils.ErrorLogger.WithField("event", eventType).Errorf("Failed to deliver booking event for #%d: %v", booking.ID, err)
	}
}

func lookupError(id uint, err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrBookingNotFound
	}
	return fmt.Errorf("find booking %d: %w", id, err)
}
