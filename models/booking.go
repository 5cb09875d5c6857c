package models

import (
	"slices"
	"strings"
	"time"

	"gorm.io/gorm"
)

type BookingStatus string

const (
	BookingPending   BookingStatus = "pending"
	BookingConfirmed BookingStatus = "confirmed"
	BookingCancelled BookingStatus = "cancelled"
)

// BookingStatuses lists every accepted status in display order.
var BookingStatuses = []BookingStatus{BookingPending, BookingConfirmed, BookingCancelled}

func (s BookingStatus) Valid() bool {
	return slices.Contains(BookingStatuses, s)
}

// IsActive reports whether a booking in this status occupies its slot.
func (s BookingStatus) IsActive() bool {
	return s == BookingPending || s == BookingConfirmed
}

// Label returns the status with its first letter upper-cased.
func (s BookingStatus) Label() string {
	if s == "" {
		return ""
	}
	b := []byte(s)
	if b[0] >= 'a' && b[0] <= 'z' {
		b[0] -= 'a' - 'A'
	}
	return string(b)
}

// Booking adalah reservasi satu meja pada tanggal dan jam tertentu.
type Booking struct {
	ID          uint          `gorm:"primaryKey" json:"id"`
	FullName    string        `gorm:"type:varchar(255);not null" json:"full_name"`
	Email       string        `gorm:"type:varchar(255);not null" json:"email"`
	Phone       string        `gorm:"type:varchar(50);not null" json:"phone"`
	BookingDate Date          `gorm:"type:date;not null;index:idx_bookings_slot,priority:1" json:"booking_date"`
	BookingTime Clock         `gorm:"type:varchar(5);not null;index:idx_bookings_slot,priority:2" json:"booking_time"`
	Guests      int           `gorm:"not null" json:"guests"`
	Notes       *string       `gorm:"type:text" json:"notes"`
	Status      BookingStatus `gorm:"type:varchar(20);not null;default:'pending';index" json:"status"`
	// SlotHold is set to the slot key while the booking is active and NULL
	// once cancelled, so the unique index admits one active booking per slot.
	SlotHold *string `gorm:"type:varchar(16);uniqueIndex:uniq_bookings_slot_hold" json:"-"`
	// SearchText is the lower-cased name, email and phone, kept in sync on save.
	SearchText string    `gorm:"type:varchar(600);not null;default:''" json:"-"`
	CreatedAt  time.Time `gorm:"index" json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

// SlotKey identifies a (date, time) slot.
func SlotKey(date Date, clock Clock) string {
	return date.String() + " " + clock.String()
}

// SearchTextOf joins the searchable fields lower-cased with Unicode rules,
// one per line so a term never matches across two fields.
func SearchTextOf(fullName, email, phone string) string {
	return strings.ToLower(fullName + "\n" + email + "\n" + phone)
}

// BeforeSave keeps SearchText current for Create and Save.
func (b *Booking) BeforeSave(tx *gorm.DB) error {
	b.SearchText = SearchTextOf(b.FullName, b.Email, b.Phone)
	return nil
}

// SyncSlotHold sets or clears the hold according to the current status.
func (b *Booking) SyncSlotHold() {
	if b.Status.IsActive() {
		key := SlotKey(b.BookingDate, b.BookingTime)
		b.SlotHold = &key
		return
	}
	b.SlotHold = nil
}

// Event types emitted after a booking change is committed.
const (
	EventBookingCreated       = "booking.created"
	EventBookingUpdated       = "booking.updated"
	EventBookingStatusChanged = "booking.status_changed"
	EventBookingDeleted       = "booking.deleted"
)

type BookingEvent struct {
	Type       string    `json:"type"`
	Booking    Booking   `json:"booking"`
	OccurredAt time.Time `json:"occurred_at"`
}
