package services

import (
	"bytes"
	"encoding/json"
	"strings"

	"github.com/yeremiapane/restaurant-booking/models"
)

// BookingInput is the payload accepted when creating a booking.
// A status supplied by the caller is ignored.
type BookingInput struct {
	FullName    string  `json:"full_name"`
	Email       string  `json:"email"`
	Phone       string  `json:"phone"`
	BookingDate string  `json:"booking_date"`
	BookingTime string  `json:"booking_time"`
	Guests      *int    `json:"guests"`
	Notes       *string `json:"notes"`
}

// Optional records whether a JSON key was present, and whether it was null.
type Optional[T any] struct {
	Set   bool
	Null  bool
	Value T
}

func Some[T any](v T) Optional[T] {
	return Optional[T]{Set: true, Value: v}
}

func Null[T any]() Optional[T] {
	return Optional[T]{Set: true, Null: true}
}

func (o *Optional[T]) UnmarshalJSON(b []byte) error {
	o.Set = true
	if bytes.Equal(bytes.TrimSpace(b), []byte("null")) {
		var zero T
		o.Null, o.Value = true, zero
		return nil
	}
	o.Null = false
	return json.Unmarshal(b, &o.Value)
}

// BookingPatch is a partial update. Only keys present in the request are applied.
type BookingPatch struct {
	FullName    Optional[string] `json:"full_name"`
	Email       Optional[string] `json:"email"`
	Phone       Optional[string] `json:"phone"`
	BookingDate Optional[string] `json:"booking_date"`
	BookingTime Optional[string] `json:"booking_time"`
	Guests      Optional[int]    `json:"guests"`
	Notes       Optional[string] `json:"notes"`
}

// presentFields lists the json names of the keys that were sent.
func (p BookingPatch) presentFields() map[string]bool {
	present := map[string]bool{}
	mark := func(name string, set bool) {
		if set {
			present[name] = true
		}
	}
	mark("full_name", p.FullName.Set)
	mark("email", p.Email.Set)
	mark("phone", p.Phone.Set)
	mark("booking_date", p.BookingDate.Set)
	mark("booking_time", p.BookingTime.Set)
	mark("guests", p.Guests.Set)
	mark("notes", p.Notes.Set)
	return present
}

// bookingFields is the validated shape shared by create and update.
type bookingFields struct {
	FullName    string  `json:"full_name" validate:"required,max=255"`
	Email       string  `json:"email" validate:"required,email,max=255"`
	Phone       string  `json:"phone" validate:"required,max=50"`
	BookingDate string  `json:"booking_date" validate:"required,date_ymd"`
	BookingTime string  `json:"booking_time" validate:"required,clock_hm"`
	Guests      *int    `json:"guests" validate:"required,min=1,max=20"`
	Notes       *string `json:"notes" validate:"omitempty,max=1000"`
}

func (in BookingInput) fields() bookingFields {
	f := bookingFields{
		FullName:    in.FullName,
		Email:       in.Email,
		Phone:       in.Phone,
		BookingDate: in.BookingDate,
		BookingTime: in.BookingTime,
		Guests:      in.Guests,
		Notes:       in.Notes,
	}
	f.normalize()
	return f
}

// overlay applies the present keys of p on top of the stored booking.
func (p BookingPatch) overlay(b models.Booking) bookingFields {
	guests := b.Guests
	f := bookingFields{
		FullName:    b.FullName,
		Email:       b.Email,
		Phone:       b.Phone,
		BookingDate: b.BookingDate.String(),
		BookingTime: b.BookingTime.String(),
		Guests:      &guests,
		Notes:       b.Notes,
	}
	if p.FullName.Set {
		f.FullName = p.FullName.Value
	}
	if p.Email.Set {
		f.Email = p.Email.Value
	}
	if p.Phone.Set {
		f.Phone = p.Phone.Value
	}
	if p.BookingDate.Set {
		f.BookingDate = p.BookingDate.Value
	}
	if p.BookingTime.Set {
		f.BookingTime = p.BookingTime.Value
	}
	if p.Guests.Set {
		if p.Guests.Null {
			f.Guests = nil
		} else {
			v := p.Guests.Value
			f.Guests = &v
		}
	}
	if p.Notes.Set {
		if p.Notes.Null {
			f.Notes = nil
		} else {
			v := p.Notes.Value
			f.Notes = &v
		}
	}
	f.normalize()
	return f
}

// normalize trims strings and turns blank notes into null.
func (f *bookingFields) normalize() {
	f.FullName = strings.TrimSpace(f.FullName)
	f.Email = strings.TrimSpace(f.Email)
	f.Phone = strings.TrimSpace(f.Phone)
	f.BookingDate = strings.TrimSpace(f.BookingDate)
	f.BookingTime = strings.TrimSpace(f.BookingTime)
	if f.Notes != nil {
		trimmed := strings.TrimSpace(*f.Notes)
		if trimmed == "" {
			f.Notes = nil
		} else {
			f.Notes = &trimmed
		}
	}
}

// apply copies validated fields onto b. Date and time must already parse.
func (f bookingFields) apply(b *models.Booking) error {
	date, err := models.ParseDate(f.BookingDate)
	if err != nil {
		return err
	}
	clock, err := models.ParseClock(f.BookingTime)
	if err != nil {
		return err
	}
	b.FullName = f.FullName
	b.Email = f.Email
	b.Phone = f.Phone
	b.BookingDate = date
	b.BookingTime = clock
	b.Guests = *f.Guests
	b.Notes = f.Notes
	return nil
}
