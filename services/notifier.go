package services

import (
	"context"
	"errors"

	"github.com/yeremiapane/restaurant-booking/models"
)

// Notifier receives booking events after the change is committed.
type Notifier interface {
	Notify(ctx context.Context, event models.BookingEvent) error
}

// Notifiers fans an event out to every notifier and joins their errors.
type Notifiers []Notifier

func (n Notifiers) Notify(ctx context.Context, event models.BookingEvent) error {
	var errs []error
	for _, notifier := range n {
		if notifier == nil {
			continue
		}
		if err := notifier.Notify(ctx, event); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// NotifierFunc adapts a plain function to Notifier.
type NotifierFunc func(ctx context.Context, event models.BookingEvent) error

func (f NotifierFunc) Notify(ctx context.Context, event models.BookingEvent) error {
	return f(ctx, event)
}
