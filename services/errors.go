package services

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"gorm.io/gorm"
)

var (
	ErrBookingNotFound = errors.New("booking not found")
	ErrSlotConflict    = errors.New("time slot already taken")
)

// ValidationError maps request field names to human readable messages.
type ValidationError struct {
	Fields map[string][]string
}

func NewValidationError() *ValidationError {
	return &ValidationError{Fields: make(map[string][]string)}
}

func (e *ValidationError) Add(field, message string) {
	e.Fields[field] = append(e.Fields[field], message)
}

func (e *ValidationError) Empty() bool {
	return len(e.Fields) == 0
}

// Error returns the first message in field order, followed by a count of the rest.
func (e *ValidationError) Error() string {
	if e.Empty() {
		return "The given data was invalid."
	}
	first, total := "", 0
	for _, field := range e.fieldNames() {
		msgs := e.Fields[field]
		if first == "" && len(msgs) > 0 {
			first = msgs[0]
		}
		total += len(msgs)
	}
	if total <= 1 {
		return first
	}
	suffix := "errors"
	if total == 2 {
		suffix = "error"
	}
	return fmt.Sprintf("%s (and %d more %s)", first, total-1, suffix)
}

func (e *ValidationError) fieldNames() []string {
	order := make(map[string]int, len(fieldOrder))
	for i, name := range fieldOrder {
		order[name] = i
	}
	names := make([]string, 0, len(e.Fields))
	for name := range e.Fields {
		names = append(names, name)
	}
	sort.SliceStable(names, func(i, j int) bool {
		oi, iok := order[names[i]]
		oj, jok := order[names[j]]
		switch {
		case iok && jok:
			return oi < oj
		case iok != jok:
			return iok
		default:
			return names[i] < names[j]
		}
	})
	return names
}

// fieldOrder is the order fields appear in a booking form.
var fieldOrder = []string{"full_name", "email", "phone", "booking_date", "booking_time", "guests", "notes", "status"}

func isDuplicateKey(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	msg := err.Error()
	return strings.Contains(msg, "UNIQUE constraint failed") || strings.Contains(msg, "Duplicate entry")
}
