package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/yeremiapane/restaurant-booking/models"
	"gorm.io/gorm"
)

const (
	DefaultPerPage = 10
	MaxPerPage     = 100
)

// ListQuery holds the listing filters. Empty filters are ignored.
type ListQuery struct {
	Date    string
	Status  string
	Search  string
	Page    int
	PerPage int
}

// BookingPage is one page of the newest-first listing.
type BookingPage struct {
	Data        []models.Booking `json:"data"`
	CurrentPage int              `json:"current_page"`
	LastPage    int              `json:"last_page"`
	PerPage     int              `json:"per_page"`
	Total       int64            `json:"total"`
	From        *int             `json:"from"`
	To          *int             `json:"to"`
}

// ClampPerPage bounds a requested page size to [1, MaxPerPage].
func ClampPerPage(perPage int) int {
	if perPage < 1 {
		return 1
	}
	if perPage > MaxPerPage {
		return MaxPerPage
	}
	return perPage
}

func (q ListQuery) normalized() ListQuery {
	q.Date = strings.TrimSpace(q.Date)
	q.Status = strings.TrimSpace(q.Status)
	q.Search = strings.TrimSpace(q.Search)
	if q.Page < 1 {
		q.Page = 1
	}
	q.PerPage = ClampPerPage(q.PerPage)
	return q
}

// likeEscaper escapes LIKE wildcards with '!' so a search term matches literally.
var likeEscaper = strings.NewReplacer("!", "!!", "%", "!%", "_", "!_")

func filterBookings(q ListQuery) func(*gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		if q.Date != "" {
			db = db.Where("booking_date = ?", q.Date)
		}
		if q.Status != "" {
			db = db.Where("status = ?", q.Status)
		}
		if q.Search != "" {
			// search_text is lower-cased in Go, so matching ignores case
			// for Cyrillic too, whatever the database collation.
			pattern := "%" + likeEscaper.Replace(strings.ToLower(q.Search)) + "%"
			db = db.Where("search_text LIKE ? ESCAPE '!'", pattern)
		}
		return db
	}
}

func newestFirst(db *gorm.DB) *gorm.DB {
	return db.Order("created_at DESC").Order("id DESC")
}

// List returns one page of bookings matching every supplied filter.
// A page past the end yields an empty Data slice.
func (s *BookingService) List(ctx context.Context, query ListQuery) (*BookingPage, error) {
	q := query.normalized()

	var total int64
	if err := s.DB.WithContext(ctx).Model(&models.Booking{}).Scopes(filterBookings(q)).Count(&total).Error; err != nil {
		return nil, fmt.Errorf("count bookings: %w", err)
	}

	last := lastPage(total, q.PerPage)
	page := &BookingPage{
		Data:        make([]models.Booking, 0),
		CurrentPage: q.Page,
		LastPage:    last,
		PerPage:     q.PerPage,
		Total:       total,
	}
	// Past the end: page*perPage may not even fit in an int.
	if total == 0 || q.Page > last {
		return page, nil
	}

	bookings := make([]models.Booking, 0, q.PerPage)
	offset := (q.Page - 1) * q.PerPage
	err := s.DB.WithContext(ctx).
		Scopes(filterBookings(q), newestFirst).
		Offset(offset).
		Limit(q.PerPage).
		Find(&bookings).Error
	if err != nil {
		return nil, fmt.Errorf("list bookings: %w", err)
	}

	page.Data = bookings
	if len(bookings) > 0 {
		from := offset + 1
		to := offset + len(bookings)
		page.From, page.To = &from, &to
	}
	return page, nil
}

// ListAll returns up to limit bookings matching query, newest first, ignoring pagination.
func (s *BookingService) ListAll(ctx context.Context, query ListQuery, limit int) ([]models.Booking, error) {
	q := query.normalized()
	bookings := make([]models.Booking, 0)
	db := s.DB.WithContext(ctx).Scopes(filterBookings(q), newestFirst)
	if limit > 0 {
		db = db.Limit(limit)
	}
	if err := db.Find(&bookings).Error; err != nil {
		return nil, fmt.Errorf("export bookings: %w", err)
	}
	return bookings, nil
}

func lastPage(total int64, perPage int) int {
	if total == 0 {
		return 1
	}
	return int((total + int64(perPage) - 1) / int64(perPage))
}
