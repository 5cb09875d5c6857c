package services

import (
	"context"
	"fmt"
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yeremiapane/restaurant-booking/models"
	"gorm.io/gorm"
)

// seedBookings inserts n bookings on consecutive slots, oldest first.
func seedBookings(t *testing.T, db *gorm.DB, n int, mutate func(i int, b *models.Booking)) []models.Booking {
	t.Helper()
	created := make([]models.Booking, 0, n)
	base := time.Date(2026, time.January, 1, 8, 0, 0, 0, time.UTC)
	for i := 0; i < n; i++ {
		b := models.Booking{
			FullName:    fmt.Sprintf("Guest %02d", i),
			Email:       fmt.Sprintf("guest%02d@example.com", i),
			Phone:       fmt.Sprintf("+7700000%04d", i),
			BookingDate: models.NewDate(2026, time.March, 1+i/10),
			BookingTime: models.Clock{Hour: 10 + i%10, Minute: 0},
			Guests:      2,
			Status:      models.BookingPending,
			CreatedAt:   base.Add(time.Duration(i) * time.Minute),
		}
		if mutate != nil {
			mutate(i, &b)
		}
		b.SyncSlotHold()
		require.NoError(t, db.Create(&b).Error)
		created = append(created, b)
	}
	return created
}

func TestListNewestFirstWithDefaultPageSize(t *testing.T) {
	svc, _ := newTestService(t)
	seedBookings(t, svc.DB, 25, nil)

	page, err := svc.List(context.Background(), ListQuery{PerPage: DefaultPerPage})
	require.NoError(t, err)

	assert.Equal(t, int64(25), page.Total)
	assert.Equal(t, 1, page.CurrentPage)
	assert.Equal(t, 3, page.LastPage)
	assert.Equal(t, 10, page.PerPage)
	require.Len(t, page.Data, 10)
	assert.Equal(t, "Guest 24", page.Data[0].FullName)
	assert.Equal(t, "Guest 15", page.Data[9].FullName)
	require.NotNil(t, page.From)
	require.NotNil(t, page.To)
	assert.Equal(t, 1, *page.From)
	assert.Equal(t, 10, *page.To)

	last, err := svc.List(context.Background(), ListQuery{Page: 3, PerPage: 10})
	require.NoError(t, err)
	require.Len(t, last.Data, 5)
	assert.Equal(t, "Guest 00", last.Data[4].FullName)
	assert.Equal(t, 21, *last.From)
	assert.Equal(t, 25, *last.To)
}

func TestListClampsPerPage(t *testing.T) {
	svc, _ := newTestService(t)
	seedBookings(t, svc.DB, 3, nil)

	page, err := svc.List(context.Background(), ListQuery{PerPage: 250})
	require.NoError(t, err)
	assert.Equal(t, MaxPerPage, page.PerPage)
	assert.Len(t, page.Data, 3)

	page, err = svc.List(context.Background(), ListQuery{PerPage: 0, Page: -4})
	require.NoError(t, err)
	assert.Equal(t, 1, page.PerPage)
	assert.Equal(t, 1, page.CurrentPage)
	assert.Equal(t, 3, page.LastPage)
	assert.Len(t, page.Data, 1)
}

func TestListPagePastEnd(t *testing.T) {
	svc, _ := newTestService(t)
	seedBookings(t, svc.DB, 3, nil)

	page, err := svc.List(context.Background(), ListQuery{Page: 9, PerPage: 10})
	require.NoError(t, err)
	assert.NotNil(t, page.Data)
	assert.Empty(t, page.Data)
	assert.Equal(t, 9, page.CurrentPage)
	assert.Equal(t, 1, page.LastPage)
	assert.Nil(t, page.From)
	assert.Nil(t, page.To)
}

func TestListHugePageIsPastEnd(t *testing.T) {
	svc, _ := newTestService(t)
	seedBookings(t, svc.DB, 3, nil)

	page, err := svc.List(context.Background(), ListQuery{Page: math.MaxInt64 / 5, PerPage: 10})
	require.NoError(t, err)
	assert.Empty(t, page.Data)
	assert.Equal(t, math.MaxInt64/5, page.CurrentPage)
	assert.Equal(t, 1, page.LastPage)
	assert.Nil(t, page.From)
	assert.Nil(t, page.To)
}

func TestListEmptyTable(t *testing.T) {
	svc, _ := newTestService(t)

	page, err := svc.List(context.Background(), ListQuery{PerPage: 10})
	require.NoError(t, err)
	assert.NotNil(t, page.Data)
	assert.Equal(t, int64(0), page.Total)
	assert.Equal(t, 1, page.LastPage)
}

func TestListFilters(t *testing.T) {
	svc, _ := newTestService(t)
	seedBookings(t, svc.DB, 12, func(i int, b *models.Booking) {
		switch i {
		case 2:
			b.FullName = "Ivan PETROV"
		case 5:
			b.Email = "petrov.family@example.com"
			b.Status = models.BookingConfirmed
		case 7:
			b.Phone = "+7 701 555 0000"
			b.Status = models.BookingCancelled
		case 11:
			b.FullName = "100% Real Name"
		}
	})
	ctx := context.Background()

	byDate, err := svc.List(ctx, ListQuery{Date: "2026-03-02", PerPage: 100})
	require.NoError(t, err)
	assert.Equal(t, int64(2), byDate.Total)

	byStatus, err := svc.List(ctx, ListQuery{Status: "cancelled", PerPage: 100})
	require.NoError(t, err)
	require.Len(t, byStatus.Data, 1)
	assert.Equal(t, "+7 701 555 0000", byStatus.Data[0].Phone)

	bySearch, err := svc.List(ctx, ListQuery{Search: "petrov", PerPage: 100})
	require.NoError(t, err)
	require.Len(t, bySearch.Data, 2)
	assert.Equal(t, "petrov.family@example.com", bySearch.Data[0].Email)
	assert.Equal(t, "Ivan PETROV", bySearch.Data[1].FullName)

	byPhone, err := svc.List(ctx, ListQuery{Search: "555", PerPage: 100})
	require.NoError(t, err)
	assert.Len(t, byPhone.Data, 1)

	combined, err := svc.List(ctx, ListQuery{Search: "petrov", Status: "confirmed", PerPage: 100})
	require.NoError(t, err)
	require.Len(t, combined.Data, 1)
	assert.Equal(t, models.BookingConfirmed, combined.Data[0].Status)

	literal, err := svc.List(ctx, ListQuery{Search: "100%", PerPage: 100})
	require.NoError(t, err)
	require.Len(t, literal.Data, 1)
	assert.Equal(t, "100% Real Name", literal.Data[0].FullName)

	wildcard, err := svc.List(ctx, ListQuery{Search: "%", PerPage: 100})
	require.NoError(t, err)
	assert.Len(t, wildcard.Data, 1)

	none, err := svc.List(ctx, ListQuery{Search: "nobody", PerPage: 100})
	require.NoError(t, err)
	assert.Empty(t, none.Data)
	assert.Equal(t, int64(0), none.Total)
}

func TestListSearchIgnoresCyrillicCase(t *testing.T) {
	svc, _ := newTestService(t)
	seedBookings(t, svc.DB, 4, func(i int, b *models.Booking) {
		switch i {
		case 1:
			b.FullName = "Иван Петров"
		case 3:
			b.FullName = "ИВАНОВА Мария"
		}
	})
	ctx := context.Background()

	lower, err := svc.List(ctx, ListQuery{Search: "иван", PerPage: 100})
	require.NoError(t, err)
	require.Len(t, lower.Data, 2)
	assert.Equal(t, "ИВАНОВА Мария", lower.Data[0].FullName)
	assert.Equal(t, "Иван Петров", lower.Data[1].FullName)

	upper, err := svc.List(ctx, ListQuery{Search: "ПЕТРОВ", PerPage: 100})
	require.NoError(t, err)
	require.Len(t, upper.Data, 1)
	assert.Equal(t, "Иван Петров", upper.Data[0].FullName)
}

func TestListSearchAfterUpdate(t *testing.T) {
	svc, _ := newTestService(t)
	created := seedBookings(t, svc.DB, 1, nil)

	name := "Ольга Сидорова"
	_, err := svc.Update(context.Background(), created[0].ID, BookingPatch{FullName: Some(name)})
	require.NoError(t, err)

	page, err := svc.List(context.Background(), ListQuery{Search: "ольга", PerPage: 10})
	require.NoError(t, err)
	require.Len(t, page.Data, 1)

	stale, err := svc.List(context.Background(), ListQuery{Search: "guest 00", PerPage: 10})
	require.NoError(t, err)
	assert.Empty(t, stale.Data)
}

func TestListAllRespectsLimit(t *testing.T) {
	svc, _ := newTestService(t)
	seedBookings(t, svc.DB, 8, nil)

	all, err := svc.ListAll(context.Background(), ListQuery{}, 5)
	require.NoError(t, err)
	require.Len(t, all, 5)
	assert.Equal(t, "Guest 07", all[0].FullName)

	filtered, err := svc.ListAll(context.Background(), ListQuery{Search: "guest03"}, 0)
	require.NoError(t, err)
	assert.Len(t, filtered, 1)
}

func TestClampPerPage(t *testing.T) {
	assert.Equal(t, 1, ClampPerPage(-3))
	assert.Equal(t, 1, ClampPerPage(0))
	assert.Equal(t, 42, ClampPerPage(42))
	assert.Equal(t, 100, ClampPerPage(100))
	assert.Equal(t, 100, ClampPerPage(250))
}
