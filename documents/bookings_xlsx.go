package documents

import (
	"fmt"
	"time"

	"github.com/xuri/excelize/v2"
	"github.com/yeremiapane/restaurant-booking/models"
)

const bookingsSheet = "Bookings"

var bookingColumns = []string{"ID", "Name", "Email", "Phone", "Date", "Time", "Guests", "Status", "Notes", "Created At"}

// BookingsFilename is the download name of a listing export.
func BookingsFilename(generatedAt time.Time) string {
	return fmt.Sprintf("bookings-%s.xlsx", generatedAt.Format("20060102-150405"))
}

// BookingsWorkbook writes bookings to a single-sheet workbook, one row each.
func BookingsWorkbook(bookings []models.Booking, generatedAt time.Time) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", bookingsSheet); err != nil {
		return nil, fmt.Errorf("error renaming sheet: %w", err)
	}

	headerStyle, err := f.NewStyle(&excelize.Style{
		Fill:      excelize.Fill{Type: "pattern", Color: []string{"#F3F4F6"}, Pattern: 1},
		Font:      &excelize.Font{Bold: true},
		Alignment: &excelize.Alignment{Horizontal: "center"},
	})
	if err != nil {
		return nil, fmt.Errorf("error creating header style: %w", err)
	}

	for i, title := range bookingColumns {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		f.SetCellValue(bookingsSheet, cell, title)
	}
	lastHeader, _ := excelize.CoordinatesToCellName(len(bookingColumns), 1)
	f.SetCellStyle(bookingsSheet, "A1", lastHeader, headerStyle)

	for i, b := range bookings {
		notes := ""
		if b.Notes != nil {
			notes = *b.Notes
		}
		values := []interface{}{
			b.ID,
			b.FullName,
			b.Email,
			b.Phone,
			b.BookingDate.String(),
			b.BookingTime.String(),
			b.Guests,
			b.Status.Label(),
			notes,
			b.CreatedAt.Format("2006-01-02 15:04:05"),
		}
		cell, _ := excelize.CoordinatesToCellName(1, i+2)
		if err := f.SetSheetRow(bookingsSheet, cell, &values); err != nil {
			return nil, fmt.Errorf("error writing row %d: %w", i+2, err)
		}
	}

	f.SetColWidth(bookingsSheet, "B", "D", 28)
	f.SetColWidth(bookingsSheet, "I", "I", 40)
	f.SetColWidth(bookingsSheet, "J", "J", 20)

	footer, _ := excelize.CoordinatesToCellName(1, len(bookings)+3)
	f.SetCellValue(bookingsSheet, footer, "Generated at "+generatedAt.Format("2006-01-02 15:04:05"))

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("error writing workbook: %w", err)
	}
	return buf.Bytes(), nil
}
