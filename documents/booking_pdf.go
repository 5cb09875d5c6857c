package documents

import (
	"bytes"
	_ "embed"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/go-pdf/fpdf"
	"github.com/skip2/go-qrcode"
	"github.com/yeremiapane/restaurant-booking/models"
)

const (
	fontFamily  = "BookingSans"
	qrImageName = "booking-qr"
)

// DejaVu Sans covers Latin and Cyrillic, so guest names render as typed.
var (
	//go:embed fonts/DejaVuSansCondensed.ttf
	regularFont []byte
	//go:embed fonts/DejaVuSansCondensed-Bold.ttf
	boldFont []byte
)

// Renderer builds booking documents. FontPath, when set, replaces the
// embedded DejaVu Sans with another UTF-8 TTF font.
type Renderer struct {
	FontPath string
	Compress bool
}

func NewRenderer(fontPath string) *Renderer {
	return &Renderer{FontPath: fontPath, Compress: true}
}

// BookingFilename is the download name of the booking confirmation.
func BookingFilename(id uint) string {
	return fmt.Sprintf("booking-%d.pdf", id)
}

// BookingPDF renders the confirmation for booking b.
func (r *Renderer) BookingPDF(b models.Booking, generatedAt time.Time) ([]byte, error) {
	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.SetCompression(r.Compress)
	pdf.SetTitle(fmt.Sprintf("Booking Confirmation #%d", b.ID), true)
	pdf.SetCreator("restaurant-booking", true)
	pdf.SetMargins(20, 20, 20)

	if err := r.setupFont(pdf); err != nil {
		return nil, err
	}

	pdf.AddPage()

	pdf.SetFont(fontFamily, "B", 18)
	pdf.SetTextColor(17, 24, 39)
	pdf.CellFormat(0, 12, fmt.Sprintf("Booking Confirmation #%d", b.ID), "", 1, "L", false, 0, "")
	pdf.Ln(4)

	if err := drawQRCode(pdf, b.ID); err != nil {
		return nil, err
	}

	notes := "-"
	if b.Notes != nil && *b.Notes != "" {
		notes = *b.Notes
	}
	rows := [][2]string{
		{"Name", b.FullName},
		{"Email", b.Email},
		{"Phone", b.Phone},
		{"Date", b.BookingDate.String()},
		{"Time", b.BookingTime.String()},
		{"Guests", strconv.Itoa(b.Guests)},
		{"Status", b.Status.Label()},
		{"Notes", notes},
	}

	const keyWidth, valueWidth, rowHeight = 45.0, 85.0, 9.0
	pdf.SetDrawColor(229, 231, 235)
	for _, row := range rows {
		pdf.SetFont(fontFamily, "B", 11)
		pdf.SetFillColor(243, 244, 246)
		pdf.SetTextColor(17, 24, 39)
		pdf.CellFormat(keyWidth, rowHeight, row[0], "1", 0, "L", true, 0, "")

		pdf.SetFont(fontFamily, "", 11)
		if row[0] == "Notes" {
			pdf.MultiCell(valueWidth, rowHeight, row[1], "1", "L", false)
			continue
		}
		pdf.CellFormat(valueWidth, rowHeight, row[1], "1", 1, "L", false, 0, "")
	}

	pdf.Ln(8)
	pdf.SetFont(fontFamily, "", 9)
	pdf.SetTextColor(107, 114, 128)
	pdf.CellFormat(0, 6, "Generated at "+generatedAt.Format("2006-01-02 15:04:05"), "", 1, "L", false, 0, "")

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("render booking %d pdf: %w", b.ID, err)
	}
	return buf.Bytes(), nil
}

// setupFont registers the regular and bold faces of fontFamily.
func (r *Renderer) setupFont(pdf *fpdf.Fpdf) error {
	if r.FontPath != "" {
		if _, err := os.Stat(r.FontPath); err != nil {
			return fmt.Errorf("pdf font %s: %w", r.FontPath, err)
		}
		pdf.AddUTF8Font(fontFamily, "", r.FontPath)
		pdf.AddUTF8Font(fontFamily, "B", r.FontPath)
	} else {
		pdf.AddUTF8FontFromBytes(fontFamily, "", regularFont)
		pdf.AddUTF8FontFromBytes(fontFamily, "B", boldFont)
	}
	if err := pdf.Error(); err != nil {
		return fmt.Errorf("load pdf font: %w", err)
	}
	return nil
}

// drawQRCode places a QR code encoding "booking:<id>" at the top right corner.
func drawQRCode(pdf *fpdf.Fpdf, id uint) error {
	png, err := qrcode.Encode(fmt.Sprintf("booking:%d", id), qrcode.Medium, 256)
	if err != nil {
		return fmt.Errorf("encode booking qr: %w", err)
	}
	opts := fpdf.ImageOptions{ImageType: "PNG", ReadDpi: false}
	pdf.RegisterImageOptionsReader(qrImageName, opts, bytes.NewReader(png))
	pageWidth, _ := pdf.GetPageSize()
	_, _, right, _ := pdf.GetMargins()
	const size = 30.0
	pdf.ImageOptions(qrImageName, pageWidth-right-size, 18, size, size, false, opts, 0, "")
	return pdf.Error()
}
