package controllers

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/yeremiapane/restaurant-booking/documents"
	"github.com/yeremiapane/restaurant-booking/services"
	"github.com/yeremiapane/restaurant-booking/utils"
)

// ExportLimit caps the number of rows in a listing export.
const ExportLimit = 5000

type BookingController struct {
	Service  *services.BookingService
	Renderer *documents.Renderer
}

func NewBookingController(service *services.BookingService, renderer *documents.Renderer) *BookingController {
	return &BookingController{Service: service, Renderer: renderer}
}

// ListBookings -> daftar booking dengan filter dan paginasi
func (bc *BookingController) ListBookings(c *gin.Context) {
	page, err := bc.Service.List(c.Request.Context(), listQuery(c))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, page)
}

// CreateBooking -> membuat booking baru dengan status pending
func (bc *BookingController) CreateBooking(c *gin.Context) {
	var input services.BookingInput
	if !bindJSON(c, &input) {
		return
	}

	booking, err := bc.Service.Create(c.Request.Context(), input)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	utils.InfoLogger.Printf("New booking created: #%d (%s %s)", booking.ID, booking.BookingDate, booking.BookingTime)
	utils.RespondJSON(c, http.StatusCreated, "Booking created successfully", booking)
}

// GetBooking -> detail satu booking
func (bc *BookingController) GetBooking(c *gin.Context) {
	id, ok := bookingID(c)
	if !ok {
		return
	}

	booking, err := bc.Service.Get(c.Request.Context(), id)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, booking)
}

// UpdateBooking -> update sebagian field booking
func (bc *BookingController) UpdateBooking(c *gin.Context) {
	id, ok := bookingID(c)
	if !ok {
		return
	}
	var patch services.BookingPatch
	if !bindJSON(c, &patch) {
		return
	}

	booking, err := bc.Service.Update(c.Request.Context(), id, patch)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Booking updated successfully", booking)
}

// UpdateBookingStatus -> hanya mengubah status booking
func (bc *BookingController) UpdateBookingStatus(c *gin.Context) {
	id, ok := bookingID(c)
	if !ok {
		return
	}
	var body struct {
		Status string `json:"status"`
	}
	if !bindJSON(c, &body) {
		return
	}

	booking, err := bc.Service.UpdateStatus(c.Request.Context(), id, body.Status)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Booking status updated successfully", booking)
}

// DeleteBooking -> menghapus booking
func (bc *BookingController) DeleteBooking(c *gin.Context) {
	id, ok := bookingID(c)
	if !ok {
		return
	}

	if err := bc.Service.Delete(c.Request.Context(), id); err != nil {
		respondServiceError(c, err)
		return
	}
	utils.RespondMessage(c, http.StatusOK, "Booking deleted successfully")
}

// DownloadBookingPDF -> konfirmasi booking dalam bentuk PDF
func (bc *BookingController) DownloadBookingPDF(c *gin.Context) {
	id, ok := bookingID(c)
	if !ok {
		return
	}

	booking, err := bc.Service.Get(c.Request.Context(), id)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	pdf, err := bc.Renderer.BookingPDF(*booking, bc.Service.Now())
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.Header("Content-Disposition", `attachment; filename="`+documents.BookingFilename(booking.ID)+`"`)
	c.Data(http.StatusOK, "application/pdf", pdf)
}

// ExportBookings -> unduh daftar booking (dengan filter yang sama) sebagai XLSX
func (bc *BookingController) ExportBookings(c *gin.Context) {
	bookings, err := bc.Service.ListAll(c.Request.Context(), listQuery(c), ExportLimit)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	now := bc.Service.Now()
	workbook, err := documents.BookingsWorkbook(bookings, now)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.Header("Content-Disposition", `attachment; filename="`+documents.BookingsFilename(now)+`"`)
	c.Data(http.StatusOK, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", workbook)
}

// listQuery reads the listing filters. A missing or non-numeric per_page
// falls back to the default page size; numeric values are clamped later.
func listQuery(c *gin.Context) services.ListQuery {
	q := services.ListQuery{
		Date:    c.Query("date"),
		Status:  c.Query("status"),
		Search:  c.Query("search"),
		Page:    1,
		PerPage: services.DefaultPerPage,
	}
	if v, err := strconv.Atoi(c.Query("per_page")); err == nil {
		q.PerPage = v
	}
	if v, err := strconv.Atoi(c.Query("page")); err == nil {
		q.Page = v
	}
	return q
}

// bookingID parses the :id path parameter. Ids that cannot name a booking
// are answered with 404 like any unknown id.
func bookingID(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil || id == 0 {
		respondServiceError(c, services.ErrBookingNotFound)
		return 0, false
	}
	return uint(id), true
}

// Ping -> health check
func Ping(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"message": "pong", "time": time.Now().Format(time.RFC3339)})
}
