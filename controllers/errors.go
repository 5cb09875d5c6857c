package controllers

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/yeremiapane/restaurant-booking/metrics"
	"github.com/yeremiapane/restaurant-booking/services"
	"github.com/yeremiapane/restaurant-booking/utils"
)

const (
	// SlotConflictMessage is shown to guests when the slot is already taken.
	SlotConflictMessage = "Выбранное время уже занято"
	notFoundMessage     = "Booking not found"
	serverErrorMessage  = "Server error"
)

var (
	errNotFound      = errors.New(notFoundMessage)
	errServerFailure = errors.New(serverErrorMessage)
	errMalformedBody = errors.New("Malformed JSON body")
)

// respondServiceError maps service errors onto HTTP responses.
func respondServiceError(c *gin.Context, err error) {
	var verr *services.ValidationError
	switch {
	case errors.As(err, &verr):
		utils.RespondValidation(c, http.StatusUnprocessableEntity, verr.Error(), verr.Fields)
	case errors.Is(err, services.ErrSlotConflict):
		metrics.SlotConflictsTotal.Inc()
		utils.RespondValidation(c, http.StatusUnprocessableEntity, SlotConflictMessage, map[string][]string{
			"booking_time": {SlotConflictMessage},
		})
	case errors.Is(err, services.ErrBookingNotFound):
		utils.RespondError(c, http.StatusNotFound, errNotFound)
	default:
		utils.ErrorLogger.WithField("path", c.Request.URL.Path).Errorf("Request failed: %v", err)
		utils.RespondError(c, http.StatusInternalServerError, errServerFailure)
	}
}

// bindJSON decodes the request body into dst. An empty body decodes as {}.
// Syntax errors answer 400; values of the wrong JSON type answer 422.
func bindJSON(c *gin.Context, dst interface{}) bool {
	err := c.ShouldBindJSON(dst)
	if err == nil || errors.Is(err, io.EOF) {
		return true
	}

	var typeErr *json.UnmarshalTypeError
	if errors.As(err, &typeErr) && typeErr.Field != "" {
		verr := services.NewValidationError()
		verr.Add(typeErr.Field, services.TypeMismatchMessage(typeErr.Field, typeErr.Type.String()))
		respondServiceError(c, verr)
		return false
	}

	utils.RespondError(c, http.StatusBadRequest, errMalformedBody)
	return false
}
