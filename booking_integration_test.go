package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yeremiapane/restaurant-booking/config"
	"github.com/yeremiapane/restaurant-booking/controllers"
	"github.com/yeremiapane/restaurant-booking/database"
	"github.com/yeremiapane/restaurant-booking/documents"
	"github.com/yeremiapane/restaurant-booking/metrics"
	"github.com/yeremiapane/restaurant-booking/middlewares"
	"github.com/yeremiapane/restaurant-booking/router"
	"github.com/yeremiapane/restaurant-booking/services"
	"github.com/yeremiapane/restaurant-booking/utils"
)

func TestMain(m *testing.M) {
	utils.InitLogger()
	gin.SetMode(gin.TestMode)
	os.Exit(m.Run())
}

// TestEndToEndIntegration menguji flow utama:
// 0. Seed booking contoh
// 1. Create booking (pending) dan tolak slot yang sama
// 2. Confirm, cancel, lalu slot bisa dipakai lagi
// 3. Update sebagian field dan unduh PDF
// 4. Delete
func TestEndToEndIntegration(t *testing.T) {
	r, now := setupApp(t)

	// 0. Seed booking muncul di listing
	page := getJSON(t, r, "/api/bookings")
	require.Equal(t, float64(1), page["total"])
	seeded := page["data"].([]interface{})[0].(map[string]interface{})
	assert.Equal(t, "Ivan Petrov", seeded["full_name"])
	assert.Equal(t, now.AddDate(0, 0, 2).Format("2006-01-02"), seeded["booking_date"])

	// 1. Create dan conflict
	date := now.AddDate(0, 0, 9).Format("2006-01-02")
	payload := map[string]interface{}{
		"full_name":    "Anna Smirnova",
		"email":        "anna@example.com",
		"phone":        "+77015550000",
		"booking_date": date,
		"booking_time": "19:00",
		"guests":       2,
	}
	w := send(r, http.MethodPost, "/api/bookings", payload)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	id := int(decodeBody(t, w)["data"].(map[string]interface{})["id"].(float64))

	w = send(r, http.MethodPost, "/api/bookings", payload)
	require.Equal(t, http.StatusUnprocessableEntity, w.Code)

	// 2. Confirm -> cancel -> slot bebas lagi
	w = send(r, http.MethodPatch, fmt.Sprintf("/api/bookings/%d/status", id), map[string]string{"status": "confirmed"})
	require.Equal(t, http.StatusOK, w.Code)
	w = send(r, http.MethodPatch, fmt.Sprintf("/api/bookings/%d/status", id), map[string]string{"status": "cancelled"})
	require.Equal(t, http.StatusOK, w.Code)

	payload["full_name"] = "Boris Ivanov"
	payload["email"] = "boris@example.com"
	w = send(r, http.MethodPost, "/api/bookings", payload)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	secondID := int(decodeBody(t, w)["data"].(map[string]interface{})["id"].(float64))

	// 3. Update sebagian + PDF
	w = send(r, http.MethodPut, fmt.Sprintf("/api/bookings/%d", secondID), map[string]interface{}{"guests": 5, "notes": "Birthday"})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	updated := decodeBody(t, w)["data"].(map[string]interface{})
	assert.Equal(t, float64(5), updated["guests"])
	assert.Equal(t, "Birthday", updated["notes"])

	w = send(r, http.MethodGet, fmt.Sprintf("/api/bookings/%d/pdf", secondID), nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, fmt.Sprintf(`attachment; filename="booking-%d.pdf"`, secondID), w.Header().Get("Content-Disposition"))

	// newest first
	page = getJSON(t, r, "/api/bookings?per_page=2")
	assert.Equal(t, float64(3), page["total"])
	assert.Equal(t, float64(2), page["last_page"])
	newest := page["data"].([]interface{})[0].(map[string]interface{})
	assert.Equal(t, float64(secondID), newest["id"])

	// 4. Delete
	w = send(r, http.MethodDelete, fmt.Sprintf("/api/bookings/%d", secondID), nil)
	require.Equal(t, http.StatusOK, w.Code)
	page = getJSON(t, r, "/api/bookings")
	assert.Equal(t, float64(2), page["total"])
}

// setupApp -> DB in-memory, migrasi, seed, dan router lengkap
func setupApp(t *testing.T) (*gin.Engine, time.Time) {
	t.Helper()
	db, err := config.InitDB(config.DatabaseConfig{Driver: "sqlite", DSN: ":memory:"})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	t.Cleanup(func() { sqlDB.Close() })

	require.NoError(t, database.Migrate(db))
	now := time.Now()
	require.NoError(t, database.SeedBookings(db, now))

	svc := services.NewBookingService(db, services.Notifiers{metrics.EventCounter{}})
	r := router.SetupRouter(router.Options{
		Bookings:       controllers.NewBookingController(svc, documents.NewRenderer("")),
		AllowedOrigins: []string{"http://localhost:5173"},
		RateLimiter:    middlewares.NewRateLimiter(1000, 1000),
		RequestTimeout: 5 * time.Second,
	})
	return r, now
}

func send(r http.Handler, method, path string, body interface{}) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	if body != nil {
		_ = json.NewEncoder(&buf).Encode(body)
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func getJSON(t *testing.T, r http.Handler, path string) map[string]interface{} {
	t.Helper()
	w := send(r, http.MethodGet, path, nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	return decodeBody(t, w)
}

func decodeBody(t *testing.T, w *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var out map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out), w.Body.String())
	return out
}
