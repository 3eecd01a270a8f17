package booking_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"studiobook/internal/api"
	"studiobook/internal/clock"
	"studiobook/internal/config"
	"studiobook/internal/server"
)

func testConfig() *config.Config {
	return &config.Config{
		Port:           "8080",
		StoreTimeout:   5 * time.Second,
		RateLimitRPS:   1000,
		RateLimitBurst: 1000,
	}
}

func doJSON(t *testing.T, router *gin.Engine, method, path string, body any) (*httptest.ResponseRecorder, api.Response) {
	t.Helper()

	var reader *bytes.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(payload)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")

	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	var resp api.Response
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp), "body: %s", w.Body.String())
	return w, resp
}

func TestBookingFlow_Integration(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping integration test")
	}

	database := setupTestDB(t)
	defer database.Close()
	cleanDatabase(t, database)

	gin.SetMode(gin.TestMode)
	srv := server.New(database, testConfig(), nil, clock.System())
	router := srv.Router()

	// Create an instructor
	w, resp := doJSON(t, router, http.MethodPost, "/instructors", map[string]any{
		"instructor_name": "Alice",
	})
	require.Equal(t, http.StatusCreated, w.Code)
	require.True(t, resp.Status)

	instructorData, err := json.Marshal(resp.Data)
	require.NoError(t, err)
	var ins struct {
		ID int `json:"id"`
	}
	require.NoError(t, json.Unmarshal(instructorData, &ins))

	// Create a class
	scheduledAt := time.Now().Add(48 * time.Hour).UTC().Format(time.RFC3339)
	w, resp = doJSON(t, router, http.MethodPost, "/classes", map[string]any{
		"class_name":      "ZUMBA",
		"instructor_id":   ins.ID,
		"available_slots": 2,
		"scheduled_at":    scheduledAt,
	})
	require.Equal(t, http.StatusCreated, w.Code, "message: %s", resp.Message)

	classData, err := json.Marshal(resp.Data)
	require.NoError(t, err)
	var fc struct {
		ID int `json:"id"`
	}
	require.NoError(t, json.Unmarshal(classData, &fc))

	// List classes
	w, resp = doJSON(t, router, http.MethodGet, "/classes", nil)
	require.Equal(t, http.StatusOK, w.Code)

	// Book the class
	bookingReq := map[string]any{
		"class_id":      fc.ID,
		"first_name":    "John",
		"last_name":     "Doe",
		"email_address": "john@test.com",
	}
	w, resp = doJSON(t, router, http.MethodPost, "/bookings", bookingReq)
	require.Equal(t, http.StatusCreated, w.Code, "message: %s", resp.Message)

	// Booking the same class twice is rejected
	w, resp = doJSON(t, router, http.MethodPost, "/bookings", bookingReq)
	assert.Equal(t, http.StatusConflict, w.Code)
	assert.False(t, resp.Status)

	// A second client takes the last slot
	w, _ = doJSON(t, router, http.MethodPost, "/bookings", map[string]any{
		"class_id":      fc.ID,
		"first_name":    "Jane",
		"last_name":     "Doe",
		"email_address": "jane@test.com",
	})
	require.Equal(t, http.StatusCreated, w.Code)

	// The class is now full
	w, resp = doJSON(t, router, http.MethodPost, "/bookings", map[string]any{
		"class_id":      fc.ID,
		"first_name":    "Late",
		"last_name":     "Comer",
		"email_address": "late@test.com",
	})
	assert.Equal(t, http.StatusConflict, w.Code)
	assert.False(t, resp.Status)

	// List bookings by email
	w, resp = doJSON(t, router, http.MethodGet, "/bookings?email_address=john@test.com", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.True(t, resp.Status)

	items, err := json.Marshal(resp.Data)
	require.NoError(t, err)
	var bookings []map[string]any
	require.NoError(t, json.Unmarshal(items, &bookings))
	require.Len(t, bookings, 1)
	assert.Equal(t, "ZUMBA", bookings[0]["fitness_class_name"])
	assert.Equal(t, "Alice", bookings[0]["instructor_name"])
}

func TestClassValidation_Integration(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping integration test")
	}

	database := setupTestDB(t)
	defer database.Close()
	cleanDatabase(t, database)

	gin.SetMode(gin.TestMode)
	srv := server.New(database, testConfig(), nil, clock.System())
	router := srv.Router()

	instructorID := createTestInstructor(t, database, "Alice")
	future := time.Now().Add(48 * time.Hour).UTC().Format(time.RFC3339)

	cases := []struct {
		name       string
		body       map[string]any
		wantStatus int
	}{
		{
			"lowercase class name",
			map[string]any{"class_name": "yoga", "instructor_id": instructorID, "available_slots": 10, "scheduled_at": future},
			http.StatusBadRequest,
		},
		{
			"unknown class name",
			map[string]any{"class_name": "PILATES", "instructor_id": instructorID, "available_slots": 10, "scheduled_at": future},
			http.StatusBadRequest,
		},
		{
			"too many slots",
			map[string]any{"class_name": "YOGA", "instructor_id": instructorID, "available_slots": 101, "scheduled_at": future},
			http.StatusBadRequest,
		},
		{
			"past schedule",
			map[string]any{"class_name": "YOGA", "instructor_id": instructorID, "available_slots": 10, "scheduled_at": time.Now().Add(-time.Hour).UTC().Format(time.RFC3339)},
			http.StatusBadRequest,
		},
		{
			"unknown instructor",
			map[string]any{"class_name": "YOGA", "instructor_id": 99999, "available_slots": 10, "scheduled_at": future},
			http.StatusBadRequest,
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			w, resp := doJSON(t, router, http.MethodPost, "/classes", tc.body)
			assert.Equal(t, tc.wantStatus, w.Code)
			assert.False(t, resp.Status)
		})
	}

	// Duplicate schedule returns conflict
	w, _ := doJSON(t, router, http.MethodPost, "/classes", map[string]any{
		"class_name": "YOGA", "instructor_id": instructorID, "available_slots": 10, "scheduled_at": future,
	})
	require.Equal(t, http.StatusCreated, w.Code)

	w, _ = doJSON(t, router, http.MethodPost, "/classes", map[string]any{
		"class_name": "YOGA", "instructor_id": instructorID, "available_slots": 10, "scheduled_at": future,
	})
	assert.Equal(t, http.StatusConflict, w.Code)
}
