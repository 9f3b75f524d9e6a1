package controllers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/PrayerBridge/models"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func prayerColumns() []string {
	return []string{
		"prayer_id", "title", "prayer_description", "deadline", "is_anonymous",
		"status", "requested_by", "prayer_category_id", "datetime_create", "datetime_update",
	}
}

// Test SavePrayer - Add a prayer to the intercession list
func TestSavePrayer(t *testing.T) {
	tests := []struct {
		name           string
		body           map[string]interface{}
		prayerExists   bool
		alreadySaved   bool
		expectedStatus int
	}{
		{
			name:           "successful save",
			body:           map[string]interface{}{"prayerId": 1},
			prayerExists:   true,
			alreadySaved:   false,
			expectedStatus: http.StatusOK,
		},
		{
			name:           "already saved",
			body:           map[string]interface{}{"prayerId": 1},
			prayerExists:   true,
			alreadySaved:   true,
			expectedStatus: http.StatusConflict,
		},
		{
			name:           "prayer not found",
			body:           map[string]interface{}{"prayerId": 999},
			prayerExists:   false,
			expectedStatus: http.StatusNotFound,
		},
		{
			name:           "missing prayerId",
			body:           map[string]interface{}{},
			expectedStatus: http.StatusBadRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, mock, cleanup := SetupTestDB(t)
			defer cleanup()

			if len(tt.body) > 0 {
				rows := sqlmock.NewRows(prayerColumns())
				if tt.prayerExists {
					rows.AddRow(1, "Family health", "Please pray for my family's health.", nil, false,
						models.StatusPending, 1, 1, time.Now(), time.Now())
				}
				mock.ExpectQuery("SELECT").WillReturnRows(rows)
			}

			if tt.prayerExists {
				savedCount := 0
				if tt.alreadySaved {
					savedCount = 1
				}
				mock.ExpectQuery("SELECT").WillReturnRows(
					sqlmock.NewRows([]string{"count"}).AddRow(savedCount))

				if !tt.alreadySaved {
					mock.ExpectExec("INSERT").WillReturnResult(sqlmock.NewResult(1, 1))
				}
			}

			c, w := SetupTestContext()
			SetAuthenticatedUser(c, MockIntercessorProfile())

			jsonBody, _ := json.Marshal(tt.body)
			c.Request = httptest.NewRequest("POST", "/intercessions", bytes.NewBuffer(jsonBody))
			c.Request.Header.Set("Content-Type", "application/json")

			SavePrayer(c)

			assert.Equal(t, tt.expectedStatus, w.Code)

			var response map[string]interface{}
			_ = json.Unmarshal(w.Body.Bytes(), &response)

			if tt.expectedStatus == http.StatusOK {
				assert.Equal(t, true, response["success"])
			}
			if tt.expectedStatus == http.StatusConflict {
				assert.Equal(t, false, response["success"])
			}
		})
	}
}

// Test UnsavePrayer - Remove a prayer from the intercession list
func TestUnsavePrayer(t *testing.T) {
	tests := []struct {
		name           string
		prayerID       string
		rowsDeleted    int64
		expectedStatus int
	}{
		{
			name:           "successful removal",
			prayerID:       "1",
			rowsDeleted:    1,
			expectedStatus: http.StatusOK,
		},
		{
			name:           "prayer not in list",
			prayerID:       "2",
			rowsDeleted:    0,
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:           "invalid prayer ID",
			prayerID:       "invalid",
			expectedStatus: http.StatusBadRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, mock, cleanup := SetupTestDB(t)
			defer cleanup()

			if tt.prayerID != "invalid" {
				mock.ExpectExec("DELETE").WillReturnResult(sqlmock.NewResult(0, tt.rowsDeleted))
			}

			c, w := SetupTestContext()
			SetAuthenticatedUser(c, MockIntercessorProfile())
			c.Params = []gin.Param{{Key: "prayer_id", Value: tt.prayerID}}
			c.Request = httptest.NewRequest("DELETE", "/intercessions/"+tt.prayerID, nil)

			UnsavePrayer(c)

			assert.Equal(t, tt.expectedStatus, w.Code)
		})
	}
}

func savedPrayerTestRows(hasRows bool) *sqlmock.Rows {
	rows := sqlmock.NewRows([]string{
		"prayer_id", "title", "prayer_description", "deadline", "is_anonymous",
		"status", "category_key", "name_ko", "requester_name",
	})
	if hasRows {
		deadline := time.Date(2025, 12, 31, 0, 0, 0, 0, time.UTC)
		rows.AddRow(1, "Family health", "Please pray for my family's health.", deadline, false,
			models.StatusPending, "health", "건강", "Test User")
		rows.AddRow(2, "Hidden request", "Please pray anonymously.", nil, true,
			models.StatusPending, "other", "", "Someone Else")
	}
	return rows
}

// Test GetSavedPrayers - The saved-prayer list view
func TestGetSavedPrayers(t *testing.T) {
	_, mock, cleanup := SetupTestDB(t)
	defer cleanup()

	mock.ExpectQuery("SELECT").WillReturnRows(savedPrayerTestRows(true))

	c, w := SetupTestContext()
	SetAuthenticatedUser(c, MockIntercessorProfile())
	c.Request = httptest.NewRequest("GET", "/intercessions/list", nil)

	GetSavedPrayers(c)

	assert.Equal(t, http.StatusOK, w.Code)

	var items []map[string]interface{}
	_ = json.Unmarshal(w.Body.Bytes(), &items)
	assert.Len(t, items, 2)

	assert.Equal(t, "건강", items[0]["category"])
	assert.Equal(t, "2025-12-31", items[0]["dueDate"])
	assert.Equal(t, "Test User", items[0]["requesterName"])

	// No translated name falls back to the category key; anonymous
	// requesters are masked and open deadlines marked.
	assert.Equal(t, "other", items[1]["category"])
	assert.Equal(t, "N/A", items[1]["dueDate"])
	assert.Equal(t, "***", items[1]["requesterName"])
}

// Test GetPrayList - The pray-through view
func TestGetPrayList(t *testing.T) {
	_, mock, cleanup := SetupTestDB(t)
	defer cleanup()

	mock.ExpectQuery("SELECT").WillReturnRows(savedPrayerTestRows(true))

	c, w := SetupTestContext()
	SetAuthenticatedUser(c, MockIntercessorProfile())
	c.Request = httptest.NewRequest("GET", "/intercessions/pray", nil)

	GetPrayList(c)

	assert.Equal(t, http.StatusOK, w.Code)

	var items []map[string]interface{}
	_ = json.Unmarshal(w.Body.Bytes(), &items)
	assert.Len(t, items, 2)
}

// Test UpdatePrayerStatus - Forward-only lifecycle updates
func TestUpdatePrayerStatus(t *testing.T) {
	tests := []struct {
		name           string
		body           map[string]interface{}
		currentStatus  string
		prayerExists   bool
		expectUpdate   bool
		expectedStatus int
		finalStatus    string
	}{
		{
			name:           "pending advances to in progress",
			body:           map[string]interface{}{"prayerId": 1, "status": models.StatusInProgress},
			currentStatus:  models.StatusPending,
			prayerExists:   true,
			expectUpdate:   true,
			expectedStatus: http.StatusOK,
			finalStatus:    models.StatusInProgress,
		},
		{
			name:           "in progress advances to completed",
			body:           map[string]interface{}{"prayerId": 1, "status": models.StatusCompleted},
			currentStatus:  models.StatusInProgress,
			prayerExists:   true,
			expectUpdate:   true,
			expectedStatus: http.StatusOK,
			finalStatus:    models.StatusCompleted,
		},
		{
			name:           "regression is a no-op",
			body:           map[string]interface{}{"prayerId": 1, "status": models.StatusInProgress},
			currentStatus:  models.StatusCompleted,
			prayerExists:   true,
			expectUpdate:   false,
			expectedStatus: http.StatusOK,
			finalStatus:    models.StatusCompleted,
		},
		{
			name:           "repeated update is idempotent",
			body:           map[string]interface{}{"prayerId": 1, "status": models.StatusInProgress},
			currentStatus:  models.StatusInProgress,
			prayerExists:   true,
			expectUpdate:   true,
			expectedStatus: http.StatusOK,
			finalStatus:    models.StatusInProgress,
		},
		{
			name:           "invalid status",
			body:           map[string]interface{}{"prayerId": 1, "status": "DONE"},
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:           "prayer not found",
			body:           map[string]interface{}{"prayerId": 999, "status": models.StatusInProgress},
			prayerExists:   false,
			expectedStatus: http.StatusNotFound,
		},
		{
			name:           "missing prayerId",
			body:           map[string]interface{}{"status": models.StatusInProgress},
			expectedStatus: http.StatusBadRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, mock, cleanup := SetupTestDB(t)
			defer cleanup()

			if tt.expectedStatus != http.StatusBadRequest {
				rows := sqlmock.NewRows(prayerColumns())
				if tt.prayerExists {
					rows.AddRow(1, "Family health", "Please pray for my family's health.", nil, false,
						tt.currentStatus, 1, 1, time.Now(), time.Now())
				}
				mock.ExpectQuery("SELECT").WillReturnRows(rows)
			}

			if tt.expectUpdate {
				mock.ExpectExec("UPDATE").WillReturnResult(sqlmock.NewResult(0, 1))
			}

			c, w := SetupTestContext()
			SetAuthenticatedUser(c, MockIntercessorProfile())

			jsonBody, _ := json.Marshal(tt.body)
			c.Request = httptest.NewRequest("PATCH", "/intercessions/pray", bytes.NewBuffer(jsonBody))
			c.Request.Header.Set("Content-Type", "application/json")

			UpdatePrayerStatus(c)

			assert.Equal(t, tt.expectedStatus, w.Code)

			if tt.finalStatus != "" {
				var response map[string]interface{}
				_ = json.Unmarshal(w.Body.Bytes(), &response)
				assert.Equal(t, true, response["success"])
				assert.Equal(t, tt.finalStatus, response["status"])
			}
		})
	}
}
