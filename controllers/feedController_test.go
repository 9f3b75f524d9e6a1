package controllers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
)

// Test GetIntercessionFeed - The browse/filter/sort feed for intercessors
func TestGetIntercessionFeed(t *testing.T) {
	tests := []struct {
		name           string
		query          string
		hasPrayers     bool
		expectedStatus int
		expectError    bool
	}{
		{
			name:           "default feed",
			query:          "",
			hasPrayers:     true,
			expectedStatus: http.StatusOK,
			expectError:    false,
		},
		{
			name:           "filtered by search and category",
			query:          "?search=health&category=health&sort=dueDateAsc",
			hasPrayers:     true,
			expectedStatus: http.StatusOK,
			expectError:    false,
		},
		{
			name:           "category all is no filter",
			query:          "?category=all",
			hasPrayers:     false,
			expectedStatus: http.StatusOK,
			expectError:    false,
		},
		{
			name:           "invalid page number",
			query:          "?page=zero",
			expectedStatus: http.StatusBadRequest,
			expectError:    true,
		},
		{
			name:           "page below one",
			query:          "?page=0",
			expectedStatus: http.StatusBadRequest,
			expectError:    true,
		},
		{
			name:           "invalid page size",
			query:          "?limit=-5",
			expectedStatus: http.StatusBadRequest,
			expectError:    true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, mock, cleanup := SetupTestDB(t)
			defer cleanup()

			if !tt.expectError {
				total := 0
				if tt.hasPrayers {
					total = 2
				}
				mock.ExpectQuery("SELECT").WillReturnRows(
					sqlmock.NewRows([]string{"count"}).AddRow(total))

				feedRows := sqlmock.NewRows([]string{
					"prayer_id", "title", "prayer_description", "category_key",
					"deadline", "is_anonymous", "requester_name",
				})
				if tt.hasPrayers {
					deadline := time.Date(2025, 12, 31, 0, 0, 0, 0, time.UTC)
					feedRows.AddRow(1, "Family health", "Please pray for my family's health.",
						"health", deadline, false, "Another Member")
					feedRows.AddRow(2, "Hidden request", "Please pray anonymously.",
						"other", nil, true, "Shy Member")
				}
				mock.ExpectQuery("SELECT").WillReturnRows(feedRows)

				savedRows := sqlmock.NewRows([]string{"prayer_id"})
				if tt.hasPrayers {
					savedRows.AddRow(2)
				}
				mock.ExpectQuery("SELECT").WillReturnRows(savedRows)
			}

			c, w := SetupTestContext()
			SetAuthenticatedUser(c, MockIntercessorProfile())
			c.Request = httptest.NewRequest("GET", "/intercessions"+tt.query, nil)

			GetIntercessionFeed(c)

			assert.Equal(t, tt.expectedStatus, w.Code)

			var response map[string]interface{}
			_ = json.Unmarshal(w.Body.Bytes(), &response)

			if tt.expectError {
				assert.NotNil(t, response["error"])
				return
			}

			prayers := response["prayers"].([]interface{})
			if !tt.hasPrayers {
				assert.Empty(t, prayers)
				assert.Equal(t, float64(0), response["totalCount"])
				return
			}

			assert.Len(t, prayers, 2)
			assert.Equal(t, float64(2), response["totalCount"])

			first := prayers[0].(map[string]interface{})
			assert.Equal(t, "Another Member", first["requesterName"])
			assert.Equal(t, "2025-12-31", first["dueDate"])

			second := prayers[1].(map[string]interface{})
			assert.Equal(t, "***", second["requesterName"])
			assert.Equal(t, "N/A", second["dueDate"])

			savedIds := response["savedPrayerIds"].([]interface{})
			assert.Equal(t, []interface{}{float64(2)}, savedIds)
		})
	}
}
