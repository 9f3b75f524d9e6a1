package controllers

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/PrayerBridge/services"
	"github.com/stretchr/testify/assert"
)

// Test ExtractPrayerDraft - AI form pre-fill with graceful degradation
func TestExtractPrayerDraft(t *testing.T) {
	tests := []struct {
		name           string
		body           map[string]interface{}
		upstreamStatus int
		upstreamTitle  string
		expectedStatus int
		expectedTitle  string
	}{
		{
			name:           "successful extraction",
			body:           map[string]interface{}{"text": "please pray for my family's health"},
			upstreamStatus: http.StatusOK,
			upstreamTitle:  "Family health",
			expectedStatus: http.StatusOK,
			expectedTitle:  "Family health",
		},
		{
			name:           "collaborator failure degrades to an empty draft",
			body:           map[string]interface{}{"text": "please pray for my family's health"},
			upstreamStatus: http.StatusInternalServerError,
			expectedStatus: http.StatusOK,
			expectedTitle:  "",
		},
		{
			name:           "missing text",
			body:           map[string]interface{}{},
			expectedStatus: http.StatusBadRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				if tt.upstreamStatus != http.StatusOK {
					w.WriteHeader(tt.upstreamStatus)
					return
				}
				draftJSON, _ := json.Marshal(map[string]interface{}{
					"title":       tt.upstreamTitle,
					"content":     "Please pray for my family's health.",
					"deadline":    "",
					"isAnonymous": false,
				})
				quoted, _ := json.Marshal(string(draftJSON))
				w.Header().Set("Content-Type", "application/json")
				fmt.Fprintf(w, `{"candidates": [{"content": {"parts": [{"text": %s}]}}]}`, quoted)
			}))
			defer server.Close()

			services.SetDraftEndpoint(server.URL, "test-key")

			c, w := SetupTestContext()
			SetAuthenticatedUser(c, MockProfile())

			jsonBody, _ := json.Marshal(tt.body)
			c.Request = httptest.NewRequest("POST", "/ai/draft", bytes.NewBuffer(jsonBody))
			c.Request.Header.Set("Content-Type", "application/json")

			ExtractPrayerDraft(c)

			assert.Equal(t, tt.expectedStatus, w.Code)

			if tt.expectedStatus != http.StatusOK {
				return
			}

			var response map[string]interface{}
			_ = json.Unmarshal(w.Body.Bytes(), &response)
			draft := response["draft"].(map[string]interface{})
			assert.Equal(t, tt.expectedTitle, draft["title"])
		})
	}
}
