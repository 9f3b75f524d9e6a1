package services

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"os"
	"regexp"
	"strings"
	"time"

	"github.com/PrayerBridge/models"
)

const defaultGeminiEndpoint = "https://generativelanguage.googleapis.com/v1beta/models/gemini-1.5-flash:generateContent"

// DraftService turns free-form transcribed text into a prayer draft via
// the Gemini API. Its output is an untrusted suggestion: it pre-fills the
// request form and nothing else.
type DraftService struct {
	apiKey     string
	endpoint   string
	httpClient *http.Client
}

var draftService *DraftService

func InitDraftService() {
	apiKey := os.Getenv("GEMINI_API_KEY")

	if apiKey == "" {
		log.Println("WARNING: GEMINI_API_KEY not set. Draft extraction will not be available.")
		return
	}

	draftService = &DraftService{
		apiKey:     apiKey,
		endpoint:   defaultGeminiEndpoint,
		httpClient: &http.Client{Timeout: 20 * time.Second},
	}

	log.Println("Draft service initialized successfully with Gemini")
}

func GetDraftService() *DraftService {
	return draftService
}

// SetDraftEndpoint points the service at a different endpoint. Test hook.
func SetDraftEndpoint(endpoint string, apiKey string) {
	draftService = &DraftService{
		apiKey:     apiKey,
		endpoint:   endpoint,
		httpClient: &http.Client{Timeout: 5 * time.Second},
	}
}

type geminiRequest struct {
	Contents []geminiContent `json:"contents"`
}

type geminiContent struct {
	Parts []geminiPart `json:"parts"`
}

type geminiPart struct {
	Text string `json:"text"`
}

type geminiResponse struct {
	Candidates []struct {
		Content struct {
			Parts []geminiPart `json:"parts"`
		} `json:"content"`
	} `json:"candidates"`
}

var jsonFence = regexp.MustCompile("```(?:json)?\\n([\\s\\S]*?)\\n```")

// ExtractPrayerDraft asks the model to pull title, content, deadline and
// anonymity out of the transcript. Any failure is a collaborator failure;
// the caller degrades to an empty draft.
func (s *DraftService) ExtractPrayerDraft(ctx context.Context, text string) (*models.PrayerDraft, error) {
	if s == nil || s.apiKey == "" {
		return nil, fmt.Errorf("draft service not initialized")
	}

	prompt := fmt.Sprintf(`Extract the prayer request fields from the text below and answer with a single JSON object.

- "title": a short title for the request.
- "content": the full request in the speaker's words.
- "deadline": a YYYY-MM-DD date if one is mentioned, otherwise an empty string.
- "isAnonymous": true if the speaker asks to stay anonymous, otherwise false.

Use an empty string or false for anything that is missing.
Example: {"title": "Family health", "content": "Please pray for my family's health.", "deadline": "2024-12-31", "isAnonymous": true}

Text: %q`, text)

	body, err := json.Marshal(geminiRequest{
		Contents: []geminiContent{{Parts: []geminiPart{{Text: prompt}}}},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to encode draft request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.endpoint+"?key="+s.apiKey, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("failed to build draft request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("draft request failed: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read draft response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("draft request returned status %d", resp.StatusCode)
	}

	var parsed geminiResponse
	if err := json.Unmarshal(respBody, &parsed); err != nil {
		return nil, fmt.Errorf("failed to decode draft response: %w", err)
	}

	if len(parsed.Candidates) == 0 || len(parsed.Candidates[0].Content.Parts) == 0 {
		return nil, fmt.Errorf("draft response contained no candidates")
	}

	return parseDraftText(parsed.Candidates[0].Content.Parts[0].Text)
}

// parseDraftText tolerates the model wrapping its JSON in a code fence.
func parseDraftText(text string) (*models.PrayerDraft, error) {
	raw := strings.TrimSpace(text)
	if match := jsonFence.FindStringSubmatch(raw); match != nil {
		raw = match[1]
	}

	var draft models.PrayerDraft
	if err := json.Unmarshal([]byte(raw), &draft); err != nil {
		return nil, fmt.Errorf("failed to parse draft fields: %w", err)
	}

	return &draft, nil
}
