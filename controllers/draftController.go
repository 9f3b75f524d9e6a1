package controllers

import (
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/PrayerBridge/models"
	"github.com/PrayerBridge/services"
)

type draftRequest struct {
	Text string `json:"text"`
}

// ExtractPrayerDraft turns transcribed speech into a prayer form draft.
// The extractor is an optional collaborator: when it is down or returns
// garbage, the client gets an empty draft and fills the form by hand.
func ExtractPrayerDraft(c *gin.Context) {
	var body draftRequest
	if err := c.BindJSON(&body); err != nil || body.Text == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "text is required"})
		return
	}

	draft, err := services.GetDraftService().ExtractPrayerDraft(c.Request.Context(), body.Text)
	if err != nil {
		log.Println("Draft extraction failed:", err)
		c.JSON(http.StatusOK, gin.H{"draft": models.PrayerDraft{}})
		return
	}

	c.JSON(http.StatusOK, gin.H{"draft": draft})
}
