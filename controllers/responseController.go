package controllers

import (
	"log"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/PrayerBridge/initializers"
	"github.com/PrayerBridge/models"
	"github.com/PrayerBridge/services"
	"github.com/doug-martin/goqu/v9"
)

// CreateResponse records an answer against a prayer and completes it.
// The response insert and the status update are one logical unit: the
// status write only happens after a successful insert, and a failed
// status write is reported without rolling the response back.
func CreateResponse(c *gin.Context) {
	responder := c.MustGet("currentUser").(models.Profile)

	prayerId, err := strconv.Atoi(c.Param("prayer_id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid prayer ID", "details": err.Error()})
		return
	}

	var body models.ResponseCreate
	if err := c.BindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	if body.Content == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "content is required"})
		return
	}

	var prayer models.Prayer
	prayerFound, err := initializers.DB.From("prayer").
		Where(goqu.C("prayer_id").Eq(prayerId)).
		ScanStruct(&prayer)

	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch prayer record", "details": err.Error()})
		return
	}

	if !prayerFound {
		c.JSON(http.StatusNotFound, gin.H{"error": "Prayer record not found"})
		return
	}

	existingCount, err := initializers.DB.From("response").
		Where(
			goqu.C("prayer_id").Eq(prayerId),
			goqu.C("responder_id").Eq(responder.User_Profile_ID),
		).
		Count()

	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to check existing responses", "details": err.Error()})
		return
	}

	if existingCount > 0 {
		c.JSON(http.StatusConflict, gin.H{"error": "You have already responded to this prayer"})
		return
	}

	response := models.Response{
		Prayer_ID:        prayerId,
		Response_Content: body.Content,
		Is_Shared:        body.Share_Consent,
		Responder_ID:     responder.User_Profile_ID,
	}

	insert := initializers.DB.Insert("response").Rows(response).Returning("response_id")

	var insertedID int
	if _, err := insert.Executor().ScanVal(&insertedID); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create response record", "details": err.Error()})
		return
	}
	response.Response_ID = insertedID

	// A responded prayer is completed no matter where it was in the
	// lifecycle.
	update := initializers.DB.Update("prayer").
		Set(goqu.Record{
			"status":          models.StatusCompleted,
			"datetime_update": goqu.L("NOW()"),
		}).
		Where(goqu.C("prayer_id").Eq(prayerId))

	if _, err := update.Executor().Exec(); err != nil {
		log.Printf("Response %d recorded but prayer %d status update failed: %v", insertedID, prayerId, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Response recorded but failed to complete prayer", "details": err.Error()})
		return
	}

	// Tell the requester someone prayed for them (async, best-effort).
	go notifyRequesterOfResponse(prayer.Requested_By, prayer.Title)

	c.JSON(http.StatusCreated, gin.H{
		"message":  "Response recorded successfully.",
		"response": response,
	})
}

func notifyRequesterOfResponse(requesterID int, prayerTitle string) {
	email := services.GetEmailService()
	if email == nil {
		return
	}

	var requester models.Profile
	found, err := initializers.DB.From("user_profile").
		Where(goqu.C("user_profile_id").Eq(requesterID)).
		ScanStruct(&requester)
	if err != nil || !found || requester.Email == "" {
		return
	}

	if err := email.SendResponseReceivedEmail(requester.Email, requester.Name, prayerTitle); err != nil {
		log.Printf("Failed to send response email to user %d: %v", requesterID, err)
	}
}

// SharedResponseItem is one publicly shareable testimony.
type SharedResponseItem struct {
	Response_ID     int       `json:"responseId"`
	Content         string    `json:"content"`
	Prayer_ID       int       `json:"prayerId"`
	Prayer_Title    string    `json:"prayerTitle"`
	Category        string    `json:"category"`
	Requester_Name  string    `json:"requesterName"`
	Datetime_Create time.Time `json:"datetimeCreate"`
}

type sharedResponseRow struct {
	Response_ID        int       `db:"response_id"`
	Response_Content   string    `db:"response_content"`
	Prayer_ID          int       `db:"prayer_id"`
	Title              string    `db:"title"`
	Is_Anonymous       bool      `db:"is_anonymous"`
	Category_Key       string    `db:"category_key"`
	Requester_Name     string    `db:"requester_name"`
	Datetime_Create    time.Time `db:"datetime_create"`
}

// GetSharedResponses lists responses whose authors consented to sharing,
// newest first. Requester names respect the prayer's anonymity flag.
func GetSharedResponses(c *gin.Context) {
	var rows []sharedResponseRow
	err := initializers.DB.From("response").
		Select(
			goqu.I("response.response_id"),
			goqu.I("response.response_content"),
			goqu.I("prayer.prayer_id"),
			goqu.I("prayer.title"),
			goqu.I("prayer.is_anonymous"),
			goqu.I("prayer_category.category_key"),
			goqu.I("user_profile.name").As("requester_name"),
			goqu.I("response.datetime_create"),
		).
		InnerJoin(
			goqu.T("prayer"),
			goqu.On(goqu.Ex{"response.prayer_id": goqu.I("prayer.prayer_id")}),
		).
		InnerJoin(
			goqu.T("prayer_category"),
			goqu.On(goqu.Ex{"prayer.prayer_category_id": goqu.I("prayer_category.prayer_category_id")}),
		).
		InnerJoin(
			goqu.T("user_profile"),
			goqu.On(goqu.Ex{"prayer.requested_by": goqu.I("user_profile.user_profile_id")}),
		).
		Where(goqu.I("response.is_shared").IsTrue()).
		Order(goqu.I("response.datetime_create").Desc()).
		ScanStructs(&rows)

	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch shared responses", "details": err.Error()})
		return
	}

	responses := make([]SharedResponseItem, 0, len(rows))
	for _, row := range rows {
		responses = append(responses, SharedResponseItem{
			Response_ID:     row.Response_ID,
			Content:         row.Response_Content,
			Prayer_ID:       row.Prayer_ID,
			Prayer_Title:    row.Title,
			Category:        row.Category_Key,
			Requester_Name:  maskRequester(row.Requester_Name, row.Is_Anonymous),
			Datetime_Create: row.Datetime_Create,
		})
	}

	c.JSON(http.StatusOK, responses)
}
