package controllers

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/PrayerBridge/initializers"
	"github.com/PrayerBridge/models"
	"github.com/doug-martin/goqu/v9"
)

// CreatePrayer records a new prayer request for the authenticated user.
// This is the single validation gate: drafts coming from the AI extractor
// get no special treatment and fail here like any other bad input.
func CreatePrayer(c *gin.Context) {
	requester := c.MustGet("currentUser").(models.Profile)

	var body models.PrayerCreate
	if err := c.BindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	if body.Title == "" || body.Content == "" || body.Category_ID == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "title, content and categoryId are required"})
		return
	}

	var deadline *time.Time
	if body.Deadline != "" {
		parsed, err := time.Parse("2006-01-02", body.Deadline)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "deadline must be a YYYY-MM-DD date", "details": err.Error()})
			return
		}
		deadline = &parsed
	}

	prayer := models.Prayer{
		Title:              body.Title,
		Prayer_Description: body.Content,
		Deadline:           deadline,
		Is_Anonymous:       body.Is_Anonymous,
		Status:             models.StatusPending,
		Requested_By:       requester.User_Profile_ID,
		Prayer_Category_ID: body.Category_ID,
	}

	insert := initializers.DB.Insert("prayer").Rows(prayer).Returning("prayer_id")

	var insertedID int
	if _, err := insert.Executor().ScanVal(&insertedID); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create prayer record", "details": err.Error()})
		return
	}

	prayer.Prayer_ID = insertedID
	c.JSON(http.StatusCreated, gin.H{
		"message": "Prayer record created successfully.",
		"prayer":  prayer,
	})
}

// MyPrayerItem is one row of the requester's own dashboard.
type MyPrayerItem struct {
	Prayer_ID       int                `json:"prayerId"`
	Title           string             `json:"title"`
	Content         string             `json:"content"`
	Due_Date        string             `json:"dueDate"`
	Is_Anonymous    bool               `json:"isAnonymous"`
	Status          string             `json:"status"`
	Category        string             `json:"category"`
	Category_En     string             `json:"categoryTextEn"`
	Category_Ko     string             `json:"categoryTextKo"`
	Is_In_Progress  bool               `json:"isInProgress"`
	Response        *MyPrayerResponse  `json:"response"`
	Datetime_Create time.Time          `json:"datetimeCreate"`
}

type MyPrayerResponse struct {
	Content   string `json:"content"`
	Is_Shared bool   `json:"isShared"`
}

type myPrayerRow struct {
	Prayer_ID          int        `db:"prayer_id"`
	Title              string     `db:"title"`
	Prayer_Description string     `db:"prayer_description"`
	Deadline           *time.Time `db:"deadline"`
	Is_Anonymous       bool       `db:"is_anonymous"`
	Status             string     `db:"status"`
	Category_Key       string     `db:"category_key"`
	Name_En            string     `db:"name_en"`
	Name_Ko            string     `db:"name_ko"`
	Response_Content   *string    `db:"response_content"`
	Response_Shared    *bool      `db:"response_shared"`
	Datetime_Create    time.Time  `db:"datetime_create"`
}

// GetMyPrayers lists the authenticated user's own requests, newest first,
// with their own response attached when they wrote one. "In progress" is
// derived from the status column alone.
func GetMyPrayers(c *gin.Context) {
	requester := c.MustGet("currentUser").(models.Profile)

	var rows []myPrayerRow
	err := initializers.DB.From("prayer").
		Select(
			goqu.I("prayer.prayer_id"),
			goqu.I("prayer.title"),
			goqu.I("prayer.prayer_description"),
			goqu.I("prayer.deadline"),
			goqu.I("prayer.is_anonymous"),
			goqu.I("prayer.status"),
			goqu.I("prayer_category.category_key"),
			goqu.I("prayer_category.name_en"),
			goqu.I("prayer_category.name_ko"),
			goqu.I("response.response_content").As("response_content"),
			goqu.I("response.is_shared").As("response_shared"),
			goqu.I("prayer.datetime_create"),
		).
		InnerJoin(
			goqu.T("prayer_category"),
			goqu.On(goqu.Ex{"prayer.prayer_category_id": goqu.I("prayer_category.prayer_category_id")}),
		).
		LeftJoin(
			goqu.T("response"),
			goqu.On(
				goqu.Ex{"response.prayer_id": goqu.I("prayer.prayer_id")},
				goqu.Ex{"response.responder_id": requester.User_Profile_ID},
			),
		).
		Where(goqu.I("prayer.requested_by").Eq(requester.User_Profile_ID)).
		Order(goqu.I("prayer.datetime_create").Desc()).
		ScanStructs(&rows)

	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch prayers", "details": err.Error()})
		return
	}

	prayers := make([]MyPrayerItem, 0, len(rows))
	for _, row := range rows {
		item := MyPrayerItem{
			Prayer_ID:       row.Prayer_ID,
			Title:           row.Title,
			Content:         row.Prayer_Description,
			Due_Date:        formatDueDate(row.Deadline),
			Is_Anonymous:    row.Is_Anonymous,
			Status:          row.Status,
			Category:        row.Category_Key,
			Category_En:     row.Name_En,
			Category_Ko:     row.Name_Ko,
			Is_In_Progress:  row.Status == models.StatusInProgress,
			Datetime_Create: row.Datetime_Create,
		}
		if row.Response_Content != nil {
			shared := row.Response_Shared != nil && *row.Response_Shared
			item.Response = &MyPrayerResponse{Content: *row.Response_Content, Is_Shared: shared}
		}
		prayers = append(prayers, item)
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Prayer records retrieved successfully.",
		"prayers": prayers,
	})
}

// DeletePrayer removes a prayer and its dependent intercession and
// response rows. Only the requester (or an admin-level role) may delete.
func DeletePrayer(c *gin.Context) {
	user := c.MustGet("currentUser").(models.Profile)
	role := c.MustGet("role").(models.Role)

	prayerId, err := strconv.Atoi(c.Param("prayer_id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid prayer ID", "details": err.Error()})
		return
	}

	var existingPrayer models.Prayer
	prayerFound, err := initializers.DB.From("prayer").
		Where(goqu.C("prayer_id").Eq(prayerId)).
		ScanStruct(&existingPrayer)

	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch prayer record", "details": err.Error()})
		return
	}

	if !prayerFound {
		c.JSON(http.StatusNotFound, gin.H{"error": "Prayer record not found"})
		return
	}

	if existingPrayer.Requested_By != user.User_Profile_ID && role.Level() < models.RoleAdmin.Level() {
		c.JSON(http.StatusForbidden, gin.H{"error": "Only the requester can delete this prayer"})
		return
	}

	// Dependents first so the prayer row never dangles references.
	if _, err := initializers.DB.Delete("intercession").Where(goqu.C("prayer_id").Eq(prayerId)).Executor().Exec(); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete intercession records", "details": err.Error()})
		return
	}

	if _, err := initializers.DB.Delete("response").Where(goqu.C("prayer_id").Eq(prayerId)).Executor().Exec(); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete response records", "details": err.Error()})
		return
	}

	result, err := initializers.DB.Delete("prayer").Where(goqu.C("prayer_id").Eq(prayerId)).Executor().Exec()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete prayer record", "details": err.Error()})
		return
	}

	rowsAffected, _ := result.RowsAffected()
	if rowsAffected == 0 {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "No rows were deleted"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Prayer record deleted successfully."})
}
