package controllers

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/lib/pq"

	"github.com/PrayerBridge/initializers"
	"github.com/PrayerBridge/models"
	"github.com/doug-martin/goqu/v9"
)

const pqUniqueViolation = "23505"

// SavePrayer adds a prayer to the user's intercession list. Saving twice
// is rejected the same way whether the duplicate is caught by the
// pre-check or by the unique constraint under a concurrent save.
func SavePrayer(c *gin.Context) {
	user := c.MustGet("currentUser").(models.Profile)

	var body models.IntercessionSave
	if err := c.BindJSON(&body); err != nil || body.Prayer_ID == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "prayerId is required"})
		return
	}

	var prayer models.Prayer
	prayerFound, err := initializers.DB.From("prayer").
		Where(goqu.C("prayer_id").Eq(body.Prayer_ID)).
		ScanStruct(&prayer)

	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch prayer record", "details": err.Error()})
		return
	}

	if !prayerFound {
		c.JSON(http.StatusNotFound, gin.H{"error": "Prayer record not found"})
		return
	}

	existingCount, err := initializers.DB.From("intercession").
		Where(
			goqu.C("user_profile_id").Eq(user.User_Profile_ID),
			goqu.C("prayer_id").Eq(body.Prayer_ID),
		).
		Count()

	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to check saved prayers", "details": err.Error()})
		return
	}

	if existingCount > 0 {
		c.JSON(http.StatusConflict, gin.H{"success": false, "message": "Prayer already saved."})
		return
	}

	intercession := models.Intercession{
		User_Profile_ID: user.User_Profile_ID,
		Prayer_ID:       body.Prayer_ID,
	}

	if _, err := initializers.DB.Insert("intercession").Rows(intercession).Executor().Exec(); err != nil {
		if pqErr, ok := err.(*pq.Error); ok && string(pqErr.Code) == pqUniqueViolation {
			// Lost a race with a concurrent save of the same pair.
			c.JSON(http.StatusConflict, gin.H{"success": false, "message": "Prayer already saved."})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to save prayer", "details": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Prayer saved successfully."})
}

// UnsavePrayer removes a prayer from the user's intercession list.
func UnsavePrayer(c *gin.Context) {
	user := c.MustGet("currentUser").(models.Profile)

	prayerId, err := strconv.Atoi(c.Param("prayer_id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid prayer ID", "details": err.Error()})
		return
	}

	result, err := initializers.DB.Delete("intercession").
		Where(
			goqu.C("user_profile_id").Eq(user.User_Profile_ID),
			goqu.C("prayer_id").Eq(prayerId),
		).
		Executor().Exec()

	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to remove prayer", "details": err.Error()})
		return
	}

	rowsAffected, _ := result.RowsAffected()
	if rowsAffected == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Prayer not found in your list."})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Prayer removed successfully."})
}

// SavedPrayerItem is one entry of the user's saved-prayer views.
type SavedPrayerItem struct {
	Prayer_ID      int    `json:"prayerId"`
	Title          string `json:"title"`
	Content        string `json:"content"`
	Due_Date       string `json:"dueDate"`
	Requester_Name string `json:"requesterName"`
	Category       string `json:"category"`
	Status         string `json:"status"`
}

type savedPrayerRow struct {
	Prayer_ID          int        `db:"prayer_id"`
	Title              string     `db:"title"`
	Prayer_Description string     `db:"prayer_description"`
	Deadline           *time.Time `db:"deadline"`
	Is_Anonymous       bool       `db:"is_anonymous"`
	Status             string     `db:"status"`
	Category_Key       string     `db:"category_key"`
	Name_Ko            string     `db:"name_ko"`
	Requester_Name     string     `db:"requester_name"`
}

func savedPrayersQuery(userID int) *goqu.SelectDataset {
	return initializers.DB.From("intercession").
		Select(
			goqu.I("prayer.prayer_id"),
			goqu.I("prayer.title"),
			goqu.I("prayer.prayer_description"),
			goqu.I("prayer.deadline"),
			goqu.I("prayer.is_anonymous"),
			goqu.I("prayer.status"),
			goqu.I("prayer_category.category_key"),
			goqu.I("prayer_category.name_ko"),
			goqu.I("user_profile.name").As("requester_name"),
		).
		InnerJoin(
			goqu.T("prayer"),
			goqu.On(goqu.Ex{"intercession.prayer_id": goqu.I("prayer.prayer_id")}),
		).
		InnerJoin(
			goqu.T("prayer_category"),
			goqu.On(goqu.Ex{"prayer.prayer_category_id": goqu.I("prayer_category.prayer_category_id")}),
		).
		InnerJoin(
			goqu.T("user_profile"),
			goqu.On(goqu.Ex{"prayer.requested_by": goqu.I("user_profile.user_profile_id")}),
		).
		Where(goqu.I("intercession.user_profile_id").Eq(userID))
}

func savedRowsToItems(rows []savedPrayerRow) []SavedPrayerItem {
	items := make([]SavedPrayerItem, 0, len(rows))
	for _, row := range rows {
		category := row.Name_Ko
		if category == "" {
			category = row.Category_Key
		}
		items = append(items, SavedPrayerItem{
			Prayer_ID:      row.Prayer_ID,
			Title:          row.Title,
			Content:        row.Prayer_Description,
			Due_Date:       formatDueDate(row.Deadline),
			Requester_Name: maskRequester(row.Requester_Name, row.Is_Anonymous),
			Category:       category,
			Status:         row.Status,
		})
	}
	return items
}

// GetSavedPrayers lists the user's saved prayers, most recently saved
// first.
func GetSavedPrayers(c *gin.Context) {
	user := c.MustGet("currentUser").(models.Profile)

	var rows []savedPrayerRow
	err := savedPrayersQuery(user.User_Profile_ID).
		Order(goqu.I("intercession.datetime_create").Desc()).
		ScanStructs(&rows)

	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch saved prayers", "details": err.Error()})
		return
	}

	c.JSON(http.StatusOK, savedRowsToItems(rows))
}

// GetPrayList is the pray-through view: the same saved prayers ordered by
// urgency, deadline first, open-ended requests last.
func GetPrayList(c *gin.Context) {
	user := c.MustGet("currentUser").(models.Profile)

	var rows []savedPrayerRow
	err := savedPrayersQuery(user.User_Profile_ID).
		Order(
			goqu.I("prayer.deadline").Asc().NullsLast(),
			goqu.I("prayer.prayer_id").Asc(),
		).
		ScanStructs(&rows)

	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch prayer list", "details": err.Error()})
		return
	}

	c.JSON(http.StatusOK, savedRowsToItems(rows))
}

// UpdatePrayerStatus drives a prayer forward through its lifecycle from
// the pray-through flow. The status only ever advances: a request that
// would move it backwards is answered with the unchanged current status.
func UpdatePrayerStatus(c *gin.Context) {
	var body models.PrayerStatusUpdate
	if err := c.BindJSON(&body); err != nil || body.Prayer_ID == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "prayerId is required"})
		return
	}

	if !models.ValidStatus(body.Status) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid prayer status"})
		return
	}

	var prayer models.Prayer
	prayerFound, err := initializers.DB.From("prayer").
		Where(goqu.C("prayer_id").Eq(body.Prayer_ID)).
		ScanStruct(&prayer)

	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch prayer record", "details": err.Error()})
		return
	}

	if !prayerFound {
		c.JSON(http.StatusNotFound, gin.H{"error": "Prayer record not found"})
		return
	}

	if !models.StatusAdvances(prayer.Status, body.Status) {
		c.JSON(http.StatusOK, gin.H{"success": true, "prayerId": prayer.Prayer_ID, "status": prayer.Status})
		return
	}

	update := initializers.DB.Update("prayer").
		Set(goqu.Record{
			"status":          body.Status,
			"datetime_update": goqu.L("NOW()"),
		}).
		Where(goqu.C("prayer_id").Eq(body.Prayer_ID))

	if _, err := update.Executor().Exec(); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update prayer status", "details": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "prayerId": body.Prayer_ID, "status": body.Status})
}
