package controllers

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/PrayerBridge/initializers"
	"github.com/PrayerBridge/models"
	"github.com/doug-martin/goqu/v9"
	"github.com/doug-martin/goqu/v9/exp"
)

// FeedItem is one entry of the intercession feed, shaped for display.
type FeedItem struct {
	Prayer_ID      int    `json:"prayerId"`
	Title          string `json:"title"`
	Description    string `json:"description"`
	Category       string `json:"category"`
	Due_Date       string `json:"dueDate"`
	Requester_Name string `json:"requesterName"`
	Is_Anonymous   bool   `json:"isAnonymous"`
}

type feedRow struct {
	Prayer_ID          int        `db:"prayer_id"`
	Title              string     `db:"title"`
	Prayer_Description string     `db:"prayer_description"`
	Category_Key       string     `db:"category_key"`
	Deadline           *time.Time `db:"deadline"`
	Is_Anonymous       bool       `db:"is_anonymous"`
	Requester_Name     string     `db:"requester_name"`
}

const anonymousMask = "***"
const noDeadlineMarker = "N/A"

// GetIntercessionFeed lists prayers eligible for intercession: PENDING
// requests from other members, filtered, sorted and paginated. The
// viewer's full saved-id set rides along so the client can mark toggles
// on any page.
func GetIntercessionFeed(c *gin.Context) {
	viewer := c.MustGet("currentUser").(models.Profile)

	search := c.Query("search")
	category := c.Query("category")
	sort := c.DefaultQuery("sort", "latest")

	page, err := strconv.Atoi(c.DefaultQuery("page", "1"))
	if err != nil || page < 1 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid page number"})
		return
	}

	limit, err := strconv.Atoi(c.DefaultQuery("limit", "10"))
	if err != nil || limit < 1 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid page size"})
		return
	}

	conditions := []exp.Expression{
		goqu.I("prayer.status").Eq(models.StatusPending),
		goqu.I("prayer.requested_by").Neq(viewer.User_Profile_ID),
	}

	if search != "" {
		pattern := "%" + search + "%"
		conditions = append(conditions, goqu.Or(
			goqu.I("prayer.title").ILike(pattern),
			goqu.I("prayer.prayer_description").ILike(pattern),
		))
	}

	if category != "" && category != "all" {
		conditions = append(conditions, goqu.I("prayer_category.category_key").Eq(category))
	}

	base := initializers.DB.From("prayer").
		InnerJoin(
			goqu.T("prayer_category"),
			goqu.On(goqu.Ex{"prayer.prayer_category_id": goqu.I("prayer_category.prayer_category_id")}),
		).
		InnerJoin(
			goqu.T("user_profile"),
			goqu.On(goqu.Ex{"prayer.requested_by": goqu.I("user_profile.user_profile_id")}),
		).
		Where(conditions...)

	totalCount, err := base.Count()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to count prayers", "details": err.Error()})
		return
	}

	var order []exp.OrderedExpression
	switch sort {
	case "dueDateAsc":
		// Prayers without a deadline sort as infinitely far out.
		order = []exp.OrderedExpression{
			goqu.I("prayer.deadline").Asc().NullsLast(),
			goqu.I("prayer.prayer_id").Asc(),
		}
	default: // latest
		order = []exp.OrderedExpression{
			goqu.I("prayer.datetime_create").Desc(),
			goqu.I("prayer.prayer_id").Desc(),
		}
	}

	var rows []feedRow
	err = base.
		Select(
			goqu.I("prayer.prayer_id"),
			goqu.I("prayer.title"),
			goqu.I("prayer.prayer_description"),
			goqu.I("prayer_category.category_key"),
			goqu.I("prayer.deadline"),
			goqu.I("prayer.is_anonymous"),
			goqu.I("user_profile.name").As("requester_name"),
		).
		Order(order...).
		Offset(uint((page - 1) * limit)).
		Limit(uint(limit)).
		ScanStructs(&rows)

	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch prayers", "details": err.Error()})
		return
	}

	prayers := make([]FeedItem, 0, len(rows))
	for _, row := range rows {
		prayers = append(prayers, FeedItem{
			Prayer_ID:      row.Prayer_ID,
			Title:          row.Title,
			Description:    row.Prayer_Description,
			Category:       row.Category_Key,
			Due_Date:       formatDueDate(row.Deadline),
			Requester_Name: maskRequester(row.Requester_Name, row.Is_Anonymous),
			Is_Anonymous:   row.Is_Anonymous,
		})
	}

	// Full saved set, not page-limited: the toggle state has to survive
	// pagination.
	savedPrayerIds := []int{}
	err = initializers.DB.From("intercession").
		Select("prayer_id").
		Where(goqu.C("user_profile_id").Eq(viewer.User_Profile_ID)).
		Order(goqu.C("datetime_create").Desc()).
		ScanVals(&savedPrayerIds)

	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch saved prayers", "details": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"prayers":        prayers,
		"savedPrayerIds": savedPrayerIds,
		"totalCount":     totalCount,
	})
}

func formatDueDate(deadline *time.Time) string {
	if deadline == nil {
		return noDeadlineMarker
	}
	return deadline.Format("2006-01-02")
}

func maskRequester(name string, anonymous bool) string {
	if anonymous {
		return anonymousMask
	}
	return name
}
