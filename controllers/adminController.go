package controllers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/PrayerBridge/initializers"
	"github.com/PrayerBridge/models"
	"github.com/doug-martin/goqu/v9"
	"github.com/doug-martin/goqu/v9/exp"
)

// GetUsers lists manageable profiles for the admin console. Admin and
// superadmin accounts are excluded unconditionally, regardless of any
// role filter the client sends.
func GetUsers(c *gin.Context) {
	search := c.Query("search")
	roleFilter := c.Query("role")

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
		goqu.C("role").NotIn(string(models.RoleAdmin), string(models.RoleSuperadmin)),
	}

	if search != "" {
		pattern := "%" + search + "%"
		conditions = append(conditions, goqu.Or(
			goqu.C("name").ILike(pattern),
			goqu.C("email").ILike(pattern),
		))
	}

	if roleFilter != "" && roleFilter != "all" {
		conditions = append(conditions, goqu.C("role").Eq(roleFilter))
	}

	base := initializers.DB.From("user_profile").Where(conditions...)

	totalCount, err := base.Count()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to count users", "details": err.Error()})
		return
	}

	var users []models.AdminUserItem
	err = base.
		Select("user_profile_id", "name", "email", "role").
		Order(goqu.C("name").Asc()).
		Offset(uint((page - 1) * limit)).
		Limit(uint(limit)).
		ScanStructs(&users)

	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch users", "details": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"users":      users,
		"totalCount": totalCount,
	})
}

// UpdateUserRole changes another user's role. The acting user must
// outrank the target and must not grant a role above their own. The
// acting role always comes from the session, never from the request.
func UpdateUserRole(c *gin.Context) {
	actingRole := c.MustGet("role").(models.Role)

	targetId, err := strconv.Atoi(c.Param("user_profile_id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid user ID", "details": err.Error()})
		return
	}

	var body models.RoleUpdate
	if err := c.BindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	newRole, ok := models.ParseRole(body.New_Role)
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid role"})
		return
	}

	var target models.Profile
	targetFound, err := initializers.DB.From("user_profile").
		Where(goqu.C("user_profile_id").Eq(targetId)).
		ScanStruct(&target)

	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch user record", "details": err.Error()})
		return
	}

	if !targetFound {
		c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
		return
	}

	if actingRole.Level() < newRole.Level() || actingRole.Level() <= target.Role.Level() {
		c.JSON(http.StatusForbidden, gin.H{"error": "Insufficient privileges to change this user's role"})
		return
	}

	update := initializers.DB.Update("user_profile").
		Set(goqu.Record{
			"role":            string(newRole),
			"datetime_update": goqu.L("NOW()"),
		}).
		Where(goqu.C("user_profile_id").Eq(targetId))

	if _, err := update.Executor().Exec(); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update user role", "details": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message":       "User role updated successfully.",
		"userProfileId": targetId,
		"role":          newRole,
	})
}

// DeleteUser removes a profile and everything it owns: saved-prayer
// entries, responses, and its prayers with their dependents. The acting
// user must strictly outrank the target.
func DeleteUser(c *gin.Context) {
	actingRole := c.MustGet("role").(models.Role)

	targetId, err := strconv.Atoi(c.Param("user_profile_id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid user ID", "details": err.Error()})
		return
	}

	var target models.Profile
	targetFound, err := initializers.DB.From("user_profile").
		Where(goqu.C("user_profile_id").Eq(targetId)).
		ScanStruct(&target)

	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch user record", "details": err.Error()})
		return
	}

	if !targetFound {
		c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
		return
	}

	if actingRole.Level() <= target.Role.Level() {
		c.JSON(http.StatusForbidden, gin.H{"error": "Insufficient privileges to delete this user"})
		return
	}

	ownPrayers := initializers.DB.From("prayer").
		Select("prayer_id").
		Where(goqu.C("requested_by").Eq(targetId))

	// Dependents of the target's prayers go first, then the target's own
	// activity on other prayers, then the prayers and the profile itself.
	if _, err := initializers.DB.Delete("intercession").
		Where(goqu.Or(
			goqu.C("user_profile_id").Eq(targetId),
			goqu.C("prayer_id").In(ownPrayers),
		)).
		Executor().Exec(); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete intercession records", "details": err.Error()})
		return
	}

	if _, err := initializers.DB.Delete("response").
		Where(goqu.Or(
			goqu.C("responder_id").Eq(targetId),
			goqu.C("prayer_id").In(ownPrayers),
		)).
		Executor().Exec(); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete response records", "details": err.Error()})
		return
	}

	if _, err := initializers.DB.Delete("prayer").
		Where(goqu.C("requested_by").Eq(targetId)).
		Executor().Exec(); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete prayer records", "details": err.Error()})
		return
	}

	result, err := initializers.DB.Delete("user_profile").
		Where(goqu.C("user_profile_id").Eq(targetId)).
		Executor().Exec()

	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete user record", "details": err.Error()})
		return
	}

	rowsAffected, _ := result.RowsAffected()
	if rowsAffected == 0 {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "No rows were deleted"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "User deleted successfully."})
}
