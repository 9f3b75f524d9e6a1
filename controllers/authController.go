package controllers

import (
	"log"
	"net/http"
	"os"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v4"

	"github.com/PrayerBridge/initializers"
	"github.com/PrayerBridge/models"
	"github.com/PrayerBridge/services"
	"github.com/doug-martin/goqu/v9"
)

// SignIn exchanges a provider ID token for a session token. The identity
// provider owns credential verification; this endpoint only upserts the
// profile and signs the session. First sign-in for a (provider, provider
// user id) pair creates the profile with role user; every later sign-in
// is a pure lookup.
func SignIn(c *gin.Context) {
	var body models.SignInRequest
	if err := c.ShouldBindJSON(&body); err != nil || body.ID_Token == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "idToken is required"})
		return
	}

	identity, err := services.GetIdentityService().ResolveIdentity(c, body.ID_Token)
	if err != nil {
		log.Println("Sign-in token rejected:", err)
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Could not verify sign-in token"})
		return
	}

	var profile models.Profile
	found, err := initializers.DB.From("user_profile").
		Where(
			goqu.C("provider").Eq(identity.Provider),
			goqu.C("provider_user_id").Eq(identity.ProviderUserID),
		).
		ScanStruct(&profile)

	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to look up profile", "details": err.Error()})
		return
	}

	if !found {
		newProfile := models.Profile{
			Name:             identity.Name,
			Email:            identity.Email,
			Role:             models.RoleUser,
			Provider:         identity.Provider,
			Provider_User_ID: identity.ProviderUserID,
			Agreed_To_Pledge: false,
		}

		insert := initializers.DB.Insert("user_profile").Rows(newProfile).Returning("user_profile_id")

		var insertedID int
		if _, err := insert.Executor().ScanVal(&insertedID); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create profile", "details": err.Error()})
			return
		}

		profile = newProfile
		profile.User_Profile_ID = insertedID
	}

	generateToken := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"id":   profile.User_Profile_ID,
		"role": string(profile.Role),
		"exp":  time.Now().Add(time.Hour * 24 * 7).Unix(),
	})

	token, err := generateToken.SignedString([]byte(os.Getenv("SECRET")))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to generate token"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "User signed in successfully.",
		"token":   token,
		"profile": profile,
	})
}

func GetMyProfile(c *gin.Context) {
	profile := c.MustGet("currentUser").(models.Profile)

	c.JSON(http.StatusOK, gin.H{
		"profile": profile,
		"role":    c.MustGet("role"),
	})
}

// UpdateMyProfile lets a user change their own display name and email.
// Role changes go through the admin endpoints only.
func UpdateMyProfile(c *gin.Context) {
	profile := c.MustGet("currentUser").(models.Profile)

	var body models.ProfileUpdate
	if err := c.BindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	if body.Name == "" || body.Email == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "name and email are required"})
		return
	}

	update := initializers.DB.Update("user_profile").
		Set(goqu.Record{
			"name":            body.Name,
			"email":           body.Email,
			"datetime_update": goqu.L("NOW()"),
		}).
		Where(goqu.C("user_profile_id").Eq(profile.User_Profile_ID))

	result, err := update.Executor().Exec()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update profile", "details": err.Error()})
		return
	}

	rowsAffected, _ := result.RowsAffected()
	if rowsAffected == 0 {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "No rows were updated"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Profile updated successfully."})
}

// AgreeToPledge flips the intercessor pledge flag. Repeated calls are
// harmless.
func AgreeToPledge(c *gin.Context) {
	profile := c.MustGet("currentUser").(models.Profile)

	update := initializers.DB.Update("user_profile").
		Set(goqu.Record{
			"agreed_to_pledge": true,
			"datetime_update":  goqu.L("NOW()"),
		}).
		Where(goqu.C("user_profile_id").Eq(profile.User_Profile_ID))

	if _, err := update.Executor().Exec(); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to record pledge", "details": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Pledge recorded."})
}
