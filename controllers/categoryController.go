package controllers

import (
	"log"
	"net/http"

	"github.com/PrayerBridge/initializers"
	"github.com/PrayerBridge/models"
	"github.com/doug-martin/goqu/v9"
	"github.com/gin-gonic/gin"
)

// GetCategories returns the full prayer topic taxonomy. Categories are
// seed data, so this is a plain read with no auth requirement.
func GetCategories(c *gin.Context) {
	var categories []models.Category
	err := initializers.DB.From("prayer_category").
		Order(goqu.C("name_en").Asc()).
		ScanStructs(&categories)

	if err != nil {
		log.Println("Error fetching categories:", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch categories", "details": err.Error()})
		return
	}

	c.JSON(http.StatusOK, categories)
}
