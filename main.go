package main

import (
	"log"

	"github.com/gin-gonic/gin"

	"github.com/PrayerBridge/controllers"
	"github.com/PrayerBridge/initializers"
	"github.com/PrayerBridge/middlewares"
	"github.com/PrayerBridge/models"
	"github.com/PrayerBridge/services"
)

func init() {
	initializers.LoadEnv()
	initializers.ConnectDB()
	services.InitIdentityService()
	services.InitEmailService()
	services.InitDraftService()
}

func main() {
	router := gin.Default()

	getKey := func(c *gin.Context) string {
		if gin.Mode() == gin.DebugMode {
			return c.FullPath()
		}
		return c.ClientIP()
	}

	// public routes
	router.POST("/auth/signin", middlewares.RateLimitMiddleware(2, 2, getKey), controllers.SignIn)
	router.GET("/categories", middlewares.RateLimitMiddleware(5, 5, getKey), controllers.GetCategories)
	router.GET("/responses", middlewares.RateLimitMiddleware(5, 5, getKey), controllers.GetSharedResponses)
	router.GET("/ping", middlewares.RateLimitMiddleware(2, 2, getKey), controllers.Ping)

	auth := router.Group("/")
	auth.Use(middlewares.CheckAuth)
	auth.Use(middlewares.RateLimitMiddleware(10, 10, getKey))
	{
		// profile routes
		auth.GET("/users/me", controllers.GetMyProfile)
		auth.PATCH("/users/me", controllers.UpdateMyProfile)
		auth.POST("/users/me/pledge", controllers.AgreeToPledge)

		// prayer routes
		auth.GET("/users/me/prayers", controllers.GetMyPrayers)
		auth.POST("/prayers", controllers.CreatePrayer)
		auth.DELETE("/prayers/:prayer_id", controllers.DeletePrayer)
		auth.POST("/prayers/:prayer_id/responses", controllers.CreateResponse)

		// AI draft extraction
		auth.POST("/ai/draft", controllers.ExtractPrayerDraft)

		// intercessor only routes
		intercessor := auth.Group("/")
		intercessor.Use(middlewares.RequireRole(models.RoleIntercessor))
		{
			intercessor.GET("/intercessions", controllers.GetIntercessionFeed)
			intercessor.POST("/intercessions", controllers.SavePrayer)
			intercessor.DELETE("/intercessions/:prayer_id", controllers.UnsavePrayer)
			intercessor.GET("/intercessions/list", controllers.GetSavedPrayers)
			intercessor.GET("/intercessions/pray", controllers.GetPrayList)
			intercessor.PATCH("/intercessions/pray", controllers.UpdatePrayerStatus)
		}

		// admin only routes
		admin := auth.Group("/")
		admin.Use(middlewares.RequireRole(models.RoleAdmin))
		admin.Use(middlewares.RateLimitMiddleware(5, 5, getKey))
		{
			admin.GET("/admin/users", controllers.GetUsers)
			admin.PATCH("/admin/users/:user_profile_id/role", controllers.UpdateUserRole)
			admin.DELETE("/admin/users/:user_profile_id", controllers.DeleteUser)
		}
	}

	if err := router.Run(); err != nil {
		log.Fatal(err)
	}
}
