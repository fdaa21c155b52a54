package user

import (
	mw "github.com/crickonnect/crickonnect-api/internal/middleware"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// ProfileRoutes sets up profile routes.
func ProfileRoutes(router *gin.RouterGroup, db *gorm.DB, jwtSecret string) {
	repo := NewUserRepository(db)
	controller := NewProfileController(repo)

	router.GET("/profile/:user_id", controller.GetProfileByUserID)

	authRoutes := router.Group("/")
	authRoutes.Use(mw.AuthMiddleware(jwtSecret, db))
	{
		authRoutes.GET("/profile", controller.GetMyProfile)
		authRoutes.PUT("/profile", controller.UpdateMyProfile)
	}
}
