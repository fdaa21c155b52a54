package ground

import (
	mw "github.com/crickonnect/crickonnect-api/internal/middleware"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// GroundRoutes sets up ground routes.
func GroundRoutes(router *gin.RouterGroup, db *gorm.DB, jwtSecret string) {
	repo := NewGroundRepository(db)
	controller := NewGroundController(repo)

	// Public ground search and detail reads
	router.GET("/grounds", controller.SearchGrounds)
	router.GET("/grounds/:ground_id", controller.GetGroundByID)

	authRoutes := router.Group("/")
	authRoutes.Use(mw.AuthMiddleware(jwtSecret, db))
	{
		authRoutes.GET("/grounds/mine", mw.GroundOwnerMiddleware(), controller.GetMyGround)
		authRoutes.POST("/grounds", mw.GroundOwnerMiddleware(), controller.CreateGround)
		authRoutes.PUT("/grounds/:ground_id", mw.GroundOwnerMiddleware(), controller.UpdateGround)
		authRoutes.POST("/grounds/:ground_id/rate", controller.RateGround)
	}
}
