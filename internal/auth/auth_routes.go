package auth

import (
	"github.com/crickonnect/crickonnect-api/config"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// RegisterAuthRoutes sets up authentication routes.
func RegisterAuthRoutes(router *gin.RouterGroup, db *gorm.DB, cfg *config.Config) {
	repo := NewAuthRepository(db)
	controller := NewAuthController(repo, cfg)

	router.POST("/register", controller.Register)
	router.POST("/login", controller.Login)
	router.POST("/refresh", controller.Refresh)
}
