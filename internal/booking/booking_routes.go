package booking

import (
	"github.com/crickonnect/crickonnect-api/internal/ground"
	mw "github.com/crickonnect/crickonnect-api/internal/middleware"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// BookingRoutes sets up booking routes.
func BookingRoutes(router *gin.RouterGroup, db *gorm.DB, jwtSecret string) {
	repo := NewBookingRepository(db)
	groundRepo := ground.NewGroundRepository(db)
	controller := NewBookingController(repo, groundRepo)

	// Public availability reads
	router.GET("/bookings/availability", controller.GetAvailability)
	router.GET("/bookings/calendar/:ground_id", controller.GetBookedDates)

	authRoutes := router.Group("/")
	authRoutes.Use(mw.AuthMiddleware(jwtSecret, db))
	{
		authRoutes.POST("/bookings", controller.CreateBooking)
		authRoutes.GET("/bookings/mine", mw.PlayerMiddleware(), controller.GetMyBookings)
		authRoutes.GET("/bookings/ground/:ground_id", controller.ListBookingsByGround)

		authRoutes.PUT("/bookings/:booking_id", controller.UpdateBooking)
		authRoutes.PUT("/bookings/:booking_id/confirm", controller.ConfirmBooking)
		authRoutes.PUT("/bookings/:booking_id/pay", controller.PayAndConfirmBooking)
		authRoutes.PUT("/bookings/:booking_id/cancel", controller.CancelBooking)
		authRoutes.PUT("/bookings/:booking_id/status", controller.SetBookingStatus)
		authRoutes.DELETE("/bookings/:booking_id", controller.DeleteBooking)
	}
}
