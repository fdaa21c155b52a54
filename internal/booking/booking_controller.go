package booking

import (
	"net/http"
	"strconv"
	"time"

	"github.com/crickonnect/crickonnect-api/internal/ground"
	"github.com/crickonnect/crickonnect-api/internal/middleware"
	"github.com/crickonnect/crickonnect-api/pkg/responses"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const dateLayout = "2006-01-02"

// BookingController handles booking-related HTTP requests.
type BookingController struct {
	repo    BookingRepository
	grounds ground.GroundRepository
}

// NewBookingController creates a new booking controller.
func NewBookingController(repo BookingRepository, grounds ground.GroundRepository) *BookingController {
	return &BookingController{repo: repo, grounds: grounds}
}

type CreateBookingRequest struct {
	GroundID      uint     `json:"ground_id" binding:"required"`
	CustomerName  string   `json:"customer_name" binding:"required"`
	Mobile        string   `json:"mobile"`
	ContactNumber string   `json:"contact_number"`
	Date          string   `json:"date" binding:"required"`
	Slot          TimeSlot `json:"slot" binding:"required"`
	PaymentAmount float64  `json:"payment_amount" binding:"gte=0"`
	Notes         string   `json:"notes"`
}

type UpdateBookingRequest struct {
	CustomerName  *string   `json:"customer_name"`
	Mobile        *string   `json:"mobile"`
	Date          *string   `json:"date"`
	Slot          *TimeSlot `json:"slot"`
	PaymentAmount *float64  `json:"payment_amount" binding:"omitempty,gte=0"`
	Status        *string   `json:"status" binding:"omitempty,oneof=pending confirmed cancelled completed"`
	Notes         *string   `json:"notes"`
}

type PayBookingRequest struct {
	PaymentAmount float64 `json:"payment_amount" binding:"required,gt=0"`
}

type SetStatusRequest struct {
	Status string `json:"status" binding:"required,oneof=pending confirmed cancelled completed"`
}

// contactNumber picks the first non-empty of the two alternate input fields.
func (req *CreateBookingRequest) contactNumber() string {
	if req.Mobile != "" {
		return req.Mobile
	}
	return req.ContactNumber
}

// CreateBooking godoc
// @Summary Create a booking
// @Description Books a slot on a ground. The requester is classified as owner
// @Description or player against the ground's owner; a positive payment amount
// @Description confirms the booking immediately.
// @Tags Bookings
// @Accept json
// @Produce json
// @Param booking body CreateBookingRequest true "Booking details"
// @Success 201 {object} responses.SuccessResponse{data=Booking}
// @Failure 400 {object} responses.ErrorResponse
// @Failure 404 {object} responses.ErrorResponse "Ground not found"
// @Security ApiKeyAuth
// @Router /bookings [post]
func (bc *BookingController) CreateBooking(c *gin.Context) {
	userID, err := middleware.GetUserIDFromContext(c)
	if err != nil {
		responses.Unauthorized(c, "")
		return
	}

	var req CreateBookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		responses.BadRequest(c, "Invalid request payload: "+err.Error())
		return
	}

	contact := req.contactNumber()
	if contact == "" {
		responses.BadRequest(c, "A contact number is required (mobile or contact_number)")
		return
	}
	if err := req.Slot.Validate(); err != nil {
		responses.BadRequest(c, "Invalid time slot: "+err.Error())
		return
	}
	if _, err := time.Parse(dateLayout, req.Date); err != nil {
		responses.BadRequest(c, "Invalid date, expected YYYY-MM-DD")
		return
	}

	g, err := bc.grounds.GetByID(req.GroundID)
	if err != nil {
		responses.InternalServerError(c, "Failed to retrieve ground: "+err.Error())
		return
	}
	if g == nil {
		responses.NotFound(c, "Ground")
		return
	}

	b := Booking{
		Reference:      uuid.NewString(),
		GroundID:       g.ID,
		OwnerID:        g.OwnerID,
		CustomerName:   req.CustomerName,
		CustomerMobile: contact,
		Date:           req.Date,
		Slot:           req.Slot,
		PaymentAmount:  req.PaymentAmount,
		Notes:          req.Notes,
		Status:         DeriveStatus(req.PaymentAmount, ""),
	}
	if userID == g.OwnerID {
		b.BookedBy = BookedByOwner
	} else {
		b.BookedBy = BookedByPlayer
		playerID := userID
		b.PlayerID = &playerID
	}

	if err := bc.repo.Create(&b); err != nil {
		responses.InternalServerError(c, "Failed to create booking: "+err.Error())
		return
	}
	responses.SendSuccess(c, http.StatusCreated, "Booking created successfully", b)
}

// fetchOwned loads a booking and verifies the requester owns its ground.
func (bc *BookingController) fetchOwned(c *gin.Context, userID uint) *Booking {
	bookingID, err := strconv.ParseUint(c.Param("booking_id"), 10, 32)
	if err != nil {
		responses.BadRequest(c, "Invalid booking ID")
		return nil
	}
	b, err := bc.repo.GetByID(uint(bookingID))
	if err != nil {
		responses.InternalServerError(c, "Failed to retrieve booking: "+err.Error())
		return nil
	}
	if b == nil {
		responses.NotFound(c, "Booking")
		return nil
	}
	if b.OwnerID != userID {
		responses.Forbidden(c, "Only the ground owner can manage this booking")
		return nil
	}
	return b
}

// fetchPlayers loads a booking and verifies the requester is its player.
func (bc *BookingController) fetchPlayers(c *gin.Context, userID uint) *Booking {
	bookingID, err := strconv.ParseUint(c.Param("booking_id"), 10, 32)
	if err != nil {
		responses.BadRequest(c, "Invalid booking ID")
		return nil
	}
	b, err := bc.repo.GetByID(uint(bookingID))
	if err != nil {
		responses.InternalServerError(c, "Failed to retrieve booking: "+err.Error())
		return nil
	}
	if b == nil {
		responses.NotFound(c, "Booking")
		return nil
	}
	if b.PlayerID == nil || *b.PlayerID != userID {
		responses.Forbidden(c, "Only the booking's player can perform this action")
		return nil
	}
	return b
}

// UpdateBooking godoc
// @Summary Edit a booking
// @Description Ground owner edits booking fields. Without an explicit status,
// @Description the payment-driven status rule is re-applied; a cancelled
// @Description booking is never auto-reverted.
// @Tags Bookings
// @Accept json
// @Produce json
// @Param booking_id path uint true "Booking ID"
// @Param booking body UpdateBookingRequest true "Fields to update"
// @Success 200 {object} responses.SuccessResponse{data=Booking}
// @Failure 403 {object} responses.ErrorResponse
// @Failure 404 {object} responses.ErrorResponse
// @Security ApiKeyAuth
// @Router /bookings/{booking_id} [put]
func (bc *BookingController) UpdateBooking(c *gin.Context) {
	userID, err := middleware.GetUserIDFromContext(c)
	if err != nil {
		responses.Unauthorized(c, "")
		return
	}
	b := bc.fetchOwned(c, userID)
	if b == nil {
		return
	}

	var req UpdateBookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		responses.BadRequest(c, "Invalid request payload: "+err.Error())
		return
	}

	if req.CustomerName != nil {
		b.CustomerName = *req.CustomerName
	}
	if req.Mobile != nil {
		b.CustomerMobile = *req.Mobile
	}
	if req.Date != nil {
		if _, err := time.Parse(dateLayout, *req.Date); err != nil {
			responses.BadRequest(c, "Invalid date, expected YYYY-MM-DD")
			return
		}
		b.Date = *req.Date
	}
	if req.Slot != nil {
		if err := req.Slot.Validate(); err != nil {
			responses.BadRequest(c, "Invalid time slot: "+err.Error())
			return
		}
		b.Slot = *req.Slot
	}
	if req.PaymentAmount != nil {
		b.PaymentAmount = *req.PaymentAmount
	}
	if req.Notes != nil {
		b.Notes = *req.Notes
	}

	if req.Status != nil {
		b.Status = *req.Status
	} else {
		b.Status = DeriveStatus(b.PaymentAmount, b.Status)
	}

	if err := bc.repo.Update(b); err != nil {
		responses.InternalServerError(c, "Failed to update booking: "+err.Error())
		return
	}
	responses.SendSuccess(c, http.StatusOK, "Booking updated successfully", b)
}

// ConfirmBooking godoc
// @Summary Confirm a booking (owner)
// @Tags Bookings
// @Produce json
// @Param booking_id path uint true "Booking ID"
// @Success 200 {object} responses.SuccessResponse{data=Booking}
// @Failure 403 {object} responses.ErrorResponse
// @Security ApiKeyAuth
// @Router /bookings/{booking_id}/confirm [put]
func (bc *BookingController) ConfirmBooking(c *gin.Context) {
	userID, err := middleware.GetUserIDFromContext(c)
	if err != nil {
		responses.Unauthorized(c, "")
		return
	}
	b := bc.fetchOwned(c, userID)
	if b == nil {
		return
	}

	b.Status = StatusConfirmed
	if err := bc.repo.Update(b); err != nil {
		responses.InternalServerError(c, "Failed to confirm booking: "+err.Error())
		return
	}
	responses.SendSuccess(c, http.StatusOK, "Booking confirmed", b)
}

// PayAndConfirmBooking godoc
// @Summary Record payment and confirm (player)
// @Description The booking's player records a payment amount; the booking
// @Description becomes confirmed. Amounts are recorded, not processed.
// @Tags Bookings
// @Accept json
// @Produce json
// @Param booking_id path uint true "Booking ID"
// @Param payment body PayBookingRequest true "Payment amount"
// @Success 200 {object} responses.SuccessResponse{data=Booking}
// @Failure 403 {object} responses.ErrorResponse
// @Security ApiKeyAuth
// @Router /bookings/{booking_id}/pay [put]
func (bc *BookingController) PayAndConfirmBooking(c *gin.Context) {
	userID, err := middleware.GetUserIDFromContext(c)
	if err != nil {
		responses.Unauthorized(c, "")
		return
	}
	b := bc.fetchPlayers(c, userID)
	if b == nil {
		return
	}

	var req PayBookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		responses.BadRequest(c, "Invalid request payload: "+err.Error())
		return
	}
	if b.Status == StatusCancelled {
		responses.BadRequest(c, "A cancelled booking cannot be paid for")
		return
	}

	b.PaymentAmount = req.PaymentAmount
	b.Status = StatusConfirmed
	if err := bc.repo.Update(b); err != nil {
		responses.InternalServerError(c, "Failed to record payment: "+err.Error())
		return
	}
	responses.SendSuccess(c, http.StatusOK, "Payment recorded, booking confirmed", b)
}

// CancelBooking godoc
// @Summary Cancel a booking (player)
// @Tags Bookings
// @Produce json
// @Param booking_id path uint true "Booking ID"
// @Success 200 {object} responses.SuccessResponse{data=Booking}
// @Failure 403 {object} responses.ErrorResponse
// @Security ApiKeyAuth
// @Router /bookings/{booking_id}/cancel [put]
func (bc *BookingController) CancelBooking(c *gin.Context) {
	userID, err := middleware.GetUserIDFromContext(c)
	if err != nil {
		responses.Unauthorized(c, "")
		return
	}
	b := bc.fetchPlayers(c, userID)
	if b == nil {
		return
	}

	b.Status = StatusCancelled
	if err := bc.repo.Update(b); err != nil {
		responses.InternalServerError(c, "Failed to cancel booking: "+err.Error())
		return
	}
	responses.SendSuccess(c, http.StatusOK, "Booking cancelled", b)
}

// SetBookingStatus godoc
// @Summary Set booking status (owner)
// @Tags Bookings
// @Accept json
// @Produce json
// @Param booking_id path uint true "Booking ID"
// @Param status body SetStatusRequest true "New status"
// @Success 200 {object} responses.SuccessResponse{data=Booking}
// @Failure 403 {object} responses.ErrorResponse
// @Security ApiKeyAuth
// @Router /bookings/{booking_id}/status [put]
func (bc *BookingController) SetBookingStatus(c *gin.Context) {
	userID, err := middleware.GetUserIDFromContext(c)
	if err != nil {
		responses.Unauthorized(c, "")
		return
	}
	b := bc.fetchOwned(c, userID)
	if b == nil {
		return
	}

	var req SetStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		responses.BadRequest(c, "Invalid request payload: "+err.Error())
		return
	}

	b.Status = req.Status
	if err := bc.repo.Update(b); err != nil {
		responses.InternalServerError(c, "Failed to set booking status: "+err.Error())
		return
	}
	responses.SendSuccess(c, http.StatusOK, "Booking status updated", b)
}

// DeleteBooking godoc
// @Summary Delete a booking (owner)
// @Tags Bookings
// @Produce json
// @Param booking_id path uint true "Booking ID"
// @Success 200 {object} responses.SuccessResponse
// @Failure 403 {object} responses.ErrorResponse
// @Security ApiKeyAuth
// @Router /bookings/{booking_id} [delete]
func (bc *BookingController) DeleteBooking(c *gin.Context) {
	userID, err := middleware.GetUserIDFromContext(c)
	if err != nil {
		responses.Unauthorized(c, "")
		return
	}
	b := bc.fetchOwned(c, userID)
	if b == nil {
		return
	}

	if err := bc.repo.Delete(b.ID); err != nil {
		responses.InternalServerError(c, "Failed to delete booking: "+err.Error())
		return
	}
	responses.SendSuccess(c, http.StatusOK, "Booking deleted", nil)
}

// ListBookingsByGround godoc
// @Summary List a ground's bookings (owner)
// @Tags Bookings
// @Produce json
// @Param ground_id path uint true "Ground ID"
// @Param page query int false "Page number" default(1)
// @Param limit query int false "Items per page" default(10)
// @Success 200 {object} responses.PaginatedResponse{data=[]Booking}
// @Failure 403 {object} responses.ErrorResponse
// @Security ApiKeyAuth
// @Router /bookings/ground/{ground_id} [get]
func (bc *BookingController) ListBookingsByGround(c *gin.Context) {
	userID, err := middleware.GetUserIDFromContext(c)
	if err != nil {
		responses.Unauthorized(c, "")
		return
	}

	groundID, err := strconv.ParseUint(c.Param("ground_id"), 10, 32)
	if err != nil {
		responses.BadRequest(c, "Invalid ground ID")
		return
	}

	g, err := bc.grounds.GetByID(uint(groundID))
	if err != nil {
		responses.InternalServerError(c, "Failed to retrieve ground: "+err.Error())
		return
	}
	if g == nil {
		responses.NotFound(c, "Ground")
		return
	}
	if g.OwnerID != userID {
		responses.Forbidden(c, "Only the ground owner can list its bookings")
		return
	}

	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "10"))
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = 10
	}
	if limit > 100 {
		limit = 100
	}

	bookings, total, err := bc.repo.ListByGround(uint(groundID), page, limit)
	if err != nil {
		responses.InternalServerError(c, "Failed to list bookings: "+err.Error())
		return
	}
	responses.SendPaginated(c, http.StatusOK, "Bookings retrieved successfully", bookings, total, page, limit)
}

// GetAvailability godoc
// @Summary Bookings for a ground on a date (public)
// @Description Public availability read used before booking a slot.
// @Tags Bookings
// @Produce json
// @Param ground_id query uint true "Ground ID"
// @Param date query string true "Date (YYYY-MM-DD)"
// @Success 200 {object} responses.SuccessResponse{data=[]Booking}
// @Router /bookings/availability [get]
func (bc *BookingController) GetAvailability(c *gin.Context) {
	groundID, err := strconv.ParseUint(c.Query("ground_id"), 10, 32)
	if err != nil {
		responses.BadRequest(c, "Invalid or missing ground_id")
		return
	}
	date := c.Query("date")
	if _, err := time.Parse(dateLayout, date); err != nil {
		responses.BadRequest(c, "Invalid date, expected YYYY-MM-DD")
		return
	}

	bookings, err := bc.repo.ListByGroundAndDate(uint(groundID), date)
	if err != nil {
		responses.InternalServerError(c, "Failed to list bookings: "+err.Error())
		return
	}
	responses.SendSuccess(c, http.StatusOK, "Bookings retrieved successfully", bookings)
}

// GetBookedDates godoc
// @Summary Dates with bookings for a ground (public calendar)
// @Tags Bookings
// @Produce json
// @Param ground_id path uint true "Ground ID"
// @Success 200 {object} responses.SuccessResponse{data=[]string}
// @Router /bookings/calendar/{ground_id} [get]
func (bc *BookingController) GetBookedDates(c *gin.Context) {
	groundID, err := strconv.ParseUint(c.Param("ground_id"), 10, 32)
	if err != nil {
		responses.BadRequest(c, "Invalid ground ID")
		return
	}

	dates, err := bc.repo.ListBookedDates(uint(groundID))
	if err != nil {
		responses.InternalServerError(c, "Failed to list booked dates: "+err.Error())
		return
	}
	responses.SendSuccess(c, http.StatusOK, "Booked dates retrieved successfully", dates)
}

// GetMyBookings godoc
// @Summary List the authenticated player's bookings
// @Tags Bookings
// @Produce json
// @Param page query int false "Page number" default(1)
// @Param limit query int false "Items per page" default(10)
// @Success 200 {object} responses.PaginatedResponse{data=[]Booking}
// @Security ApiKeyAuth
// @Router /bookings/mine [get]
func (bc *BookingController) GetMyBookings(c *gin.Context) {
	userID, err := middleware.GetUserIDFromContext(c)
	if err != nil {
		responses.Unauthorized(c, "")
		return
	}

	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "10"))
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = 10
	}
	if limit > 100 {
		limit = 100
	}

	bookings, total, err := bc.repo.ListByPlayer(userID, page, limit)
	if err != nil {
		responses.InternalServerError(c, "Failed to list bookings: "+err.Error())
		return
	}
	responses.SendPaginated(c, http.StatusOK, "Your bookings retrieved successfully", bookings, total, page, limit)
}
