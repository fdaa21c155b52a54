package ground

import (
	"net/http"
	"strconv"

	"github.com/crickonnect/crickonnect-api/internal/middleware"
	"github.com/crickonnect/crickonnect-api/internal/models"
	"github.com/crickonnect/crickonnect-api/pkg/responses"
	"github.com/gin-gonic/gin"
)

// GroundController handles ground-related HTTP requests.
type GroundController struct {
	repo GroundRepository
}

// NewGroundController creates a new ground controller.
func NewGroundController(repo GroundRepository) *GroundController {
	return &GroundController{repo: repo}
}

type CreateGroundRequest struct {
	Name         string             `json:"name" binding:"required,min=2,max=100"`
	Description  string             `json:"description" binding:"max=2000"`
	Address      string             `json:"address"`
	District     string             `json:"district" binding:"required"`
	Village      string             `json:"village"`
	Latitude     *float64           `json:"latitude"`
	Longitude    *float64           `json:"longitude"`
	PricePerSlot float64            `json:"price_per_slot" binding:"gte=0"`
	Availability WeeklyAvailability `json:"availability"`
	Images       []string           `json:"images"`
}

type UpdateGroundRequest struct {
	Name         *string             `json:"name" binding:"omitempty,min=2,max=100"`
	Description  *string             `json:"description" binding:"omitempty,max=2000"`
	Address      *string             `json:"address"`
	District     *string             `json:"district"`
	Village      *string             `json:"village"`
	PricePerSlot *float64            `json:"price_per_slot" binding:"omitempty,gte=0"`
	Availability *WeeklyAvailability `json:"availability"`
	Images       *[]string           `json:"images"`
}

type RateGroundRequest struct {
	Rating float64 `json:"rating" binding:"required,gte=1,lte=5"`
}

// CreateGround godoc
// @Summary Register a ground
// @Description Creates the authenticated owner's ground. Each owner may have exactly one.
// @Tags Grounds
// @Accept json
// @Produce json
// @Param ground body CreateGroundRequest true "Ground details"
// @Success 201 {object} responses.SuccessResponse{data=Ground}
// @Failure 400 {object} responses.ErrorResponse
// @Failure 409 {object} responses.ErrorResponse "Owner already has a ground"
// @Security ApiKeyAuth
// @Router /grounds [post]
func (gc *GroundController) CreateGround(c *gin.Context) {
	userID, err := middleware.GetUserIDFromContext(c)
	if err != nil {
		responses.Unauthorized(c, "")
		return
	}

	var req CreateGroundRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		responses.BadRequest(c, "Invalid request payload: "+err.Error())
		return
	}

	existing, err := gc.repo.GetByOwnerID(userID)
	if err != nil {
		responses.InternalServerError(c, "Failed to check existing ground: "+err.Error())
		return
	}
	if existing != nil {
		responses.Conflict(c, "You already have a registered ground")
		return
	}

	g := Ground{
		OwnerID:      userID,
		Name:         req.Name,
		Description:  req.Description,
		Address:      req.Address,
		District:     req.District,
		Village:      req.Village,
		PricePerSlot: req.PricePerSlot,
		Availability: req.Availability,
		Images:       req.Images,
	}
	if req.Latitude != nil && req.Longitude != nil {
		g.Location = models.Coordinates{Latitude: *req.Latitude, Longitude: *req.Longitude}
	}

	if err := gc.repo.Create(&g); err != nil {
		responses.InternalServerError(c, "Failed to create ground: "+err.Error())
		return
	}
	responses.SendSuccess(c, http.StatusCreated, "Ground registered successfully", g)
}

// GetGroundByID godoc
// @Summary Get a ground
// @Tags Grounds
// @Produce json
// @Param ground_id path uint true "Ground ID"
// @Success 200 {object} responses.SuccessResponse{data=Ground}
// @Failure 404 {object} responses.ErrorResponse
// @Router /grounds/{ground_id} [get]
func (gc *GroundController) GetGroundByID(c *gin.Context) {
	groundID, err := strconv.ParseUint(c.Param("ground_id"), 10, 32)
	if err != nil {
		responses.BadRequest(c, "Invalid ground ID")
		return
	}

	g, err := gc.repo.GetByID(uint(groundID))
	if err != nil {
		responses.InternalServerError(c, "Failed to retrieve ground: "+err.Error())
		return
	}
	if g == nil {
		responses.NotFound(c, "Ground")
		return
	}
	responses.SendSuccess(c, http.StatusOK, "Ground retrieved successfully", g)
}

// GetMyGround godoc
// @Summary Get the authenticated owner's ground
// @Tags Grounds
// @Produce json
// @Success 200 {object} responses.SuccessResponse{data=Ground}
// @Failure 404 {object} responses.ErrorResponse
// @Security ApiKeyAuth
// @Router /grounds/mine [get]
func (gc *GroundController) GetMyGround(c *gin.Context) {
	userID, err := middleware.GetUserIDFromContext(c)
	if err != nil {
		responses.Unauthorized(c, "")
		return
	}

	g, err := gc.repo.GetByOwnerID(userID)
	if err != nil {
		responses.InternalServerError(c, "Failed to retrieve ground: "+err.Error())
		return
	}
	if g == nil {
		responses.NotFound(c, "Ground")
		return
	}
	responses.SendSuccess(c, http.StatusOK, "Ground retrieved successfully", g)
}

// SearchGrounds godoc
// @Summary Search grounds
// @Description Public listing with district/village/name filters.
// @Tags Grounds
// @Produce json
// @Param district query string false "Filter by district"
// @Param village query string false "Filter by village"
// @Param name query string false "Search by name"
// @Param page query int false "Page number" default(1)
// @Param limit query int false "Items per page" default(10)
// @Success 200 {object} responses.PaginatedResponse{data=[]Ground}
// @Router /grounds [get]
func (gc *GroundController) SearchGrounds(c *gin.Context) {
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

	grounds, total, err := gc.repo.Search(c.Query("district"), c.Query("village"), c.Query("name"), page, limit)
	if err != nil {
		responses.InternalServerError(c, "Failed to search grounds: "+err.Error())
		return
	}
	responses.SendPaginated(c, http.StatusOK, "Grounds retrieved successfully", grounds, total, page, limit)
}

// UpdateGround godoc
// @Summary Update a ground
// @Description Only the ground's owner may update it.
// @Tags Grounds
// @Accept json
// @Produce json
// @Param ground_id path uint true "Ground ID"
// @Param ground body UpdateGroundRequest true "Fields to update"
// @Success 200 {object} responses.SuccessResponse{data=Ground}
// @Failure 403 {object} responses.ErrorResponse
// @Failure 404 {object} responses.ErrorResponse
// @Security ApiKeyAuth
// @Router /grounds/{ground_id} [put]
func (gc *GroundController) UpdateGround(c *gin.Context) {
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

	g, err := gc.repo.GetByID(uint(groundID))
	if err != nil {
		responses.InternalServerError(c, "Failed to retrieve ground: "+err.Error())
		return
	}
	if g == nil {
		responses.NotFound(c, "Ground")
		return
	}
	if g.OwnerID != userID {
		responses.Forbidden(c, "Only the ground owner can update this ground")
		return
	}

	var req UpdateGroundRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		responses.BadRequest(c, "Invalid request payload: "+err.Error())
		return
	}

	if req.Name != nil {
		g.Name = *req.Name
	}
	if req.Description != nil {
		g.Description = *req.Description
	}
	if req.Address != nil {
		g.Address = *req.Address
	}
	if req.District != nil {
		g.District = *req.District
	}
	if req.Village != nil {
		g.Village = *req.Village
	}
	if req.PricePerSlot != nil {
		g.PricePerSlot = *req.PricePerSlot
	}
	if req.Availability != nil {
		g.Availability = *req.Availability
	}
	if req.Images != nil {
		g.Images = *req.Images
	}

	if err := gc.repo.Update(g); err != nil {
		responses.InternalServerError(c, "Failed to update ground: "+err.Error())
		return
	}
	responses.SendSuccess(c, http.StatusOK, "Ground updated successfully", g)
}

// RateGround godoc
// @Summary Rate a ground
// @Description Adds a 1-5 rating into the ground's aggregate. Owners cannot rate their own ground.
// @Tags Grounds
// @Accept json
// @Produce json
// @Param ground_id path uint true "Ground ID"
// @Param rating body RateGroundRequest true "Rating"
// @Success 200 {object} responses.SuccessResponse{data=Ground}
// @Failure 403 {object} responses.ErrorResponse
// @Failure 404 {object} responses.ErrorResponse
// @Security ApiKeyAuth
// @Router /grounds/{ground_id}/rate [post]
func (gc *GroundController) RateGround(c *gin.Context) {
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

	var req RateGroundRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		responses.BadRequest(c, "Invalid request payload: "+err.Error())
		return
	}

	g, err := gc.repo.GetByID(uint(groundID))
	if err != nil {
		responses.InternalServerError(c, "Failed to retrieve ground: "+err.Error())
		return
	}
	if g == nil {
		responses.NotFound(c, "Ground")
		return
	}
	if g.OwnerID == userID {
		responses.Forbidden(c, "You cannot rate your own ground")
		return
	}

	g.AddRating(req.Rating)
	if err := gc.repo.Update(g); err != nil {
		responses.InternalServerError(c, "Failed to save rating: "+err.Error())
		return
	}
	responses.SendSuccess(c, http.StatusOK, "Rating recorded", g)
}
