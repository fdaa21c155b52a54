package booking

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/crickonnect/crickonnect-api/internal/ground"
	"github.com/crickonnect/crickonnect-api/internal/middleware"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type fakeGroundRepo struct {
	ground.GroundRepository
	grounds map[uint]*ground.Ground
}

func (f *fakeGroundRepo) GetByID(id uint) (*ground.Ground, error) {
	return f.grounds[id], nil
}

type fakeBookingRepo struct {
	BookingRepository
	bookings map[uint]*Booking
	nextID   uint
}

func newFakeBookingRepo() *fakeBookingRepo {
	return &fakeBookingRepo{bookings: map[uint]*Booking{}, nextID: 1}
}

func (f *fakeBookingRepo) Create(b *Booking) error {
	b.ID = f.nextID
	f.nextID++
	f.bookings[b.ID] = b
	return nil
}

func (f *fakeBookingRepo) GetByID(id uint) (*Booking, error) {
	return f.bookings[id], nil
}

func (f *fakeBookingRepo) Update(b *Booking) error {
	f.bookings[b.ID] = b
	return nil
}

func setupBookingRouter(t *testing.T, userID uint, repo BookingRepository, grounds ground.GroundRepository) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.Use(func(c *gin.Context) {
		c.Set(middleware.AuthUserIDKey, userID)
		c.Next()
	})

	controller := NewBookingController(repo, grounds)
	router.POST("/bookings", controller.CreateBooking)
	router.PUT("/bookings/:booking_id", controller.UpdateBooking)
	router.PUT("/bookings/:booking_id/pay", controller.PayAndConfirmBooking)
	router.PUT("/bookings/:booking_id/cancel", controller.CancelBooking)
	return router
}

func TestCreateBookingAsPlayerStaysPending(t *testing.T) {
	grounds := &fakeGroundRepo{grounds: map[uint]*ground.Ground{
		7: {Model: gorm.Model{ID: 7}, OwnerID: 2, Name: "Green Park"},
	}}
	repo := newFakeBookingRepo()
	router := setupBookingRouter(t, 5, repo, grounds) // user 5 is not the owner

	body := map[string]interface{}{
		"ground_id":     7,
		"customer_name": "Ravi",
		"mobile":        "9876543210",
		"date":          "2026-09-10",
		"slot":          "Morning",
	}
	payload, _ := json.Marshal(body)
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/bookings", bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	created := repo.bookings[1]
	require.NotNil(t, created)
	assert.Equal(t, StatusPending, created.Status)
	assert.Equal(t, BookedByPlayer, created.BookedBy)
	require.NotNil(t, created.PlayerID)
	assert.Equal(t, uint(5), *created.PlayerID)
	assert.Equal(t, uint(2), created.OwnerID)
	assert.NotEmpty(t, created.Reference)
	assert.Equal(t, SlotNamed, created.Slot.Kind)
	assert.Equal(t, "Morning", created.Slot.Name)
}

func TestCreateBookingAsOwnerWithPaymentConfirms(t *testing.T) {
	grounds := &fakeGroundRepo{grounds: map[uint]*ground.Ground{
		7: {Model: gorm.Model{ID: 7}, OwnerID: 2, Name: "Green Park"},
	}}
	repo := newFakeBookingRepo()
	router := setupBookingRouter(t, 2, repo, grounds) // the ground's owner

	body := map[string]interface{}{
		"ground_id":      7,
		"customer_name":  "Walk-in",
		"contact_number": "9000000000",
		"date":           "2026-09-11",
		"slot":           map[string]string{"start": "06:00", "end": "09:00"},
		"payment_amount": 1000,
	}
	payload, _ := json.Marshal(body)
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/bookings", bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	created := repo.bookings[1]
	require.NotNil(t, created)
	assert.Equal(t, StatusConfirmed, created.Status)
	assert.Equal(t, BookedByOwner, created.BookedBy)
	assert.Nil(t, created.PlayerID)
	assert.Equal(t, SlotRange, created.Slot.Kind)
}

func TestCreateBookingRequiresContactNumber(t *testing.T) {
	grounds := &fakeGroundRepo{grounds: map[uint]*ground.Ground{
		7: {Model: gorm.Model{ID: 7}, OwnerID: 2},
	}}
	router := setupBookingRouter(t, 5, newFakeBookingRepo(), grounds)

	body := map[string]interface{}{
		"ground_id":     7,
		"customer_name": "Ravi",
		"date":          "2026-09-10",
		"slot":          "Morning",
	}
	payload, _ := json.Marshal(body)
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/bookings", bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestCreateBookingUnknownGround(t *testing.T) {
	grounds := &fakeGroundRepo{grounds: map[uint]*ground.Ground{}}
	router := setupBookingRouter(t, 5, newFakeBookingRepo(), grounds)

	body := map[string]interface{}{
		"ground_id":     99,
		"customer_name": "Ravi",
		"mobile":        "9876543210",
		"date":          "2026-09-10",
		"slot":          "Morning",
	}
	payload, _ := json.Marshal(body)
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/bookings", bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestUpdateBookingReappliesPaymentRule(t *testing.T) {
	repo := newFakeBookingRepo()
	repo.bookings[1] = &Booking{
		Model:    gorm.Model{ID: 1},
		GroundID: 7, OwnerID: 2,
		BookedBy: BookedByOwner,
		Status:   StatusPending,
		Date:     "2026-09-10",
		Slot:     TimeSlot{Kind: SlotNamed, Name: "Morning"},
	}
	router := setupBookingRouter(t, 2, repo, &fakeGroundRepo{})

	body := map[string]interface{}{"payment_amount": 1000}
	payload, _ := json.Marshal(body)
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPut, "/bookings/1", bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Equal(t, StatusConfirmed, repo.bookings[1].Status)
	assert.Equal(t, float64(1000), repo.bookings[1].PaymentAmount)
}

func TestUpdateBookingForbiddenForNonOwner(t *testing.T) {
	repo := newFakeBookingRepo()
	repo.bookings[1] = &Booking{Model: gorm.Model{ID: 1}, GroundID: 7, OwnerID: 2, Status: StatusPending}
	router := setupBookingRouter(t, 9, repo, &fakeGroundRepo{}) // not the owner

	body := map[string]interface{}{"payment_amount": 1000}
	payload, _ := json.Marshal(body)
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPut, "/bookings/1", bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusForbidden, w.Code)
	assert.Equal(t, StatusPending, repo.bookings[1].Status)
}

func TestUpdateCancelledBookingStaysCancelled(t *testing.T) {
	repo := newFakeBookingRepo()
	repo.bookings[1] = &Booking{
		Model:    gorm.Model{ID: 1},
		GroundID: 7, OwnerID: 2,
		Status: StatusCancelled,
	}
	router := setupBookingRouter(t, 2, repo, &fakeGroundRepo{})

	body := map[string]interface{}{"payment_amount": 1000}
	payload, _ := json.Marshal(body)
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPut, "/bookings/1", bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Equal(t, StatusCancelled, repo.bookings[1].Status)
}

func TestPayAndConfirmByPlayer(t *testing.T) {
	playerID := uint(5)
	repo := newFakeBookingRepo()
	repo.bookings[1] = &Booking{
		Model:    gorm.Model{ID: 1},
		GroundID: 7, OwnerID: 2, PlayerID: &playerID,
		BookedBy: BookedByPlayer,
		Status:   StatusPending,
	}
	router := setupBookingRouter(t, playerID, repo, &fakeGroundRepo{})

	body := map[string]interface{}{"payment_amount": 500}
	payload, _ := json.Marshal(body)
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPut, "/bookings/1/pay", bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Equal(t, StatusConfirmed, repo.bookings[1].Status)
	assert.Equal(t, float64(500), repo.bookings[1].PaymentAmount)
}

func TestCancelBookingForbiddenForOtherPlayer(t *testing.T) {
	playerID := uint(5)
	repo := newFakeBookingRepo()
	repo.bookings[1] = &Booking{
		Model:    gorm.Model{ID: 1},
		GroundID: 7, OwnerID: 2, PlayerID: &playerID,
		BookedBy: BookedByPlayer,
		Status:   StatusConfirmed,
	}
	router := setupBookingRouter(t, 6, repo, &fakeGroundRepo{}) // different player

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPut, "/bookings/1/cancel", nil)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusForbidden, w.Code)
	assert.Equal(t, StatusConfirmed, repo.bookings[1].Status)
}
