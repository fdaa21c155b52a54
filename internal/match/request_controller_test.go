package match

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/crickonnect/crickonnect-api/internal/middleware"
	"github.com/crickonnect/crickonnect-api/internal/team"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type fakeMatchRepo struct {
	MatchRepository
	matches  map[uint]*Match
	requests map[uint]*MatchRequest
	nextID   uint
}

func newFakeMatchRepo() *fakeMatchRepo {
	return &fakeMatchRepo{matches: map[uint]*Match{}, requests: map[uint]*MatchRequest{}, nextID: 1}
}

func (f *fakeMatchRepo) WithTransaction(fn func(repo MatchRepository) error) error {
	return fn(f)
}

func (f *fakeMatchRepo) CreateMatch(m *Match) error {
	m.ID = f.nextID
	f.nextID++
	f.matches[m.ID] = m
	return nil
}

func (f *fakeMatchRepo) CreateRequest(mr *MatchRequest) error {
	mr.ID = f.nextID
	f.nextID++
	f.requests[mr.ID] = mr
	return nil
}

func (f *fakeMatchRepo) GetRequestByID(id uint) (*MatchRequest, error) {
	return f.requests[id], nil
}

func (f *fakeMatchRepo) UpdateRequest(mr *MatchRequest) error {
	f.requests[mr.ID] = mr
	return nil
}

func (f *fakeMatchRepo) HasPendingRequest(requestingTeamID, receivingTeamID uint) (bool, error) {
	for _, mr := range f.requests {
		if mr.RequestingTeamID == requestingTeamID && mr.ReceivingTeamID == receivingTeamID && mr.Status == RequestPending {
			return true, nil
		}
	}
	return false, nil
}

type fakeTeamLookup struct {
	team.TeamRepository
	teams   map[uint]*team.Team
	members map[uint][]team.TeamMember
}

func (f *fakeTeamLookup) GetTeamByID(id uint) (*team.Team, error) {
	return f.teams[id], nil
}

func (f *fakeTeamLookup) ListMembers(teamID uint) ([]team.TeamMember, error) {
	return f.members[teamID], nil
}

func setupRequestRouter(t *testing.T, userID uint, repo MatchRepository, teams team.TeamRepository) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.Use(func(c *gin.Context) {
		c.Set(middleware.AuthUserIDKey, userID)
		c.Next()
	})

	rc := NewRequestController(repo, teams)
	router.POST("/match-requests", rc.CreateMatchRequest)
	router.PUT("/match-requests/:request_id/accept", rc.AcceptMatchRequest)
	router.PUT("/match-requests/:request_id/reject", rc.RejectMatchRequest)
	router.PUT("/match-requests/:request_id/cancel", rc.CancelMatchRequest)
	return router
}

func doJSON(router *gin.Engine, method, path string, body interface{}) *httptest.ResponseRecorder {
	var payload []byte
	if body != nil {
		payload, _ = json.Marshal(body)
	}
	w := httptest.NewRecorder()
	req := httptest.NewRequest(method, path, bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(w, req)
	return w
}

func twoTeams() *fakeTeamLookup {
	return &fakeTeamLookup{
		teams: map[uint]*team.Team{
			1: {Model: gorm.Model{ID: 1}, Name: "Strikers", CaptainID: 10},
			2: {Model: gorm.Model{ID: 2}, Name: "Blasters", CaptainID: 20},
		},
		members: map[uint][]team.TeamMember{
			1: {{TeamID: 1, UserID: 10}, {TeamID: 1, UserID: 11}},
			2: {{TeamID: 2, UserID: 20}, {TeamID: 2, UserID: 21}},
		},
	}
}

func TestCreateMatchRequestByRequestingCaptain(t *testing.T) {
	repo := newFakeMatchRepo()
	router := setupRequestRouter(t, 10, repo, twoTeams())

	w := doJSON(router, http.MethodPost, "/match-requests", map[string]interface{}{
		"requesting_team_id": 1,
		"receiving_team_id":  2,
		"proposed_date":      "2026-09-15",
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	assert.Len(t, repo.requests, 1)
}

func TestCreateMatchRequestForbiddenForNonCaptain(t *testing.T) {
	repo := newFakeMatchRepo()
	router := setupRequestRouter(t, 11, repo, twoTeams()) // member, not captain

	w := doJSON(router, http.MethodPost, "/match-requests", map[string]interface{}{
		"requesting_team_id": 1,
		"receiving_team_id":  2,
		"proposed_date":      "2026-09-15",
	})
	assert.Equal(t, http.StatusForbidden, w.Code)
	assert.Empty(t, repo.requests)
}

func TestDuplicatePendingOrderedPairRejected(t *testing.T) {
	repo := newFakeMatchRepo()
	router := setupRequestRouter(t, 10, repo, twoTeams())

	body := map[string]interface{}{
		"requesting_team_id": 1,
		"receiving_team_id":  2,
		"proposed_date":      "2026-09-15",
	}
	w := doJSON(router, http.MethodPost, "/match-requests", body)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	w = doJSON(router, http.MethodPost, "/match-requests", body)
	assert.Equal(t, http.StatusConflict, w.Code)
	assert.Len(t, repo.requests, 1)
}

func TestReversePairIsDistinct(t *testing.T) {
	repo := newFakeMatchRepo()
	repo.requests[1] = &MatchRequest{
		Model:            gorm.Model{ID: 1},
		RequestingTeamID: 1, ReceivingTeamID: 2,
		CreatorID: 10, Status: RequestPending,
	}
	repo.nextID = 2
	router := setupRequestRouter(t, 20, repo, twoTeams()) // captain of team 2

	w := doJSON(router, http.MethodPost, "/match-requests", map[string]interface{}{
		"requesting_team_id": 2,
		"receiving_team_id":  1,
		"proposed_date":      "2026-09-16",
	})
	assert.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	assert.Len(t, repo.requests, 2)
}

func TestAcceptCreatesLinkedUpcomingMatch(t *testing.T) {
	repo := newFakeMatchRepo()
	repo.requests[1] = &MatchRequest{
		Model:            gorm.Model{ID: 1},
		RequestingTeamID: 1, ReceivingTeamID: 2,
		CreatorID:    10,
		ProposedDate: "2026-09-15",
		Status:       RequestPending,
	}
	repo.nextID = 2
	router := setupRequestRouter(t, 20, repo, twoTeams()) // receiving captain

	w := doJSON(router, http.MethodPut, "/match-requests/1/accept", nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	mr := repo.requests[1]
	assert.Equal(t, RequestAccepted, mr.Status)
	require.NotNil(t, mr.MatchID)
	assert.NotNil(t, mr.RespondedAt)

	require.Len(t, repo.matches, 1)
	m := repo.matches[*mr.MatchID]
	require.NotNil(t, m)
	assert.Equal(t, StatusUpcoming, m.Status)
	assert.Equal(t, uint(1), m.Team1ID)
	assert.Equal(t, uint(2), m.Team2ID)
	assert.ElementsMatch(t, []uint{10, 11}, []uint(m.Team1Players))
	assert.ElementsMatch(t, []uint{20, 21}, []uint(m.Team2Players))
}

func TestAcceptOnlyByReceivingCaptain(t *testing.T) {
	repo := newFakeMatchRepo()
	repo.requests[1] = &MatchRequest{
		Model:            gorm.Model{ID: 1},
		RequestingTeamID: 1, ReceivingTeamID: 2,
		CreatorID: 10, Status: RequestPending,
	}
	router := setupRequestRouter(t, 10, repo, twoTeams()) // requesting captain

	w := doJSON(router, http.MethodPut, "/match-requests/1/accept", nil)
	assert.Equal(t, http.StatusForbidden, w.Code)
	assert.Equal(t, RequestPending, repo.requests[1].Status)
	assert.Empty(t, repo.matches)
}

func TestResolvedRequestIsTerminal(t *testing.T) {
	repo := newFakeMatchRepo()
	matchID := uint(5)
	repo.requests[1] = &MatchRequest{
		Model:            gorm.Model{ID: 1},
		RequestingTeamID: 1, ReceivingTeamID: 2,
		CreatorID: 10, Status: RequestAccepted, MatchID: &matchID,
	}
	router := setupRequestRouter(t, 20, repo, twoTeams())

	w := doJSON(router, http.MethodPut, "/match-requests/1/reject", nil)
	assert.Equal(t, http.StatusConflict, w.Code)
	assert.Equal(t, RequestAccepted, repo.requests[1].Status)

	// cancellation by the creator is blocked the same way
	router = setupRequestRouter(t, 10, repo, twoTeams())
	w = doJSON(router, http.MethodPut, "/match-requests/1/cancel", nil)
	assert.Equal(t, http.StatusConflict, w.Code)
	assert.Equal(t, RequestAccepted, repo.requests[1].Status)
}

func TestCancelByCreator(t *testing.T) {
	repo := newFakeMatchRepo()
	repo.requests[1] = &MatchRequest{
		Model:            gorm.Model{ID: 1},
		RequestingTeamID: 1, ReceivingTeamID: 2,
		CreatorID: 10, Status: RequestPending,
	}
	router := setupRequestRouter(t, 10, repo, twoTeams())

	w := doJSON(router, http.MethodPut, "/match-requests/1/cancel", nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Equal(t, RequestCancelled, repo.requests[1].Status)
}
