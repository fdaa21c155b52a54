package team

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/crickonnect/crickonnect-api/internal/middleware"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type fakeTeamRepo struct {
	TeamRepository
	teams        map[uint]*Team
	members      map[uint]map[uint]bool // teamID -> userID set
	invites      map[uint]*TeamInvite
	joinRequests map[uint]*TeamJoinRequest
	nextID       uint
	addCalls     int
}

func newFakeTeamRepo() *fakeTeamRepo {
	return &fakeTeamRepo{
		teams:        map[uint]*Team{},
		members:      map[uint]map[uint]bool{},
		invites:      map[uint]*TeamInvite{},
		joinRequests: map[uint]*TeamJoinRequest{},
		nextID:       1,
	}
}

func (f *fakeTeamRepo) WithTransaction(fn func(repo TeamRepository) error) error {
	return fn(f)
}

func (f *fakeTeamRepo) GetTeamByID(id uint) (*Team, error) {
	return f.teams[id], nil
}

func (f *fakeTeamRepo) IsMember(teamID, userID uint) (bool, error) {
	return f.members[teamID][userID], nil
}

// AddMember mirrors the ON CONFLICT DO NOTHING behavior of the real repo.
func (f *fakeTeamRepo) AddMember(m *TeamMember) error {
	f.addCalls++
	if f.members[m.TeamID] == nil {
		f.members[m.TeamID] = map[uint]bool{}
	}
	f.members[m.TeamID][m.UserID] = true
	return nil
}

// RemoveMember deletes the row outright, matching the hard delete in the real
// repo.
func (f *fakeTeamRepo) RemoveMember(teamID, userID uint) error {
	delete(f.members[teamID], userID)
	return nil
}

func (f *fakeTeamRepo) CreateInvite(inv *TeamInvite) error {
	inv.ID = f.nextID
	f.nextID++
	f.invites[inv.ID] = inv
	return nil
}

func (f *fakeTeamRepo) GetInviteByID(id uint) (*TeamInvite, error) {
	return f.invites[id], nil
}

func (f *fakeTeamRepo) UpdateInvite(inv *TeamInvite) error {
	f.invites[inv.ID] = inv
	return nil
}

func (f *fakeTeamRepo) HasPendingInvite(teamID, inviteeID uint) (bool, error) {
	for _, inv := range f.invites {
		if inv.TeamID == teamID && inv.InviteeID == inviteeID && inv.Status == RequestStatusPending {
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeTeamRepo) CreateJoinRequest(jr *TeamJoinRequest) error {
	jr.ID = f.nextID
	f.nextID++
	f.joinRequests[jr.ID] = jr
	return nil
}

func (f *fakeTeamRepo) GetJoinRequestByID(id uint) (*TeamJoinRequest, error) {
	return f.joinRequests[id], nil
}

func (f *fakeTeamRepo) UpdateJoinRequest(jr *TeamJoinRequest) error {
	f.joinRequests[jr.ID] = jr
	return nil
}

func (f *fakeTeamRepo) HasPendingJoinRequest(teamID, userID uint) (bool, error) {
	for _, jr := range f.joinRequests {
		if jr.TeamID == teamID && jr.UserID == userID && jr.Status == RequestStatusPending {
			return true, nil
		}
	}
	return false, nil
}

func setupMembershipRouter(t *testing.T, userID uint, repo TeamRepository) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.Use(func(c *gin.Context) {
		c.Set(middleware.AuthUserIDKey, userID)
		c.Next()
	})

	mc := NewMembershipController(repo)
	router.POST("/team-invites", mc.InviteToTeam)
	router.PUT("/team-invites/:invite_id/respond", mc.RespondToInvite)
	router.POST("/join-requests", mc.CreateJoinRequest)
	router.PUT("/join-requests/:request_id/respond", mc.RespondToJoinRequest)
	return router
}

func postJSON(router *gin.Engine, method, path string, body interface{}) *httptest.ResponseRecorder {
	payload, _ := json.Marshal(body)
	w := httptest.NewRecorder()
	req := httptest.NewRequest(method, path, bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(w, req)
	return w
}

func TestDuplicateJoinRequestRejected(t *testing.T) {
	repo := newFakeTeamRepo()
	repo.teams[1] = &Team{Model: gorm.Model{ID: 1}, Name: "Strikers", CaptainID: 2}
	router := setupMembershipRouter(t, 5, repo)

	w := postJSON(router, http.MethodPost, "/join-requests", map[string]interface{}{"team_id": 1})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	assert.Len(t, repo.joinRequests, 1)

	w = postJSON(router, http.MethodPost, "/join-requests", map[string]interface{}{"team_id": 1})
	assert.Equal(t, http.StatusConflict, w.Code)
	assert.Len(t, repo.joinRequests, 1, "no second row on duplicate")
}

func TestJoinRequestRejectedForExistingMember(t *testing.T) {
	repo := newFakeTeamRepo()
	repo.teams[1] = &Team{Model: gorm.Model{ID: 1}, Name: "Strikers", CaptainID: 2}
	repo.members[1] = map[uint]bool{5: true}
	router := setupMembershipRouter(t, 5, repo)

	w := postJSON(router, http.MethodPost, "/join-requests", map[string]interface{}{"team_id": 1})
	assert.Equal(t, http.StatusConflict, w.Code)
	assert.Empty(t, repo.joinRequests)
}

func TestInviteOnlyByCaptain(t *testing.T) {
	repo := newFakeTeamRepo()
	repo.teams[1] = &Team{Model: gorm.Model{ID: 1}, Name: "Strikers", CaptainID: 2}
	router := setupMembershipRouter(t, 9, repo) // not the captain

	w := postJSON(router, http.MethodPost, "/team-invites", map[string]interface{}{"team_id": 1, "invitee_id": 5})
	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestDuplicatePendingInviteRejected(t *testing.T) {
	repo := newFakeTeamRepo()
	repo.teams[1] = &Team{Model: gorm.Model{ID: 1}, Name: "Strikers", CaptainID: 2}
	router := setupMembershipRouter(t, 2, repo)

	w := postJSON(router, http.MethodPost, "/team-invites", map[string]interface{}{"team_id": 1, "invitee_id": 5})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	w = postJSON(router, http.MethodPost, "/team-invites", map[string]interface{}{"team_id": 1, "invitee_id": 5})
	assert.Equal(t, http.StatusConflict, w.Code)
	assert.Len(t, repo.invites, 1)
}

func TestAcceptInviteAddsMemberAndIsTerminal(t *testing.T) {
	repo := newFakeTeamRepo()
	repo.teams[1] = &Team{Model: gorm.Model{ID: 1}, Name: "Strikers", CaptainID: 2}
	repo.invites[10] = &TeamInvite{
		Model:  gorm.Model{ID: 10},
		TeamID: 1, InviterID: 2, InviteeID: 5,
		Status: RequestStatusPending,
	}
	router := setupMembershipRouter(t, 5, repo)

	w := postJSON(router, http.MethodPut, "/team-invites/10/respond", map[string]string{"action": "accept"})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	assert.Equal(t, RequestStatusAccepted, repo.invites[10].Status)
	assert.True(t, repo.members[1][5], "invitee became a member")
	assert.NotNil(t, repo.invites[10].RespondedAt)

	// responding again hits the terminal-state guard
	w = postJSON(router, http.MethodPut, "/team-invites/10/respond", map[string]string{"action": "reject"})
	assert.Equal(t, http.StatusConflict, w.Code)
	assert.Equal(t, RequestStatusAccepted, repo.invites[10].Status)
}

func TestRespondToInviteOnlyByInvitee(t *testing.T) {
	repo := newFakeTeamRepo()
	repo.teams[1] = &Team{Model: gorm.Model{ID: 1}, CaptainID: 2}
	repo.invites[10] = &TeamInvite{
		Model:  gorm.Model{ID: 10},
		TeamID: 1, InviterID: 2, InviteeID: 5,
		Status: RequestStatusPending,
	}
	router := setupMembershipRouter(t, 7, repo) // neither invitee nor captain

	w := postJSON(router, http.MethodPut, "/team-invites/10/respond", map[string]string{"action": "accept"})
	assert.Equal(t, http.StatusForbidden, w.Code)
	assert.Equal(t, RequestStatusPending, repo.invites[10].Status)
}

func TestRepeatedAddLeavesSingleMembership(t *testing.T) {
	repo := newFakeTeamRepo()
	repo.teams[1] = &Team{Model: gorm.Model{ID: 1}, CaptainID: 2}
	repo.invites[10] = &TeamInvite{
		Model:  gorm.Model{ID: 10},
		TeamID: 1, InviterID: 2, InviteeID: 5,
		Status: RequestStatusPending,
	}
	repo.joinRequests[20] = &TeamJoinRequest{
		Model:  gorm.Model{ID: 20},
		TeamID: 1, UserID: 5,
		Status: RequestStatusPending,
	}

	// the invitee accepts the invite, then the captain accepts a join request
	// that was already in flight for the same user
	inviteeRouter := setupMembershipRouter(t, 5, repo)
	w := postJSON(inviteeRouter, http.MethodPut, "/team-invites/10/respond", map[string]string{"action": "accept"})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	captainRouter := setupMembershipRouter(t, 2, repo)
	w = postJSON(captainRouter, http.MethodPut, "/join-requests/20/respond", map[string]string{"action": "accept"})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	assert.Equal(t, 2, repo.addCalls, "both accepts reach AddMember")
	assert.Len(t, repo.members[1], 1, "second add is a no-op on the member set")
	assert.True(t, repo.members[1][5])
}

func TestMemberCanRejoinAfterLeaving(t *testing.T) {
	repo := newFakeTeamRepo()
	repo.teams[1] = &Team{Model: gorm.Model{ID: 1}, CaptainID: 2}
	repo.members[1] = map[uint]bool{5: true}

	gin.SetMode(gin.TestMode)
	leaveRouter := gin.New()
	leaveRouter.Use(func(c *gin.Context) {
		c.Set(middleware.AuthUserIDKey, uint(5))
		c.Next()
	})
	leaveRouter.POST("/teams/:team_id/leave", NewTeamController(repo).LeaveTeam)

	w := postJSON(leaveRouter, http.MethodPost, "/teams/1/leave", nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.False(t, repo.members[1][5])

	// a fresh invite after the departure must actually restore membership
	repo.invites[11] = &TeamInvite{
		Model:  gorm.Model{ID: 11},
		TeamID: 1, InviterID: 2, InviteeID: 5,
		Status: RequestStatusPending,
	}
	router := setupMembershipRouter(t, 5, repo)
	w = postJSON(router, http.MethodPut, "/team-invites/11/respond", map[string]string{"action": "accept"})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	assert.Equal(t, RequestStatusAccepted, repo.invites[11].Status)
	isMember, err := repo.IsMember(1, 5)
	require.NoError(t, err)
	assert.True(t, isMember, "membership restored after leave and re-accept")
}

func TestAcceptJoinRequestByCaptain(t *testing.T) {
	repo := newFakeTeamRepo()
	repo.teams[1] = &Team{Model: gorm.Model{ID: 1}, CaptainID: 2}
	repo.joinRequests[20] = &TeamJoinRequest{
		Model:  gorm.Model{ID: 20},
		TeamID: 1, UserID: 5,
		Status: RequestStatusPending,
	}
	router := setupMembershipRouter(t, 2, repo)

	w := postJSON(router, http.MethodPut, "/join-requests/20/respond", map[string]string{"action": "accept"})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	assert.Equal(t, RequestStatusAccepted, repo.joinRequests[20].Status)
	assert.True(t, repo.members[1][5])
}
