package stats

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/crickonnect/crickonnect-api/internal/booking"
	"github.com/crickonnect/crickonnect-api/internal/match"
	"github.com/crickonnect/crickonnect-api/internal/middleware"
	"github.com/crickonnect/crickonnect-api/internal/team"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type fakeStatsTeamRepo struct {
	team.TeamRepository
	teams []team.Team
}

func (f *fakeStatsTeamRepo) ListTeamsByUser(userID uint) ([]team.Team, error) {
	return f.teams, nil
}

func (f *fakeStatsTeamRepo) ListTeamIDsByUser(userID uint) ([]uint, error) {
	ids := make([]uint, 0, len(f.teams))
	for _, t := range f.teams {
		ids = append(ids, t.ID)
	}
	return ids, nil
}

type fakeStatsMatchRepo struct {
	match.MatchRepository
	upcomingTotal int64
	pastTotal     int64
	wins          int64

	lastPage  int
	lastLimit int
}

// ListMatchesByTeams serves one page out of the configured totals, the way the
// real repository truncates with Offset/Limit.
func (f *fakeStatsMatchRepo) ListMatchesByTeams(teamIDs []uint, status string, page, limit int) ([]match.Match, int64, error) {
	f.lastPage = page
	f.lastLimit = limit

	total := f.pastTotal
	if status == match.StatusUpcoming {
		total = f.upcomingTotal
	}
	remaining := total - int64(page-1)*int64(limit)
	if remaining < 0 {
		remaining = 0
	}
	if remaining > int64(limit) {
		remaining = int64(limit)
	}
	out := make([]match.Match, remaining)
	for i := range out {
		out[i] = match.Match{Status: status}
	}
	return out, total, nil
}

func (f *fakeStatsMatchRepo) CountMatchesByTeams(teamIDs []uint, status string) (int64, error) {
	if status == match.StatusUpcoming {
		return f.upcomingTotal, nil
	}
	return f.pastTotal, nil
}

func (f *fakeStatsMatchRepo) CountWinsByTeams(teamIDs []uint) (int64, error) {
	return f.wins, nil
}

type fakeStatsBookingRepo struct {
	booking.BookingRepository
	bookings int64
}

func (f *fakeStatsBookingRepo) CountByPlayer(playerID uint) (int64, error) {
	return f.bookings, nil
}

func setupStatsRouter(t *testing.T, userID uint, sc *StatsController) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.Use(func(c *gin.Context) {
		c.Set(middleware.AuthUserIDKey, userID)
		c.Next()
	})
	router.GET("/home-stats", sc.GetHomeStats)
	router.GET("/profile/stats", sc.GetProfileStats)
	return router
}

func getJSON(router *gin.Engine, path string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, path, nil)
	router.ServeHTTP(w, req)
	return w
}

func TestProfileStatsWinFiguresUseFullHistory(t *testing.T) {
	teams := &fakeStatsTeamRepo{teams: []team.Team{{Model: gorm.Model{ID: 1}, Name: "Strikers"}}}
	matches := &fakeStatsMatchRepo{upcomingTotal: 3, pastTotal: 25, wins: 10}
	sc := NewStatsController(teams, matches, &fakeStatsBookingRepo{})
	router := setupStatsRouter(t, 5, sc)

	w := getJSON(router, "/profile/stats")
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var resp struct {
		Data ProfileStats `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))

	// the page holds the default limit, the totals hold everything
	assert.Len(t, resp.Data.PastMatches, 10)
	assert.Equal(t, int64(25), resp.Data.PastTotal)
	assert.Len(t, resp.Data.UpcomingMatches, 3)
	assert.Equal(t, int64(3), resp.Data.UpcomingTotal)

	// win rate comes from the 25 played, not the 10 listed
	assert.Equal(t, int64(10), resp.Data.WinCount)
	assert.InDelta(t, 40.0, resp.Data.WinRate, 0.001)
}

func TestProfileStatsPagination(t *testing.T) {
	teams := &fakeStatsTeamRepo{teams: []team.Team{{Model: gorm.Model{ID: 1}}}}
	matches := &fakeStatsMatchRepo{pastTotal: 25, wins: 10}
	sc := NewStatsController(teams, matches, &fakeStatsBookingRepo{})
	router := setupStatsRouter(t, 5, sc)

	w := getJSON(router, "/profile/stats?page=3&limit=10")
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var resp struct {
		Data ProfileStats `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))

	assert.Equal(t, 3, matches.lastPage)
	assert.Equal(t, 10, matches.lastLimit)
	assert.Len(t, resp.Data.PastMatches, 5, "last page carries the remainder")
	assert.Equal(t, int64(25), resp.Data.PastTotal)
	assert.InDelta(t, 40.0, resp.Data.WinRate, 0.001, "win rate is page-independent")
}

func TestProfileStatsRejectsBogusPagination(t *testing.T) {
	teams := &fakeStatsTeamRepo{teams: []team.Team{{Model: gorm.Model{ID: 1}}}}
	matches := &fakeStatsMatchRepo{pastTotal: 5}
	sc := NewStatsController(teams, matches, &fakeStatsBookingRepo{})
	router := setupStatsRouter(t, 5, sc)

	w := getJSON(router, "/profile/stats?page=-2&limit=100000")
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	assert.Equal(t, 1, matches.lastPage)
	assert.Equal(t, 10, matches.lastLimit)
}

func TestHomeStatsCounts(t *testing.T) {
	teams := &fakeStatsTeamRepo{teams: []team.Team{{Model: gorm.Model{ID: 1}}, {Model: gorm.Model{ID: 2}}}}
	matches := &fakeStatsMatchRepo{upcomingTotal: 4, pastTotal: 7}
	bookings := &fakeStatsBookingRepo{bookings: 3}
	sc := NewStatsController(teams, matches, bookings)
	router := setupStatsRouter(t, 5, sc)

	w := getJSON(router, "/home-stats")
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var resp struct {
		Data HomeStats `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, int64(2), resp.Data.TeamCount)
	assert.Equal(t, int64(4), resp.Data.UpcomingMatchCount)
	assert.Equal(t, int64(7), resp.Data.PastMatchCount)
	assert.Equal(t, int64(3), resp.Data.BookingCount)
}
