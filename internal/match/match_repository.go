package match

import (
	"errors"

	"github.com/crickonnect/crickonnect-api/internal/team"
	"gorm.io/gorm"
)

// MatchRepository defines data operations for matches and match requests.
type MatchRepository interface {
	WithTransaction(fn func(repo MatchRepository) error) error

	CreateMatch(m *Match) error
	GetMatchByID(id uint) (*Match, error)
	UpdateMatch(m *Match) error
	ListMatchesByTeams(teamIDs []uint, status string, page, limit int) ([]Match, int64, error)
	CountMatchesByTeams(teamIDs []uint, status string) (int64, error)
	CountWinsByTeams(teamIDs []uint) (int64, error)

	CreateRequest(mr *MatchRequest) error
	GetRequestByID(id uint) (*MatchRequest, error)
	UpdateRequest(mr *MatchRequest) error
	HasPendingRequest(requestingTeamID, receivingTeamID uint) (bool, error)
	ListRequestsForTeam(teamID uint) ([]MatchRequest, error)

	IncrementTeamStats(teamID uint, won bool) error

	ClearMatchData() error
}

type matchRepository struct {
	db *gorm.DB
}

// NewMatchRepository creates a new instance of MatchRepository.
func NewMatchRepository(db *gorm.DB) MatchRepository {
	return &matchRepository{db: db}
}

func (r *matchRepository) WithTransaction(fn func(repo MatchRepository) error) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		return fn(&matchRepository{db: tx})
	})
}

func (r *matchRepository) CreateMatch(m *Match) error {
	return r.db.Create(m).Error
}

func (r *matchRepository) GetMatchByID(id uint) (*Match, error) {
	var m Match
	if err := r.db.First(&m, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &m, nil
}

func (r *matchRepository) UpdateMatch(m *Match) error {
	return r.db.Save(m).Error
}

func (r *matchRepository) ListMatchesByTeams(teamIDs []uint, status string, page, limit int) ([]Match, int64, error) {
	var matches []Match
	var total int64

	if len(teamIDs) == 0 {
		return []Match{}, 0, nil
	}

	query := r.db.Model(&Match{}).Where("team1_id IN ? OR team2_id IN ?", teamIDs, teamIDs)
	if status != "" {
		query = query.Where("status = ?", status)
	}
	query.Count(&total)
	offset := (page - 1) * limit
	if err := query.Offset(offset).Limit(limit).Order("match_date desc, created_at desc").Find(&matches).Error; err != nil {
		return nil, 0, err
	}
	return matches, total, nil
}

func (r *matchRepository) CountMatchesByTeams(teamIDs []uint, status string) (int64, error) {
	if len(teamIDs) == 0 {
		return 0, nil
	}
	var count int64
	query := r.db.Model(&Match{}).Where("team1_id IN ? OR team2_id IN ?", teamIDs, teamIDs)
	if status != "" {
		query = query.Where("status = ?", status)
	}
	err := query.Count(&count).Error
	return count, err
}

func (r *matchRepository) CountWinsByTeams(teamIDs []uint) (int64, error) {
	if len(teamIDs) == 0 {
		return 0, nil
	}
	var count int64
	err := r.db.Model(&Match{}).
		Where("status = ? AND winner_team_id IN ?", StatusPast, teamIDs).
		Count(&count).Error
	return count, err
}

func (r *matchRepository) CreateRequest(mr *MatchRequest) error {
	return r.db.Create(mr).Error
}

func (r *matchRepository) GetRequestByID(id uint) (*MatchRequest, error) {
	var mr MatchRequest
	if err := r.db.First(&mr, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &mr, nil
}

func (r *matchRepository) UpdateRequest(mr *MatchRequest) error {
	return r.db.Save(mr).Error
}

// HasPendingRequest checks the ordered (requesting, receiving) pair; the
// reverse direction is a distinct request.
func (r *matchRepository) HasPendingRequest(requestingTeamID, receivingTeamID uint) (bool, error) {
	var count int64
	err := r.db.Model(&MatchRequest{}).
		Where("requesting_team_id = ? AND receiving_team_id = ? AND status = ?",
			requestingTeamID, receivingTeamID, RequestPending).
		Count(&count).Error
	return count > 0, err
}

func (r *matchRepository) ListRequestsForTeam(teamID uint) ([]MatchRequest, error) {
	var requests []MatchRequest
	err := r.db.
		Where("requesting_team_id = ? OR receiving_team_id = ?", teamID, teamID).
		Order("created_at desc").
		Find(&requests).Error
	if err != nil {
		return nil, err
	}
	return requests, nil
}

func (r *matchRepository) IncrementTeamStats(teamID uint, won bool) error {
	updates := map[string]interface{}{
		"matches_played": gorm.Expr("matches_played + 1"),
	}
	if won {
		updates["matches_won"] = gorm.Expr("matches_won + 1")
	}
	return r.db.Model(&team.Team{}).Where("id = ?", teamID).Updates(updates).Error
}

// ClearMatchData wipes matches and teams. Debug tooling only.
func (r *matchRepository) ClearMatchData() error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Session(&gorm.Session{AllowGlobalUpdate: true}).Delete(&Match{}).Error; err != nil {
			return err
		}
		if err := tx.Session(&gorm.Session{AllowGlobalUpdate: true}).Delete(&MatchRequest{}).Error; err != nil {
			return err
		}
		if err := tx.Session(&gorm.Session{AllowGlobalUpdate: true}).Delete(&team.TeamMember{}).Error; err != nil {
			return err
		}
		return tx.Session(&gorm.Session{AllowGlobalUpdate: true}).Delete(&team.Team{}).Error
	})
}
