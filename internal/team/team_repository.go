package team

import (
	"errors"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// TeamRepository defines data operations for teams, membership, invites and
// join requests.
type TeamRepository interface {
	WithTransaction(fn func(repo TeamRepository) error) error

	CreateTeam(t *Team) error
	GetTeamByID(id uint) (*Team, error)
	GetTeamByCaptainAndName(captainID uint, name string) (*Team, error)
	UpdateTeam(t *Team) error
	SearchTeams(district, village, name string, page, limit int) ([]Team, int64, error)
	ListTeamsByUser(userID uint) ([]Team, error)
	ListTeamIDsByUser(userID uint) ([]uint, error)

	AddMember(m *TeamMember) error
	RemoveMember(teamID, userID uint) error
	IsMember(teamID, userID uint) (bool, error)
	ListMembers(teamID uint) ([]TeamMember, error)

	CreateInvite(inv *TeamInvite) error
	GetInviteByID(id uint) (*TeamInvite, error)
	UpdateInvite(inv *TeamInvite) error
	DeleteInvite(id uint) error
	HasPendingInvite(teamID, inviteeID uint) (bool, error)
	ListInvitesByTeam(teamID uint) ([]TeamInvite, error)
	ListInvitesByUser(inviteeID uint) ([]TeamInvite, error)

	CreateJoinRequest(jr *TeamJoinRequest) error
	GetJoinRequestByID(id uint) (*TeamJoinRequest, error)
	UpdateJoinRequest(jr *TeamJoinRequest) error
	DeleteJoinRequest(id uint) error
	HasPendingJoinRequest(teamID, userID uint) (bool, error)
	ListJoinRequestsByTeam(teamID uint) ([]TeamJoinRequest, error)
	ListJoinRequestsByUser(userID uint) ([]TeamJoinRequest, error)
}

type teamRepository struct {
	db *gorm.DB
}

// NewTeamRepository creates a new instance of TeamRepository.
func NewTeamRepository(db *gorm.DB) TeamRepository {
	return &teamRepository{db: db}
}

func (r *teamRepository) WithTransaction(fn func(repo TeamRepository) error) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		return fn(&teamRepository{db: tx})
	})
}

func (r *teamRepository) CreateTeam(t *Team) error {
	return r.db.Create(t).Error
}

func (r *teamRepository) GetTeamByID(id uint) (*Team, error) {
	var t Team
	if err := r.db.Preload("Members").First(&t, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &t, nil
}

func (r *teamRepository) GetTeamByCaptainAndName(captainID uint, name string) (*Team, error) {
	var t Team
	if err := r.db.Where("captain_id = ? AND name = ?", captainID, name).First(&t).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &t, nil
}

func (r *teamRepository) UpdateTeam(t *Team) error {
	return r.db.Save(t).Error
}

func (r *teamRepository) SearchTeams(district, village, name string, page, limit int) ([]Team, int64, error) {
	var teams []Team
	var total int64

	query := r.db.Model(&Team{})
	if district != "" {
		query = query.Where("district = ?", district)
	}
	if village != "" {
		query = query.Where("village = ?", village)
	}
	if name != "" {
		query = query.Where("name ILIKE ?", "%"+name+"%")
	}

	query.Count(&total)
	offset := (page - 1) * limit
	if err := query.Offset(offset).Limit(limit).Order("created_at desc").Find(&teams).Error; err != nil {
		return nil, 0, err
	}
	return teams, total, nil
}

func (r *teamRepository) ListTeamsByUser(userID uint) ([]Team, error) {
	var teams []Team
	err := r.db.
		Joins("JOIN team_members ON team_members.team_id = teams.id").
		Where("team_members.user_id = ?", userID).
		Find(&teams).Error
	if err != nil {
		return nil, err
	}
	return teams, nil
}

func (r *teamRepository) ListTeamIDsByUser(userID uint) ([]uint, error) {
	var ids []uint
	err := r.db.Model(&TeamMember{}).
		Where("user_id = ?", userID).
		Pluck("team_id", &ids).Error
	if err != nil {
		return nil, err
	}
	return ids, nil
}

func (r *teamRepository) AddMember(m *TeamMember) error {
	return r.db.Clauses(clause.OnConflict{DoNothing: true}).Create(m).Error
}

func (r *teamRepository) RemoveMember(teamID, userID uint) error {
	return r.db.Where("team_id = ? AND user_id = ?", teamID, userID).Delete(&TeamMember{}).Error
}

func (r *teamRepository) IsMember(teamID, userID uint) (bool, error) {
	var count int64
	err := r.db.Model(&TeamMember{}).
		Where("team_id = ? AND user_id = ?", teamID, userID).
		Count(&count).Error
	return count > 0, err
}

func (r *teamRepository) ListMembers(teamID uint) ([]TeamMember, error) {
	var members []TeamMember
	if err := r.db.Where("team_id = ?", teamID).Find(&members).Error; err != nil {
		return nil, err
	}
	return members, nil
}

func (r *teamRepository) CreateInvite(inv *TeamInvite) error {
	return r.db.Create(inv).Error
}

func (r *teamRepository) GetInviteByID(id uint) (*TeamInvite, error) {
	var inv TeamInvite
	if err := r.db.First(&inv, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &inv, nil
}

func (r *teamRepository) UpdateInvite(inv *TeamInvite) error {
	return r.db.Save(inv).Error
}

func (r *teamRepository) DeleteInvite(id uint) error {
	return r.db.Delete(&TeamInvite{}, id).Error
}

func (r *teamRepository) HasPendingInvite(teamID, inviteeID uint) (bool, error) {
	var count int64
	err := r.db.Model(&TeamInvite{}).
		Where("team_id = ? AND invitee_id = ? AND status = ?", teamID, inviteeID, RequestStatusPending).
		Count(&count).Error
	return count > 0, err
}

func (r *teamRepository) ListInvitesByTeam(teamID uint) ([]TeamInvite, error) {
	var invites []TeamInvite
	if err := r.db.Where("team_id = ?", teamID).Order("created_at desc").Find(&invites).Error; err != nil {
		return nil, err
	}
	return invites, nil
}

func (r *teamRepository) ListInvitesByUser(inviteeID uint) ([]TeamInvite, error) {
	var invites []TeamInvite
	if err := r.db.Where("invitee_id = ?", inviteeID).Order("created_at desc").Find(&invites).Error; err != nil {
		return nil, err
	}
	return invites, nil
}

func (r *teamRepository) CreateJoinRequest(jr *TeamJoinRequest) error {
	return r.db.Create(jr).Error
}

func (r *teamRepository) GetJoinRequestByID(id uint) (*TeamJoinRequest, error) {
	var jr TeamJoinRequest
	if err := r.db.First(&jr, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &jr, nil
}

func (r *teamRepository) UpdateJoinRequest(jr *TeamJoinRequest) error {
	return r.db.Save(jr).Error
}

func (r *teamRepository) DeleteJoinRequest(id uint) error {
	return r.db.Delete(&TeamJoinRequest{}, id).Error
}

func (r *teamRepository) HasPendingJoinRequest(teamID, userID uint) (bool, error) {
	var count int64
	err := r.db.Model(&TeamJoinRequest{}).
		Where("team_id = ? AND user_id = ? AND status = ?", teamID, userID, RequestStatusPending).
		Count(&count).Error
	return count > 0, err
}

func (r *teamRepository) ListJoinRequestsByTeam(teamID uint) ([]TeamJoinRequest, error) {
	var requests []TeamJoinRequest
	if err := r.db.Where("team_id = ?", teamID).Order("created_at desc").Find(&requests).Error; err != nil {
		return nil, err
	}
	return requests, nil
}

func (r *teamRepository) ListJoinRequestsByUser(userID uint) ([]TeamJoinRequest, error) {
	var requests []TeamJoinRequest
	if err := r.db.Where("user_id = ?", userID).Order("created_at desc").Find(&requests).Error; err != nil {
		return nil, err
	}
	return requests, nil
}
