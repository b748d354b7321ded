package dao

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"
)

var (
	ErrHackathonNotFound    = errors.New("hackathon not found")
	ErrStaleHackathonStatus = errors.New("hackathon status changed concurrently")
	ErrTeamNotFound         = errors.New("team not found")
	ErrTeamNameTaken        = errors.New("team name already taken")
	ErrAlreadyInTeam        = errors.New("student already belongs to a team")
	ErrTeamFull             = errors.New("team is full")
	ErrInvitationNotFound   = errors.New("invitation not found")
	ErrInvitationDecided    = errors.New("invitation already decided")
)

type Hackathon struct {
	ID uint `gorm:"primaryKey"`

	Title                string `gorm:"not null"`
	Description          string
	TeamSizeMin          int       `gorm:"not null"`
	TeamSizeMax          int       `gorm:"not null"`
	RegistrationStart    time.Time
	RegistrationDeadline time.Time
	HackathonStart       time.Time
	HackathonEnd         time.Time
	SubmissionDeadline   time.Time
	Status               string `gorm:"not null;default:'draft'"`
	PaymentRequired      bool   `gorm:"not null;default:false"`
	EntryFee             int64  `gorm:"not null;default:0"`
	CreatedByID          uint   `gorm:"not null;index"`

	CreatedAt time.Time `gorm:"not null"`
	UpdatedAt time.Time `gorm:"not null"`
}

type Team struct {
	ID uint `gorm:"primaryKey"`

	HackathonID uint      `gorm:"not null;uniqueIndex:uni_team_hackathon_name"`
	Hackathon   Hackathon `gorm:"foreignKey:HackathonID"`
	Name        string    `gorm:"not null;uniqueIndex:uni_team_hackathon_name"`
	LeaderID    uint      `gorm:"not null"`

	Members []TeamMember `gorm:"foreignKey:TeamID"`

	CreatedAt time.Time `gorm:"not null"`
}

// TeamMember links a user to a team. The (hackathon, user) unique index is
// what enforces one team per student per hackathon.
type TeamMember struct {
	ID uint `gorm:"primaryKey"`

	TeamID      uint `gorm:"not null;index"`
	HackathonID uint `gorm:"not null;uniqueIndex:uni_member_hackathon_user"`
	UserID      uint `gorm:"not null;uniqueIndex:uni_member_hackathon_user"`
	User        User `gorm:"foreignKey:UserID"`

	CreatedAt time.Time `gorm:"not null"`
}

type Invitation struct {
	ID uint `gorm:"primaryKey"`

	HackathonID uint   `gorm:"not null;index"`
	TeamID      uint   `gorm:"not null;index"`
	FromID      uint   `gorm:"not null"`
	ToID        uint   `gorm:"not null;index"`
	Status      string `gorm:"not null;default:'pending'"`

	CreatedAt time.Time `gorm:"not null"`
	UpdatedAt time.Time `gorm:"not null"`
}

type HackathonDAO struct {
	db *gorm.DB
}

func NewHackathonDAO(db *gorm.DB) *HackathonDAO {
	return &HackathonDAO{
		db: db,
	}
}

func (d *HackathonDAO) Insert(ctx context.Context, hackathon Hackathon) (Hackathon, error) {
	result := d.db.WithContext(ctx).Create(&hackathon)
	if result.Error != nil {
		return Hackathon{}, result.Error
	}

	return hackathon, nil
}

func (d *HackathonDAO) FindByID(ctx context.Context, id uint) (Hackathon, error) {
	var hackathon Hackathon

	result := d.db.WithContext(ctx).First(&hackathon, id)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return Hackathon{}, ErrHackathonNotFound
		}

		return Hackathon{}, result.Error
	}

	return hackathon, nil
}

func (d *HackathonDAO) FindAll(ctx context.Context) ([]Hackathon, error) {
	var hackathons []Hackathon

	result := d.db.WithContext(ctx).Order("hackathon_start").Find(&hackathons)
	if result.Error != nil {
		return nil, result.Error
	}

	return hackathons, nil
}

// UpdateStatus moves the hackathon from one status to the next with a
// conditional write, so two racing transitions cannot both succeed.
func (d *HackathonDAO) UpdateStatus(ctx context.Context, id uint, from, to string) error {
	result := d.db.WithContext(ctx).Model(&Hackathon{}).
		Where("id = ? AND status = ?", id, from).
		Update("status", to)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		if _, err := d.FindByID(ctx, id); err != nil {
			return err
		}

		return ErrStaleHackathonStatus
	}

	return nil
}

// InsertTeam creates a team and its leader membership in one transaction.
func (d *HackathonDAO) InsertTeam(ctx context.Context, team Team) (Team, error) {
	err := d.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&team).Error; err != nil {
			var pgErr *pgconn.PgError
			if errors.As(err, &pgErr) && pgErr.Code == pgerrcode.UniqueViolation {
				return ErrTeamNameTaken
			}

			return err
		}

		member := TeamMember{
			TeamID:      team.ID,
			HackathonID: team.HackathonID,
			UserID:      team.LeaderID,
		}
		if err := tx.Create(&member).Error; err != nil {
			var pgErr *pgconn.PgError
			if errors.As(err, &pgErr) && pgErr.Code == pgerrcode.UniqueViolation {
				return ErrAlreadyInTeam
			}

			return err
		}

		return nil
	})
	if err != nil {
		return Team{}, err
	}

	return d.FindTeamByID(ctx, team.ID)
}

func (d *HackathonDAO) FindTeamByID(ctx context.Context, id uint) (Team, error) {
	var team Team

	result := d.db.WithContext(ctx).Preload("Members.User").First(&team, id)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return Team{}, ErrTeamNotFound
		}

		return Team{}, result.Error
	}

	return team, nil
}

func (d *HackathonDAO) FindTeamsByHackathon(ctx context.Context, hackathonID uint) ([]Team, error) {
	var teams []Team

	result := d.db.WithContext(ctx).Preload("Members.User").
		Where("hackathon_id = ?", hackathonID).
		Find(&teams)
	if result.Error != nil {
		return nil, result.Error
	}

	return teams, nil
}

func (d *HackathonDAO) FindTeamByMember(ctx context.Context, hackathonID, userID uint) (Team, error) {
	var member TeamMember

	result := d.db.WithContext(ctx).
		Where("hackathon_id = ? AND user_id = ?", hackathonID, userID).
		First(&member)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return Team{}, ErrTeamNotFound
		}

		return Team{}, result.Error
	}

	return d.FindTeamByID(ctx, member.TeamID)
}

func (d *HackathonDAO) InsertInvitation(ctx context.Context, invitation Invitation) (Invitation, error) {
	result := d.db.WithContext(ctx).Create(&invitation)
	if result.Error != nil {
		return Invitation{}, result.Error
	}

	return invitation, nil
}

func (d *HackathonDAO) FindInvitationByID(ctx context.Context, id uint) (Invitation, error) {
	var invitation Invitation

	result := d.db.WithContext(ctx).First(&invitation, id)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return Invitation{}, ErrInvitationNotFound
		}

		return Invitation{}, result.Error
	}

	return invitation, nil
}

func (d *HackathonDAO) FindPendingInvitation(ctx context.Context, teamID, toID uint) (Invitation, error) {
	var invitation Invitation

	result := d.db.WithContext(ctx).
		Where("team_id = ? AND to_id = ? AND status = ?", teamID, toID, "pending").
		First(&invitation)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return Invitation{}, ErrInvitationNotFound
		}

		return Invitation{}, result.Error
	}

	return invitation, nil
}

func (d *HackathonDAO) FindInvitationsForUser(ctx context.Context, userID uint) ([]Invitation, error) {
	var invitations []Invitation

	result := d.db.WithContext(ctx).
		Where("to_id = ? AND status = ?", userID, "pending").
		Find(&invitations)
	if result.Error != nil {
		return nil, result.Error
	}

	return invitations, nil
}

// AcceptInvitation flips a pending invitation to accepted and adds the member
// in one transaction. The capacity guard re-counts inside the transaction.
func (d *HackathonDAO) AcceptInvitation(ctx context.Context, id uint, maxSize int) error {
	return d.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var invitation Invitation
		if err := tx.First(&invitation, id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrInvitationNotFound
			}

			return err
		}
		if invitation.Status != "pending" {
			return ErrInvitationDecided
		}

		var memberCount int64
		if err := tx.Model(&TeamMember{}).Where("team_id = ?", invitation.TeamID).Count(&memberCount).Error; err != nil {
			return err
		}
		if memberCount >= int64(maxSize) {
			return ErrTeamFull
		}

		update := tx.Model(&Invitation{}).
			Where("id = ? AND status = ?", id, "pending").
			Update("status", "accepted")
		if update.Error != nil {
			return update.Error
		}
		if update.RowsAffected == 0 {
			return ErrInvitationDecided
		}

		member := TeamMember{
			TeamID:      invitation.TeamID,
			HackathonID: invitation.HackathonID,
			UserID:      invitation.ToID,
		}
		if err := tx.Create(&member).Error; err != nil {
			var pgErr *pgconn.PgError
			if errors.As(err, &pgErr) && pgErr.Code == pgerrcode.UniqueViolation {
				return ErrAlreadyInTeam
			}

			return err
		}

		return nil
	})
}

func (d *HackathonDAO) RejectInvitation(ctx context.Context, id uint) error {
	result := d.db.WithContext(ctx).Model(&Invitation{}).
		Where("id = ? AND status = ?", id, "pending").
		Update("status", "rejected")
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		if _, err := d.FindInvitationByID(ctx, id); err != nil {
			return err
		}

		return ErrInvitationDecided
	}

	return nil
}
