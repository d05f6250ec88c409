package services

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strings"

	"tennis-stats-api/packages/auth/models"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

var slugPattern = regexp.MustCompile(`[^a-z0-9]+`)

type MembershipService struct {
	db     *gorm.DB
	emails EmailService
	log    *logrus.Entry
}

func NewMembershipService(db *gorm.DB, emails EmailService, log *logrus.Entry) *MembershipService {
	return &MembershipService{
		db:     db,
		emails: emails,
		log:    log,
	}
}

// EnsureProfile creates the profile row for a token subject on first sight
// and keeps its email in sync.
func (s *MembershipService) EnsureProfile(ctx context.Context, profileID, email string) (*models.Profile, error) {
	if profileID == "" {
		return nil, ErrMissingProfileID
	}

	var profile models.Profile
	err := s.db.WithContext(ctx).
		Where(models.Profile{ID: profileID}).
		Attrs(models.Profile{Email: email}).
		FirstOrCreate(&profile).Error
	if err != nil {
		return nil, fmt.Errorf("failed to load profile: %w", err)
	}

	if email != "" && profile.Email != email {
		profile.Email = email
		if err := s.db.WithContext(ctx).Model(&models.Profile{}).Where("id = ?", profileID).Update("email", email).Error; err != nil {
			return nil, fmt.Errorf("failed to update profile email: %w", err)
		}
	}
	return &profile, nil
}

// ResolveAuthContext finds the caller's approved membership. teamID selects a
// specific team; zero picks the oldest approved membership.
func (s *MembershipService) ResolveAuthContext(ctx context.Context, profileID, email string, teamID uint) (models.AuthContext, error) {
	if profileID == "" {
		return models.AuthContext{}, ErrMissingProfileID
	}

	query := s.db.WithContext(ctx).
		Where("profile_id = ? AND status = ?", profileID, models.StatusApproved)
	if teamID != 0 {
		query = query.Where("team_id = ?", teamID)
	}

	var member models.TeamMember
	if err := query.Order("created_at ASC, id ASC").First(&member).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.AuthContext{}, ErrNoMembership
		}
		return models.AuthContext{}, fmt.Errorf("failed to resolve membership: %w", err)
	}

	return models.AuthContext{
		ProfileID: profileID,
		Email:     email,
		TeamID:    member.TeamID,
		Role:      member.Role,
	}, nil
}

// CreateTeam creates a team and makes the caller its approved admin.
func (s *MembershipService) CreateTeam(ctx context.Context, profileID, email string, req models.CreateTeamRequest) (*models.Team, error) {
	if _, err := s.EnsureProfile(ctx, profileID, email); err != nil {
		return nil, err
	}

	name := strings.TrimSpace(req.Name)
	team := models.Team{
		Name:      name,
		Slug:      s.generateUniqueSlug(ctx, name),
		CreatedBy: profileID,
	}

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&team).Error; err != nil {
			return err
		}
		member := models.TeamMember{
			TeamID:    team.ID,
			ProfileID: profileID,
			Role:      models.RoleAdmin,
			Status:    models.StatusApproved,
		}
		return tx.Create(&member).Error
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create team: %w", err)
	}

	s.log.WithFields(logrus.Fields{"team_id": team.ID, "profile_id": profileID}).Info("Team created")
	return &team, nil
}

// RequestJoin files a pending coach membership for the team with the given
// slug. A previously rejected request is reopened.
func (s *MembershipService) RequestJoin(ctx context.Context, profileID, email, slug string) (*models.TeamMember, error) {
	if _, err := s.EnsureProfile(ctx, profileID, email); err != nil {
		return nil, err
	}

	team, err := s.GetTeamBySlug(ctx, slug)
	if err != nil {
		return nil, err
	}

	var member models.TeamMember
	err = s.db.WithContext(ctx).
		Where("team_id = ? AND profile_id = ?", team.ID, profileID).
		First(&member).Error
	switch {
	case err == nil:
		if member.Status != models.StatusRejected {
			return nil, ErrAlreadyMember
		}
		member.Status = models.StatusPending
		member.ReviewedBy = nil
		err := s.db.WithContext(ctx).Model(&models.TeamMember{}).Where("id = ?", member.ID).
			Updates(map[string]interface{}{"status": models.StatusPending, "reviewed_by": nil}).Error
		if err != nil {
			return nil, fmt.Errorf("failed to reopen join request: %w", err)
		}
	case errors.Is(err, gorm.ErrRecordNotFound):
		member = models.TeamMember{
			TeamID:    team.ID,
			ProfileID: profileID,
			Role:      models.RoleCoach,
			Status:    models.StatusPending,
		}
		if err := s.db.WithContext(ctx).Create(&member).Error; err != nil {
			return nil, fmt.Errorf("failed to create join request: %w", err)
		}
	default:
		return nil, fmt.Errorf("failed to load membership: %w", err)
	}

	s.notifyAdmins(ctx, team, email)
	return &member, nil
}

func (s *MembershipService) ListMembers(ctx context.Context, auth models.AuthContext) ([]models.TeamMember, error) {
	var members []models.TeamMember
	err := s.db.WithContext(ctx).
		Where("team_id = ?", auth.TeamID).
		Preload("Profile").
		Order("created_at ASC").
		Find(&members).Error
	if err != nil {
		return nil, err
	}
	return members, nil
}

// ListMemberships returns every membership of a profile, whatever its status.
func (s *MembershipService) ListMemberships(ctx context.Context, profileID string) ([]models.TeamMember, error) {
	var members []models.TeamMember
	err := s.db.WithContext(ctx).
		Where("profile_id = ?", profileID).
		Preload("Team").
		Order("created_at ASC").
		Find(&members).Error
	if err != nil {
		return nil, err
	}
	return members, nil
}

// ReviewMember approves or rejects a membership of the caller's team.
func (s *MembershipService) ReviewMember(ctx context.Context, auth models.AuthContext, memberID uint, req models.ReviewMemberRequest) (*models.TeamMember, error) {
	if !auth.IsAdmin() {
		return nil, ErrNotAdmin
	}

	var member models.TeamMember
	err := s.db.WithContext(ctx).
		Where("id = ? AND team_id = ?", memberID, auth.TeamID).
		Preload("Profile").
		Preload("Team").
		First(&member).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrMemberNotFound
		}
		return nil, err
	}
	if member.ProfileID == auth.ProfileID {
		return nil, ErrCannotReviewSelf
	}
	if req.Role != nil && !models.IsValidRole(*req.Role) {
		return nil, ErrInvalidRole
	}

	reviewer := auth.ProfileID
	member.Status = req.Status
	member.ReviewedBy = &reviewer
	if req.Role != nil {
		member.Role = *req.Role
	}

	err = s.db.WithContext(ctx).Model(&models.TeamMember{}).Where("id = ?", member.ID).Updates(map[string]interface{}{
		"status":      member.Status,
		"role":        member.Role,
		"reviewed_by": reviewer,
	}).Error
	if err != nil {
		return nil, fmt.Errorf("failed to review member: %w", err)
	}

	if member.Profile.Email != "" {
		approved := member.Status == models.StatusApproved
		if err := s.emails.SendMembershipDecisionEmail(member.Profile.Email, member.Team.Name, approved); err != nil {
			s.log.WithError(err).WithField("member_id", member.ID).Warn("Failed to send membership decision email")
		}
	}
	return &member, nil
}

func (s *MembershipService) GetTeamBySlug(ctx context.Context, slug string) (*models.Team, error) {
	var team models.Team
	if err := s.db.WithContext(ctx).Where("slug = ?", slug).First(&team).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTeamNotFound
		}
		return nil, err
	}
	return &team, nil
}

func (s *MembershipService) notifyAdmins(ctx context.Context, team *models.Team, requester string) {
	var admins []models.TeamMember
	err := s.db.WithContext(ctx).
		Where("team_id = ? AND role = ? AND status = ?", team.ID, models.RoleAdmin, models.StatusApproved).
		Preload("Profile").
		Find(&admins).Error
	if err != nil {
		s.log.WithError(err).WithField("team_id", team.ID).Warn("Failed to load team admins")
		return
	}

	for _, admin := range admins {
		if admin.Profile.Email == "" {
			continue
		}
		if err := s.emails.SendJoinRequestEmail(admin.Profile.Email, team.Name, requester); err != nil {
			s.log.WithError(err).WithField("team_id", team.ID).Warn("Failed to send join request email")
		}
	}
}

func generateSlug(name string) string {
	slug := slugPattern.ReplaceAllString(strings.ToLower(name), "-")
	slug = strings.Trim(slug, "-")
	if slug == "" {
		slug = "team"
	}
	return slug
}

func (s *MembershipService) generateUniqueSlug(ctx context.Context, name string) string {
	baseSlug := generateSlug(name)
	slug := baseSlug
	counter := 1

	for {
		var count int64
		s.db.WithContext(ctx).Model(&models.Team{}).Where("slug = ?", slug).Count(&count)
		if count == 0 {
			break
		}
		slug = fmt.Sprintf("%s-%d", baseSlug, counter)
		counter++
	}

	return slug
}
