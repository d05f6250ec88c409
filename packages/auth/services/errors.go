package services

import (
	"errors"

	"tennis-stats-api/packages/auth/models"
)

var (
	ErrNoMembership     = models.ErrNoMembership
	ErrTeamNotFound     = errors.New("team not found")
	ErrMemberNotFound   = errors.New("member not found")
	ErrAlreadyMember    = errors.New("already a member of this team")
	ErrNotAdmin         = errors.New("team admin role required")
	ErrCannotReviewSelf = errors.New("cannot review your own membership")
	ErrMissingProfileID = errors.New("profile id is required")
	ErrInvalidRole      = errors.New("invalid role")
)
