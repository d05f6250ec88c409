package services

import (
	"errors"

	"tennis-stats-api/packages/core/analytics"
)

var (
	ErrPlayerNotFound          = errors.New("player not found")
	ErrMatchNotFound           = errors.New("match not found")
	ErrSetNotFound             = errors.New("set not found")
	ErrMatchPlayerNotFound     = errors.New("match player not found")
	ErrStatsPairMismatch       = errors.New("match player does not play in this set's match")
	ErrInvalidParticipants     = errors.New("invalid match participants")
	ErrInvalidStatusTransition = errors.New("match status can only move forward")
	ErrSetAlreadyStarted       = errors.New("set already started")
	ErrSetAlreadyCompleted     = errors.New("set already completed")
	ErrSamePlayer              = analytics.ErrSamePlayer
)
