package config

import "errors"

var (
	ErrMissingDatabaseURL = errors.New("database_url must not be empty")
	ErrMissingJWTSecret   = errors.New("jwt_secret must not be empty")
	ErrInvalidPort        = errors.New("port must not be empty")
	ErrInvalidMinMatches  = errors.New("top_players_min_matches must be positive")
)
