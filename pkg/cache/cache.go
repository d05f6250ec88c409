// Package cache holds read-through query results keyed by logical resource.
// Writers call Invalidate with the resource key they touched; every entry
// whose key starts with it is dropped.
package cache

import (
	"context"
	"fmt"
	"time"
)

type Cache interface {
	// Get decodes the entry into dest and reports whether it was present.
	Get(ctx context.Context, key string, dest interface{}) (bool, error)
	Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error
	Invalidate(ctx context.Context, resourceKey string) error
}

// Resource keys. Query keys extend them with a ":" suffix.

func MatchesKey(teamID uint) string {
	return fmt.Sprintf("team:%d:matches", teamID)
}

func PlayersKey(teamID uint) string {
	return fmt.Sprintf("team:%d:players", teamID)
}

func MatchKey(teamID, matchID uint) string {
	return fmt.Sprintf("team:%d:matches:%d", teamID, matchID)
}

// Noop never stores anything.
type Noop struct{}

func (Noop) Get(context.Context, string, interface{}) (bool, error) {
	return false, nil
}

func (Noop) Set(context.Context, string, interface{}, time.Duration) error {
	return nil
}

func (Noop) Invalidate(context.Context, string) error {
	return nil
}
