package utils

import (
	"errors"

	"tennis-stats-api/packages/core/models"
)

// EventKey names a tally counter of the live input mode.
type EventKey string

const (
	EventFhWinners       EventKey = "fhWinners"
	EventBhWinners       EventKey = "bhWinners"
	EventForcedErrors    EventKey = "forcedErrors"
	EventUnforcedErrors  EventKey = "unforcedErrors"
	EventAces            EventKey = "aces"
	EventDoubleFaults    EventKey = "doubleFaults"
	EventNetErrors       EventKey = "netErrors"
	EventLongRalliesWon  EventKey = "longRalliesWon"
	EventLongRalliesLost EventKey = "longRalliesLost"
	EventVolleyWinners   EventKey = "volleyWinners"
	EventVolleyErrors    EventKey = "volleyErrors"
)

var ErrUnknownEvent = errors.New("unknown event")

// AllEventKeys lists the tracked events in display order.
func AllEventKeys() []EventKey {
	return []EventKey{
		EventFhWinners, EventBhWinners,
		EventForcedErrors, EventUnforcedErrors,
		EventAces, EventDoubleFaults,
		EventNetErrors,
		EventLongRalliesWon, EventLongRalliesLost,
		EventVolleyWinners, EventVolleyErrors,
	}
}

// EventCounters are the one-tap tallies. Values never go below zero.
type EventCounters struct {
	FhWinners       int `json:"fhWinners"`
	BhWinners       int `json:"bhWinners"`
	ForcedErrors    int `json:"forcedErrors"`
	UnforcedErrors  int `json:"unforcedErrors"`
	Aces            int `json:"aces"`
	DoubleFaults    int `json:"doubleFaults"`
	NetErrors       int `json:"netErrors"`
	LongRalliesWon  int `json:"longRalliesWon"`
	LongRalliesLost int `json:"longRalliesLost"`
	VolleyWinners   int `json:"volleyWinners"`
	VolleyErrors    int `json:"volleyErrors"`
}

func (c *EventCounters) field(key EventKey) *int {
	switch key {
	case EventFhWinners:
		return &c.FhWinners
	case EventBhWinners:
		return &c.BhWinners
	case EventForcedErrors:
		return &c.ForcedErrors
	case EventUnforcedErrors:
		return &c.UnforcedErrors
	case EventAces:
		return &c.Aces
	case EventDoubleFaults:
		return &c.DoubleFaults
	case EventNetErrors:
		return &c.NetErrors
	case EventLongRalliesWon:
		return &c.LongRalliesWon
	case EventLongRalliesLost:
		return &c.LongRalliesLost
	case EventVolleyWinners:
		return &c.VolleyWinners
	case EventVolleyErrors:
		return &c.VolleyErrors
	}
	return nil
}

// Get returns the value of key, or 0 for an unknown key.
func (c EventCounters) Get(key EventKey) int {
	if f := c.field(key); f != nil {
		return *f
	}
	return 0
}

func (c *EventCounters) Increment(key EventKey) error {
	f := c.field(key)
	if f == nil {
		return ErrUnknownEvent
	}
	*f++
	return nil
}

// Decrement lowers key by one, stopping at zero.
func (c *EventCounters) Decrement(key EventKey) error {
	f := c.field(key)
	if f == nil {
		return ErrUnknownEvent
	}
	if *f > 0 {
		*f--
	}
	return nil
}

func (c EventCounters) IsZero() bool {
	return c == EventCounters{}
}

func techField(s *models.SetPlayerTechStats, key EventKey) **int {
	switch key {
	case EventFhWinners:
		return &s.FhWinners
	case EventBhWinners:
		return &s.BhWinners
	case EventForcedErrors:
		return &s.ForcedErrors
	case EventUnforcedErrors:
		return &s.UnforcedErrors
	case EventAces:
		return &s.Aces
	case EventDoubleFaults:
		return &s.DoubleFaults
	case EventNetErrors:
		return &s.NetErrors
	case EventLongRalliesWon:
		return &s.LongRalliesWon
	case EventLongRalliesLost:
		return &s.LongRalliesLost
	case EventVolleyWinners:
		return &s.VolleyWinners
	case EventVolleyErrors:
		return &s.VolleyErrors
	}
	return nil
}

// MergeCounters writes every counter over its detailed field and leaves the
// other fields as they are. Manual edits to a counted field are overwritten.
func MergeCounters(counters EventCounters, existing models.SetPlayerTechStats) models.SetPlayerTechStats {
	out := existing
	for _, key := range AllEventKeys() {
		*techField(&out, key) = intPtr(counters.Get(key))
	}
	return out
}

// CountersFromTech seeds the tallies from a saved technical record.
func CountersFromTech(s models.SetPlayerTechStats) EventCounters {
	var c EventCounters
	for _, key := range AllEventKeys() {
		*c.field(key) = IntValue(*techField(&s, key))
	}
	return c
}

// HasActivity reports whether anything worth saving was recorded: a non-zero
// counter or any serve or return attempt.
func HasActivity(counters EventCounters, tech models.SetPlayerTechStats) bool {
	if !counters.IsZero() {
		return true
	}
	return IntValue(tech.FirstServeTotal) > 0 ||
		IntValue(tech.SecondServeTotal) > 0 ||
		IntValue(tech.FirstReturnTotal) > 0 ||
		IntValue(tech.SecondReturnTotal) > 0
}
