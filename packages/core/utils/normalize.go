package utils

import "tennis-stats-api/packages/core/models"

// NeutralRating is the default for every 1-10 rating.
const NeutralRating = 5

func intPtr(v int) *int {
	return &v
}

// IntValue reads a nullable count, treating nil as zero.
func IntValue(p *int) int {
	if p == nil {
		return 0
	}
	return *p
}

func techCounts(s *models.SetPlayerTechStats) []**int {
	return []**int{
		&s.Aces, &s.DoubleFaults,
		&s.FirstServeIn, &s.FirstServeTotal, &s.FirstServePointsWon,
		&s.SecondServeIn, &s.SecondServeTotal, &s.SecondServePointsWon,
		&s.FirstReturnIn, &s.FirstReturnTotal,
		&s.SecondReturnIn, &s.SecondReturnTotal,
		&s.ReturnPointsWon, &s.ReturnPointsTotal,
		&s.ShortRalliesWon, &s.ShortRalliesLost,
		&s.LongRalliesWon, &s.LongRalliesLost,
		&s.ForcedErrors, &s.UnforcedErrors,
		&s.FhWinners, &s.FhUnforcedErrors,
		&s.BhWinners, &s.BhUnforcedErrors,
		&s.NetApproaches, &s.NetPointsWon, &s.NetErrors,
		&s.VolleyWinners, &s.VolleyErrors,
		&s.SmashWinners, &s.SmashErrors,
	}
}

func tacticalCounts(s *models.SetPlayerTacticalStats) []**int {
	return []**int{
		&s.DeuceGamesPlayed, &s.DeuceGamesWon,
		&s.BreakPointsFaced, &s.BreakPointsSaved,
		&s.BreakPointsCreated, &s.BreakPointsConverted,
		&s.CrossCourt, &s.DownTheLine,
		&s.DropShots, &s.Lobs, &s.ApproachShots,
	}
}

func ratings(s *models.SetPlayerPhysicalMentalStats) []**int {
	return []**int{
		&s.Energy, &s.Focus, &s.Composure,
		&s.Confidence, &s.Movement, &s.Resilience,
	}
}

// fill points every nil field at its own copy of def. Set fields are copied
// too so the result never aliases the input.
func fill(fields []**int, def int) {
	for _, f := range fields {
		if *f == nil {
			*f = intPtr(def)
		} else {
			*f = intPtr(**f)
		}
	}
}

// NormalizeTech returns a technical record with every count populated.
// A nil input yields an all-zero record.
func NormalizeTech(in *models.SetPlayerTechStats) models.SetPlayerTechStats {
	var out models.SetPlayerTechStats
	if in != nil {
		out = *in
	}
	fill(techCounts(&out), 0)
	return out
}

func NormalizeTactical(in *models.SetPlayerTacticalStats) models.SetPlayerTacticalStats {
	var out models.SetPlayerTacticalStats
	if in != nil {
		out = *in
	}
	fill(tacticalCounts(&out), 0)
	return out
}

// NormalizePhysicalMental defaults ratings to NeutralRating and notes to "".
func NormalizePhysicalMental(in *models.SetPlayerPhysicalMentalStats) models.SetPlayerPhysicalMentalStats {
	var out models.SetPlayerPhysicalMentalStats
	if in != nil {
		out = *in
	}
	fill(ratings(&out), NeutralRating)
	notes := ""
	if out.CoachNotes != nil {
		notes = *out.CoachNotes
	}
	out.CoachNotes = &notes
	return out
}

// NormalizeBundle normalizes all three records of a pair.
func NormalizeBundle(b models.SetStatsBundle) models.SetStatsBundle {
	b.Tech = NormalizeTech(&b.Tech)
	b.Tactical = NormalizeTactical(&b.Tactical)
	b.PhysicalMental = NormalizePhysicalMental(&b.PhysicalMental)
	return b
}
