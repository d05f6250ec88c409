package analytics

import (
	"tennis-stats-api/packages/core/models"
)

// UnknownSurface buckets matches recorded without a surface.
const UnknownSurface = "Unknown"

func result(m models.Match) string {
	if m.FinalResult == nil {
		return ""
	}
	return *m.FinalResult
}

func (r *Record) add(m models.Match) {
	r.Total++
	switch result(m) {
	case models.ResultWin:
		r.Wins++
	case models.ResultLoss:
		r.Losses++
	}
}

func (r *Record) finish() {
	r.WinRate = percentage(r.Wins, r.Total)
}

// ComputeOverallRecord counts wins and losses over all matches. Retired or
// unresolved matches still count toward Total.
func ComputeOverallRecord(matches []models.Match) Record {
	var rec Record
	for _, m := range matches {
		rec.add(m)
	}
	rec.finish()
	return rec
}

// ComputeBySurface groups records by the surface as stored, without case folding.
func ComputeBySurface(matches []models.Match) map[string]Record {
	bySurface := make(map[string]Record)
	for _, m := range matches {
		surface := UnknownSurface
		if m.Surface != nil && *m.Surface != "" {
			surface = *m.Surface
		}
		rec := bySurface[surface]
		rec.add(m)
		bySurface[surface] = rec
	}
	for surface, rec := range bySurface {
		rec.finish()
		bySurface[surface] = rec
	}
	return bySurface
}

// ComputeByFormat splits doubles from everything else, which counts as singles.
func ComputeByFormat(matches []models.Match) FormatBreakdown {
	var out FormatBreakdown
	for _, m := range matches {
		if m.Format == models.FormatDoubles {
			out.Doubles.add(m)
		} else {
			out.Singles.add(m)
		}
	}
	out.Singles.finish()
	out.Doubles.finish()
	return out
}
