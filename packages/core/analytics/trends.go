package analytics

import (
	"sort"

	"tennis-stats-api/packages/core/models"
	"tennis-stats-api/packages/core/utils"
)

type techTotals struct {
	firstServeIn    int
	firstServeTotal int
	winners         int
	unforcedErrors  int
	netApproaches   int
	netPointsWon    int
}

func (t *techTotals) add(s models.SetPlayerTechStats) {
	t.firstServeIn += utils.IntValue(s.FirstServeIn)
	t.firstServeTotal += utils.IntValue(s.FirstServeTotal)
	t.winners += utils.IntValue(s.FhWinners) + utils.IntValue(s.BhWinners) +
		utils.IntValue(s.VolleyWinners) + utils.IntValue(s.SmashWinners)
	t.unforcedErrors += utils.IntValue(s.FhUnforcedErrors) + utils.IntValue(s.BhUnforcedErrors) +
		utils.IntValue(s.VolleyErrors) + utils.IntValue(s.SmashErrors)
	t.netApproaches += utils.IntValue(s.NetApproaches)
	t.netPointsWon += utils.IntValue(s.NetPointsWon)
}

func (t *techTotals) addMatch(m models.Match) {
	for _, set := range m.Sets {
		for _, row := range set.TechStats {
			t.add(row)
		}
	}
}

func month(date string) string {
	if len(date) < 7 {
		return date
	}
	return date[:7]
}

// ComputeMonthlyTrends buckets matches by the YYYY-MM prefix of their date.
// First-serve percentage is pooled over every technical row of the month.
func ComputeMonthlyTrends(matches []models.Match) []MonthlyTrend {
	type bucket struct {
		record Record
		tech   techTotals
	}
	buckets := make(map[string]*bucket)
	for _, m := range matches {
		key := month(m.Date)
		b, ok := buckets[key]
		if !ok {
			b = &bucket{}
			buckets[key] = b
		}
		b.record.add(m)
		b.tech.addMatch(m)
	}

	months := make([]string, 0, len(buckets))
	for key := range buckets {
		months = append(months, key)
	}
	sort.Strings(months)

	trends := make([]MonthlyTrend, 0, len(months))
	for _, key := range months {
		b := buckets[key]
		b.record.finish()
		trends = append(trends, MonthlyTrend{
			Month:                  key,
			Wins:                   b.record.Wins,
			Losses:                 b.record.Losses,
			Matches:                b.record.Total,
			WinRate:                b.record.WinRate,
			FirstServePercentage:   percentage(b.tech.firstServeIn, b.tech.firstServeTotal),
			UnforcedErrorsPerMatch: ratio(b.tech.unforcedErrors, b.record.Total),
		})
	}
	return trends
}

// ComputeTechnicalAverages pools technical rows across all sets. Winners and
// unforced errors are per match, not per set.
func ComputeTechnicalAverages(matches []models.Match) TechnicalAverages {
	var t techTotals
	for _, m := range matches {
		t.addMatch(m)
	}
	return TechnicalAverages{
		FirstServePercentage:   percentage(t.firstServeIn, t.firstServeTotal),
		WinnersPerMatch:        ratio(t.winners, len(matches)),
		UnforcedErrorsPerMatch: ratio(t.unforcedErrors, len(matches)),
		NetSuccessPercentage:   percentage(t.netPointsWon, t.netApproaches),
	}
}
