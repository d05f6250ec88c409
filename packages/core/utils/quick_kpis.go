package utils

import (
	"encoding/json"
	"strings"

	"tennis-stats-api/packages/core/models"
)

// QuickKPIPrefix marks the coach-notes line that carries the quick KPIs.
const QuickKPIPrefix = "QUICK_KPIs:"

func isKPILine(line string) bool {
	return strings.HasPrefix(strings.TrimSpace(line), QuickKPIPrefix)
}

// ParseQuickKPIs recovers the quick KPIs embedded in coach notes. Missing or
// malformed data yields empty KPIs.
func ParseQuickKPIs(notes string) models.QuickKPIs {
	for _, line := range strings.Split(notes, "\n") {
		if !isKPILine(line) {
			continue
		}
		payload := strings.TrimPrefix(strings.TrimSpace(line), QuickKPIPrefix)
		var kpis models.QuickKPIs
		if err := json.Unmarshal([]byte(payload), &kpis); err != nil {
			return models.QuickKPIs{}
		}
		return kpis
	}
	return models.QuickKPIs{}
}

// StripQuickKPIs removes every quick KPI line from the notes.
func StripQuickKPIs(notes string) string {
	lines := strings.Split(notes, "\n")
	kept := lines[:0]
	for _, line := range lines {
		if !isKPILine(line) {
			kept = append(kept, line)
		}
	}
	return strings.TrimRight(strings.Join(kept, "\n"), "\n")
}

// EmbedQuickKPIs replaces any previous quick KPI line with one for kpis,
// appended after the free text. Empty KPIs only strip the old line.
func EmbedQuickKPIs(notes string, kpis models.QuickKPIs) string {
	stripped := StripQuickKPIs(notes)
	if kpis.IsEmpty() {
		return stripped
	}

	data, err := json.Marshal(kpis)
	if err != nil {
		return stripped
	}
	line := QuickKPIPrefix + string(data)
	if stripped == "" {
		return line
	}
	return stripped + "\n" + line
}
