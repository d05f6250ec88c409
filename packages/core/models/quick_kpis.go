package models

// Quick KPI levels, best first.
const (
	KPIExcellent = "excellent"
	KPIGood      = "good"
	KPIAverage   = "average"
	KPIPoor      = "poor"
	KPIVeryPoor  = "very_poor"
)

// QuickKPIs is a coarse qualitative snapshot of a set. It travels inside the
// coach notes, so the JSON names are part of the stored format.
type QuickKPIs struct {
	ServeQuality     string `json:"serveQuality,omitempty" binding:"omitempty,oneof=excellent good average poor very_poor"`
	ReturnQuality    string `json:"returnQuality,omitempty" binding:"omitempty,oneof=excellent good average poor very_poor"`
	RallyConsistency string `json:"rallyConsistency,omitempty" binding:"omitempty,oneof=excellent good average poor very_poor"`
	NetPlay          string `json:"netPlay,omitempty" binding:"omitempty,oneof=excellent good average poor very_poor"`
	Movement         string `json:"movement,omitempty" binding:"omitempty,oneof=excellent good average poor very_poor"`
	MentalState      string `json:"mentalState,omitempty" binding:"omitempty,oneof=excellent good average poor very_poor"`
}

func (k QuickKPIs) IsEmpty() bool {
	return k == QuickKPIs{}
}
