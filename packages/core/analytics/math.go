package analytics

// ratio returns num/den, or 0 when den is not positive.
func ratio(num, den int) float64 {
	if den <= 0 {
		return 0
	}
	return float64(num) / float64(den)
}

func percentage(num, den int) float64 {
	return ratio(num, den) * 100
}
