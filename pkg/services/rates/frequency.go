package rates

const (
	FrequencyMonthly    = "Monthly"
	FrequencyQuarterly  = "Quarterly"
	FrequencySemiAnnual = "Semi-annual"
	FrequencyAnnual     = "Annual"
)

// PeriodsForFrequency returns the number of periods that make up one year for
// the given frequency label. Unknown labels fall back to Monthly (12): most
// series in scope are monthly, so an unrecognized label is treated as such
// rather than rejected.
func PeriodsForFrequency(frequency string) int {
	switch frequency {
	case FrequencyMonthly:
		return 12
	case FrequencyQuarterly:
		return 4
	case FrequencySemiAnnual:
		return 2
	case FrequencyAnnual:
		return 1
	default:
		return 12
	}
}
