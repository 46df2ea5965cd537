package fraud

// Risk bands attached to scored transactions.
const (
	BandLowRisk    = "LOW_RISK"
	BandMediumRisk = "MEDIUM_RISK"
	BandHighRisk   = "HIGH_RISK"
)

// HighRiskThreshold is the score above which a transaction is high risk.
const HighRiskThreshold = 7

// RiskLevel maps a numeric risk score to its band. Both thresholds are
// strict greater-than: 7 is still medium, 4 is still low.
func RiskLevel(score int) string {
	switch {
	case score > HighRiskThreshold:
		return BandHighRisk
	case score > 4:
		return BandMediumRisk
	default:
		return BandLowRisk
	}
}
