package usecase

import "github.com/bluepin/backend/internal/domain"

// Tier thresholds on the total score
const (
	HighPotentialThreshold     = 75
	ModeratePotentialThreshold = 60
	LowPotentialThreshold      = 45
)

// Classify maps a total score to its potential tier
func Classify(total int) domain.Tier {
	switch {
	case total >= HighPotentialThreshold:
		return domain.TierHigh
	case total >= ModeratePotentialThreshold:
		return domain.TierModerate
	case total >= LowPotentialThreshold:
		return domain.TierLow
	default:
		return domain.TierAvoid
	}
}
