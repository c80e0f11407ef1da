package presence

// Tier is the risk classification for presence against a day limit.
type Tier string

const (
	TierSafe     Tier = "safe"
	TierMonitor  Tier = "monitor"
	TierWarning  Tier = "warning"
	TierDanger   Tier = "danger"
	TierCritical Tier = "critical"
)

// Rank orders tiers from TierSafe (0) to TierCritical (4), for detecting
// tier-boundary crossings.
func (t Tier) Rank() int {
	switch t {
	case TierMonitor:
		return 1
	case TierWarning:
		return 2
	case TierDanger:
		return 3
	case TierCritical:
		return 4
	default:
		return 0
	}
}

// Band thresholds as fractions of the day limit. They mirror the canonical
// 175/150/100-of-183 alert points and scale proportionally, so a 90-day
// Schengen limit and a 365-day permit limit warn at equivalent exposure.
const (
	dangerFraction  = 175.0 / 183.0
	warningFraction = 150.0 / 183.0
	monitorFraction = 100.0 / 183.0
)

// Classification is the derived threshold status for one day limit.
type Classification struct {
	PercentUsed   float64 `json:"percentUsed"`
	RiskTier      Tier    `json:"riskTier"`
	DaysRemaining float64 `json:"daysRemaining"`
}

// Classify derives the risk tier, percent-to-limit and remaining days.
// A zero limit models "no day-count rule applies" (domicile-only
// jurisdictions) and always classifies safe.
func Classify(daysUsed float64, dayLimit int) Classification {
	if dayLimit == 0 {
		return Classification{PercentUsed: 0, RiskTier: TierSafe, DaysRemaining: 0}
	}

	limit := float64(dayLimit)
	ratio := daysUsed / limit

	c := Classification{PercentUsed: ratio * 100}
	if rem := limit - daysUsed; rem > 0 {
		c.DaysRemaining = rem
	}

	switch {
	case ratio >= 1:
		c.RiskTier = TierCritical
	case ratio >= dangerFraction:
		c.RiskTier = TierDanger
	case ratio >= warningFraction:
		c.RiskTier = TierWarning
	case ratio >= monitorFraction:
		c.RiskTier = TierMonitor
	default:
		c.RiskTier = TierSafe
	}
	return c
}
