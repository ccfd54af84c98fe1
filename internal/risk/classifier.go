package risk

// Level is the discrete risk band derived from a 0-100 score.
type Level string

const (
	LevelLow      Level = "low"
	LevelMedium   Level = "medium"
	LevelHigh     Level = "high"
	LevelCritical Level = "critical"
)

// Classify maps a score to its band. Boundaries are inclusive on the lower
// bound of each band; out-of-range values still classify (negative is low,
// above 100 is critical).
func Classify(score float64) Level {
	switch {
	case score >= 75:
		return LevelCritical
	case score >= 50:
		return LevelHigh
	case score >= 25:
		return LevelMedium
	default:
		return LevelLow
	}
}

// Color returns the fixed display color for a level. The palette is part of
// the dashboard contract, not configuration.
func (l Level) Color() string {
	switch l {
	case LevelCritical:
		return "#ef4444"
	case LevelHigh:
		return "#f97316"
	case LevelMedium:
		return "#eab308"
	default:
		return "#22c55e"
	}
}

// Rank places levels on the ordinal scale low(0) < medium(1) < high(2) <
// critical(3), used for severity_min gating.
func (l Level) Rank() int {
	switch l {
	case LevelCritical:
		return 3
	case LevelHigh:
		return 2
	case LevelMedium:
		return 1
	default:
		return 0
	}
}

// ParseLevel maps a catalog string to a Level. Unrecognized values rank as
// low so a malformed severity_min never hides a measure.
func ParseLevel(s string) Level {
	switch s {
	case "critical":
		return LevelCritical
	case "high":
		return LevelHigh
	case "medium":
		return LevelMedium
	default:
		return LevelLow
	}
}
