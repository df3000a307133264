package domain

import "time"

type SessionID string
type TurnID string
type PersonaID string
type VoiceID string

type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// RiskLevel is ordered: Low < Medium < High < Critical.
type RiskLevel string

const (
	RiskLow      RiskLevel = "Low"
	RiskMedium   RiskLevel = "Medium"
	RiskHigh     RiskLevel = "High"
	RiskCritical RiskLevel = "Critical"
)

// ValidRiskLevel reports whether s is one of the four known levels.
func ValidRiskLevel(s string) bool {
	switch RiskLevel(s) {
	case RiskLow, RiskMedium, RiskHigh, RiskCritical:
		return true
	}
	return false
}

// RequiresCrisisAlert reports whether the level must raise the sticky
// session-level crisis alert.
func (l RiskLevel) RequiresCrisisAlert() bool {
	return l == RiskHigh || l == RiskCritical
}

// RiskState tracks the lifecycle of a user turn's assessment.
// A turn moves Unset -> Pending -> Resolved and never back.
type RiskState string

const (
	RiskStateUnset    RiskState = "unset"
	RiskStatePending  RiskState = "pending"
	RiskStateResolved RiskState = "resolved"
)

// Coordinates is a geographic position obtained from the location lookup.
type Coordinates struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

type Timestamp = time.Time
