package core

import "strings"

// Severity classifies a single compliance or content issue.
type Severity string

// Severity values, ordered low to high.
const (
	SeverityLow    Severity = "low"
	SeverityMedium Severity = "medium"
	SeverityHigh   Severity = "high"
)

// AtLeast reports whether s is at or above the given severity.
func (s Severity) AtLeast(min Severity) bool {
	return severityRank(s) >= severityRank(min)
}

func severityRank(s Severity) int {
	switch s {
	case SeverityHigh:
		return 3
	case SeverityMedium:
		return 2
	case SeverityLow:
		return 1
	default:
		return 0
	}
}

// ParseSeverity normalizes free-form model output into a Severity,
// defaulting to low for anything unrecognized.
func ParseSeverity(s string) Severity {
	switch Severity(strings.ToLower(strings.TrimSpace(s))) {
	case SeverityHigh:
		return SeverityHigh
	case SeverityMedium:
		return SeverityMedium
	default:
		return SeverityLow
	}
}

// RiskLevel banding for 0-100 risk scores.
type RiskLevel string

// Risk levels from lowest to highest.
const (
	RiskLow      RiskLevel = "LOW"
	RiskMedium   RiskLevel = "MEDIUM"
	RiskHigh     RiskLevel = "HIGH"
	RiskCritical RiskLevel = "CRITICAL"
)

// RiskLevelForScore maps a 0-100 score to its band:
// >=80 CRITICAL, >=60 HIGH, >=40 MEDIUM, else LOW.
func RiskLevelForScore(score float64) RiskLevel {
	switch {
	case score >= 80:
		return RiskCritical
	case score >= 60:
		return RiskHigh
	case score >= 40:
		return RiskMedium
	default:
		return RiskLow
	}
}

// AtLeast reports whether l is at or above the given level.
func (l RiskLevel) AtLeast(min RiskLevel) bool {
	return riskRank(l) >= riskRank(min)
}

func riskRank(l RiskLevel) int {
	switch l {
	case RiskCritical:
		return 4
	case RiskHigh:
		return 3
	case RiskMedium:
		return 2
	case RiskLow:
		return 1
	default:
		return 0
	}
}

// Action is the recommended handling for analyzed content.
type Action string

// Recommended actions by final risk score band.
const (
	ActionAllowWithMonitoring Action = "ALLOW_WITH_MONITORING"
	ActionFlagForReview       Action = "FLAG_FOR_REVIEW"
	ActionReject              Action = "REJECT"
)

// ActionForScore maps a final 0-100 risk score to the recommended action:
// <60 monitored allow, 60-84 review, >=85 reject.
func ActionForScore(score float64) Action {
	switch {
	case score >= 85:
		return ActionReject
	case score >= 60:
		return ActionFlagForReview
	default:
		return ActionAllowWithMonitoring
	}
}
