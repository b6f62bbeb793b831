package domain

import "time"

type Priority string

const (
	PriorityOverdue Priority = "overdue"
	PriorityHigh    Priority = "high"
	PriorityMedium  Priority = "medium"
	PriorityLow     Priority = "low"
)

func (p Priority) Label() string {
	switch p {
	case PriorityOverdue:
		return "Overdue"
	case PriorityHigh:
		return "High"
	case PriorityMedium:
		return "Medium"
	case PriorityLow:
		return "Low"
	}
	return ""
}

// DaysUntil counts calendar days from now's date to due's date.
func DaysUntil(due, now time.Time) int {
	d := time.Date(due.Year(), due.Month(), due.Day(), 0, 0, 0, 0, time.UTC)
	n := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	return int(d.Sub(n).Hours() / 24)
}

// DerivePriority maps a due date to a priority bucket. A nil due date has no priority.
func DerivePriority(due *Date, now time.Time) *Priority {
	if due == nil {
		return nil
	}
	var p Priority
	switch days := DaysUntil(due.Time, now); {
	case days < 0:
		p = PriorityOverdue
	case days <= 2:
		p = PriorityHigh
	case days <= 7:
		p = PriorityMedium
	default:
		p = PriorityLow
	}
	return &p
}
