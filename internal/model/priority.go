package model

import (
	"errors"
	"strconv"
	"strings"
)

// Priority is the urgency level of a task. The zero value is PriorityLow.
type Priority int

const (
	PriorityLow Priority = iota
	PriorityMedium
	PriorityHigh
)

// ErrInvalidPriority is returned by ParsePriority for text that names no level.
var ErrInvalidPriority = errors.New("invalid priority")

var priorityNames = [...]string{
	PriorityLow:    "Low",
	PriorityMedium: "Medium",
	PriorityHigh:   "High",
}

// Priorities lists every declared level in ascending order.
func Priorities() []Priority {
	return []Priority{PriorityLow, PriorityMedium, PriorityHigh}
}

// Valid reports whether p is a declared level.
func (p Priority) Valid() bool {
	return p >= PriorityLow && p <= PriorityHigh
}

func (p Priority) String() string {
	if !p.Valid() {
		return strconv.Itoa(int(p))
	}
	return priorityNames[p]
}

// ParsePriority resolves a level by its exact name ("Low", "Medium", "High")
// or by its number ("0", "1", "2"). Surrounding white space is ignored.
func ParsePriority(text string) (Priority, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return PriorityLow, ErrInvalidPriority
	}
	for i, name := range priorityNames {
		if text == name {
			return Priority(i), nil
		}
	}
	if n, err := strconv.Atoi(text); err == nil {
		if p := Priority(n); p.Valid() {
			return p, nil
		}
	}
	return PriorityLow, ErrInvalidPriority
}
