package core

import (
	"fmt"
	"strings"

	"github.com/google/uuid"
)

// ID represents a domain identifier
type ID string

// NewID creates a new unique identifier using UUID v7 for time-ordered generation
func NewID() ID {
	id, err := uuid.NewV7()
	if err != nil {
		// Fallback to v4 if v7 fails
		id = uuid.New()
	}
	return ID(id.String())
}

// String returns the string representation
func (id ID) String() string {
	return string(id)
}

// IsEmpty checks if the ID is empty
func (id ID) IsEmpty() bool {
	return id == ""
}

// Domain-specific ID types
type (
	// ResultID identifies one assembled statistic result.
	ResultID ID
	// VariableKey names a data variable within a dataset (e.g. "pr", "tas").
	VariableKey string
	// StatisticKey names a registered statistic (e.g. "percentile", "eda").
	StatisticKey string
)

func (id ResultID) String() string    { return ID(id).String() }
func (k VariableKey) String() string  { return string(k) }
func (k StatisticKey) String() string { return string(k) }

// ParseVariableKey parses a string into VariableKey
func ParseVariableKey(s string) (VariableKey, error) {
	if strings.TrimSpace(s) == "" {
		return "", fmt.Errorf("variable key cannot be empty")
	}
	return VariableKey(s), nil
}

// ParseStatisticKey parses a string into StatisticKey
func ParseStatisticKey(s string) (StatisticKey, error) {
	if strings.TrimSpace(s) == "" {
		return "", fmt.Errorf("statistic key cannot be empty")
	}
	return StatisticKey(s), nil
}
