package core

import (
	"strings"
	"testing"
)

func TestNewIDIsUniqueAndOrdered(t *testing.T) {
	a := NewID()
	b := NewID()
	if a == b {
		t.Fatal("consecutive IDs must differ")
	}
	if a.IsEmpty() || b.IsEmpty() {
		t.Fatal("generated IDs must not be empty")
	}
	// UUID v7 sorts by generation time.
	if strings.Compare(a.String(), b.String()) >= 0 {
		t.Fatalf("IDs not time-ordered: %s then %s", a, b)
	}
}

func TestParseVariableKey(t *testing.T) {
	k, err := ParseVariableKey("pr")
	if err != nil || k != "pr" {
		t.Fatalf("ParseVariableKey: %v %v", k, err)
	}
	if _, err := ParseVariableKey("  "); err == nil {
		t.Fatal("blank variable key must be rejected")
	}
}

func TestParseStatisticKey(t *testing.T) {
	k, err := ParseStatisticKey("seasonal cycle")
	if err != nil || k != "seasonal cycle" {
		t.Fatalf("ParseStatisticKey: %v %v", k, err)
	}
	if _, err := ParseStatisticKey(""); err == nil {
		t.Fatal("empty statistic key must be rejected")
	}
}
