// Package testutil provides shared test utilities and fixtures.
package testutil

import (
	"fmt"
	"strings"
	"testing"

	"github.com/banshee-data/flatland/internal/shadow"
)

// AssertNoError fails the test if err is not nil.
func AssertNoError(t *testing.T, err error) {
	t.Helper()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

// AssertError fails the test if err is nil.
func AssertError(t *testing.T, err error) {
	t.Helper()
	if err == nil {
		t.Fatal("expected error, got nil")
	}
}

// FlatlandInput renders the textual input for the given angle and obstacles.
func FlatlandInput(angle float64, obstacles ...shadow.Obstacle) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%g %d\n", angle, len(obstacles))
	for _, o := range obstacles {
		fmt.Fprintf(&b, "%g %g\n", o.Position, o.Height)
	}
	return b.String()
}

