// Package input reads and validates the textual description of a
// flatland: a header line "<angle> <count>" followed by count lines of
// "<position> <height>".
package input

import (
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/banshee-data/flatland/internal/shadow"
	"github.com/banshee-data/flatland/internal/units"
)

// Problem is a fully validated input.
type Problem struct {
	AngleDegrees float64
	Obstacles    []shadow.Obstacle
}

// ReadAll reads the whole input. Any read failure is reported as ErrIO.
func ReadAll(r io.Reader) (string, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return "", fmt.Errorf("failed to read input: %w: %w", err, ErrIO)
	}
	return string(data), nil
}

// Lines hands out the input one line at a time. Lines are split on \n with
// one trailing \r stripped, and a final terminator does not start an empty
// line. There is no limit on line length.
type Lines struct {
	lines []string
	n     int
}

// NewLines returns a Lines over text.
func NewLines(text string) *Lines {
	lines := strings.Split(text, "\n")
	if lines[len(lines)-1] == "" {
		lines = lines[:len(lines)-1]
	}
	for i, line := range lines {
		lines[i] = strings.TrimSuffix(line, "\r")
	}
	return &Lines{lines: lines}
}

// Next returns the next line and false once the input is exhausted.
func (l *Lines) Next() (string, bool) {
	if l.n >= len(l.lines) {
		return "", false
	}
	l.n++
	return l.lines[l.n-1], true
}

// Number returns the 1-based number of the line last returned by Next.
func (l *Lines) Number() int {
	return l.n
}

// ParseHeader reads the header line and returns the sun angle in degrees
// and the number of obstacle lines that follow.
func ParseHeader(lines *Lines, limits Limits) (float64, int, error) {
	line, ok := lines.Next()
	if !ok {
		return 0, 0, fmt.Errorf("header: %w", ErrMissingLine)
	}
	fields := strings.Fields(line)
	if len(fields) < 2 {
		return 0, 0, fmt.Errorf("header: expected angle and count, got %d values: %w", len(fields), ErrMissingValue)
	}

	angle, err := parseFloat("angle", fields[0])
	if err != nil {
		return 0, 0, fmt.Errorf("header: %w", err)
	}
	angle = units.ToDegrees(angle, limits.AngleUnits)
	if !inRange(angle, limits.AngleMin, limits.AngleMax) {
		return 0, 0, fmt.Errorf("header: angle %g not in [%g, %g]: %w", angle, limits.AngleMin, limits.AngleMax, ErrOutOfRange)
	}

	count, err := parseCount(fields[1])
	if err != nil {
		return 0, 0, fmt.Errorf("header: count %q: %w", fields[1], ErrInvalidNumber)
	}
	if count < uint64(limits.CountMin) || count > uint64(limits.CountMax) {
		return 0, 0, fmt.Errorf("header: count %d not in [%d, %d]: %w", count, limits.CountMin, limits.CountMax, ErrOutOfRange)
	}

	return angle, int(count), nil
}

// ParseObstacles reads exactly count obstacle lines.
func ParseObstacles(lines *Lines, count int, limits Limits) ([]shadow.Obstacle, error) {
	obstacles := make([]shadow.Obstacle, 0, count)
	for i := 0; i < count; i++ {
		line, ok := lines.Next()
		if !ok {
			return nil, fmt.Errorf("obstacle %d of %d: %w", i+1, count, ErrMissingLine)
		}
		o, err := parseObstacle(line, limits)
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", lines.Number(), err)
		}
		obstacles = append(obstacles, o)
	}
	return obstacles, nil
}

func parseObstacle(line string, limits Limits) (shadow.Obstacle, error) {
	fields := strings.Fields(line)
	if len(fields) < 2 {
		return shadow.Obstacle{}, fmt.Errorf("expected position and height, got %d values: %w", len(fields), ErrMissingValue)
	}
	x, err := parseFloat("position", fields[0])
	if err != nil {
		return shadow.Obstacle{}, err
	}
	h, err := parseFloat("height", fields[1])
	if err != nil {
		return shadow.Obstacle{}, err
	}
	if !inRange(x, limits.PositionMin, limits.PositionMax) {
		return shadow.Obstacle{}, fmt.Errorf("position %g not in [%g, %g]: %w", x, limits.PositionMin, limits.PositionMax, ErrOutOfRange)
	}
	if !inRange(h, limits.HeightMin, limits.HeightMax) {
		return shadow.Obstacle{}, fmt.Errorf("height %g not in [%g, %g]: %w", h, limits.HeightMin, limits.HeightMax, ErrOutOfRange)
	}
	return shadow.NewObstacle(x, h), nil
}

// parseFloat accepts plain decimal notation, exponents, inf and nan.
// Digit separators and hex floats are rejected even though strconv takes them.
func parseFloat(name, tok string) (float64, error) {
	if !plainNumber(tok) {
		return 0, fmt.Errorf("%s %q: %w", name, tok, ErrInvalidNumber)
	}
	// overflow parses to ±Inf, which the range checks reject
	v, err := strconv.ParseFloat(tok, 64)
	if err != nil && !errors.Is(err, strconv.ErrRange) {
		return 0, fmt.Errorf("%s %q: %w", name, tok, ErrInvalidNumber)
	}
	return v, nil
}

func plainNumber(tok string) bool {
	if strings.Contains(tok, "_") {
		return false
	}
	digits := strings.TrimLeft(tok, "+-")
	return !strings.HasPrefix(digits, "0x") && !strings.HasPrefix(digits, "0X")
}

// parseCount parses an unsigned decimal count with an optional leading '+'.
func parseCount(tok string) (uint64, error) {
	return strconv.ParseUint(strings.TrimPrefix(tok, "+"), 10, 64)
}

// Parse reads r to the end and validates it against limits. Lines after the
// last obstacle are ignored.
func Parse(r io.Reader, limits Limits) (*Problem, error) {
	text, err := ReadAll(r)
	if err != nil {
		return nil, err
	}
	lines := NewLines(text)

	angle, count, err := ParseHeader(lines, limits)
	if err != nil {
		return nil, err
	}
	obstacles, err := ParseObstacles(lines, count, limits)
	if err != nil {
		return nil, err
	}
	return &Problem{AngleDegrees: angle, Obstacles: obstacles}, nil
}
