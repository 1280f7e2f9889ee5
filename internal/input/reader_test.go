package input

import (
	"errors"
	"math"
	"strings"
	"testing"

	"github.com/banshee-data/flatland/internal/shadow"
	"github.com/banshee-data/flatland/internal/units"
	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type failingReader struct{}

func (failingReader) Read([]byte) (int, error) {
	return 0, errors.New("disk on fire")
}

func TestReadAll(t *testing.T) {
	t.Run("reads everything", func(t *testing.T) {
		got, err := ReadAll(strings.NewReader("45 1\n0 10\n"))
		require.NoError(t, err)
		assert.Equal(t, "45 1\n0 10\n", got)
	})

	t.Run("read failure is IO", func(t *testing.T) {
		_, err := ReadAll(failingReader{})
		require.Error(t, err)
		assert.ErrorIs(t, err, ErrIO)
		assert.Equal(t, "IO", Kind(err))
		assert.Contains(t, err.Error(), "disk on fire")
	})
}

func TestParseHeader(t *testing.T) {
	tests := []struct {
		name      string
		text      string
		wantAngle float64
		wantCount int
		wantErr   error
	}{
		{"ok", "45 3", 45, 3, nil},
		{"extra whitespace", "  30\t 2  ", 30, 2, nil},
		{"bounds inclusive low", "10 1", 10, 1, nil},
		{"bounds inclusive high", "80 100000", 80, 100000, nil},
		{"missing line", "", 0, 0, ErrMissingLine},
		{"missing value", "45", 0, 0, ErrMissingValue},
		{"blank header", "   ", 0, 0, ErrMissingValue},
		{"invalid angle", "xx 2", 0, 0, ErrInvalidNumber},
		{"invalid count", "45 two", 0, 0, ErrInvalidNumber},
		{"negative count", "45 -1", 0, 0, ErrInvalidNumber},
		{"fractional count", "45 1.5", 0, 0, ErrInvalidNumber},
		{"angle too low", "5 2", 0, 0, ErrOutOfRange},
		{"angle too high", "85 2", 0, 0, ErrOutOfRange},
		{"angle NaN", "NaN 2", 0, 0, ErrOutOfRange},
		{"angle overflow", "1e400 2", 0, 0, ErrOutOfRange},
		{"count zero", "45 0", 0, 0, ErrOutOfRange},
		{"count too high", "45 100001", 0, 0, ErrOutOfRange},
		{"angle checked before count", "85 xx", 0, 0, ErrOutOfRange},
		{"count with plus sign", "45 +2", 45, 2, nil},
		{"count with two plus signs", "45 ++2", 0, 0, ErrInvalidNumber},
		{"count with digit separator", "45 1_0", 0, 0, ErrInvalidNumber},
		{"angle with digit separator", "4_5 2", 0, 0, ErrInvalidNumber},
		{"hex float angle", "0x1.68p5 1", 0, 0, ErrInvalidNumber},
		{"upper hex float angle", "0X1.68P5 1", 0, 0, ErrInvalidNumber},
		{"signed angle", "+45 1", 45, 1, nil},
		{"exponent angle", "4.5e1 1", 45, 1, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			angle, count, err := ParseHeader(NewLines(tt.text), DefaultLimits())
			if tt.wantErr != nil {
				require.Error(t, err)
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantAngle, angle)
			assert.Equal(t, tt.wantCount, count)
		})
	}
}

func TestParseHeaderRadians(t *testing.T) {
	limits := DefaultLimits()
	limits.AngleUnits = units.Radians

	angle, count, err := ParseHeader(NewLines("0.7853981633974483 2"), limits)
	require.NoError(t, err)
	assert.InDelta(t, 45.0, angle, 1e-9)
	assert.Equal(t, 2, count)

	// 45 radians is far outside [10, 80] degrees once converted
	_, _, err = ParseHeader(NewLines("45 2"), limits)
	assert.ErrorIs(t, err, ErrOutOfRange)
}

func TestParseObstacles(t *testing.T) {
	tests := []struct {
		name    string
		text    string
		count   int
		want    []shadow.Obstacle
		wantErr error
	}{
		{
			name:  "ok",
			text:  "0 10\n5 20\n",
			count: 2,
			want:  []shadow.Obstacle{{Position: 0, Height: 10}, {Position: 5, Height: 20}},
		},
		{
			name:  "spaces and blank line",
			text:  "   0    10   \n5    20   \n\n",
			count: 2,
			want:  []shadow.Obstacle{{Position: 0, Height: 10}, {Position: 5, Height: 20}},
		},
		{
			name:  "crlf",
			text:  "1.5 2.5\r\n",
			count: 1,
			want:  []shadow.Obstacle{{Position: 1.5, Height: 2.5}},
		},
		{
			name:  "extra tokens ignored",
			text:  "7 8 9\n",
			count: 1,
			want:  []shadow.Obstacle{{Position: 7, Height: 8}},
		},
		{name: "missing line", text: "0 10\n", count: 2, wantErr: ErrMissingLine},
		{name: "missing value", text: "0\n", count: 1, wantErr: ErrMissingValue},
		{name: "empty line", text: "\n", count: 1, wantErr: ErrMissingValue},
		{name: "invalid x", text: "a 10\n", count: 1, wantErr: ErrInvalidNumber},
		{name: "invalid h", text: "0 a\n", count: 1, wantErr: ErrInvalidNumber},
		{name: "x too low", text: "-1 10\n", count: 1, wantErr: ErrOutOfRange},
		{name: "x too high", text: "300001 10\n", count: 1, wantErr: ErrOutOfRange},
		{name: "h too low", text: "0 0\n", count: 1, wantErr: ErrOutOfRange},
		{name: "h too high", text: "0 1001\n", count: 1, wantErr: ErrOutOfRange},
		{name: "h infinite", text: "0 Inf\n", count: 1, wantErr: ErrOutOfRange},
		{name: "numbers parsed before range check", text: "300001 a\n", count: 1, wantErr: ErrInvalidNumber},
		{name: "x with digit separator", text: "1_0 10\n", count: 1, wantErr: ErrInvalidNumber},
		{name: "h with digit separator", text: "0 1_0\n", count: 1, wantErr: ErrInvalidNumber},
		{name: "hex x", text: "0x10 10\n", count: 1, wantErr: ErrInvalidNumber},
		{name: "negative hex h", text: "0 -0x1p3\n", count: 1, wantErr: ErrInvalidNumber},
		{
			name:  "signed and exponent values",
			text:  "+1e2 2.5E1\n",
			count: 1,
			want:  []shadow.Obstacle{{Position: 100, Height: 25}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseObstacles(NewLines(tt.text), tt.count, DefaultLimits())
			if tt.wantErr != nil {
				require.Error(t, err)
				assert.ErrorIs(t, err, tt.wantErr)
				assert.Nil(t, got)
				return
			}
			require.NoError(t, err)
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("ParseObstacles mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestLines(t *testing.T) {
	tests := []struct {
		name string
		text string
		want []string
	}{
		{"empty", "", nil},
		{"no trailing newline", "a\nb", []string{"a", "b"}},
		{"trailing newline", "a\nb\n", []string{"a", "b"}},
		{"blank lines kept", "a\n\nb\n\n", []string{"a", "", "b", ""}},
		{"crlf", "a\r\nb\r\n", []string{"a", "b"}},
		{"only one cr stripped", "a\r\r\n", []string{"a\r"}},
		{"lone newline", "\n", []string{""}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			lines := NewLines(tt.text)
			var got []string
			for {
				line, ok := lines.Next()
				if !ok {
					break
				}
				got = append(got, line)
			}
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("lines mismatch (-want +got):\n%s", diff)
			}
			assert.Equal(t, len(tt.want), lines.Number())
		})
	}
}

func TestParseLongLines(t *testing.T) {
	const size = 2 << 20

	tests := []struct {
		name string
		text string
	}{
		{"extra tokens", "45 1\n0 10 " + strings.Repeat("x", size) + "\n"},
		{"trailing spaces", "45 1\n0 10" + strings.Repeat(" ", size) + "\n"},
		{"long header", "45 1 " + strings.Repeat("y ", size/2) + "\n0 10\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p, err := Parse(strings.NewReader(tt.text), DefaultLimits())
			require.NoError(t, err)
			require.Len(t, p.Obstacles, 1)
			assert.InDelta(t, 10.0, shadow.TotalUnionLength(shadow.Project(p.Obstacles, p.AngleDegrees)), 1e-9)
		})
	}
}

func TestParseObstaclesReportsLineNumber(t *testing.T) {
	lines := NewLines("45 3\n0 10\n5 10\n9 x\n")
	_, _, err := ParseHeader(lines, DefaultLimits())
	require.NoError(t, err)

	_, err = ParseObstacles(lines, 3, DefaultLimits())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "line 4")
}

func TestParse(t *testing.T) {
	t.Run("valid input", func(t *testing.T) {
		p, err := Parse(strings.NewReader("45 2\n0 10\n5 10\n"), DefaultLimits())
		require.NoError(t, err)
		assert.Equal(t, 45.0, p.AngleDegrees)
		require.Len(t, p.Obstacles, 2)
		assert.InDelta(t, 15.0, shadow.TotalUnionLength(shadow.Project(p.Obstacles, p.AngleDegrees)), 1e-12)
	})

	t.Run("count with plus sign", func(t *testing.T) {
		p, err := Parse(strings.NewReader("45 +2\n0 10\n5 10\n"), DefaultLimits())
		require.NoError(t, err)
		assert.Len(t, p.Obstacles, 2)
	})

	t.Run("trailing lines ignored", func(t *testing.T) {
		p, err := Parse(strings.NewReader("45 1\n0 10\nnot an obstacle\n"), DefaultLimits())
		require.NoError(t, err)
		assert.Len(t, p.Obstacles, 1)
	})

	errorCases := []struct {
		name string
		text string
		kind string
	}{
		{"header invalid number", "xx 2\n0 10\n0 10\n", "invalid number"},
		{"angle out of range low", "5 2\n0 10\n0 10\n", "out of range"},
		{"angle out of range high", "85 2\n0 10\n0 10\n", "out of range"},
		{"header missing value", "45\n0 10\n0 10\n", "missing value"},
		{"missing data line", "45 2\n0 10\n", "missing line"},
		{"invalid x", "45 1\na 10\n", "invalid number"},
		{"invalid h", "45 1\n0 a\n", "invalid number"},
		{"empty input", "", "missing line"},
		{"digit separator", "45 1\n1_0 10\n", "invalid number"},
		{"hex angle", "0x1.68p5 1\n0 10\n", "invalid number"},
	}
	for _, tt := range errorCases {
		t.Run(tt.name, func(t *testing.T) {
			p, err := Parse(strings.NewReader(tt.text), DefaultLimits())
			require.Error(t, err)
			assert.Nil(t, p)
			assert.Equal(t, tt.kind, Kind(err))
		})
	}

	t.Run("read failure", func(t *testing.T) {
		_, err := Parse(failingReader{}, DefaultLimits())
		assert.Equal(t, "IO", Kind(err))
	})
}

func TestKind(t *testing.T) {
	assert.Equal(t, "", Kind(nil))
	assert.Equal(t, "", Kind(errors.New("other")))
	assert.Equal(t, "out of range", Kind(ErrOutOfRange))
}

func TestInRange(t *testing.T) {
	assert.True(t, inRange(10, 10, 80))
	assert.True(t, inRange(80, 10, 80))
	assert.False(t, inRange(9.999, 10, 80))
	assert.False(t, inRange(math.NaN(), 10, 80))
	assert.False(t, inRange(math.Inf(1), 10, 80))
}
