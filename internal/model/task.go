package model

import (
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"
)

// Layouts for the string-typed date and time fields.
const (
	DateLayout = "2006-01-02"
	TimeLayout = "15:04"
)

// Priority bounds; priority is rendered as a 1-5 star rating.
const (
	PriorityMin = 1
	PriorityMax = 5
)

// DefaultColor is the neutral gray applied to new tasks.
const DefaultColor = "#e0e0e0"

// ErrInvalidTask is wrapped by Validate for every rejected field.
var ErrInvalidTask = errors.New("invalid task")

var hexColorPattern = regexp.MustCompile(`^#?([0-9a-fA-F]{2})([0-9a-fA-F]{2})([0-9a-fA-F]{2})$`)

// Task is a single schedule or deadline entry. The JSON keys match the
// blob written by the browser version so exported data round-trips.
type Task struct {
	Date       string `json:"date" toml:"date"`
	StartTime  string `json:"startTime" toml:"start_time"`
	EndTime    string `json:"endTime" toml:"end_time"`
	Activity   string `json:"activity" toml:"activity"`
	Note       string `json:"note" toml:"note"`
	Category   string `json:"category" toml:"category"`
	IsDeadline bool   `json:"isDeadline" toml:"is_deadline"`
	Color      string `json:"color" toml:"color"`
	Priority   int    `json:"priority" toml:"priority"`
	Completed  bool   `json:"completed" toml:"completed"`
}

// NewTask returns a task carrying the default color and priority.
func NewTask() Task {
	return Task{
		Color:    DefaultColor,
		Priority: PriorityMin,
	}
}

// Validate checks the fields a submitted form must provide.
func (t Task) Validate() error {
	required := []struct {
		name  string
		value string
	}{
		{"date", t.Date},
		{"start time", t.StartTime},
		{"end time", t.EndTime},
		{"activity", t.Activity},
		{"category", t.Category},
	}
	for _, f := range required {
		if strings.TrimSpace(f.value) == "" {
			return fmt.Errorf("%w: %s is required", ErrInvalidTask, f.name)
		}
	}

	// Rows sort on the raw strings, so only the zero-padded forms are valid.
	if !inLayout(DateLayout, t.Date) {
		return fmt.Errorf("%w: date %q is not YYYY-MM-DD", ErrInvalidTask, t.Date)
	}
	if !inLayout(TimeLayout, t.StartTime) {
		return fmt.Errorf("%w: start time %q is not HH:MM", ErrInvalidTask, t.StartTime)
	}
	if !inLayout(TimeLayout, t.EndTime) {
		return fmt.Errorf("%w: end time %q is not HH:MM", ErrInvalidTask, t.EndTime)
	}
	if t.Priority < PriorityMin || t.Priority > PriorityMax {
		return fmt.Errorf("%w: priority %d out of range %d-%d",
			ErrInvalidTask, t.Priority, PriorityMin, PriorityMax)
	}
	if !IsHexColor(t.Color) {
		return fmt.Errorf("%w: color %q is not #rrggbb", ErrInvalidTask, t.Color)
	}
	return nil
}

// Normalize repairs records read back from storage: priority is clamped
// into range and a missing or malformed color falls back to the default.
func (t Task) Normalize() Task {
	switch {
	case t.Priority < PriorityMin:
		t.Priority = PriorityMin
	case t.Priority > PriorityMax:
		t.Priority = PriorityMax
	}
	if !IsHexColor(t.Color) {
		t.Color = DefaultColor
	}
	if !strings.HasPrefix(t.Color, "#") {
		t.Color = "#" + t.Color
	}
	t.StartTime = CanonicalTime(t.StartTime)
	t.EndTime = CanonicalTime(t.EndTime)
	return t
}

// CanonicalTime rewrites a parseable time such as "9:00" as "09:00".
// Anything else is returned unchanged.
func CanonicalTime(s string) string {
	v, err := time.Parse(TimeLayout, strings.TrimSpace(s))
	if err != nil {
		return s
	}
	return v.Format(TimeLayout)
}

// inLayout reports whether s is written exactly as layout formats it.
func inLayout(layout, s string) bool {
	v, err := time.Parse(layout, s)
	return err == nil && v.Format(layout) == s
}

// TimeRange formats the scheduled window as "HH:MM - HH:MM".
func (t Task) TimeRange() string {
	return t.StartTime + " - " + t.EndTime
}

// RGB is an 8-bit color triple.
type RGB struct {
	R, G, B uint8
}

// IsHexColor reports whether s is a 6-digit hex color, with or without '#'.
func IsHexColor(s string) bool {
	return hexColorPattern.MatchString(s)
}

// HexToRGB decodes a hex color. Unparseable input yields white.
func HexToRGB(s string) RGB {
	m := hexColorPattern.FindStringSubmatch(s)
	if m == nil {
		return RGB{R: 255, G: 255, B: 255}
	}
	var out [3]uint8
	for i := range out {
		v, _ := strconv.ParseUint(m[i+1], 16, 8)
		out[i] = uint8(v)
	}
	return RGB{R: out[0], G: out[1], B: out[2]}
}
