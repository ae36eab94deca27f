package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func validTask() Task {
	t := NewTask()
	t.Date = "2024-06-01"
	t.StartTime = "09:00"
	t.EndTime = "10:00"
	t.Activity = "Standup"
	t.Category = "Work"
	return t
}

func TestNewTaskDefaults(t *testing.T) {
	task := NewTask()
	assert.Equal(t, DefaultColor, task.Color)
	assert.Equal(t, 1, task.Priority)
	assert.False(t, task.Completed)
}

func TestTaskValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Task)
		ok     bool
	}{
		{"valid", func(*Task) {}, true},
		{"missing date", func(t *Task) { t.Date = "" }, false},
		{"missing activity", func(t *Task) { t.Activity = "  " }, false},
		{"missing category", func(t *Task) { t.Category = "" }, false},
		{"bad date", func(t *Task) { t.Date = "01/06/2024" }, false},
		{"bad start", func(t *Task) { t.StartTime = "9am" }, false},
		{"unpadded start", func(t *Task) { t.StartTime = "9:00" }, false},
		{"unpadded end", func(t *Task) { t.EndTime = "9:30" }, false},
		{"unpadded date", func(t *Task) { t.Date = "2024-6-1" }, false},
		{"priority zero", func(t *Task) { t.Priority = 0 }, false},
		{"priority six", func(t *Task) { t.Priority = 6 }, false},
		{"priority five", func(t *Task) { t.Priority = 5 }, true},
		{"bad color", func(t *Task) { t.Color = "gray" }, false},
		{"note optional", func(t *Task) { t.Note = "" }, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			task := validTask()
			tt.mutate(&task)
			err := task.Validate()
			if tt.ok {
				assert.NoError(t, err)
				return
			}
			assert.ErrorIs(t, err, ErrInvalidTask)
		})
	}
}

func TestTaskNormalize(t *testing.T) {
	task := validTask()
	task.Priority = 9
	task.Color = "not-a-color"

	got := task.Normalize()
	assert.Equal(t, PriorityMax, got.Priority)
	assert.Equal(t, DefaultColor, got.Color)

	task.Priority = -1
	task.Color = "AABBCC"
	got = task.Normalize()
	assert.Equal(t, PriorityMin, got.Priority)
	assert.Equal(t, "#AABBCC", got.Color)

	task.StartTime = "9:05"
	task.EndTime = "bogus"
	got = task.Normalize()
	assert.Equal(t, "09:05", got.StartTime)
	assert.Equal(t, "bogus", got.EndTime)
}

func TestCanonicalTime(t *testing.T) {
	assert.Equal(t, "09:00", CanonicalTime("9:00"))
	assert.Equal(t, "09:00", CanonicalTime(" 09:00 "))
	assert.Equal(t, "23:59", CanonicalTime("23:59"))
	assert.Equal(t, "9am", CanonicalTime("9am"))
	assert.Equal(t, "", CanonicalTime(""))
}

func TestHexToRGB(t *testing.T) {
	assert.Equal(t, RGB{R: 0xaa, G: 0xbb, B: 0xcc}, HexToRGB("#aabbcc"))
	assert.Equal(t, RGB{R: 0xe0, G: 0xe0, B: 0xe0}, HexToRGB("e0e0e0"))
	assert.Equal(t, RGB{R: 255, G: 255, B: 255}, HexToRGB("#xyz"))
}

func TestTimeRange(t *testing.T) {
	assert.Equal(t, "09:00 - 10:00", validTask().TimeRange())
}
