package commands

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/charmbracelet/x/ansi"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/urfave/cli/v3"

	"github.com/nhle/schedule/internal/model"
	"github.com/nhle/schedule/internal/schedule"
	"github.com/nhle/schedule/internal/store"
	"github.com/nhle/schedule/tests/testutil"
)

var fixedNow = time.Date(2024, 6, 1, 8, 0, 0, 0, time.UTC)

func newApp(t *testing.T, s store.Store, tasks ...model.Task) *App {
	t.Helper()
	ctx := context.Background()
	tr, err := schedule.New(ctx, s, schedule.WithClock(func() time.Time { return fixedNow }))
	require.NoError(t, err)
	for _, task := range tasks {
		require.NoError(t, tr.Add(ctx, task))
	}
	return &App{Tracker: tr, Store: s}
}

// run executes args against a root command wired like main, reading stdin
// from in.
func run(t *testing.T, a *App, in io.Reader, args ...string) (string, error) {
	t.Helper()
	return runWith(t, &Flags{}, a, in, args...)
}

func runWith(t *testing.T, flags *Flags, a *App, in io.Reader, args ...string) (string, error) {
	t.Helper()
	out, _, err := runStreams(t, flags, a, in, args...)
	return out, err
}

// runStreams is runWith that also returns what was written to stderr.
func runStreams(t *testing.T, flags *Flags, a *App, in io.Reader, args ...string) (string, string, error) {
	t.Helper()
	var buf, errBuf bytes.Buffer

	root := &cli.Command{
		Name:      "schedule",
		Writer:    &buf,
		ErrWriter: &errBuf,
		Reader:    in,
	}
	root = NewListCmd(flags, a).Register(root)
	root = NewAddCmd(flags, a).Register(root)
	root = NewDoneCmd(flags, a).Register(root)
	root = NewDeleteCmd(flags, a).Register(root)
	root = NewCategoriesCmd(flags, a).Register(root)
	root = NewClearCmd(flags, a).Register(root)
	root = NewExportCmd(flags, a).Register(root)
	root = NewImportCmd(flags, a).Register(root)
	root = NewConfigCmd(flags, a).Register(root)

	err := root.Run(context.Background(), append([]string{"schedule"}, args...))
	return buf.String(), errBuf.String(), err
}

func TestListTable(t *testing.T) {
	due := testutil.Task("Taxes", "Admin", 5, "00:00")
	due.Date = "2024-06-04"
	due.IsDeadline = true
	a := newApp(t, store.NewMemory(),
		testutil.Task("Gym", "Health", 1, "18:00"),
		due,
	)

	out, err := run(t, a, strings.NewReader(""), "list")
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(out), "\n")
	require.Len(t, lines, 3)
	assert.Contains(t, lines[0], "ACTIVITY")
	assert.Contains(t, lines[1], "Taxes")
	assert.Contains(t, lines[1], "★★★★★")
	assert.Contains(t, lines[1], "3d left")
	assert.True(t, strings.HasPrefix(lines[1], "2 "), "number is the list position")
	assert.Contains(t, lines[2], "Gym")
}

func TestListEmptyWritesToErrWriter(t *testing.T) {
	a := newApp(t, store.NewMemory(), testutil.Task("a", "Work", 1, "09:00"))

	out, errOut, err := runStreams(t, &Flags{}, a, strings.NewReader(""), "list", "--category", "Home")
	require.NoError(t, err)
	assert.Empty(t, out)
	assert.Equal(t, "No tasks found\n", errOut)
}

func TestListJSONWithCategory(t *testing.T) {
	a := newApp(t, store.NewMemory(),
		testutil.Task("a", "Work", 1, "09:00"),
		testutil.Task("b", "Home", 1, "09:00"),
	)

	out, err := run(t, a, strings.NewReader(""), "list", "--category", "Home", "--json")
	require.NoError(t, err)

	var row struct {
		N        int    `json:"n"`
		Activity string `json:"activity"`
		DaysLeft *int   `json:"daysLeft"`
	}
	require.NoError(t, json.Unmarshal([]byte(strings.TrimSpace(out)), &row))
	assert.Equal(t, 2, row.N)
	assert.Equal(t, "b", row.Activity)
	assert.Nil(t, row.DaysLeft)
}

func TestAdd(t *testing.T) {
	s := store.NewMemory()
	a := newApp(t, s)

	out, err := run(t, a, strings.NewReader(""), "add",
		"--start", "09:00", "--end", "10:00",
		"--activity", "Standup", "--category", "Work", "--priority", "3")
	require.NoError(t, err)
	assert.Equal(t, "Added task 1: Standup\n", out)

	task, err := a.Tracker.At(0)
	require.NoError(t, err)
	assert.Equal(t, "2024-06-01", task.Date, "date defaults to today")
	assert.Equal(t, model.DefaultColor, task.Color)
	assert.Equal(t, 3, task.Priority)
	assert.Equal(t, 1, s.Saves)
}

func TestAddRejectsInvalid(t *testing.T) {
	a := newApp(t, store.NewMemory())

	_, err := run(t, a, strings.NewReader(""), "add",
		"--start", "9am", "--end", "10:00",
		"--activity", "Standup", "--category", "Work")
	assert.ErrorIs(t, err, model.ErrInvalidTask)
	assert.Equal(t, 0, a.Tracker.Len())
}

func TestDoneAndUndo(t *testing.T) {
	a := newApp(t, store.NewMemory(), testutil.Task("a", "Work", 1, "09:00"))

	out, err := run(t, a, strings.NewReader(""), "done", "1")
	require.NoError(t, err)
	assert.Equal(t, "Task 1 marked completed\n", out)
	task, _ := a.Tracker.At(0)
	assert.True(t, task.Completed)

	_, err = run(t, a, strings.NewReader(""), "done", "--undo", "1")
	require.NoError(t, err)
	task, _ = a.Tracker.At(0)
	assert.False(t, task.Completed)
}

func TestTaskNumberErrors(t *testing.T) {
	a := newApp(t, store.NewMemory(), testutil.Task("a", "Work", 1, "09:00"))

	_, err := run(t, a, strings.NewReader(""), "done", "2")
	assert.ErrorIs(t, err, schedule.ErrIndexOutOfRange)

	_, err = run(t, a, strings.NewReader(""), "delete", "zero")
	assert.ErrorContains(t, err, `invalid task number "zero"`)

	_, err = run(t, a, strings.NewReader(""), "delete")
	assert.ErrorContains(t, err, "expected one task number")
}

func TestDelete(t *testing.T) {
	a := newApp(t, store.NewMemory(),
		testutil.Task("a", "Work", 1, "09:00"),
		testutil.Task("b", "Home", 1, "09:00"),
	)

	out, err := run(t, a, strings.NewReader(""), "delete", "1")
	require.NoError(t, err)
	assert.Equal(t, "Deleted task 1: a\n", out)
	assert.Equal(t, []string{"Home"}, a.Tracker.Categories())
}

func TestCategories(t *testing.T) {
	a := newApp(t, store.NewMemory(),
		testutil.Task("a", "Work", 1, "09:00"),
		testutil.Task("b", "Home", 1, "09:00"),
		testutil.Task("c", "Work", 1, "09:00"),
	)

	out, err := run(t, a, strings.NewReader(""), "categories")
	require.NoError(t, err)
	assert.Equal(t, "Work\nHome\n", out)
}

func TestClear(t *testing.T) {
	a := newApp(t, store.NewMemory(),
		testutil.Task("a", "Work", 1, "09:00"),
		testutil.Task("b", "Home", 1, "09:00"),
	)

	_, err := run(t, a, strings.NewReader("y\n"), "clear")
	assert.ErrorContains(t, err, "--yes")
	assert.Equal(t, 2, a.Tracker.Len())

	out, err := run(t, a, strings.NewReader(""), "clear", "--yes")
	require.NoError(t, err)
	assert.Equal(t, "Deleted 2 tasks\n", out)
	assert.Equal(t, 0, a.Tracker.Len())

	out, err = run(t, a, strings.NewReader(""), "clear", "--yes")
	require.NoError(t, err)
	assert.Equal(t, "Nothing to clear\n", out)
}

func TestConfirm(t *testing.T) {
	tests := []struct {
		input string
		want  bool
	}{
		{"y\n", true},
		{"YES\n", true},
		{"n\n", false},
		{"\n", false},
		{"", false},
		{"maybe\ny\n", true},
	}
	for _, tt := range tests {
		var out bytes.Buffer
		got, err := confirm(context.Background(), strings.NewReader(tt.input), &out, "Delete all 2 tasks?")
		require.NoError(t, err)
		assert.Equal(t, tt.want, got, "input %q", tt.input)
		assert.Contains(t, ansi.Strip(out.String()), "Delete all 2 tasks? [y/N]")
	}
}

func TestExportImportRoundTrip(t *testing.T) {
	tasks := []model.Task{
		testutil.Task("a", "Work", 2, "09:00"),
		testutil.Task("b", "Home", 4, "10:00"),
	}

	for _, format := range []string{"json", "toml"} {
		t.Run(format, func(t *testing.T) {
			src := newApp(t, store.NewMemory(), tasks...)
			path := filepath.Join(t.TempDir(), "tasks."+format)

			_, err := run(t, src, strings.NewReader(""), "export", "--format", format, "-o", path)
			require.NoError(t, err)

			dst := newApp(t, store.NewMemory(), testutil.Task("old", "Gym", 1, "07:00"))
			out, err := run(t, dst, strings.NewReader(""), "import", "-f", path)
			require.NoError(t, err)
			assert.Equal(t, "Imported 2 tasks (2 total)\n", out)
			assert.Equal(t, tasks, dst.Tracker.Tasks())
		})
	}
}

func TestExportToWriterMatchesStore(t *testing.T) {
	s := store.NewMemory()
	a := newApp(t, s, testutil.Task("a", "Work", 2, "09:00"))

	out, err := run(t, a, strings.NewReader(""), "export")
	require.NoError(t, err)

	got, err := store.DecodeTasks([]byte(out))
	require.NoError(t, err)
	assert.Equal(t, a.Tracker.Tasks(), got)
}

func TestImportAppendFromStdin(t *testing.T) {
	a := newApp(t, store.NewMemory(), testutil.Task("old", "Gym", 1, "07:00"))

	var buf bytes.Buffer
	require.NoError(t, store.Export(&buf, []model.Task{testutil.Task("new", "Work", 1, "08:00")}, store.FormatJSON))

	out, err := run(t, a, &buf, "import", "--append")
	require.NoError(t, err)
	assert.Equal(t, "Imported 1 tasks (2 total)\n", out)
	assert.Equal(t, []string{"Gym", "Work"}, a.Tracker.Categories())
}

func TestImportDropsCorruptStash(t *testing.T) {
	ctx := context.Background()
	s := testutil.NewTestStore(t)
	require.NoError(t, s.Set(ctx, store.DefaultKey, "{not json"))
	a := newApp(t, s)

	var buf bytes.Buffer
	require.NoError(t, store.Export(&buf, []model.Task{testutil.Task("new", "Work", 1, "08:00")}, store.FormatJSON))

	out, err := run(t, a, &buf, "import")
	require.NoError(t, err)
	assert.Equal(t, "Imported 1 tasks (1 total)\n", out)

	keys, err := s.Keys(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{store.DefaultKey}, keys)
}

func TestImportInvalidChangesNothing(t *testing.T) {
	s := store.NewMemory()
	a := newApp(t, s, testutil.Task("old", "Gym", 1, "07:00"))
	saves := s.Saves

	_, err := run(t, a, strings.NewReader(`[{"activity": "x"}]`), "import")
	assert.Error(t, err)
	assert.Equal(t, 1, a.Tracker.Len())
	assert.Equal(t, saves, s.Saves)

	_, err = run(t, a, strings.NewReader("[]"), "import", "--format", "yaml")
	assert.ErrorContains(t, err, "unknown format")
}

func TestIsTerminal(t *testing.T) {
	assert.False(t, isTerminal(strings.NewReader("")))

	f, err := os.CreateTemp(t.TempDir(), "stdin")
	require.NoError(t, err)
	defer f.Close()
	assert.False(t, isTerminal(f))
}

func TestFlagsApply(t *testing.T) {
	cfg := &model.AppConfig{DataDir: "/data", Log: model.LogConfig{Level: "info"}}

	(&Flags{}).Apply(cfg)
	assert.Equal(t, "/data", cfg.DataDir)

	(&Flags{DataDir: "/other", LogLevel: "debug", LogFile: "/tmp/x.log"}).Apply(cfg)
	assert.Equal(t, "/other", cfg.DataDir)
	assert.Equal(t, "debug", cfg.Log.Level)
	assert.Equal(t, "/tmp/x.log", cfg.LogPath())
}

func TestOpen(t *testing.T) {
	ctx := context.Background()
	cfg := &model.AppConfig{
		DataDir: t.TempDir(),
		Storage: model.StorageConfig{Key: "schedules"},
		Display: model.DisplayConfig{DefaultColor: "#112233"},
	}

	a, err := Open(ctx, cfg, testLogger())
	require.NoError(t, err)
	require.NoError(t, a.Tracker.Add(ctx, testutil.Task("a", "Work", 1, "09:00")))
	assert.Equal(t, "#112233", a.Controller().Draft().Color)
	require.NoError(t, a.Close())

	reopened, err := Open(ctx, cfg, testLogger())
	require.NoError(t, err)
	defer reopened.Close()
	assert.Equal(t, 1, reopened.Tracker.Len())
}

func testLogger() zerolog.Logger {
	return zerolog.Nop()
}

func TestConfigInit(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.yaml")
	flags := &Flags{ConfigPath: path}

	cfg, err := model.LoadConfig(path)
	require.NoError(t, err)
	cfg.Display.DefaultColor = "#abcdef"
	a := newApp(t, store.NewMemory())
	a.Config = cfg

	out, err := runWith(t, flags, a, strings.NewReader(""), "config", "init")
	require.NoError(t, err)
	assert.Equal(t, "Wrote "+path+"\n", out)

	loaded, err := model.LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, "#abcdef", loaded.Display.DefaultColor)

	_, err = runWith(t, flags, a, strings.NewReader(""), "config", "init")
	assert.ErrorContains(t, err, "already exists")

	_, err = runWith(t, flags, a, strings.NewReader(""), "config", "init", "--force")
	assert.NoError(t, err)
}
