package cli

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/alexanderramin/horae/internal/config"
	"github.com/alexanderramin/horae/internal/docjson"
	"github.com/alexanderramin/horae/internal/editor"
	"github.com/alexanderramin/horae/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// testApp wires an App backed by an in-memory store for CLI tests.
func testApp(t *testing.T) (*App, *testutil.MemStore) {
	t.Helper()
	store := testutil.NewMemStore()
	return &App{
		Config: config.Config{ScheduleKey: "schedule", WBSKey: "wbs"},
		Store:  store,
		Bounds: &editor.Bounds{Start: testutil.Anchor},
		Now:    func() time.Time { return testutil.Day(3) },
	}, store
}

func seedSchedule(t *testing.T, store *testutil.MemStore) {
	t.Helper()
	doc := testutil.Document(
		testutil.Item("item-design", "", "Design", 0, testutil.WithEnd(4)),
		testutil.Item("item-review", "", "Review", 5, testutil.WithEnd(9)),
	)
	data, err := docjson.Encode(doc)
	require.NoError(t, err)
	store.Seed("schedule", data)
}

// executeCmd runs a cobra command and captures stdout/stderr.
func executeCmd(t *testing.T, app *App, args ...string) (string, error) {
	t.Helper()
	root := NewRootCmd(app)
	buf := new(bytes.Buffer)
	root.SetOut(buf)
	root.SetErr(buf)
	root.SetArgs(args)
	root.SilenceUsage = true
	err := root.Execute()
	return buf.String(), err
}

func TestShowCmd_RendersGantt(t *testing.T) {
	app, store := testApp(t)
	seedSchedule(t, store)

	out, err := executeCmd(t, app, "show", "--weeks", "4")
	require.NoError(t, err)

	assert.Contains(t, out, "Design")
	assert.Contains(t, out, "Review")
	assert.Contains(t, out, "Mar 04")
}

func TestShowCmd_RejectsInvalidPageSize(t *testing.T) {
	app, store := testApp(t)
	seedSchedule(t, store)

	_, err := executeCmd(t, app, "show", "--weeks", "7")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unsupported page size")
}

func TestItemAddCmd_PersistsItem(t *testing.T) {
	app, store := testApp(t)
	seedSchedule(t, store)

	out, err := executeCmd(t, app, "item", "add",
		"--name", "Ship it",
		"--phase", "Build",
		"--start", "2024-03-18",
		"--end", "2024-03-22")
	require.NoError(t, err)
	assert.Contains(t, out, "Added task")

	listOut, err := executeCmd(t, app, "item", "list")
	require.NoError(t, err)
	assert.Contains(t, listOut, "Ship it")
	assert.Contains(t, listOut, "2024-03-18 .. 2024-03-22")
}

func TestItemAddCmd_UnknownPhase(t *testing.T) {
	app, store := testApp(t)
	seedSchedule(t, store)

	_, err := executeCmd(t, app, "item", "add",
		"--name", "Lost", "--phase", "Nonexistent", "--start", "2024-03-18")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "phase not found")
}

func TestItemSetCmd_ResolvesByPrefixAndName(t *testing.T) {
	app, store := testApp(t)
	seedSchedule(t, store)

	_, err := executeCmd(t, app, "item", "set", "item-d", "--status", "done")
	require.NoError(t, err)

	out, err := executeCmd(t, app, "item", "list")
	require.NoError(t, err)
	assert.Contains(t, out, "DONE")

	// By exact name, case-insensitive.
	_, err = executeCmd(t, app, "item", "set", "review", "--start", "2024-03-12")
	require.NoError(t, err)
}

func TestItemSetCmd_AmbiguousPrefix(t *testing.T) {
	app, store := testApp(t)
	seedSchedule(t, store)

	_, err := executeCmd(t, app, "item", "set", "item-", "--status", "done")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "ambiguous")
}

func TestItemRmCmd_CascadesDependencies(t *testing.T) {
	app, store := testApp(t)
	seedSchedule(t, store)

	_, err := executeCmd(t, app, "item", "dep", "add", "item-review", "item-design")
	require.NoError(t, err)

	_, err = executeCmd(t, app, "item", "rm", "item-design")
	require.NoError(t, err)

	out, err := executeCmd(t, app, "item", "list")
	require.NoError(t, err)
	assert.NotContains(t, out, "Design")
}

func TestItemDepCmd_RejectsSelfDependency(t *testing.T) {
	app, store := testApp(t)
	seedSchedule(t, store)

	_, err := executeCmd(t, app, "item", "dep", "add", "item-design", "item-design")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "cannot depend on itself")
}

func TestPhaseCmds_AddListRemove(t *testing.T) {
	app, store := testApp(t)
	seedSchedule(t, store)

	_, err := executeCmd(t, app, "phase", "add", "Rollout")
	require.NoError(t, err)

	out, err := executeCmd(t, app, "phase", "list")
	require.NoError(t, err)
	assert.Contains(t, out, "Rollout")
	assert.Contains(t, out, "Build")

	rmOut, err := executeCmd(t, app, "phase", "rm", "Build")
	require.NoError(t, err)
	assert.Contains(t, rmOut, "2 items")

	out, err = executeCmd(t, app, "item", "list")
	require.NoError(t, err)
	assert.NotContains(t, out, "Design")
}

func TestPhaseAddCmd_DuplicateName(t *testing.T) {
	app, store := testApp(t)
	seedSchedule(t, store)

	_, err := executeCmd(t, app, "phase", "add", "build")
	require.Error(t, err, "phase names match case-insensitively")
}

func TestImportCmd_FromStore(t *testing.T) {
	app, store := testApp(t)
	seedSchedule(t, store)
	store.Seed("wbs", []byte(`{
		"rows": [
			{"id": "w1", "level": 0, "title": "Rollout"},
			{"id": "w2", "level": 1, "title": "Announce", "due_date": "2024-03-20"}
		]
	}`))

	out, err := executeCmd(t, app, "import")
	require.NoError(t, err)
	assert.Contains(t, out, "Imported 1 items")

	listOut, err := executeCmd(t, app, "item", "list")
	require.NoError(t, err)
	assert.Contains(t, listOut, "Announce")
}

func TestImportCmd_MissingArtifact(t *testing.T) {
	app, store := testApp(t)
	seedSchedule(t, store)

	_, err := executeCmd(t, app, "import")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no WBS artifact")
}

func TestImportCmd_FromFileRejectsGarbage(t *testing.T) {
	app, store := testApp(t)
	seedSchedule(t, store)

	path := filepath.Join(t.TempDir(), "wbs.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"whatever": true}`), 0o644))

	_, err := executeCmd(t, app, "import", "--file", path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not a work breakdown structure")
}

func TestExportCmd_JSONAndSVG(t *testing.T) {
	app, store := testApp(t)
	seedSchedule(t, store)
	dir := t.TempDir()

	jsonPath := filepath.Join(dir, "schedule.json")
	_, err := executeCmd(t, app, "export", jsonPath)
	require.NoError(t, err)
	data, err := os.ReadFile(jsonPath)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"Design"`)

	svgPath := filepath.Join(dir, "schedule.svg")
	_, err = executeCmd(t, app, "export", svgPath, "--weeks", "4")
	require.NoError(t, err)
	svg, err := os.ReadFile(svgPath)
	require.NoError(t, err)
	assert.Contains(t, string(svg), "<svg")
}

func TestExportCmd_UnknownExtension(t *testing.T) {
	app, store := testApp(t)
	seedSchedule(t, store)

	_, err := executeCmd(t, app, "export", "schedule.pdf")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unsupported export format")
}

func TestEditCmd_RequiresTerminal(t *testing.T) {
	app, store := testApp(t)
	seedSchedule(t, store)

	_, err := executeCmd(t, app, "edit")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "interactive terminal")
}
