package main

import (
	"bytes"
	"encoding/json"
	"os"
	"strings"
	"testing"

	"github.com/pkeller/tocedit/internal/config"
	"github.com/pkeller/tocedit/internal/editor"
	"github.com/pkeller/tocedit/internal/snapshot"
	"github.com/pkeller/tocedit/internal/storage"
)

// testConfig returns a default config for testing.
func testConfig() *config.Config {
	return config.DefaultConfig()
}

// runCLI runs the app with args and returns captured stdout.
func runCLI(t *testing.T, store storage.Store, cfg *config.Config, args ...string) string {
	t.Helper()

	app := newCLIApp(store, cfg)

	oldStdout := os.Stdout
	r, w, _ := os.Pipe()
	os.Stdout = w

	err := app.Run(append([]string{"tocedit"}, args...))

	w.Close()
	var buf bytes.Buffer
	_, _ = buf.ReadFrom(r)
	os.Stdout = oldStdout

	if err != nil {
		t.Fatalf("command %v failed: %v\nOutput: %s", args, err, buf.String())
	}
	return buf.String()
}

// parseJSON unmarshals CLI output into a generic map.
func parseJSON(t *testing.T, out string) map[string]any {
	t.Helper()
	var payload map[string]any
	if err := json.Unmarshal([]byte(out), &payload); err != nil {
		t.Fatalf("failed to parse output: %v\nOutput: %s", err, out)
	}
	return payload
}

func TestCLIShow_SeedsOnEmptyStore(t *testing.T) {
	store := storage.NewMemory()

	out := runCLI(t, store, testConfig(), "show")
	payload := parseJSON(t, out)

	if payload["dirty"] != false {
		t.Error("fresh session should not be dirty")
	}
	doc := payload["document"].(map[string]any)
	if progs := doc["programmes"].([]any); len(progs) != 1 {
		t.Errorf("programmes = %v, want the seed entry", progs)
	}
}

func TestCLIReason_DirtySurvivesInvocations(t *testing.T) {
	store := storage.NewMemory()
	cfg := testConfig()

	out := runCLI(t, store, cfg, "reason", "Young people need support")
	payload := parseJSON(t, out)
	if payload["changed"] != true || payload["dirty"] != true {
		t.Fatalf("payload = %v, want changed and dirty", payload)
	}

	// A second invocation loads the working state back.
	out = runCLI(t, store, cfg, "status")
	payload = parseJSON(t, out)
	if payload["dirty"] != true {
		t.Error("dirty should survive across invocations")
	}
}

func TestCLITagAdd_Duplicate(t *testing.T) {
	store := storage.NewMemory()
	cfg := testConfig()

	runCLI(t, store, cfg, "tag", "add", "Youth")
	out := runCLI(t, store, cfg, "tag", "add", "youth")
	payload := parseJSON(t, out)

	if payload["changed"] != false {
		t.Error("duplicate add should report changed=false")
	}
	if tags := payload["record"].([]any); len(tags) != 1 {
		t.Errorf("record = %v, want one tag", tags)
	}
}

func TestCLITagRemove_BadIndex(t *testing.T) {
	store := storage.NewMemory()

	app := newCLIApp(store, testConfig())
	err := app.Run([]string{"tocedit", "tag", "remove", "notanumber"})
	if err == nil {
		t.Fatal("expected an error for a non-integer index")
	}
	if !strings.Contains(err.Error(), "INVALID_REQUEST") {
		t.Errorf("error = %v, want INVALID_REQUEST", err)
	}
}

func TestCLIAssumption_Lifecycle(t *testing.T) {
	store := storage.NewMemory()
	cfg := testConfig()

	out := runCLI(t, store, cfg, "assumption", "add", "-d", "funding continues", "-c", "Moderately certain")
	payload := parseJSON(t, out)
	if payload["changed"] != true {
		t.Fatalf("payload = %v, want changed", payload)
	}
	record := payload["record"].(map[string]any)
	id := record["id"].(string)
	if record["certainty"] != "Moderately certain" {
		t.Errorf("certainty = %v, want Moderately certain", record["certainty"])
	}

	out = runCLI(t, store, cfg, "assumption", "update", "-c", "Uncertain", id)
	if p := parseJSON(t, out); p["changed"] != true {
		t.Fatalf("update payload = %v, want changed", p)
	}

	out = runCLI(t, store, cfg, "assumption", "list")
	listPayload := parseJSON(t, out)
	items := listPayload["items"].([]any)
	if len(items) != 1 {
		t.Fatalf("items = %d, want 1", len(items))
	}
	row := items[0].(map[string]any)
	if row["certainty"] != "Uncertain" {
		t.Errorf("certainty = %v, want the update applied", row["certainty"])
	}
	if row["description"] != "funding continues" {
		t.Errorf("description = %v, should be untouched", row["description"])
	}

	out = runCLI(t, store, cfg, "assumption", "delete", id)
	if p := parseJSON(t, out); p["changed"] != true {
		t.Errorf("delete payload = %v, want changed", p)
	}
}

func TestCLIOutcomeDelete_ReportsCascade(t *testing.T) {
	store := storage.NewMemory()
	cfg := testConfig()

	out := runCLI(t, store, cfg, "outcome", "add", "Outcome A")
	id := parseJSON(t, out)["record"].(map[string]any)["id"].(string)

	runCLI(t, store, cfg, "outcome", "sub-add", id, "Sub B")

	out = runCLI(t, store, cfg, "outcome", "delete", id)
	payload := parseJSON(t, out)
	if payload["changed"] != true {
		t.Fatalf("payload = %v, want changed", payload)
	}
	if payload["subs_removed"] != float64(1) {
		t.Errorf("subs_removed = %v, want 1", payload["subs_removed"])
	}
}

func TestCLIItem_RequiresValidList(t *testing.T) {
	store := storage.NewMemory()

	app := newCLIApp(store, testConfig())
	err := app.Run([]string{"tocedit", "item", "add", "--list", "programmes", "anything"})
	if err == nil {
		t.Fatal("expected an error for an unknown list")
	}
	if !strings.Contains(err.Error(), "INVALID_REQUEST") {
		t.Errorf("error = %v, want INVALID_REQUEST", err)
	}
}

func TestCLIItemList_Preview(t *testing.T) {
	store := storage.NewMemory()
	cfg := testConfig()

	// Seed has three indirect outcomes; grow to four so the preview clips.
	runCLI(t, store, cfg, "item", "add", "--list", "indirect", "Extra outcome")

	out := runCLI(t, store, cfg, "item", "list", "--list", "indirect")
	payload := parseJSON(t, out)
	if items := payload["items"].([]any); len(items) != editor.PreviewSize {
		t.Errorf("items = %d, want the %d-record preview", len(items), editor.PreviewSize)
	}
	preview := payload["preview"].(map[string]any)
	if preview["has_more"] != true {
		t.Error("preview should offer the show-more toggle")
	}

	out = runCLI(t, store, cfg, "item", "list", "--list", "indirect", "--all")
	payload = parseJSON(t, out)
	if items := payload["items"].([]any); len(items) != 4 {
		t.Errorf("items = %d, want all 4", len(items))
	}
}

func TestCLISave_Lifecycle(t *testing.T) {
	store := storage.NewMemory()
	cfg := testConfig()

	// Clean session: nothing to save.
	out := runCLI(t, store, cfg, "save")
	if p := parseJSON(t, out); p["saved"] != false {
		t.Errorf("payload = %v, want saved=false on a clean session", p)
	}

	runCLI(t, store, cfg, "reason", "worth saving")

	out = runCLI(t, store, cfg, "save")
	payload := parseJSON(t, out)
	if payload["saved"] != true {
		t.Fatalf("payload = %v, want saved=true", payload)
	}
	if payload["saved_at"] == "" {
		t.Error("save should report its timestamp")
	}

	blob, ok, _ := store.Get(cfg.SnapshotKey)
	if !ok || !strings.Contains(blob, "worth saving") {
		t.Errorf("snapshot = %q, want the edit", blob)
	}
	if _, ok, _ := store.Get(snapshot.WorkingKey(cfg.SnapshotKey)); ok {
		t.Error("working state should clear after a save")
	}

	out = runCLI(t, store, cfg, "status")
	if p := parseJSON(t, out); p["dirty"] != false {
		t.Error("dirty should clear after a save")
	}
}

func TestCLISave_CleanupFailureStillSaves(t *testing.T) {
	store := storage.NewMemory()
	cfg := testConfig()

	runCLI(t, store, cfg, "reason", "worth saving")
	store.FailDelete = true

	out := runCLI(t, store, cfg, "save")
	payload := parseJSON(t, out)
	if payload["saved"] != true {
		t.Fatalf("payload = %v, want saved=true when only cleanup fails", payload)
	}
	warning, _ := payload["warning"].(string)
	if !strings.Contains(warning, "working state") {
		t.Errorf("warning = %q, want a working-state cleanup notice", warning)
	}

	out = runCLI(t, store, cfg, "status")
	if p := parseJSON(t, out); p["dirty"] != false {
		t.Error("dirty should stay clear after a save with failed cleanup")
	}
}

func TestParseList(t *testing.T) {
	if col, err := parseList("indirect"); err != nil || col != editor.CollectionIndirect {
		t.Errorf("parseList(indirect) = %v, %v", col, err)
	}
	if col, err := parseList("ultimate"); err != nil || col != editor.CollectionUltimate {
		t.Errorf("parseList(ultimate) = %v, %v", col, err)
	}
	if _, err := parseList("assumptions"); err == nil {
		t.Error("parseList(assumptions) should fail")
	}
}

func TestIsCLIMode(t *testing.T) {
	tests := []struct {
		name string
		args []string
		want bool
	}{
		{"no args", []string{"tocedit"}, false},
		{"show command", []string{"tocedit", "show"}, true},
		{"save command", []string{"tocedit", "save"}, true},
		{"serve command", []string{"tocedit", "serve"}, true},
		{"help flag", []string{"tocedit", "--help"}, true},
		{"version flag", []string{"tocedit", "--version"}, true},
		{"unknown arg defaults to MCP", []string{"tocedit", "--unknown"}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			oldArgs := os.Args
			defer func() { os.Args = oldArgs }()

			os.Args = tt.args
			if got := isCLIMode(); got != tt.want {
				t.Errorf("isCLIMode() = %v, want %v", got, tt.want)
			}
		})
	}
}
