package sqlite

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/mesh-intelligence/firstwords/pkg/types"
)

func attachTestBackend(t *testing.T, dataDir string, strategy string) *Backend {
	t.Helper()
	b := NewBackend()
	config := types.Config{
		Backend:      types.BackendSQLite,
		DataDir:      dataDir,
		SyncStrategy: strategy,
	}
	if err := b.Attach(config); err != nil {
		t.Fatalf("Attach failed: %v", err)
	}
	return b
}

func TestBackend_Attach(t *testing.T) {
	tmpDir := t.TempDir()

	b := NewBackend()
	config := types.Config{
		Backend: types.BackendSQLite,
		DataDir: tmpDir,
	}

	if err := b.Attach(config); err != nil {
		t.Fatalf("Attach failed: %v", err)
	}
	defer b.Detach()

	if _, err := os.Stat(filepath.Join(tmpDir, dbFileName)); os.IsNotExist(err) {
		t.Errorf("%s not created", dbFileName)
	}

	if err := b.Attach(config); err != types.ErrAlreadyAttached {
		t.Errorf("expected ErrAlreadyAttached, got %v", err)
	}
}

func TestBackend_AttachCreatesDataDir(t *testing.T) {
	dataDir := filepath.Join(t.TempDir(), "nested", "data")

	b := attachTestBackend(t, dataDir, "")
	defer b.Detach()

	for _, name := range jsonlFiles {
		info, err := os.Stat(filepath.Join(dataDir, name))
		if err != nil {
			t.Fatalf("expected %s to exist: %v", name, err)
		}
		if info.Size() != 0 {
			t.Errorf("expected %s to be empty, got %d bytes", name, info.Size())
		}
	}
}

func TestBackend_AttachInvalidConfig(t *testing.T) {
	tests := []struct {
		name    string
		config  types.Config
		wantErr error
	}{
		{"empty backend", types.Config{DataDir: t.TempDir()}, types.ErrBackendEmpty},
		{"unknown backend", types.Config{Backend: "dynamo", DataDir: t.TempDir()}, types.ErrBackendUnknown},
		{"unknown sync", types.Config{Backend: types.BackendSQLite, SyncStrategy: "batch"}, types.ErrSyncStrategyUnknown},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := NewBackend()
			if err := b.Attach(tt.config); !errors.Is(err, tt.wantErr) {
				t.Errorf("expected %v, got %v", tt.wantErr, err)
			}
		})
	}
}

func TestBackend_Detach(t *testing.T) {
	b := attachTestBackend(t, t.TempDir(), "")
	tbl, err := b.GetTable(types.ChildrenTable)
	if err != nil {
		t.Fatalf("GetTable failed: %v", err)
	}

	if err := b.Detach(); err != nil {
		t.Fatalf("Detach failed: %v", err)
	}
	if err := b.Detach(); err != nil {
		t.Errorf("second Detach should not error, got %v", err)
	}

	if _, err := b.GetTable(types.ChildrenTable); err != types.ErrCupboardDetached {
		t.Errorf("expected ErrCupboardDetached, got %v", err)
	}
	if _, err := tbl.Fetch(nil); err != types.ErrCupboardDetached {
		t.Errorf("expected ErrCupboardDetached from stale table, got %v", err)
	}
}

func TestBackend_GetTable(t *testing.T) {
	b := attachTestBackend(t, t.TempDir(), "")
	defer b.Detach()

	for _, name := range types.StandardTableNames {
		tbl, err := b.GetTable(name)
		if err != nil {
			t.Errorf("GetTable(%q) failed: %v", name, err)
		}
		if tbl == nil {
			t.Errorf("GetTable(%q) returned nil", name)
		}
	}

	if _, err := b.GetTable("recipes"); err != types.ErrTableNotFound {
		t.Errorf("expected ErrTableNotFound for unknown table, got %v", err)
	}
}

func TestBackend_ReattachReloadsJSONL(t *testing.T) {
	dataDir := t.TempDir()

	b1 := attachTestBackend(t, dataDir, "")
	children, _ := b1.GetTable(types.ChildrenTable)
	words, _ := b1.GetTable(types.WordsTable)

	birthday := types.MustParseDate("2023-04-02")
	childID, err := children.Set("", &types.Child{Name: "Ada", Birthday: &birthday})
	if err != nil {
		t.Fatalf("Set child failed: %v", err)
	}
	for _, w := range []string{"mama", "up", "ball"} {
		entry := &types.WordEntry{ChildID: childID, Word: w, DateAdded: types.MustParseDate("2024-05-01"), Confidence: 40}
		if _, err := words.Set("", entry); err != nil {
			t.Fatalf("Set word failed: %v", err)
		}
	}
	if err := b1.Detach(); err != nil {
		t.Fatalf("Detach failed: %v", err)
	}

	b2 := attachTestBackend(t, dataDir, "")
	defer b2.Detach()
	children, _ = b2.GetTable(types.ChildrenTable)

	got, err := children.Get(childID)
	if err != nil {
		t.Fatalf("Get after reattach failed: %v", err)
	}
	child := got.(*types.Child)
	if child.Name != "Ada" {
		t.Errorf("expected name Ada, got %q", child.Name)
	}
	if !child.HasBirthday() || *child.Birthday != birthday {
		t.Errorf("expected birthday %s, got %v", birthday, child.Birthday)
	}
	var names []string
	for _, w := range child.Words {
		names = append(names, w.Word)
	}
	if len(names) != 3 || names[0] != "mama" || names[1] != "up" || names[2] != "ball" {
		t.Errorf("expected words in insertion order, got %v", names)
	}
}

func TestBackend_AttachSkipsInvalidWords(t *testing.T) {
	dataDir := t.TempDir()
	if err := initJSONLFiles(dataDir); err != nil {
		t.Fatalf("initJSONLFiles failed: %v", err)
	}
	child := `{"child_id":"c1","name":"Ada","created_at":"2024-01-01T00:00:00.000000000Z","updated_at":"2024-01-01T00:00:00.000000000Z"}` + "\n"
	words := `{"word_id":"w1","child_id":"c1","position":0,"word":"up","date_added":"2024-02-01","speaks":true,"asl":false,"confidence":150}` + "\n" +
		`{"word_id":"w2","child_id":"c1","position":1,"word":"   ","date_added":"2024-02-01","speaks":true,"asl":false,"confidence":-7}` + "\n" +
		`{"word_id":"w3","child_id":"c1","position":2,"word":"dog","date_added":"2024-02-01","speaks":true,"asl":false,"confidence":20}` + "\n"
	if err := os.WriteFile(filepath.Join(dataDir, childrenJSONL), []byte(child), 0o644); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(dataDir, wordsJSONL), []byte(words), 0o644); err != nil {
		t.Fatal(err)
	}

	b := attachTestBackend(t, dataDir, "")
	defer b.Detach()
	children, _ := b.GetTable(types.ChildrenTable)

	got, err := children.Get("c1")
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	loaded := got.(*types.Child).Words
	if len(loaded) != 1 || loaded[0].Word != "dog" {
		t.Fatalf("expected only the valid word dog, got %v", loaded)
	}
	for _, w := range loaded {
		if err := w.Validate(); err != nil {
			t.Errorf("loaded word %q fails validation: %v", w.Word, err)
		}
	}
}

func TestBackend_OnCloseDefersJSONL(t *testing.T) {
	dataDir := t.TempDir()

	b := attachTestBackend(t, dataDir, types.SyncOnClose)
	children, _ := b.GetTable(types.ChildrenTable)
	if _, err := children.Set("", &types.Child{Name: "Grace"}); err != nil {
		t.Fatalf("Set failed: %v", err)
	}

	path := filepath.Join(dataDir, childrenJSONL)
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("reading %s: %v", childrenJSONL, err)
	}
	if len(data) != 0 {
		t.Errorf("expected %s untouched before Detach, got %q", childrenJSONL, data)
	}

	if err := b.Detach(); err != nil {
		t.Fatalf("Detach failed: %v", err)
	}
	data, _ = os.ReadFile(path)
	if len(data) == 0 {
		t.Errorf("expected %s written on Detach", childrenJSONL)
	}
}
