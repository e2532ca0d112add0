package indexer

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"multi-image-viewer/internal/keyrule"

	"github.com/go-git/go-billy/v5"
	"github.com/go-git/go-billy/v5/memfs"
	"github.com/go-git/go-billy/v5/util"
	"github.com/google/go-cmp/cmp"
)

// newTestFS creates an in-memory filesystem holding the given files.
// Folders listed in dirs are created even when empty.
func newTestFS(t *testing.T, files []string, dirs ...string) billy.Filesystem {
	t.Helper()
	fs := memfs.New()
	for _, d := range dirs {
		if err := fs.MkdirAll(d, 0o755); err != nil {
			t.Fatalf("MkdirAll(%s): %v", d, err)
		}
	}
	for _, f := range files {
		if err := util.WriteFile(fs, f, []byte("img"), 0o644); err != nil {
			t.Fatalf("WriteFile(%s): %v", f, err)
		}
	}
	return fs
}

var defaultRule = keyrule.MustCompile(keyrule.DefaultPattern, keyrule.UseFullName)

// =============================================================================
// Rebuild scenarios
// =============================================================================

func TestRebuildAlignsFoldersByPattern(t *testing.T) {
	t.Parallel()

	fs := newTestFS(t, []string{
		"A/img_00123.png",
		"A/img_00456.png",
		"B/photo_00123.jpg",
	})

	index, err := New(fs).Rebuild([]string{"A", "B"}, defaultRule)
	if err != nil {
		t.Fatalf("Rebuild failed: %v", err)
	}

	wantEntries := map[string][]string{
		"00123": {"A/img_00123.png", "B/photo_00123.jpg"},
		"00456": {"A/img_00456.png", ""},
	}
	if diff := cmp.Diff(wantEntries, index.Entries); diff != "" {
		t.Errorf("Entries mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]string{"00123", "00456"}, index.Keys); diff != "" {
		t.Errorf("Keys mismatch (-want +got):\n%s", diff)
	}
	if index.Files != 3 {
		t.Errorf("Files = %d, want 3", index.Files)
	}
}

func TestRebuildWithoutRuleUsesStems(t *testing.T) {
	t.Parallel()

	fs := newTestFS(t, []string{
		"A/img_00123.png",
		"A/img_00456.png",
		"B/photo_00123.jpg",
	})

	index, err := New(fs).Rebuild([]string{"A", "B"}, keyrule.FullName(keyrule.UseFullName))
	if err != nil {
		t.Fatalf("Rebuild failed: %v", err)
	}

	wantEntries := map[string][]string{
		"img_00123":   {"A/img_00123.png", ""},
		"img_00456":   {"A/img_00456.png", ""},
		"photo_00123": {"", "B/photo_00123.jpg"},
	}
	if diff := cmp.Diff(wantEntries, index.Entries); diff != "" {
		t.Errorf("Entries mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]string{"img_00123", "img_00456", "photo_00123"}, index.Keys); diff != "" {
		t.Errorf("Keys mismatch (-want +got):\n%s", diff)
	}
}

func TestRebuildNoMatchPolicies(t *testing.T) {
	t.Parallel()

	fs := newTestFS(t, []string{"A/img_00123.png", "A/cover.png"})

	tests := []struct {
		name     string
		policy   keyrule.NoMatchPolicy
		wantKeys []string
	}{
		{name: "Fallback keeps unmatched files", policy: keyrule.UseFullName, wantKeys: []string{"00123", "cover"}},
		{name: "Strict drops unmatched files", policy: keyrule.Skip, wantKeys: []string{"00123"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rule := keyrule.MustCompile(keyrule.DefaultPattern, tt.policy)
			index, err := New(fs).Rebuild([]string{"A"}, rule)
			if err != nil {
				t.Fatalf("Rebuild failed: %v", err)
			}
			if diff := cmp.Diff(tt.wantKeys, index.Keys); diff != "" {
				t.Errorf("Keys mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestRebuildFiltersNonImages(t *testing.T) {
	t.Parallel()

	fs := newTestFS(t, []string{
		"A/00001.PNG",
		"A/00002.txt",
		"A/00003.gif",
		"A/00004.tiff",
		"A/nested/00005.png",
	})

	index, err := New(fs).Rebuild([]string{"A"}, defaultRule)
	if err != nil {
		t.Fatalf("Rebuild failed: %v", err)
	}
	if diff := cmp.Diff([]string{"00001", "00004"}, index.Keys); diff != "" {
		t.Errorf("Keys mismatch (-want +got):\n%s", diff)
	}
}

func TestRebuildLastWriteWinsWithinFolder(t *testing.T) {
	t.Parallel()

	fs := newTestFS(t, []string{
		"A/a_00123.png",
		"A/b_00123.png",
		"B/c_00123.png",
	})

	index, err := New(fs).Rebuild([]string{"A", "B"}, defaultRule)
	if err != nil {
		t.Fatalf("Rebuild failed: %v", err)
	}

	want := []string{"A/b_00123.png", "B/c_00123.png"}
	if diff := cmp.Diff(want, index.Entries["00123"]); diff != "" {
		t.Errorf("slot mismatch (-want +got):\n%s", diff)
	}
	if index.Files != 3 {
		t.Errorf("Files = %d, want 3 (overwritten files still count as matched)", index.Files)
	}
}

func TestRebuildSlotLengthMatchesFolderCount(t *testing.T) {
	t.Parallel()

	fs := newTestFS(t, []string{
		"A/x_10000.png",
		"C/y_20000.jpg",
	}, "B")

	folders := []string{"A", "B", "C"}
	index, err := New(fs).Rebuild(folders, defaultRule)
	if err != nil {
		t.Fatalf("Rebuild failed: %v", err)
	}

	for key, paths := range index.Entries {
		if len(paths) != len(folders) {
			t.Errorf("key %s has %d slots, want %d", key, len(paths), len(folders))
		}
	}
}

func TestRebuildIsDeterministic(t *testing.T) {
	t.Parallel()

	fs := newTestFS(t, []string{
		"A/10.png", "A/9.png", "A/abc.png", "A/007.png",
		"B/7.jpg", "B/abd.jpg", "B/100.webp",
	})

	idx := New(fs)
	first, err := idx.Rebuild([]string{"A", "B"}, keyrule.FullName(keyrule.UseFullName))
	if err != nil {
		t.Fatalf("first Rebuild failed: %v", err)
	}
	second, err := idx.Rebuild([]string{"A", "B"}, keyrule.FullName(keyrule.UseFullName))
	if err != nil {
		t.Fatalf("second Rebuild failed: %v", err)
	}

	if diff := cmp.Diff(first.Entries, second.Entries); diff != "" {
		t.Errorf("Entries differ between rebuilds:\n%s", diff)
	}
	if diff := cmp.Diff(first.Keys, second.Keys); diff != "" {
		t.Errorf("Keys differ between rebuilds:\n%s", diff)
	}
}

func TestRebuildEmptyFolders(t *testing.T) {
	t.Parallel()

	fs := newTestFS(t, nil, "A", "B")

	index, err := New(fs).Rebuild([]string{"A", "B"}, defaultRule)
	if err != nil {
		t.Fatalf("Rebuild failed: %v", err)
	}
	if index.Len() != 0 {
		t.Errorf("Len() = %d, want 0", index.Len())
	}
}

// =============================================================================
// Failures
// =============================================================================

func TestRebuildMissingFolder(t *testing.T) {
	t.Parallel()

	fs := newTestFS(t, []string{"A/img_00123.png"})

	index, err := New(fs).Rebuild([]string{"A", "missing"}, defaultRule)
	if err == nil {
		t.Fatal("expected an error for a missing folder")
	}
	if index != nil {
		t.Errorf("a failed rebuild must not return an index, got %+v", index)
	}

	var dirErr *DirectoryReadError
	if !errors.As(err, &dirErr) {
		t.Fatalf("error = %T, want *DirectoryReadError", err)
	}
	if dirErr.Folder != "missing" {
		t.Errorf("Folder = %q, want %q", dirErr.Folder, "missing")
	}
	if !IsDirectoryReadError(err) {
		t.Error("IsDirectoryReadError() = false")
	}
}

func TestRebuildOnHostFilesystem(t *testing.T) {
	t.Parallel()

	root := t.TempDir()
	a := filepath.Join(root, "A")
	if err := os.MkdirAll(a, 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(a, "img_00042.jpg"), []byte("img"), 0o644); err != nil {
		t.Fatal(err)
	}

	index, err := NewOS().Rebuild([]string{a}, defaultRule)
	if err != nil {
		t.Fatalf("Rebuild failed: %v", err)
	}
	got, ok := index.Slot("00042", 0)
	if !ok || got != filepath.Join(a, "img_00042.jpg") {
		t.Errorf("Slot(00042, 0) = %q, %v", got, ok)
	}

	_, err = NewOS().Rebuild([]string{filepath.Join(root, "gone")}, defaultRule)
	if !errors.Is(err, os.ErrNotExist) {
		t.Errorf("error = %v, want it to wrap os.ErrNotExist", err)
	}
}

// =============================================================================
// Index accessors
// =============================================================================

func TestIndexSlot(t *testing.T) {
	t.Parallel()

	index := &Index{
		Folders: []string{"A", "B"},
		Entries: map[string][]string{"1": {"A/1.png", ""}},
		Keys:    []string{"1"},
	}

	tests := []struct {
		name   string
		key    string
		slot   int
		want   string
		wantOK bool
	}{
		{name: "Present", key: "1", slot: 0, want: "A/1.png", wantOK: true},
		{name: "Missing file", key: "1", slot: 1},
		{name: "Slot out of range", key: "1", slot: 2},
		{name: "Negative slot", key: "1", slot: -1},
		{name: "Unknown key", key: "2", slot: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := index.Slot(tt.key, tt.slot)
			if got != tt.want || ok != tt.wantOK {
				t.Errorf("Slot(%q, %d) = %q, %v; want %q, %v", tt.key, tt.slot, got, ok, tt.want, tt.wantOK)
			}
		})
	}

	var nilIndex *Index
	if nilIndex.Len() != 0 {
		t.Error("nil index Len() should be 0")
	}
	if _, ok := nilIndex.Entry("1"); ok {
		t.Error("nil index Entry() should report missing")
	}
}
