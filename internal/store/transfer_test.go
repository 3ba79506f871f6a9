package store

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"testing"

	"cmdhandler/internal/library"
)

func TestExportThenImport_RoundTrip(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	st := openTestStore(t)
	if err := st.ReplaceAllFrom(ctx, []string{"cal", "last", "uname -a"}); err != nil {
		t.Fatal(err)
	}
	before := mustList(t, st)

	path := filepath.Join(t.TempDir(), "download")
	n, err := st.ExportFile(ctx, path)
	if err != nil || n != 3 {
		t.Fatalf("export: n=%d err=%v", n, err)
	}
	b, _ := os.ReadFile(path)
	if string(b) != "uname -a\nlast\ncal\n" {
		t.Fatalf("unexpected export file: %q", string(b))
	}

	if err := st.Add(ctx, "temporary"); err != nil {
		t.Fatal(err)
	}
	if _, err := st.ImportFile(ctx, path); err != nil {
		t.Fatalf("import: %v", err)
	}

	// Import inserts in file order, so the newest-first listing is reversed.
	got := mustList(t, st)
	want := library.Snapshot{before[2], before[1], before[0]}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("after import got %#v, want %#v", got, want)
	}
}

func TestImportFile_MissingLeavesStoreUnchanged(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	st := openTestStore(t)
	if err := st.Add(ctx, "keep me"); err != nil {
		t.Fatal(err)
	}

	_, err := st.ImportFile(ctx, filepath.Join(t.TempDir(), "missing"))
	var ierr *ImportError
	if !errors.As(err, &ierr) {
		t.Fatalf("expected ImportError, got %v", err)
	}
	if got := mustList(t, st); !reflect.DeepEqual(got, library.Snapshot{"keep me"}) {
		t.Fatalf("store changed after failed import: %#v", got)
	}
}

func TestImportFile_CollapsesDuplicates(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	st := openTestStore(t)

	path := filepath.Join(t.TempDir(), "cmds")
	if err := os.WriteFile(path, []byte("a\r\nb\na\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	n, err := st.ImportFile(ctx, path)
	if err != nil || n != 2 {
		t.Fatalf("import: n=%d err=%v", n, err)
	}
	if got := mustList(t, st); !reflect.DeepEqual(got, library.Snapshot{"a", "b"}) {
		t.Fatalf("unexpected contents: %#v", got)
	}
}

func TestDefaultCommands(t *testing.T) {
	t.Parallel()

	defaults := DefaultCommands()
	if len(defaults) == 0 {
		t.Fatalf("expected embedded defaults")
	}
	if defaults[0] != "tree -L 1 --dirsfirst" {
		t.Fatalf("unexpected first default: %q", defaults[0])
	}
	for _, d := range defaults {
		if d == "" {
			t.Fatalf("defaults must not contain blank lines")
		}
	}
}
