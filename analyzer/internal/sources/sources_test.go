package sources

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func writeFile(t *testing.T, path string) {
	t.Helper()
	if err := os.WriteFile(path, []byte("<testsuite/>"), 0o644); err != nil {
		t.Fatal(err)
	}
}

func TestResolveSortsAndDedupes(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "b.xml"))
	writeFile(t, filepath.Join(dir, "a.xml"))
	writeFile(t, filepath.Join(dir, "c.txt"))

	// Two overlapping patterns; a.xml and b.xml match both.
	got, err := Resolve([]string{
		filepath.Join(dir, "*.xml"),
		filepath.Join(dir, "[ab].xml"),
	})
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	want := []string{filepath.Join(dir, "a.xml"), filepath.Join(dir, "b.xml")}
	if len(got) != len(want) {
		t.Fatalf("got %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("path[%d] = %q, want %q", i, got[i], want[i])
		}
	}
}

func TestResolveNoMatchesIsNotAnError(t *testing.T) {
	dir := t.TempDir()
	got, err := Resolve([]string{filepath.Join(dir, "*.xml")})
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	if len(got) != 0 {
		t.Fatalf("got %v, want empty", got)
	}
}

func TestResolveBadPattern(t *testing.T) {
	if _, err := Resolve([]string{"[unclosed"}); err == nil {
		t.Fatal("expected error for malformed pattern")
	}
}

func TestWatchTriggersOnCreate(t *testing.T) {
	dir := t.TempDir()
	pattern := filepath.Join(dir, "*.xml")

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	fired := make(chan struct{}, 1)
	done := make(chan error, 1)
	go func() {
		done <- Watch(ctx, []string{pattern}, 50*time.Millisecond, func() {
			select {
			case fired <- struct{}{}:
			default:
			}
		})
	}()

	// Give the watcher a moment to register the directory.
	time.Sleep(100 * time.Millisecond)
	writeFile(t, filepath.Join(dir, "report.xml"))

	select {
	case <-fired:
	case <-time.After(3 * time.Second):
		t.Fatal("onChange was not called after report creation")
	}

	cancel()
	if err := <-done; err != nil {
		t.Fatalf("Watch: %v", err)
	}
}

func TestWatchIgnoresNonMatchingFiles(t *testing.T) {
	dir := t.TempDir()
	pattern := filepath.Join(dir, "*.xml")

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	fired := make(chan struct{}, 1)
	go func() {
		_ = Watch(ctx, []string{pattern}, 50*time.Millisecond, func() {
			select {
			case fired <- struct{}{}:
			default:
			}
		})
	}()

	time.Sleep(100 * time.Millisecond)
	writeFile(t, filepath.Join(dir, "notes.txt"))

	select {
	case <-fired:
		t.Fatal("onChange fired for a non-matching file")
	case <-time.After(300 * time.Millisecond):
	}
}
