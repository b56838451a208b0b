package cli

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/matzehuels/graphdraw/pkg/cache"
)

func TestCacheDir(t *testing.T) {
	t.Setenv("XDG_CACHE_HOME", "")
	dir, err := cacheDir()
	if err != nil {
		t.Fatalf("cacheDir() error: %v", err)
	}

	home, _ := os.UserHomeDir()
	expected := filepath.Join(home, ".cache", "graphdraw")
	if dir != expected {
		t.Errorf("cacheDir() = %q, want %q", dir, expected)
	}
}

func TestCacheDirXDG(t *testing.T) {
	t.Setenv("XDG_CACHE_HOME", "/tmp/xdg")
	dir, err := cacheDir()
	if err != nil {
		t.Fatal(err)
	}
	if dir != filepath.Join("/tmp/xdg", "graphdraw") {
		t.Errorf("cacheDir() = %q, want /tmp/xdg/graphdraw", dir)
	}
}

func TestConfigPathXDG(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", "/tmp/cfg")
	path, err := configPath()
	if err != nil {
		t.Fatal(err)
	}
	if path != filepath.Join("/tmp/cfg", "graphdraw", "settings.toml") {
		t.Errorf("configPath() = %q", path)
	}
}

// seedCache writes one live render and one expired analysis into the
// default cache directory under cacheHome.
func seedCache(t *testing.T, cacheHome string) *cache.FileCache {
	t.Helper()
	fc, err := cache.NewFileCache(filepath.Join(cacheHome, "graphdraw"))
	if err != nil {
		t.Fatal(err)
	}
	ctx := context.Background()
	k := cache.NewScopedKeyer(nil, "graphdraw:")
	if err := fc.Set(ctx, k.RenderKey("g", cache.RenderKeyOpts{Format: "svg"}), []byte("<svg/>"), time.Hour); err != nil {
		t.Fatal(err)
	}
	if err := fc.Set(ctx, k.AnalysisKey("g", cache.AnalysisKeyOpts{}), []byte("{}"), time.Nanosecond); err != nil {
		t.Fatal(err)
	}
	time.Sleep(time.Millisecond)
	return fc
}

func TestCacheStatsCommand(t *testing.T) {
	cacheHome := t.TempDir()
	t.Setenv("XDG_CACHE_HOME", cacheHome)
	seedCache(t, cacheHome)
	stdout := captureOut(t)

	root := New(os.Stderr, LogQuiet).RootCommand()
	root.SetArgs([]string{"cache", "stats"})
	if err := root.Execute(); err != nil {
		t.Fatal(err)
	}
	for _, want := range []string{"entries", "render", "analysis", "expired"} {
		if !strings.Contains(stdout.String(), want) {
			t.Errorf("stats output missing %q:\n%s", want, stdout)
		}
	}
}

func TestCachePruneCommand(t *testing.T) {
	cacheHome := t.TempDir()
	t.Setenv("XDG_CACHE_HOME", cacheHome)
	fc := seedCache(t, cacheHome)
	stdout := captureOut(t)

	root := New(os.Stderr, LogQuiet).RootCommand()
	root.SetArgs([]string{"cache", "prune"})
	if err := root.Execute(); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(stdout.String(), "Pruned 1 expired entries") {
		t.Errorf("stdout = %q", stdout.String())
	}

	st, err := fc.Stats()
	if err != nil {
		t.Fatal(err)
	}
	if st.Entries != 1 || st.Kinds[cache.KindRender] != 1 {
		t.Errorf("after prune: %+v, want the render entry only", st)
	}
}

func TestHumanBytes(t *testing.T) {
	tests := map[int64]string{
		0:       "0 B",
		1023:    "1023 B",
		1024:    "1.0 KiB",
		1536:    "1.5 KiB",
		5 << 20: "5.0 MiB",
	}
	for n, want := range tests {
		if got := humanBytes(n); got != want {
			t.Errorf("humanBytes(%d) = %q, want %q", n, got, want)
		}
	}
}

func TestCacheClearCommand(t *testing.T) {
	cacheHome := t.TempDir()
	t.Setenv("XDG_CACHE_HOME", cacheHome)
	stdout := captureOut(t)

	entry := filepath.Join(cacheHome, "graphdraw", "ab", "entry.json")
	if err := os.MkdirAll(filepath.Dir(entry), 0755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(entry, []byte("{}"), 0644); err != nil {
		t.Fatal(err)
	}

	root := New(os.Stderr, LogQuiet).RootCommand()
	root.SetArgs([]string{"cache", "clear"})
	if err := root.Execute(); err != nil {
		t.Fatal(err)
	}
	if _, err := os.Stat(entry); !os.IsNotExist(err) {
		t.Error("entry should be deleted")
	}
	if !strings.Contains(stdout.String(), "Cleared 1 cached entries") {
		t.Errorf("stdout = %q", stdout.String())
	}
}
