package backdrop

import (
	"bytes"
	"context"
	"image"
	"image/png"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/stationviz/pkg/cache"
	"github.com/matzehuels/stationviz/pkg/visgraph"
)

func pngBytes(t *testing.T, w, h int) []byte {
	t.Helper()
	var buf bytes.Buffer
	if err := png.Encode(&buf, image.NewRGBA(image.Rect(0, 0, w, h))); err != nil {
		t.Fatal(err)
	}
	return buf.Bytes()
}

func quiet() *log.Logger { return log.New(io.Discard) }

func TestLoadFile(t *testing.T) {
	root := t.TempDir()
	if err := os.MkdirAll(filepath.Join(root, "plans"), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(root, "plans", "plan.png"), pngBytes(t, 200, 100), 0o644); err != nil {
		t.Fatal(err)
	}

	l := &Loader{Logger: quiet(), Root: root}
	bd, ok := l.Load(context.Background(), "plans/plan.png", 1000)
	if !ok {
		t.Fatal("Load failed")
	}
	want := visgraph.Backdrop{URL: "plans/plan.png", Width: 1000, Height: 500, Opacity: 0.4}
	if bd != want {
		t.Errorf("Load = %+v, want %+v", bd, want)
	}

	for _, src := range []string{"../plan.png", filepath.Join(root, "plans", "plan.png")} {
		if _, ok := l.Load(context.Background(), src, 1000); ok {
			t.Errorf("Load(%q) escaped the root", src)
		}
	}

	noRoot := &Loader{Logger: quiet()}
	if _, ok := noRoot.Load(context.Background(), "plans/plan.png", 1000); ok {
		t.Error("local file loaded without a root")
	}
}

func TestLoadHTTPCachesDimensions(t *testing.T) {
	img := pngBytes(t, 50, 100)
	var hits atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		w.Write(img)
	}))
	defer srv.Close()

	fc, err := cache.NewFileCache(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	l := &Loader{Client: srv.Client(), Cache: fc, Logger: quiet()}
	ctx := context.Background()

	for range 2 {
		bd, ok := l.Load(ctx, srv.URL+"/plan.png", 1000)
		if !ok || bd.Width != 500 || bd.Height != 1000 {
			t.Fatalf("Load = %+v, %v", bd, ok)
		}
	}
	if n := hits.Load(); n != 1 {
		t.Errorf("server hit %d times, want 1", n)
	}
}

func TestLoadFailuresAreSilent(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/text" {
			w.Write([]byte("not an image"))
			return
		}
		http.NotFound(w, r)
	}))
	defer srv.Close()

	l := &Loader{Client: srv.Client(), Logger: quiet()}
	ctx := context.Background()
	for _, src := range []string{"", srv.URL + "/missing.png", srv.URL + "/text", "/does/not/exist.png", "ftp://example.com/plan.png"} {
		if bd, ok := l.Load(ctx, src, 1000); ok {
			t.Errorf("Load(%q) = %+v, want no backdrop", src, bd)
		}
	}
}
