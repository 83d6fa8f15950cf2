// Package backdrop loads the station floor plan drawn behind the graph.
//
// Only the image header is decoded: the widget needs the dimensions to scale
// the plan so its long side matches the canvas. PNG, JPEG, GIF and WebP are
// understood. Any failure (unreachable URL, unknown format, zero size) means
// no backdrop; it is logged at debug level and never surfaces as an error.
package backdrop

import (
	"bytes"
	"context"
	"encoding/json"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/log"
	_ "golang.org/x/image/webp"

	"github.com/matzehuels/stationviz/pkg/cache"
	"github.com/matzehuels/stationviz/pkg/errors"
	"github.com/matzehuels/stationviz/pkg/httputil"
	"github.com/matzehuels/stationviz/pkg/visgraph"
)

// DefaultMaxBytes caps a downloaded floor plan.
const DefaultMaxBytes = 16 << 20

// Loader resolves floor plan images. The zero value fetches with
// http.DefaultClient, does not cache and refuses local files.
type Loader struct {
	Client   *http.Client
	Cache    cache.Cache
	Keyer    cache.Keyer
	Logger   *log.Logger
	MaxBytes int64

	// Root enables local floor plans: relative paths are read below it.
	Root string
}

type dims struct {
	Width  int `json:"w"`
	Height int `json:"h"`
}

// Load returns the backdrop for src scaled to canvas. src is an http(s) URL
// or a path relative to Root. ok is false when there is nothing to draw.
func (l *Loader) Load(ctx context.Context, src string, canvas float64) (bd visgraph.Backdrop, ok bool) {
	if src == "" {
		return visgraph.Backdrop{}, false
	}
	logger := l.Logger
	if logger == nil {
		logger = log.Default()
	}

	d, err := l.dimensions(ctx, src)
	if err != nil {
		logger.Debug("backdrop unavailable", "src", src, "err", err)
		return visgraph.Backdrop{}, false
	}
	w, h := visgraph.BackdropSize(d.Width, d.Height, canvas)
	if w == 0 || h == 0 {
		logger.Debug("backdrop has no area", "src", src)
		return visgraph.Backdrop{}, false
	}
	return visgraph.Backdrop{URL: src, Width: w, Height: h, Opacity: visgraph.BackdropOpacity}, true
}

func (l *Loader) dimensions(ctx context.Context, src string) (dims, error) {
	var key string
	if l.Cache != nil {
		keyer := l.Keyer
		if keyer == nil {
			keyer = cache.NewDefaultKeyer()
		}
		key = keyer.BackdropKey(src)
		if data, hit, err := l.Cache.Get(ctx, key); err == nil && hit {
			var d dims
			if json.Unmarshal(data, &d) == nil {
				return d, nil
			}
		}
	}

	raw, err := l.read(ctx, src)
	if err != nil {
		return dims{}, err
	}
	cfg, _, err := image.DecodeConfig(bytes.NewReader(raw))
	if err != nil {
		return dims{}, err
	}
	d := dims{Width: cfg.Width, Height: cfg.Height}

	if l.Cache != nil {
		if data, err := json.Marshal(d); err == nil {
			_ = l.Cache.Set(ctx, key, data, cache.TTLBackdrop)
		}
	}
	return d, nil
}

func (l *Loader) read(ctx context.Context, src string) ([]byte, error) {
	if strings.Contains(src, "://") {
		if err := errors.ValidateURL(src); err != nil {
			return nil, err
		}
		limit := l.MaxBytes
		if limit <= 0 {
			limit = DefaultMaxBytes
		}
		return httputil.Fetch(ctx, l.Client, src, limit)
	}
	if l.Root == "" {
		return nil, errors.New(errors.ErrCodeUnsupported, "local backdrops are disabled")
	}
	if err := errors.ValidatePath(src); err != nil {
		return nil, err
	}
	return os.ReadFile(filepath.Join(l.Root, filepath.FromSlash(src)))
}
