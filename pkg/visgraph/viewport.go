package visgraph

// BackdropOpacity is the alpha the station floor plan is drawn with.
const BackdropOpacity = 0.4

// MinViewportScale keeps the initial zoom positive for very short containers.
const MinViewportScale = 0.05

// Viewport is the initial camera: a canvas position and a zoom scale.
type Viewport struct {
	Position Point   `json:"position"`
	Scale    float64 `json:"scale"`
}

// InitialViewport returns the camera used right after mount for a container of
// clientW x clientH pixels. The scale never drops below [MinViewportScale].
func InitialViewport(canvas, clientW, clientH float64) Viewport {
	if canvas <= 0 {
		canvas = DefaultCanvasSize
	}
	return Viewport{
		Position: Point{X: canvas - clientW/2 + 400, Y: canvas + 400},
		Scale:    max((clientH-200)/canvas, MinViewportScale),
	}
}

// Backdrop describes how the station floor plan is drawn behind the graph.
// It is anchored at the canvas origin.
type Backdrop struct {
	URL     string  `json:"url"`
	Width   float64 `json:"width"`
	Height  float64 `json:"height"`
	Opacity float64 `json:"opacity"`
}

// BackdropSize scales an imgW x imgH image so its long side equals canvas.
// Degenerate images yield 0, 0.
func BackdropSize(imgW, imgH int, canvas float64) (w, h float64) {
	if imgW <= 0 || imgH <= 0 {
		return 0, 0
	}
	if canvas <= 0 {
		canvas = DefaultCanvasSize
	}
	if imgW > imgH {
		return canvas, canvas * float64(imgH) / float64(imgW)
	}
	return canvas * float64(imgW) / float64(imgH), canvas
}
