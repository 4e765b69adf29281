// Command gen scripts each selector preset through a gesture, captures
// framebuffer pixels at an interesting moment, and saves JPEG screenshots
// to doc/imgs/.
//
// Usage:
//
//	devbox shell
//	go run ./doc/gen/
package main

import (
	"fmt"
	"image"
	"image/jpeg"
	"os"
	"path/filepath"
	"runtime"
	"time"

	"github.com/go-gl/gl/v4.1-core/gl"
	"github.com/go-gl/glfw/v3.3/glfw"

	"github.com/go-theft-auto/segment"
	"github.com/go-theft-auto/segment/backend/opengl"
)

const frame = time.Second / 60

func init() {
	runtime.LockOSThread()
}

func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// screenshot defines a single selector screenshot to capture.
type screenshot struct {
	name   string // filename without extension
	width  int    // viewport width
	height int    // viewport height
	preset preset // which selector to build
	style  segment.Style
	// script drives the selector before capture. Events carry their own
	// timestamps; frames is how many animation frames to run afterwards.
	script func(sel *segment.Selector)
	frames int
}

type preset int

const (
	bottomBar preset = iota
	tabGroup
)

func run() error {
	if err := glfw.Init(); err != nil {
		return fmt.Errorf("glfw init: %w", err)
	}
	defer glfw.Terminate()

	glfw.WindowHint(glfw.ContextVersionMajor, 4)
	glfw.WindowHint(glfw.ContextVersionMinor, 1)
	glfw.WindowHint(glfw.OpenGLProfile, glfw.OpenGLCoreProfile)
	glfw.WindowHint(glfw.OpenGLForwardCompatible, glfw.True)
	glfw.WindowHint(glfw.Visible, glfw.False)

	window, err := glfw.CreateWindow(800, 600, "screenshot-gen", nil, nil)
	if err != nil {
		return fmt.Errorf("create window: %w", err)
	}
	window.MakeContextCurrent()

	if err := gl.Init(); err != nil {
		return fmt.Errorf("gl init: %w", err)
	}

	renderer, err := opengl.NewRenderer(800, 600)
	if err != nil {
		return fmt.Errorf("segment renderer: %w", err)
	}
	defer renderer.Delete()

	outDir := filepath.Join("doc", "imgs")
	if err := os.MkdirAll(outDir, 0o755); err != nil {
		return fmt.Errorf("mkdir: %w", err)
	}

	shots := buildScreenshots()

	for _, s := range shots {
		if err := capture(renderer, s, outDir); err != nil {
			return fmt.Errorf("capture %s: %w", s.name, err)
		}
		fmt.Printf("  %s.jpg (%dx%d)\n", s.name, s.width, s.height)
	}

	fmt.Printf("\nGenerated %d screenshots in %s/\n", len(shots), outDir)
	return nil
}

func newSelector(s screenshot) *segment.Selector {
	const margin = segment.SpaceMD
	bounds := segment.Rect{X: margin, Y: margin, W: float32(s.width) - 2*margin, H: float32(s.height) - 2*margin}
	layout := segment.RowLayout{Bounds: segment.FixedBounds(bounds), Gap: segment.SpaceXS, Padding: segment.SpaceXS}

	var sel *segment.Selector
	confirm := func(i int) error {
		sel.SetActiveIndex(i)
		return nil
	}
	switch s.preset {
	case tabGroup:
		tabs := []string{"overview", "quizzes", "assignments"}
		sel = segment.NewTabGroup(layout, &tabs, confirm)
	default:
		destinations := []string{"home", "courses", "calendar", "inbox", "profile"}
		sel = segment.NewBottomBar(layout, &destinations, confirm)
	}
	return sel
}

func capture(renderer *opengl.Renderer, s screenshot, outDir string) error {
	// Only update the renderer projection. Do NOT resize the window: GLFW
	// processes resizes asynchronously. The hidden window stays at 800×600.
	renderer.Resize(s.width, s.height)

	// Fresh selector per screenshot to avoid state leaking between captures.
	sel := newSelector(s)
	surface := segment.NewSurface(renderer, segment.WithStyle(s.style))
	surface.Add(sel)

	if s.script != nil {
		s.script(sel)
	}

	frames := 2
	if s.frames > 0 {
		frames = s.frames
	}

	for i := 0; i < frames; i++ {
		gl.Viewport(0, 0, int32(s.width), int32(s.height))
		gl.ClearColor(0.12, 0.12, 0.14, 1.0)
		gl.Clear(gl.COLOR_BUFFER_BIT)

		surface.Begin(frame)
		if err := surface.End(); err != nil {
			return err
		}
	}

	// Read pixels
	pixels := make([]byte, s.width*s.height*4)
	gl.ReadPixels(0, 0, int32(s.width), int32(s.height), gl.RGBA, gl.UNSIGNED_BYTE, gl.Ptr(pixels))

	// Flip vertically (OpenGL origin is bottom-left)
	rowLen := s.width * 4
	tmp := make([]byte, rowLen)
	for y := 0; y < s.height/2; y++ {
		top := y * rowLen
		bot := (s.height - 1 - y) * rowLen
		copy(tmp, pixels[top:top+rowLen])
		copy(pixels[top:top+rowLen], pixels[bot:bot+rowLen])
		copy(pixels[bot:bot+rowLen], tmp)
	}

	img := image.NewRGBA(image.Rect(0, 0, s.width, s.height))
	copy(img.Pix, pixels)

	path := filepath.Join(outDir, s.name+".jpg")
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	return jpeg.Encode(f, img, &jpeg.Options{Quality: 90})
}

// sweep presses at fromX and drags to toX in steps, dt apart.
func sweep(sel *segment.Selector, fromX, toX float32, steps int, dt time.Duration) time.Duration {
	y := float32(30)
	at := time.Duration(0)
	sel.HandlePointer(segment.Down(fromX, y, at))
	for i := 1; i <= steps; i++ {
		at += dt
		x := fromX + (toX-fromX)*float32(i)/float32(steps)
		sel.HandlePointer(segment.Move(x, y, at))
	}
	return at
}

// buildScreenshots returns the list of all selector screenshots to generate.
func buildScreenshots() []screenshot {
	return []screenshot{
		{
			name:   "bottom_bar_rest",
			width:  480,
			height: 72,
			preset: bottomBar,
			style:  segment.DefaultStyle(),
		},
		{
			name:   "tab_group_rest_light",
			width:  360,
			height: 48,
			preset: tabGroup,
			style:  segment.LightStyle(),
		},
		{
			name:   "bottom_bar_pickup",
			width:  480,
			height: 72,
			preset: bottomBar,
			style:  segment.DefaultStyle(),
			script: func(sel *segment.Selector) {
				sel.HandlePointer(segment.Down(150, 30, 0))
			},
			frames: 20,
		},
		{
			name:   "bottom_bar_slow_drag",
			width:  480,
			height: 72,
			preset: bottomBar,
			style:  segment.DefaultStyle(),
			script: func(sel *segment.Selector) {
				sweep(sel, 50, 250, 20, 16*time.Millisecond)
			},
			frames: 6,
		},
		{
			name:   "bottom_bar_flick",
			width:  480,
			height: 72,
			preset: bottomBar,
			style:  segment.NightStyle(),
			script: func(sel *segment.Selector) {
				sweep(sel, 50, 330, 4, 16*time.Millisecond)
			},
			frames: 4,
		},
		{
			name:   "bottom_bar_settle",
			width:  480,
			height: 72,
			preset: bottomBar,
			style:  segment.DefaultStyle(),
			script: func(sel *segment.Selector) {
				at := sweep(sel, 50, 330, 4, 16*time.Millisecond)
				sel.HandlePointer(segment.Up(330, 30, at))
			},
			frames: 5,
		},
		{
			name:   "tab_group_jump",
			width:  360,
			height: 48,
			preset: tabGroup,
			style:  segment.DefaultStyle(),
			script: func(sel *segment.Selector) {
				sel.SetActiveIndex(2)
			},
			frames: 8,
		},
	}
}
