// Example shows both selector presets in a GLFW window: a five-destination
// bottom bar and a three-tab group.
//
// Prerequisites:
//
//	Install devbox: https://www.jetify.com/devbox
//	devbox shell              # enter the dev environment (provides Go + OpenGL/X11 headers)
//	go run ./example/         # run this example
//
// Tap or drag across either row. Left and right arrow keys change the tab
// programmatically, which plays the jump animation. The "locked" tab
// refuses selection so the indicator slides back.
package main

import (
	"fmt"
	"os"
	"runtime"
	"time"

	"github.com/go-gl/gl/v4.1-core/gl"
	"github.com/go-gl/glfw/v3.3/glfw"
	"github.com/pkg/errors"
	"go.uber.org/zap"

	"github.com/go-theft-auto/segment"
	"github.com/go-theft-auto/segment/backend/opengl"
)

const (
	windowWidth  = 800
	windowHeight = 600
	windowTitle  = "segment example"

	barHeight = 72
	tabHeight = 44
)

var errLocked = errors.New("tab is locked")

func init() {
	// GLFW must run on the main thread.
	runtime.LockOSThread()
}

func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run() error {
	logger, err := zap.NewDevelopment()
	if err != nil {
		return fmt.Errorf("logger: %w", err)
	}
	defer func() { _ = logger.Sync() }()

	// Defaults plus SEGMENT_* overrides; pass a path to read a YAML file.
	profiles, err := segment.LoadProfiles(os.Getenv("SEGMENT_CONFIG"))
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	if err := glfw.Init(); err != nil {
		return fmt.Errorf("glfw init: %w", err)
	}
	defer glfw.Terminate()

	glfw.WindowHint(glfw.ContextVersionMajor, 4)
	glfw.WindowHint(glfw.ContextVersionMinor, 1)
	glfw.WindowHint(glfw.OpenGLProfile, glfw.OpenGLCoreProfile)
	glfw.WindowHint(glfw.OpenGLForwardCompatible, glfw.True)

	window, err := glfw.CreateWindow(windowWidth, windowHeight, windowTitle, nil, nil)
	if err != nil {
		return fmt.Errorf("create window: %w", err)
	}
	window.MakeContextCurrent()
	glfw.SwapInterval(1) // vsync

	if err := gl.Init(); err != nil {
		return fmt.Errorf("gl init: %w", err)
	}

	renderer, err := opengl.NewRenderer(windowWidth, windowHeight)
	if err != nil {
		return fmt.Errorf("segment renderer: %w", err)
	}
	defer renderer.Delete()

	pointer := opengl.NewPointerAdapter(window)
	surface := segment.NewSurface(renderer, segment.WithStyle(segment.NightStyle()))

	// Layout reads the live window size every query.
	width, height := float32(windowWidth), float32(windowHeight)

	destinations := []string{"home", "courses", "calendar", "inbox", "profile"}
	barLayout := segment.RowLayout{
		Bounds: func() segment.Rect {
			return segment.Rect{X: segment.SpaceLG, Y: height - barHeight - segment.SpaceLG, W: width - 2*segment.SpaceLG, H: barHeight}
		},
		Gap:     segment.SpaceSM,
		Padding: segment.SpaceSM,
	}

	var bar *segment.Selector
	bar = segment.NewBottomBar(barLayout, &destinations, func(i int) error {
		logger.Info("navigate", zap.String("destination", destinations[i]))
		bar.SetActiveIndex(i)
		return nil
	}, segment.WithConfig(profiles.BottomBar), segment.WithLogger(logger))

	tabs := []string{"overview", "quizzes", "locked"}
	tabLayout := segment.RowLayout{
		Bounds: func() segment.Rect {
			return segment.Rect{X: width*0.5 - 180, Y: 48, W: 360, H: tabHeight}
		},
		Padding: segment.SpaceXS,
	}

	var group *segment.Selector
	group = segment.NewTabGroup(tabLayout, &tabs, func(i int) error {
		if tabs[i] == "locked" {
			return errLocked
		}
		group.SetActiveIndex(i)
		return nil
	}, segment.WithConfig(profiles.TabGroup), segment.WithLogger(logger))

	surface.Add(bar)
	surface.Add(group)

	window.SetKeyCallback(func(w *glfw.Window, key glfw.Key, scancode int, action glfw.Action, mods glfw.ModifierKey) {
		if action != glfw.Press {
			return
		}
		switch key {
		case glfw.KeyLeft:
			if i := group.ActiveIndex(); i > 0 {
				group.SetActiveIndex(i - 1)
			}
		case glfw.KeyRight:
			// Programmatic changes bypass the lock; only gestures ask the host.
			if i := group.ActiveIndex(); i < len(tabs)-1 {
				group.SetActiveIndex(i + 1)
			}
		case glfw.KeyEscape:
			w.SetShouldClose(true)
		}
	})

	events := make([]segment.PointerEvent, 0, 16)
	last := glfw.GetTime()

	for !window.ShouldClose() {
		glfw.PollEvents()

		events = pointer.Drain(events[:0])
		for _, ev := range events {
			surface.Dispatch(ev)
		}

		w, h := window.GetFramebufferSize()
		if float32(w) != width || float32(h) != height {
			width, height = float32(w), float32(h)
			surface.Resize(w, h)
		}
		gl.Viewport(0, 0, int32(w), int32(h))
		gl.ClearColor(0.12, 0.12, 0.14, 1.0)
		gl.Clear(gl.COLOR_BUFFER_BIT)

		now := glfw.GetTime()
		dt := time.Duration((now - last) * float64(time.Second))
		last = now

		surface.Begin(dt)
		if err := surface.End(); err != nil {
			return fmt.Errorf("segment render: %w", err)
		}

		window.SwapBuffers()
	}

	return nil
}
