// Command sweepview draws the scenario table one scene at a time: the shapes,
// where each engine says a cast stops, and the intermediate geometry the
// engine shown considered on the way.
package main

import (
	"flag"
	"fmt"
	"runtime"
	"time"

	"github.com/go-gl/gl/v4.1-core/gl"
	"github.com/go-gl/glfw/v3.3/glfw"

	"github.com/irfansharif/sweep/internal/app"
	"github.com/irfansharif/sweep/internal/log"
	"github.com/irfansharif/sweep/internal/memory"
	"github.com/irfansharif/sweep/internal/render"
	"github.com/irfansharif/sweep/internal/scenario"
)

func init() {
	// OpenGL contexts are tied to specific OS threads - let's pin to just one.
	runtime.LockOSThread()
}

func makeTitle(application *app.App, fps float64) string {
	return fmt.Sprintf("%s (%.0f FPS)", application.Title(), fps)
}

func main() {
	tablePath := flag.String("table", "", "scenario table (YAML); defaults to $"+scenario.TableEnv+" or the built-in table")
	start := flag.String("scenario", "", "name of the scenario to show first")
	flag.Parse()

	logger := log.New(log.LevelFromEnv())
	defer logger.Sync()

	table, err := scenario.Resolve(*tablePath)
	if err != nil {
		logger.Fatal("Failed to load scenarios", log.Error(err))
	}

	if err := glfw.Init(); err != nil {
		logger.Fatal("Failed to initialize GLFW", log.Error(err))
	}
	defer glfw.Terminate()

	// Configure GLFW window hints - use OpenGL 4.1.
	glfw.DefaultWindowHints()
	glfw.WindowHint(glfw.Resizable, glfw.True)
	glfw.WindowHint(glfw.Samples, 4)
	glfw.WindowHint(glfw.OpenGLProfile, glfw.OpenGLCoreProfile)
	glfw.WindowHint(glfw.OpenGLForwardCompatible, glfw.True)
	glfw.WindowHint(glfw.ContextVersionMajor, 4)
	glfw.WindowHint(glfw.ContextVersionMinor, 1)

	window, err := glfw.CreateWindow(
		1280, // width
		960,  // height
		"Sweep",
		nil, nil,
	)
	if err != nil {
		logger.Fatal("Failed to create window", log.Error(err))
	}
	window.MakeContextCurrent()

	if err := gl.Init(); err != nil {
		logger.Fatal("Failed to initialize OpenGL", log.Error(err))
	}
	gl.Enable(gl.MULTISAMPLE)

	memController, err := memory.NewController(render.NewGLBuffer(), logger)
	if err != nil {
		logger.Fatal("Failed to allocate vertex buffer", log.Error(err))
	}
	renderer, err := render.NewRenderer(memController)
	if err != nil {
		logger.Fatal("Failed to create renderer", log.Error(err))
	}
	defer renderer.Release()

	scenes := app.NewSceneManager(table)
	if *start != "" && !scenes.SetCurrent(*start) {
		logger.Warn("No such scenario, starting from the first", log.String("scenario", *start))
	}
	for _, s := range scenes.Failed() {
		logger.Warn("Scenario fails", log.String("scenario", s.Scenario.Name), log.Any("problems", s.Result.Problems))
	}

	cw, ch := window.GetFramebufferSize()
	application := app.NewApp(renderer, app.NewView(cw, ch), scenes, logger)
	if err := application.Prepare(); err != nil {
		logger.Fatal("Failed to prepare scene", log.Error(err))
	}

	input := NewInput(window, application, logger)

	runtimeLogger := logger.Named("runtime")
	frameCount, frameTimeSum := 0, 0.0
	lastFPSUpdate := time.Now()

	// Main loop.
	for !window.ShouldClose() {
		frameStart := time.Now()
		input.Tick(frameStart)

		w, h := window.GetFramebufferSize()
		gl.Viewport(0, 0, int32(w), int32(h))
		gl.ClearColor(1, 1, 1, 1)
		gl.Clear(gl.COLOR_BUFFER_BIT)

		renderer.Draw(app.ShapesLayer, app.TraceLayer)
		window.SwapBuffers()
		glfw.PollEvents()

		frameTime := time.Since(frameStart).Seconds() * 1000.0 // ms
		frameTimeSum += frameTime

		frameCount++
		now := time.Now()
		if now.Sub(lastFPSUpdate) >= time.Second {
			fps := float64(frameCount) / now.Sub(lastFPSUpdate).Seconds()
			avgFrameTime := frameTimeSum / float64(frameCount)
			frameCount, frameTimeSum = 0, 0.0
			lastFPSUpdate = now

			window.SetTitle(makeTitle(application, fps))

			memStats := memController.Stats()
			renderStats := renderer.Stats()
			runtimeLogger.Debug("performance",
				log.Float64("fps", fps),
				log.Float64("frame_ms", avgFrameTime),
				log.Int("draw_calls", memStats.DrawCalls),
				log.Int64("vertices", memStats.Vertices),
				log.Float64("draw_us", renderStats.LastDrawTimeUs),
				log.Float64("upload_ms", renderStats.LastUploadTimeMs),
			)
			memController.LogStats()

			if err := memController.Validate(); err != nil {
				logger.Fatal("Vertex buffer layout invalid", log.Error(err))
			}
		}
	}
}
