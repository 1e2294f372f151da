package main

import (
	"context"
	"fmt"
	"log/slog"
	"math"
	"math/rand/v2"
	"os"
	"time"

	uv "github.com/charmbracelet/ultraviolet"
	"github.com/spf13/cobra"

	"github.com/taigrr/facet/pkg/models"
	"github.com/taigrr/facet/pkg/render"
)

const (
	torqueStrength = 180.0 // degrees per second squared while a key is held
	dragScale      = 2.0   // degrees of impulse per cell dragged
	zoomStep       = 0.5
	maxZoom        = 20.0
)

var (
	hudColor  = render.RGB(230, 230, 230)
	pickColor = render.RGB(255, 220, 90)
	wireColor = render.RGB(0, 255, 128)
)

// newViewCmd builds the interactive terminal viewer.
//
// Controls:
//
//	Mouse drag  - Rotate models
//	Click       - Pick the model under the cursor
//	Scroll, +/- - Move the camera forward and back
//	W/S A/D Q/E - Pitch, yaw and roll
//	Space       - Random spin
//	R           - Reset
//	L           - Reload models from the cache
//	X           - Toggle wireframe
//	?           - Toggle HUD
//	Esc         - Quit
func newViewCmd() *cobra.Command {
	var (
		fps int
		sf  sceneFlags
	)

	cmd := &cobra.Command{
		Use:   "view [models...]",
		Short: "View models in the terminal",
		RunE: func(cmd *cobra.Command, args []string) error {
			if fps <= 0 {
				return fmt.Errorf("--fps must be positive, got %d", fps)
			}
			src, err := newModelSource(args, slog.Default())
			if err != nil {
				return err
			}
			ms, err := src.load(cmd.Context())
			if err != nil {
				return err
			}
			// Anything written to stderr would tear the alternate screen.
			return runViewer(cmd.Context(), src, ms, fps, sf, slog.New(slog.DiscardHandler))
		},
	}

	cmd.Flags().IntVar(&fps, "fps", 30, "target frames per second")
	sf.register(cmd)
	return cmd
}

// viewer is the state of one interactive session. It is only touched from
// the frame loop.
type viewer struct {
	ctx    context.Context
	term   *uv.Terminal
	src    *modelSource
	flags  sceneFlags
	logger *slog.Logger
	stage  *stage
	fb     *render.Framebuffer
	spin   *spin

	width, height int // terminal cells
	zoom          float64
	torque        struct{ pitch, yaw, roll float64 }
	wireframe     bool
	showHUD       bool

	dragging     bool
	lastX, lastY int
	status       string

	fpsFrames int
	fpsTime   time.Time
	fps       float64
}

func runViewer(ctx context.Context, src *modelSource, ms []*models.Model, fps int, sf sceneFlags, logger *slog.Logger) error {
	term := uv.DefaultTerminal()

	width, height, err := term.GetSize()
	if err != nil {
		return fmt.Errorf("get terminal size: %w", err)
	}

	// Each cell shows two pixels stacked vertically.
	st, err := newStage(ms, width, height*2, sf, logger)
	if err != nil {
		return err
	}

	if err := term.Start(); err != nil {
		return fmt.Errorf("start terminal: %w", err)
	}
	term.EnterAltScreen()
	term.HideCursor()
	term.Resize(width, height)

	// Any-event mouse tracking with SGR coordinates.
	fmt.Fprint(os.Stdout, "\x1b[?1003h\x1b[?1006h")

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	v := &viewer{
		ctx:     ctx,
		term:    term,
		src:     src,
		flags:   sf,
		logger:  logger,
		stage:   st,
		fb:      render.NewFramebuffer(width, height*2),
		spin:    newSpin(fps),
		width:   width,
		height:  height,
		showHUD: true,
		fpsTime: time.Now(),
	}
	defer v.cleanup()

	ticker := time.NewTicker(time.Second / time.Duration(fps))
	defer ticker.Stop()

	events := term.Events()
	last := time.Now()
	for {
		select {
		case <-ctx.Done():
			return nil
		case ev, ok := <-events:
			if !ok {
				return nil
			}
			if quit := v.handle(ev); quit {
				return nil
			}
		case now := <-ticker.C:
			dt := min(now.Sub(last).Seconds(), 0.1)
			last = now
			if err := v.frame(dt); err != nil {
				return err
			}
		}
	}
}

func (v *viewer) cleanup() {
	fmt.Fprint(os.Stdout, "\x1b[?1003l\x1b[?1006l")
	v.term.ExitAltScreen()
	v.term.ShowCursor()
	v.term.Shutdown(context.Background())
}

// handle applies one input event and reports whether the session should end.
func (v *viewer) handle(ev uv.Event) bool {
	switch ev := ev.(type) {
	case uv.WindowSizeEvent:
		v.width, v.height = ev.Width, ev.Height
		v.term.Erase()
		v.term.Resize(v.width, v.height)
		v.fb.Resize(v.width, v.height*2)
		v.stage.scene.Camera().SetViewport(v.width, v.height*2)

	case uv.KeyPressEvent:
		switch {
		case ev.MatchString("escape", "ctrl+c"):
			return true
		case ev.MatchString("w", "up"):
			v.torque.pitch = -torqueStrength
		case ev.MatchString("s", "down"):
			v.torque.pitch = torqueStrength
		case ev.MatchString("a", "left"):
			v.torque.yaw = -torqueStrength
		case ev.MatchString("d", "right"):
			v.torque.yaw = torqueStrength
		case ev.MatchString("q"):
			v.torque.roll = -torqueStrength
		case ev.MatchString("e"):
			v.torque.roll = torqueStrength
		case ev.MatchString("space"):
			v.spin.impulse(
				(rand.Float64()-0.5)*90,
				(rand.Float64()-0.5)*90,
				(rand.Float64()-0.5)*90,
			)
		case ev.MatchString("r"):
			v.spin.reset()
			v.zoomBy(-v.zoom)
			v.status = ""
		case ev.MatchString("l"):
			v.reload()
		case ev.MatchString("+", "="):
			v.zoomBy(zoomStep)
		case ev.MatchString("-", "_"):
			v.zoomBy(-zoomStep)
		case ev.MatchString("x"):
			v.wireframe = !v.wireframe
		case ev.MatchString("?", "shift+/"):
			v.showHUD = !v.showHUD
		}

	case uv.KeyReleaseEvent:
		switch {
		case ev.MatchString("w", "up", "s", "down"):
			v.torque.pitch = 0
		case ev.MatchString("a", "left", "d", "right"):
			v.torque.yaw = 0
		case ev.MatchString("q", "e"):
			v.torque.roll = 0
		}

	case uv.MouseClickEvent:
		v.dragging = true
		v.lastX, v.lastY = ev.X, ev.Y
		v.pick(ev.X, ev.Y)

	case uv.MouseReleaseEvent:
		v.dragging = false

	case uv.MouseMotionEvent:
		if v.dragging {
			dx, dy := ev.X-v.lastX, ev.Y-v.lastY
			v.spin.impulse(float64(dy)*dragScale, float64(dx)*dragScale, 0)
			v.lastX, v.lastY = ev.X, ev.Y
		}

	case uv.MouseWheelEvent:
		switch ev.Button {
		case uv.MouseWheelUp:
			v.zoomBy(zoomStep)
		case uv.MouseWheelDown:
			v.zoomBy(-zoomStep)
		}
	}
	return false
}

// zoomBy moves the camera along +Z, keeping it in front of the models.
func (v *viewer) zoomBy(d float64) {
	next := math.Max(-maxZoom, math.Min(v.stage.placements[0].Position.Z-1.5, v.zoom+d))
	v.stage.scene.Camera().MoveForward(next - v.zoom)
	v.zoom = next
}

// pick records the model under terminal cell (x, y).
func (v *viewer) pick(x, y int) {
	name, dist, ok := v.stage.pick(float64(x)+0.5, float64(y*2)+1)
	if !ok {
		v.status = ""
		return
	}
	v.status = fmt.Sprintf("picked %s at %.2f", name, dist)
}

// reload rebuilds the stage from fresh copies of the models. The camera
// returns to its starting distance.
func (v *viewer) reload() {
	ms, err := v.src.load(v.ctx)
	if err != nil {
		v.status = "reload failed: " + err.Error()
		return
	}
	st, err := newStage(ms, v.width, v.height*2, v.flags, v.logger)
	if err != nil {
		v.status = "reload failed: " + err.Error()
		return
	}
	v.stage = st
	v.zoom = 0
	v.status = fmt.Sprintf("reloaded %d models", len(ms))
}

func (v *viewer) frame(dt float64) error {
	// Key release events are unreliable, so held torque fades on its own.
	v.spin.impulse(v.torque.pitch*dt, v.torque.yaw*dt, v.torque.roll*dt)
	v.torque.pitch *= 0.9
	v.torque.yaw *= 0.9
	v.torque.roll *= 0.9
	v.spin.update()
	v.stage.rotate(v.spin.rotation())

	tris, err := v.stage.scene.Frame(v.stage.placements)
	if err != nil {
		return err
	}
	v.stage.scene.Draw(v.fb, tris)
	if v.wireframe {
		v.stage.scene.Renderer().DrawWireframe(v.fb, tris, wireColor)
	}

	area := v.term.Bounds()
	v.fb.Draw(v.term, area)
	v.drawHUD(area, len(tris))

	if err := v.term.Display(); err != nil {
		return fmt.Errorf("display: %w", err)
	}
	return nil
}

func (v *viewer) drawHUD(area uv.Rectangle, drawn int) {
	v.fpsFrames++
	if elapsed := time.Since(v.fpsTime); elapsed >= time.Second {
		v.fps = float64(v.fpsFrames) / elapsed.Seconds()
		v.fpsFrames = 0
		v.fpsTime = time.Now()
	}
	if !v.showHUD {
		return
	}

	top := fmt.Sprintf(" %.0f FPS  %d models  %d/%d triangles ",
		v.fps, len(v.stage.models), drawn, v.stage.triangles())
	render.DrawText(v.term, area, area.Min.X, area.Min.Y, top, hudColor)

	if v.status != "" {
		render.DrawText(v.term, area, area.Min.X, area.Max.Y-1, " "+v.status+" ", pickColor)
	}
}
