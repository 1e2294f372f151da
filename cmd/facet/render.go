package main

import (
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/taigrr/facet/pkg/render"
)

func newRenderCmd() *cobra.Command {
	var (
		out           string
		width, height int
		rot           []float64
		wireframe     bool
		axes          bool
		sf            sceneFlags
	)

	cmd := &cobra.Command{
		Use:   "render [models...]",
		Short: "Render models to a PNG file",
		RunE: func(cmd *cobra.Command, args []string) error {
			if width <= 0 || height <= 0 {
				return fmt.Errorf("image size must be positive, got %dx%d", width, height)
			}
			r, err := vec3Flag("rot", rot)
			if err != nil {
				return err
			}

			logger := slog.Default()
			src, err := newModelSource(args, logger)
			if err != nil {
				return err
			}
			ms, err := src.load(cmd.Context())
			if err != nil {
				return err
			}
			st, err := newStage(ms, width, height, sf, logger)
			if err != nil {
				return err
			}
			st.rotate(r)

			tris, err := st.scene.Frame(st.placements)
			if err != nil {
				return err
			}
			fb := render.NewFramebuffer(width, height)
			st.scene.Draw(fb, tris)
			if wireframe {
				st.scene.Renderer().DrawWireframe(fb, tris, render.ColorWhite)
			}
			if axes {
				for _, p := range st.placements {
					st.scene.Renderer().DrawAxes(fb, p.Position, 1.5)
				}
			}
			if err := fb.SavePNG(out); err != nil {
				return err
			}

			logger.Info("rendered", "out", out, "models", len(ms), "triangles", st.triangles(), "drawn", len(tris))
			return nil
		},
	}

	fs := cmd.Flags()
	fs.StringVarP(&out, "out", "o", "facet.png", "output PNG path")
	fs.IntVar(&width, "width", 320, "image width in pixels")
	fs.IntVar(&height, "height", 240, "image height in pixels")
	fs.Float64SliceVar(&rot, "rot", []float64{30, 45, 0}, "model rotation x,y,z in degrees")
	fs.BoolVar(&wireframe, "wireframe", false, "outline triangles")
	fs.BoolVar(&axes, "axes", false, "draw world axes at each model")
	sf.register(cmd)

	return cmd
}
