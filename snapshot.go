package main

import (
	"math"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"viewer2d/raster"
	"viewer2d/viewer"
)

// cameraMove is the camera motion applied before a snapshot is rendered.
type cameraMove struct {
	panX, panY float64
	rotate     float64 // degrees
	zoom       float64 // magnification, 1 leaves the zoom unchanged
}

func (m cameraMove) apply(v *viewer.Viewer) {
	cam := v.Camera()
	cam.AddTranslation(m.panX, m.panY)
	cam.AddRotation(m.rotate * math.Pi / 180)
	if m.zoom > 0 {
		cam.AddZoom(m.zoom - cam.ZoomFactor())
	}
}

// renderSnapshot paints one frame of v into an offscreen canvas.
func renderSnapshot(v *viewer.Viewer, m cameraMove) *raster.Canvas {
	m.apply(v)
	w, h := v.ViewportSize()
	c := raster.New(w, h)
	v.Paint(c)
	return c
}

func newSnapshotCmd(opts *options) *cobra.Command {
	var (
		out  string
		move = cameraMove{zoom: 1}
	)
	cmd := &cobra.Command{
		Use:   "snapshot",
		Short: "Render one frame to a PNG without opening a window",
		RunE: func(cmd *cobra.Command, args []string) error {
			v, cfg, err := setup(opts)
			if err != nil {
				return err
			}
			defer v.Close()

			path := snapshotPath(out, cfg.Scene)
			if err := renderSnapshot(v, move).SavePNG(path); err != nil {
				return err
			}
			cam := v.Camera()
			opts.logger.Info("snapshot saved", "file", path,
				"center", cam.Center, "zoom", cam.ZoomFactor(), "rotation", cam.Rotation)
			return nil
		},
	}
	cmd.Flags().StringVarP(&out, "out", "o", "", "output PNG (default: <scene>.png or snapshot.png)")
	cmd.Flags().Float64Var(&move.panX, "pan-x", 0, "pan the camera right by this many world units")
	cmd.Flags().Float64Var(&move.panY, "pan-y", 0, "pan the camera up by this many world units")
	cmd.Flags().Float64Var(&move.rotate, "rotate", 0, "rotate the camera counter-clockwise by degrees")
	cmd.Flags().Float64Var(&move.zoom, "zoom", 1, "camera magnification")
	return cmd
}

// snapshotPath names the output after the scene unless out is set.
func snapshotPath(out, scenePath string) string {
	if out != "" {
		return out
	}
	if scenePath == "" {
		return "snapshot.png"
	}
	base := filepath.Base(scenePath)
	return strings.TrimSuffix(base, filepath.Ext(base)) + ".png"
}
