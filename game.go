package main

import (
	"fmt"
	"image/color"
	"image/png"
	"os"

	"github.com/charmbracelet/log"
	"github.com/hajimehoshi/ebiten/v2"
	"golang.org/x/image/font"

	"viewer2d/config"
	"viewer2d/ui"
	"viewer2d/viewer"
	"viewer2d/world"
)

var colorHUD = color.RGBA{40, 40, 40, 255}

// Game is the ebiten host of one viewer. The screen keeps its content between
// frames and is repainted only after the viewer asks for it.
type Game struct {
	viewer   *viewer.Viewer
	input    *InputSystem
	ui       *ui.UISystem
	reloader *sceneReloader
	face     font.Face
	logger   *log.Logger

	dirty               bool
	showHUD             bool
	screenshotRequested bool
}

func NewGame(v *viewer.Viewer, logger *log.Logger, scenePath string) *Game {
	g := &Game{
		viewer:  v,
		logger:  logger,
		face:    LoadUIFont(logger),
		dirty:   true,
		showHUD: true,
	}
	v.SetRepaintFunc(g.Invalidate)
	v.OnPropertyChange(func(pc viewer.PropertyChange) {
		logger.Debug("property changed", "name", pc.Name)
		g.Invalidate()
	})

	g.input = NewInputSystem(g)
	g.ui = ui.NewUISystem(v, g.face, DrawTextLines)

	var src []byte
	if scenePath != "" {
		src, _ = os.ReadFile(scenePath)
	}
	g.reloader = newSceneReloader(scenePath, src, logger)
	g.reloader.apply = func(m *world.Model) { v.SetModel(m) }
	g.reloader.onError = func(err error) {
		g.ui.Debug.SetError(err)
		g.Invalidate()
	}
	return g
}

// Invalidate schedules a repaint. Any number of calls before the next Draw
// produce a single frame.
func (g *Game) Invalidate() {
	g.dirty = true
}

func (g *Game) Update() error {
	g.input.Update()
	g.reloader.Tick()
	return nil
}

func (g *Game) Draw(screen *ebiten.Image) {
	if !g.dirty {
		return
	}
	g.dirty = false

	g.viewer.Paint(screenSurface{dst: screen})
	if g.showHUD {
		cam := g.viewer.Camera()
		status := ui.Status(cam.Center.X, cam.Center.Y, cam.ZoomFactor(), cam.Rotation, g.viewer.State())
		status += fmt.Sprintf("\nunity %d  shapes %d", g.viewer.Unity(), g.viewer.Model().Len())
		DrawTextLines(screen, g.face, status, int(config.ButtonMargin), int(config.ButtonMargin), colorHUD)
	}
	g.ui.Draw(screen)

	if g.screenshotRequested {
		g.screenshotRequested = false
		g.saveScreenshot(screen)
	}
}

func (g *Game) saveScreenshot(screen *ebiten.Image) {
	f, err := os.Create("screenshot.png")
	if err != nil {
		g.logger.Error("screenshot", "err", err)
		return
	}
	defer f.Close()
	if err := png.Encode(f, screen); err != nil {
		g.logger.Error("screenshot", "err", err)
		return
	}
	g.logger.Info("screenshot saved", "file", "screenshot.png")
}

func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	g.viewer.OnResizeEvent(outsideWidth, outsideHeight)
	return outsideWidth, outsideHeight
}
