package main

import (
	"os"
	"time"

	"github.com/charmbracelet/log"

	"viewer2d/scene"
	"viewer2d/world"
)

// reloadInterval is how many ticks pass between scene file checks.
const reloadInterval = 60

// sceneEntry records the last script that loaded successfully.
type sceneEntry struct {
	InputHash string
	Shapes    int
	LoadedAt  time.Time
}

// sceneReloader watches a scene file and swaps in a new model when its
// content changes. The built-in scene is never reloaded.
type sceneReloader struct {
	path   string
	logger *log.Logger
	last   sceneEntry
	ticks  int
	force  bool

	// apply receives the new model; onError receives load failures (nil clears).
	apply   func(*world.Model)
	onError func(error)
}

func newSceneReloader(path string, src []byte, logger *log.Logger) *sceneReloader {
	r := &sceneReloader{path: path, logger: logger}
	if src != nil {
		r.last = sceneEntry{InputHash: scene.Hash(src), LoadedAt: time.Now()}
	}
	return r
}

// Force makes the next Tick reload even an unchanged file.
func (r *sceneReloader) Force() {
	r.force = true
	r.ticks = reloadInterval
}

// Tick is called once per update; every reloadInterval ticks it checks the file.
func (r *sceneReloader) Tick() {
	if r.path == "" {
		return
	}
	r.ticks++
	if r.ticks < reloadInterval {
		return
	}
	r.ticks = 0
	r.check()
}

func (r *sceneReloader) check() {
	force := r.force
	r.force = false

	src, err := os.ReadFile(r.path)
	if err != nil {
		r.fail(err)
		return
	}
	hash := scene.Hash(src)
	if hash == r.last.InputHash && !force {
		return
	}

	model := world.NewModel()
	n, err := scene.Load(r.logger, model, r.path, src)
	if err != nil {
		// Remember the broken content so it is reported once, not every check.
		r.last.InputHash = hash
		r.fail(err)
		return
	}
	r.last = sceneEntry{InputHash: hash, Shapes: n, LoadedAt: time.Now()}
	r.logger.Info("scene reloaded", "file", r.path, "shapes", n)
	if r.onError != nil {
		r.onError(nil)
	}
	if r.apply != nil {
		r.apply(model)
	}
}

func (r *sceneReloader) fail(err error) {
	r.logger.Error("scene reload failed", "err", err)
	if r.onError != nil {
		r.onError(err)
	}
}
