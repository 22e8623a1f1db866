package main

import (
	"errors"
	"io/fs"
	"os"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"github.com/jakecoffman/cp"
	"github.com/milk9111/tilephysics/common"
	"github.com/milk9111/tilephysics/levels"
	"golang.org/x/image/colornames"
)

const levelsDir = "levels"

// loadLevel prefers levels/ on disk so edits reload without a rebuild.
func loadLevel(name string) (*levels.Level, error) {
	lvl, err := levels.LoadLevel(os.DirFS(levelsDir), name)
	if errors.Is(err, fs.ErrNotExist) {
		return levels.LoadLevelFromFS(name)
	}
	return lvl, err
}

// drawLevel fills every tile cell. Physics layers are drawn solid, decor faded.
func drawLevel(screen *ebiten.Image, lvl *levels.Level, topLeft cp.Vector, cam cp.Vector) {
	if lvl == nil {
		return
	}
	size := lvl.TileSize
	if size <= 0 {
		size = common.TileSize
	}
	for li, cells := range lvl.Layers {
		clr := colornames.Darkolivegreen
		if lvl.IsPhysicsLayer(li) {
			clr = colornames.Slategray
		}
		for i, gid := range cells {
			if gid == 0 {
				continue
			}
			tile := levels.DecodeGID(gid)
			ts, ok := lvl.Tileset(tile.ID)
			if !ok {
				continue
			}
			x, y := i%lvl.Width, i/lvl.Width
			px := topLeft.X + float64(x*size) - cam.X
			py := topLeft.Y + float64((y+1)*size-ts.TileH) - cam.Y
			vector.FillRect(screen, float32(px), float32(py), float32(ts.TileW), float32(ts.TileH), clr, false)
		}
	}
}
