package levels

import (
	"embed"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"

	"github.com/jakecoffman/cp"
	"github.com/milk9111/tilephysics/common"
)

//go:embed *.json
var LevelsFS embed.FS

// Gid flag bits. The remaining low bits are the tile id.
const (
	FlipHorizontal uint32 = 0x80000000
	FlipVertical   uint32 = 0x40000000
	FlipDiagonal   uint32 = 0x20000000

	gidMask = ^(FlipHorizontal | FlipVertical | FlipDiagonal)
)

var (
	ErrBadSize      = errors.New("levels: width and height must be positive")
	ErrLayerSize    = errors.New("levels: layer length does not match width*height")
	ErrLayerMeta    = errors.New("levels: layer_meta length does not match layers")
	ErrTilesetRange = errors.New("levels: tileset needs first_gid >= 1 and count >= 1")
)

type Level struct {
	Width     int         `json:"width"`
	Height    int         `json:"height"`
	TileSize  int         `json:"tile_size,omitempty"`
	Layers    [][]uint32  `json:"layers"`
	LayerMeta []LayerMeta `json:"layer_meta,omitempty"`
	Tilesets  []Tileset   `json:"tilesets"`
	Entities  []Entity    `json:"entities,omitempty"`
}

type LayerMeta struct {
	Name    string `json:"name,omitempty"`
	Physics bool   `json:"physics"`
}

type Entity struct {
	Type  string         `json:"type"`
	X     int            `json:"x"`
	Y     int            `json:"y"`
	Props map[string]any `json:"props,omitempty"`
}

// TileRect is a rect in tile image pixels, origin at the image top-left.
type TileRect struct {
	X int `json:"x"`
	Y int `json:"y"`
	W int `json:"w"`
	H int `json:"h"`
}

// Tileset maps the gids [FirstGID, FirstGID+Count) to tiles of one size.
type Tileset struct {
	Name     string `json:"name,omitempty"`
	FirstGID uint32 `json:"first_gid"`
	Count    int    `json:"count"`
	TileW    int    `json:"tile_w"`
	TileH    int    `json:"tile_h"`
	// Collision applies to every tile of the set; nil means the full tile.
	Collision *TileRect `json:"collision,omitempty"`
	// Tiles overrides single tiles by local id.
	Tiles map[int]TileDef `json:"tiles,omitempty"`
}

type TileDef struct {
	Collision *TileRect `json:"collision,omitempty"`
	// NoCollision makes the tile purely decorative.
	NoCollision bool `json:"no_collision,omitempty"`
}

// Tile is a decoded gid.
type Tile struct {
	ID    uint32
	FlipH bool
	FlipV bool
}

func DecodeGID(gid uint32) Tile {
	return Tile{
		ID:    gid & gidMask,
		FlipH: gid&FlipHorizontal != 0,
		FlipV: gid&FlipVertical != 0,
	}
}

func (l *Level) tileSize() int {
	if l.TileSize > 0 {
		return l.TileSize
	}
	return common.TileSize
}

// Tileset returns the set containing id.
func (l *Level) Tileset(id uint32) (*Tileset, bool) {
	for i := range l.Tilesets {
		ts := &l.Tilesets[i]
		if id >= ts.FirstGID && id < ts.FirstGID+uint32(ts.Count) {
			return ts, true
		}
	}
	return nil, false
}

// IsPhysicsLayer reports whether layer i takes part in collision. Levels
// without layer metadata treat every layer as solid.
func (l *Level) IsPhysicsLayer(i int) bool {
	if len(l.LayerMeta) == 0 {
		return true
	}
	return i < len(l.LayerMeta) && l.LayerMeta[i].Physics
}

// Spawn returns the world position of the first "spawn" entity.
func (l *Level) Spawn(topLeft cp.Vector) (cp.Vector, bool) {
	for _, e := range l.Entities {
		if e.Type == "spawn" {
			return topLeft.Add(cp.Vector{X: float64(e.X), Y: float64(e.Y)}), true
		}
	}
	return cp.Vector{}, false
}

func (l *Level) Validate() error {
	if l.Width <= 0 || l.Height <= 0 {
		return ErrBadSize
	}
	if len(l.LayerMeta) > 0 && len(l.LayerMeta) != len(l.Layers) {
		return ErrLayerMeta
	}
	for i, layer := range l.Layers {
		if len(layer) != l.Width*l.Height {
			return fmt.Errorf("layer %d has %d tiles: %w", i, len(layer), ErrLayerSize)
		}
	}
	for i, ts := range l.Tilesets {
		if ts.FirstGID < 1 || ts.Count < 1 {
			return fmt.Errorf("tileset %d: %w", i, ErrTilesetRange)
		}
	}
	return nil
}

// LoadLevel reads and validates a JSON level from fsys.
func LoadLevel(fsys fs.FS, name string) (*Level, error) {
	data, err := fs.ReadFile(fsys, name)
	if err != nil {
		return nil, fmt.Errorf("read level: %w", err)
	}
	var lvl Level
	if err := json.Unmarshal(data, &lvl); err != nil {
		return nil, fmt.Errorf("unmarshal level %s: %w", name, err)
	}
	if err := lvl.Validate(); err != nil {
		return nil, fmt.Errorf("level %s: %w", name, err)
	}
	return &lvl, nil
}

func LoadLevelFromFS(name string) (*Level, error) {
	return LoadLevel(LevelsFS, name)
}
