// Package level loads tile-grid level files.
//
// A level file is a grid of single-byte tokens, one row per line:
//
//	w  wall
//	s  start
//	e  end
//	   (space) empty
//	+  waypoint
//	n  enemy lane
//
// Carriage returns are ignored so files saved with Windows line endings load
// unchanged. Every row must be as wide as the first one.
package level

import (
	"bufio"
	"errors"
	"fmt"
	"image/color"
	"io"
	"os"

	"go.uber.org/zap"
)

// Tile is the type of one grid cell.
type Tile uint8

const (
	Empty Tile = iota
	Start
	End
	Wall
	Enemy
	Waypoint
)

func (t Tile) String() string {
	switch t {
	case Empty:
		return "empty"
	case Start:
		return "start"
	case End:
		return "end"
	case Wall:
		return "wall"
	case Enemy:
		return "enemy"
	case Waypoint:
		return "waypoint"
	default:
		return fmt.Sprintf("tile(%d)", uint8(t))
	}
}

// Byte returns the file token of the tile.
func (t Tile) Byte() byte {
	switch t {
	case Start:
		return 's'
	case End:
		return 'e'
	case Wall:
		return 'w'
	case Enemy:
		return 'n'
	case Waypoint:
		return '+'
	default:
		return ' '
	}
}

func tileFor(c byte) (Tile, bool) {
	switch c {
	case 'w':
		return Wall, true
	case 's':
		return Start, true
	case 'e':
		return End, true
	case ' ':
		return Empty, true
	case '+':
		return Waypoint, true
	case 'n':
		return Enemy, true
	}
	return 0, false
}

var (
	// ErrEmptyLevel is returned for input without a single tile.
	ErrEmptyLevel = errors.New("level: no tiles")
	// ErrRaggedRows is returned when the tile count is not width*height.
	ErrRaggedRows = errors.New("level: rows differ in width")
	// ErrOutOfRange is returned for coordinates outside the grid.
	ErrOutOfRange = errors.New("level: tile out of range")
)

// DefaultTileSize is the edge length of a tile in world units.
const DefaultTileSize = 100

// Vec is a world-space position.
type Vec struct {
	X, Y float32
}

// Level is a parsed tile grid positioned in world space.
type Level struct {
	tiles    []Tile
	width    int
	height   int
	tileSize float32
	offset   Vec
	start    Vec
	colors   map[Tile]color.RGBA
}

var defaultColors = map[Tile]color.RGBA{
	Wall:     {200, 200, 200, 255},
	End:      {255, 80, 80, 255},
	Start:    {80, 255, 80, 255},
	Empty:    {25, 25, 25, 255},
	Enemy:    {255, 180, 0, 255},
	Waypoint: {80, 160, 255, 255},
}

// Option configures parsing.
type Option func(*options)

type options struct {
	offset Vec
	log    *zap.Logger
}

// WithOffset places the top-left corner of the grid at offset.
func WithOffset(offset Vec) Option {
	return func(o *options) {
		o.offset = offset
	}
}

// WithLogger sets the logger used to report unknown tokens.
func WithLogger(log *zap.Logger) Option {
	return func(o *options) {
		if log != nil {
			o.log = log
		}
	}
}

// Load reads and parses the level file at path.
func Load(path string, tileSize float32, opts ...Option) (*Level, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open level %s: %w", path, err)
	}
	defer f.Close()

	lvl, err := Parse(f, tileSize, opts...)
	if err != nil {
		return nil, fmt.Errorf("load level %s: %w", path, err)
	}
	return lvl, nil
}

// Parse reads a level from r. Unknown tokens are logged and skipped.
func Parse(r io.Reader, tileSize float32, opts ...Option) (*Level, error) {
	o := options{log: zap.NewNop()}
	for _, opt := range opts {
		opt(&o)
	}
	if tileSize <= 0 {
		tileSize = DefaultTileSize
	}

	lvl := &Level{
		tileSize: tileSize,
		offset:   o.offset,
		start:    o.offset,
		colors:   make(map[Tile]color.RGBA, len(defaultColors)),
	}
	for t, c := range defaultColors {
		lvl.colors[t] = c
	}

	br := bufio.NewReader(r)
	x, w, h := 0, 0, 0
	for {
		c, err := br.ReadByte()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read level: %w", err)
		}

		switch c {
		case '\r':
			continue
		case '\n':
			if w == 0 {
				w = x
			}
			x = 0
			h++
			continue
		}

		t, ok := tileFor(c)
		if !ok {
			o.log.Warn("unknown level tile", zap.String("token", string(rune(c))), zap.Int("row", h), zap.Int("column", x))
			continue
		}
		if t == Start {
			lvl.start = lvl.TilePosition(x, h)
		}
		lvl.tiles = append(lvl.tiles, t)
		x++
	}

	// A last row without a trailing newline still counts.
	if x != 0 {
		h++
		if w == 0 {
			w = x
		}
	}

	if len(lvl.tiles) == 0 {
		return nil, ErrEmptyLevel
	}
	if len(lvl.tiles) != w*h {
		return nil, fmt.Errorf("%w: %d tiles for %dx%d", ErrRaggedRows, len(lvl.tiles), w, h)
	}

	lvl.width = w
	lvl.height = h
	o.log.Debug("level parsed", zap.Int("width", w), zap.Int("height", h))
	return lvl, nil
}

// Width returns the number of columns.
func (l *Level) Width() int { return l.width }

// Height returns the number of rows.
func (l *Level) Height() int { return l.height }

// TileSize returns the edge length of a tile in world units.
func (l *Level) TileSize() float32 { return l.tileSize }

// Offset returns the world position of the grid's top-left corner.
func (l *Level) Offset() Vec { return l.offset }

// StartPosition returns the world position of the start tile. With several
// start tiles the last one wins; without any it is the grid offset.
func (l *Level) StartPosition() Vec { return l.start }

// Tile returns the tile at grid coordinates.
func (l *Level) Tile(x, y int) (Tile, error) {
	if x < 0 || y < 0 || x >= l.width || y >= l.height {
		return 0, fmt.Errorf("%w: %d,%d", ErrOutOfRange, x, y)
	}
	return l.tiles[y*l.width+x], nil
}

// TileAt returns the tile covering a world position.
func (l *Level) TileAt(p Vec) (Tile, error) {
	ax, ay := p.X-l.offset.X, p.Y-l.offset.Y
	if ax < 0 || ay < 0 {
		return 0, fmt.Errorf("%w: %.1f,%.1f", ErrOutOfRange, p.X, p.Y)
	}
	return l.Tile(int(ax/l.tileSize), int(ay/l.tileSize))
}

// TilePosition converts grid coordinates to the world position of the
// tile's top-left corner.
func (l *Level) TilePosition(x, y int) Vec {
	return Vec{
		X: l.offset.X + float32(x)*l.tileSize,
		Y: l.offset.Y + float32(y)*l.tileSize,
	}
}

// FindTiles returns the grid coordinates of every tile of type t in row-major
// order.
func (l *Level) FindTiles(t Tile) [][2]int {
	var out [][2]int
	for i, tile := range l.tiles {
		if tile == t {
			out = append(out, [2]int{i % l.width, i / l.width})
		}
	}
	return out
}

// Color returns the draw colour of a tile type. Unknown types are transparent.
func (l *Level) Color(t Tile) color.RGBA {
	return l.colors[t]
}

// SetColor overrides the draw colour of a tile type.
func (l *Level) SetColor(t Tile, c color.RGBA) {
	l.colors[t] = c
}

// Walkable reports whether a world position is inside the grid and not a
// wall.
func (l *Level) Walkable(p Vec) bool {
	t, err := l.TileAt(p)
	return err == nil && t != Wall
}
