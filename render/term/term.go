// Package term draws a game.World on a terminal with tcell.
package term

import (
	"context"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/plus3/sparsecs/ecs"
	"github.com/plus3/sparsecs/game"
	"github.com/plus3/sparsecs/level"
	"github.com/plus3/sparsecs/render"
	"go.uber.org/zap"
)

// Terminals report key presses but not releases, so a press counts as held
// for this long.
const holdFor = 150 * time.Millisecond

// Canvas is the part of tcell.Screen the renderer draws through.
type Canvas interface {
	SetContent(x, y int, primary rune, combining []rune, style tcell.Style)
}

var tileGlyphs = map[level.Tile]rune{
	level.Wall:     '#',
	level.Start:    'S',
	level.End:      'E',
	level.Waypoint: '+',
	level.Enemy:    '.',
}

type Options struct {
	TickRate time.Duration
	// CellsPerTile is how many columns one level tile spans. Rows get half
	// as many, since terminal cells are about twice as tall as wide.
	CellsPerTile int
	Player       ecs.Entity
	Log          *zap.Logger
}

type direction int

const (
	left direction = iota
	right
	up
	down
)

type Renderer struct {
	world *game.World
	level *level.Level
	opts  Options

	held   [4]time.Time
	fire   time.Time
	facing [2]float32
}

func New(world *game.World, lvl *level.Level, opts Options) *Renderer {
	if opts.CellsPerTile <= 0 {
		opts.CellsPerTile = 4
	}
	if opts.Log == nil {
		opts.Log = zap.NewNop()
	}
	return &Renderer{world: world, level: lvl, opts: opts, facing: [2]float32{1, 0}}
}

// HandleEvent records a terminal event. It returns false when the user asked
// to quit.
func (t *Renderer) HandleEvent(ev tcell.Event, now time.Time) bool {
	key, ok := ev.(*tcell.EventKey)
	if !ok {
		return true
	}
	switch key.Key() {
	case tcell.KeyEscape, tcell.KeyCtrlC:
		return false
	case tcell.KeyLeft:
		t.press(left, now)
	case tcell.KeyRight:
		t.press(right, now)
	case tcell.KeyUp:
		t.press(up, now)
	case tcell.KeyDown:
		t.press(down, now)
	case tcell.KeyRune:
		switch r := key.Rune(); {
		case r == 'q':
			return false
		case r == 'a':
			t.press(left, now)
		case r == 'd':
			t.press(right, now)
		case r == 'w':
			t.press(up, now)
		case r == 's':
			t.press(down, now)
		case r == ' ':
			t.fire = now.Add(holdFor)
		case r >= '1' && r <= '9':
			t.world.Input.Slot = int(r - '1')
		}
	}
	return true
}

func (t *Renderer) press(d direction, now time.Time) {
	t.held[d] = now.Add(holdFor)
}

// UpdateInput writes the keys still considered held into the world's input.
// The aim point sits ahead of the player in the last direction moved.
func (t *Renderer) UpdateInput(now time.Time) {
	in := t.world.Input
	in.MoveX, in.MoveY = render.Axis(
		now.Before(t.held[left]),
		now.Before(t.held[right]),
		now.Before(t.held[up]),
		now.Before(t.held[down]),
	)
	if in.MoveX != 0 || in.MoveY != 0 {
		t.facing = [2]float32{in.MoveX, in.MoveY}
	}
	in.Fire = now.Before(t.fire)
	if pos, ok := ecs.Get[game.Position](t.world.Registry, t.opts.Player); ok {
		in.AimX = pos.X + t.facing[0]*100
		in.AimY = pos.Y + t.facing[1]*100
	}
}

// Cell maps a world position to a terminal cell.
func (t *Renderer) Cell(x, y float32) (col, row int) {
	tile, origin := float32(level.DefaultTileSize), level.Vec{}
	if t.level != nil {
		tile, origin = t.level.TileSize(), t.level.Offset()
	}
	cols := float32(t.opts.CellsPerTile)
	rows := float32(max(t.opts.CellsPerTile/2, 1))
	return int((x - origin.X) / tile * cols), int((y - origin.Y) / tile * rows)
}

// Draw paints the level then every entity with a Position and a Drawable.
func (t *Renderer) Draw(c Canvas) {
	if t.level != nil {
		t.drawLevel(c)
	}
	r := t.world.Registry
	ecs.Each2(r, func(e ecs.Entity, pos *game.Position, d *game.Drawable) {
		col, row := t.Cell(pos.X, pos.Y)
		style := tcell.StyleDefault.Foreground(tcell.NewRGBColor(int32(d.Color.R), int32(d.Color.G), int32(d.Color.B)))
		c.SetContent(col, row, glyphFor(r, e), nil, style)
	})
}

func (t *Renderer) drawLevel(c Canvas) {
	cols := t.opts.CellsPerTile
	rows := max(cols/2, 1)
	for y := 0; y < t.level.Height(); y++ {
		for x := 0; x < t.level.Width(); x++ {
			tile, _ := t.level.Tile(x, y)
			glyph, ok := tileGlyphs[tile]
			if !ok {
				continue
			}
			tc := t.level.Color(tile)
			style := tcell.StyleDefault.Foreground(tcell.NewRGBColor(int32(tc.R), int32(tc.G), int32(tc.B)))
			for dy := 0; dy < rows; dy++ {
				for dx := 0; dx < cols; dx++ {
					c.SetContent(x*cols+dx, y*rows+dy, glyph, nil, style)
				}
			}
		}
	}
}

func glyphFor(r *ecs.Registry, e ecs.Entity) rune {
	switch {
	case ecs.Has[game.PlayerMovement](r, e):
		return '@'
	case ecs.Has[game.Bullet](r, e):
		return '*'
	default:
		return 'o'
	}
}

// Run takes over the terminal and steps the world every tick until ctx is
// cancelled or the user quits.
func Run(ctx context.Context, world *game.World, lvl *level.Level, opts Options) error {
	screen, err := tcell.NewScreen()
	if err != nil {
		return err
	}
	if err := screen.Init(); err != nil {
		return err
	}
	defer screen.Fini()

	t := New(world, lvl, opts)
	tick := opts.TickRate
	if tick <= 0 {
		tick = time.Second / 60
	}
	ticker := time.NewTicker(tick)
	defer ticker.Stop()

	events := make(chan tcell.Event, 100)
	done := make(chan struct{})
	defer close(done)
	go pollEvents(screen.PollEvent, events, done)

	t.opts.Log.Info("terminal renderer started")
	for {
		select {
		case <-ctx.Done():
			return nil
		case ev := <-events:
			if _, ok := ev.(*tcell.EventResize); ok {
				screen.Sync()
			}
			if !t.HandleEvent(ev, time.Now()) {
				return nil
			}
		case now := <-ticker.C:
			t.UpdateInput(now)
			world.Step(tick.Seconds())
			screen.Clear()
			t.Draw(screen)
			screen.Show()
		}
	}
}

// pollEvents forwards events from poll until poll returns nil or done is
// closed. Closing done releases a send blocked on a full events channel.
func pollEvents(poll func() tcell.Event, events chan<- tcell.Event, done <-chan struct{}) {
	for {
		ev := poll()
		if ev == nil {
			return
		}
		select {
		case events <- ev:
		case <-done:
			return
		}
	}
}
