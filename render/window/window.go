// Package window draws a game.World in a desktop window with ebiten.
package window

import (
	"image/color"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"github.com/plus3/sparsecs/ecs"
	"github.com/plus3/sparsecs/ecs/debugui"
	debugebiten "github.com/plus3/sparsecs/ecs/debugui/ebiten"
	"github.com/plus3/sparsecs/game"
	"github.com/plus3/sparsecs/level"
	"github.com/plus3/sparsecs/render"
	"go.uber.org/zap"
)

var (
	background = color.RGBA{30, 30, 36, 255}
	barBack    = color.RGBA{100, 100, 100, 255}
	barFront   = color.RGBA{100, 200, 100, 255}
)

var slotKeys = []ebiten.Key{
	ebiten.KeyDigit1, ebiten.KeyDigit2, ebiten.KeyDigit3,
	ebiten.KeyDigit4, ebiten.KeyDigit5, ebiten.KeyDigit6,
}

type Options struct {
	Title    string
	Width    int
	Height   int
	TickRate time.Duration
	// Debug enables the ImGui inspector overlay, toggled with F1.
	Debug bool
	Log   *zap.Logger
}

// Game implements ebiten.Game over a game.World.
type Game struct {
	world *game.World
	level *level.Level
	opts  Options
	dt    float64
	maxHP map[ecs.Entity]int
	debug *debugLayer
}

// debugLayer is the ImGui overlay drawn over the game.
type debugLayer struct {
	backend debugebiten.ImguiBackend
	overlay *debugui.Overlay
	timer   *debugui.FrameTimer
}

func New(world *game.World, lvl *level.Level, opts Options) *Game {
	if opts.Log == nil {
		opts.Log = zap.NewNop()
	}
	return &Game{
		world: world,
		level: lvl,
		opts:  opts,
		dt:    opts.TickRate.Seconds(),
		maxHP: make(map[ecs.Entity]int),
	}
}

// Run opens the window and blocks until it is closed.
func Run(world *game.World, lvl *level.Level, opts Options) error {
	g := New(world, lvl, opts)
	if opts.Debug {
		g.debug = &debugLayer{
			backend: debugebiten.NewImguiBackend(opts.Title, opts.Width, opts.Height),
			overlay: debugui.NewOverlay(world.Registry, world.Scheduler),
			timer:   debugui.NewFrameTimer(),
		}
		opts.Log.Info("debug overlay enabled", zap.String("toggle", "F1"))
	}
	ebiten.SetWindowSize(opts.Width, opts.Height)
	ebiten.SetWindowTitle(opts.Title)
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	if opts.TickRate > 0 {
		ebiten.SetTPS(int(time.Second / opts.TickRate))
	}
	opts.Log.Info("window opened", zap.Int("width", opts.Width), zap.Int("height", opts.Height))
	return ebiten.RunGame(g)
}

func (g *Game) Update() error {
	if g.debug != nil {
		g.debug.backend.BeginFrame()
		defer g.debug.backend.EndFrame()
		if inpututil.IsKeyJustPressed(ebiten.KeyF1) {
			g.debug.overlay.Visible = !g.debug.overlay.Visible
		}
	}
	wantMouse, wantKeyboard := g.captured()

	if !wantKeyboard && (ebiten.IsKeyPressed(ebiten.KeyQ) || ebiten.IsKeyPressed(ebiten.KeyEscape)) {
		return ebiten.Termination
	}

	in := g.world.Input
	if wantKeyboard || wantMouse {
		in.Reset()
	}
	if !wantKeyboard {
		g.readKeys(in)
	}
	if !wantMouse {
		mx, my := ebiten.CursorPosition()
		in.AimX, in.AimY = float32(mx), float32(my)
		in.Fire = in.Fire || ebiten.IsMouseButtonPressed(ebiten.MouseButtonLeft)
	}

	res := g.world.Step(g.dt)
	if res.Destroyed > 0 {
		g.opts.Log.Debug("entities destroyed", zap.Int("count", res.Destroyed))
		for e := range g.maxHP {
			if !g.world.Registry.Exists(e) {
				delete(g.maxHP, e)
			}
		}
	}

	if g.debug != nil {
		g.debug.overlay.Render(g.debug.timer.GetDeltaTime())
	}
	return nil
}

// captured reports whether the overlay consumed the mouse or keyboard on the
// last frame.
func (g *Game) captured() (mouse, keyboard bool) {
	state, ok := ecs.ReadSingleton[debugui.ImguiInputState](g.world.Registry)
	if !ok {
		return false, false
	}
	return state.WantCaptureMouse, state.WantCaptureKeyboard
}

func (g *Game) readKeys(in *game.InputState) {
	in.MoveX, in.MoveY = render.Axis(
		ebiten.IsKeyPressed(ebiten.KeyA) || ebiten.IsKeyPressed(ebiten.KeyArrowLeft),
		ebiten.IsKeyPressed(ebiten.KeyD) || ebiten.IsKeyPressed(ebiten.KeyArrowRight),
		ebiten.IsKeyPressed(ebiten.KeyW) || ebiten.IsKeyPressed(ebiten.KeyArrowUp),
		ebiten.IsKeyPressed(ebiten.KeyS) || ebiten.IsKeyPressed(ebiten.KeyArrowDown),
	)
	in.Fire = ebiten.IsKeyPressed(ebiten.KeySpace)
	for i, k := range slotKeys {
		if inpututil.IsKeyJustPressed(k) {
			in.Slot = i
		}
	}
}

func (g *Game) Draw(screen *ebiten.Image) {
	screen.Fill(background)
	if g.level != nil {
		g.drawLevel(screen)
	}

	r := g.world.Registry
	ecs.Each3(r, func(e ecs.Entity, pos *game.Position, shape *game.CircleCollider, d *game.Drawable) {
		vector.DrawFilledCircle(screen, pos.X, pos.Y, shape.Radius, d.Color, true)
	})
	ecs.Each2(r, func(e ecs.Entity, pos *game.Position, h *game.Health) {
		g.drawHealth(screen, e, pos, h)
	})

	if g.debug != nil {
		g.debug.backend.Draw(screen)
	}
}

func (g *Game) drawLevel(screen *ebiten.Image) {
	size := g.level.TileSize()
	for y := 0; y < g.level.Height(); y++ {
		for x := 0; x < g.level.Width(); x++ {
			t, err := g.level.Tile(x, y)
			if err != nil || t == level.Empty {
				continue
			}
			p := g.level.TilePosition(x, y)
			vector.DrawFilledRect(screen, p.X, p.Y, size, size, g.level.Color(t), false)
		}
	}
}

// drawHealth draws a bar above the entity scaled to the highest HP seen.
func (g *Game) drawHealth(screen *ebiten.Image, e ecs.Entity, pos *game.Position, h *game.Health) {
	if h.HP > g.maxHP[e] {
		g.maxHP[e] = h.HP
	}
	if g.maxHP[e] <= 0 {
		return
	}
	const barWidth, barHeight = 40, 4
	pct := float32(h.HP) / float32(g.maxHP[e])
	var lift float32 = 10
	if c, ok := ecs.Get[game.CircleCollider](g.world.Registry, e); ok {
		lift += c.Radius
	}
	x, y := pos.X-barWidth/2, pos.Y-lift-barHeight
	vector.DrawFilledRect(screen, x, y, barWidth, barHeight, barBack, false)
	vector.DrawFilledRect(screen, x, y, barWidth*pct, barHeight, barFront, false)
}

func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	if g.debug != nil {
		g.debug.backend.Layout(outsideWidth, outsideHeight)
	}
	return outsideWidth, outsideHeight
}
