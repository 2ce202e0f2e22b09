package game

// Input abstracts whatever device drives the player.
type Input interface {
	// Move returns the movement axis, each component in [-1, 1].
	Move() (x, y float32)
	// Aim returns the world position the player aims at.
	Aim() (x, y float32)
	Firing() bool
	// Weapon returns the arsenal slot the player asked for, if any.
	Weapon() (slot int, ok bool)
}

// Controls is the registry singleton holding the active Input.
type Controls struct {
	Input Input
}

// InputState is an Input whose fields are written directly by a renderer or
// a test.
type InputState struct {
	MoveX, MoveY float32
	AimX, AimY   float32
	Fire         bool
	Slot         int // -1 for no change
}

func (s *InputState) Move() (float32, float32) { return s.MoveX, s.MoveY }

func (s *InputState) Aim() (float32, float32) { return s.AimX, s.AimY }

func (s *InputState) Firing() bool { return s.Fire }

func (s *InputState) Weapon() (int, bool) { return s.Slot, s.Slot >= 0 }

// Reset clears per-frame state.
func (s *InputState) Reset() {
	*s = InputState{AimX: s.AimX, AimY: s.AimY, Slot: -1}
}
