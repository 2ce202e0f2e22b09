// Package render holds what the window and terminal front ends share.
package render

// Axis turns four direction keys into a movement axis.
func Axis(left, right, up, down bool) (x, y float32) {
	if left {
		x--
	}
	if right {
		x++
	}
	if up {
		y--
	}
	if down {
		y++
	}
	return x, y
}
