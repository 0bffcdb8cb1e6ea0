package domain

// DisplayRange is the y-axis range for one chart, derived fresh per render.
// Min <= 0 <= Max holds whenever the input data spans or approaches zero.
type DisplayRange struct {
	Min float64
	Max float64
}
