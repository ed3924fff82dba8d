package entities

// World is the server world a match runs in
type World struct {
	Name string `json:"name"`
	Tick int64  `json:"tick"` // Ticks elapsed since the world loaded
}

// NewWorld creates a world at tick zero
func NewWorld(name string) *World {
	return &World{Name: name}
}

// Advance moves the world clock forward one tick and returns the new tick
func (w *World) Advance() int64 {
	w.Tick++
	return w.Tick
}
