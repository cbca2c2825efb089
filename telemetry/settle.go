package telemetry

import "github.com/kamstrup/intmap"

// SettleTracker counts consecutive calm ticks per body. A body is settled
// once its speed has stayed below the threshold for the required ticks.
type SettleTracker struct {
	speed   float64
	ticks   int32
	calm    *intmap.Map[uint32, int32]
	settled int
}

// NewSettleTracker creates a tracker for the given speed threshold (m/s)
// and tick requirement.
func NewSettleTracker(speed float64, ticks int, capacity int) *SettleTracker {
	if ticks < 1 {
		ticks = 1
	}
	return &SettleTracker{
		speed: speed,
		ticks: int32(ticks),
		calm:  intmap.New[uint32, int32](capacity),
	}
}

// Update records one tick of motion for a body.
func (s *SettleTracker) Update(id uint32, speed float64) {
	prev, seen := s.calm.Get(id)
	wasSettled := prev >= s.ticks

	if speed >= s.speed {
		if !seen || prev != 0 {
			s.calm.Put(id, 0)
		}
		if wasSettled {
			s.settled--
		}
		return
	}

	if !wasSettled {
		next := prev + 1
		s.calm.Put(id, next)
		if next >= s.ticks {
			s.settled++
		}
	}
}

// Settled reports whether the body is currently settled.
func (s *SettleTracker) Settled(id uint32) bool {
	n, _ := s.calm.Get(id)
	return n >= s.ticks
}

// Count returns the number of settled bodies.
func (s *SettleTracker) Count() int {
	return s.settled
}

// Tracked returns the number of bodies seen so far.
func (s *SettleTracker) Tracked() int {
	return s.calm.Len()
}
