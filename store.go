package gridimg

import (
	"sync"

	"github.com/apex/log"
)

// Store holds the current render parameters and notifies subscribers on change
type Store struct {
	mu     sync.RWMutex
	params Params
	subs   map[int]func(Params)
	nextID int
}

// NewStore creates a store seeded with p (normalized)
func NewStore(p Params) *Store {
	p, err := p.Normalize()
	if err != nil {
		log.WithError(err).Warn("clamped initial render parameters")
	}
	return &Store{
		params: p,
		subs:   make(map[int]func(Params)),
	}
}

// Params returns a snapshot of the current parameters
func (s *Store) Params() Params {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.params
}

// Subscribe registers fn to be called with the new parameters after every change
func (s *Store) Subscribe(fn func(Params)) (unsubscribe func()) {
	s.mu.Lock()
	id := s.nextID
	s.nextID++
	s.subs[id] = fn
	s.mu.Unlock()

	return func() {
		s.mu.Lock()
		delete(s.subs, id)
		s.mu.Unlock()
	}
}

// Update applies fn to a copy of the parameters, clamps the result and, if
// anything changed, stores it and notifies subscribers. Subscribers run after
// the lock is released so they may read the store.
func (s *Store) Update(fn func(*Params)) Params {
	s.mu.Lock()
	next := s.params
	fn(&next)
	next, err := next.Normalize()
	if err != nil {
		log.WithError(err).Warn("clamped render parameters")
	}
	if next == s.params {
		s.mu.Unlock()
		return next
	}
	s.params = next
	subs := make([]func(Params), 0, len(s.subs))
	for _, fn := range s.subs {
		subs = append(subs, fn)
	}
	s.mu.Unlock()

	log.WithFields(log.Fields{
		"grid":     next.GridSize,
		"color":    next.GridColor,
		"width":    next.LineWidth,
		"diagonal": next.ShowDiagonal,
		"numbers":  next.ShowNumbers,
		"fit":      next.FitMode.String(),
	}).Debug("render parameters changed")

	for _, fn := range subs {
		fn(next)
	}
	return next
}

// SetGridSize sets the number of rows and columns
func (s *Store) SetGridSize(n int) Params {
	return s.Update(func(p *Params) { p.GridSize = n })
}

// SetGridColor sets the line and label color
func (s *Store) SetGridColor(c string) Params {
	return s.Update(func(p *Params) { p.GridColor = c })
}

// SetLineWidth sets the stroke width in pixels
func (s *Store) SetLineWidth(w float64) Params {
	return s.Update(func(p *Params) { p.LineWidth = w })
}

// SetShowDiagonal toggles the per-cell diagonals
func (s *Store) SetShowDiagonal(v bool) Params {
	return s.Update(func(p *Params) { p.ShowDiagonal = v })
}

// SetShowNumbers toggles the cell numbers
func (s *Store) SetShowNumbers(v bool) Params {
	return s.Update(func(p *Params) { p.ShowNumbers = v })
}

// SetFitMode selects stretch or contain
func (s *Store) SetFitMode(m FitMode) Params {
	return s.Update(func(p *Params) { p.FitMode = m })
}
