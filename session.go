package gridimg

import (
	"errors"
	"io"
	"sync"

	"github.com/apex/log"
)

// Session connects the parameter store, the image loader and a surface. Any
// change of parameters, container bounds or image triggers one full render
// from the current inputs.
type Session struct {
	store  *Store
	loader Loader

	mu        sync.Mutex
	surface   *Surface
	container Bounds
	source    *SourceImage
	geometry  Geometry
	observers []func(*Surface, Geometry)

	unsubscribe func()
}

// NewSession creates a session with its own surface and renders the placeholder
func NewSession(store *Store, container Bounds) *Session {
	if store == nil {
		store = NewStore(DefaultParams())
	}
	s := &Session{
		store:     store,
		surface:   NewSurface(),
		container: container,
	}
	s.unsubscribe = store.Subscribe(func(Params) { s.Render() })
	s.Render()
	return s
}

// Close detaches the session from its store
func (s *Session) Close() {
	if s.unsubscribe != nil {
		s.unsubscribe()
		s.unsubscribe = nil
	}
}

// Store returns the parameter store driving this session
func (s *Session) Store() *Store { return s.store }

// Surface returns the surface frames are rendered onto (may be nil when detached)
func (s *Session) Surface() *Surface {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.surface
}

// AttachSurface replaces the drawing surface; nil detaches it and renders are
// skipped until a surface is attached again
func (s *Session) AttachSurface(surface *Surface) {
	s.mu.Lock()
	s.surface = surface
	s.mu.Unlock()
	if surface != nil {
		s.Render()
	}
}

// Image returns the current source image or nil when showing the placeholder
func (s *Session) Image() *SourceImage {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.source
}

// Geometry returns the layout of the last successful render
func (s *Session) Geometry() Geometry {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.geometry
}

// Container returns the bounds used by contain mode
func (s *Session) Container() Bounds {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.container
}

// SetContainer changes the container bounds and re-renders
func (s *Session) SetContainer(b Bounds) error {
	s.mu.Lock()
	s.container = b
	s.mu.Unlock()
	return s.Render()
}

// OnRender registers fn to be called after every successful render
func (s *Session) OnRender(fn func(*Surface, Geometry)) {
	s.mu.Lock()
	s.observers = append(s.observers, fn)
	s.mu.Unlock()
}

// Open decodes r in the background. The returned channel yields the load
// result after the session has applied it (or dropped it as stale).
func (s *Session) Open(r io.Reader) <-chan LoadResult {
	return s.await(s.loader.Load(r))
}

// OpenFile decodes the file at path in the background
func (s *Session) OpenFile(path string) <-chan LoadResult {
	return s.await(s.loader.LoadFile(path))
}

func (s *Session) await(pending <-chan LoadResult) <-chan LoadResult {
	done := make(chan LoadResult, 1)
	go func() {
		defer close(done)
		res := <-pending
		s.Accept(res)
		done <- res
	}()
	return done
}

// IsCurrent reports whether seq is the most recent load request
func (s *Session) IsCurrent(seq uint64) bool {
	return s.loader.IsCurrent(seq)
}

// Accept applies a load result if it is still the latest request. Decode
// failures keep the current image. It reports whether the image changed.
func (s *Session) Accept(res LoadResult) bool {
	if res.Err != nil {
		if s.loader.IsCurrent(res.Seq) {
			log.WithError(res.Err).Error("failed to load image, keeping previous")
		}
		return false
	}

	// check and swap under one lock: an older result never replaces a newer one
	s.mu.Lock()
	if !s.loader.IsCurrent(res.Seq) {
		s.mu.Unlock()
		log.WithField("seq", res.Seq).Debug("dropping stale image decode")
		return false
	}
	s.source = res.Image
	s.mu.Unlock()

	logImage(res.Image)
	s.Render()
	return true
}

// SetImage replaces the source image (nil shows the placeholder) and re-renders
func (s *Session) SetImage(img *SourceImage) error {
	s.mu.Lock()
	s.source = img
	s.mu.Unlock()
	logImage(img)
	return s.Render()
}

func logImage(img *SourceImage) {
	if img == nil {
		return
	}
	log.WithFields(log.Fields{
		"width":  img.Width,
		"height": img.Height,
		"format": img.Format,
	}).Info("image loaded")
}

// Render recomputes the geometry from the current inputs and draws a frame.
// A missing surface is not an error: the render is skipped and will happen
// on the next change.
func (s *Session) Render() error {
	s.mu.Lock()
	// read under s.mu: renders are serialized, so the last one to run sees
	// the newest parameters
	params := s.store.Params()
	surface := s.surface
	g, err := RenderFrame(surface, s.source, s.container, params)
	if err != nil {
		s.mu.Unlock()
		if errors.Is(err, ErrSurfaceUnavailable) {
			log.Debug("no surface attached, skipping render")
			return nil
		}
		log.WithError(err).Error("render failed")
		return err
	}
	s.geometry = g
	observers := append([]func(*Surface, Geometry){}, s.observers...)
	s.mu.Unlock()

	log.WithFields(log.Fields{
		"output": Bounds{Width: g.OutputWidth, Height: g.OutputHeight}.String(),
		"grid":   g.GridSize,
		"fit":    g.FitMode.String(),
	}).Debug("rendered frame")

	for _, fn := range observers {
		fn(surface, g)
	}
	return nil
}
