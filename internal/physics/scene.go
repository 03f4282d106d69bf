package physics

import (
	"fmt"
	"io"

	"github.com/charmbracelet/log"
)

// BodyID is a handle to a body slot in a Scene. A handle goes stale once
// its body is purged; the slot may then be reused under a new generation.
type BodyID struct {
	index int
	gen   uint32
}

// EntryID identifies a registered force creator.
type EntryID int

type slot struct {
	body *Body
	gen  uint32
}

type entry struct {
	id      EntryID
	fn      ForceCreator
	aux     any
	release func(any)
	bodies  []*Body
	ids     []BodyID
	dead    bool
}

// SceneConfig configures a Scene.
type SceneConfig struct {
	// Logger receives purge diagnostics at debug level.
	// Nil discards everything.
	Logger *log.Logger
}

// Scene owns a set of bodies and the force creators acting on them.
type Scene struct {
	slots   []slot
	free    []int
	bodies  []*Body // insertion order
	entries []*entry
	nextID  EntryID
	logger  *log.Logger
}

// NewScene creates an empty scene.
func NewScene(cfg SceneConfig) *Scene {
	logger := cfg.Logger
	if logger == nil {
		logger = log.NewWithOptions(io.Discard, log.Options{Level: log.WarnLevel})
	}
	return &Scene{logger: logger}
}

// AddBody transfers ownership of b to the scene and returns its handle.
// Panics if b is nil or already belongs to a scene.
func (s *Scene) AddBody(b *Body) BodyID {
	if b == nil {
		panic("physics: AddBody called with nil body")
	}
	if b.scene != nil {
		panic(fmt.Sprintf("physics: %s body already belongs to a scene", b.kind))
	}

	var idx int
	if n := len(s.free); n > 0 {
		idx = s.free[n-1]
		s.free = s.free[:n-1]
	} else {
		idx = len(s.slots)
		s.slots = append(s.slots, slot{gen: 1})
	}
	s.slots[idx].body = b

	b.scene = s
	b.id = BodyID{index: idx, gen: s.slots[idx].gen}
	s.bodies = append(s.bodies, b)
	return b.id
}

// Bodies returns the number of bodies in the scene, including those
// flagged for removal but not yet purged.
func (s *Scene) Bodies() int {
	return len(s.bodies)
}

// BodyAt returns the i-th body in insertion order.
func (s *Scene) BodyAt(i int) *Body {
	return s.bodies[i]
}

// Body resolves a handle. It reports false for stale handles.
func (s *Scene) Body(id BodyID) (*Body, bool) {
	if id.index < 0 || id.index >= len(s.slots) {
		return nil, false
	}
	sl := s.slots[id.index]
	if sl.gen != id.gen || sl.body == nil {
		return nil, false
	}
	return sl.body, true
}

// Entries returns the number of registered force creators.
func (s *Scene) Entries() int {
	return len(s.entries)
}

// AddForceCreator registers fn to run on every Step against one or two
// bodies owned by this scene. The entry is dropped once any of its
// bodies is removed; release, if non-nil, is then called with aux exactly
// once. Panics on zero or more than two bodies, or a body owned by
// another scene.
func (s *Scene) AddForceCreator(fn ForceCreator, aux any, release func(any), bodies ...*Body) EntryID {
	if fn == nil {
		panic("physics: nil force creator")
	}
	if len(bodies) == 0 || len(bodies) > 2 {
		panic(fmt.Sprintf("physics: force creator needs 1 or 2 bodies, got %d", len(bodies)))
	}

	e := &entry{
		fn:      fn,
		aux:     aux,
		release: release,
		bodies:  make([]*Body, len(bodies)),
		ids:     make([]BodyID, len(bodies)),
	}
	for i, b := range bodies {
		if b == nil || b.scene != s {
			panic("physics: force creator references a body not owned by this scene")
		}
		e.bodies[i] = b
		e.ids[i] = b.id
	}

	s.nextID++
	e.id = s.nextID
	s.entries = append(s.entries, e)
	return e.id
}

// live reports whether every body referenced by e is still valid.
func (s *Scene) live(e *entry) bool {
	for i, b := range e.bodies {
		if b.removed {
			return false
		}
		if cur, ok := s.Body(e.ids[i]); !ok || cur != b {
			return false
		}
	}
	return true
}

// Step advances the scene by dt seconds: every live force creator runs in
// registration order, every body not flagged for removal is integrated,
// then removed bodies and the entries referencing them are purged.
// Creators registered during the step run in the same step.
// A zero dt only purges bodies already flagged for removal.
func (s *Scene) Step(dt float64) {
	if dt == 0 {
		s.purge()
		return
	}

	for i := 0; i < len(s.entries); i++ {
		e := s.entries[i]
		if e.dead {
			continue
		}
		if !s.live(e) {
			e.dead = true
			continue
		}
		e.fn(e.bodies, e.aux)
	}

	for _, b := range s.bodies {
		if !b.removed {
			b.tick(dt)
		}
	}

	s.purge()
}

func (s *Scene) purge() {
	kept := s.bodies[:0]
	bodies := 0
	for _, b := range s.bodies {
		if b.removed {
			s.detach(b)
			bodies++
			continue
		}
		kept = append(kept, b)
	}
	clear(s.bodies[len(kept):])
	s.bodies = kept

	live := s.entries[:0]
	entries := 0
	for _, e := range s.entries {
		if e.dead || !s.live(e) {
			e.free()
			entries++
			continue
		}
		live = append(live, e)
	}
	clear(s.entries[len(live):])
	s.entries = live

	if bodies > 0 || entries > 0 {
		s.logger.Debug("purged", "bodies", bodies, "entries", entries,
			"remaining_bodies", len(s.bodies), "remaining_entries", len(s.entries))
	}
}

func (s *Scene) detach(b *Body) {
	sl := &s.slots[b.id.index]
	sl.body = nil
	sl.gen++
	s.free = append(s.free, b.id.index)
	b.scene = nil
}

func (e *entry) free() {
	if e.release != nil {
		e.release(e.aux)
		e.release = nil
	}
	e.aux = nil
}

// Close releases every entry and body. It is safe to call more than once;
// the scene is empty afterwards.
func (s *Scene) Close() {
	for _, e := range s.entries {
		e.free()
	}
	for _, b := range s.bodies {
		s.detach(b)
	}
	if len(s.bodies) > 0 || len(s.entries) > 0 {
		s.logger.Debug("closed", "bodies", len(s.bodies), "entries", len(s.entries))
	}
	s.entries = nil
	s.bodies = nil
}
