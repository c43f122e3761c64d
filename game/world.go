// File: game/world.go
package game

import (
	"log/slog"
	"sync"

	"github.com/lguibr/fruitfall/utils"
)

// Rand is the random source World draws spawn positions and kinds from.
type Rand interface {
	Intn(n int) int
}

// World owns the set of live falling objects and the id counter. Every
// operation takes the same mutex, so spawn/advance/cull/hit-test/reset never
// interleave.
type World struct {
	mu      sync.Mutex
	objects []*Object // insertion order; HitTest scans it front to back
	nextID  int64     // never reset, ids stay unique for the life of the World
	rng     Rand
	cfg     utils.Config
	logger  *slog.Logger
}

// NewWorld creates an empty world. A nil rng uses a time-seeded source.
func NewWorld(cfg utils.Config, rng Rand, logger *slog.Logger) *World {
	if rng == nil {
		rng = utils.NewLockedRand(0)
	}
	return &World{
		objects: make([]*Object, 0, cfg.SpawnCap),
		rng:     rng,
		cfg:     cfg,
		logger:  utils.OrDefault(logger).With("component", "world"),
	}
}

// Spawn adds one object at the top of the playfield unless the world is at
// the spawn cap. It reports the new object and whether one was created.
func (w *World) Spawn() (Object, bool) {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.spawnLocked()
}

// Advance moves every object down by one fall step.
func (w *World) Advance() {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.advanceLocked()
}

// Cull removes every object below the playfield bound and returns how many
// were removed.
func (w *World) Cull() int {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.cullLocked()
}

// Step runs spawn, advance and cull as one critical section and returns the
// resulting snapshot, so no reader can observe an object past the bound.
func (w *World) Step() string {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.spawnLocked()
	w.advanceLocked()
	w.cullLocked()
	return EncodeSnapshot(w.copyLocked())
}

// HitTest removes the first object (in insertion order) whose position is
// within the hit tolerance of (x, y) on both axes. At most one object is
// removed per call.
func (w *World) HitTest(x, y int) bool {
	_, ok := w.Remove(x, y)
	return ok
}

// Remove is HitTest that also returns the object that was removed.
func (w *World) Remove(x, y int) (Object, bool) {
	w.mu.Lock()
	defer w.mu.Unlock()
	for i, o := range w.objects {
		if utils.WithinTolerance(o.X, o.Y, x, y, w.cfg.HitTolerance) {
			removed := *o
			last := len(w.objects) - 1
			copy(w.objects[i:], w.objects[i+1:])
			w.objects[last] = nil
			w.objects = w.objects[:last]
			return removed, true
		}
	}
	return Object{}, false
}

// Reset clears every object. The id counter keeps counting.
func (w *World) Reset() {
	w.mu.Lock()
	defer w.mu.Unlock()
	clear(w.objects)
	w.objects = w.objects[:0]
}

// Serialize encodes the current live set as a snapshot payload.
func (w *World) Serialize() string {
	w.mu.Lock()
	defer w.mu.Unlock()
	return EncodeSnapshot(w.copyLocked())
}

// Objects returns a copy of the live set in insertion order.
func (w *World) Objects() []Object {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.copyLocked()
}

func (w *World) Len() int {
	w.mu.Lock()
	defer w.mu.Unlock()
	return len(w.objects)
}

func (w *World) spawnLocked() (Object, bool) {
	if len(w.objects) >= w.cfg.SpawnCap {
		return Object{}, false
	}
	x := w.rng.Intn(w.cfg.SpawnWidth)
	kind := Reward
	if w.rng.Intn(w.cfg.PenaltyDenominator) < w.cfg.PenaltyNumerator {
		kind = Penalty
	}
	o := &Object{ID: w.nextID, X: x, Y: 0, Kind: kind}
	w.nextID++
	w.objects = append(w.objects, o)
	w.logger.Debug("spawned object", "id", o.ID, "x", o.X, "kind", o.Kind)
	return *o, true
}

func (w *World) advanceLocked() {
	for _, o := range w.objects {
		o.Y += w.cfg.FallStep
	}
}

func (w *World) cullLocked() int {
	kept := w.objects[:0]
	for _, o := range w.objects {
		if o.Y <= w.cfg.CullBound {
			kept = append(kept, o)
		}
	}
	removed := len(w.objects) - len(kept)
	clear(w.objects[len(kept):])
	w.objects = kept
	return removed
}

func (w *World) copyLocked() []Object {
	out := make([]Object, len(w.objects))
	for i, o := range w.objects {
		out[i] = *o
	}
	return out
}
