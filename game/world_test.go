// File: game/world_test.go
package game

import (
	"sync"
	"sync/atomic"
	"testing"

	"github.com/lguibr/fruitfall/utils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWorld_SpawnRespectsCap(t *testing.T) {
	cfg := utils.DefaultConfig()
	w := NewWorld(cfg, utils.NewLockedRand(1), nil)

	for i := 0; i < cfg.SpawnCap; i++ {
		_, ok := w.Spawn()
		assert.True(t, ok, "spawn %d should succeed below the cap", i)
		assert.LessOrEqual(t, w.Len(), cfg.SpawnCap)
	}
	for i := 0; i < 5; i++ {
		_, ok := w.Spawn()
		assert.False(t, ok, "spawn at cap must be a no-op")
	}
	assert.Equal(t, cfg.SpawnCap, w.Len())
}

func TestWorld_SpawnPositionAndKind(t *testing.T) {
	rng := newScriptedRand().spawnAt(500, Reward).spawnAt(10, Penalty)
	w := NewWorld(utils.DefaultConfig(), rng, nil)

	first, ok := w.Spawn()
	require.True(t, ok)
	assert.Equal(t, Object{ID: 0, X: 500, Y: 0, Kind: Reward}, first)

	second, ok := w.Spawn()
	require.True(t, ok)
	assert.Equal(t, Object{ID: 1, X: 10, Y: 0, Kind: Penalty}, second)
}

func TestWorld_PenaltyRatio(t *testing.T) {
	// One x draw and one kind draw per spawn; kind draws cover [0,5).
	rng := newScriptedRand(1, 0, 2, 1, 3, 2, 4, 3, 5, 4)
	w := NewWorld(utils.DefaultConfig(), rng, nil)

	var kinds []Kind
	for i := 0; i < 5; i++ {
		o, ok := w.Spawn()
		require.True(t, ok)
		kinds = append(kinds, o.Kind)
	}
	assert.Equal(t, []Kind{Penalty, Penalty, Reward, Reward, Reward}, kinds)
}

func TestWorld_SpawnXStaysInRange(t *testing.T) {
	cfg := utils.DefaultConfig()
	cfg.SpawnCap = 1000
	w := NewWorld(cfg, utils.NewLockedRand(99), nil)
	for i := 0; i < cfg.SpawnCap; i++ {
		w.Spawn()
	}
	for _, o := range w.Objects() {
		assert.GreaterOrEqual(t, o.X, 0)
		assert.Less(t, o.X, cfg.SpawnWidth)
		assert.Equal(t, 0, o.Y)
	}
}

func TestWorld_AdvanceMovesEveryObject(t *testing.T) {
	rng := newScriptedRand().spawnAt(1, Reward).spawnAt(2, Penalty)
	w := NewWorld(utils.DefaultConfig(), rng, nil)
	w.Spawn()
	w.Spawn()

	w.Advance()
	w.Advance()
	for _, o := range w.Objects() {
		assert.Equal(t, 26, o.Y)
	}
}

func TestWorld_CullBoundary(t *testing.T) {
	w := NewWorld(utils.DefaultConfig(), newScriptedRand().spawnAt(300, Reward), nil)
	w.Spawn()

	// 38 steps of 13 reach 494, the 39th reaches 507.
	for i := 0; i < 38; i++ {
		w.Advance()
		assert.Zero(t, w.Cull())
	}
	require.Equal(t, 1, w.Len())
	assert.Equal(t, 494, w.Objects()[0].Y)

	w.Advance()
	assert.Equal(t, 1, w.Cull())
	assert.Zero(t, w.Len())
}

func TestWorld_CullKeepsObjectsAtTheBound(t *testing.T) {
	cfg := utils.DefaultConfig()
	cfg.FallStep = 250
	w := NewWorld(cfg, newScriptedRand().spawnAt(1, Reward), nil)
	w.Spawn()

	w.Advance()
	w.Advance()
	assert.Zero(t, w.Cull(), "y == bound is still in play")
	w.Advance()
	assert.Equal(t, 1, w.Cull())
}

func TestWorld_StepNeverExposesOutOfBounds(t *testing.T) {
	cfg := utils.DefaultConfig()
	w := NewWorld(cfg, utils.NewLockedRand(5), nil)

	for tick := 0; tick < 200; tick++ {
		payload := w.Step()
		objects, err := ParseSnapshot(payload)
		require.NoError(t, err)
		assert.LessOrEqual(t, len(objects), cfg.SpawnCap)
		for _, o := range objects {
			assert.LessOrEqual(t, o.Y, cfg.CullBound, "tick %d exposed %+v", tick, o)
		}
	}
}

func TestWorld_HitScenario(t *testing.T) {
	w := NewWorld(utils.DefaultConfig(), newScriptedRand().spawnAt(500, Reward), nil)
	w.Spawn()
	w.Advance()

	objects := w.Objects()
	require.Len(t, objects, 1)
	assert.Equal(t, 13, objects[0].Y)

	assert.True(t, w.HitTest(505, 10), "click within tolerance should hit")
	assert.Zero(t, w.Len())
	assert.False(t, w.HitTest(505, 10), "nothing left to hit")
}

func TestWorld_HitTestRemovesAtMostOne(t *testing.T) {
	rng := newScriptedRand().spawnAt(100, Reward).spawnAt(110, Penalty).spawnAt(900, Reward)
	w := NewWorld(utils.DefaultConfig(), rng, nil)
	w.Spawn()
	w.Spawn()
	w.Spawn()

	removed, ok := w.Remove(105, 0)
	require.True(t, ok)
	assert.Equal(t, int64(0), removed.ID, "first match in insertion order wins")
	assert.Equal(t, 2, w.Len())

	removed, ok = w.Remove(105, 0)
	require.True(t, ok)
	assert.Equal(t, int64(1), removed.ID)

	assert.False(t, w.HitTest(105, 0))
	assert.Equal(t, 1, w.Len())
}

func TestWorld_HitTestTolerance(t *testing.T) {
	testCases := []struct {
		name string
		x, y int
		hit  bool
	}{
		{"exact", 100, 0, true},
		{"dx 49", 149, 0, true},
		{"dx 50", 150, 0, false},
		{"dx -50", 50, 0, false},
		{"dy 49", 100, 49, true},
		{"dy -50", 100, -50, false},
		{"both 49", 51, -49, true},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			w := NewWorld(utils.DefaultConfig(), newScriptedRand().spawnAt(100, Reward), nil)
			w.Spawn()
			assert.Equal(t, tc.hit, w.HitTest(tc.x, tc.y))
		})
	}
}

func TestWorld_ResetIsIdempotentAndKeepsIDs(t *testing.T) {
	rng := newScriptedRand().spawnAt(1, Reward).spawnAt(2, Reward).spawnAt(3, Reward)
	w := NewWorld(utils.DefaultConfig(), rng, nil)
	w.Spawn()
	w.Spawn()

	w.Reset()
	assert.Zero(t, w.Len())
	w.Reset()
	assert.Zero(t, w.Len())
	assert.Equal(t, "", w.Serialize())

	o, ok := w.Spawn()
	require.True(t, ok)
	assert.Equal(t, int64(2), o.ID, "ids are not reused after reset")
}

func TestWorld_Serialize(t *testing.T) {
	rng := newScriptedRand().spawnAt(500, Reward).spawnAt(20, Penalty)
	w := NewWorld(utils.DefaultConfig(), rng, nil)
	w.Spawn()
	w.Spawn()
	w.Advance()

	assert.Equal(t, "0,500,13,;1,20,13,"+PenaltyMarker+";", w.Serialize())
}

func TestWorld_ConcurrentAccess(t *testing.T) {
	cfg := utils.DefaultConfig()
	w := NewWorld(cfg, utils.NewLockedRand(3), nil)

	var wg sync.WaitGroup
	wg.Add(3)
	go func() {
		defer wg.Done()
		for i := 0; i < 500; i++ {
			w.Step()
		}
	}()
	go func() {
		defer wg.Done()
		for i := 0; i < 500; i++ {
			w.HitTest(i%cfg.SpawnWidth, (i*13)%cfg.CullBound)
		}
	}()
	go func() {
		defer wg.Done()
		for i := 0; i < 50; i++ {
			w.Reset()
			_ = w.Serialize()
		}
	}()
	wg.Wait()

	assert.LessOrEqual(t, w.Len(), cfg.SpawnCap)
	seen := map[int64]bool{}
	for _, o := range w.Objects() {
		assert.False(t, seen[o.ID], "duplicate id %d", o.ID)
		seen[o.ID] = true
	}
}

func TestWorld_ConcurrentHitTestRemovesOnce(t *testing.T) {
	const (
		trials  = 50
		hitters = 16
	)
	for trial := 0; trial < trials; trial++ {
		w := NewWorld(utils.DefaultConfig(), newScriptedRand().spawnAt(100, Reward), nil)
		_, ok := w.Spawn()
		require.True(t, ok)

		var hits atomic.Int32
		start := make(chan struct{})
		var wg sync.WaitGroup
		wg.Add(hitters)
		for i := 0; i < hitters; i++ {
			go func() {
				defer wg.Done()
				<-start
				if w.HitTest(100, 0) {
					hits.Add(1)
				}
			}()
		}
		close(start)
		wg.Wait()

		require.Equal(t, int32(1), hits.Load(), "trial %d", trial)
		require.Zero(t, w.Len())
	}
}
