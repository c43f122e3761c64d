// File: client/viewer.go
package main

import (
	"fmt"
	"strings"
	"sync"

	"github.com/lguibr/fruitfall/game"
	"github.com/lguibr/fruitfall/render"
)

// viewer keeps the latest frames received from the server.
type viewer struct {
	mu       sync.Mutex
	viewport render.Viewport
	objects  []game.Object
	score    string
	status   string
	frames   int
}

func newViewer(v render.Viewport) *viewer {
	return &viewer{viewport: v, score: game.ScoreMessage(0)}
}

// apply records one inbound frame and reports whether it was a snapshot.
func (v *viewer) apply(frame string) bool {
	v.mu.Lock()
	defer v.mu.Unlock()
	switch {
	case strings.HasPrefix(frame, game.ScorePrefix):
		v.score = frame
		return false
	case game.IsSnapshot(frame):
		objects, err := game.ParseSnapshot(frame)
		if err != nil {
			v.status = fmt.Sprintf("bad snapshot: %v", err)
			return false
		}
		v.objects = objects
		v.frames++
		return true
	default:
		v.status = frame
		return false
	}
}

// screen renders the playfield with a status footer.
func (v *viewer) screen() string {
	v.mu.Lock()
	defer v.mu.Unlock()
	var b strings.Builder
	b.WriteString(render.Playfield(v.objects, v.viewport))
	fmt.Fprintf(&b, "%s   objects: %d   frames: %d\n", v.score, len(v.objects), v.frames)
	if v.status != "" {
		b.WriteString(v.status + "\n")
	}
	b.WriteString("[h] hit lowest  [r] replay  [q] quit\n")
	// Raw mode disables output post-processing, so newlines need a carriage return.
	return strings.ReplaceAll(b.String(), "\n", "\r\n")
}

// target picks the lowest object on screen, rewards only when rewardsOnly is set.
func (v *viewer) target(rewardsOnly bool) (game.Object, bool) {
	v.mu.Lock()
	defer v.mu.Unlock()
	return lowest(v.objects, rewardsOnly)
}

func lowest(objects []game.Object, rewardsOnly bool) (game.Object, bool) {
	var best game.Object
	found := false
	for _, o := range objects {
		if rewardsOnly && o.Kind != game.Reward {
			continue
		}
		if !found || o.Y > best.Y {
			best, found = o, true
		}
	}
	return best, found
}

// clickCommand is the frame that claims o: penalties carry the RemoveScore prefix.
func clickCommand(o game.Object) string {
	coords := fmt.Sprintf("%d,%d", o.X, o.Y)
	if o.Kind == game.Penalty {
		return game.RemoveScorePrefix + coords
	}
	return coords
}
