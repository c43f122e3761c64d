// File: game/snapshot.go
package game

import (
	"fmt"
	"strconv"
	"strings"
)

// EncodeSnapshot renders objects as "id,x,y,marker;" segments.
func EncodeSnapshot(objects []Object) string {
	var b strings.Builder
	for _, o := range objects {
		b.WriteString(strconv.FormatInt(o.ID, 10))
		b.WriteByte(',')
		b.WriteString(strconv.Itoa(o.X))
		b.WriteByte(',')
		b.WriteString(strconv.Itoa(o.Y))
		b.WriteByte(',')
		b.WriteString(o.Kind.Marker())
		b.WriteByte(';')
	}
	return b.String()
}

// ParseSnapshot decodes a payload produced by EncodeSnapshot. An empty
// payload is an empty world.
func ParseSnapshot(payload string) ([]Object, error) {
	segments := strings.Split(payload, ";")
	objects := make([]Object, 0, len(segments))
	for i, seg := range segments {
		if seg == "" {
			continue
		}
		fields := strings.Split(seg, ",")
		if len(fields) != 4 {
			return nil, fmt.Errorf("snapshot segment %d: want 4 fields, got %d", i, len(fields))
		}
		id, err := strconv.ParseInt(fields[0], 10, 64)
		if err != nil {
			return nil, fmt.Errorf("snapshot segment %d: id: %w", i, err)
		}
		x, err := strconv.Atoi(fields[1])
		if err != nil {
			return nil, fmt.Errorf("snapshot segment %d: x: %w", i, err)
		}
		y, err := strconv.Atoi(fields[2])
		if err != nil {
			return nil, fmt.Errorf("snapshot segment %d: y: %w", i, err)
		}
		var kind Kind
		switch fields[3] {
		case "":
			kind = Reward
		case PenaltyMarker:
			kind = Penalty
		default:
			return nil, fmt.Errorf("snapshot segment %d: unknown marker %q", i, fields[3])
		}
		objects = append(objects, Object{ID: id, X: x, Y: y, Kind: kind})
	}
	return objects, nil
}

// IsSnapshot reports whether an outbound frame is a world snapshot rather
// than a welcome or score message.
func IsSnapshot(frame string) bool {
	return frame == "" || strings.HasSuffix(frame, ";")
}
