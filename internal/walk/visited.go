package walk

import "github.com/RoaringBitmap/roaring"

// Tracker records the containers a single search has entered and which of
// them are on the current descent path. Containers get dense uint32 ids so
// both sets can be kept as bitmaps.
type Tracker struct {
	host Host

	ids    map[Identity]uint32
	nextID uint32
	seen   *roaring.Bitmap   // every container entered so far
	onPath *roaring.Bitmap   // containers between the root and the current frame
	paths  map[uint32]string // id → path it was entered at
}

// Frame is returned by Enter and handed back to Leave.
type Frame struct {
	id      uint32
	tracked bool
}

func NewTracker(host Host) *Tracker {
	return &Tracker{
		host:   host,
		ids:    make(map[Identity]uint32),
		seen:   roaring.New(),
		onPath: roaring.New(),
		paths:  make(map[uint32]string),
	}
}

// Enter marks v as entered at path. It returns false when v was entered
// before, in which case the caller must not descend. Values without a
// reference identity are always entered.
func (t *Tracker) Enter(v any, path string) (Frame, bool) {
	ident, ok := t.host.Identity(v)
	if !ok {
		return Frame{}, true
	}
	id, ok := t.ids[ident]
	if !ok {
		id = t.nextID
		t.nextID++
		t.ids[ident] = id
	}
	if !t.seen.CheckedAdd(id) {
		return Frame{}, false
	}
	t.onPath.Add(id)
	t.paths[id] = path
	return Frame{id: id, tracked: true}, true
}

// Leave pops f off the descent path.
func (t *Tracker) Leave(f Frame) {
	if f.tracked {
		t.onPath.Remove(f.id)
	}
}

// Seen reports whether v was already entered.
func (t *Tracker) Seen(v any) bool {
	id, ok := t.lookup(v)
	return ok && t.seen.Contains(id)
}

// Ancestor returns the path of v when v is a container on the current
// descent path.
func (t *Tracker) Ancestor(v any) (string, bool) {
	id, ok := t.lookup(v)
	if !ok || !t.onPath.Contains(id) {
		return "", false
	}
	return t.paths[id], true
}

// Len is the number of distinct containers entered.
func (t *Tracker) Len() int {
	return int(t.seen.GetCardinality())
}

func (t *Tracker) lookup(v any) (uint32, bool) {
	ident, ok := t.host.Identity(v)
	if !ok {
		return 0, false
	}
	id, ok := t.ids[ident]
	return id, ok
}
