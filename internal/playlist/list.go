package playlist

import (
	"fmt"
	"math/rand/v2"
	"sync"

	"github.com/handiism/tracklist/internal/model"
)

// none marks a missing handle: no head, no tail, no successor.
const none = -1

// AppendPosition is the insert position meaning "after the last entry".
const AppendPosition = -1

type node struct {
	track model.Track
	next  int
}

// List is an ordered sequence of tracks with positional insert and move,
// title-based removal and search, shuffle and an optional ring link from
// the last entry back to the first.
type List struct {
	mu sync.RWMutex

	nodes []node
	free  []int

	head   int
	tail   int
	length int
	cyclic bool

	strict bool
	rng    *rand.Rand
}

// Entry is one line of a Listing.
type Entry struct {
	// Position is the 1-based position in the list.
	Position int
	Track    model.Track
}

// Listing is a read-only view of the whole list.
type Listing struct {
	Entries       []Entry
	TotalDuration int
	Cyclic        bool
}

// Match is the result of a successful FindByTitle.
type Match struct {
	// Position is the 1-based position of the first matching entry.
	Position int
	Track    model.Track
}

// New creates an empty List.
func New(opts ...Option) *List {
	l := &List{
		head: none,
		tail: none,
	}
	for _, opt := range opts {
		opt(l)
	}
	if l.rng == nil {
		l.rng = newRand(clockSeed())
	}
	return l
}

// Len returns the number of entries.
func (l *List) Len() int {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.length
}

// IsCyclic reports whether the last entry currently links back to the first.
func (l *List) IsCyclic() bool {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.cyclic
}

// InsertAt inserts t so that it becomes the entry at 0-based position pos.
//
//   - pos 0, or any pos on an empty list: t becomes the new head
//   - pos AppendPosition (-1): t goes after the current last entry
//   - otherwise: t goes after the entry reached by walking pos-1 steps
//     from the head, stopping early at the last entry
//
// Positions past the end clamp to the end. Any other negative pos walks
// no steps, so t lands right after the head. In strict mode a pos outside
// [-1, Len()] returns ErrInvalidPosition and nothing is inserted.
func (l *List) InsertAt(t model.Track, pos int) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.strict && (pos < AppendPosition || pos > l.length) {
		return fmt.Errorf("%w: cannot insert at %d in a list of %d", ErrInvalidPosition, pos, l.length)
	}

	idx := l.alloc(t)

	switch {
	case pos == 0 || l.length == 0:
		l.nodes[idx].next = l.head
		l.head = idx
		if l.length == 0 {
			l.tail = idx
		}
	case pos == AppendPosition:
		l.nodes[l.tail].next = idx
		l.tail = idx
	default:
		cur := l.head
		for steps := 0; cur != l.tail && steps < pos-1; steps++ {
			cur = l.nodes[cur].next
		}
		l.insertAfter(cur, idx)
	}

	l.length++
	l.seal()
	return nil
}

// RemoveByTitle removes the first entry whose title equals title exactly
// and returns it. It returns ErrEmpty on an empty list and ErrNotFound
// when no entry matches; in both cases the list is left unchanged.
func (l *List) RemoveByTitle(title string) (model.Track, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.length == 0 {
		return model.Track{}, ErrEmpty
	}

	prev, cur := none, l.head
	for i := 0; i < l.length; i++ {
		if l.nodes[cur].track.Title == title {
			removed := l.nodes[cur].track
			l.unlink(prev, cur)
			l.release(cur)
			if l.length == 0 {
				l.cyclic = false
			}
			return removed, nil
		}
		prev, cur = cur, l.nodes[cur].next
	}

	return model.Track{}, ErrNotFound
}

// Display returns every entry in order with its 1-based position, plus
// the sum of all durations.
func (l *List) Display() Listing {
	l.mu.RLock()
	defer l.mu.RUnlock()

	listing := Listing{
		Entries: make([]Entry, 0, l.length),
		Cyclic:  l.cyclic,
	}
	cur := l.head
	for i := 0; i < l.length; i++ {
		track := l.nodes[cur].track
		listing.Entries = append(listing.Entries, Entry{Position: i + 1, Track: track})
		listing.TotalDuration += track.Duration
		cur = l.nodes[cur].next
	}
	return listing
}

// Tracks returns a copy of all tracks in order.
func (l *List) Tracks() []model.Track {
	l.mu.RLock()
	defer l.mu.RUnlock()

	tracks := make([]model.Track, 0, l.length)
	cur := l.head
	for i := 0; i < l.length; i++ {
		tracks = append(tracks, l.nodes[cur].track)
		cur = l.nodes[cur].next
	}
	return tracks
}

// MoveTo relocates the entry at 0-based position from to 0-based position to.
//
// The source entry is unlinked first and to is counted against the list
// without it, so when from precedes to the entry lands one slot further
// along than a naive index suggests: [A B C] MoveTo(0, 2) gives [B C A].
//
// MoveTo is a no-op when from == to or the list is empty. A from that is
// not an entry returns ErrInvalidPosition and leaves the list unchanged.
// A to past the end clamps to the end and a negative to clamps to the
// head; in strict mode a to outside [0, Len()-1] is rejected instead.
func (l *List) MoveTo(from, to int) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	if from == to || l.length == 0 {
		return nil
	}
	if from < 0 || from >= l.length {
		return fmt.Errorf("%w: no entry at %d", ErrInvalidPosition, from)
	}
	if l.strict && (to < 0 || to >= l.length) {
		return fmt.Errorf("%w: cannot move to %d in a list of %d", ErrInvalidPosition, to, l.length)
	}

	prev, cur := l.locate(from)
	l.unlink(prev, cur)
	l.splice(cur, to)
	return nil
}

// FindByTitle returns the first entry whose title equals title exactly,
// or ErrNotFound.
func (l *List) FindByTitle(title string) (Match, error) {
	l.mu.RLock()
	defer l.mu.RUnlock()

	cur := l.head
	for i := 0; i < l.length; i++ {
		if l.nodes[cur].track.Title == title {
			return Match{Position: i + 1, Track: l.nodes[cur].track}, nil
		}
		cur = l.nodes[cur].next
	}
	return Match{}, ErrNotFound
}

// Shuffle reorders the entries with a uniform random permutation and
// relinks them. Lists with fewer than two entries are left as they are.
func (l *List) Shuffle() {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.length < 2 {
		return
	}

	order := l.handles()
	l.rng.Shuffle(len(order), func(i, j int) {
		order[i], order[j] = order[j], order[i]
	})
	l.relink(order)
}

// EnableCycle links the last entry back to the first. No-op when empty.
func (l *List) EnableCycle() {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.setCyclic(true)
}

// DisableCycle terminates the list after its last entry.
func (l *List) DisableCycle() {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.setCyclic(false)
}

// ToggleCycle flips cycle mode and returns the new state. Enabling an
// empty list does nothing and reports false.
func (l *List) ToggleCycle() bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.setCyclic(!l.cyclic)
	return l.cyclic
}

// Replace discards every entry and appends tracks in order. The result
// is never cyclic.
func (l *List) Replace(tracks []model.Track) {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.reset()
	for _, t := range tracks {
		idx := l.alloc(t)
		if l.length == 0 {
			l.head = idx
		} else {
			l.nodes[l.tail].next = idx
		}
		l.tail = idx
		l.length++
	}
	l.seal()
}

// Clear removes every entry.
func (l *List) Clear() {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.reset()
}

func (l *List) reset() {
	l.nodes = nil
	l.free = nil
	l.head, l.tail = none, none
	l.length = 0
	l.cyclic = false
}

func (l *List) setCyclic(on bool) {
	if on && l.length == 0 {
		return
	}
	l.cyclic = on
	l.seal()
}

// alloc stores t in a free slot and returns its handle.
func (l *List) alloc(t model.Track) int {
	if n := len(l.free); n > 0 {
		idx := l.free[n-1]
		l.free = l.free[:n-1]
		l.nodes[idx] = node{track: t, next: none}
		return idx
	}
	l.nodes = append(l.nodes, node{track: t, next: none})
	return len(l.nodes) - 1
}

func (l *List) release(idx int) {
	l.nodes[idx] = node{next: none}
	l.free = append(l.free, idx)
}

// seal restores the link out of the tail after a mutation.
func (l *List) seal() {
	if l.length == 0 {
		l.head, l.tail = none, none
		return
	}
	if l.cyclic {
		l.nodes[l.tail].next = l.head
	} else {
		l.nodes[l.tail].next = none
	}
}

// locate returns the handle at 0-based pos and its predecessor.
// pos must be within [0, length).
func (l *List) locate(pos int) (prev, cur int) {
	prev, cur = none, l.head
	for i := 0; i < pos; i++ {
		prev, cur = cur, l.nodes[cur].next
	}
	return prev, cur
}

func (l *List) insertAfter(prev, idx int) {
	l.nodes[idx].next = l.nodes[prev].next
	l.nodes[prev].next = idx
	if prev == l.tail {
		l.tail = idx
	}
}

// unlink detaches cur, whose predecessor is prev, without freeing it.
func (l *List) unlink(prev, cur int) {
	next := l.nodes[cur].next
	if prev == none {
		l.head = next
	} else {
		l.nodes[prev].next = next
	}
	if cur == l.tail {
		l.tail = prev
	}
	l.nodes[cur].next = none
	l.length--
	l.seal()
}

// splice links the detached node idx in at 0-based pos, clamping pos to
// [0, length].
func (l *List) splice(idx, pos int) {
	switch {
	case l.length == 0:
		l.head, l.tail = idx, idx
	case pos <= 0:
		l.nodes[idx].next = l.head
		l.head = idx
	default:
		prev := l.head
		for steps := 1; steps < pos && prev != l.tail; steps++ {
			prev = l.nodes[prev].next
		}
		l.insertAfter(prev, idx)
	}
	l.length++
	l.seal()
}

func (l *List) handles() []int {
	order := make([]int, 0, l.length)
	cur := l.head
	for i := 0; i < l.length; i++ {
		order = append(order, cur)
		cur = l.nodes[cur].next
	}
	return order
}

// relink rebuilds the chain in the given handle order.
func (l *List) relink(order []int) {
	l.head = order[0]
	for i := 0; i < len(order)-1; i++ {
		l.nodes[order[i]].next = order[i+1]
	}
	l.tail = order[len(order)-1]
	l.seal()
}
