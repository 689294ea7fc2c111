package gallery

// Store owns the collection and the active filtered view.
//
// A Store is not safe for concurrent use. The GUI only touches it from the
// Fyne event goroutine; background work hands results back through a
// dispatcher before calling Append.
type Store struct {
	items       []MediaItem
	selector    Selector
	view        []MediaItem
	subscribers map[int]func()
	nextSubID   int
}

// NewStore creates a store holding the seed items with the "all" selector applied.
func NewStore(seed ...MediaItem) *Store {
	s := &Store{subscribers: make(map[int]func())}
	s.reset(seed)
	return s
}

// Reset replaces the collection with seed and clears the selector. Subscribers
// are kept and notified.
func (s *Store) Reset(seed ...MediaItem) {
	s.reset(seed)
	s.notify()
}

func (s *Store) reset(seed []MediaItem) {
	s.items = make([]MediaItem, len(seed))
	copy(s.items, seed)
	s.selector = All()
	s.view = s.apply(s.selector)
}

// Append adds item to the end of the collection and reapplies the last
// selector, so the new item shows up in Current when it matches.
func (s *Store) Append(item MediaItem) {
	s.items = append(s.items, item)
	s.view = s.apply(s.selector)
	s.notify()
}

// Filter computes a fresh view for sel, makes it current and returns a copy.
func (s *Store) Filter(sel Selector) []MediaItem {
	s.selector = sel
	s.view = s.apply(sel)
	s.notify()
	return s.Current()
}

// Current returns a copy of the most recently computed view.
func (s *Store) Current() []MediaItem {
	out := make([]MediaItem, len(s.view))
	copy(out, s.view)
	return out
}

// ViewLen is the length of the current view.
func (s *Store) ViewLen() int {
	return len(s.view)
}

// ViewItem returns the item at index i of the current view.
func (s *Store) ViewItem(i int) (MediaItem, bool) {
	if i < 0 || i >= len(s.view) {
		return MediaItem{}, false
	}
	return s.view[i], true
}

// Items returns a copy of the whole collection in insertion order.
func (s *Store) Items() []MediaItem {
	out := make([]MediaItem, len(s.items))
	copy(out, s.items)
	return out
}

// Len is the size of the collection.
func (s *Store) Len() int {
	return len(s.items)
}

// Selector returns the last applied selector.
func (s *Store) Selector() Selector {
	return s.selector
}

// Categories lists the distinct categories in first-seen order.
func (s *Store) Categories() []string {
	seen := make(map[string]bool)
	var out []string
	for _, item := range s.items {
		if seen[item.Category] {
			continue
		}
		seen[item.Category] = true
		out = append(out, item.Category)
	}
	return out
}

// Subscribe registers fn to run after every change of the current view.
// The returned function removes the subscription.
func (s *Store) Subscribe(fn func()) func() {
	id := s.nextSubID
	s.nextSubID++
	s.subscribers[id] = fn
	return func() { delete(s.subscribers, id) }
}

// apply runs in a single pass over the collection.
func (s *Store) apply(sel Selector) []MediaItem {
	view := make([]MediaItem, 0, len(s.items))
	for _, item := range s.items {
		if sel.Match(item) {
			view = append(view, item)
		}
	}
	return view
}

func (s *Store) notify() {
	// Iterate in subscription order so the viewer reconciles before the grid redraws.
	for id := 0; id < s.nextSubID; id++ {
		if fn, ok := s.subscribers[id]; ok {
			fn()
		}
	}
}
