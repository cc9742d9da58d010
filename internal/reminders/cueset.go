package reminders

import "sync"

// CueSet tracks which reminders have already triggered an audio/visual
// cue during the current process lifetime. It is deliberately ephemeral:
// the Sent status is the only durable signal, the set only suppresses
// redundant cues. Entries are evicted when a reminder is acknowledged or
// dismissed, and oldest-first once the bound is reached.
type CueSet struct {
	mu    sync.Mutex
	ids   map[string]struct{}
	order []string
	limit int
}

// NewCueSet creates a CueSet bounded to limit entries. A non-positive
// limit falls back to a sensible default.
func NewCueSet(limit int) *CueSet {
	if limit <= 0 {
		limit = 256
	}
	return &CueSet{
		ids:   make(map[string]struct{}),
		limit: limit,
	}
}

// Add records the reminder ID and reports whether it was newly added.
func (s *CueSet) Add(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.ids[id]; ok {
		return false
	}
	if len(s.order) >= s.limit {
		oldest := s.order[0]
		s.order = s.order[1:]
		delete(s.ids, oldest)
	}
	s.ids[id] = struct{}{}
	s.order = append(s.order, id)
	return true
}

// Has reports whether the reminder ID has already been cued.
func (s *CueSet) Has(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, ok := s.ids[id]
	return ok
}

// Evict removes the reminder ID, allowing it to cue again later.
func (s *CueSet) Evict(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.ids[id]; !ok {
		return
	}
	delete(s.ids, id)
	for i, v := range s.order {
		if v == id {
			s.order = append(s.order[:i], s.order[i+1:]...)
			break
		}
	}
}

// Len returns the number of tracked reminder IDs.
func (s *CueSet) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	return len(s.ids)
}
