package locks

import (
	"sort"
	"sync"
)

// CourtLocks serializes writers per court. Selection commits and lesson
// approvals share one instance so the check-then-act around a court has no
// observable gap inside this process; the database overlap check remains the
// backstop across processes.
type CourtLocks struct {
	mu    sync.Mutex
	locks map[int64]*sync.Mutex
}

func New() *CourtLocks {
	return &CourtLocks{locks: make(map[int64]*sync.Mutex)}
}

func (l *CourtLocks) get(id int64) *sync.Mutex {
	l.mu.Lock()
	defer l.mu.Unlock()
	m, ok := l.locks[id]
	if !ok {
		m = &sync.Mutex{}
		l.locks[id] = m
	}
	return m
}

// Lock acquires the locks of all given courts in ascending id order (so two
// multi-court commits can never deadlock) and returns the matching unlock.
func (l *CourtLocks) Lock(courtIDs []int64) func() {
	ids := make([]int64, 0, len(courtIDs))
	seen := make(map[int64]bool, len(courtIDs))
	for _, id := range courtIDs {
		if !seen[id] {
			seen[id] = true
			ids = append(ids, id)
		}
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })

	held := make([]*sync.Mutex, 0, len(ids))
	for _, id := range ids {
		m := l.get(id)
		m.Lock()
		held = append(held, m)
	}
	return func() {
		for i := len(held) - 1; i >= 0; i-- {
			held[i].Unlock()
		}
	}
}
