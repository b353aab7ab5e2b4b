package workflow

import "sync"

// InFlight tracks which records have a pending action so only their own
// controls are disabled. Tracking is per record, not global; other rows
// stay interactive while one call is out.
type InFlight struct {
	mu      sync.Mutex
	pending map[string]struct{}
}

func NewInFlight() *InFlight {
	return &InFlight{pending: make(map[string]struct{})}
}

// Begin marks the record busy. Returns false if an action is already
// pending for it, in which case the caller must not issue another call.
func (f *InFlight) Begin(recordID string) bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.pending[recordID]; ok {
		return false
	}
	f.pending[recordID] = struct{}{}
	return true
}

// End clears the record's pending mark. Safe to call for unknown ids.
func (f *InFlight) End(recordID string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.pending, recordID)
}

func (f *InFlight) IsBusy(recordID string) bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	_, ok := f.pending[recordID]
	return ok
}
