// Copyright (C) 2025 Ariel Frischer
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package selection tracks which of the listed records are checked for a
// bulk action. The set preserves insertion order so dispatch output is
// deterministic, and it is owned by exactly one view at a time.
package selection

// Set is an insertion-ordered set of record ids.
type Set struct {
	members map[string]struct{}
	order   []string
}

func NewSet() *Set {
	return &Set{
		members: make(map[string]struct{}),
	}
}

// Toggle inserts id if absent and removes it if present. Always succeeds.
func (s *Set) Toggle(id string) {
	if _, ok := s.members[id]; ok {
		delete(s.members, id)
		for i, v := range s.order {
			if v == id {
				s.order = append(s.order[:i], s.order[i+1:]...)
				break
			}
		}
		return
	}
	s.members[id] = struct{}{}
	s.order = append(s.order, id)
}

// ToggleAll clears the set when everything is already selected, otherwise
// replaces the selection with exactly allIDs. A partial selection therefore
// lands on full selection, not empty.
func (s *Set) ToggleAll(allIDs []string) {
	if len(s.members) == len(allIDs) && len(allIDs) > 0 {
		s.Clear()
		return
	}
	s.Clear()
	for _, id := range allIDs {
		if _, ok := s.members[id]; ok {
			continue
		}
		s.members[id] = struct{}{}
		s.order = append(s.order, id)
	}
}

// Clear empties the set unconditionally.
func (s *Set) Clear() {
	s.members = make(map[string]struct{})
	s.order = s.order[:0]
}

func (s *Set) IsSelected(id string) bool {
	_, ok := s.members[id]
	return ok
}

func (s *Set) Count() int {
	return len(s.members)
}

// IDs returns the selected ids in insertion order. The returned slice is a
// copy; mutating it does not affect the set.
func (s *Set) IDs() []string {
	out := make([]string, len(s.order))
	copy(out, s.order)
	return out
}

// Prune drops members that are no longer present in the live record list.
// The set itself never observes list refreshes; the owning view calls this
// after every re-fetch.
func (s *Set) Prune(live []string) {
	alive := make(map[string]struct{}, len(live))
	for _, id := range live {
		alive[id] = struct{}{}
	}

	kept := s.order[:0]
	for _, id := range s.order {
		if _, ok := alive[id]; ok {
			kept = append(kept, id)
		} else {
			delete(s.members, id)
		}
	}
	s.order = kept
}
