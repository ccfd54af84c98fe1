package dataset

import "sync/atomic"

// Store holds the active snapshot behind an atomic pointer. Readers get a
// consistent immutable value; reload swaps the whole thing.
type Store struct {
	current atomic.Pointer[Snapshot]
}

func NewStore(snap *Snapshot) *Store {
	s := &Store{}
	s.current.Store(snap)
	return s
}

func (s *Store) Get() *Snapshot {
	return s.current.Load()
}

func (s *Store) Set(snap *Snapshot) {
	s.current.Store(snap)
}
