package entity

// Presenter mirrors entity lifecycle into presentation handles. Attach is
// called once when an entity becomes live and Detach once when it is
// removed from the store.
type Presenter interface {
	Attach(e *Entity)
	Detach(e *Entity)
}

// Store is the flat collection of live entities. Entities spawned during an
// update pass are queued and become live on Flush; killed entities are
// dropped on Compact. Both transitions notify the Presenter so that store
// membership and presentation handles never diverge.
type Store struct {
	entities  []*Entity
	toSpawn   []*Entity // Entities to add after the current pass
	nextID    ID
	presenter Presenter
}

// NewStore creates an empty store. A nil presenter is allowed.
func NewStore(p Presenter) *Store {
	return &Store{nextID: 1, presenter: p}
}

// SetPresenter replaces the presenter for future lifecycle events.
func (s *Store) SetPresenter(p Presenter) {
	s.presenter = p
}

// Spawn queues an entity and assigns its ID. It becomes visible to All
// after the next Flush.
func (s *Store) Spawn(e *Entity) *Entity {
	e.ID = s.nextID
	s.nextID++
	e.Visible = true
	if e.Scale == 0 {
		e.Scale = 1
	}
	if e.Opacity == 0 {
		e.Opacity = 1
	}
	s.toSpawn = append(s.toSpawn, e)
	return e
}

// Flush makes all queued entities live.
func (s *Store) Flush() {
	for _, e := range s.toSpawn {
		s.entities = append(s.entities, e)
		if s.presenter != nil {
			s.presenter.Attach(e)
		}
	}
	clear(s.toSpawn)
	s.toSpawn = s.toSpawn[:0]
}

// All returns the live entities. The slice is valid until the next Flush,
// Compact or Clear.
func (s *Store) All() []*Entity {
	return s.entities
}

// Len returns the number of live entities.
func (s *Store) Len() int {
	return len(s.entities)
}

// Pending returns the number of queued entities.
func (s *Store) Pending() int {
	return len(s.toSpawn)
}

// Compact removes every entity for which remove returns true, detaching
// its presentation handle. It returns the number removed.
func (s *Store) Compact(remove func(e *Entity) bool) int {
	kept := s.entities[:0] // reuse backing array
	removed := 0
	for _, e := range s.entities {
		if remove(e) {
			removed++
			if s.presenter != nil {
				s.presenter.Detach(e)
			}
			continue
		}
		kept = append(kept, e)
	}
	clear(s.entities[len(kept):])
	s.entities = kept
	return removed
}

// Clear removes every entity for which keep returns false, including
// queued ones. Queued entities were never attached and are simply dropped.
func (s *Store) Clear(keep func(e *Entity) bool) {
	kept := s.toSpawn[:0]
	for _, e := range s.toSpawn {
		if keep(e) {
			kept = append(kept, e)
		}
	}
	clear(s.toSpawn[len(kept):])
	s.toSpawn = kept

	s.Compact(func(e *Entity) bool { return !keep(e) })
}

// Count returns the number of live, alive entities matching pred.
func (s *Store) Count(pred func(e *Entity) bool) int {
	n := 0
	for _, e := range s.entities {
		if e.Alive() && pred(e) {
			n++
		}
	}
	return n
}
