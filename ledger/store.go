package ledger

import "roadwaysledger/models"

// Store is the in-memory snapshot of backend records, newest first.
type Store struct {
	records []models.Bilty
}

// Load replaces the whole collection.
func (s *Store) Load(list []models.Bilty) {
	s.records = append([]models.Bilty(nil), list...)
}

// Prepend puts a freshly created record at the top.
func (s *Store) Prepend(b models.Bilty) {
	s.records = append([]models.Bilty{b}, s.records...)
}

// Replace swaps the entry with the given id for b. It reports false and
// changes nothing when the id is not held.
func (s *Store) Replace(id int64, b models.Bilty) bool {
	for i := range s.records {
		if s.records[i].ID == id {
			s.records[i] = b
			return true
		}
	}
	return false
}

func (s *Store) Remove(id int64) bool {
	for i := range s.records {
		if s.records[i].ID == id {
			s.records = append(s.records[:i:i], s.records[i+1:]...)
			return true
		}
	}
	return false
}

func (s *Store) Find(id int64) (models.Bilty, bool) {
	for _, b := range s.records {
		if b.ID == id {
			return b, true
		}
	}
	return models.Bilty{}, false
}

func (s *Store) Clear() { s.records = nil }

func (s *Store) Len() int { return len(s.records) }

// Records returns a copy callers may keep.
func (s *Store) Records() []models.Bilty {
	return append([]models.Bilty(nil), s.records...)
}
