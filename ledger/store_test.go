package ledger

import (
	"testing"

	"roadwaysledger/models"
)

func TestStoreOrdering(t *testing.T) {
	var s Store
	s.Load([]models.Bilty{{ID: 2}, {ID: 1}})
	s.Prepend(models.Bilty{ID: 3})

	got := s.Records()
	if len(got) != 3 || got[0].ID != 3 || got[1].ID != 2 || got[2].ID != 1 {
		t.Fatalf("order = %+v", got)
	}

	if !s.Replace(2, models.Bilty{ID: 2, BiltySlNo: "B2"}) {
		t.Fatal("Replace(2) = false")
	}
	if s.Replace(9, models.Bilty{ID: 9}) {
		t.Error("Replace of absent id should report false")
	}
	if b, _ := s.Find(2); b.BiltySlNo != "B2" {
		t.Errorf("Find(2) = %+v", b)
	}
	if s.Records()[1].ID != 2 {
		t.Error("Replace moved the record")
	}

	if !s.Remove(3) || s.Remove(3) {
		t.Error("Remove should succeed once")
	}
	if s.Len() != 2 {
		t.Errorf("Len = %d", s.Len())
	}
}

func TestStoreRecordsIsCopy(t *testing.T) {
	var s Store
	s.Load([]models.Bilty{{ID: 1, BiltySlNo: "A"}})
	out := s.Records()
	out[0].BiltySlNo = "changed"
	if b, _ := s.Find(1); b.BiltySlNo != "A" {
		t.Error("Records leaked internal slice")
	}
	s.Clear()
	if s.Len() != 0 {
		t.Error("Clear left records")
	}
}
