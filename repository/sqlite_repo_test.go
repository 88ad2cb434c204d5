package repository

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"roadwaysledger/db"
	"roadwaysledger/db/sqlite"
	"roadwaysledger/models"
)

func openTestDB(t *testing.T) *sqlite.SQLiteDB {
	t.Helper()
	path := filepath.Join(t.TempDir(), "ledger.db")
	if err := db.RunMigrations(db.SQLite, path); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	s := sqlite.NewSQLiteDB(path)
	if err := s.Connect(context.Background()); err != nil {
		t.Fatalf("connect: %v", err)
	}
	t.Cleanup(func() { _ = s.Disconnect() })
	return s
}

func TestSQLiteBiltyLifecycle(t *testing.T) {
	ctx := context.Background()
	repo := NewSQLiteBiltyRepo(openTestDB(t).Conn)

	first := &models.Bilty{}
	models.BiltyDraft{
		"bilty_sl_no": "A1",
		"bill_date":   "2024-03-05",
		"weight":      "2.5",
		"freight":     "100",
		"truck_no":    "AS01AB1234",
	}.Apply(first)
	if err := repo.CreateBilty(ctx, first); err != nil {
		t.Fatalf("create: %v", err)
	}
	if first.ID == 0 || first.DateAdded.IsZero() {
		t.Fatalf("create did not assign id/date_added: %+v", first)
	}
	if first.Weight.Raw() != "2.5" || first.Diesel.Valid {
		t.Fatalf("quantities not round-tripped: weight=%q diesel=%v", first.Weight.Raw(), first.Diesel.Valid)
	}

	second := &models.Bilty{BiltySlNo: "A2"}
	if err := repo.CreateBilty(ctx, second); err != nil {
		t.Fatalf("create second: %v", err)
	}

	dup := &models.Bilty{BiltySlNo: "A1"}
	if err := repo.CreateBilty(ctx, dup); !errors.Is(err, ErrDuplicate) {
		t.Fatalf("duplicate serial: got %v, want ErrDuplicate", err)
	}

	list, err := repo.ListBilty(ctx)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(list) != 2 || list[0].ID != second.ID {
		t.Fatalf("list not newest first: %+v", list)
	}

	first.Freight = models.ParseQuantity("150")
	first.BiltySlNo = "CHANGED"
	if err := repo.UpdateBilty(ctx, first); err != nil {
		t.Fatalf("update: %v", err)
	}
	if first.BiltySlNo != "A1" {
		t.Fatalf("serial changed by update: %q", first.BiltySlNo)
	}
	if first.Freight.Raw() != "150" {
		t.Fatalf("freight = %q, want 150", first.Freight.Raw())
	}
	if first.BillDate.DateOnly() != "2024-03-05" {
		t.Fatalf("bill_date = %q", first.BillDate)
	}

	if err := repo.UpdateBilty(ctx, &models.Bilty{ID: 999}); !errors.Is(err, ErrNotFound) {
		t.Fatalf("update missing: got %v", err)
	}

	if err := repo.DeleteBilty(ctx, second.ID); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if err := repo.DeleteBilty(ctx, second.ID); !errors.Is(err, ErrNotFound) {
		t.Fatalf("second delete: got %v, want ErrNotFound", err)
	}
	if _, err := repo.GetBilty(ctx, second.ID); !errors.Is(err, ErrNotFound) {
		t.Fatalf("get deleted: got %v", err)
	}
}

func TestSQLiteUsers(t *testing.T) {
	ctx := context.Background()
	repo := NewSQLiteUserRepo(openTestDB(t).Conn)

	u := &models.AppUser{Username: " Ravi ", Password: "secret"}
	if err := repo.CreateUser(ctx, u); err != nil {
		t.Fatalf("create: %v", err)
	}
	if u.ID == 0 || u.Password == "secret" {
		t.Fatalf("user not stored with hashed password: %+v", u)
	}

	if err := repo.CreateUser(ctx, &models.AppUser{Username: "ravi", Password: "x"}); !errors.Is(err, ErrDuplicate) {
		t.Fatalf("duplicate username: got %v", err)
	}
	if err := repo.CreateUser(ctx, &models.AppUser{Username: "empty"}); !errors.Is(err, ErrEmptyPassword) {
		t.Fatalf("empty password: got %v", err)
	}

	got, err := repo.GetUserByUsername(ctx, "RAVI")
	if err != nil || got == nil {
		t.Fatalf("get: %v %v", got, err)
	}
	if !VerifyPassword(got, "secret") || VerifyPassword(got, "wrong") {
		t.Fatal("password verification mismatch")
	}

	missing, err := repo.GetUserByUsername(ctx, "nobody")
	if err != nil || missing != nil {
		t.Fatalf("missing user: %v %v", missing, err)
	}
}

func TestSQLiteCompanyProfile(t *testing.T) {
	ctx := context.Background()
	repo := NewSQLiteInitialRepo(openTestDB(t).Conn)

	p, err := repo.GetInitial(ctx)
	if err != nil || p != nil {
		t.Fatalf("empty profile: %v %v", p, err)
	}

	p = &models.CompanyProfile{CompanyName: "North East Roadways", Phones: []models.PhoneEntry{{Number: "98640", Label: "Office"}}}
	if err := repo.SaveInitial(ctx, p); err != nil {
		t.Fatalf("save: %v", err)
	}
	p.City = "Guwahati"
	if err := repo.SaveInitial(ctx, p); err != nil {
		t.Fatalf("update: %v", err)
	}

	got, err := repo.GetInitial(ctx)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got.City != "Guwahati" || got.Contacts() != "98640(Office)" {
		t.Fatalf("profile = %+v", got)
	}
}
