package webui

import (
	"bytes"
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"roadwaysledger/ledger"
	"roadwaysledger/models"
	"roadwaysledger/utils"
	"roadwaysledger/view"
)

type stubBackend struct {
	records []models.Bilty
	deleted []int64
	updates []models.BiltyDraft
}

func (b *stubBackend) Login(ctx context.Context, username, password string) (*models.AppUser, error) {
	if password != "secret" {
		return nil, errors.New("Invalid username or password")
	}
	return &models.AppUser{ID: 1, Username: username}, nil
}

func (b *stubBackend) CreateUser(ctx context.Context, username, password string) error { return nil }

func (b *stubBackend) ListBilty(ctx context.Context) ([]models.Bilty, error) {
	return append([]models.Bilty(nil), b.records...), nil
}

func (b *stubBackend) CreateBilty(ctx context.Context, draft models.BiltyDraft) (*models.Bilty, error) {
	var saved models.Bilty
	draft.Apply(&saved)
	saved.ID = int64(len(b.records) + 1)
	return &saved, nil
}

func (b *stubBackend) UpdateBilty(ctx context.Context, id int64, draft models.BiltyDraft) (*models.Bilty, error) {
	b.updates = append(b.updates, draft)
	saved := models.Bilty{ID: id}
	draft.Apply(&saved)
	saved.BiltySlNo = draft["bilty_sl_no"]
	return &saved, nil
}

func (b *stubBackend) DeleteBilty(ctx context.Context, id int64) error {
	b.deleted = append(b.deleted, id)
	return nil
}

func (b *stubBackend) CompanyProfile(ctx context.Context) (*models.CompanyProfile, error) {
	return &models.CompanyProfile{CompanyName: "NE Roadways"}, nil
}

type memArchiver struct {
	keys []string
	err  error
}

func (a *memArchiver) Archive(ctx context.Context, filename string, body []byte, contentType string) (string, error) {
	a.keys = append(a.keys, filename)
	return "exports/" + filename, a.err
}

func newTestServer(backend *stubBackend) (*Server, http.Handler) {
	s := &Server{
		NewApp:      func() *ledger.App { return ledger.NewApp(backend, nil) },
		CompanyName: "North East Roadways",
		DateFormat:  view.DefaultDateFormat,
	}
	return s, s.Routes()
}

// browser replays the cookies the server hands out, like a real browser.
type browser struct {
	cookies map[string]*http.Cookie
}

func newBrowser() *browser { return &browser{cookies: map[string]*http.Cookie{}} }

func (b *browser) do(t *testing.T, h http.Handler, method, target string, form url.Values) *httptest.ResponseRecorder {
	t.Helper()
	body := strings.NewReader("")
	if form != nil {
		body = strings.NewReader(form.Encode())
	}
	req := httptest.NewRequest(method, target, body)
	if form != nil {
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	}
	for _, c := range b.cookies {
		req.AddCookie(c)
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	for _, c := range rec.Result().Cookies() {
		b.cookies[c.Name] = c
	}
	return rec
}

func (b *browser) login(t *testing.T, h http.Handler) {
	t.Helper()
	rec := b.do(t, h, http.MethodPost, "/login", url.Values{"username": {"ravi"}, "password": {"secret"}})
	if rec.Code != http.StatusSeeOther {
		t.Fatalf("login status = %d", rec.Code)
	}
}

func TestIndexShowsLoginWhenLoggedOut(t *testing.T) {
	_, h := newTestServer(&stubBackend{})
	b := newBrowser()
	rec := b.do(t, h, http.MethodGet, "/", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), `id="login-view"`) {
		t.Error("login view not rendered")
	}
}

func TestLoginFailureShownInline(t *testing.T) {
	_, h := newTestServer(&stubBackend{})
	b := newBrowser()
	b.do(t, h, http.MethodPost, "/login", url.Values{"username": {"ravi"}, "password": {"nope"}})
	body := b.do(t, h, http.MethodGet, "/", nil).Body.String()
	if !strings.Contains(body, "Invalid username or password") {
		t.Error("login error not shown")
	}
}

func TestLedgerPageAndEdit(t *testing.T) {
	backend := &stubBackend{records: []models.Bilty{{
		ID: 1, BiltySlNo: "A1", Weight: models.ParseQuantity("2.5"), Freight: models.ParseQuantity("100"),
	}}}
	_, h := newTestServer(backend)
	b := newBrowser()
	b.login(t, h)

	body := b.do(t, h, http.MethodGet, "/", nil).Body.String()
	for _, want := range []string{"Welcome, ravi!", "2.500 MT", "₹ 100.00", "New Dispatch Record", "/records/1/edit"} {
		if !strings.Contains(body, want) {
			t.Errorf("page missing %q", want)
		}
	}

	b.do(t, h, http.MethodGet, "/records/1/edit", nil)
	body = b.do(t, h, http.MethodGet, "/", nil).Body.String()
	if !strings.Contains(body, "Edit Record #A1") || !strings.Contains(body, "Update Record") {
		t.Error("edit mode not rendered")
	}

	form := url.Values{}
	for _, name := range models.FieldNames {
		form.Set(name, "")
	}
	form.Set("freight", "150")
	form.Set("weight", "2.5")
	rec := b.do(t, h, http.MethodPost, "/records", form)
	if rec.Code != http.StatusSeeOther {
		t.Fatalf("submit status = %d", rec.Code)
	}
	if len(backend.updates) != 1 || backend.updates[0]["bilty_sl_no"] != "A1" {
		t.Fatalf("updates = %v", backend.updates)
	}
	body = b.do(t, h, http.MethodGet, "/", nil).Body.String()
	if !strings.Contains(body, "₹ 150.00") || !strings.Contains(body, "Record updated!") {
		t.Error("updated row not rendered")
	}
}

func TestDeleteAndLogout(t *testing.T) {
	backend := &stubBackend{records: []models.Bilty{{ID: 1, BiltySlNo: "A1"}}}
	_, h := newTestServer(backend)
	b := newBrowser()
	b.login(t, h)

	b.do(t, h, http.MethodPost, "/records/1/delete", nil)
	if len(backend.deleted) != 1 || backend.deleted[0] != 1 {
		t.Fatalf("deleted = %v", backend.deleted)
	}
	if body := b.do(t, h, http.MethodGet, "/", nil).Body.String(); strings.Contains(body, "/records/1/edit") {
		t.Error("deleted record still listed")
	}

	b.do(t, h, http.MethodPost, "/logout", nil)
	body := b.do(t, h, http.MethodGet, "/", nil).Body.String()
	if !strings.Contains(body, "Logged out successfully.") || !strings.Contains(body, `id="login-view"`) {
		t.Error("logout not rendered")
	}
}

func TestExportCSV(t *testing.T) {
	backend := &stubBackend{records: []models.Bilty{{ID: 1, BiltySlNo: "A1"}}}
	s, h := newTestServer(backend)
	b := newBrowser()
	archive := &memArchiver{err: errors.New("bucket down")}
	s.Archiver = archive
	b.login(t, h)

	rec := b.do(t, h, http.MethodGet, "/export/csv", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	if cd := rec.Header().Get("Content-Disposition"); !strings.Contains(cd, view.CSVFilename) {
		t.Errorf("Content-Disposition = %q", cd)
	}
	if !strings.HasPrefix(rec.Body.String(), `"ID","BILTY SL NO."`) {
		t.Errorf("body = %q", rec.Body.String())
	}
	if len(archive.keys) != 1 {
		t.Errorf("archive calls = %v", archive.keys)
	}
}

func TestExportEmptyStore(t *testing.T) {
	_, h := newTestServer(&stubBackend{})
	b := newBrowser()
	b.login(t, h)

	rec := b.do(t, h, http.MethodGet, "/export/csv", nil)
	if rec.Code != http.StatusSeeOther {
		t.Fatalf("status = %d, want redirect", rec.Code)
	}
	if rec.Header().Get("Content-Disposition") != "" {
		t.Error("file offered for empty store")
	}
	body := b.do(t, h, http.MethodGet, "/", nil).Body.String()
	if !strings.Contains(body, "No data to export.") {
		t.Error("no data notice not shown")
	}
}

func TestExportPDFUsesPrinter(t *testing.T) {
	backend := &stubBackend{records: []models.Bilty{{ID: 1, BiltySlNo: "A1", Freight: models.ParseQuantity("10")}}}
	s, h := newTestServer(backend)
	b := newBrowser()
	var got utils.LedgerPDFData
	s.PrintPDF = func(ctx context.Context, data utils.LedgerPDFData) ([]byte, error) {
		got = data
		return []byte("%PDF-1.4"), nil
	}
	b.login(t, h)

	rec := b.do(t, h, http.MethodGet, "/export/pdf", nil)
	if rec.Code != http.StatusOK || !bytes.HasPrefix(rec.Body.Bytes(), []byte("%PDF")) {
		t.Fatalf("status = %d body = %q", rec.Code, rec.Body.String())
	}
	if got.CompanyName != "NE Roadways" || got.FreightTotal != "₹ 10.00" {
		t.Errorf("print data = %+v", got)
	}
}

func TestSessionsAreKeptPerBrowser(t *testing.T) {
	backend := &stubBackend{records: []models.Bilty{{ID: 1, BiltySlNo: "A1"}}}
	s, h := newTestServer(backend)
	operator := newBrowser()
	operator.login(t, h)

	stranger := newBrowser()
	if body := stranger.do(t, h, http.MethodGet, "/", nil).Body.String(); !strings.Contains(body, `id="login-view"`) || strings.Contains(body, "A1") {
		t.Error("browser without a session saw the ledger")
	}
	for _, format := range []string{"csv", "xlsx", "pdf"} {
		rec := stranger.do(t, h, http.MethodGet, "/export/"+format, nil)
		if rec.Code != http.StatusSeeOther || rec.Header().Get("Content-Disposition") != "" {
			t.Errorf("%s export without session: status %d disposition %q", format, rec.Code, rec.Header().Get("Content-Disposition"))
		}
	}
	stranger.do(t, h, http.MethodPost, "/records/1/delete", nil)
	stranger.do(t, h, http.MethodPost, "/records", url.Values{"bilty_sl_no": {"X"}})
	if len(backend.deleted) != 0 || len(backend.updates) != 0 {
		t.Errorf("browser without a session reached the backend: deleted %v updates %v", backend.deleted, backend.updates)
	}

	// a second browser logging out must not end the first one's session
	stranger.login(t, h)
	stranger.do(t, h, http.MethodPost, "/logout", nil)
	if body := operator.do(t, h, http.MethodGet, "/", nil).Body.String(); !strings.Contains(body, `id="main-app-content"`) {
		t.Error("operator was logged out by another browser")
	}
	if rec := operator.do(t, h, http.MethodGet, "/export/csv", nil); rec.Code != http.StatusOK {
		t.Errorf("operator export status = %d", rec.Code)
	}
	if got := s.sessions.len(); got != 2 {
		t.Errorf("sessions = %d, want 2", got)
	}
}

func TestUnknownSessionCookieGetsLoginView(t *testing.T) {
	_, h := newTestServer(&stubBackend{records: []models.Bilty{{ID: 1, BiltySlNo: "A1"}}})
	b := newBrowser()
	b.cookies[sessionCookie] = &http.Cookie{Name: sessionCookie, Value: "forged"}

	if body := b.do(t, h, http.MethodGet, "/", nil).Body.String(); !strings.Contains(body, `id="login-view"`) {
		t.Error("forged cookie reached the ledger")
	}
	if rec := b.do(t, h, http.MethodGet, "/export/csv", nil); rec.Code != http.StatusSeeOther {
		t.Errorf("export status = %d", rec.Code)
	}
}
