// Package webui serves the operator pages of the ledger.
package webui

import (
	"bytes"
	"context"
	"embed"
	"errors"
	"html/template"
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"

	"roadwaysledger/handlers"
	"roadwaysledger/ledger"
	"roadwaysledger/logger"
	"roadwaysledger/models"
	"roadwaysledger/utils"
	"roadwaysledger/view"
)

//go:embed templates/*.html
var templateFS embed.FS

var pageTemplate = template.Must(template.ParseFS(templateFS, "templates/index.html"))

// Archiver stores a copy of an export. *utils.R2Archiver implements it.
type Archiver interface {
	Archive(ctx context.Context, filename string, body []byte, contentType string) (string, error)
}

// PDFPrinter turns the print model into a PDF document.
type PDFPrinter func(ctx context.Context, data utils.LedgerPDFData) ([]byte, error)

// Server renders the ledger pages. Each browser gets its own ledger.App
// built by NewApp, found again through a session cookie.
type Server struct {
	NewApp       func() *ledger.App
	Log          *logger.Logger
	DateFormat   string
	CompanyName  string
	SecureCookie bool
	Archiver     Archiver
	PrintPDF     PDFPrinter
	Now          func() time.Time

	sessions *sessionStore
}

// Routes builds the page router.
func (s *Server) Routes() http.Handler {
	if s.Log == nil {
		s.Log = logger.Discard()
	}
	if s.Now == nil {
		s.Now = time.Now
	}
	if s.DateFormat == "" {
		s.DateFormat = view.DefaultDateFormat
	}
	s.sessions = newSessionStore(s.NewApp, s.Now, s.SecureCookie)

	r := mux.NewRouter()
	wrap := handlers.RecoverWrapper

	r.HandleFunc("/", wrap(s.index)).Methods(http.MethodGet)
	r.HandleFunc("/login", wrap(s.login)).Methods(http.MethodPost)
	r.HandleFunc("/logout", wrap(s.logout)).Methods(http.MethodPost)
	r.HandleFunc("/users", wrap(s.createUser)).Methods(http.MethodPost)

	r.HandleFunc("/records", wrap(s.submit)).Methods(http.MethodPost)
	r.HandleFunc("/records/cancel", wrap(s.cancel)).Methods(http.MethodPost)
	r.HandleFunc("/records/{id:[0-9]+}/edit", wrap(s.edit)).Methods(http.MethodGet)
	r.HandleFunc("/records/{id:[0-9]+}/delete", wrap(s.delete)).Methods(http.MethodPost)

	r.HandleFunc("/export/csv", wrap(s.exportCSV)).Methods(http.MethodGet)
	r.HandleFunc("/export/xlsx", wrap(s.exportXLSX)).Methods(http.MethodGet)
	r.HandleFunc("/export/pdf", wrap(s.exportPDF)).Methods(http.MethodGet)

	return r
}

func (s *Server) index(w http.ResponseWriter, r *http.Request) {
	var data pageData
	if app, ok := s.sessions.lookup(r); ok {
		data = newPageData(app.Snapshot(), app.TakeNotice(), s.CompanyName, s.DateFormat)
	} else {
		data = newPageData(ledger.Snapshot{}, nil, s.CompanyName, s.DateFormat)
	}

	var buf bytes.Buffer
	if err := pageTemplate.Execute(&buf, data); err != nil {
		s.Log.Error("render page failed", "error", err)
		http.Error(w, "failed to render page", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Header().Set("Cache-Control", "no-store")
	_, _ = w.Write(buf.Bytes())
}

func (s *Server) home(w http.ResponseWriter, r *http.Request) {
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

// requireLogin returns the browser's app when it holds a logged in session.
// Otherwise it sends the browser back to the login view.
func (s *Server) requireLogin(w http.ResponseWriter, r *http.Request) (*ledger.App, bool) {
	app, ok := s.sessions.lookup(r)
	if !ok || !app.Session().LoggedIn() {
		s.home(w, r)
		return nil, false
	}
	return app, true
}

func (s *Server) login(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "invalid form", http.StatusBadRequest)
		return
	}
	// failures are kept on the app and shown by the next render
	app := s.sessions.get(w, r)
	_ = app.Login(r.Context(), r.PostForm.Get("username"), r.PostForm.Get("password"))
	s.home(w, r)
}

func (s *Server) logout(w http.ResponseWriter, r *http.Request) {
	if app, ok := s.sessions.lookup(r); ok {
		app.Logout()
	}
	s.home(w, r)
}

func (s *Server) createUser(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "invalid form", http.StatusBadRequest)
		return
	}
	_ = s.sessions.get(w, r).CreateUser(r.Context(), r.PostForm.Get("username"), r.PostForm.Get("password"))
	s.home(w, r)
}

func (s *Server) submit(w http.ResponseWriter, r *http.Request) {
	app, ok := s.requireLogin(w, r)
	if !ok {
		return
	}
	if err := r.ParseForm(); err != nil {
		http.Error(w, "invalid form", http.StatusBadRequest)
		return
	}
	input := make(map[string]string, len(models.FieldNames))
	for _, name := range models.FieldNames {
		input[name] = r.PostForm.Get(name)
	}
	err := app.Submit(r.Context(), input)
	if errors.Is(err, ledger.ErrSubmitInProgress) {
		http.Error(w, err.Error(), http.StatusConflict)
		return
	}
	s.home(w, r)
}

func (s *Server) cancel(w http.ResponseWriter, r *http.Request) {
	if app, ok := s.sessions.lookup(r); ok {
		app.Cancel()
	}
	s.home(w, r)
}

func (s *Server) edit(w http.ResponseWriter, r *http.Request) {
	app, ok := s.requireLogin(w, r)
	if !ok {
		return
	}
	id, err := strconv.ParseInt(mux.Vars(r)["id"], 10, 64)
	if err != nil {
		http.Error(w, "invalid id", http.StatusBadRequest)
		return
	}
	if err := app.BeginEdit(id); err != nil {
		s.Log.Debug("edit of unknown record", "id", id)
	}
	s.home(w, r)
}

func (s *Server) delete(w http.ResponseWriter, r *http.Request) {
	app, ok := s.requireLogin(w, r)
	if !ok {
		return
	}
	id, err := strconv.ParseInt(mux.Vars(r)["id"], 10, 64)
	if err != nil {
		http.Error(w, "invalid id", http.StatusBadRequest)
		return
	}
	_ = app.Delete(r.Context(), id)
	s.home(w, r)
}
