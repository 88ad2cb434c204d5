// Package ledger holds the operator-facing state of the dispatch ledger:
// the session, the in-memory record store and the create/edit form.
package ledger

import (
	"context"
	"errors"
	"sync"

	"roadwaysledger/logger"
	"roadwaysledger/models"
)

var (
	ErrNotLoggedIn       = errors.New("not logged in")
	ErrSubmitInProgress  = errors.New("a save is already in progress")
	ErrRecordNotInLedger = errors.New("record not in ledger")
	ErrSessionEnded      = errors.New("session ended before the response arrived")
)

// Backend is the REST surface the ledger talks to. *gateway.Client
// implements it.
type Backend interface {
	Login(ctx context.Context, username, password string) (*models.AppUser, error)
	CreateUser(ctx context.Context, username, password string) error
	ListBilty(ctx context.Context) ([]models.Bilty, error)
	CreateBilty(ctx context.Context, draft models.BiltyDraft) (*models.Bilty, error)
	UpdateBilty(ctx context.Context, id int64, draft models.BiltyDraft) (*models.Bilty, error)
	DeleteBilty(ctx context.Context, id int64) error
	CompanyProfile(ctx context.Context) (*models.CompanyProfile, error)
}

// Notice is a one-shot toast message.
type Notice struct {
	Message string
	IsError bool
}

// Session is the logged in operator, if any.
type Session struct {
	user *models.AppUser
}

func (s Session) LoggedIn() bool { return s.user != nil }

func (s Session) Username() string {
	if s.user == nil {
		return ""
	}
	return s.user.Username
}

// App is the ledger state of one browser. The lock is never held across a
// backend call; whichever response is processed last wins, but responses
// that land after the session changed are dropped.
type App struct {
	mu      sync.Mutex
	backend Backend
	log     *logger.Logger

	session   Session
	epoch     uint64 // bumped on every login and logout
	store     Store
	form      *Form
	notice    *Notice
	loading   bool
	loginErr  string
	signupErr string
}

func NewApp(backend Backend, log *logger.Logger) *App {
	if log == nil {
		log = logger.Discard()
	}
	return &App{backend: backend, log: log, form: NewForm()}
}

func (a *App) setNotice(msg string, isError bool) {
	a.notice = &Notice{Message: msg, IsError: isError}
}

// Login authenticates and, on success, reloads the whole store. A failed
// reload leaves the operator logged in with an error notice.
func (a *App) Login(ctx context.Context, username, password string) error {
	a.mu.Lock()
	a.loginErr = ""
	a.mu.Unlock()

	user, err := a.backend.Login(ctx, username, password)
	if err != nil {
		a.mu.Lock()
		a.loginErr = err.Error()
		a.mu.Unlock()
		a.log.Info("login failed", "username", username, "error", err)
		return err
	}

	a.mu.Lock()
	a.session = Session{user: user}
	a.epoch++
	a.store.Clear()
	a.form.BeginCreate()
	a.setNotice("Welcome, "+user.Username+"!", false)
	a.mu.Unlock()
	a.log.Info("operator logged in", "username", user.Username)

	_ = a.Load(ctx)
	return nil
}

// Logout drops the session, the store and any half-filled form.
func (a *App) Logout() {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.session.LoggedIn() {
		a.log.Info("operator logged out", "username", a.session.Username())
	}
	a.session = Session{}
	a.epoch++
	a.store.Clear()
	a.form.BeginCreate()
	a.form.submitting = false
	a.loading = false
	a.loginErr = ""
	a.setNotice("Logged out successfully.", false)
}

// CreateUser registers an account. The session is left alone.
func (a *App) CreateUser(ctx context.Context, username, password string) error {
	a.mu.Lock()
	a.signupErr = ""
	a.mu.Unlock()

	err := a.backend.CreateUser(ctx, username, password)

	a.mu.Lock()
	defer a.mu.Unlock()
	if err != nil {
		a.signupErr = err.Error()
		return err
	}
	a.setNotice("User created successfully! You can now log in.", false)
	return nil
}

// Load replaces the store with the backend's records. On failure the last
// known records stay.
func (a *App) Load(ctx context.Context) error {
	a.mu.Lock()
	if !a.session.LoggedIn() {
		a.mu.Unlock()
		return ErrNotLoggedIn
	}
	a.loading = true
	epoch := a.epoch
	a.mu.Unlock()

	list, err := a.backend.ListBilty(ctx)

	a.mu.Lock()
	defer a.mu.Unlock()
	if a.epoch != epoch {
		return ErrSessionEnded
	}
	a.loading = false
	if err != nil {
		a.log.Warn("load records failed", "error", err)
		a.setNotice(err.Error(), true)
		return err
	}
	a.store.Load(list)
	return nil
}

// Submit saves the form: a create in create mode, an update of the record
// under edit otherwise. On failure the values stay and the form shows the
// error inline.
func (a *App) Submit(ctx context.Context, input map[string]string) error {
	a.mu.Lock()
	if !a.session.LoggedIn() {
		a.mu.Unlock()
		return ErrNotLoggedIn
	}
	if a.form.submitting {
		a.mu.Unlock()
		return ErrSubmitInProgress
	}
	draft := a.form.read(input)
	id := a.form.editingID
	a.form.err = ""
	a.form.submitting = true
	epoch := a.epoch
	a.mu.Unlock()

	var (
		saved *models.Bilty
		err   error
	)
	if id != 0 {
		saved, err = a.backend.UpdateBilty(ctx, id, draft)
	} else {
		saved, err = a.backend.CreateBilty(ctx, draft)
	}

	a.mu.Lock()
	defer a.mu.Unlock()
	if a.epoch != epoch {
		a.log.Info("save response dropped after session change", "id", id)
		return ErrSessionEnded
	}
	a.form.submitting = false
	if err != nil {
		a.form.err = "Error: " + err.Error()
		a.log.Warn("save record failed", "id", id, "error", err)
		return err
	}

	if id != 0 {
		a.store.Replace(id, *saved)
		a.setNotice("Record updated!", false)
	} else {
		a.store.Prepend(*saved)
		a.setNotice("Record saved!", false)
	}
	a.form.BeginCreate()
	return nil
}

// BeginEdit loads a stored record into the form.
func (a *App) BeginEdit(id int64) error {
	a.mu.Lock()
	defer a.mu.Unlock()
	b, ok := a.store.Find(id)
	if !ok {
		return ErrRecordNotInLedger
	}
	a.form.BeginEdit(b)
	return nil
}

// Cancel abandons an edit without touching the backend.
func (a *App) Cancel() bool {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.form.Cancel()
}

// Delete removes a record on the backend and then locally. The request is
// sent even when the id is not in the store.
func (a *App) Delete(ctx context.Context, id int64) error {
	a.mu.Lock()
	if !a.session.LoggedIn() {
		a.mu.Unlock()
		return ErrNotLoggedIn
	}
	epoch := a.epoch
	a.mu.Unlock()

	err := a.backend.DeleteBilty(ctx, id)

	a.mu.Lock()
	defer a.mu.Unlock()
	if a.epoch != epoch {
		return ErrSessionEnded
	}
	if err != nil {
		a.log.Warn("delete record failed", "id", id, "error", err)
		a.setNotice(err.Error(), true)
		return err
	}
	a.store.Remove(id)
	a.setNotice("Record deleted successfully.", false)
	return nil
}

// Notify queues a toast from outside the ledger (exports).
func (a *App) Notify(msg string, isError bool) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.setNotice(msg, isError)
}

// TakeNotice returns and clears the pending toast.
func (a *App) TakeNotice() *Notice {
	a.mu.Lock()
	defer a.mu.Unlock()
	n := a.notice
	a.notice = nil
	return n
}

// Records is a copy of the store for exporters.
func (a *App) Records() []models.Bilty {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.store.Records()
}

func (a *App) Session() Session {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.session
}

// CompanyProfile is fetched on demand for printed exports.
func (a *App) CompanyProfile(ctx context.Context) (*models.CompanyProfile, error) {
	return a.backend.CompanyProfile(ctx)
}

// Snapshot is a consistent read of everything a page needs.
type Snapshot struct {
	LoggedIn     bool
	Username     string
	Records      []models.Bilty
	Loading      bool
	Mode         Mode
	EditingID    int64
	FormTitle    string
	SubmitLabel  string
	FormValues   models.BiltyDraft
	FormError    string
	SerialLocked bool
	Submitting   bool
	LoginError   string
	SignupError  string
}

func (a *App) Snapshot() Snapshot {
	a.mu.Lock()
	defer a.mu.Unlock()
	return Snapshot{
		LoggedIn:     a.session.LoggedIn(),
		Username:     a.session.Username(),
		Records:      a.store.Records(),
		Loading:      a.loading,
		Mode:         a.form.Mode(),
		EditingID:    a.form.EditingID(),
		FormTitle:    a.form.Title(),
		SubmitLabel:  a.form.SubmitLabel(),
		FormValues:   a.form.Values(),
		FormError:    a.form.Error(),
		SerialLocked: a.form.SerialLocked(),
		Submitting:   a.form.Submitting(),
		LoginError:   a.loginErr,
		SignupError:  a.signupErr,
	}
}
