package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"roadwaysledger/logger"
	"roadwaysledger/metrics"
	"roadwaysledger/models"
	"roadwaysledger/repository"
)

type UserHandler struct {
	Repo repository.UserRepository
	Log  *logger.Logger
}

// Signup creates an operator account.
func (h *UserHandler) Signup(w http.ResponseWriter, r *http.Request) {
	var creds models.Credentials
	if err := json.NewDecoder(r.Body).Decode(&creds); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request payload: "+err.Error())
		return
	}
	if strings.TrimSpace(creds.Username) == "" || creds.Password == "" {
		writeError(w, http.StatusBadRequest, "username and password are required")
		return
	}

	user := &models.AppUser{Username: creds.Username, Password: creds.Password}
	err := h.Repo.CreateUser(r.Context(), user)
	switch {
	case errors.Is(err, repository.ErrDuplicate):
		writeError(w, http.StatusConflict, "username already exists")
		return
	case err != nil:
		h.Log.Error("create user failed", "username", creds.Username, "error", err)
		writeError(w, http.StatusInternalServerError, "failed to create user")
		return
	}

	h.Log.Info("user created", "id", user.ID, "username", user.Username)
	writeJSON(w, http.StatusCreated, user)
}

// Login checks credentials and returns the user without its hash.
func (h *UserHandler) Login(w http.ResponseWriter, r *http.Request) {
	var creds models.Credentials
	if err := json.NewDecoder(r.Body).Decode(&creds); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request payload: "+err.Error())
		return
	}

	user, err := h.Repo.GetUserByUsername(r.Context(), creds.Username)
	if err != nil {
		h.Log.Error("lookup user failed", "username", creds.Username, "error", err)
		metrics.LoginAttempts.WithLabelValues("error").Inc()
		writeError(w, http.StatusInternalServerError, "login failed")
		return
	}
	if user == nil || !repository.VerifyPassword(user, creds.Password) {
		metrics.LoginAttempts.WithLabelValues("rejected").Inc()
		writeError(w, http.StatusUnauthorized, "Invalid username or password")
		return
	}

	metrics.LoginAttempts.WithLabelValues("ok").Inc()
	writeJSON(w, http.StatusOK, user)
}
