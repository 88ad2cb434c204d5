package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"roadwaysledger/logger"
	"roadwaysledger/models"
	"roadwaysledger/repository"
)

type InitialHandler struct {
	Repo repository.InitialRepository
	Log  *logger.Logger
}

func (h *InitialHandler) SaveInitial(w http.ResponseWriter, r *http.Request) {
	var profile models.CompanyProfile
	if err := json.NewDecoder(r.Body).Decode(&profile); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request payload: "+err.Error())
		return
	}

	err := h.Repo.SaveInitial(r.Context(), &profile)
	if errors.Is(err, repository.ErrNotFound) {
		writeError(w, http.StatusNotFound, "company profile not found")
		return
	}
	if err != nil {
		h.Log.Error("save company profile failed", "error", err)
		writeError(w, http.StatusInternalServerError, "failed to save company profile")
		return
	}
	writeJSON(w, http.StatusCreated, profile)
}

func (h *InitialHandler) GetInitial(w http.ResponseWriter, r *http.Request) {
	profile, err := h.Repo.GetInitial(r.Context())
	if err != nil {
		h.Log.Error("load company profile failed", "error", err)
		writeError(w, http.StatusInternalServerError, "failed to load company profile")
		return
	}
	if profile == nil {
		writeError(w, http.StatusNotFound, "company profile not found")
		return
	}
	writeJSON(w, http.StatusOK, profile)
}
