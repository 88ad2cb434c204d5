package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/gorilla/mux"

	"roadwaysledger/logger"
	"roadwaysledger/metrics"
	"roadwaysledger/models"
	"roadwaysledger/repository"
)

type BiltyHandler struct {
	Repo repository.BiltyRepository
	Log  *logger.Logger
}

// ListBilty returns every record, newest first.
func (h *BiltyHandler) ListBilty(w http.ResponseWriter, r *http.Request) {
	list, err := h.Repo.ListBilty(r.Context())
	if err != nil {
		h.Log.Error("list bilty failed", "error", err)
		writeError(w, http.StatusInternalServerError, "failed to load records")
		return
	}
	if list == nil {
		list = []*models.Bilty{}
	}
	writeJSON(w, http.StatusOK, list)
}

func (h *BiltyHandler) GetBilty(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	b, err := h.Repo.GetBilty(r.Context(), id)
	if errors.Is(err, repository.ErrNotFound) {
		writeError(w, http.StatusNotFound, "bilty not found")
		return
	}
	if err != nil {
		h.Log.Error("get bilty failed", "id", id, "error", err)
		writeError(w, http.StatusInternalServerError, "failed to load record")
		return
	}
	writeJSON(w, http.StatusOK, b)
}

func (h *BiltyHandler) CreateBilty(w http.ResponseWriter, r *http.Request) {
	draft, ok := decodeDraft(w, r)
	if !ok {
		return
	}
	if strings.TrimSpace(draft["bilty_sl_no"]) == "" {
		writeError(w, http.StatusBadRequest, "bilty_sl_no is required")
		return
	}

	bilty := &models.Bilty{}
	draft["bilty_sl_no"] = strings.TrimSpace(draft["bilty_sl_no"])
	draft.Apply(bilty)

	err := h.Repo.CreateBilty(r.Context(), bilty)
	metrics.ObserveBilty("create", err)
	switch {
	case errors.Is(err, repository.ErrDuplicate):
		writeError(w, http.StatusConflict, "bilty_sl_no "+bilty.BiltySlNo+" already exists")
		return
	case err != nil:
		h.Log.Error("create bilty failed", "bilty_sl_no", bilty.BiltySlNo, "error", err)
		writeError(w, http.StatusInternalServerError, "failed to save record")
		return
	}

	h.Log.Info("bilty created", "id", bilty.ID, "bilty_sl_no", bilty.BiltySlNo)
	writeJSON(w, http.StatusCreated, bilty)
}

// UpdateBilty applies the draft over the stored record. The serial number
// of an existing record never changes.
func (h *BiltyHandler) UpdateBilty(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	draft, ok := decodeDraft(w, r)
	if !ok {
		return
	}

	bilty, err := h.Repo.GetBilty(r.Context(), id)
	if errors.Is(err, repository.ErrNotFound) {
		writeError(w, http.StatusNotFound, "bilty not found")
		return
	}
	if err != nil {
		h.Log.Error("load bilty for update failed", "id", id, "error", err)
		writeError(w, http.StatusInternalServerError, "failed to save record")
		return
	}

	draft.Apply(bilty)
	err = h.Repo.UpdateBilty(r.Context(), bilty)
	metrics.ObserveBilty("update", err)
	switch {
	case errors.Is(err, repository.ErrNotFound):
		writeError(w, http.StatusNotFound, "bilty not found")
		return
	case err != nil:
		h.Log.Error("update bilty failed", "id", id, "error", err)
		writeError(w, http.StatusInternalServerError, "failed to save record")
		return
	}
	writeJSON(w, http.StatusOK, bilty)
}

func (h *BiltyHandler) DeleteBilty(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	err := h.Repo.DeleteBilty(r.Context(), id)
	metrics.ObserveBilty("delete", err)
	if errors.Is(err, repository.ErrNotFound) {
		writeError(w, http.StatusNotFound, "bilty not found")
		return
	}
	if err != nil {
		h.Log.Error("delete bilty failed", "id", id, "error", err)
		writeError(w, http.StatusInternalServerError, "failed to delete bilty")
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{"success": true, "message": "Bilty deleted successfully"})
}

func pathID(w http.ResponseWriter, r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(mux.Vars(r)["id"], 10, 64)
	if err != nil || id <= 0 {
		writeError(w, http.StatusBadRequest, "invalid bilty id")
		return 0, false
	}
	return id, true
}

func decodeDraft(w http.ResponseWriter, r *http.Request) (models.BiltyDraft, bool) {
	var draft models.BiltyDraft
	if err := json.NewDecoder(r.Body).Decode(&draft); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request payload: "+err.Error())
		return nil, false
	}
	if draft == nil {
		draft = models.BiltyDraft{}
	}
	if v := strings.TrimSpace(draft["bill_date"]); v != "" {
		if _, ok := models.Date(v).Time(); !ok {
			writeError(w, http.StatusBadRequest, "invalid bill_date "+strconv.Quote(v))
			return nil, false
		}
	}
	return draft, true
}
