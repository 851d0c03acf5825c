package http

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/MKhiriev/go-clinic-keeper/internal/logger"
	"github.com/MKhiriev/go-clinic-keeper/internal/utils"
	"github.com/MKhiriev/go-clinic-keeper/models"
)

// entityType resolves the {entity} path segment. It writes 404 and returns
// false for unknown collections.
func (h *Handler) entityType(w http.ResponseWriter, r *http.Request) (models.EntityType, bool) {
	et, err := models.ParseEntityPath(chi.URLParam(r, "entity"))
	if err != nil {
		utils.WriteError(w, err.Error(), http.StatusNotFound)
		return "", false
	}
	return et, true
}

func decodeRecord(w http.ResponseWriter, r *http.Request, fn string) (models.Record, bool) {
	var data models.Record
	if err := json.NewDecoder(r.Body).Decode(&data); err != nil {
		logger.FromRequest(r).Err(err).Str("func", fn).Msg("Invalid JSON was passed")
		utils.WriteError(w, "invalid JSON was passed", http.StatusBadRequest)
		return nil, false
	}
	return data, true
}

func (h *Handler) writeServiceError(w http.ResponseWriter, r *http.Request, fn string, err error) {
	status := statusFromError(err)

	event := logger.FromRequest(r).Warn()
	if status >= http.StatusInternalServerError {
		event = logger.FromRequest(r).Error()
	}
	event.Err(err).Str("func", fn).Int("status", status).Msg("request failed")

	utils.WriteError(w, err.Error(), status)
}

func (h *Handler) listRecords(w http.ResponseWriter, r *http.Request) {
	et, ok := h.entityType(w, r)
	if !ok {
		return
	}

	params := models.ListParams{}
	for key, values := range r.URL.Query() {
		if len(values) > 0 {
			params[key] = values[0]
		}
	}

	records, err := h.services.RecordService.List(r.Context(), et, params)
	if err != nil {
		h.writeServiceError(w, r, "*Handler.listRecords", err)
		return
	}

	_, _ = utils.WriteJSON(w, records, http.StatusOK)
}

func (h *Handler) getRecord(w http.ResponseWriter, r *http.Request) {
	et, ok := h.entityType(w, r)
	if !ok {
		return
	}

	record, err := h.services.RecordService.Get(r.Context(), et, chi.URLParam(r, "id"))
	if err != nil {
		h.writeServiceError(w, r, "*Handler.getRecord", err)
		return
	}

	_, _ = utils.WriteJSON(w, record, http.StatusOK)
}

func (h *Handler) createRecord(w http.ResponseWriter, r *http.Request) {
	et, ok := h.entityType(w, r)
	if !ok {
		return
	}
	data, ok := decodeRecord(w, r, "*Handler.createRecord")
	if !ok {
		return
	}

	record, err := h.services.RecordService.Create(r.Context(), et, data)
	if err != nil {
		h.writeServiceError(w, r, "*Handler.createRecord", err)
		return
	}

	_, _ = utils.WriteJSON(w, record, http.StatusCreated)
}

func (h *Handler) updateRecord(w http.ResponseWriter, r *http.Request) {
	et, ok := h.entityType(w, r)
	if !ok {
		return
	}
	data, ok := decodeRecord(w, r, "*Handler.updateRecord")
	if !ok {
		return
	}

	record, err := h.services.RecordService.Update(r.Context(), et, chi.URLParam(r, "id"), data)
	if err != nil {
		h.writeServiceError(w, r, "*Handler.updateRecord", err)
		return
	}

	_, _ = utils.WriteJSON(w, record, http.StatusOK)
}

func (h *Handler) deleteRecord(w http.ResponseWriter, r *http.Request) {
	et, ok := h.entityType(w, r)
	if !ok {
		return
	}

	if err := h.services.RecordService.Delete(r.Context(), et, chi.URLParam(r, "id")); err != nil {
		h.writeServiceError(w, r, "*Handler.deleteRecord", err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
