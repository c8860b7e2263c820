package handlers

import (
	"encoding/json"
	"log"
	"net/http"

	"github.com/vedran77/chatbin/internal/domain"
	"github.com/vedran77/chatbin/internal/repository"
	"github.com/vedran77/chatbin/pkg/validator"
)

// DataHandler exposes the raw document, mirroring the original
// GET/POST /api/data shell the browser UI talks to.
type DataHandler struct {
	repo *repository.DocumentRepository
}

func NewDataHandler(repo *repository.DocumentRepository) *DataHandler {
	return &DataHandler{repo: repo}
}

func (h *DataHandler) Get(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.repo.Load(r.Context()))
}

func (h *DataHandler) Post(w http.ResponseWriter, r *http.Request) {
	var doc domain.Document
	if err := json.NewDecoder(r.Body).Decode(&doc); err != nil {
		writeError(w, http.StatusBadRequest, "INVALID_JSON", "Invalid request body")
		return
	}

	if err := h.repo.Save(r.Context(), doc); err != nil {
		log.Printf("ERROR save data: %v", err)
		writeError(w, http.StatusInternalServerError, "INTERNAL", "Failed to save data")
		return
	}

	writeJSON(w, http.StatusOK, map[string]bool{"success": true})
}

func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

func writeError(w http.ResponseWriter, status int, code string, message string) {
	writeJSON(w, status, map[string]any{
		"error": map[string]string{
			"code":    code,
			"message": message,
		},
	})
}

func writeValidationErrors(w http.ResponseWriter, errs validator.ValidationErrors) {
	writeJSON(w, http.StatusBadRequest, map[string]any{
		"error": map[string]any{
			"code":   "VALIDATION_ERROR",
			"fields": errs,
		},
	})
}
