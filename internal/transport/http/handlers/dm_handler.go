package handlers

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"github.com/vedran77/chatbin/internal/service"
	"github.com/vedran77/chatbin/pkg/validator"
)

type DMHandler struct {
	dmService *service.DMService
	identity  *service.IdentityService
}

func NewDMHandler(dmService *service.DMService, identity *service.IdentityService) *DMHandler {
	return &DMHandler{dmService: dmService, identity: identity}
}

func (h *DMHandler) Start(w http.ResponseWriter, r *http.Request) {
	var input struct {
		Username string `json:"username"`
	}
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		writeError(w, http.StatusBadRequest, "INVALID_JSON", "Invalid request body")
		return
	}

	current := h.identity.EffectiveUsername(r.Context())
	if errs := validator.ValidateDMTarget(input.Username, current); errs.HasErrors() {
		writeValidationErrors(w, errs)
		return
	}

	conv, err := h.dmService.Start(r.Context(), input.Username)
	if err != nil {
		log.Printf("ERROR start dm: %v", err)
		writeError(w, http.StatusInternalServerError, "INTERNAL", "Something went wrong")
		return
	}

	writeJSON(w, http.StatusOK, conv)
}

func (h *DMHandler) List(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.dmService.ListMine(r.Context()))
}

func (h *DMHandler) PostMessage(w http.ResponseWriter, r *http.Request) {
	conversationID := r.PathValue("id")

	var input struct {
		Text string `json:"text"`
	}
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		writeError(w, http.StatusBadRequest, "INVALID_JSON", "Invalid request body")
		return
	}

	if errs := validator.ValidateMessage(input.Text); errs.HasErrors() {
		writeValidationErrors(w, errs)
		return
	}

	msg, err := h.dmService.PostMessage(r.Context(), conversationID, input.Text)
	if err != nil {
		if errors.Is(err, service.ErrConversationNotFound) {
			writeError(w, http.StatusNotFound, "NOT_FOUND", "Conversation not found")
		} else {
			log.Printf("ERROR post dm message: %v", err)
			writeError(w, http.StatusInternalServerError, "INTERNAL", "Something went wrong")
		}
		return
	}

	writeJSON(w, http.StatusCreated, msg)
}
