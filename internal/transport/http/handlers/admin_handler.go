package handlers

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"github.com/vedran77/chatbin/internal/service"
	"github.com/vedran77/chatbin/pkg/validator"
)

type AdminHandler struct {
	adminService   *service.AdminService
	channelService *service.ChannelService
	identity       *service.IdentityService
}

func NewAdminHandler(adminService *service.AdminService, channelService *service.ChannelService, identity *service.IdentityService) *AdminHandler {
	return &AdminHandler{adminService: adminService, channelService: channelService, identity: identity}
}

func (h *AdminHandler) Login(w http.ResponseWriter, r *http.Request) {
	var input struct {
		Password string `json:"password"`
	}
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		writeError(w, http.StatusBadRequest, "INVALID_JSON", "Invalid request body")
		return
	}

	ok, err := h.adminService.Login(r.Context(), input.Password)
	if err != nil {
		log.Printf("ERROR admin login: %v", err)
		writeError(w, http.StatusInternalServerError, "INTERNAL", "Something went wrong")
		return
	}
	if !ok {
		writeError(w, http.StatusUnauthorized, "WRONG_PASSWORD", "Incorrect password")
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"success":  true,
		"username": h.identity.EffectiveUsername(r.Context()),
	})
}

func (h *AdminHandler) Logout(w http.ResponseWriter, r *http.Request) {
	if err := h.adminService.Logout(r.Context()); err != nil {
		log.Printf("ERROR admin logout: %v", err)
		writeError(w, http.StatusInternalServerError, "INTERNAL", "Something went wrong")
		return
	}
	writeJSON(w, http.StatusOK, map[string]bool{"success": true})
}

func (h *AdminHandler) ChangePassword(w http.ResponseWriter, r *http.Request) {
	var input struct {
		NewPassword     string `json:"newPassword"`
		ConfirmPassword string `json:"confirmPassword"`
	}
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		writeError(w, http.StatusBadRequest, "INVALID_JSON", "Invalid request body")
		return
	}

	err := h.adminService.ChangePassword(r.Context(), input.NewPassword, input.ConfirmPassword)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrNotLoggedIn):
			writeError(w, http.StatusUnauthorized, "NOT_LOGGED_IN", "You must be logged in as admin")
		case errors.Is(err, service.ErrPasswordTooShort):
			writeError(w, http.StatusBadRequest, "VALIDATION_ERROR", "Password must be at least 3 characters")
		case errors.Is(err, service.ErrPasswordMismatch):
			writeError(w, http.StatusBadRequest, "VALIDATION_ERROR", "Passwords do not match")
		default:
			log.Printf("ERROR change password: %v", err)
			writeError(w, http.StatusInternalServerError, "INTERNAL", "Something went wrong")
		}
		return
	}

	writeJSON(w, http.StatusOK, map[string]bool{"success": true})
}

func (h *AdminHandler) SetUsername(w http.ResponseWriter, r *http.Request) {
	var input struct {
		Username string `json:"username"`
	}
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		writeError(w, http.StatusBadRequest, "INVALID_JSON", "Invalid request body")
		return
	}
	if input.Username == "" {
		writeError(w, http.StatusBadRequest, "VALIDATION_ERROR", "Please enter a username")
		return
	}

	if err := h.adminService.SetCustomUsername(r.Context(), input.Username); err != nil {
		if errors.Is(err, service.ErrNotLoggedIn) {
			writeError(w, http.StatusUnauthorized, "NOT_LOGGED_IN", "You must be logged in as admin")
		} else {
			log.Printf("ERROR set username: %v", err)
			writeError(w, http.StatusInternalServerError, "INTERNAL", "Something went wrong")
		}
		return
	}

	writeJSON(w, http.StatusOK, map[string]bool{"success": true})
}

// ListChannels returns every channel, public and private, for the admin
// panel's channel picker.
func (h *AdminHandler) ListChannels(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.channelService.ListAll(r.Context()))
}

func (h *AdminHandler) JoinChannel(w http.ResponseWriter, r *http.Request) {
	channelID := r.PathValue("id")

	ch, err := h.adminService.JoinChannel(r.Context(), channelID)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrNotLoggedIn):
			writeError(w, http.StatusUnauthorized, "NOT_LOGGED_IN", "Not logged in as admin")
		case errors.Is(err, service.ErrChannelNotFound):
			writeError(w, http.StatusNotFound, "NOT_FOUND", "Channel not found")
		default:
			log.Printf("ERROR admin join channel: %v", err)
			writeError(w, http.StatusInternalServerError, "INTERNAL", "Something went wrong")
		}
		return
	}

	writeJSON(w, http.StatusOK, ch)
}

func (h *AdminHandler) CreateAnnouncement(w http.ResponseWriter, r *http.Request) {
	var input service.CreateAnnouncementInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		writeError(w, http.StatusBadRequest, "INVALID_JSON", "Invalid request body")
		return
	}

	if errs := validator.ValidateAnnouncement(input.Title); errs.HasErrors() {
		writeValidationErrors(w, errs)
		return
	}

	ann, err := h.adminService.CreateAnnouncement(r.Context(), input)
	if err != nil {
		if errors.Is(err, service.ErrNotLoggedIn) {
			writeError(w, http.StatusUnauthorized, "NOT_LOGGED_IN", "Not logged in as admin")
		} else {
			log.Printf("ERROR create announcement: %v", err)
			writeError(w, http.StatusInternalServerError, "INTERNAL", "Something went wrong")
		}
		return
	}

	writeJSON(w, http.StatusCreated, ann)
}

func (h *AdminHandler) ListAnnouncements(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.adminService.ListAnnouncements(r.Context()))
}
