package http

import (
	"encoding/json"
	"net/http"

	"krayaa-backend/internal/service"
)

type UserHandler struct {
	userSvc service.UserService
}

func NewUserHandler(userSvc service.UserService) *UserHandler {
	return &UserHandler{userSvc: userSvc}
}

func (h *UserHandler) GetMe(w http.ResponseWriter, r *http.Request) {
	caller := UserFromContext(r.Context())
	respondWithJSON(w, http.StatusOK, caller)
}

type updateProfileRequest struct {
	Username string `json:"username"`
	AvatarID int32  `json:"avatar_id"`
}

func (h *UserHandler) UpdateMe(w http.ResponseWriter, r *http.Request) {
	caller := UserFromContext(r.Context())

	var req updateProfileRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, http.StatusBadRequest, "malformed JSON body")
		return
	}

	user, err := h.userSvc.UpdateProfile(r.Context(), caller.UID, req.Username, req.AvatarID)
	if err != nil {
		respondWithDomainError(w, err)
		return
	}
	respondWithJSON(w, http.StatusOK, user)
}
