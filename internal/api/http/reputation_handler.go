package http

import (
	"net/http"

	"krayaa-backend/internal/domain"
	"krayaa-backend/internal/service"
)

type ReputationHandler struct {
	repSvc service.ReputationService
}

func NewReputationHandler(repSvc service.ReputationService) *ReputationHandler {
	return &ReputationHandler{repSvc: repSvc}
}

type reputationLogPage struct {
	Entries  []domain.ReputationLog `json:"entries"`
	Total    int32                  `json:"total"`
	Page     int32                  `json:"page"`
	PageSize int32                  `json:"page_size"`
}

// ListMyLog returns the caller's reputation ledger, newest first.
func (h *ReputationHandler) ListMyLog(w http.ResponseWriter, r *http.Request) {
	caller := UserFromContext(r.Context())
	page, pageSize := pagination(r)

	entries, total, err := h.repSvc.ListLog(r.Context(), caller.UID, page, pageSize)
	if err != nil {
		respondWithDomainError(w, err)
		return
	}
	respondWithJSON(w, http.StatusOK, reputationLogPage{Entries: entries, Total: total, Page: page, PageSize: pageSize})
}
