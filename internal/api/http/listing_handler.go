package http

import (
	"encoding/json"
	"io"
	"net/http"
	"strconv"

	"krayaa-backend/internal/domain"
	"krayaa-backend/internal/service"
)

type ListingHandler struct {
	listingSvc   service.ListingService
	maxFileBytes int64
}

func NewListingHandler(listingSvc service.ListingService, maxFileSizeMB int64) *ListingHandler {
	return &ListingHandler{
		listingSvc:   listingSvc,
		maxFileBytes: maxFileSizeMB * 1024 * 1024,
	}
}

func (h *ListingHandler) Create(w http.ResponseWriter, r *http.Request) {
	caller := UserFromContext(r.Context())

	if err := r.ParseMultipartForm(h.maxFileBytes); err != nil {
		respondWithError(w, http.StatusBadRequest, "malformed multipart request")
		return
	}
	defer r.MultipartForm.RemoveAll()

	req := service.CreateListingRequest{
		Title:       r.FormValue("title"),
		Description: r.FormValue("description"),
	}

	var err error
	if req.PricePerHourCents, err = optionalCents(r.FormValue("price_per_hour_cents")); err != nil {
		respondWithError(w, http.StatusBadRequest, "invalid price_per_hour_cents")
		return
	}
	if req.PricePerDayCents, err = optionalCents(r.FormValue("price_per_day_cents")); err != nil {
		respondWithError(w, http.StatusBadRequest, "invalid price_per_day_cents")
		return
	}

	files := r.MultipartForm.File["images"]
	if len(files) > domain.MaxListingImages {
		respondWithError(w, http.StatusBadRequest, "at most 3 listing images are allowed")
		return
	}
	for _, fh := range files {
		if fh.Size > h.maxFileBytes {
			respondWithError(w, http.StatusBadRequest, "image exceeds the size limit")
			return
		}
		f, err := fh.Open()
		if err != nil {
			respondWithError(w, http.StatusInternalServerError, "failed to read uploaded image")
			return
		}
		data, err := io.ReadAll(f)
		f.Close()
		if err != nil {
			respondWithError(w, http.StatusInternalServerError, "failed to read uploaded image")
			return
		}
		req.Images = append(req.Images, service.EvidenceUpload{
			Filename:    fh.Filename,
			ContentType: fh.Header.Get("Content-Type"),
			Data:        data,
		})
	}

	listing, err := h.listingSvc.Create(r.Context(), caller, req)
	if err != nil {
		respondWithDomainError(w, err)
		return
	}
	respondWithJSON(w, http.StatusCreated, listing)
}

func (h *ListingHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "invalid listing id")
		return
	}

	listing, err := h.listingSvc.Get(r.Context(), id)
	if err != nil {
		respondWithDomainError(w, err)
		return
	}
	respondWithJSON(w, http.StatusOK, listing)
}

type listingPage struct {
	Listings []domain.RentalListing `json:"listings"`
	Total    int32                  `json:"total"`
	Page     int32                  `json:"page"`
	PageSize int32                  `json:"page_size"`
}

func (h *ListingHandler) ListAvailable(w http.ResponseWriter, r *http.Request) {
	page, pageSize := pagination(r)

	listings, total, err := h.listingSvc.ListAvailable(r.Context(), page, pageSize)
	if err != nil {
		respondWithDomainError(w, err)
		return
	}
	respondWithJSON(w, http.StatusOK, listingPage{Listings: listings, Total: total, Page: page, PageSize: pageSize})
}

func (h *ListingHandler) ListMine(w http.ResponseWriter, r *http.Request) {
	caller := UserFromContext(r.Context())
	page, pageSize := pagination(r)

	listings, total, err := h.listingSvc.ListMine(r.Context(), caller.UID, page, pageSize)
	if err != nil {
		respondWithDomainError(w, err)
		return
	}
	respondWithJSON(w, http.StatusOK, listingPage{Listings: listings, Total: total, Page: page, PageSize: pageSize})
}

type updateListingRequest struct {
	Title             string `json:"title"`
	Description       string `json:"description"`
	PricePerHourCents *int32 `json:"price_per_hour_cents"`
	PricePerDayCents  *int32 `json:"price_per_day_cents"`
	Available         bool   `json:"available"`
}

func (h *ListingHandler) Update(w http.ResponseWriter, r *http.Request) {
	caller := UserFromContext(r.Context())
	id, err := pathID(r, "id")
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "invalid listing id")
		return
	}

	var req updateListingRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, http.StatusBadRequest, "malformed JSON body")
		return
	}

	listing, err := h.listingSvc.Update(r.Context(), caller.UID, id, service.UpdateListingRequest{
		Title:             req.Title,
		Description:       req.Description,
		PricePerHourCents: req.PricePerHourCents,
		PricePerDayCents:  req.PricePerDayCents,
		Available:         req.Available,
	})
	if err != nil {
		respondWithDomainError(w, err)
		return
	}
	respondWithJSON(w, http.StatusOK, listing)
}

func (h *ListingHandler) Remove(w http.ResponseWriter, r *http.Request) {
	caller := UserFromContext(r.Context())
	id, err := pathID(r, "id")
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "invalid listing id")
		return
	}

	if err := h.listingSvc.Remove(r.Context(), caller.UID, id); err != nil {
		respondWithDomainError(w, err)
		return
	}
	respondWithJSON(w, http.StatusOK, map[string]string{"message": "listing removed"})
}

func optionalCents(v string) (*int32, error) {
	if v == "" {
		return nil, nil
	}
	n, err := strconv.ParseInt(v, 10, 32)
	if err != nil || n < 0 {
		return nil, strconv.ErrRange
	}
	cents := int32(n)
	return &cents, nil
}

func pagination(r *http.Request) (page, pageSize int32) {
	page, pageSize = 1, 20
	if v, err := strconv.ParseInt(r.URL.Query().Get("page"), 10, 32); err == nil && v > 0 {
		page = int32(v)
	}
	if v, err := strconv.ParseInt(r.URL.Query().Get("page_size"), 10, 32); err == nil && v > 0 && v <= 100 {
		pageSize = int32(v)
	}
	return page, pageSize
}
