package handlers

import (
	"encoding/json"
	"errors"
	"mime/multipart"
	"net/http"
	"strconv"
	"strings"

	"github.com/gorilla/mux"

	"autoClassifieds/internal/models"
	"autoClassifieds/internal/service"
)

const multipartMemory = 32 << 20

type PublishResponse struct {
	Success   bool   `json:"success"`
	ListingID string `json:"listingId"`
}

type StatusRequest struct {
	Status string `json:"status"`
}

// PublishListing handles the multipart quick-publish form.
func (h *Handlers) PublishListing(w http.ResponseWriter, r *http.Request) {
	maxImages := int64(h.Cfg.Listings.MaxImages)
	if maxImages < 1 {
		maxImages = 1
	}
	r.Body = http.MaxBytesReader(w, r.Body, h.Cfg.Listings.MaxUploadSize*maxImages+multipartMemory)

	if err := r.ParseMultipartForm(multipartMemory); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			badRequest(w, "request body too large")
		} else {
			badRequest(w, "invalid multipart form")
		}
		return
	}
	defer r.MultipartForm.RemoveAll()

	attrs, err := attributesFromForm(r)
	if err != nil {
		WriteError(w, err)
		return
	}

	req := service.PublishRequest{
		Attributes: attrs,
		Email:      strings.TrimSpace(r.FormValue("contactEmail")),
		Password:   r.FormValue("password"),
	}

	var files []multipart.File
	defer func() {
		for _, f := range files {
			f.Close()
		}
	}()

	for _, header := range r.MultipartForm.File["images"] {
		upload, file, err := openImage(header, h.Cfg.Listings.MaxUploadSize)
		if err != nil {
			WriteError(w, err)
			return
		}
		files = append(files, file)
		req.Images = append(req.Images, upload)
	}

	result, err := h.ListingService.PublishListing(r.Context(), req)
	if err != nil {
		WriteError(w, err)
		return
	}

	writeSuccess(w, PublishResponse{Success: true, ListingID: result.ListingID}, http.StatusCreated)
}

func attributesFromForm(r *http.Request) (models.ListingAttributes, error) {
	attrs := models.ListingAttributes{
		Title:        strings.TrimSpace(r.FormValue("title")),
		Brand:        strings.TrimSpace(r.FormValue("brand")),
		Model:        strings.TrimSpace(r.FormValue("model")),
		Description:  r.FormValue("description"),
		ContactName:  strings.TrimSpace(r.FormValue("contactName")),
		ContactPhone: strings.TrimSpace(r.FormValue("contactPhone")),
	}

	year, err := formInt(r, "year")
	if err != nil {
		return attrs, err
	}
	attrs.Year = int(year)

	if attrs.Price, err = formInt(r, "price"); err != nil {
		return attrs, err
	}

	if attrs.Mileage, err = formInt(r, "mileage"); err != nil {
		return attrs, err
	}

	return attrs, nil
}

// formInt parses an optional integer field. An empty value is zero.
func formInt(r *http.Request, field string) (int64, error) {
	raw := strings.TrimSpace(r.FormValue(field))
	if raw == "" {
		return 0, nil
	}

	value, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return 0, &fieldError{field: field, value: raw}
	}

	return value, nil
}

type fieldError struct {
	field string
	value string
}

func (e *fieldError) Error() string {
	return e.field + " must be an integer, got " + strconv.Quote(e.value)
}

func (e *fieldError) Unwrap() error {
	return models.ErrInvalidInput
}

func (h *Handlers) ListListings(w http.ResponseWriter, r *http.Request) {
	listings, err := h.ListingService.ListListings(r.Context())
	if err != nil {
		WriteError(w, err)
		return
	}

	writeSuccess(w, listings, http.StatusOK)
}

func (h *Handlers) GetListing(w http.ResponseWriter, r *http.Request) {
	detail, err := h.ListingService.GetListing(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		WriteError(w, err)
		return
	}

	writeSuccess(w, detail, http.StatusOK)
}

func (h *Handlers) SetListingStatus(w http.ResponseWriter, r *http.Request) {
	var req StatusRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		badRequest(w, "invalid request body")
		return
	}

	identity := service.IdentityFromContext(r.Context())
	if err := h.ListingService.SetListingStatus(r.Context(), mux.Vars(r)["id"], req.Status, identity); err != nil {
		WriteError(w, err)
		return
	}

	writeSuccess(w, SuccessResponse{Success: true}, http.StatusOK)
}

func (h *Handlers) EditListing(w http.ResponseWriter, r *http.Request) {
	var attrs models.ListingAttributes
	if err := json.NewDecoder(r.Body).Decode(&attrs); err != nil {
		badRequest(w, "invalid request body")
		return
	}

	identity := service.IdentityFromContext(r.Context())
	if err := h.ListingService.EditListing(r.Context(), mux.Vars(r)["id"], attrs, identity); err != nil {
		WriteError(w, err)
		return
	}

	writeSuccess(w, SuccessResponse{Success: true}, http.StatusOK)
}
