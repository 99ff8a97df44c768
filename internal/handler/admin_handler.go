package handlers

import (
	"net/http"

	"github.com/gorilla/mux"

	"autoClassifieds/internal/service"
)

func (h *Handlers) AdminListListings(w http.ResponseWriter, r *http.Request) {
	listings, err := h.ListingService.ListAllListings(r.Context(), service.IdentityFromContext(r.Context()))
	if err != nil {
		WriteError(w, err)
		return
	}

	writeSuccess(w, listings, http.StatusOK)
}

func (h *Handlers) AdminDeleteListing(w http.ResponseWriter, r *http.Request) {
	identity := service.IdentityFromContext(r.Context())
	if err := h.ListingService.DeleteListing(r.Context(), mux.Vars(r)["id"], identity); err != nil {
		WriteError(w, err)
		return
	}

	writeSuccess(w, SuccessResponse{Success: true}, http.StatusOK)
}

func (h *Handlers) AdminListBanners(w http.ResponseWriter, r *http.Request) {
	banners, err := h.BannerService.ListBanners(r.Context(), service.IdentityFromContext(r.Context()))
	if err != nil {
		WriteError(w, err)
		return
	}

	writeSuccess(w, banners, http.StatusOK)
}

func (h *Handlers) AdminCreateBanner(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, h.Cfg.Listings.MaxUploadSize+multipartMemory)

	if err := r.ParseMultipartForm(multipartMemory); err != nil {
		badRequest(w, "invalid multipart form")
		return
	}
	defer r.MultipartForm.RemoveAll()

	headers := r.MultipartForm.File["image"]
	if len(headers) == 0 {
		badRequest(w, "image is required")
		return
	}

	upload, file, err := openImage(headers[0], h.Cfg.Listings.MaxUploadSize)
	if err != nil {
		WriteError(w, err)
		return
	}
	defer file.Close()

	banner, err := h.BannerService.CreateBanner(r.Context(), service.CreateBannerRequest{
		LinkURL: r.FormValue("linkUrl"),
		Image:   upload,
	}, service.IdentityFromContext(r.Context()))
	if err != nil {
		WriteError(w, err)
		return
	}

	writeSuccess(w, banner, http.StatusCreated)
}
