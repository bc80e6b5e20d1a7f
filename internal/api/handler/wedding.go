package handler

import (
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	mw "github.com/everbloom/weddings/internal/api/middleware"
	"github.com/everbloom/weddings/internal/api/request"
	"github.com/everbloom/weddings/internal/api/response"
	"github.com/everbloom/weddings/internal/core"
	"github.com/everbloom/weddings/internal/model"
	"github.com/everbloom/weddings/internal/platform"
)

type Wedding struct {
	svc *core.WeddingService
}

func NewWedding(services *core.Services) *Wedding {
	return &Wedding{svc: services.Wedding}
}

type weddingResult struct {
	Wedding    *model.Wedding `json:"wedding"`
	DefaultURL string         `json:"default_url"`
}

// Create godoc
//
//	@Summary		Create a wedding
//	@Tags			Weddings
//	@Security		SessionAuth
//	@Param			body body request.CreateWedding true "Wedding details"
//	@Success		201 {object} handler.weddingResult
//	@Failure		400 {object} response.ErrorResponse
//	@Failure		403 {object} response.ErrorResponse
//	@Router			/weddings [post]
func (h *Wedding) Create(w http.ResponseWriter, r *http.Request) {
	// Only staff sessions create weddings; couple sessions are scoped to one.
	session := mw.GetSession(r.Context())
	if session == nil || session.WeddingID != nil {
		response.WriteError(w, http.StatusForbidden, "staff session required")
		return
	}

	var req request.CreateWedding
	if err := request.Decode(r, &req); err != nil {
		response.WriteError(w, http.StatusBadRequest, err.Error())
		return
	}

	slug := req.Slug
	if slug == "" {
		base := platform.Slugify(req.CoupleNames)
		if base == "" {
			base = "wedding"
		}
		slug = platform.NewSlug(base)
	}

	now := time.Now()
	wedding := &model.Wedding{
		ID:          platform.NewID(),
		Slug:        slug,
		CoupleNames: req.CoupleNames,
		Status:      model.StatusActive,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if err := h.svc.Create(r.Context(), wedding); err != nil {
		response.WriteError(w, http.StatusConflict, err.Error())
		return
	}

	response.WriteJSON(w, http.StatusCreated, weddingResult{
		Wedding:    wedding,
		DefaultURL: h.svc.DefaultURL(wedding),
	})
}

// Get godoc
//
//	@Summary		Get a wedding
//	@Tags			Weddings
//	@Security		SessionAuth
//	@Param			id path string true "Wedding ID"
//	@Success		200 {object} handler.weddingResult
//	@Failure		400 {object} response.ErrorResponse
//	@Failure		404 {object} response.ErrorResponse
//	@Router			/weddings/{id} [get]
func (h *Wedding) Get(w http.ResponseWriter, r *http.Request) {
	id, err := request.RequireID(chi.URLParam(r, "id"))
	if err != nil {
		response.WriteError(w, http.StatusBadRequest, err.Error())
		return
	}
	if !mw.CanAccessWedding(mw.GetSession(r.Context()), id) {
		response.WriteError(w, http.StatusForbidden, "session cannot access this wedding")
		return
	}

	wedding, err := h.svc.GetByID(r.Context(), id)
	if err != nil {
		if errors.Is(err, core.ErrWeddingNotFound) {
			response.WriteError(w, http.StatusNotFound, err.Error())
			return
		}
		response.WriteError(w, http.StatusInternalServerError, err.Error())
		return
	}

	response.WriteJSON(w, http.StatusOK, weddingResult{
		Wedding:    wedding,
		DefaultURL: h.svc.DefaultURL(wedding),
	})
}
