package handler

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	mw "github.com/everbloom/weddings/internal/api/middleware"
	"github.com/everbloom/weddings/internal/api/request"
	"github.com/everbloom/weddings/internal/api/response"
	"github.com/everbloom/weddings/internal/core"
	"github.com/everbloom/weddings/internal/model"
)

type CustomDomain struct {
	svc      *core.CustomDomainService
	services *core.Services
}

func NewCustomDomain(services *core.Services) *CustomDomain {
	return &CustomDomain{svc: services.CustomDomain, services: services}
}

// customDomainState is the GET payload: the config (null when nothing is
// attached) plus the wedding's always-available default URL.
type customDomainState struct {
	Config     *model.CustomDomainConfig `json:"config"`
	DefaultURL string                    `json:"default_url"`
}

type customDomainResult struct {
	Config  *model.CustomDomainConfig `json:"config"`
	Message string                    `json:"message"`
}

type attachResult struct {
	Config       *model.CustomDomainConfig `json:"config"`
	Instructions string                    `json:"instructions"`
}

func (h *CustomDomain) requireWedding(w http.ResponseWriter, r *http.Request) (string, bool) {
	weddingID, err := request.RequireID(chi.URLParam(r, "weddingID"))
	if err != nil {
		response.WriteError(w, http.StatusBadRequest, err.Error())
		return "", false
	}
	if !mw.CanAccessWedding(mw.GetSession(r.Context()), weddingID) {
		response.WriteError(w, http.StatusForbidden, "session cannot access this wedding")
		return "", false
	}
	return weddingID, true
}

// Get godoc
//
//	@Summary		Get custom domain state for a wedding
//	@Tags			CustomDomains
//	@Security		SessionAuth
//	@Param			weddingID path string true "Wedding ID"
//	@Success		200 {object} handler.customDomainState
//	@Failure		400 {object} response.ErrorResponse
//	@Failure		404 {object} response.ErrorResponse
//	@Router			/weddings/{weddingID}/custom-domain [get]
func (h *CustomDomain) Get(w http.ResponseWriter, r *http.Request) {
	weddingID, ok := h.requireWedding(w, r)
	if !ok {
		return
	}

	wedding, err := h.services.Wedding.GetByID(r.Context(), weddingID)
	if err != nil {
		if errors.Is(err, core.ErrWeddingNotFound) {
			response.WriteError(w, http.StatusNotFound, err.Error())
			return
		}
		response.WriteError(w, http.StatusInternalServerError, err.Error())
		return
	}

	cfg, err := h.svc.GetByWedding(r.Context(), weddingID)
	if err != nil && !errors.Is(err, core.ErrNoDomain) {
		response.WriteError(w, http.StatusInternalServerError, err.Error())
		return
	}

	response.WriteJSON(w, http.StatusOK, customDomainState{
		Config:     cfg,
		DefaultURL: h.services.Wedding.DefaultURL(wedding),
	})
}

// Attach godoc
//
//	@Summary		Attach a custom domain to a wedding
//	@Tags			CustomDomains
//	@Security		SessionAuth
//	@Param			weddingID path string true "Wedding ID"
//	@Param			body body request.AttachCustomDomain true "Domain to attach"
//	@Success		201 {object} handler.attachResult
//	@Failure		400 {object} response.ErrorResponse
//	@Failure		409 {object} response.ErrorResponse
//	@Router			/weddings/{weddingID}/custom-domain [post]
func (h *CustomDomain) Attach(w http.ResponseWriter, r *http.Request) {
	weddingID, ok := h.requireWedding(w, r)
	if !ok {
		return
	}

	var req request.AttachCustomDomain
	if err := request.Decode(r, &req); err != nil {
		response.WriteError(w, http.StatusBadRequest, err.Error())
		return
	}

	cfg, err := h.svc.Attach(r.Context(), weddingID, req.Domain)
	if err != nil {
		switch {
		case errors.Is(err, core.ErrInvalidDomain):
			response.WriteErrorCode(w, http.StatusBadRequest, response.CodeInvalidDomainFormat, err.Error())
		case errors.Is(err, core.ErrDomainTaken):
			response.WriteErrorCode(w, http.StatusConflict, response.CodeCustomDomainAlreadyExist, err.Error())
		case errors.Is(err, core.ErrWeddingNotFound):
			response.WriteError(w, http.StatusNotFound, err.Error())
		default:
			response.WriteError(w, http.StatusInternalServerError, err.Error())
		}
		return
	}

	response.WriteJSON(w, http.StatusCreated, attachResult{
		Config:       cfg,
		Instructions: core.SetupInstructions(cfg),
	})
}

// Verify godoc
//
//	@Summary		Run one verification attempt for the wedding's custom domain
//	@Tags			CustomDomains
//	@Security		SessionAuth
//	@Param			weddingID path string true "Wedding ID"
//	@Success		200 {object} handler.customDomainResult
//	@Failure		400 {object} response.ErrorResponse
//	@Failure		404 {object} response.ErrorResponse
//	@Router			/weddings/{weddingID}/custom-domain/verify [post]
func (h *CustomDomain) Verify(w http.ResponseWriter, r *http.Request) {
	weddingID, ok := h.requireWedding(w, r)
	if !ok {
		return
	}

	cfg, message, err := h.svc.VerifyAttempt(r.Context(), weddingID)
	if err != nil {
		if errors.Is(err, core.ErrNoDomain) {
			response.WriteErrorCode(w, http.StatusNotFound, response.CodeNoCustomDomain, err.Error())
			return
		}
		response.WriteError(w, http.StatusInternalServerError, err.Error())
		return
	}

	response.WriteJSON(w, http.StatusOK, customDomainResult{Config: cfg, Message: message})
}

// ConfirmCertificate godoc
//
//	@Summary		Confirm SSL certificate issuance for the wedding's custom domain
//	@Tags			CustomDomains
//	@Security		SessionAuth
//	@Param			weddingID path string true "Wedding ID"
//	@Success		200 {object} handler.customDomainResult
//	@Failure		404 {object} response.ErrorResponse
//	@Failure		409 {object} response.ErrorResponse
//	@Router			/weddings/{weddingID}/custom-domain/certificate [post]
func (h *CustomDomain) ConfirmCertificate(w http.ResponseWriter, r *http.Request) {
	weddingID, ok := h.requireWedding(w, r)
	if !ok {
		return
	}

	cfg, err := h.svc.ConfirmCertificate(r.Context(), weddingID)
	if err != nil {
		switch {
		case errors.Is(err, core.ErrNoDomain):
			response.WriteErrorCode(w, http.StatusNotFound, response.CodeNoCustomDomain, err.Error())
		case errors.Is(err, core.ErrNotEligible):
			response.WriteErrorCode(w, http.StatusConflict, response.CodeNotEligible, "custom domain is not awaiting certificate issuance")
		default:
			response.WriteError(w, http.StatusInternalServerError, err.Error())
		}
		return
	}

	response.WriteJSON(w, http.StatusOK, customDomainResult{
		Config:  cfg,
		Message: "Your custom domain is active.",
	})
}

// Delete godoc
//
//	@Summary		Remove the wedding's custom domain
//	@Tags			CustomDomains
//	@Security		SessionAuth
//	@Param			weddingID path string true "Wedding ID"
//	@Success		200 {object} handler.customDomainResult
//	@Failure		400 {object} response.ErrorResponse
//	@Failure		500 {object} response.ErrorResponse
//	@Router			/weddings/{weddingID}/custom-domain [delete]
func (h *CustomDomain) Delete(w http.ResponseWriter, r *http.Request) {
	weddingID, ok := h.requireWedding(w, r)
	if !ok {
		return
	}

	if err := h.svc.Remove(r.Context(), weddingID); err != nil {
		response.WriteError(w, http.StatusInternalServerError, err.Error())
		return
	}

	response.WriteJSON(w, http.StatusOK, customDomainResult{
		Message: "Custom domain removed. Your site remains available at its default address.",
	})
}
