package handlers

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/ndewijer/Crowdfunding-Dividend-Backend/internal/api/request"
	"github.com/ndewijer/Crowdfunding-Dividend-Backend/internal/api/response"
	"github.com/ndewijer/Crowdfunding-Dividend-Backend/internal/apperrors"
	"github.com/ndewijer/Crowdfunding-Dividend-Backend/internal/model"
	"github.com/ndewijer/Crowdfunding-Dividend-Backend/internal/service"
	"github.com/ndewijer/Crowdfunding-Dividend-Backend/internal/validation"
)

// InvestmentHandler handles HTTP requests for investment endpoints.
// The completion, cancellation and refund endpoints are called by the payment gateway.
type InvestmentHandler struct {
	investmentService *service.InvestmentService
}

// NewInvestmentHandler creates a new InvestmentHandler with the provided service dependency.
func NewInvestmentHandler(investmentService *service.InvestmentService) *InvestmentHandler {
	return &InvestmentHandler{
		investmentService: investmentService,
	}
}

// ProjectInvestments lists a project's investments.
//
// Endpoint: GET /api/project/{uuid}/investment?status=completed
// Response: 200 OK with array of Investment
// Error: 400 Bad Request for an unknown status filter
// Error: 404 Not Found if the project does not exist
func (h *InvestmentHandler) ProjectInvestments(w http.ResponseWriter, r *http.Request) {
	projectID := chi.URLParam(r, "uuid")
	status := r.URL.Query().Get("status")

	switch status {
	case "", model.InvestmentStatusPending, model.InvestmentStatusCompleted,
		model.InvestmentStatusRefunded, model.InvestmentStatusCancelled:
	default:
		response.RespondError(w, http.StatusBadRequest, "invalid status filter", status)
		return
	}

	investments, err := h.investmentService.GetProjectInvestments(r.Context(), projectID, status)
	if err != nil {
		respondServiceError(w, apperrors.ErrFailedToRetrieveInvestment, err)
		return
	}

	response.RespondJSON(w, http.StatusOK, investments)
}

// CreateInvestment places a pending investment on a project.
//
// Endpoint: POST /api/project/{uuid}/investment
// Request Body: CreateInvestmentRequest
// Response: 201 Created with Investment
// Error: 400 Bad Request if validation fails
// Error: 404 Not Found if the project does not exist
// Error: 422 Unprocessable Entity if the project no longer accepts investments
func (h *InvestmentHandler) CreateInvestment(w http.ResponseWriter, r *http.Request) {
	projectID := chi.URLParam(r, "uuid")

	req, err := parseJSON[request.CreateInvestmentRequest](r)
	if err != nil {
		response.RespondError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	if err := validation.ValidateCreateInvestment(req); err != nil {
		response.RespondError(w, http.StatusBadRequest, "validation failed", err.Error())
		return
	}

	inv, err := h.investmentService.CreateInvestment(r.Context(), projectID, req)
	if err != nil {
		respondServiceError(w, apperrors.ErrFailedToCreateInvestment, err)
		return
	}

	response.RespondJSON(w, http.StatusCreated, inv)
}

// Investment returns an investment with its current ownership of the project.
//
// Endpoint: GET /api/investment/{uuid}
// Response: 200 OK with InvestmentOwnership
// Error: 404 Not Found if the investment does not exist
func (h *InvestmentHandler) Investment(w http.ResponseWriter, r *http.Request) {
	investmentID := chi.URLParam(r, "uuid")

	ownership, err := h.investmentService.GetOwnership(r.Context(), investmentID)
	if err != nil {
		respondServiceError(w, apperrors.ErrFailedToRetrieveInvestment, err)
		return
	}

	response.RespondJSON(w, http.StatusOK, ownership)
}

// CompleteInvestment confirms payment of a pending investment.
//
// Endpoint: POST /api/investment/{uuid}/complete
// Response: 200 OK with Investment
// Error: 404 Not Found, 409 Conflict, 422 Unprocessable Entity
func (h *InvestmentHandler) CompleteInvestment(w http.ResponseWriter, r *http.Request) {
	h.transition(w, r, h.investmentService.CompleteInvestment)
}

// CancelInvestment abandons a pending investment.
//
// Endpoint: POST /api/investment/{uuid}/cancel
func (h *InvestmentHandler) CancelInvestment(w http.ResponseWriter, r *http.Request) {
	h.transition(w, r, h.investmentService.CancelInvestment)
}

// RefundInvestment returns the capital of a completed investment.
//
// Endpoint: POST /api/investment/{uuid}/refund
func (h *InvestmentHandler) RefundInvestment(w http.ResponseWriter, r *http.Request) {
	h.transition(w, r, h.investmentService.RefundInvestment)
}

func (h *InvestmentHandler) transition(
	w http.ResponseWriter,
	r *http.Request,
	fn func(ctx context.Context, investmentID string) (model.Investment, error),
) {
	investmentID := chi.URLParam(r, "uuid")

	inv, err := fn(r.Context(), investmentID)
	if err != nil {
		respondServiceError(w, apperrors.ErrFailedToUpdateInvestment, err)
		return
	}

	response.RespondJSON(w, http.StatusOK, inv)
}
