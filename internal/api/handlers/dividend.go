package handlers

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"

	"github.com/ndewijer/Crowdfunding-Dividend-Backend/internal/api/request"
	"github.com/ndewijer/Crowdfunding-Dividend-Backend/internal/api/response"
	"github.com/ndewijer/Crowdfunding-Dividend-Backend/internal/apperrors"
	"github.com/ndewijer/Crowdfunding-Dividend-Backend/internal/service"
	"github.com/ndewijer/Crowdfunding-Dividend-Backend/internal/validation"
)

// DividendHandler handles HTTP requests for dividend endpoints.
// It serves as the HTTP layer adapter, parsing requests and delegating
// business logic to the dividendService.
type DividendHandler struct {
	dividendService *service.DividendService
}

// NewDividendHandler creates a new DividendHandler with the provided service dependency.
func NewDividendHandler(dividendService *service.DividendService) *DividendHandler {
	return &DividendHandler{
		dividendService: dividendService,
	}
}

// PreviewDividends shows how revenue would be split without writing anything.
// The optional amount query parameter defaults to all pending revenue.
//
// Endpoint: GET /api/project/{uuid}/dividend/preview?amount=500.00
// Response: 200 OK with DividendCalculation (empty allocations carry a reason)
// Error: 400 Bad Request if amount is malformed
// Error: 404 Not Found if the project does not exist
// Error: 409 Conflict if amount exceeds pending revenue
func (h *DividendHandler) PreviewDividends(w http.ResponseWriter, r *http.Request) {
	projectID := chi.URLParam(r, "uuid")

	var amount *decimal.Decimal
	if raw := r.URL.Query().Get("amount"); raw != "" {
		d, err := decimal.NewFromString(raw)
		if err != nil {
			response.RespondError(w, http.StatusBadRequest, "invalid amount", err.Error())
			return
		}
		amount = &d
	}

	calc, err := h.dividendService.CalculateDividends(r.Context(), projectID, amount)
	if err != nil {
		respondServiceError(w, apperrors.ErrFailedToCalculateDividends, err)
		return
	}

	response.RespondJSON(w, http.StatusOK, calc)
}

// DistributeDividends turns revenue into pending dividend payments.
// An empty body or a missing amount distributes all pending revenue.
//
// Endpoint: POST /api/project/{uuid}/dividend/distribute
// Request Body: DistributeDividendsRequest (optional)
// Response: 201 Created with DistributionResult, or 200 OK when nothing was distributed
// Error: 404 Not Found, 409 Conflict (retry), 500 on inconsistent data
func (h *DividendHandler) DistributeDividends(w http.ResponseWriter, r *http.Request) {
	projectID := chi.URLParam(r, "uuid")

	var req request.DistributeDividendsRequest
	if r.ContentLength != 0 {
		parsed, err := parseJSON[request.DistributeDividendsRequest](r)
		if err != nil {
			response.RespondError(w, http.StatusBadRequest, "invalid request body", err.Error())
			return
		}
		req = parsed
	}

	if err := validation.ValidateDistributeDividends(req); err != nil {
		response.RespondError(w, http.StatusBadRequest, "validation failed", err.Error())
		return
	}

	result, err := h.dividendService.DistributeDividends(r.Context(), projectID, req.Amount)
	if err != nil {
		respondServiceError(w, apperrors.ErrFailedToDistributeDividends, err)
		return
	}

	status := http.StatusCreated
	if result.Distribution == nil {
		status = http.StatusOK
	}
	response.RespondJSON(w, status, result)
}

// ProjectDistributions lists the distribution batches of a project.
//
// Endpoint: GET /api/project/{uuid}/dividend/distributions
// Response: 200 OK with array of DividendDistribution
func (h *DividendHandler) ProjectDistributions(w http.ResponseWriter, r *http.Request) {
	projectID := chi.URLParam(r, "uuid")

	distributions, err := h.dividendService.GetProjectDistributions(r.Context(), projectID)
	if err != nil {
		respondServiceError(w, apperrors.ErrFailedToRetrieveDividends, err)
		return
	}

	response.RespondJSON(w, http.StatusOK, distributions)
}

// InvestmentDividends returns an investment's dividend payments and totals per status.
//
// Endpoint: GET /api/investment/{uuid}/dividend
// Response: 200 OK with InvestmentDividends
// Error: 404 Not Found if the investment does not exist
func (h *DividendHandler) InvestmentDividends(w http.ResponseWriter, r *http.Request) {
	investmentID := chi.URLParam(r, "uuid")

	dividends, err := h.dividendService.GetInvestmentDividends(r.Context(), investmentID)
	if err != nil {
		respondServiceError(w, apperrors.ErrFailedToRetrieveDividends, err)
		return
	}

	response.RespondJSON(w, http.StatusOK, dividends)
}

// MarkPaid records that a dividend payment was paid out.
//
// Endpoint: POST /api/dividend/{uuid}/paid
// Request Body: MarkDividendPaidRequest
// Response: 200 OK with DividendPayment
// Error: 404 Not Found, 422 Unprocessable Entity if the payment is already paid
func (h *DividendHandler) MarkPaid(w http.ResponseWriter, r *http.Request) {
	paymentID := chi.URLParam(r, "uuid")

	req, err := parseJSON[request.MarkDividendPaidRequest](r)
	if err != nil {
		response.RespondError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	if err := validation.ValidateMarkDividendPaid(req); err != nil {
		response.RespondError(w, http.StatusBadRequest, "validation failed", err.Error())
		return
	}

	payment, err := h.dividendService.MarkPaymentPaid(r.Context(), paymentID, req.PaymentReference)
	if err != nil {
		respondServiceError(w, apperrors.ErrFailedToUpdateDividend, err)
		return
	}

	response.RespondJSON(w, http.StatusOK, payment)
}

// MarkFailed records a failed payout attempt.
//
// Endpoint: POST /api/dividend/{uuid}/failed
// Request Body: MarkDividendFailedRequest
// Response: 200 OK with DividendPayment
func (h *DividendHandler) MarkFailed(w http.ResponseWriter, r *http.Request) {
	paymentID := chi.URLParam(r, "uuid")

	req, err := parseJSON[request.MarkDividendFailedRequest](r)
	if err != nil {
		response.RespondError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	payment, err := h.dividendService.MarkPaymentFailed(r.Context(), paymentID, req.Reason)
	if err != nil {
		if errors.Is(err, apperrors.ErrDividendPaymentNotFound) {
			response.RespondError(w, http.StatusNotFound, apperrors.ErrDividendPaymentNotFound.Error(), err.Error())
			return
		}
		respondServiceError(w, apperrors.ErrFailedToUpdateDividend, err)
		return
	}

	response.RespondJSON(w, http.StatusOK, payment)
}
