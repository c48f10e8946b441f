package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/ndewijer/Crowdfunding-Dividend-Backend/internal/api/response"
	"github.com/ndewijer/Crowdfunding-Dividend-Backend/internal/apperrors"
)

// maxBodyBytes caps request bodies; every request on this API is a small JSON object.
const maxBodyBytes = 1 << 20

// parseJSON decodes the request body into T, rejecting unknown fields.
func parseJSON[T any](r *http.Request) (T, error) {
	var req T
	if r.Body == nil {
		return req, errors.New("request body is empty")
	}
	dec := json.NewDecoder(http.MaxBytesReader(nil, r.Body, maxBodyBytes))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&req); err != nil {
		return req, fmt.Errorf("failed to decode request body: %w", err)
	}
	return req, nil
}

// statusFor maps domain errors to HTTP status codes. Unknown errors map to 500.
func statusFor(err error) int {
	switch {
	case errors.Is(err, apperrors.ErrProjectNotFound),
		errors.Is(err, apperrors.ErrInvestmentNotFound),
		errors.Is(err, apperrors.ErrDividendPaymentNotFound):
		return http.StatusNotFound
	case errors.Is(err, apperrors.ErrInvalidAmountPrecision),
		errors.Is(err, apperrors.ErrNonPositiveAmount):
		return http.StatusBadRequest
	case errors.Is(err, apperrors.ErrConcurrentModification),
		errors.Is(err, apperrors.ErrInsufficientPendingRevenue):
		return http.StatusConflict
	case errors.Is(err, apperrors.ErrInvalidStatusTransition),
		errors.Is(err, apperrors.ErrProjectNotOpen):
		return http.StatusUnprocessableEntity
	default:
		return http.StatusInternalServerError
	}
}

// respondServiceError writes err with the status statusFor picks. Known domain errors
// use their own message; anything else is reported under fallback.
func respondServiceError(w http.ResponseWriter, fallback error, err error) {
	status := statusFor(err)
	message := fallback.Error()
	if status != http.StatusInternalServerError {
		message = rootMessage(err)
	}
	response.RespondError(w, status, message, err.Error())
}

// rootMessage returns the message of the first apperrors sentinel err wraps.
func rootMessage(err error) string {
	for _, sentinel := range []error{
		apperrors.ErrProjectNotFound,
		apperrors.ErrInvestmentNotFound,
		apperrors.ErrDividendPaymentNotFound,
		apperrors.ErrInvalidAmountPrecision,
		apperrors.ErrNonPositiveAmount,
		apperrors.ErrConcurrentModification,
		apperrors.ErrInsufficientPendingRevenue,
		apperrors.ErrInvalidStatusTransition,
		apperrors.ErrProjectNotOpen,
	} {
		if errors.Is(err, sentinel) {
			return sentinel.Error()
		}
	}
	return err.Error()
}
