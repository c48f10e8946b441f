package validation

import (
	"strings"
	"time"

	"github.com/ndewijer/Crowdfunding-Dividend-Backend/internal/api/request"
	"github.com/ndewijer/Crowdfunding-Dividend-Backend/internal/model"
)

// ValidateCreateProject validates a project creation request.
//
// Required fields:
//   - creatorId: Must be a valid UUID
//   - title: Non-empty, at most 200 characters
//   - fundingGoal: Positive, at most two decimals
//   - startDate, endDate: YYYY-MM-DD, endDate after startDate
//
// Optional fields:
//   - status: one of draft, active, funded, completed, cancelled
func ValidateCreateProject(req request.CreateProjectRequest) error {
	errors := make(map[string]string)

	if err := ValidateUUID(req.CreatorID); err != nil {
		errors["creatorId"] = err.Error()
	}

	title := strings.TrimSpace(req.Title)
	if title == "" {
		errors["title"] = "title is required"
	} else if len(title) > 200 {
		errors["title"] = "title cannot exceed 200 characters"
	}

	if msg := validateMoney(req.FundingGoal); msg != "" {
		errors["fundingGoal"] = msg
	}

	if req.Status != "" {
		switch req.Status {
		case model.ProjectStatusDraft, model.ProjectStatusActive, model.ProjectStatusFunded,
			model.ProjectStatusCompleted, model.ProjectStatusCancelled:
		default:
			errors["status"] = "unknown status " + req.Status
		}
	}

	start, startErr := time.Parse("2006-01-02", req.StartDate)
	if startErr != nil {
		errors["startDate"] = startErr.Error()
	}
	end, endErr := time.Parse("2006-01-02", req.EndDate)
	if endErr != nil {
		errors["endDate"] = endErr.Error()
	}
	if startErr == nil && endErr == nil && !end.After(start) {
		errors["endDate"] = "endDate must be after startDate"
	}

	if len(errors) > 0 {
		return &Error{Fields: errors}
	}
	return nil
}

// ValidateRecordRevenue validates recognized revenue: positive with at most two decimals.
func ValidateRecordRevenue(req request.RecordRevenueRequest) error {
	if msg := validateMoney(req.Amount); msg != "" {
		return &Error{Fields: map[string]string{"amount": msg}}
	}
	return nil
}
