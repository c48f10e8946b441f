package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/ndewijer/Crowdfunding-Dividend-Backend/internal/api/request"
	"github.com/ndewijer/Crowdfunding-Dividend-Backend/internal/api/response"
	"github.com/ndewijer/Crowdfunding-Dividend-Backend/internal/apperrors"
	"github.com/ndewijer/Crowdfunding-Dividend-Backend/internal/model"
	"github.com/ndewijer/Crowdfunding-Dividend-Backend/internal/service"
	"github.com/ndewijer/Crowdfunding-Dividend-Backend/internal/validation"
)

// ProjectHandler handles HTTP requests for project endpoints.
type ProjectHandler struct {
	projectService *service.ProjectService
}

// NewProjectHandler creates a new ProjectHandler with the provided service dependency.
func NewProjectHandler(projectService *service.ProjectService) *ProjectHandler {
	return &ProjectHandler{
		projectService: projectService,
	}
}

// Projects returns every project with its pending revenue and funding percentage.
//
// Endpoint: GET /api/project
// Response: 200 OK with array of ProjectResponse
// Error: 500 Internal Server Error if retrieval fails
func (h *ProjectHandler) Projects(w http.ResponseWriter, r *http.Request) {
	projects, err := h.projectService.GetProjects(r.Context())
	if err != nil {
		response.RespondError(w, http.StatusInternalServerError, apperrors.ErrFailedToRetrieveProjects.Error(), err.Error())
		return
	}

	out := make([]model.ProjectResponse, 0, len(projects))
	for _, p := range projects {
		out = append(out, model.NewProjectResponse(p))
	}
	response.RespondJSON(w, http.StatusOK, out)
}

// Project returns a single project.
//
// Endpoint: GET /api/project/{uuid}
// Response: 200 OK with ProjectResponse
// Error: 404 Not Found if the project does not exist
func (h *ProjectHandler) Project(w http.ResponseWriter, r *http.Request) {
	projectID := chi.URLParam(r, "uuid")

	project, err := h.projectService.GetProject(r.Context(), projectID)
	if err != nil {
		respondServiceError(w, apperrors.ErrFailedToRetrieveProject, err)
		return
	}

	response.RespondJSON(w, http.StatusOK, model.NewProjectResponse(project))
}

// CreateProject handles POST requests to create a project.
//
// Endpoint: POST /api/project
// Request Body: CreateProjectRequest
// Response: 201 Created with ProjectResponse
// Error: 400 Bad Request if validation fails
func (h *ProjectHandler) CreateProject(w http.ResponseWriter, r *http.Request) {
	req, err := parseJSON[request.CreateProjectRequest](r)
	if err != nil {
		response.RespondError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	if err := validation.ValidateCreateProject(req); err != nil {
		response.RespondError(w, http.StatusBadRequest, "validation failed", err.Error())
		return
	}

	project, err := h.projectService.CreateProject(r.Context(), req)
	if err != nil {
		respondServiceError(w, apperrors.ErrFailedToCreateProject, err)
		return
	}

	response.RespondJSON(w, http.StatusCreated, model.NewProjectResponse(*project))
}

// RecordRevenue adds recognized revenue to a project.
//
// Endpoint: POST /api/project/{uuid}/revenue
// Request Body: RecordRevenueRequest
// Response: 200 OK with the updated ProjectResponse
// Error: 400 Bad Request if validation fails
// Error: 404 Not Found if the project does not exist
// Error: 409 Conflict if the project changed concurrently
func (h *ProjectHandler) RecordRevenue(w http.ResponseWriter, r *http.Request) {
	projectID := chi.URLParam(r, "uuid")

	req, err := parseJSON[request.RecordRevenueRequest](r)
	if err != nil {
		response.RespondError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	if err := validation.ValidateRecordRevenue(req); err != nil {
		response.RespondError(w, http.StatusBadRequest, "validation failed", err.Error())
		return
	}

	project, err := h.projectService.RecordRevenue(r.Context(), projectID, req.Amount)
	if err != nil {
		respondServiceError(w, apperrors.ErrFailedToRecordRevenue, err)
		return
	}

	response.RespondJSON(w, http.StatusOK, model.NewProjectResponse(project))
}
