package api

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/rpupo63/student-projects-backend/errs"
	"github.com/rpupo63/student-projects-backend/services"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

type projectHandler struct {
	responder Responder
	logger    zerolog.Logger
	projects  projectService
}

func newProjectHandler(projects projectService) projectHandler {
	logger := log.With().Str("handlerName", "projectHandler").Logger()

	return projectHandler{
		responder: NewResponder(logger),
		logger:    logger,
		projects:  projects,
	}
}

func listParams(r *http.Request) (services.ListParams, error) {
	skip, err := queryInt(r, "skip")
	if err != nil {
		return services.ListParams{}, err
	}
	take, err := queryInt(r, "take")
	if err != nil {
		return services.ListParams{}, err
	}
	return services.ListParams{Search: r.URL.Query().Get("search"), Skip: skip, Take: take}, nil
}

// getProjects lists open projects of other users
// @Summary List projects
// @Description Open projects created by other users whose name or description contains search, newest first
// @Tags Projects
// @Produce json
// @Param search query string false "Substring of name or description"
// @Param skip query int false "Offset"
// @Param take query int false "Limit"
// @Success 200 {object} services.ProjectPage
// @Failure 400 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /projects [get]
func (h projectHandler) getProjects() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, err := ctxGetUserID(r.Context())
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		params, err := listParams(r)
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		page, err := h.projects.List(r.Context(), userID, params)
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}
		h.responder.WriteJSON(w, page)
	}
}

// getMyProjects lists the caller's own projects
// @Summary List my projects
// @Tags Projects
// @Produce json
// @Param skip query int false "Offset"
// @Param take query int false "Limit"
// @Success 200 {object} services.ProjectPage
// @Router /projects/my [get]
func (h projectHandler) getMyProjects() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, err := ctxGetUserID(r.Context())
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		params, err := listParams(r)
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		page, err := h.projects.Mine(r.Context(), userID, params)
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}
		h.responder.WriteJSON(w, page)
	}
}

// getProjectsByTag lists projects carrying a category label
// @Summary List projects by tag
// @Tags Projects
// @Produce json
// @Param tag query string true "Category label"
// @Success 200 {array} services.ProjectView
// @Failure 400 {object} ErrorResponse
// @Router /projects/byTag [get]
func (h projectHandler) getProjectsByTag() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		tag := r.URL.Query().Get("tag")
		if tag == "" {
			h.responder.WriteError(w, errs.NewMissingRequiredFieldError("tag"))
			return
		}

		projects, err := h.projects.ByTag(r.Context(), tag)
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}
		h.responder.WriteJSON(w, projects)
	}
}

// getProject retrieves a specific project by ID
// @Summary Get project
// @Tags Projects
// @Produce json
// @Param id path int true "Project ID"
// @Success 200 {object} services.ProjectView
// @Failure 400 {object} ErrorResponse "Bad Request - Invalid id"
// @Failure 404 {object} ErrorResponse "Not Found - Project not found"
// @Router /projects/getProject/{id} [get]
func (h projectHandler) getProject() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, err := ctxGetUserID(r.Context())
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		projectID, err := strconv.ParseUint(chi.URLParam(r, "id"), 10, 64)
		if err != nil || projectID == 0 {
			h.responder.WriteError(w, errs.NewInvalidFieldError("id", "must be a positive integer"))
			return
		}

		project, err := h.projects.Get(r.Context(), userID, uint(projectID))
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}
		h.responder.WriteJSON(w, project)
	}
}

// getRecommendations lists projects recommended to the caller
// @Summary Recommended projects
// @Tags Projects
// @Produce json
// @Success 200 {array} services.ProjectView
// @Router /projects/recommendations [get]
func (h projectHandler) getRecommendations() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, err := ctxGetUserID(r.Context())
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		projects, err := h.projects.Recommendations(r.Context(), userID)
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}
		h.responder.WriteJSON(w, projects)
	}
}

// createProject creates a new project owned by the caller
// @Summary Create project
// @Tags Projects
// @Accept json
// @Produce json
// @Param project body services.ProjectInput true "Project data"
// @Success 201 {object} SuccessResponse
// @Failure 400 {object} ErrorResponse "Bad Request - Invalid project data"
// @Router /projects [post]
func (h projectHandler) createProject() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, err := ctxGetUserID(r.Context())
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		var input services.ProjectInput
		if err := decodeAndValidate(w, r, "project", &input); err != nil {
			h.responder.WriteError(w, err)
			return
		}

		project, err := h.projects.Create(r.Context(), userID, input)
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		h.logger.Info().Uint("projectId", project.ID).Uint("userId", userID).Msg("project created")
		h.responder.WriteSuccess(w, http.StatusCreated)
	}
}

// editProject updates the supplied fields of a project the caller created
// @Summary Edit project
// @Tags Projects
// @Accept json
// @Produce json
// @Param project body services.ProjectPatch true "Fields to change"
// @Success 200 {object} SuccessResponse
// @Failure 400 {object} ErrorResponse "Bad Request - Project does not exist"
// @Failure 403 {object} ErrorResponse "Forbidden - You are not project creator"
// @Router /projects [patch]
func (h projectHandler) editProject() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, err := ctxGetUserID(r.Context())
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		var patch services.ProjectPatch
		if err := decodeAndValidate(w, r, "project", &patch); err != nil {
			h.responder.WriteError(w, err)
			return
		}

		if err := h.projects.Edit(r.Context(), userID, patch); err != nil {
			h.responder.WriteError(w, err)
			return
		}
		h.responder.WriteSuccess(w, http.StatusOK)
	}
}

// getCategories lists the reference categories
// @Summary Reference categories
// @Tags Projects
// @Produce json
// @Success 200 {array} models.Category
// @Router /projects/getCategories [get]
func (h projectHandler) getCategories() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		categories, err := h.projects.Categories(r.Context())
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}
		h.responder.WriteJSON(w, categories)
	}
}

// getProjectChoices lists the options of the project form
// @Summary Project form choices
// @Tags Projects
// @Produce json
// @Success 200 {object} models.ProjectChoices
// @Router /projects/getProjectChoices [get]
func (h projectHandler) getProjectChoices() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		h.responder.WriteJSON(w, h.projects.Choices())
	}
}
