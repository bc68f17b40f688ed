package api

import (
	"net/http"

	"github.com/rpupo63/student-projects-backend/services"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

type applicationHandler struct {
	responder    Responder
	logger       zerolog.Logger
	applications applicationService
}

func newApplicationHandler(applications applicationService) applicationHandler {
	logger := log.With().Str("handlerName", "applicationHandler").Logger()

	return applicationHandler{
		responder:    NewResponder(logger),
		logger:       logger,
		applications: applications,
	}
}

// apply files an application to a project
// @Summary Apply to project
// @Tags Applications
// @Accept json
// @Produce json
// @Param application body services.ApplyInput true "Application"
// @Success 201 {object} SuccessResponse
// @Failure 400 {object} ErrorResponse "Bad Request - Project does not exist"
// @Failure 409 {object} ErrorResponse "Conflict - Application already exists"
// @Router /projects/apply [post]
func (h applicationHandler) apply() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, err := ctxGetUserID(r.Context())
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		var input services.ApplyInput
		if err := decodeAndValidate(w, r, "application", &input); err != nil {
			h.responder.WriteError(w, err)
			return
		}

		application, err := h.applications.Create(r.Context(), userID, input)
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		h.logger.Info().Uint("applicationId", application.ID).Uint("projectId", application.ProjectID).Msg("application created")
		h.responder.WriteSuccess(w, http.StatusCreated)
	}
}

// processApplication accepts or rejects an application to the caller's project
// @Summary Process application
// @Description action 2 accepts, 3 rejects
// @Tags Applications
// @Accept json
// @Produce json
// @Param decision body services.ProcessInput true "Decision"
// @Success 200 {object} SuccessResponse
// @Failure 400 {object} ErrorResponse "Bad Request - Wrong action"
// @Failure 403 {object} ErrorResponse "Forbidden - You are not project owner"
// @Failure 404 {object} ErrorResponse "Not Found - Application not found"
// @Router /projects/processApplication [post]
func (h applicationHandler) processApplication() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, err := ctxGetUserID(r.Context())
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		var input services.ProcessInput
		if err := decodeAndValidate(w, r, "application decision", &input); err != nil {
			h.responder.WriteError(w, err)
			return
		}

		if err := h.applications.Process(r.Context(), userID, input); err != nil {
			h.responder.WriteError(w, err)
			return
		}
		h.responder.WriteSuccess(w, http.StatusOK)
	}
}

// getSentApplications lists the caller's applications
// @Summary Sent applications
// @Tags Applications
// @Produce json
// @Success 200 {array} services.ApplicationView
// @Router /projects/getSentApplications [get]
func (h applicationHandler) getSentApplications() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, err := ctxGetUserID(r.Context())
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		applications, err := h.applications.Sent(r.Context(), userID)
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}
		h.responder.WriteJSON(w, applications)
	}
}

// getIncomingApplications lists applications to the caller's projects
// @Summary Incoming applications
// @Tags Applications
// @Produce json
// @Success 200 {array} services.ApplicationView
// @Router /projects/getIncomingApplications [get]
func (h applicationHandler) getIncomingApplications() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, err := ctxGetUserID(r.Context())
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		applications, err := h.applications.Incoming(r.Context(), userID)
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}
		h.responder.WriteJSON(w, applications)
	}
}
