package api

import (
	"net/http"

	"github.com/rpupo63/student-projects-backend/services"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

type accountHandler struct {
	responder Responder
	logger    zerolog.Logger
	accounts  accountService
}

func newAccountHandler(accounts accountService) accountHandler {
	logger := log.With().Str("handlerName", "accountHandler").Logger()

	return accountHandler{
		responder: NewResponder(logger),
		logger:    logger,
		accounts:  accounts,
	}
}

// getProfile returns the caller's profile
// @Summary Get profile
// @Tags Account
// @Produce json
// @Success 200 {object} models.User
// @Failure 403 {object} ErrorResponse "Forbidden - User does not exist"
// @Router /account/profile [get]
func (h accountHandler) getProfile() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, err := ctxGetUserID(r.Context())
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		user, err := h.accounts.Profile(r.Context(), userID)
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}
		h.responder.WriteJSON(w, user)
	}
}

// updateProfile changes the supplied profile fields
// @Summary Update profile
// @Tags Account
// @Accept json
// @Produce json
// @Param profile body services.ProfilePatch true "Fields to change"
// @Success 200 {object} SuccessResponse
// @Router /account/profile [patch]
func (h accountHandler) updateProfile() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, err := ctxGetUserID(r.Context())
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		var patch services.ProfilePatch
		if err := decodeAndValidate(w, r, "profile", &patch); err != nil {
			h.responder.WriteError(w, err)
			return
		}

		if err := h.accounts.UpdateProfile(r.Context(), userID, patch); err != nil {
			h.responder.WriteError(w, err)
			return
		}
		h.responder.WriteSuccess(w, http.StatusOK)
	}
}

// getFaculties lists the faculties
// @Summary Faculties
// @Tags Account
// @Produce json
// @Success 200 {array} models.Faculty
// @Router /account/faculties [get]
func (h accountHandler) getFaculties() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		faculties, err := h.accounts.Faculties(r.Context())
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}
		h.responder.WriteJSON(w, faculties)
	}
}

// getCategories lists the reference categories
// @Summary Reference categories
// @Tags Account
// @Produce json
// @Success 200 {array} models.Category
// @Router /account/categories [get]
func (h accountHandler) getCategories() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		categories, err := h.accounts.Categories(r.Context())
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}
		h.responder.WriteJSON(w, categories)
	}
}

// setCategories replaces the caller's categories
// @Summary Set interests
// @Tags Account
// @Accept json
// @Produce json
// @Param categories body services.CategorySelection true "Category ids and custom labels"
// @Success 201 {object} SuccessResponse
// @Router /account/setCategories [post]
func (h accountHandler) setCategories() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, err := ctxGetUserID(r.Context())
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		var sel services.CategorySelection
		if err := decodeAndValidate(w, r, "categories", &sel); err != nil {
			h.responder.WriteError(w, err)
			return
		}

		if err := h.accounts.SetCategories(r.Context(), userID, sel); err != nil {
			h.responder.WriteError(w, err)
			return
		}
		h.responder.WriteSuccess(w, http.StatusCreated)
	}
}

// setFaculty points the caller at a faculty
// @Summary Set faculty
// @Tags Account
// @Accept json
// @Produce json
// @Param faculty body services.FacultyInput true "Faculty"
// @Success 201 {object} SuccessResponse
// @Failure 400 {object} ErrorResponse "Bad Request - Faculty does not exist"
// @Router /account/setFaculty [post]
func (h accountHandler) setFaculty() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, err := ctxGetUserID(r.Context())
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		var input services.FacultyInput
		if err := decodeAndValidate(w, r, "faculty", &input); err != nil {
			h.responder.WriteError(w, err)
			return
		}

		if err := h.accounts.SetFaculty(r.Context(), userID, input); err != nil {
			h.responder.WriteError(w, err)
			return
		}
		h.responder.WriteSuccess(w, http.StatusCreated)
	}
}
