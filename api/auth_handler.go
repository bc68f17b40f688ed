package api

import (
	"net/http"

	"github.com/rpupo63/student-projects-backend/services"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

type authHandler struct {
	responder Responder
	logger    zerolog.Logger
	accounts  accountService
}

func newAuthHandler(accounts accountService) authHandler {
	logger := log.With().Str("handlerName", "authHandler").Logger()

	return authHandler{
		responder: NewResponder(logger),
		logger:    logger,
		accounts:  accounts,
	}
}

// register creates an account
// @Summary Register
// @Tags Auth
// @Accept json
// @Produce json
// @Param account body services.RegisterInput true "Account"
// @Success 201 {object} TokenResponse
// @Failure 409 {object} ErrorResponse "Conflict - Email already exists"
// @Router /auth/register [post]
func (h authHandler) register() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var input services.RegisterInput
		if err := decodeAndValidate(w, r, "registration", &input); err != nil {
			h.responder.WriteError(w, err)
			return
		}

		token, err := h.accounts.Register(r.Context(), input)
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}
		h.responder.WriteJSONStatus(w, http.StatusCreated, TokenResponse{Token: token})
	}
}

// login exchanges credentials for a token
// @Summary Login
// @Tags Auth
// @Accept json
// @Produce json
// @Param credentials body services.LoginInput true "Credentials"
// @Success 200 {object} TokenResponse
// @Failure 401 {object} ErrorResponse "Unauthorized - Invalid email or password"
// @Router /auth/login [post]
func (h authHandler) login() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var input services.LoginInput
		if err := decodeAndValidate(w, r, "login", &input); err != nil {
			h.responder.WriteError(w, err)
			return
		}

		token, err := h.accounts.Login(r.Context(), input)
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}
		h.responder.WriteJSON(w, TokenResponse{Token: token})
	}
}
