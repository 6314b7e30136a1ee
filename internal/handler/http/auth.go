package http

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/MKhiriev/go-user-accounts/internal/logger"
	"github.com/MKhiriev/go-user-accounts/internal/service"
	"github.com/MKhiriev/go-user-accounts/internal/utils"
	"github.com/MKhiriev/go-user-accounts/internal/validators"
	"github.com/MKhiriev/go-user-accounts/models"
)

const tokenTypeBearer = "bearer"

func (h *Handler) register(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req models.RegisterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeInvalidJSON(w, r, "*Handler.register", err)
		return
	}

	account, err := h.services.AccountService.Register(ctx, req)
	if err != nil {
		writeError(w, r, "*Handler.register", err)
		return
	}

	_, _ = utils.WriteJSON(w, accountResponse(r, account), http.StatusCreated)
}

// login accepts an OAuth2 password-grant style form where "username" holds
// the email.
func (h *Handler) login(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	if err := r.ParseForm(); err != nil {
		log.Info().Err(err).Str("func", "*Handler.login").Msg("invalid form was passed")
		writeValidationError(w, validators.FieldError{Field: validators.FieldBody, Message: "invalid form data"})
		return
	}

	email := r.PostForm.Get("username")
	password := r.PostForm.Get("password")

	var missing []validators.FieldError
	if email == "" {
		missing = append(missing, validators.FieldError{Field: "username", Message: "field required"})
	}
	if password == "" {
		missing = append(missing, validators.FieldError{Field: validators.FieldPassword, Message: "field required"})
	}
	if len(missing) > 0 {
		writeValidationError(w, missing...)
		return
	}

	account, err := h.services.AccountService.Login(ctx, email, password)
	if err != nil {
		writeError(w, r, "*Handler.login", err)
		return
	}

	token, err := h.services.TokenService.CreateToken(ctx, account, 0)
	if err != nil {
		writeError(w, r, "*Handler.login", err)
		return
	}

	log.Debug().Str("account_id", account.ID.String()).Msg("user successfully logged in")
	_, _ = utils.WriteJSON(w, models.TokenResponse{AccessToken: token.SignedString, TokenType: tokenTypeBearer}, http.StatusOK)
}

func (h *Handler) verifyEmail(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()

	ok, err := h.services.AccountService.VerifyEmail(r.Context(), query.Get("email"), query.Get("token"))
	if err != nil {
		writeError(w, r, "*Handler.verifyEmail", err)
		return
	}
	if !ok {
		writeError(w, r, "*Handler.verifyEmail", service.ErrInvalidVerificationToken)
		return
	}

	_, _ = utils.WriteJSON(w, models.MessageResponse{Message: "Email verified successfully"}, http.StatusOK)
}

// writeInvalidJSON answers 422 for a body that could not be decoded. An
// unknown role name is reported on the role field, anything else on body.
func writeInvalidJSON(w http.ResponseWriter, r *http.Request, funcName string, err error) {
	if errors.Is(err, models.ErrUnknownRole) {
		writeError(w, r, funcName, err)
		return
	}

	logger.FromRequest(r).Info().Err(err).Str("func", funcName).Msg(errInvalidJSON.Error())
	writeValidationError(w, validators.FieldError{Field: validators.FieldBody, Message: errInvalidJSON.Error()})
}
