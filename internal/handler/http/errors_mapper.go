package http

import (
	"errors"
	"net/http"

	"github.com/MKhiriev/go-user-accounts/internal/logger"
	"github.com/MKhiriev/go-user-accounts/internal/service"
	"github.com/MKhiriev/go-user-accounts/internal/utils"
	"github.com/MKhiriev/go-user-accounts/internal/validators"
	"github.com/MKhiriev/go-user-accounts/models"
)

// Response details shared by several handlers.
const (
	incorrectEmailOrPassword = "Incorrect email or password."
	accountLocked            = "Account locked due to too many failed login attempts."
	operationNotPermitted    = "Operation not permitted"
	internalServerError      = "Internal Server Error"
)

type apiError struct {
	status int
	detail string
}

// errorStatusMap holds every service error with a dedicated response. No
// key wraps another key, so the lookup order does not matter.
var errorStatusMap = map[error]apiError{
	service.ErrInvalidCredentials:       {http.StatusUnauthorized, incorrectEmailOrPassword},
	service.ErrAccountLocked:            {http.StatusBadRequest, accountLocked},
	service.ErrDuplicateEmail:           {http.StatusBadRequest, "Email already exists"},
	service.ErrDuplicateNickname:        {http.StatusBadRequest, "Nickname already exists"},
	service.ErrNotFound:                 {http.StatusNotFound, "User not found"},
	service.ErrAccountNotLocked:         {http.StatusBadRequest, "Account is not locked"},
	service.ErrInvalidVerificationToken: {http.StatusBadRequest, "Invalid or expired verification token"},
	service.ErrInvalidToken:             {http.StatusUnauthorized, couldNotValidateCredential},
	service.ErrForbidden:                {http.StatusForbidden, operationNotPermitted},
	service.ErrNicknameGeneration:       {http.StatusInternalServerError, "Failed to generate a valid nickname"},
}

func statusFromError(err error) apiError {
	for target, resp := range errorStatusMap {
		if errors.Is(err, target) {
			return resp
		}
	}
	return apiError{status: http.StatusInternalServerError, detail: internalServerError}
}

// writeError maps err onto the response contract: validation problems become
// 422 with field detail, known service errors get their own status, and
// everything else is a generic 500 whose cause is only logged.
func writeError(w http.ResponseWriter, r *http.Request, funcName string, err error) {
	log := logger.FromRequest(r)

	var verr *validators.ValidationError
	if errors.As(err, &verr) {
		log.Info().Err(err).Str("func", funcName).Msg("request rejected by validation")
		writeValidationError(w, verr.Fields...)
		return
	}
	if errors.Is(err, models.ErrUnknownRole) {
		log.Info().Err(err).Str("func", funcName).Msg("unknown role")
		writeValidationError(w, validators.FieldError{Field: validators.FieldRole, Message: "unknown role"})
		return
	}

	resp := statusFromError(err)
	if resp.status >= http.StatusInternalServerError {
		log.Err(err).Str("func", funcName).Msg("request failed")
	} else {
		log.Info().Err(err).Str("func", funcName).Int("status", resp.status).Msg("request rejected")
	}

	if resp.status == http.StatusUnauthorized && errors.Is(err, service.ErrInvalidToken) {
		w.Header().Set("WWW-Authenticate", "Bearer")
	}
	utils.WriteDetail(w, resp.detail, resp.status)
}

func writeValidationError(w http.ResponseWriter, fields ...validators.FieldError) {
	detail := make([]models.FieldErrorDetail, 0, len(fields))
	for _, f := range fields {
		detail = append(detail, models.FieldErrorDetail{Field: f.Field, Message: f.Message})
	}

	_, _ = utils.WriteJSON(w, models.ValidationErrorResponse{Detail: detail}, http.StatusUnprocessableEntity)
}
