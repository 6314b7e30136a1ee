package http

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/MKhiriev/go-user-accounts/internal/logger"
	"github.com/MKhiriev/go-user-accounts/internal/service"
	"github.com/MKhiriev/go-user-accounts/internal/utils"
	"github.com/MKhiriev/go-user-accounts/internal/validators"
	"github.com/MKhiriev/go-user-accounts/models"
	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
)

func (h *Handler) getMe(w http.ResponseWriter, r *http.Request) {
	accountID, ok := utils.GetAccountIDFromContext(r.Context())
	if !ok {
		writeUnauthorized(w)
		return
	}

	account, err := h.services.AccountService.Get(r.Context(), accountID)
	if err != nil {
		writeError(w, r, "*Handler.getMe", err)
		return
	}

	_, _ = utils.WriteJSON(w, accountResponse(r, account), http.StatusOK)
}

// updateMe updates the caller's own profile. Changing the role this way
// requires an elevated caller and cannot raise it above the current one.
func (h *Handler) updateMe(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	accountID, ok := utils.GetAccountIDFromContext(ctx)
	if !ok {
		writeUnauthorized(w)
		return
	}

	var req models.UpdateAccountRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeInvalidJSON(w, r, "*Handler.updateMe", err)
		return
	}

	if req.Role != nil && !canAssignRole(r, *req.Role) {
		writeError(w, r, "*Handler.updateMe", service.ErrForbidden)
		return
	}

	account, err := h.services.AccountService.Update(ctx, accountID, req)
	if err != nil {
		writeError(w, r, "*Handler.updateMe", err)
		return
	}

	_, _ = utils.WriteJSON(w, accountResponse(r, account), http.StatusOK)
}

func (h *Handler) createAccount(w http.ResponseWriter, r *http.Request) {
	var req models.CreateAccountRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeInvalidJSON(w, r, "*Handler.createAccount", err)
		return
	}
	if req.Role != "" && !canAssignRole(r, req.Role) {
		writeError(w, r, "*Handler.createAccount", service.ErrForbidden)
		return
	}

	account, err := h.services.AccountService.Create(r.Context(), req)
	if err != nil {
		writeError(w, r, "*Handler.createAccount", err)
		return
	}

	logger.FromRequest(r).Info().Str("func", "*Handler.createAccount").Str("account_id", account.ID.String()).Msg("account created by staff")
	_, _ = utils.WriteJSON(w, accountResponse(r, account), http.StatusCreated)
}

func (h *Handler) listAccounts(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()

	var fieldErrors []validators.FieldError
	skip, err := intQueryParam(query.Get("skip"), 0)
	if err != nil {
		fieldErrors = append(fieldErrors, validators.FieldError{Field: "skip", Message: "value is not a valid integer"})
	}
	limit, err := intQueryParam(query.Get("limit"), service.DefaultPageLimit)
	if err != nil {
		fieldErrors = append(fieldErrors, validators.FieldError{Field: "limit", Message: "value is not a valid integer"})
	}
	if len(fieldErrors) > 0 {
		writeValidationError(w, fieldErrors...)
		return
	}

	page, err := h.services.AccountService.List(r.Context(), skip, limit)
	if err != nil {
		writeError(w, r, "*Handler.listAccounts", err)
		return
	}

	_, _ = utils.WriteJSON(w, accountListResponse(r, page), http.StatusOK)
}

func (h *Handler) getAccount(w http.ResponseWriter, r *http.Request) {
	id, ok := accountIDParam(w, r)
	if !ok {
		return
	}

	account, err := h.services.AccountService.Get(r.Context(), id)
	if err != nil {
		writeError(w, r, "*Handler.getAccount", err)
		return
	}

	_, _ = utils.WriteJSON(w, accountResponse(r, account), http.StatusOK)
}

func (h *Handler) updateAccount(w http.ResponseWriter, r *http.Request) {
	id, ok := accountIDParam(w, r)
	if !ok {
		return
	}

	var req models.UpdateAccountRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeInvalidJSON(w, r, "*Handler.updateAccount", err)
		return
	}
	if req.Role != nil && !canAssignRole(r, *req.Role) {
		writeError(w, r, "*Handler.updateAccount", service.ErrForbidden)
		return
	}

	account, err := h.services.AccountService.Update(r.Context(), id, req)
	if err != nil {
		writeError(w, r, "*Handler.updateAccount", err)
		return
	}

	_, _ = utils.WriteJSON(w, accountResponse(r, account), http.StatusOK)
}

func (h *Handler) deleteAccount(w http.ResponseWriter, r *http.Request) {
	id, ok := accountIDParam(w, r)
	if !ok {
		return
	}

	if err := h.services.AccountService.Delete(r.Context(), id); err != nil {
		writeError(w, r, "*Handler.deleteAccount", err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) unlockAccount(w http.ResponseWriter, r *http.Request) {
	id, ok := accountIDParam(w, r)
	if !ok {
		return
	}

	unlocked, err := h.services.AccountService.Unlock(r.Context(), id)
	if err != nil {
		writeError(w, r, "*Handler.unlockAccount", err)
		return
	}
	if !unlocked {
		writeError(w, r, "*Handler.unlockAccount", service.ErrAccountNotLocked)
		return
	}

	_, _ = utils.WriteJSON(w, models.MessageResponse{Message: "Account unlocked"}, http.StatusOK)
}

func (h *Handler) resetPassword(w http.ResponseWriter, r *http.Request) {
	id, ok := accountIDParam(w, r)
	if !ok {
		return
	}

	var req models.ResetPasswordRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeInvalidJSON(w, r, "*Handler.resetPassword", err)
		return
	}

	reset, err := h.services.AccountService.ResetPassword(r.Context(), id, req.Password)
	if err != nil {
		writeError(w, r, "*Handler.resetPassword", err)
		return
	}
	if !reset {
		writeError(w, r, "*Handler.resetPassword", service.ErrNotFound)
		return
	}

	_, _ = utils.WriteJSON(w, models.MessageResponse{Message: "Password reset successfully"}, http.StatusOK)
}

func canAssignRole(r *http.Request, target models.Role) bool {
	caller := utils.GetRoleFromContext(r.Context())
	if caller.CanAssign(target) {
		return true
	}

	logger.FromRequest(r).Info().Str("func", "canAssignRole").
		Str("caller_role", caller.String()).
		Str("target_role", target.String()).
		Msg("role assignment above the caller's own role refused")
	return false
}

// accountIDParam parses the {id} path segment, answering 422 itself when it
// is not a UUID.
func accountIDParam(w http.ResponseWriter, r *http.Request) (uuid.UUID, bool) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		logger.FromRequest(r).Info().Err(err).Str("func", "accountIDParam").Msg("invalid account id")
		writeValidationError(w, validators.FieldError{Field: "id", Message: "value is not a valid uuid"})
		return uuid.Nil, false
	}

	return id, true
}

func intQueryParam(raw string, fallback int) (int, error) {
	if raw == "" {
		return fallback, nil
	}
	return strconv.Atoi(raw)
}
