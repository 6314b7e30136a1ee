package adapter

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"github.com/MKhiriev/go-user-accounts/models"
	"github.com/go-resty/resty/v2"
)

func mapHTTPError(resp *resty.Response) error {
	if resp.StatusCode() >= http.StatusOK && resp.StatusCode() < http.StatusMultipleChoices {
		return nil
	}

	body := errorDetail(resp.Body())

	switch resp.StatusCode() {
	case http.StatusBadRequest:
		return fmt.Errorf("%w: %s", ErrBadRequest, body)
	case http.StatusUnauthorized:
		return fmt.Errorf("%w: %s", ErrUnauthorized, body)
	case http.StatusForbidden:
		return fmt.Errorf("%w: %s", ErrForbidden, body)
	case http.StatusNotFound:
		return fmt.Errorf("%w: %s", ErrNotFound, body)
	case http.StatusUnprocessableEntity:
		return fmt.Errorf("%w: %s", ErrUnprocessable, body)
	case http.StatusInternalServerError:
		return fmt.Errorf("%w: %s", ErrInternalServerError, body)
	default:
		if body == "" {
			body = http.StatusText(resp.StatusCode())
		}
		return fmt.Errorf("http %d: %s", resp.StatusCode(), body)
	}
}

// errorDetail extracts the "detail" of an API error body. Validation errors
// are flattened to "field: message; ...". Anything else is returned as text.
func errorDetail(raw []byte) string {
	var plain models.ErrorResponse
	if err := json.Unmarshal(raw, &plain); err == nil && plain.Detail != "" {
		return plain.Detail
	}

	var validation models.ValidationErrorResponse
	if err := json.Unmarshal(raw, &validation); err == nil && len(validation.Detail) > 0 {
		parts := make([]string, 0, len(validation.Detail))
		for _, d := range validation.Detail {
			parts = append(parts, d.Field+": "+d.Message)
		}
		return strings.Join(parts, "; ")
	}

	return strings.TrimSpace(string(raw))
}
