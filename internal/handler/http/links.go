package http

import (
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/MKhiriev/go-user-accounts/internal/service"
	"github.com/MKhiriev/go-user-accounts/models"
	"github.com/google/uuid"
)

// baseURL is the scheme and host the client used to reach us, honouring
// X-Forwarded-Proto set by a reverse proxy. Values other than http and https
// are ignored.
func baseURL(r *http.Request) string {
	scheme := "http"
	if r.TLS != nil {
		scheme = "https"
	}
	switch proto := strings.ToLower(strings.TrimSpace(r.Header.Get("X-Forwarded-Proto"))); proto {
	case "http", "https":
		scheme = proto
	}

	return scheme + "://" + r.Host
}

// accountLinks are the HATEOAS links attached to every account response.
func accountLinks(r *http.Request, id uuid.UUID) []models.Link {
	self := baseURL(r) + "/users/" + id.String()

	return []models.Link{
		{Rel: "self", Href: self, Method: http.MethodGet},
		{Rel: "update", Href: self, Method: http.MethodPut},
		{Rel: "delete", Href: self, Method: http.MethodDelete},
		{Rel: "unlock", Href: self + "/unlock", Method: http.MethodPost},
		{Rel: "reset-password", Href: self + "/reset-password", Method: http.MethodPost},
	}
}

func accountResponse(r *http.Request, account models.Account) models.AccountResponse {
	return models.NewAccountResponse(account, accountLinks(r, account.ID))
}

// paginationLinks returns self and first always, last, next and prev when
// they exist.
func paginationLinks(r *http.Request, skip, limit int, total int64) []models.Link {
	base := baseURL(r) + "/users"
	pageURL := func(s int) string {
		query := url.Values{}
		query.Set("skip", strconv.Itoa(s))
		query.Set("limit", strconv.Itoa(limit))
		return base + "?" + query.Encode()
	}

	links := []models.Link{
		{Rel: "self", Href: pageURL(skip), Method: http.MethodGet},
		{Rel: "first", Href: pageURL(0), Method: http.MethodGet},
	}

	lastSkip := 0
	if total > 0 {
		lastSkip = int((total - 1) / int64(limit) * int64(limit))
	}
	links = append(links, models.Link{Rel: "last", Href: pageURL(lastSkip), Method: http.MethodGet})

	if int64(skip+limit) < total {
		links = append(links, models.Link{Rel: "next", Href: pageURL(skip + limit), Method: http.MethodGet})
	}
	if skip > 0 {
		links = append(links, models.Link{Rel: "prev", Href: pageURL(max(skip-limit, 0)), Method: http.MethodGet})
	}

	return links
}

func accountListResponse(r *http.Request, page models.AccountPage) models.AccountListResponse {
	if page.Limit <= 0 {
		page.Limit = service.DefaultPageLimit
	}

	items := make([]models.AccountResponse, 0, len(page.Items))
	for _, account := range page.Items {
		items = append(items, accountResponse(r, account))
	}

	return models.AccountListResponse{
		Items: items,
		Total: page.Total,
		Page:  page.Skip/page.Limit + 1,
		Size:  page.Limit,
		Links: paginationLinks(r, page.Skip, page.Limit, page.Total),
	}
}
