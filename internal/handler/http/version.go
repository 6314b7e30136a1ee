package http

import (
	"net/http"
	"strings"

	"github.com/MKhiriev/go-user-accounts/internal/logger"
	"github.com/MKhiriev/go-user-accounts/internal/utils"
	"github.com/MKhiriev/go-user-accounts/models"
)

// getServerVersion answers with the bare version string. Clients asking for
// application/json also get the linker-injected build metadata.
func (h *Handler) getServerVersion(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	version := h.services.AppInfoService.GetAppVersion(ctx)

	if strings.Contains(r.Header.Get("Accept"), "application/json") {
		buildInfo := h.services.AppInfoService.GetBuildInfo(ctx)
		utils.WriteJSON(w, models.VersionResponse{
			Version:      version,
			BuildVersion: buildInfo.BuildVersion(),
			BuildDate:    buildInfo.BuildDate(),
			BuildCommit:  buildInfo.BuildCommit(),
		}, http.StatusOK)
		return
	}

	w.Header().Set("Content-Type", "text/plain")
	if _, err := w.Write([]byte(version)); err != nil {
		logger.FromRequest(r).Err(err).Str("func", "*Handler.getServerVersion").Msg("error writing version")
	}
}
