package http

import (
	"net/http"

	"github.com/MKhiriev/go-clinic-keeper/internal/utils"
)

type versionResponse struct {
	Version string `json:"version"`
	Commit  string `json:"commit,omitempty"`
	Date    string `json:"date,omitempty"`
}

func (h *Handler) getServerVersion(w http.ResponseWriter, r *http.Request) {
	info := h.services.AppInfoService.GetBuildInfo(r.Context())

	_, _ = utils.WriteJSON(w, versionResponse{
		Version: info.BuildVersion(),
		Commit:  info.BuildCommit(),
		Date:    info.BuildDate(),
	}, http.StatusOK)
}
