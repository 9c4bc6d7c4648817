package api

import (
	"net/http"
	"runtime"
	"time"
)

const serviceName = "bectrack"

// SystemHandler serves liveness and build information.
type SystemHandler struct {
	version   string
	buildTime string
	started   time.Time
}

func NewSystemHandler(version, buildTime string) *SystemHandler {
	return &SystemHandler{version: version, buildTime: buildTime, started: time.Now()}
}

type healthResponse struct {
	Status  string `json:"status"`
	Service string `json:"service"`
	Version string `json:"version"`
	Uptime  string `json:"uptime"`
}

type versionResponse struct {
	Service   string `json:"service"`
	Version   string `json:"version"`
	BuildTime string `json:"buildTime"`
	GoVersion string `json:"goVersion"`
}

func (h *SystemHandler) Health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, healthResponse{
		Status:  "ok",
		Service: serviceName,
		Version: h.version,
		Uptime:  time.Since(h.started).Round(time.Second).String(),
	}, http.StatusOK)
}

func (h *SystemHandler) Version(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, versionResponse{
		Service:   serviceName,
		Version:   h.version,
		BuildTime: h.buildTime,
		GoVersion: runtime.Version(),
	}, http.StatusOK)
}
