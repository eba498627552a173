package health

import (
	"os"

	"github.com/goccy/go-json"
	"github.com/rs/zerolog/log"
	"github.com/valyala/fasthttp"

	"github.com/cctv-effect/cctv_server/internal/provider"
)

const (
	StatusOK       = "ok"
	StatusDegraded = "degraded"
)

type HealthEndpoints struct {
	version    string
	sourcePath string
}

func NewEndpoints(version, sourcePath string) *HealthEndpoints {
	return &HealthEndpoints{
		version:    version,
		sourcePath: sourcePath,
	}
}

type SourceVideo struct {
	Path      string `json:"path"`
	Available bool   `json:"available"`
	SizeBytes int64  `json:"sizeBytes,omitempty"`
}

type HealthResponse struct {
	Status      string      `json:"status"`
	Version     string      `json:"version"`
	Folder      string      `json:"folder"`
	SourceVideo SourceVideo `json:"sourceVideo"`
}

// Health answers 503 while the demo video that uploads transform is missing.
// The provider itself is never contacted.
func (h *HealthEndpoints) Health(ctx *fasthttp.RequestCtx) {
	source := h.checkSource()

	response := HealthResponse{
		Status:      StatusOK,
		Version:     h.version,
		Folder:      provider.Folder,
		SourceVideo: source,
	}
	status := fasthttp.StatusOK
	if !source.Available {
		response.Status = StatusDegraded
		status = fasthttp.StatusServiceUnavailable
	}

	responseJSON, err := json.Marshal(response)
	if err != nil {
		ctx.Error("Internal Server Error", fasthttp.StatusInternalServerError)
		return
	}

	ctx.SetContentType("application/json")
	ctx.SetStatusCode(status)
	ctx.SetBody(responseJSON)
}

func (h *HealthEndpoints) checkSource() SourceVideo {
	source := SourceVideo{Path: h.sourcePath}

	info, err := os.Stat(h.sourcePath)
	if err != nil {
		log.Warn().Err(err).Str("path", h.sourcePath).Msg("Source video unavailable")
		return source
	}
	if info.IsDir() {
		log.Warn().Str("path", h.sourcePath).Msg("Source video path is a directory")
		return source
	}

	source.Available = true
	source.SizeBytes = info.Size()
	return source
}
