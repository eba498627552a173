package video

import (
	"errors"
	"time"

	"github.com/goccy/go-json"
	"github.com/rs/zerolog/log"
	"github.com/valyala/fasthttp"

	"github.com/cctv-effect/cctv_server/internal/provider"
	"github.com/cctv-effect/cctv_server/internal/transformation"
)

type VideoEndpoints struct {
	service    Service
	sourcePath string
	now        func() time.Time
}

// NewEndpoints serves the provider's videos. Every upload transforms the file at sourcePath.
func NewEndpoints(service Service, sourcePath string) *VideoEndpoints {
	return &VideoEndpoints{
		service:    service,
		sourcePath: sourcePath,
		now:        time.Now,
	}
}

func (ve *VideoEndpoints) List(ctx *fasthttp.RequestCtx) {
	result, err := ve.service.List(ctx)
	if err != nil {
		log.Error().Err(err).Msg("Failed to list videos")
		writeError(ctx, err)
		return
	}

	writeResult(ctx, result.Response, result)
}

// Create uploads the demo video with the CCTV transformation chain. The request body is ignored.
func (ve *VideoEndpoints) Create(ctx *fasthttp.RequestCtx) {
	req := provider.UploadRequest{
		Path:           ve.sourcePath,
		Transformation: transformation.CCTV(ve.now()),
		Folder:         true,
	}

	result, err := ve.service.Upload(ctx, req)
	if err != nil {
		log.Error().Err(err).Str("path", ve.sourcePath).Msg("Failed to upload video")
		writeError(ctx, err)
		return
	}

	log.Info().Str("publicId", result.PublicID).Msg("Video uploaded")
	writeResult(ctx, result.Response, result)
}

func (ve *VideoEndpoints) Get(ctx *fasthttp.RequestCtx) {
	videoID, ok := videoIDFrom(ctx)
	if !ok {
		return
	}

	result, err := ve.service.Fetch(ctx, videoID)
	if err != nil {
		log.Error().Err(err).Str("videoId", videoID).Msg("Failed to fetch video")
		writeError(ctx, err)
		return
	}

	writeResult(ctx, result.Response, result)
}

func (ve *VideoEndpoints) Delete(ctx *fasthttp.RequestCtx) {
	videoID, ok := videoIDFrom(ctx)
	if !ok {
		return
	}

	result, err := ve.service.Delete(ctx, []string{videoID})
	if err != nil {
		log.Error().Err(err).Str("videoId", videoID).Msg("Failed to delete video")
		writeError(ctx, err)
		return
	}

	writeResult(ctx, result.Response, result)
}

func videoIDFrom(ctx *fasthttp.RequestCtx) (string, bool) {
	videoID, ok := ctx.UserValue("videoID").(string)
	if !ok || videoID == "" {
		writeError(ctx, &provider.Error{Message: "video id is required"})
		return "", false
	}
	return videoID, true
}

// writeResult passes the provider's response body through as-is. The decoded
// struct is only used when no raw body was kept.
func writeResult(ctx *fasthttp.RequestCtx, raw interface{}, decoded interface{}) {
	if raw != nil {
		writeJSON(ctx, fasthttp.StatusOK, ResultResponse{Result: raw})
		return
	}
	writeJSON(ctx, fasthttp.StatusOK, ResultResponse{Result: decoded})
}

// writeError answers with the error's provider status, or 400 when it carries none.
func writeError(ctx *fasthttp.RequestCtx, err error) {
	var providerErr *provider.Error
	if !errors.As(err, &providerErr) {
		providerErr = &provider.Error{Message: err.Error()}
	}

	status := fasthttp.StatusBadRequest
	if providerErr.StatusCode >= 400 {
		status = providerErr.StatusCode
	}

	writeJSON(ctx, status, ErrorResponse{Error: providerErr})
}

func writeJSON(ctx *fasthttp.RequestCtx, status int, body interface{}) {
	responseJSON, err := json.Marshal(body)
	if err != nil {
		ctx.Error("Internal Server Error", fasthttp.StatusInternalServerError)
		return
	}

	ctx.SetContentType("application/json")
	ctx.SetStatusCode(status)
	ctx.SetBody(responseJSON)
}
