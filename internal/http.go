package internal

import (
	"strings"

	"github.com/valyala/fasthttp"

	"github.com/cctv-effect/cctv_server/internal/health"
	"github.com/cctv-effect/cctv_server/internal/middleware"
	"github.com/cctv-effect/cctv_server/internal/video"
)

const videosPath = "/api/videos"

func NewRequestHandler(config *Config, healthEndpoints *health.HealthEndpoints, videoEndpoints *video.VideoEndpoints) fasthttp.RequestHandler {
	corsMiddleware := middleware.NewCORSMiddleware(config.Server.AllowedOrigins)

	handler := func(ctx *fasthttp.RequestCtx) {
		path := string(ctx.Path())
		method := string(ctx.Method())

		switch {
		case path == "/health":
			healthEndpoints.Health(ctx)

		case path == videosPath || path == videosPath+"/":
			switch method {
			case fasthttp.MethodGet:
				videoEndpoints.List(ctx)
			case fasthttp.MethodPost:
				videoEndpoints.Create(ctx)
			default:
				ctx.Error("Method Not Allowed", fasthttp.StatusMethodNotAllowed)
			}

		case strings.HasPrefix(path, videosPath+"/"):
			// public ids may contain the folder, so the id is the whole remainder
			ctx.SetUserValue("videoID", strings.TrimPrefix(path, videosPath+"/"))
			switch method {
			case fasthttp.MethodGet:
				videoEndpoints.Get(ctx)
			case fasthttp.MethodDelete:
				videoEndpoints.Delete(ctx)
			default:
				ctx.Error("Method Not Allowed", fasthttp.StatusMethodNotAllowed)
			}

		default:
			ctx.Error("Not Found", fasthttp.StatusNotFound)
		}
	}

	return middleware.RequestLogger(corsMiddleware.Handle(handler))
}
