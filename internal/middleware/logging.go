package middleware

import (
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"github.com/valyala/fasthttp"
)

const HeaderRequestID = "X-Request-ID"

// RequestLogger tags each request with an id and logs it once the handler returns.
func RequestLogger(next fasthttp.RequestHandler) fasthttp.RequestHandler {
	return func(ctx *fasthttp.RequestCtx) {
		start := time.Now()

		requestID := string(ctx.Request.Header.Peek(HeaderRequestID))
		if requestID == "" {
			requestID = uuid.NewString()
		}
		ctx.SetUserValue("requestID", requestID)
		ctx.Response.Header.Set(HeaderRequestID, requestID)

		next(ctx)

		status := ctx.Response.StatusCode()
		event := log.Info()
		if status >= fasthttp.StatusInternalServerError {
			event = log.Error()
		} else if status >= fasthttp.StatusBadRequest {
			event = log.Warn()
		}
		event.
			Str("requestId", requestID).
			Str("method", string(ctx.Method())).
			Str("path", string(ctx.Path())).
			Int("status", status).
			Dur("duration", time.Since(start)).
			Msg("Request handled")
	}
}
