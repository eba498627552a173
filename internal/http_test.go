package internal

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/cloudinary/cloudinary-go/v2/api/admin"
	"github.com/cloudinary/cloudinary-go/v2/api/uploader"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/valyala/fasthttp"

	"github.com/cctv-effect/cctv_server/internal/health"
	"github.com/cctv-effect/cctv_server/internal/provider"
	"github.com/cctv-effect/cctv_server/internal/video"
)

type routeRecorder struct {
	calls []string
	ids   []string
}

func (r *routeRecorder) Fetch(ctx context.Context, id string) (*admin.AssetResult, error) {
	r.calls = append(r.calls, "fetch")
	r.ids = append(r.ids, id)
	return &admin.AssetResult{PublicID: id}, nil
}

func (r *routeRecorder) List(ctx context.Context) (*admin.AssetsResult, error) {
	r.calls = append(r.calls, "list")
	return &admin.AssetsResult{}, nil
}

func (r *routeRecorder) Upload(ctx context.Context, req provider.UploadRequest) (*uploader.UploadResult, error) {
	r.calls = append(r.calls, "upload")
	return &uploader.UploadResult{}, nil
}

func (r *routeRecorder) Delete(ctx context.Context, ids []string) (*admin.DeleteAssetsResult, error) {
	r.calls = append(r.calls, "delete")
	r.ids = append(r.ids, ids...)
	return &admin.DeleteAssetsResult{}, nil
}

func serve(t *testing.T, handler fasthttp.RequestHandler, method, uri string) *fasthttp.RequestCtx {
	t.Helper()
	ctx := &fasthttp.RequestCtx{}
	ctx.Request.Header.SetMethod(method)
	ctx.Request.SetRequestURI(uri)
	handler(ctx)
	return ctx
}

func newTestHandler(t *testing.T, service video.Service) fasthttp.RequestHandler {
	t.Helper()
	sourcePath := filepath.Join(t.TempDir(), "video.mp4")
	require.NoError(t, os.WriteFile(sourcePath, []byte("demo"), 0o644))

	config := &Config{Server: ServerConfig{AllowedOrigins: []string{"*"}}}
	return NewRequestHandler(
		config,
		health.NewEndpoints("test", sourcePath),
		video.NewEndpoints(service, sourcePath),
	)
}

func TestRequestHandler_ShouldRouteVideoOperations(t *testing.T) {
	tests := []struct {
		method string
		uri    string
		call   string
	}{
		{fasthttp.MethodGet, "/api/videos", "list"},
		{fasthttp.MethodPost, "/api/videos", "upload"},
		{fasthttp.MethodGet, "/api/videos/abc", "fetch"},
		{fasthttp.MethodDelete, "/api/videos/abc", "delete"},
	}

	for _, tt := range tests {
		t.Run(tt.method+" "+tt.uri, func(t *testing.T) {
			// given
			service := &routeRecorder{}

			// when
			ctx := serve(t, newTestHandler(t, service), tt.method, tt.uri)

			// then
			assert.Equal(t, fasthttp.StatusOK, ctx.Response.StatusCode())
			assert.Equal(t, []string{tt.call}, service.calls)
		})
	}
}

func TestRequestHandler_ShouldPassFolderQualifiedID(t *testing.T) {
	service := &routeRecorder{}

	ctx := serve(t, newTestHandler(t, service), fasthttp.MethodGet, "/api/videos/cctv-effect-videos/abc")

	assert.Equal(t, fasthttp.StatusOK, ctx.Response.StatusCode())
	require.Len(t, service.ids, 1)
	assert.Equal(t, "cctv-effect-videos/abc", service.ids[0])
}

func TestRequestHandler_ShouldRejectUnsupportedMethods(t *testing.T) {
	service := &routeRecorder{}
	handler := newTestHandler(t, service)

	assert.Equal(t, fasthttp.StatusMethodNotAllowed, serve(t, handler, fasthttp.MethodPut, "/api/videos").Response.StatusCode())
	assert.Equal(t, fasthttp.StatusMethodNotAllowed, serve(t, handler, fasthttp.MethodPost, "/api/videos/abc").Response.StatusCode())
	assert.Empty(t, service.calls)
}

func TestRequestHandler_ShouldReturnNotFoundForUnknownPaths(t *testing.T) {
	ctx := serve(t, newTestHandler(t, &routeRecorder{}), fasthttp.MethodGet, "/api/images")

	assert.Equal(t, fasthttp.StatusNotFound, ctx.Response.StatusCode())
}

func TestRequestHandler_ShouldServeHealth(t *testing.T) {
	service := &routeRecorder{}

	ctx := serve(t, newTestHandler(t, service), fasthttp.MethodGet, "/health")

	assert.Equal(t, fasthttp.StatusOK, ctx.Response.StatusCode())
	assert.NotEmpty(t, ctx.Response.Header.Peek("X-Request-ID"))
	assert.Empty(t, service.calls)
}

func TestRequestHandler_ShouldNotDeleteCollection(t *testing.T) {
	service := &routeRecorder{}

	ctx := serve(t, newTestHandler(t, service), fasthttp.MethodDelete, "/api/videos/")

	assert.Equal(t, fasthttp.StatusMethodNotAllowed, ctx.Response.StatusCode())
	assert.Empty(t, service.calls)
}
