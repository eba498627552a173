package video

import (
	"context"

	"github.com/cloudinary/cloudinary-go/v2/api/admin"
	"github.com/cloudinary/cloudinary-go/v2/api/uploader"

	"github.com/cctv-effect/cctv_server/internal/provider"
)

// Service is the media provider as seen by the endpoints. *provider.Client implements it.
type Service interface {
	Fetch(ctx context.Context, id string) (*admin.AssetResult, error)
	List(ctx context.Context) (*admin.AssetsResult, error)
	Upload(ctx context.Context, req provider.UploadRequest) (*uploader.UploadResult, error)
	Delete(ctx context.Context, ids []string) (*admin.DeleteAssetsResult, error)
}

type ResultResponse struct {
	Result interface{} `json:"result"`
}

type ErrorResponse struct {
	Error *provider.Error `json:"error"`
}
