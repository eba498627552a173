package provider

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/cloudinary/cloudinary-go/v2"
	"github.com/cloudinary/cloudinary-go/v2/api"
	"github.com/cloudinary/cloudinary-go/v2/api/admin"
	"github.com/cloudinary/cloudinary-go/v2/api/uploader"
	"github.com/rs/zerolog/log"

	"github.com/cctv-effect/cctv_server/internal/transformation"
)

const (
	videoAssetType api.AssetType    = "video"
	uploadDelivery api.DeliveryType = "upload"
)

// the provider detects the resource type of uploads
const autoResourceType = "auto"

// Folder scopes every resource this service reads or writes.
const Folder = "cctv-effect-videos/"

type Config struct {
	CloudName string
	APIKey    string
	APISecret string
	// APIURL overrides the provider API host, e.g. https://api-eu.cloudinary.com.
	APIURL string
}

type UploadRequest struct {
	Path           string
	Transformation transformation.Chain
	PublicID       string
	// Folder places the upload under the client's folder prefix.
	Folder bool
}

type assetsAPI interface {
	Asset(ctx context.Context, params admin.AssetParams) (*admin.AssetResult, error)
	Assets(ctx context.Context, params admin.AssetsParams) (*admin.AssetsResult, error)
	DeleteAssets(ctx context.Context, params admin.DeleteAssetsParams) (*admin.DeleteAssetsResult, error)
}

type uploadAPI interface {
	Upload(ctx context.Context, file interface{}, params uploader.UploadParams) (*uploader.UploadResult, error)
}

// Client addresses video assets under a single folder prefix. It is safe for concurrent use.
type Client struct {
	admin  assetsAPI
	upload uploadAPI
	folder string
}

func NewClient(config Config) (*Client, error) {
	cld, err := cloudinary.NewFromParams(config.CloudName, config.APIKey, config.APISecret)
	if err != nil {
		return nil, fmt.Errorf("failed to configure cloudinary: %w", err)
	}

	if config.APIURL != "" {
		prefix := strings.TrimSuffix(config.APIURL, "/")
		cld.Config.API.UploadPrefix = prefix
		cld.Admin.Config.API.UploadPrefix = prefix
		cld.Upload.Config.API.UploadPrefix = prefix
	}

	cld.Admin.Client.Transport = newStatusTransport(cld.Admin.Client.Transport)
	cld.Upload.Client.Transport = newStatusTransport(cld.Upload.Client.Transport)

	return newClient(&cld.Admin, &cld.Upload), nil
}

func newClient(assets assetsAPI, upload uploadAPI) *Client {
	return &Client{
		admin:  assets,
		upload: upload,
		folder: Folder,
	}
}

// ScopedID prefixes id with the folder unless it already carries it.
func (c *Client) ScopedID(id string) string {
	if strings.HasPrefix(id, c.folder) {
		return id
	}
	return c.folder + id
}

func (c *Client) Fetch(ctx context.Context, id string) (*admin.AssetResult, error) {
	if id == "" {
		return nil, &Error{Op: "fetch", Message: "resource id is required"}
	}

	ctx, rec := withStatusRecorder(ctx)
	result, err := c.admin.Asset(ctx, admin.AssetParams{
		PublicID:     c.ScopedID(id),
		AssetType:    videoAssetType,
		DeliveryType: uploadDelivery,
	})
	if err != nil {
		return nil, newError("fetch", rec, err.Error())
	}
	if result.Error.Message != "" {
		return nil, newError("fetch", rec, result.Error.Message)
	}
	return result, nil
}

func (c *Client) List(ctx context.Context) (*admin.AssetsResult, error) {
	ctx, rec := withStatusRecorder(ctx)
	result, err := c.admin.Assets(ctx, admin.AssetsParams{
		AssetType:    videoAssetType,
		DeliveryType: string(uploadDelivery),
		Prefix:       c.folder,
	})
	if err != nil {
		return nil, newError("list", rec, err.Error())
	}
	if result.Error.Message != "" {
		return nil, newError("list", rec, result.Error.Message)
	}
	return result, nil
}

func (c *Client) Upload(ctx context.Context, req UploadRequest) (*uploader.UploadResult, error) {
	if _, err := os.Stat(req.Path); err != nil {
		return nil, &Error{Op: "upload", Message: fmt.Sprintf("cannot read %s: %v", req.Path, err)}
	}

	params := uploader.UploadParams{
		PublicID:       req.PublicID,
		ResourceType:   autoResourceType,
		Transformation: req.Transformation.String(),
	}
	if req.Folder {
		params.Folder = strings.TrimSuffix(c.folder, "/")
	}

	log.Debug().
		Str("path", req.Path).
		Str("folder", params.Folder).
		Str("transformation", params.Transformation).
		Msg("Uploading video")

	ctx, rec := withStatusRecorder(ctx)
	result, err := c.upload.Upload(ctx, req.Path, params)
	if err != nil {
		return nil, newError("upload", rec, err.Error())
	}
	if result.Error.Message != "" {
		return nil, newError("upload", rec, result.Error.Message)
	}
	return result, nil
}

func (c *Client) Delete(ctx context.Context, ids []string) (*admin.DeleteAssetsResult, error) {
	if len(ids) == 0 {
		return nil, &Error{Op: "delete", Message: "at least one resource id is required"}
	}

	scoped := make([]string, 0, len(ids))
	for _, id := range ids {
		scoped = append(scoped, c.ScopedID(id))
	}

	ctx, rec := withStatusRecorder(ctx)
	result, err := c.admin.DeleteAssets(ctx, admin.DeleteAssetsParams{
		AssetType: videoAssetType,
		PublicIDs: scoped,
	})
	if err != nil {
		return nil, newError("delete", rec, err.Error())
	}
	if result.Error.Message != "" {
		return nil, newError("delete", rec, result.Error.Message)
	}
	return result, nil
}
