package internal

import (
	"testing"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setCredentials(t *testing.T) {
	t.Helper()
	t.Setenv("CLOUDINARY_CLOUD_NAME", "demo")
	t.Setenv("CLOUDINARY_API_KEY", "key")
	t.Setenv("CLOUDINARY_API_SECRET", "secret")
}

func TestLoadConfig_ShouldApplyDefaults(t *testing.T) {
	// given
	setCredentials(t)

	// when
	config, err := loadConfig(viper.New())

	// then
	require.NoError(t, err)
	assert.Equal(t, "demo", config.Cloudinary.CloudName)
	assert.Equal(t, "key", config.Cloudinary.APIKey)
	assert.Equal(t, "secret", config.Cloudinary.APISecret)
	assert.Empty(t, config.Cloudinary.APIURL)
	assert.Equal(t, "8080", config.Server.Port)
	assert.Equal(t, []string{"*"}, config.Server.AllowedOrigins)
	assert.Equal(t, DefaultSourcePath, config.Upload.SourcePath)
	assert.Equal(t, "info", config.Log.Level)
}

func TestLoadConfig_ShouldAcceptViteCredentials(t *testing.T) {
	t.Setenv("VITE_CLOUDINARY_CLOUD_NAME", "vite-demo")
	t.Setenv("VITE_CLOUDINARY_API_KEY", "vite-key")
	t.Setenv("VITE_CLOUDINARY_API_SECRET", "vite-secret")

	config, err := loadConfig(viper.New())

	require.NoError(t, err)
	assert.Equal(t, "vite-demo", config.Cloudinary.CloudName)
	assert.Equal(t, "vite-key", config.Cloudinary.APIKey)
	assert.Equal(t, "vite-secret", config.Cloudinary.APISecret)
}

func TestLoadConfig_ShouldReadOverrides(t *testing.T) {
	// given
	setCredentials(t)
	t.Setenv("CLOUDINARY_API_URL", "https://api-eu.cloudinary.com")
	t.Setenv("PORT", "9000")
	t.Setenv("ALLOWED_ORIGINS", "https://a.example.com, https://b.example.com")
	t.Setenv("UPLOAD_SOURCE_PATH", "/srv/demo.mp4")

	// when
	config, err := loadConfig(viper.New())

	// then
	require.NoError(t, err)
	assert.Equal(t, "https://api-eu.cloudinary.com", config.Cloudinary.APIURL)
	assert.Equal(t, "9000", config.Server.Port)
	assert.Equal(t, []string{"https://a.example.com", "https://b.example.com"}, config.Server.AllowedOrigins)
	assert.Equal(t, "/srv/demo.mp4", config.Upload.SourcePath)
}

func TestLoadConfig_ShouldFailWithoutCredentials(t *testing.T) {
	for _, key := range []string{
		"CLOUDINARY_CLOUD_NAME", "CLOUDINARY_API_KEY", "CLOUDINARY_API_SECRET",
		"VITE_CLOUDINARY_CLOUD_NAME", "VITE_CLOUDINARY_API_KEY", "VITE_CLOUDINARY_API_SECRET",
	} {
		t.Setenv(key, "")
	}

	_, err := loadConfig(viper.New())

	require.Error(t, err)
	assert.Contains(t, err.Error(), "CloudName")
	assert.Contains(t, err.Error(), "APISecret")
}

func TestLoadConfig_ShouldRejectMalformedAPIURL(t *testing.T) {
	setCredentials(t)
	t.Setenv("CLOUDINARY_API_URL", "not a url")

	_, err := loadConfig(viper.New())

	require.Error(t, err)
	assert.Contains(t, err.Error(), "APIURL")
}
