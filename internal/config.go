package internal

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

const (
	configFilePath = "files/config.yaml"
	dotEnvPath     = ".env"

	DefaultSourcePath = "static/videos/video.mp4"
)

type Config struct {
	Cloudinary CloudinaryConfig `mapstructure:"cloudinary"`
	Server     ServerConfig     `mapstructure:"server"`
	Upload     UploadConfig     `mapstructure:"upload"`
	Log        LogConfig        `mapstructure:"log"`
}

type CloudinaryConfig struct {
	CloudName string `mapstructure:"cloud_name" validate:"required"`
	APIKey    string `mapstructure:"api_key" validate:"required"`
	APISecret string `mapstructure:"api_secret" validate:"required"`
	APIURL    string `mapstructure:"api_url" validate:"omitempty,url"`
}

type ServerConfig struct {
	Port           string   `mapstructure:"port" validate:"required"`
	AllowedOrigins []string `mapstructure:"allowed_origins"`
}

type UploadConfig struct {
	// SourcePath is the local video every upload transforms. It is never taken from the request.
	SourcePath string `mapstructure:"source_path" validate:"required"`
}

type LogConfig struct {
	Level string `mapstructure:"level"`
}

var envBindings = map[string][]string{
	"cloudinary.cloud_name":  {"CLOUDINARY_CLOUD_NAME", "VITE_CLOUDINARY_CLOUD_NAME"},
	"cloudinary.api_key":     {"CLOUDINARY_API_KEY", "VITE_CLOUDINARY_API_KEY"},
	"cloudinary.api_secret":  {"CLOUDINARY_API_SECRET", "VITE_CLOUDINARY_API_SECRET"},
	"cloudinary.api_url":     {"CLOUDINARY_API_URL"},
	"server.port":            {"PORT"},
	"server.allowed_origins": {"ALLOWED_ORIGINS"},
	"upload.source_path":     {"UPLOAD_SOURCE_PATH"},
	"log.level":              {"LOG_LEVEL"},
}

func LoadConfig() (*Config, error) {
	// .env is optional; real environment variables win over it
	if err := godotenv.Load(dotEnvPath); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("failed to read %s: %w", dotEnvPath, err)
	}

	v := viper.New()
	v.SetConfigFile(configFilePath)
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) && !errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	return loadConfig(v)
}

func loadConfig(v *viper.Viper) (*Config, error) {
	v.SetDefault("server.port", "8080")
	v.SetDefault("server.allowed_origins", []string{"*"})
	v.SetDefault("upload.source_path", DefaultSourcePath)
	v.SetDefault("log.level", "info")

	for key, envs := range envBindings {
		if err := v.BindEnv(append([]string{key}, envs...)...); err != nil {
			return nil, fmt.Errorf("failed to bind env for %s: %w", key, err)
		}
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	config.Server.AllowedOrigins = splitOrigins(config.Server.AllowedOrigins)

	if err := validator.New().Struct(config); err != nil {
		var validationErrors validator.ValidationErrors
		if errors.As(err, &validationErrors) {
			fields := make([]string, 0, len(validationErrors))
			for _, fe := range validationErrors {
				fields = append(fields, fe.Namespace())
			}
			return nil, fmt.Errorf("invalid config: %s", strings.Join(fields, ", "))
		}
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return &config, nil
}

// env values arrive as a single comma separated entry
func splitOrigins(origins []string) []string {
	out := make([]string, 0, len(origins))
	for _, o := range origins {
		for _, part := range strings.Split(o, ",") {
			if part = strings.TrimSpace(part); part != "" {
				out = append(out, part)
			}
		}
	}
	return out
}
