package main

import (
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/valyala/fasthttp"

	"github.com/cctv-effect/cctv_server/internal"
	"github.com/cctv-effect/cctv_server/internal/health"
	"github.com/cctv-effect/cctv_server/internal/provider"
	"github.com/cctv-effect/cctv_server/internal/video"
)

const version = "1.0.0"

func main() {
	config, err := internal.LoadConfig()
	if err != nil {
		log.Fatal().Err(err).Msg("Error loading config")
		return
	}

	level, err := zerolog.ParseLevel(config.Log.Level)
	if err != nil {
		log.Warn().Str("level", config.Log.Level).Msg("Unknown log level, using info")
		level = zerolog.InfoLevel
	}
	zerolog.SetGlobalLevel(level)

	client, err := provider.NewClient(provider.Config{
		CloudName: config.Cloudinary.CloudName,
		APIKey:    config.Cloudinary.APIKey,
		APISecret: config.Cloudinary.APISecret,
		APIURL:    config.Cloudinary.APIURL,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("Error initializing cloudinary client")
		return
	}
	log.Info().
		Str("cloud", config.Cloudinary.CloudName).
		Str("folder", provider.Folder).
		Msg("Cloudinary client initialized")

	healthEndpoints := health.NewEndpoints(version, config.Upload.SourcePath)
	videoEndpoints := video.NewEndpoints(client, config.Upload.SourcePath)

	requestHandler := internal.NewRequestHandler(config, healthEndpoints, videoEndpoints)

	addr := ":" + config.Server.Port
	log.Info().Str("addr", addr).Msg("Starting server")
	if err := fasthttp.ListenAndServe(addr, requestHandler); err != nil {
		log.Fatal().Err(err).Msg("Error starting server")
	}
}
