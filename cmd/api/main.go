// @title        Running Course API
// @version      1.0
// @description  Generates radial running courses around a position and ranks them by elevation profile.
// @host         localhost:8080
// @BasePath     /
// @schemes      http https
package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "running-course-api/docs"
	"running-course-api/internal/client"
	"running-course-api/internal/config"
	"running-course-api/internal/debugdump"
	"running-course-api/internal/handler"
	"running-course-api/internal/repository"
	"running-course-api/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

// addressBackend is what the address endpoints and the pipeline need from a
// lookup backend.
type addressBackend interface {
	service.ReverseGeocoder
	service.GeoCodeRepository
}

func main() {
	cfg, err := config.LoadConfig("./configs")
	if err != nil {
		log.Fatal().Err(err).Msg("cannot load config")
	}
	setupLogger(cfg.LogLevel, cfg.LogPretty)

	ctx := context.Background()

	// Address backend
	var addresses addressBackend
	switch cfg.AddressBackend {
	case config.AddressBackendPostGIS:
		conn, err := pgxpool.New(ctx, cfg.DBSource)
		if err != nil {
			log.Fatal().Err(err).Msg("cannot connect to db")
		}
		defer conn.Close()

		repo := repository.NewRepository(conn)
		if err := repo.EnsureSchema(ctx); err != nil {
			log.Fatal().Err(err).Msg("cannot prepare address schema")
		}
		addresses = repo
	default:
		addresses = client.NewKakaoClient(cfg.KakaoBaseURL, cfg.KakaoRESTAPIKey)
	}
	log.Info().Str("backend", cfg.AddressBackend).Msg("address backend ready")

	// External clients
	elevationClient := client.NewGoogleElevationClient(cfg.GoogleElevationURL, cfg.GoogleMapsAPIKey, cfg.ElevationMaxBatch)
	geolocationClient := client.NewGoogleGeolocationClient(cfg.GoogleGeolocationURL, cfg.GoogleMapsAPIKey)

	gemini, err := client.NewGeminiClient(ctx, cfg.GeminiAPIKey, cfg.GeminiModel)
	if err != nil {
		log.Fatal().Err(err).Msg("cannot create gemini client")
	}
	defer gemini.Close()

	// Initialize layers
	elevationService := service.NewElevationService(elevationClient)
	addressService := service.NewAddressService(addresses, cfg.AddressLookupDelay)
	recommendationService := service.NewRecommendationService(gemini, service.RecommendOptions{
		Timeout:     cfg.ModelTimeout,
		MaxAttempts: cfg.ModelMaxAttempts,
		Backoff:     cfg.ModelRetryBackoff,
	})
	courseService := service.NewCourseService(elevationService, addressService, recommendationService, service.CourseOptions{
		PipelineTimeout: cfg.PipelineTimeout,
		PaceMinPerKm:    cfg.PaceMinPerKm,
		Dumper:          debugdump.New(cfg.DebugDumpDir, cfg.DebugDumpCompress),
	})
	geoCodeService := service.NewGeoCodeService(addresses)
	reverseGeocodeService := service.NewReverseGeoCodeService(addresses)

	courseHandler := handler.NewCourseHandler(courseService)
	elevationHandler := handler.NewElevationHandler(elevationService)
	geoCodeHandler := handler.NewGeoCodeHandler(geoCodeService)
	reverseGeocodeHandler := handler.NewReverseGeocodeHandler(reverseGeocodeService)
	geolocationHandler := handler.NewGeolocationHandler(geolocationClient)

	if !cfg.LogPretty {
		gin.SetMode(gin.ReleaseMode)
	}
	r := gin.New()
	r.Use(gin.Recovery(), handler.RequestID(), handler.AccessLog(), handler.CORS(cfg.CORSAllowedOrigins))

	r.GET("/health", handler.Health)
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	api := r.Group("/api")
	api.POST("/courses/generate", courseHandler.Generate)
	api.POST("/elevation", elevationHandler.Batch)
	api.GET("/elevation/single", elevationHandler.Single)
	api.GET("/geocode", geoCodeHandler.GeoCode)
	api.GET("/reverse-geocode", reverseGeocodeHandler.ReverseGeocode)
	api.POST("/geolocation", geolocationHandler.Locate)

	srv := &http.Server{
		Addr:        cfg.ServerAddress,
		Handler:     r,
		ReadTimeout: 15 * time.Second,
		// leave room for the pipeline deadline to fire and its failure body to be written
		WriteTimeout: cfg.PipelineTimeout + 5*time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.Info().Str("addr", cfg.ServerAddress).Msg("server starting")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("server failed")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("server forced to shutdown")
		return
	}
	log.Info().Msg("server exited")
}

func setupLogger(level string, pretty bool) {
	lvl, err := zerolog.ParseLevel(level)
	if err != nil || lvl == zerolog.NoLevel {
		lvl = zerolog.InfoLevel
	}
	zerolog.SetGlobalLevel(lvl)
	zerolog.TimeFieldFormat = time.RFC3339Nano

	if pretty {
		log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339})
	}
	log.Logger = log.Logger.With().Str("service", "running-course-api").Logger()
	zerolog.DefaultContextLogger = &log.Logger
}
