package routes

import (
	"context"
	"net/http"
	"time"

	generativeAI "github.com/FACorreiaa/go-genai-sdk/lib"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/FACorreiaa/go-routeplanner/internal/app/domain/assignment"
	"github.com/FACorreiaa/go-routeplanner/internal/app/domain/extraction"
	"github.com/FACorreiaa/go-routeplanner/internal/app/domain/itinerary"
	"github.com/FACorreiaa/go-routeplanner/internal/app/domain/planner"
	"github.com/FACorreiaa/go-routeplanner/internal/app/domain/suggestions"
	"github.com/FACorreiaa/go-routeplanner/internal/app/middleware"
	"github.com/FACorreiaa/go-routeplanner/internal/pkg/cache"
	"github.com/FACorreiaa/go-routeplanner/internal/pkg/config"
)

// AppHandlers holds the wired services shared by the HTTP server and the CLI.
type AppHandlers struct {
	Store       *itinerary.Store
	Extraction  *extraction.Service
	Suggestions *suggestions.Service
	Planner     *planner.Handler
	Caches      *cache.CacheManager
	Limiter     *middleware.RateLimiter
}

// NewAppHandlers builds every service from configuration. Without a Gemini
// key the API still serves editing routes; model-backed calls fail cleanly.
func NewAppHandlers(ctx context.Context, cfg *config.Config, log *zap.Logger) (*AppHandlers, error) {
	store := itinerary.NewStore(log)
	caches := cache.NewCacheManager(cfg.Extraction.CacheTTL, log)
	assigner := assignment.NewAssigner(assignment.Options{
		Presets:          cfg.Extraction.Presets,
		Essentials:       cfg.Extraction.EssentialWords,
		CaseSensitiveMem: cfg.Extraction.CaseSensitive,
	}, log)

	var extractor extraction.Extractor = extraction.Unavailable{Reason: "GEMINI_API_KEY is not set"}
	var generator suggestions.ResponseGenerator
	if cfg.Gemini.APIKey != "" {
		gemini, err := extraction.NewGeminiExtractor(ctx, cfg.Gemini.APIKey, cfg.Gemini.Model)
		if err != nil {
			return nil, err
		}
		extractor = gemini

		// NewLLMChatClient exits the process on an empty key, hence the guard.
		chat, err := generativeAI.NewLLMChatClient(ctx, cfg.Gemini.APIKey)
		if err != nil {
			log.Warn("Suggestions disabled, failed to create chat client", zap.Error(err))
		} else {
			generator = chat
		}
	} else {
		log.Warn("GEMINI_API_KEY not set, extraction and suggestions are disabled")
	}

	extractionService := extraction.NewService(extractor, store, assigner, caches.Extractions, extraction.Config{
		MaxImageEdge: cfg.Extraction.MaxImageEdge,
		Timeout:      cfg.Extraction.Timeout,
	}, log)
	suggestionService := suggestions.NewService(generator, store, log)

	return &AppHandlers{
		Store:       store,
		Extraction:  extractionService,
		Suggestions: suggestionService,
		Planner:     planner.NewHandler(store, extractionService, suggestionService, assigner.Members(), log),
		Caches:      caches,
		Limiter:     middleware.NewRateLimiter(cfg.Extraction.RatePerMinute, 10*time.Minute, log),
	}, nil
}

// Setup mounts the API and health routes.
func Setup(r *gin.Engine, app *AppHandlers, log *zap.Logger) {
	r.GET("/health", func(c *gin.Context) {
		st := app.Store.Snapshot()
		c.JSON(http.StatusOK, gin.H{
			"status":  "ok",
			"loaded":  st.Itinerary != nil,
			"loading": st.Loading,
			"version": st.Version,
			"caches":  app.Caches.GetAllMetrics(),
		})
	})

	api := r.Group("/api")
	app.Planner.RegisterRoutes(api, app.Limiter.Middleware())

	log.Info("Routes registered", zap.Int("count", len(r.Routes())))
}
