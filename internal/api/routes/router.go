package routes

import (
	"net/http"

	"github.com/farmguru/backend/internal/api/handlers"
	"github.com/farmguru/backend/internal/api/middleware"
	"github.com/farmguru/backend/internal/infrastructure/observability"
)

// Router holds all route handlers
type Router struct {
	mux *http.ServeMux

	queryHandler      *handlers.QueryHandler
	imageHandler      *handlers.ImageHandler
	transcribeHandler *handlers.TranscribeHandler
	weatherHandler    *handlers.WeatherHandler
	marketHandler     *handlers.MarketHandler
	schemeHandler     *handlers.SchemeHandler
	advisoryHandler   *handlers.AdvisoryHandler
	communityHandler  *handlers.CommunityHandler
	sseHandler        *handlers.SSEHandler

	cacheMiddleware *middleware.CacheMiddleware
	metrics         *observability.Metrics
	uploadDir       string
}

// NewRouter creates a new router
func NewRouter(
	queryHandler *handlers.QueryHandler,
	imageHandler *handlers.ImageHandler,
	transcribeHandler *handlers.TranscribeHandler,
	weatherHandler *handlers.WeatherHandler,
	marketHandler *handlers.MarketHandler,
	schemeHandler *handlers.SchemeHandler,
	advisoryHandler *handlers.AdvisoryHandler,
	communityHandler *handlers.CommunityHandler,
	sseHandler *handlers.SSEHandler,
	cacheMiddleware *middleware.CacheMiddleware,
	metrics *observability.Metrics,
	uploadDir string,
) *Router {
	return &Router{
		mux: http.NewServeMux(),

		queryHandler:      queryHandler,
		imageHandler:      imageHandler,
		transcribeHandler: transcribeHandler,
		weatherHandler:    weatherHandler,
		marketHandler:     marketHandler,
		schemeHandler:     schemeHandler,
		advisoryHandler:   advisoryHandler,
		communityHandler:  communityHandler,
		sseHandler:        sseHandler,

		cacheMiddleware: cacheMiddleware,
		metrics:         metrics,
		uploadDir:       uploadDir,
	}
}

// SetupRoutes configures all application routes
func (r *Router) SetupRoutes() http.Handler {
	// Health check endpoint
	r.mux.HandleFunc("GET /health", func(w http.ResponseWriter, req *http.Request) {
		w.WriteHeader(http.StatusOK)
		if _, err := w.Write([]byte("OK")); err != nil {
			return
		}
	})

	// Query endpoints
	r.mux.HandleFunc("POST /api/query", r.queryHandler.SubmitQuery)
	r.mux.HandleFunc("GET /api/query/history", r.queryHandler.GetHistory)

	// Image endpoints
	r.mux.HandleFunc("POST /api/images", r.imageHandler.UploadImage)
	r.mux.HandleFunc("GET /api/images/{id}", r.imageHandler.GetImage)

	// Voice transcription endpoint
	r.mux.HandleFunc("POST /api/transcribe", r.transcribeHandler.Transcribe)

	// Weather and market endpoints
	r.mux.HandleFunc("GET /api/weather", r.weatherHandler.GetWeather)
	r.mux.HandleFunc("GET /api/market", r.marketHandler.GetMarket)

	// Scheme matching endpoint
	r.mux.HandleFunc("POST /api/schemes/match", r.schemeHandler.MatchSchemes)

	// Crop advisory endpoint
	r.mux.HandleFunc("POST /api/advisory", r.advisoryHandler.GetRecommendation)

	// Community forum endpoints
	r.mux.HandleFunc("POST /api/community/posts", r.communityHandler.CreatePost)
	r.mux.HandleFunc("GET /api/community/posts", r.communityHandler.ListPosts)
	r.mux.HandleFunc("GET /api/community/posts/{id}", r.communityHandler.GetPost)
	r.mux.HandleFunc("PUT /api/community/posts/{id}", r.communityHandler.UpdatePost)
	r.mux.HandleFunc("DELETE /api/community/posts/{id}", r.communityHandler.DeletePost)
	r.mux.HandleFunc("GET /api/community/tags", r.communityHandler.GetTags)

	// Escalation stream for expert dashboards
	if r.sseHandler != nil {
		r.mux.HandleFunc("GET /api/stream/escalations", r.sseHandler.StreamEscalations)
	}

	// Uploaded images are served straight from disk
	if r.uploadDir != "" {
		r.mux.Handle("GET /static/uploads/", http.StripPrefix("/static/uploads/", http.FileServer(http.Dir(r.uploadDir))))
	}

	// Apply middleware in reverse order (last middleware wraps first)
	// CORS must be outermost so cached responses also get CORS headers.
	var handler http.Handler = r.mux
	handler = middleware.LoggingMiddleware(handler)

	if r.cacheMiddleware != nil {
		handler = r.cacheMiddleware.Middleware(handler)
	}

	handler = middleware.ObservabilityMiddleware(r.metrics)(handler)
	handler = middleware.ResponseOptimization(handler)
	handler = middleware.CORSMiddleware(handler)

	return handler
}
