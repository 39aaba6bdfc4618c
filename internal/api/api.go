package api

import (
	"net/http"
	"time"

	"github.com/wallpaperd/wallpaperd/internal/cache"
	"github.com/wallpaperd/wallpaperd/internal/handler"
	"github.com/wallpaperd/wallpaperd/internal/health"
	"github.com/wallpaperd/wallpaperd/internal/logger"
	"github.com/wallpaperd/wallpaperd/internal/tracing"

	"github.com/gorilla/mux"
)

// API is a http api
type API struct {
	Cache          *cache.Store
	HealthChecker  *health.Checker
	Log            *logger.Logger
	Tracer         *tracing.Tracer
	HandlerTimeout time.Duration
}

// Utility methods for logging
func (a *API) logError(r *http.Request, message string, err error) {
	a.Log.Errorw(message, handler.LogFields(r, "error", err)...)
}

// Router returns a http router
func (a *API) Router() http.Handler {
	router := mux.NewRouter()

	router.NotFoundHandler = handler.Handler(a.notFoundHandler)

	// Redirect trailing slashes
	router.StrictSlash(true)

	// Route listing
	router.Handle("/", handler.Handler(a.indexHandler)).Methods("GET")

	// Healthcheck
	router.Handle("/health", handler.Health(a.HealthChecker)).Methods("GET")

	// Picture routes
	router.Handle("/picture/{provider}", handler.Handler(a.pictureHandler)).Methods("GET")

	// Query parameters (provider-scoped):
	// unsplash:
	// ?theme={theme} - Search term for the random photo
	// lorem_picsum:
	// ?w={width} - Image width, default 1920
	// ?h={height} - Image height, default 1080
	// ?grayscale - Grayscale the image
	// ?blur - Blur the image
	// ?blur={amount} - Blur the image by {amount}
	// ?webp - Return the image as webp

	routeMatcher := &handler.MuxRouteMatcher{Router: router}

	// Set up handlers for adding a request id, handling panics, request logging, setting CORS headers,
	// collecting metrics, tracing, and handler execution timeout
	return handler.AddRequestID(
		handler.Recovery(a.Log,
			handler.Logger(a.Log,
				handler.CORS(nil,
					handler.Metrics(
						handler.Tracer(a.Tracer,
							http.TimeoutHandler(router, a.HandlerTimeout, "Something went wrong. Timed out."),
							routeMatcher),
						routeMatcher)))))
}

// Handle not found errors
var notFoundError = &handler.Error{
	Message: "page not found",
	Code:    http.StatusNotFound,
}

func (a *API) notFoundHandler(w http.ResponseWriter, r *http.Request) *handler.Error {
	return notFoundError
}
