package api

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/wallpaperd/wallpaperd/internal/handler"
	"github.com/wallpaperd/wallpaperd/internal/provider"

	"github.com/gorilla/mux"
)

func (a *API) pictureHandler(w http.ResponseWriter, r *http.Request) *handler.Error {
	vars := mux.Vars(r)
	providerID := vars["provider"]

	image, err := a.Cache.Get(r.Context(), providerID, r.URL.Query())
	if err != nil {
		return a.pictureError(r, providerID, err)
	}

	w.Header().Set("Content-Type", image.ContentType)
	w.Write(image.Data)

	return nil
}

func (a *API) pictureError(r *http.Request, providerID string, err error) *handler.Error {
	var misconfiguredErr *provider.MisconfiguredError
	var upstreamErr *provider.UpstreamError

	switch {
	case errors.Is(err, provider.ErrUnknownProvider):
		return handler.NotFound(fmt.Sprintf("unknown provider: %s", providerID))
	case errors.As(err, &misconfiguredErr):
		a.logError(r, "provider misconfigured", err)
		return handler.ServerError(err.Error())
	case errors.As(err, &upstreamErr):
		a.logError(r, "error fetching picture from upstream", err)
		return handler.BadGateway(fmt.Sprintf("failed to fetch picture from %s", providerID))
	default:
		a.logError(r, "error getting picture", err)
		return handler.InternalServerError()
	}
}
