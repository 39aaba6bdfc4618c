package api

import (
	"encoding/json"
	"net/http"

	"github.com/wallpaperd/wallpaperd/internal/handler"
)

// Route describes a route for the route listing
type Route struct {
	Route       string   `json:"route"`
	Methods     []string `json:"methods"`
	Description string   `json:"description"`
}

var routes = []Route{
	{
		Route:       "/",
		Methods:     []string{"GET"},
		Description: "List all routes",
	},
	{
		Route:       "/picture/{provider}",
		Methods:     []string{"GET"},
		Description: "Fetch a picture from a provider with optional query params",
	},
	{
		Route:       "/health",
		Methods:     []string{"GET"},
		Description: "Healthcheck status",
	},
}

func (a *API) indexHandler(w http.ResponseWriter, r *http.Request) *handler.Error {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(routes); err != nil {
		return handler.InternalServerError()
	}

	return nil
}
