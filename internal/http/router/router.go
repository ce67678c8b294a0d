// Package router builds the HTTP route table for the menu API.
package router

import (
	"log/slog"
	"net/http"

	"github.com/Shadowrithik/Modify-data2/internal/http/handlers/menu"
	"github.com/Shadowrithik/Modify-data2/internal/http/middleware"
	"github.com/Shadowrithik/Modify-data2/internal/storage"
)

// New returns the application handler.
//
// Route table:
//
//	POST   /menu       → create a menu item
//	GET    /menu       → list all menu items
//	PUT    /menu/{id}  → update a menu item
//	DELETE /menu/{id}  → delete a menu item
//	GET    /healthz    → storage ping
//	GET    /metrics    → Prometheus metrics
func New(store storage.Storage, metrics *middleware.Metrics, log *slog.Logger) http.Handler {
	router := http.NewServeMux()

	router.HandleFunc("POST /menu", metrics.Wrap("menu", menu.New(store)))
	router.HandleFunc("GET /menu", metrics.Wrap("menu", menu.GetList(store)))
	router.HandleFunc("PUT /menu/{id}", metrics.Wrap("menu_item", menu.Update(store)))
	router.HandleFunc("DELETE /menu/{id}", metrics.Wrap("menu_item", menu.Delete(store)))

	router.HandleFunc("GET /healthz", metrics.Wrap("healthz", menu.Health(store)))
	router.Handle("GET /metrics", metrics.Handler())

	return middleware.Logger(log, router)
}
