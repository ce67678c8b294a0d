// Package menu contains the HTTP handlers for the menu item resource.
//
// Each exported function is a factory: it receives the storage once at
// route registration and returns the http.HandlerFunc that runs on every
// request. The storage is the only thing the handlers share.
//
//	router.HandleFunc("POST /menu", menu.New(storage))
package menu

import (
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"math"
	"net/http"

	"github.com/Shadowrithik/Modify-data2/internal/storage"
	"github.com/Shadowrithik/Modify-data2/internal/types"
	"github.com/Shadowrithik/Modify-data2/internal/utils/response"
)

// Fixed client-facing messages.
const (
	MsgRequired = "Name and price are required"
	MsgNotFound = "Menu item not found"
	MsgDeleted  = "Menu item deleted successfully"
)

// ─────────────────────────────────────────────────────────────────────────────
// New handles POST /menu
//
// Request body (JSON):
//
//	{ "name": "Burger", "description": "Double patty", "price": 9.5 }
//
// Success response (201 Created): the stored record, including its id.
//
// Error responses:
//
//	400 Bad Request  — name or price missing/falsy, or undecodable body
//	500 Internal     — cast, schema or database error
//
// ─────────────────────────────────────────────────────────────────────────────
func New(storage storage.Storage) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		slog.Info("creating a menu item")

		fields, err := decodeFields(r)
		if err != nil {
			response.WriteJSON(w, http.StatusBadRequest, response.GeneralError(err))
			return
		}

		// Zero, false and "" count as missing, so a price of 0 is rejected
		// here even though the schema itself accepts it.
		if !truthy(fields[types.FieldName]) || !truthy(fields[types.FieldPrice]) {
			response.WriteJSON(w, http.StatusBadRequest, response.Error(MsgRequired))
			return
		}

		var draft types.Draft
		if err := draft.Apply(fields); err != nil {
			slog.Error("error casting menu item", slog.String("error", err.Error()))
			response.WriteJSON(w, http.StatusInternalServerError, response.GeneralError(err))
			return
		}

		item, err := storage.CreateMenuItem(r.Context(), draft)
		if err != nil {
			slog.Error("error creating menu item", slog.String("error", err.Error()))
			response.WriteJSON(w, http.StatusInternalServerError, response.GeneralError(err))
			return
		}

		slog.Info("menu item created", slog.String("id", item.ID))
		response.WriteJSON(w, http.StatusCreated, item)
	}
}

// ─────────────────────────────────────────────────────────────────────────────
// GetList handles GET /menu
// Returns a JSON array of every menu item; [] when there are none.
// ─────────────────────────────────────────────────────────────────────────────
func GetList(storage storage.Storage) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		slog.Info("getting all menu items")

		items, err := storage.GetMenuItems(r.Context())
		if err != nil {
			slog.Error("error getting menu items", slog.String("error", err.Error()))
			response.WriteJSON(w, http.StatusInternalServerError, response.GeneralError(err))
			return
		}

		response.WriteJSON(w, http.StatusOK, items)
	}
}

// ─────────────────────────────────────────────────────────────────────────────
// Update handles PUT /menu/{id}
// Applies any subset of name, description and price to the stored item.
// The merged record must still pass the schema.
//
// Error responses:
//
//	400 Bad Request  — undecodable body
//	404 Not Found    — no item with this id
//	500 Internal     — malformed id, cast, schema or database error
//
// ─────────────────────────────────────────────────────────────────────────────
func Update(storage storage.Storage) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := r.PathValue("id")
		slog.Info("updating a menu item", slog.String("id", id))

		fields, err := decodeFields(r)
		if err != nil {
			response.WriteJSON(w, http.StatusBadRequest, response.GeneralError(err))
			return
		}

		item, err := storage.UpdateMenuItemByID(r.Context(), id, fields)
		if err != nil {
			writeStoreError(w, id, "error updating menu item", err)
			return
		}

		slog.Info("menu item updated", slog.String("id", id))
		response.WriteJSON(w, http.StatusOK, item)
	}
}

// ─────────────────────────────────────────────────────────────────────────────
// Delete handles DELETE /menu/{id}
// ─────────────────────────────────────────────────────────────────────────────
func Delete(storage storage.Storage) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := r.PathValue("id")
		slog.Info("deleting a menu item", slog.String("id", id))

		if err := storage.DeleteMenuItemByID(r.Context(), id); err != nil {
			writeStoreError(w, id, "error deleting menu item", err)
			return
		}

		slog.Info("menu item deleted", slog.String("id", id))
		response.WriteJSON(w, http.StatusOK, response.Message{Message: MsgDeleted})
	}
}

// Health handles GET /healthz by pinging the store.
func Health(storage storage.Storage) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := storage.Ping(r.Context()); err != nil {
			slog.Warn("storage ping failed", slog.String("error", err.Error()))
			response.WriteJSON(w, http.StatusServiceUnavailable, response.GeneralError(err))
			return
		}

		response.WriteJSON(w, http.StatusOK, response.Status{Status: "ok"})
	}
}

func writeStoreError(w http.ResponseWriter, id, msg string, err error) {
	if errors.Is(err, storage.ErrNotFound) {
		response.WriteJSON(w, http.StatusNotFound, response.Error(MsgNotFound))
		return
	}

	slog.Error(msg, slog.String("id", id), slog.String("error", err.Error()))
	response.WriteJSON(w, http.StatusInternalServerError, response.GeneralError(err))
}

// decodeFields reads the request body as a JSON object. An empty body
// decodes to an empty set of fields.
func decodeFields(r *http.Request) (map[string]any, error) {
	fields := make(map[string]any)

	err := json.NewDecoder(r.Body).Decode(&fields)
	if errors.Is(err, io.EOF) {
		return map[string]any{}, nil
	}
	if err != nil {
		return nil, err
	}

	// A literal null body leaves the map nil.
	if fields == nil {
		fields = map[string]any{}
	}
	return fields, nil
}

// truthy reports whether a decoded JSON value counts as present.
// null, false, 0, NaN and "" do not; objects and arrays always do.
func truthy(v any) bool {
	switch x := v.(type) {
	case nil:
		return false
	case bool:
		return x
	case float64:
		return x != 0 && !math.IsNaN(x)
	case string:
		return x != ""
	default:
		return true
	}
}
