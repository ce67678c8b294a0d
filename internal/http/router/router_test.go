package router_test

import (
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	. "github.com/smartystreets/goconvey/convey"

	"github.com/Shadowrithik/Modify-data2/internal/http/middleware"
	"github.com/Shadowrithik/Modify-data2/internal/http/router"
	"github.com/Shadowrithik/Modify-data2/internal/storage/memory"
	"github.com/Shadowrithik/Modify-data2/internal/types"
)

func do(h http.Handler, method, path, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)
	return w
}

func list(h http.Handler) []types.MenuItem {
	w := do(h, http.MethodGet, "/menu", "")
	So(w.Code, ShouldEqual, http.StatusOK)

	var items []types.MenuItem
	So(json.Unmarshal(w.Body.Bytes(), &items), ShouldBeNil)
	return items
}

func create(h http.Handler, body string) types.MenuItem {
	w := do(h, http.MethodPost, "/menu", body)
	So(w.Code, ShouldEqual, http.StatusCreated)

	var item types.MenuItem
	So(json.Unmarshal(w.Body.Bytes(), &item), ShouldBeNil)
	return item
}

func TestMenuAPI(t *testing.T) {
	Convey("Given the full menu API over an empty store", t, func() {
		log := slog.New(slog.NewTextHandler(io.Discard, nil))
		h := router.New(memory.New(), middleware.NewMetrics(), log)

		Convey("When two items are created", func() {
			burger := create(h, `{"name":"Burger","price":9.5}`)
			fries := create(h, `{"name":"Fries","description":"Salted","price":3}`)

			Convey("Then the list holds both", func() {
				So(list(h), ShouldResemble, []types.MenuItem{burger, fries})
			})

			Convey("Then repeated lists are identical", func() {
				first := do(h, http.MethodGet, "/menu", "").Body.String()
				second := do(h, http.MethodGet, "/menu", "").Body.String()
				So(second, ShouldEqual, first)
			})

			Convey("Then updating the price changes only the price", func() {
				w := do(h, http.MethodPut, "/menu/"+burger.ID, `{"price":12}`)
				So(w.Code, ShouldEqual, http.StatusOK)

				burger.Price = 12
				So(list(h), ShouldResemble, []types.MenuItem{burger, fries})
			})

			Convey("Then deleting removes it and a second delete is 404", func() {
				w := do(h, http.MethodDelete, "/menu/"+burger.ID, "")
				So(w.Code, ShouldEqual, http.StatusOK)
				So(strings.TrimSpace(w.Body.String()), ShouldEqual,
					`{"message":"Menu item deleted successfully"}`)

				So(list(h), ShouldResemble, []types.MenuItem{fries})

				w = do(h, http.MethodDelete, "/menu/"+burger.ID, "")
				So(w.Code, ShouldEqual, http.StatusNotFound)
				So(strings.TrimSpace(w.Body.String()), ShouldEqual, `{"error":"Menu item not found"}`)
			})
		})

		Convey("A zero price is rejected at create time", func() {
			w := do(h, http.MethodPost, "/menu", `{"name":"Water","price":0}`)

			So(w.Code, ShouldEqual, http.StatusBadRequest)
			So(strings.TrimSpace(w.Body.String()), ShouldEqual, `{"error":"Name and price are required"}`)
			So(list(h), ShouldBeEmpty)
		})

		Convey("An unassigned id is 404 for update and delete", func() {
			id := "0b1c7a0e-3d2b-4c55-9a8e-0b7f4e2d1a90"

			So(do(h, http.MethodPut, "/menu/"+id, `{"price":1}`).Code, ShouldEqual, http.StatusNotFound)
			So(do(h, http.MethodDelete, "/menu/"+id, "").Code, ShouldEqual, http.StatusNotFound)
		})

		Convey("Health reports ok", func() {
			So(do(h, http.MethodGet, "/healthz", "").Code, ShouldEqual, http.StatusOK)
		})

		Convey("Metrics are exposed after requests", func() {
			do(h, http.MethodGet, "/menu", "")
			do(h, http.MethodPost, "/menu", `{}`)

			w := do(h, http.MethodGet, "/metrics", "")
			So(w.Code, ShouldEqual, http.StatusOK)
			So(w.Body.String(), ShouldContainSubstring,
				`menu_api_http_requests_total{method="GET",route="menu",status="200"} 1`)
			So(w.Body.String(), ShouldContainSubstring,
				`menu_api_http_errors_total{route="menu",type="client_error"} 1`)
		})

		Convey("Unsupported methods are refused", func() {
			So(do(h, http.MethodPatch, "/menu", "").Code, ShouldEqual, http.StatusMethodNotAllowed)
		})
	})
}
