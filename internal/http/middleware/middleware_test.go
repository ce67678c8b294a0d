package middleware_test

import (
	"bytes"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	. "github.com/smartystreets/goconvey/convey"

	"github.com/Shadowrithik/Modify-data2/internal/http/middleware"
)

func status(code int) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(code)
	}
}

func TestMetrics(t *testing.T) {
	Convey("Given wrapped handlers", t, func() {
		m := middleware.NewMetrics()
		ok := m.Wrap("menu", status(http.StatusOK))
		missing := m.Wrap("menu_item", status(http.StatusNotFound))
		broken := m.Wrap("menu_item", status(http.StatusInternalServerError))

		Convey("When requests are served", func() {
			for i := 0; i < 2; i++ {
				ok(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/menu", nil))
			}
			missing(httptest.NewRecorder(), httptest.NewRequest(http.MethodDelete, "/menu/x", nil))
			broken(httptest.NewRecorder(), httptest.NewRequest(http.MethodPut, "/menu/x", nil))

			Convey("Then requests are counted by route, method and status", func() {
				count, err := testutil.GatherAndCount(m.Registry(), "menu_api_http_requests_total")
				So(err, ShouldBeNil)
				So(count, ShouldEqual, 3)
			})

			Convey("Then only failed requests are counted as errors", func() {
				count, err := testutil.GatherAndCount(m.Registry(), "menu_api_http_errors_total")
				So(err, ShouldBeNil)
				So(count, ShouldEqual, 2)
			})

			Convey("Then latency is observed per route and method", func() {
				count, err := testutil.GatherAndCount(m.Registry(), "menu_api_http_request_duration_seconds")
				So(err, ShouldBeNil)
				So(count, ShouldEqual, 3)
			})
		})

		Convey("A handler that never calls WriteHeader counts as 200", func() {
			silent := m.Wrap("menu", func(w http.ResponseWriter, r *http.Request) {
				_, _ = w.Write([]byte("[]"))
			})
			w := httptest.NewRecorder()
			silent(w, httptest.NewRequest(http.MethodGet, "/menu", nil))

			So(w.Code, ShouldEqual, http.StatusOK)
			count, err := testutil.GatherAndCount(m.Registry(), "menu_api_http_errors_total")
			So(err, ShouldBeNil)
			So(count, ShouldEqual, 0)
		})
	})
}

func TestLogger(t *testing.T) {
	Convey("Given the request logger", t, func() {
		var buf bytes.Buffer
		log := slog.New(slog.NewTextHandler(&buf, nil))
		h := middleware.Logger(log, status(http.StatusCreated))

		Convey("It logs method, path and status", func() {
			h.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodPost, "/menu", nil))

			So(buf.String(), ShouldContainSubstring, "request completed")
			So(buf.String(), ShouldContainSubstring, "method=POST")
			So(buf.String(), ShouldContainSubstring, "path=/menu")
			So(buf.String(), ShouldContainSubstring, "status=201")
		})
	})
}
