package response_test

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	. "github.com/smartystreets/goconvey/convey"

	"github.com/Shadowrithik/Modify-data2/internal/utils/response"
)

func TestWriteJSON(t *testing.T) {
	Convey("Given a recorder", t, func() {
		w := httptest.NewRecorder()

		Convey("WriteJSON sets the status, content type and body", func() {
			err := response.WriteJSON(w, http.StatusNotFound, response.Error("Menu item not found"))

			So(err, ShouldBeNil)
			So(w.Code, ShouldEqual, http.StatusNotFound)
			So(w.Header().Get("Content-Type"), ShouldEqual, "application/json")
			So(strings.TrimSpace(w.Body.String()), ShouldEqual, `{"error":"Menu item not found"}`)
		})

		Convey("GeneralError exposes the error message", func() {
			response.WriteJSON(w, http.StatusInternalServerError, response.GeneralError(errors.New("boom")))
			So(strings.TrimSpace(w.Body.String()), ShouldEqual, `{"error":"boom"}`)
		})

		Convey("Message uses the message key", func() {
			response.WriteJSON(w, http.StatusOK, response.Message{Message: "done"})
			So(strings.TrimSpace(w.Body.String()), ShouldEqual, `{"message":"done"}`)
		})
	})
}
