package handler

import (
	stderrors "errors"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/sirupsen/logrus"

	"hotelhub/internal/errors"
)

// NewHTTPErrorHandler renders every error returned by a handler or middleware
// as the error envelope. Unclassified failures are logged and, outside
// production, carry the stack recorded where they were raised.
func NewHTTPErrorHandler(production bool) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}

		httpErr := errors.MapErrorToHTTP(err)
		if stderrors.Is(err, echo.ErrNotFound) {
			httpErr.Message = "Route not found"
		}
		resp := httpErr.ToErrorResponse()

		if !httpErr.Classified {
			logrus.WithFields(logrus.Fields{
				"request_id": c.Response().Header().Get(echo.HeaderXRequestID),
				"method":     c.Request().Method,
				"path":       c.Path(),
			}).WithError(err).Error("unhandled request error")

			if !production {
				resp.Message = err.Error()
				resp.Stack = errors.StackOf(err)
			}
		}

		if c.Request().Method == http.MethodHead {
			err = c.NoContent(httpErr.StatusCode)
		} else {
			err = c.JSON(httpErr.StatusCode, resp)
		}
		if err != nil {
			logrus.WithError(err).Warn("write error response")
		}
	}
}
