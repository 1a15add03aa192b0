package handler

import (
	"encoding/json"
	stderrors "errors"
	"net/http"
	"reflect"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"hotelhub/internal/errors"
)

// Response is the success envelope shared by every endpoint.
type Response struct {
	Status  string      `json:"status" example:"success"`
	Message string      `json:"message,omitempty"`
	Results *int        `json:"results,omitempty"`
	Data    interface{} `json:"data,omitempty"`
}

// MessageResponse is returned by endpoints that carry no data.
type MessageResponse struct {
	Status  string `json:"status" example:"success"`
	Message string `json:"message"`
}

func respond(c echo.Context, code int, message string, data interface{}) error {
	return c.JSON(code, Response{
		Status:  "success",
		Message: message,
		Data:    data,
	})
}

// respondList wraps items under key and reports their count in results.
func respondList[T any](c echo.Context, key string, items []T) error {
	if items == nil {
		items = []T{}
	}
	n := len(items)
	return c.JSON(http.StatusOK, Response{
		Status:  "success",
		Results: &n,
		Data:    map[string]interface{}{key: items},
	})
}

// bind decodes and validates the request body into req.
func bind(c echo.Context, req interface{}) error {
	if err := c.Bind(req); err != nil {
		return bindError(err)
	}
	return c.Validate(req)
}

// bindError turns a body decoding failure into a validation error naming the
// offending field. Failures with no field are reported against "body".
func bindError(err error) error {
	var typeErr *json.UnmarshalTypeError
	if stderrors.As(err, &typeErr) && typeErr.Field != "" {
		return errors.Validation("", map[string]string{typeErr.Field: expectedType(typeErr.Type)})
	}
	var httpErr *echo.HTTPError
	if stderrors.As(err, &httpErr) && httpErr.Code != http.StatusBadRequest {
		return err
	}
	return errors.Validation("invalid request body", map[string]string{"body": "must be valid JSON"})
}

func expectedType(t reflect.Type) string {
	if t == nil {
		return "is invalid"
	}
	if t == dateType {
		return "must be a date in YYYY-MM-DD or RFC 3339 format"
	}
	switch t.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return "must be an integer"
	case reflect.Float32, reflect.Float64:
		return "must be a number"
	case reflect.Bool:
		return "must be a boolean"
	case reflect.String:
		return "must be a string"
	case reflect.Slice, reflect.Array:
		return "must be a list"
	default:
		return "must be an object"
	}
}

func pathID(c echo.Context, name string) (uuid.UUID, error) {
	id, err := uuid.Parse(c.Param(name))
	if err != nil {
		return uuid.Nil, errors.Cast(name, err)
	}
	return id, nil
}
