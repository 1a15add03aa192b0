package handler

import (
	"encoding/json"
	"fmt"
	"reflect"
	"strings"
	"time"
)

const dateOnly = "2006-01-02"

var dateType = reflect.TypeOf(Date{})

// Date accepts either an RFC 3339 timestamp or a plain calendar date in JSON
// bodies and query parameters. Plain dates are taken as midnight UTC.
type Date struct {
	time.Time
}

// UnmarshalJSON reports unparseable values as a type error so the decoder
// attaches the JSON field name.
func (d *Date) UnmarshalJSON(b []byte) error {
	s := strings.Trim(string(b), `"`)
	if s == "" || s == "null" {
		return nil
	}
	t, err := parseDate(s)
	if err != nil {
		return &json.UnmarshalTypeError{Value: "string " + s, Type: dateType}
	}
	d.Time = t
	return nil
}

// UnmarshalParam implements echo.BindUnmarshaler.
func (d *Date) UnmarshalParam(param string) error {
	t, err := parseDate(param)
	if err != nil {
		return err
	}
	d.Time = t
	return nil
}

// parseDate parses an RFC 3339 timestamp or a YYYY-MM-DD date.
func parseDate(s string) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t.UTC(), nil
	}
	if t, err := time.Parse(dateOnly, s); err == nil {
		return t, nil
	}
	return time.Time{}, fmt.Errorf("invalid date %q: use YYYY-MM-DD or RFC 3339", s)
}

func (d *Date) ptr() *time.Time {
	if d == nil || d.IsZero() {
		return nil
	}
	t := d.Time
	return &t
}
