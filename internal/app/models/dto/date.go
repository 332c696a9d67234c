package dto

import (
	"encoding/json"
	"reflect"
	"time"
)

// DateLayout is the wire format of calendar dates
const DateLayout = "2006-01-02"

// Date is a calendar date encoded as "YYYY-MM-DD"
type Date struct {
	time.Time
}

// NewDate truncates t to its calendar date
func NewDate(t time.Time) Date {
	return Date{Time: time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)}
}

// DatePtr converts an optional time to an optional Date
func DatePtr(t *time.Time) *Date {
	if t == nil {
		return nil
	}
	d := NewDate(*t)
	return &d
}

// MarshalJSON implements json.Marshaler
func (d Date) MarshalJSON() ([]byte, error) {
	return json.Marshal(d.Format(DateLayout))
}

// UnmarshalJSON implements json.Unmarshaler. Parse failures are reported as
// type errors so the decoder attaches the field name.
func (d *Date) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return &json.UnmarshalTypeError{Value: string(data), Type: reflect.TypeOf(Date{})}
	}
	t, err := time.Parse(DateLayout, s)
	if err != nil {
		return &json.UnmarshalTypeError{Value: "string " + s, Type: reflect.TypeOf(Date{})}
	}
	d.Time = t
	return nil
}

// DateTime returns the optional date as a time pointer
func (d *Date) DateTime() *time.Time {
	if d == nil {
		return nil
	}
	t := d.Time
	return &t
}
