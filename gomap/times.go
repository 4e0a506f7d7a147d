package gomap

import (
	"fmt"
	"reflect"
	"time"

	"github.com/signadot/laxjson/ir"
)

// TimeMillisConverter maps time.Time to milliseconds since the Unix
// epoch and back. Decoded times are in UTC.
type TimeMillisConverter struct{}

func (TimeMillisConverter) ToIR(v any) (*ir.Node, error) {
	t, ok := v.(time.Time)
	if !ok {
		return nil, fmt.Errorf("time millis converter: got %T, need time.Time", v)
	}
	return ir.FromInt(t.UnixMilli()), nil
}

func (TimeMillisConverter) FromIR(y *ir.Node, _ reflect.Type) (any, error) {
	return time.UnixMilli(y.AsInt64()).UTC(), nil
}

// TimeLayoutConverter maps time.Time to a string in a fixed layout and
// location. Layout and location never change after construction, so one
// converter value is safe to share between goroutines.
type TimeLayoutConverter struct {
	layout string
	loc    *time.Location
}

// NewTimeLayoutConverter creates a converter for the given layout. A nil
// location means time.Local, matching time.Parse.
func NewTimeLayoutConverter(layout string, loc *time.Location) *TimeLayoutConverter {
	if loc == nil {
		loc = time.Local
	}
	return &TimeLayoutConverter{layout: layout, loc: loc}
}

func (c *TimeLayoutConverter) ToIR(v any) (*ir.Node, error) {
	t, ok := v.(time.Time)
	if !ok {
		return nil, fmt.Errorf("time layout converter: got %T, need time.Time", v)
	}
	return ir.FromString(t.In(c.loc).Format(c.layout)), nil
}

func (c *TimeLayoutConverter) FromIR(y *ir.Node, _ reflect.Type) (any, error) {
	t, err := time.ParseInLocation(c.layout, y.AsString(), c.loc)
	if err != nil {
		return nil, err
	}
	return t, nil
}

// ISOTimeConverter returns a layout converter for the interchange form
// 2006-01-02T15:04:05.000Z in UTC, with a literal trailing Z.
func ISOTimeConverter() *TimeLayoutConverter {
	return NewTimeLayoutConverter("2006-01-02T15:04:05.000Z", time.UTC)
}
