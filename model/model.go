// Package model holds all external facing types: rows, the typed
// value variant they are made of, and query specifications.
package model

import (
	"encoding/json"
	"fmt"
)

type Kind int

const (
	KindNull Kind = iota
	KindText
	KindInt
	KindFloat
)

// Value is one cell of a row: a tagged variant over the types a GTFS
// column can hold. The zero value is null.
type Value struct {
	Kind  Kind
	Text  string
	Int   int64
	Float float64
}

var Null = Value{}

func String(s string) Value {
	return Value{Kind: KindText, Text: s}
}

func Int64(i int64) Value {
	return Value{Kind: KindInt, Int: i}
}

func Float64(f float64) Value {
	return Value{Kind: KindFloat, Float: f}
}

func (v Value) IsNull() bool {
	return v.Kind == KindNull
}

// Arg returns the value as a database/sql argument.
func (v Value) Arg() any {
	switch v.Kind {
	case KindText:
		return v.Text
	case KindInt:
		return v.Int
	case KindFloat:
		return v.Float
	}
	return nil
}

func (v Value) Equal(o Value) bool {
	return v == o
}

func (v Value) MarshalJSON() ([]byte, error) {
	return json.Marshal(v.Arg())
}

func (v Value) String() string {
	switch v.Kind {
	case KindText:
		return v.Text
	case KindInt:
		return fmt.Sprintf("%d", v.Int)
	case KindFloat:
		return fmt.Sprintf("%g", v.Float)
	}
	return ""
}

// Row is one record of one GTFS table. Keys are column names as
// declared in the table's schema; absent optional columns are
// represented as explicit nulls.
type Row map[string]Value

// Where filters a query. Keys are column names. A plain literal means
// equality, a slice means IN, nil means IS NULL. Fields are combined
// with AND; an absent field is unconstrained.
type Where map[string]any

// SortKey orders query results by one field.
type SortKey struct {
	Field string
	Desc  bool
}

type OrderBy []SortKey
