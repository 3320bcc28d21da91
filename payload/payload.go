// Package payload models what a command invocation answers with. A panel's
// response is one of the variants below, or nil before its first run.
package payload

import (
	"bytes"
	"encoding/json"
	"image"
	"image/png"
)

// UnknownErrorStatus is the only status a panel shows for failed calls.
const UnknownErrorStatus = `Unknown error... :(`

const (
	TypeString = `string`
	TypeHTML   = `html`
	TypePNG    = `png`
)

// Response is implemented only by the variants in this package.
type Response interface {
	response()
}

// Result is a Response that came back from the backend with a type tag.
type Result interface {
	Response
	Type() string
}

type Processing struct{}

type Failure struct {
	Status string
}

type Text struct {
	Value string
}

type Markup struct {
	HTML string
}

type Image struct {
	Format string
	Data   []byte
}

type Table struct {
	Kind    string
	Columns []string
	Index   []string
	Rows    [][]interface{}
}

// Unknown keeps a payload whose type tag this client does not understand.
type Unknown struct {
	Tag string
	Raw json.RawMessage
}

func (Processing) response() {}
func (Failure) response()    {}
func (Text) response()       {}
func (Markup) response()     {}
func (Image) response()      {}
func (Table) response()      {}
func (Unknown) response()    {}

func (Text) Type() string   { return TypeString }
func (Markup) Type() string { return TypeHTML }
func (Image) Type() string  { return TypePNG }

func (it Table) Type() string {
	return it.Kind
}

func (it Unknown) Type() string {
	return it.Tag
}

// Unsuccessful is the response every failed invocation resolves to.
func Unsuccessful() Failure {
	return Failure{Status: UnknownErrorStatus}
}

// Config reads the image header without decoding pixels.
func (it Image) Config() (image.Config, error) {
	return png.DecodeConfig(bytes.NewReader(it.Data))
}

func (it Table) Width() int {
	return len(it.Columns)
}

func (it Table) Height() int {
	return len(it.Rows)
}

// Cell returns the value at row and column, nil when out of range.
func (it Table) Cell(row, column int) interface{} {
	if row < 0 || row >= len(it.Rows) {
		return nil
	}
	cells := it.Rows[row]
	if column < 0 || column >= len(cells) {
		return nil
	}
	return cells[column]
}
