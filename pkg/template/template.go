// Package template parses debugger launch templates and resolves them by
// name. Templates come from either a manifest file holding every template
// or a directory holding one file per template; both feed the same Store
// interface so the resolution engine does not care which shape supplied a
// template.
package template

import (
	"errors"
	"fmt"

	"github.com/tidwall/jsonc"

	"github.com/dobrovols/mklaunch/pkg/jsonval"
)

// Field names with dedicated handling during resolution.
const (
	fieldType        = "type"
	fieldRequest     = "request"
	fieldProgram     = "program"
	fieldStopAtEntry = "stopAtEntry"
	fieldName        = "name"
	fieldArgs        = "args"
)

var (
	// ErrNotObject is returned when a template document is not a JSON object.
	ErrNotObject = errors.New("template must be a JSON object")
	// ErrMissingType is returned when the required type field is absent or not a string.
	ErrMissingType = errors.New(`template missing required "type" field`)
	// ErrReservedArgs is returned when a template defines the reserved args field.
	ErrReservedArgs = errors.New(`template must not define "args"; args are composed per configuration`)
	// ErrTemplateNotFound is returned when no template exists under the requested name.
	ErrTemplateNotFound = errors.New("template not found")
)

// Template is a validated launch template. Rest holds every field without
// dedicated handling, in the order the author wrote them; it never
// contains the reserved args key or a name field.
type Template struct {
	Type        string
	Request     string
	Program     string
	StopAtEntry *bool
	Rest        *jsonval.Object
}

// Parse validates raw template bytes. The input may carry JSONC comments
// and trailing commas, which are stripped before decoding.
func Parse(raw []byte) (*Template, error) {
	obj, err := jsonval.DecodeObject(jsonc.ToJSON(raw))
	if err != nil {
		if errors.Is(err, jsonval.ErrNotObject) {
			return nil, ErrNotObject
		}
		return nil, fmt.Errorf("parse template JSON: %w", err)
	}
	return fromObject(obj)
}

func fromObject(obj *jsonval.Object) (*Template, error) {
	if obj.Has(fieldArgs) {
		return nil, ErrReservedArgs
	}

	typeValue, ok := obj.StringField(fieldType)
	if !ok {
		return nil, ErrMissingType
	}

	tpl := &Template{Type: typeValue, Rest: jsonval.NewObject()}

	// Optional fields are permissive: a non-string request or program is
	// treated as absent rather than rejected.
	if request, ok := obj.StringField(fieldRequest); ok {
		tpl.Request = request
	}
	if program, ok := obj.StringField(fieldProgram); ok {
		tpl.Program = program
	}
	if stop, ok := obj.BoolField(fieldStopAtEntry); ok {
		tpl.StopAtEntry = &stop
	}

	for _, key := range obj.Keys() {
		switch key {
		case fieldType, fieldRequest, fieldProgram, fieldStopAtEntry, fieldName:
			// name is never template data: the store keys templates by
			// name and the entry supplies the output name.
			continue
		}
		value, _ := obj.Get(key)
		tpl.Rest.Set(key, value)
	}

	return tpl, nil
}

// Store resolves templates by name.
type Store interface {
	Lookup(name string) (*Template, error)
}
