// Package generator implements the launch configuration merge engine: it
// resolves configuration entries against their templates, validates the
// aggregate and assembles the launch document written to the editor.
package generator

import (
	"github.com/dobrovols/mklaunch/pkg/jsonval"
)

// Version is the launch document format version emitted for the editor.
const Version = "0.2.0"

// Document is the generated launch file: a fixed version marker and the
// resolved configurations sorted by name.
type Document struct {
	Configurations []*jsonval.Object
}

// MarshalJSON serialises the document with version first, matching the
// hand-written files it replaces.
func (d *Document) MarshalJSON() ([]byte, error) {
	obj := jsonval.NewObject()
	obj.Set("version", Version)
	configurations := make([]any, len(d.Configurations))
	for i, cfg := range d.Configurations {
		configurations[i] = cfg
	}
	obj.Set("configurations", configurations)
	return obj.MarshalJSON()
}
