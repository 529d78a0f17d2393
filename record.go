package vcard

import (
	"strings"

	"github.com/zostay/go-vcard/param"
	"github.com/zostay/go-vcard/property"
	"github.com/zostay/go-vcard/revision"
)

// Property is one property of a record.
type Property struct {
	// Group is the upper-cased group name, or empty.
	Group string

	// Name is the upper-cased property name.
	Name string

	// Params are the parameters as read. The Writer drops the ENCODING and
	// CHARSET parameters and decides them again for the revision written.
	Params param.List

	// Value is the typed value.
	Value property.Value
}

// Record is one record read from a stream: everything between a BEGIN marker
// and the matching END marker.
type Record struct {
	// Type is the upper-cased record type named by the markers.
	Type string

	// Revision is the revision declared by the VERSION row. When the record
	// has no VERSION row, it is the revision the Reader assumed.
	Revision revision.Revision

	// Properties holds every property except VERSION, in order.
	Properties []*Property
}

// NewRecord returns an empty record of the default type.
func NewRecord(rev revision.Revision) *Record {
	return &Record{Type: DefaultRecordType, Revision: rev}
}

// Add appends a property with the given name and value. The parameters are
// coded for the revision of the record.
func (r *Record) Add(name string, v property.Value, ps ...param.Param) *Property {
	p := &Property{
		Name:   strings.ToUpper(name),
		Params: param.New(r.Revision.Caret(), ps...),
		Value:  v,
	}
	r.Properties = append(r.Properties, p)
	return p
}

// Get returns the first property with the given name or nil.
func (r *Record) Get(name string) *Property {
	name = strings.ToUpper(name)
	for _, p := range r.Properties {
		if p.Name == name {
			return p
		}
	}
	return nil
}

// All returns every property with the given name, in order.
func (r *Record) All(name string) []*Property {
	name = strings.ToUpper(name)
	var ps []*Property
	for _, p := range r.Properties {
		if p.Name == name {
			ps = append(ps, p)
		}
	}
	return ps
}
