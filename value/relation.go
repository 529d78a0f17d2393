package value

import (
	"fmt"
	"strings"

	"github.com/zostay/go-vcard/revision"
	"github.com/zostay/go-vcard/row"
)

// Relation points at another record: by identifier, by embedding the whole
// record, or with descriptive text.
type Relation struct {
	kind       Kind
	id         ContactID
	recordType string
	rows       []*row.Row
	text       string
}

// RelationVisitor receives the active variant of a Relation.
type RelationVisitor interface {
	VisitIdentifier(id ContactID) error
	VisitEmbedded(recordType string, rows []*row.Row) error
	VisitText(s string) error
}

// ParseRelation reads a relation given by reference. A UUID or absolute URI
// becomes the Identifier variant and anything else becomes text.
func ParseRelation(s string) Relation {
	id := ParseIdentifier(s)
	if id.Kind() == Text {
		return NewRelationText(s)
	}
	return NewRelationIdentifier(id)
}

// NewRelationIdentifier returns the Identifier variant.
func NewRelationIdentifier(id ContactID) Relation {
	return Relation{kind: Identifier, id: id}
}

// NewEmbedded returns the Embedded variant holding the rows of a record of
// the given type.
func NewEmbedded(recordType string, rows []*row.Row) Relation {
	cp := make([]*row.Row, len(rows))
	copy(cp, rows)
	return Relation{kind: Embedded, recordType: strings.ToUpper(recordType), rows: cp}
}

// NewRelationText returns the text variant.
func NewRelationText(s string) Relation {
	return Relation{kind: Text, text: s}
}

// Kind returns Identifier, Embedded, or Text.
func (r Relation) Kind() Kind {
	return r.kind
}

// Identifier returns the identifier of the Identifier variant.
func (r Relation) Identifier() ContactID {
	return r.id
}

// RecordType returns the record type of the Embedded variant.
func (r Relation) RecordType() string {
	return r.recordType
}

// Rows returns a copy of the rows of the Embedded variant.
func (r Relation) Rows() []*row.Row {
	cp := make([]*row.Row, len(r.rows))
	copy(cp, r.rows)
	return cp
}

// Text returns the text of the text variant.
func (r Relation) Text() string {
	return r.text
}

// Visit calls the visitor method for the active variant.
func (r Relation) Visit(v RelationVisitor) error {
	switch r.kind {
	case Identifier:
		return v.VisitIdentifier(r.id)
	case Embedded:
		return v.VisitEmbedded(r.recordType, r.Rows())
	case Text:
		return v.VisitText(r.text)
	}
	return fmt.Errorf("cannot visit %s relation", r.kind)
}

// Equal returns true if both values hold the same variant with the same
// contents. Embedded rows are compared by their serialized form.
func (r Relation) Equal(o Relation) bool {
	if r.kind != o.kind {
		return false
	}

	switch r.kind {
	case Identifier:
		return r.id.Equal(o.id)
	case Embedded:
		if r.recordType != o.recordType || len(r.rows) != len(o.rows) {
			return false
		}
		for i := range r.rows {
			if r.rows[i].String() != o.rows[i].String() {
				return false
			}
		}
		return true
	}
	return r.text == o.text
}

// Key returns a string that is equal for two relations exactly when Equal
// reports them equal, for use as a map key.
func (r Relation) Key() string {
	k := r.kind.String()
	if r.kind == Identifier {
		k += "/" + r.id.kind.String()
	}
	return k + ":" + r.Format(revision.Current)
}

// Format writes the relation. An embedded record is written as its unfolded
// rows between BEGIN and END markers, one per line, separated by bare line
// feeds.
func (r Relation) Format(rev revision.Revision) string {
	switch r.kind {
	case Identifier:
		return r.id.Format(rev)
	case Embedded:
		lines := make([]string, 0, len(r.rows)+2)
		lines = append(lines, "BEGIN:"+r.recordType)
		for _, er := range r.rows {
			lines = append(lines, er.String())
		}
		lines = append(lines, "END:"+r.recordType)
		return strings.Join(lines, "\n")
	}
	return r.text
}

// String returns the relation formatted for the current revision.
func (r Relation) String() string {
	return r.Format(revision.Current)
}
