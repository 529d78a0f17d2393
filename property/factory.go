package property

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/zostay/go-vcard/content"
	"github.com/zostay/go-vcard/escape"
	"github.com/zostay/go-vcard/lexer"
	"github.com/zostay/go-vcard/param"
	"github.com/zostay/go-vcard/revision"
	"github.com/zostay/go-vcard/row"
	"github.com/zostay/go-vcard/value"
)

var (
	// ErrIncompleteEmbedded is returned when an embedded record has no END
	// marker.
	ErrIncompleteEmbedded = errors.New("embedded record is incomplete")
)

// Factory builds the typed value of a row. The content has already been
// transfer decoded. The revision is the one the record declares, or the best
// guess available when it has not declared one yet.
type Factory interface {
	Make(r *row.Row, v *content.Value, rev revision.Revision) (Value, error)
}

// FactoryFunc adapts a function to the Factory interface.
type FactoryFunc func(r *row.Row, v *content.Value, rev revision.Revision) (Value, error)

// Make calls f.
func (f FactoryFunc) Make(r *row.Row, v *content.Value, rev revision.Revision) (Value, error) {
	return f(r, v, rev)
}

// Property names grouped by the shape of their values.
var (
	structuredNames = map[string]struct{}{
		"N":            {},
		"ADR":          {},
		"ORG":          {},
		"GENDER":       {},
		"CLIENTPIDMAP": {},
	}

	listNames = map[string]struct{}{
		"CATEGORIES": {},
		"NICKNAME":   {},
	}

	dateNames = map[string]struct{}{
		"BDAY":        {},
		"ANNIVERSARY": {},
		"DEATHDATE":   {},
	}

	binaryNames = map[string]struct{}{
		"PHOTO": {},
		"LOGO":  {},
		"SOUND": {},
		"KEY":   {},
	}

	textNames = map[string]struct{}{
		"FN":          {},
		"NOTE":        {},
		"TITLE":       {},
		"ROLE":        {},
		"LABEL":       {},
		"TEL":         {},
		"MAILER":      {},
		"PRODID":      {},
		"SORT-STRING": {},
		"KIND":        {},
		"NAME":        {},
		"BIRTHPLACE":  {},
		"DEATHPLACE":  {},
		"EXPERTISE":   {},
		"HOBBY":       {},
		"INTEREST":    {},
	}
)

func has(names map[string]struct{}, name string) bool {
	_, ok := names[name]
	return ok
}

// Default is the Factory used when no other is given. Values it does not
// know the shape of become Raw.
type Default struct{}

var _ Factory = Default{}

// Make builds the typed value of the row.
func (Default) Make(r *row.Row, v *content.Value, rev revision.Revision) (Value, error) {
	name := r.Name()
	params := r.Params()

	if v.IsBinary() || has(binaryNames, name) {
		return makeBinary(params, v, rev), nil
	}

	asText := strings.EqualFold(params.Get(param.Value), "text")
	text := v.Text(rev)
	trimmed := strings.TrimSpace(text)

	switch {
	case has(dateNames, name):
		if asText {
			return Date{value.NewDateText(text)}, nil
		}
		return Date{value.ParseDateOrTime(trimmed, rev)}, nil

	case name == "REV":
		return Date{value.ParseTimestamp(trimmed, rev)}, nil

	case name == "UID":
		if asText {
			return ID{value.NewIdentifierText(text)}, nil
		}
		return ID{value.ParseIdentifier(trimmed)}, nil

	case name == "RELATED":
		if asText {
			return Relation{value.NewRelationText(text)}, nil
		}
		return Relation{value.ParseRelation(trimmed)}, nil

	case name == "AGENT":
		return makeAgent(v, rev)

	case name == "EMAIL":
		return NewEmail(text), nil

	case has(structuredNames, name):
		return Structured(escape.SplitStructured(rev, v.Escaped())), nil

	case has(listNames, name):
		return List(escape.SplitList(rev, v.Escaped())), nil

	case has(textNames, name):
		return Text(text), nil
	}

	return NewRaw(v.Escaped(), rev), nil
}

// makeBinary reads a binary value and fills in its media type from the
// parameters when the value itself does not carry one.
func makeBinary(params param.List, v *content.Value, rev revision.Revision) Binary {
	b := value.ParseBinary(v, rev)
	if b.MediaType() != "" {
		return Binary{b}
	}

	tokens := append(params.Values(param.MediaType), params.Values(param.Type)...)
	for _, tok := range tokens {
		if mt := MediaType(tok); mt != "" {
			return Binary{b.WithMediaType(mt)}
		}
	}

	return Binary{b}
}

// makeAgent reads an agent, which is either an embedded record or a
// reference to one. Legacy embedded records are taken from the raw value as
// the rows inside it have their own escaping.
func makeAgent(v *content.Value, rev revision.Revision) (Value, error) {
	text := v.Text(rev)
	if rev.IsLegacy() {
		text = v.Escaped()
	}

	if IsEmbedded(text) {
		typ, rows, err := ParseEmbedded(text, rev)
		if err != nil {
			return nil, err
		}
		return Relation{value.NewEmbedded(typ, rows)}, nil
	}

	return Relation{value.ParseRelation(strings.TrimSpace(text))}, nil
}

// IsEmbedded returns true if the text starts with a BEGIN marker.
func IsEmbedded(text string) bool {
	text = strings.TrimSpace(text)
	return len(text) >= 6 && strings.EqualFold(text[:6], "BEGIN:")
}

// ParseEmbedded reads the rows of the record embedded in text. It returns
// the record type and the rows. Rows that are malformed make the whole
// embedded record fail.
func ParseEmbedded(text string, rev revision.Revision) (string, []*row.Row, error) {
	lx := lexer.New(strings.NewReader(text), lexer.WithRevision(rev))

	var (
		typ  string
		rows []*row.Row
	)
	for {
		line, err := lx.Next()
		if errors.Is(err, io.EOF) {
			return "", nil, ErrIncompleteEmbedded
		} else if err != nil {
			return "", nil, fmt.Errorf("embedded record: %w", err)
		}

		switch line.Kind {
		case lexer.Begin:
			typ = line.Text
		case lexer.Row:
			r, err := row.Parse(line.Text, lx.Revision())
			if err != nil {
				return "", nil, fmt.Errorf("embedded record: %w", err)
			}
			rows = append(rows, r)
		case lexer.End:
			return typ, rows, nil
		}
	}
}
