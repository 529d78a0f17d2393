// Package value holds the typed values a property may carry when its wire
// text can take more than one shape. Each type is a closed tagged union:
// exactly one variant is populated, Kind says which, and Visit dispatches to
// the visitor method for that variant.
//
// Constructing a value from wire text never fails. Text that fits no other
// variant becomes the Text variant.
package value

// Kind identifies the active variant of a value.
type Kind int

// The variants. Each value type uses a subset of these.
const (
	Invalid    Kind = iota
	Text            // free text
	Date            // calendar date, possibly reduced
	Timestamp       // date and time of day
	Time            // time of day
	UUID            // a UUID
	URI             // an absolute URI
	Identifier      // a reference to another record by its identifier
	Embedded        // a whole record embedded in the value
	Data            // inline bytes
)

var kindNames = map[Kind]string{
	Invalid:    "invalid",
	Text:       "text",
	Date:       "date",
	Timestamp:  "timestamp",
	Time:       "time",
	UUID:       "uuid",
	URI:        "uri",
	Identifier: "identifier",
	Embedded:   "embedded",
	Data:       "data",
}

// String returns the name of the variant.
func (k Kind) String() string {
	if n, ok := kindNames[k]; ok {
		return n
	}
	return kindNames[Invalid]
}
