// Package revision names the three incompatible revisions of the contact
// record format and the policy differences between them. Most of the other
// packages in this module take a Revision to decide how to fold, escape, and
// decode text.
package revision

import (
	"errors"
	"fmt"
	"strings"

	"github.com/coreos/go-semver/semver"
)

// Revision identifies a wire format revision.
type Revision int

// The known revisions. The zero value is Unknown, which most functions treat
// the same as Legacy.
const (
	Unknown      Revision = iota
	Legacy                // 2.1
	Intermediate          // 3.0
	Current               // 4.0
)

var (
	// ErrUnknownRevision is returned by Parse when the version string is well
	// formed but does not name one of the supported revisions.
	ErrUnknownRevision = errors.New("unknown format revision")
)

// Parse reads the value of a VERSION row. Values such as "2.1", "3.0", and
// "4.0" are accepted, as are fuller forms like "4.0.0". Leading and trailing
// whitespace is ignored.
func Parse(s string) (Revision, error) {
	v, err := semver.NewVersion(normalize(s))
	if err != nil {
		return Unknown, fmt.Errorf("version %q cannot be parsed: %w", s, err)
	}

	switch {
	case v.Major == 2 && v.Minor == 1:
		return Legacy, nil
	case v.Major == 3 && v.Minor == 0:
		return Intermediate, nil
	case v.Major == 4 && v.Minor == 0:
		return Current, nil
	}

	return Unknown, fmt.Errorf("version %q: %w", s, ErrUnknownRevision)
}

// normalize pads a two part version out to the three parts semver requires.
func normalize(s string) string {
	s = strings.TrimSpace(s)
	switch strings.Count(s, ".") {
	case 0:
		return s + ".0.0"
	case 1:
		return s + ".0"
	}
	return s
}

// String returns the revision as it is written in a VERSION row.
func (r Revision) String() string {
	switch r {
	case Legacy:
		return "2.1"
	case Intermediate:
		return "3.0"
	case Current:
		return "4.0"
	}
	return "unknown"
}

// IsLegacy returns true for Legacy and Unknown.
func (r Revision) IsLegacy() bool {
	return r == Legacy || r == Unknown
}

// StripsFold returns true if exactly one leading whitespace character is
// removed from each folding continuation line. Legacy folding keeps it.
func (r Revision) StripsFold() bool {
	return !r.IsLegacy()
}

// AllowsNesting returns true if a record may be embedded directly inside a
// property value, spread over physical lines.
func (r Revision) AllowsNesting() bool {
	return r.IsLegacy()
}

// Caret returns true if parameter values use the RFC 6868 caret coding.
func (r Revision) Caret() bool {
	return !r.IsLegacy()
}

// Pin applies the downgrade rule for a folding hint: once a non-legacy
// revision has been declared the hint never goes back to legacy.
func (r Revision) Pin(declared Revision) Revision {
	if r.IsLegacy() && !declared.IsLegacy() {
		return declared
	}
	return r
}
