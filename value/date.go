package value

import (
	"fmt"
	"strings"
	"time"

	"github.com/araddon/dateparse"

	"github.com/zostay/go-vcard/revision"
)

// The reference date fills in the fields a reduced date leaves out. The year
// is a leap year so that --0229 is a valid date.
const (
	ReferenceYear  = 1604
	ReferenceMonth = time.January
	ReferenceDay   = 1
)

// Layout tokens: yyyy, MM, dd, HH, mm, and ss match that many digits. Any
// other character matches itself. A layout containing HH may be followed by
// a zone: Z, ±hh, ±hhmm, or ±hh:mm.
var (
	currentLayouts = []string{
		"yyyyMMddTHHmmss", "yyyyMMddTHHmm", "yyyyMMddTHH",
		"--MMddTHHmmss", "--MMddTHHmm", "--MMddTHH",
		"---ddTHHmmss", "---ddTHHmm", "---ddTHH",
		"yyyyMMdd", "yyyy-MM", "yyyy", "--MMdd", "--MM", "---dd",
		"THHmmss", "THHmm", "THH", "HHmmss",

		// extended forms are not in the grammar but are common
		"yyyy-MM-ddTHH:mm:ss", "yyyy-MM-ddTHH:mm", "yyyy-MM-dd", "--MM-dd",
		"THH:mm:ss", "HH:mm:ss",
	}

	isoLayouts = []string{
		"yyyy-MM-ddTHH:mm:ss", "yyyy-MM-ddTHH:mm", "yyyyMMddTHHmmss", "yyyyMMddTHHmm",
		"yyyy-MM-dd", "yyyyMMdd", "--MM-dd", "--MMdd",
		"HH:mm:ss", "HHmmss",
	}
)

func layouts(rev revision.Revision) []string {
	if rev == revision.Current {
		return currentLayouts
	}
	return isoLayouts
}

// DateOrTime is a date, a timestamp, a time of day, or free text.
//
// A date or timestamp may be reduced: any of the year, month, and day may be
// missing from the source. The missing fields are filled in from the
// reference date so that Time always returns a valid time.Time, and the Has*
// methods report which fields were really there.
type DateOrTime struct {
	kind      Kind
	t         time.Time
	hasYear   bool
	hasMonth  bool
	hasDay    bool
	hasOffset bool
	text      string
}

// DateOrTimeVisitor receives the active variant of a DateOrTime.
type DateOrTimeVisitor interface {
	VisitDate(t time.Time, hasYear, hasMonth, hasDay bool) error
	VisitTimestamp(t time.Time, hasOffset bool) error
	VisitTime(t time.Time, hasOffset bool) error
	VisitText(s string) error
}

// NewDate returns a complete date. The time of day and zone of t are
// ignored.
func NewDate(t time.Time) DateOrTime {
	return DateOrTime{
		kind:     Date,
		t:        time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC),
		hasYear:  true,
		hasMonth: true,
		hasDay:   true,
	}
}

// NewPartialDate returns a reduced date. A zero year, month, or day is left
// out. If all three are zero, or a year and day are given without a month,
// the result is empty text.
func NewPartialDate(year int, month time.Month, day int) DateOrTime {
	if year != 0 && month == 0 && day != 0 {
		return NewDateText("")
	}

	d, ok := build(fields{
		year: year, month: int(month), day: day,
		hasYear: year != 0, hasMonth: month != 0, hasDay: day != 0,
	})
	if !ok || d.kind != Date {
		return NewDateText("")
	}
	return d
}

// NewTimestamp returns a complete timestamp in the zone of t.
func NewTimestamp(t time.Time) DateOrTime {
	return DateOrTime{
		kind:      Timestamp,
		t:         t,
		hasYear:   true,
		hasMonth:  true,
		hasDay:    true,
		hasOffset: true,
	}
}

// NewTime returns a time of day. If loc is nil the time has no zone.
func NewTime(hour, min, sec int, loc *time.Location) DateOrTime {
	hasOffset := loc != nil
	if loc == nil {
		loc = time.UTC
	}
	return DateOrTime{
		kind:      Time,
		t:         time.Date(ReferenceYear, ReferenceMonth, ReferenceDay, hour, min, sec, 0, loc),
		hasOffset: hasOffset,
	}
}

// NewDateText returns the free text variant.
func NewDateText(s string) DateOrTime {
	return DateOrTime{kind: Text, text: s}
}

// ParseDateOrTime reads the value using the layouts of the revision. Text
// that fits no layout, or that names an impossible date, becomes the Text
// variant.
func ParseDateOrTime(s string, rev revision.Revision) DateOrTime {
	trimmed := strings.TrimSpace(s)
	for _, layout := range layouts(rev) {
		f, ok := match(layout, trimmed)
		if !ok {
			continue
		}

		if d, ok := build(f); ok {
			return d
		}
	}
	return NewDateText(s)
}

// ParseTimestamp is ParseDateOrTime with a lenient fallback: text that fits
// no layout is given to dateparse before it becomes the Text variant.
func ParseTimestamp(s string, rev revision.Revision) DateOrTime {
	d := ParseDateOrTime(s, rev)
	if d.kind != Text {
		return d
	}

	t, err := dateparse.ParseAny(strings.TrimSpace(s))
	if err != nil {
		return d
	}
	return NewTimestamp(t)
}

type fields struct {
	year, month, day  int
	hour, min, sec    int
	hasYear, hasMonth bool
	hasDay, hasTime   bool
	loc               *time.Location
}

// match fits s to the layout.
func match(layout, s string) (fields, bool) {
	var f fields
	i := 0
	for j := 0; j < len(layout); {
		var (
			dst  *int
			size = 2
		)
		switch {
		case strings.HasPrefix(layout[j:], "yyyy"):
			dst, size, f.hasYear = &f.year, 4, true
		case strings.HasPrefix(layout[j:], "MM"):
			dst, f.hasMonth = &f.month, true
		case strings.HasPrefix(layout[j:], "dd"):
			dst, f.hasDay = &f.day, true
		case strings.HasPrefix(layout[j:], "HH"):
			dst, f.hasTime = &f.hour, true
		case strings.HasPrefix(layout[j:], "mm"):
			dst = &f.min
		case strings.HasPrefix(layout[j:], "ss"):
			dst = &f.sec
		}

		if dst == nil {
			if i >= len(s) || !strings.EqualFold(s[i:i+1], layout[j:j+1]) {
				return f, false
			}
			i++
			j++
			continue
		}

		v, ok := digits(s, i, size)
		if !ok {
			return f, false
		}
		*dst = v
		i += size
		j += size
	}

	if rest := s[i:]; rest != "" {
		if !f.hasTime {
			return f, false
		}

		loc, ok := parseZone(rest)
		if !ok {
			return f, false
		}
		f.loc = loc
	}

	return f, true
}

// digits reads exactly n decimal digits from s starting at i.
func digits(s string, i, n int) (int, bool) {
	if i+n > len(s) {
		return 0, false
	}

	v := 0
	for _, c := range []byte(s[i : i+n]) {
		if c < '0' || c > '9' {
			return 0, false
		}
		v = v*10 + int(c-'0')
	}
	return v, true
}

// parseZone reads Z, ±hh, ±hhmm, or ±hh:mm.
func parseZone(z string) (*time.Location, bool) {
	if z == "Z" || z == "z" {
		return time.UTC, true
	}

	if len(z) < 3 || (z[0] != '+' && z[0] != '-') {
		return nil, false
	}

	hh, ok := digits(z, 1, 2)
	if !ok {
		return nil, false
	}

	mm := 0
	switch rest := z[3:]; len(rest) {
	case 0:
	case 2:
		mm, ok = digits(rest, 0, 2)
	case 3:
		ok = rest[0] == ':'
		if ok {
			mm, ok = digits(rest, 1, 2)
		}
	default:
		ok = false
	}

	if !ok || hh > 23 || mm > 59 {
		return nil, false
	}

	off := hh*3600 + mm*60
	if z[0] == '-' {
		off = -off
	}
	if off == 0 {
		return time.UTC, true
	}
	return time.FixedZone("", off), true
}

// build checks the fields and makes a value of them.
func build(f fields) (DateOrTime, bool) {
	y, m, d := ReferenceYear, int(ReferenceMonth), ReferenceDay
	if f.hasYear {
		y = f.year
	}
	if f.hasMonth {
		m = f.month
	}
	if f.hasDay {
		d = f.day
	}

	if m < 1 || m > 12 {
		return DateOrTime{}, false
	}

	if last := time.Date(y, time.Month(m)+1, 0, 0, 0, 0, 0, time.UTC).Day(); d < 1 || d > last {
		return DateOrTime{}, false
	}

	if f.hour > 23 || f.min > 59 || f.sec > 59 {
		return DateOrTime{}, false
	}

	loc := f.loc
	if loc == nil {
		loc = time.UTC
	}

	v := DateOrTime{
		t:         time.Date(y, time.Month(m), d, f.hour, f.min, f.sec, 0, loc),
		hasYear:   f.hasYear,
		hasMonth:  f.hasMonth,
		hasDay:    f.hasDay,
		hasOffset: f.loc != nil,
	}

	dated := f.hasYear || f.hasMonth || f.hasDay
	switch {
	case dated && f.hasTime:
		v.kind = Timestamp
	case dated:
		v.kind = Date
	case f.hasTime:
		v.kind = Time
	default:
		return DateOrTime{}, false
	}

	return v, true
}

// Kind returns Date, Timestamp, Time, or Text.
func (d DateOrTime) Kind() Kind {
	return d.kind
}

// Time returns the value as a time.Time with the reference date filled in
// where fields are missing. It is the zero time for the Text variant.
func (d DateOrTime) Time() time.Time {
	return d.t
}

// HasYear returns true if the year was given.
func (d DateOrTime) HasYear() bool { return d.hasYear }

// HasMonth returns true if the month was given.
func (d DateOrTime) HasMonth() bool { return d.hasMonth }

// HasDay returns true if the day was given.
func (d DateOrTime) HasDay() bool { return d.hasDay }

// HasOffset returns true if a zone was given.
func (d DateOrTime) HasOffset() bool { return d.hasOffset }

// Text returns the text of the Text variant.
func (d DateOrTime) Text() string {
	return d.text
}

// Visit calls the visitor method for the active variant.
func (d DateOrTime) Visit(v DateOrTimeVisitor) error {
	switch d.kind {
	case Date:
		return v.VisitDate(d.t, d.hasYear, d.hasMonth, d.hasDay)
	case Timestamp:
		return v.VisitTimestamp(d.t, d.hasOffset)
	case Time:
		return v.VisitTime(d.t, d.hasOffset)
	case Text:
		return v.VisitText(d.text)
	}
	return fmt.Errorf("cannot visit %s date or time", d.kind)
}

// Equal returns true if both values hold the same variant with the same
// contents, including which fields were given and the zone offset.
func (d DateOrTime) Equal(o DateOrTime) bool {
	if d.kind != o.kind || d.text != o.text ||
		d.hasYear != o.hasYear || d.hasMonth != o.hasMonth ||
		d.hasDay != o.hasDay || d.hasOffset != o.hasOffset {
		return false
	}

	_, off := d.t.Zone()
	_, ooff := o.t.Zone()
	return d.t.Equal(o.t) && off == ooff
}

// Format writes the value the way the revision expects: basic format for the
// current and legacy revisions, extended format for the intermediate one.
// Reduced dates are written with the leading dashes of the current
// revision in every revision.
func (d DateOrTime) Format(rev revision.Revision) string {
	ext := rev == revision.Intermediate
	switch d.kind {
	case Date:
		return d.formatDate(ext)
	case Timestamp:
		return d.formatDate(ext) + "T" + d.formatClock(ext) + d.formatZone(ext)
	case Time:
		prefix := ""
		if rev == revision.Current {
			prefix = "T"
		}
		return prefix + d.formatClock(ext) + d.formatZone(ext)
	}
	return d.text
}

// String returns the value formatted for the current revision.
func (d DateOrTime) String() string {
	return d.Format(revision.Current)
}

func (d DateOrTime) formatDate(ext bool) string {
	y, m, day := d.t.Date()
	switch {
	case d.hasYear && d.hasMonth && !d.hasDay:
		return fmt.Sprintf("%04d-%02d", y, m)
	case d.hasYear && !d.hasMonth && !d.hasDay:
		return fmt.Sprintf("%04d", y)
	case !d.hasYear && d.hasMonth && d.hasDay:
		return fmt.Sprintf("--%02d%02d", m, day)
	case !d.hasYear && d.hasMonth:
		return fmt.Sprintf("--%02d", m)
	case !d.hasYear && !d.hasMonth && d.hasDay:
		return fmt.Sprintf("---%02d", day)
	case ext:
		return fmt.Sprintf("%04d-%02d-%02d", y, m, day)
	}
	return fmt.Sprintf("%04d%02d%02d", y, m, day)
}

func (d DateOrTime) formatClock(ext bool) string {
	if ext {
		return d.t.Format("15:04:05")
	}
	return d.t.Format("150405")
}

func (d DateOrTime) formatZone(ext bool) string {
	switch {
	case !d.hasOffset:
		return ""
	case ext:
		return d.t.Format("Z07:00")
	}
	return d.t.Format("Z0700")
}
