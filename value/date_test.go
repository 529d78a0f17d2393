package value_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/zostay/go-vcard/revision"
	"github.com/zostay/go-vcard/value"
)

func TestParseDateOrTime_Reduced(t *testing.T) {
	t.Parallel()

	d := value.ParseDateOrTime("--0304", revision.Current)
	assert.Equal(t, value.Date, d.Kind())
	assert.False(t, d.HasYear())
	assert.True(t, d.HasMonth())
	assert.True(t, d.HasDay())
	assert.Equal(t, time.Date(value.ReferenceYear, time.March, 4, 0, 0, 0, 0, time.UTC), d.Time())
	assert.Equal(t, "--0304", d.Format(revision.Current))

	assert.True(t, d.Equal(value.NewPartialDate(0, time.March, 4)))
}

func TestParseDateOrTime(t *testing.T) {
	t.Parallel()

	tests := []struct {
		in               string
		rev              revision.Revision
		kind             value.Kind
		hasY, hasM, hasD bool
		want             time.Time
		out              string
	}{
		{"19960415", revision.Current, value.Date, true, true, true,
			time.Date(1996, 4, 15, 0, 0, 0, 0, time.UTC), "19960415"},
		{"1985-04", revision.Current, value.Date, true, true, false,
			time.Date(1985, 4, 1, 0, 0, 0, 0, time.UTC), "1985-04"},
		{"1985", revision.Current, value.Date, true, false, false,
			time.Date(1985, 1, 1, 0, 0, 0, 0, time.UTC), "1985"},
		{"--04", revision.Current, value.Date, false, true, false,
			time.Date(value.ReferenceYear, 4, 1, 0, 0, 0, 0, time.UTC), "--04"},
		{"---15", revision.Current, value.Date, false, false, true,
			time.Date(value.ReferenceYear, 1, 15, 0, 0, 0, 0, time.UTC), "---15"},
		{"--0229", revision.Current, value.Date, false, true, true,
			time.Date(value.ReferenceYear, 2, 29, 0, 0, 0, 0, time.UTC), "--0229"},
		{"19531015T231000Z", revision.Current, value.Timestamp, true, true, true,
			time.Date(1953, 10, 15, 23, 10, 0, 0, time.UTC), "19531015T231000Z"},
		{"--0304T1022", revision.Current, value.Timestamp, false, true, true,
			time.Date(value.ReferenceYear, 3, 4, 10, 22, 0, 0, time.UTC), "--0304T102200"},
		{"T102200", revision.Current, value.Time, false, false, false,
			time.Date(value.ReferenceYear, 1, 1, 10, 22, 0, 0, time.UTC), "T102200"},
		{"1996-04-15", revision.Intermediate, value.Date, true, true, true,
			time.Date(1996, 4, 15, 0, 0, 0, 0, time.UTC), "1996-04-15"},
		{"1995-10-31T22:27:10Z", revision.Intermediate, value.Timestamp, true, true, true,
			time.Date(1995, 10, 31, 22, 27, 10, 0, time.UTC), "1995-10-31T22:27:10Z"},
		{"19950415", revision.Legacy, value.Date, true, true, true,
			time.Date(1995, 4, 15, 0, 0, 0, 0, time.UTC), "19950415"},
	}

	for _, test := range tests {
		d := value.ParseDateOrTime(test.in, test.rev)
		assert.Equal(t, test.kind, d.Kind(), test.in)
		assert.Equal(t, test.hasY, d.HasYear(), test.in)
		assert.Equal(t, test.hasM, d.HasMonth(), test.in)
		assert.Equal(t, test.hasD, d.HasDay(), test.in)
		assert.True(t, test.want.Equal(d.Time()), "%s: %v", test.in, d.Time())
		assert.Equal(t, test.out, d.Format(test.rev), test.in)
	}
}

func TestParseDateOrTime_Zone(t *testing.T) {
	t.Parallel()

	d := value.ParseDateOrTime("1953-10-15T23:10:00-05:00", revision.Intermediate)
	assert.Equal(t, value.Timestamp, d.Kind())
	assert.True(t, d.HasOffset())
	_, off := d.Time().Zone()
	assert.Equal(t, -5*3600, off)
	assert.Equal(t, "1953-10-15T23:10:00-05:00", d.Format(revision.Intermediate))
	assert.Equal(t, "19531015T231000-0500", d.Format(revision.Current))

	d = value.ParseDateOrTime("T102200+0130", revision.Current)
	assert.Equal(t, value.Time, d.Kind())
	assert.Equal(t, "T102200+0130", d.Format(revision.Current))
	assert.Equal(t, "10:22:00+01:30", d.Format(revision.Intermediate))

	d = value.ParseDateOrTime("20090808T1430", revision.Current)
	assert.False(t, d.HasOffset())
	assert.Equal(t, "20090808T143000", d.Format(revision.Current))
}

func TestParseDateOrTime_Text(t *testing.T) {
	t.Parallel()

	for _, in := range []string{
		"circa 1800",
		"--0230",
		"19961315",
		"T256000",
		"19960415Z",
		"19960415T1022+2500",
		"",
	} {
		d := value.ParseDateOrTime(in, revision.Current)
		assert.Equal(t, value.Text, d.Kind(), in)
		assert.Equal(t, in, d.Text(), in)
		assert.Equal(t, in, d.Format(revision.Current), in)
	}

	// the reduced forms are not read in the legacy revision
	assert.Equal(t, value.Text, value.ParseDateOrTime("---15", revision.Legacy).Kind())
}

func TestParseTimestamp(t *testing.T) {
	t.Parallel()

	d := value.ParseTimestamp("1995-10-31T22:27:10Z", revision.Intermediate)
	assert.Equal(t, value.Timestamp, d.Kind())

	d = value.ParseTimestamp("Tue, 31 Oct 1995 22:27:10 GMT", revision.Current)
	assert.Equal(t, value.Timestamp, d.Kind())
	assert.True(t, time.Date(1995, 10, 31, 22, 27, 10, 0, time.UTC).Equal(d.Time()))
	assert.Equal(t, "19951031T222710Z", d.Format(revision.Current))

	d = value.ParseTimestamp("not a time at all", revision.Current)
	assert.Equal(t, value.Text, d.Kind())
}

func TestNewDate(t *testing.T) {
	t.Parallel()

	d := value.NewDate(time.Date(2001, 2, 3, 4, 5, 6, 0, time.Local))
	assert.Equal(t, "20010203", d.Format(revision.Current))
	assert.Equal(t, "2001-02-03", d.Format(revision.Intermediate))

	d = value.NewTimestamp(time.Date(2001, 2, 3, 4, 5, 6, 0, time.UTC))
	assert.Equal(t, "20010203T040506Z", d.String())

	d = value.NewTime(4, 5, 6, nil)
	assert.Equal(t, "T040506", d.String())
	assert.Equal(t, "040506", d.Format(revision.Legacy))

	assert.Equal(t, value.Text, value.NewPartialDate(0, 0, 0).Kind())
	assert.Equal(t, "---09", value.NewPartialDate(0, 0, 9).String())
	assert.Equal(t, "--0309", value.NewPartialDate(0, time.March, 9).String())
	assert.Equal(t, "1999-03", value.NewPartialDate(1999, time.March, 0).String())

	d = value.NewPartialDate(1999, 0, 5)
	assert.Equal(t, value.Text, d.Kind())
	assert.Equal(t, "", d.String())
}

type recorder struct {
	got []string
}

func (r *recorder) VisitDate(t time.Time, hasYear, hasMonth, hasDay bool) error {
	r.got = append(r.got, "date")
	return nil
}

func (r *recorder) VisitTimestamp(t time.Time, hasOffset bool) error {
	r.got = append(r.got, "timestamp")
	return nil
}

func (r *recorder) VisitTime(t time.Time, hasOffset bool) error {
	r.got = append(r.got, "time")
	return nil
}

func (r *recorder) VisitText(s string) error {
	r.got = append(r.got, "text:"+s)
	return nil
}

func TestDateOrTime_Visit(t *testing.T) {
	t.Parallel()

	r := &recorder{}
	for _, in := range []string{"19960415", "19960415T102200", "T1022", "soon"} {
		assert.NoError(t, value.ParseDateOrTime(in, revision.Current).Visit(r))
	}
	assert.Equal(t, []string{"date", "timestamp", "time", "text:soon"}, r.got)

	assert.Error(t, value.DateOrTime{}.Visit(r))
}

func TestDateOrTime_Equal(t *testing.T) {
	t.Parallel()

	a := value.ParseDateOrTime("19960415", revision.Current)
	b := value.ParseDateOrTime("1996-04-15", revision.Intermediate)
	assert.True(t, a.Equal(b))

	c := value.ParseDateOrTime("1996-04", revision.Current)
	assert.False(t, a.Equal(c))

	utc := value.ParseDateOrTime("19960415T100000Z", revision.Current)
	east := value.ParseDateOrTime("19960415T110000+0100", revision.Current)
	assert.False(t, utc.Equal(east))
	assert.True(t, utc.Time().Equal(east.Time()))
}
