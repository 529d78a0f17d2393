package value_test

import (
	"net/url"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zostay/go-vcard/content"
	"github.com/zostay/go-vcard/param"
	"github.com/zostay/go-vcard/revision"
	"github.com/zostay/go-vcard/row"
	"github.com/zostay/go-vcard/value"
)

const sampleUUID = "f81d4fae-7dec-11d0-a765-00a0c91e6bf6"

func TestParseIdentifier(t *testing.T) {
	t.Parallel()

	want := uuid.MustParse(sampleUUID)

	id := value.ParseIdentifier("urn:uuid:" + sampleUUID)
	assert.Equal(t, value.UUID, id.Kind())
	assert.Equal(t, want, id.UUID())
	assert.Equal(t, "urn:uuid:"+sampleUUID, id.Format(revision.Current))
	assert.Equal(t, sampleUUID, id.Format(revision.Legacy))

	id = value.ParseIdentifier(sampleUUID)
	assert.Equal(t, value.UUID, id.Kind())
	assert.True(t, id.Equal(value.NewUUID(want)))

	id = value.ParseIdentifier("http://example.com/people/1")
	assert.Equal(t, value.URI, id.Kind())
	assert.Equal(t, "example.com", id.URI().Host)
	assert.Equal(t, "http://example.com/people/1", id.String())

	for _, in := range []string{"person-123", "Note: not a uri", "urn:", "", "{" + sampleUUID + "}"} {
		id = value.ParseIdentifier(in)
		assert.Equal(t, value.Text, id.Kind(), in)
		assert.Equal(t, in, id.Text(), in)
		assert.Equal(t, in, id.Format(revision.Current), in)
	}
}

func TestNewIdentifierURI(t *testing.T) {
	t.Parallel()

	id, err := value.NewIdentifierURI("mailto:someone@example.com")
	require.NoError(t, err)
	assert.Equal(t, value.URI, id.Kind())
	assert.Equal(t, "mailto:someone@example.com", id.String())

	_, err = value.NewIdentifierURI("/people/1")
	assert.ErrorIs(t, err, value.ErrRelativeURI)

	_, err = value.NewIdentifierURI("people")
	assert.ErrorIs(t, err, value.ErrRelativeURI)
}

type idRecorder struct {
	got []string
}

func (r *idRecorder) VisitUUID(id uuid.UUID) error {
	r.got = append(r.got, "uuid:"+id.String())
	return nil
}

func (r *idRecorder) VisitURI(u *url.URL) error {
	r.got = append(r.got, "uri:"+u.String())
	return nil
}

func (r *idRecorder) VisitText(s string) error {
	r.got = append(r.got, "text:"+s)
	return nil
}

func (r *idRecorder) VisitIdentifier(id value.ContactID) error {
	r.got = append(r.got, "id")
	return id.Visit(r)
}

func (r *idRecorder) VisitEmbedded(recordType string, rows []*row.Row) error {
	r.got = append(r.got, "embedded:"+recordType)
	return nil
}

func (r *idRecorder) VisitData(b []byte, mediaType string) error {
	r.got = append(r.got, "data:"+mediaType+":"+string(b))
	return nil
}

func TestContactID_Visit(t *testing.T) {
	t.Parallel()

	r := &idRecorder{}
	for _, in := range []string{sampleUUID, "http://example.com/", "someone"} {
		assert.NoError(t, value.ParseIdentifier(in).Visit(r))
	}
	assert.Equal(t, []string{
		"uuid:" + sampleUUID,
		"uri:http://example.com/",
		"text:someone",
	}, r.got)
}

func TestRelation(t *testing.T) {
	t.Parallel()

	rel := value.ParseRelation("urn:uuid:" + sampleUUID)
	assert.Equal(t, value.Identifier, rel.Kind())
	assert.Equal(t, value.UUID, rel.Identifier().Kind())
	assert.Equal(t, sampleUUID, rel.Format(revision.Legacy))

	rel = value.ParseRelation("My sister")
	assert.Equal(t, value.Text, rel.Kind())
	assert.Equal(t, "My sister", rel.String())

	fn, err := row.Parse("FN:Agent Smith", revision.Legacy)
	require.NoError(t, err)
	tel, err := row.Parse("TEL;WORK:555-0100", revision.Legacy)
	require.NoError(t, err)

	rel = value.NewEmbedded("vcard", []*row.Row{fn, tel})
	assert.Equal(t, value.Embedded, rel.Kind())
	assert.Equal(t, "VCARD", rel.RecordType())
	assert.Len(t, rel.Rows(), 2)
	assert.Equal(t, "BEGIN:VCARD\nFN:Agent Smith\nTEL;TYPE=WORK:555-0100\nEND:VCARD", rel.Format(revision.Legacy))

	same := value.NewEmbedded("VCARD", []*row.Row{
		row.New("", "FN", param.List{}, "Agent Smith"),
		row.New("", "TEL", param.New(false, param.Param{Name: "TYPE", Raw: "WORK"}), "555-0100"),
	})
	assert.True(t, rel.Equal(same))
	assert.False(t, rel.Equal(value.NewEmbedded("VCARD", []*row.Row{fn})))
	assert.False(t, rel.Equal(value.NewRelationText("x")))

	r := &idRecorder{}
	for _, v := range []value.Relation{
		value.ParseRelation("http://example.com/"),
		rel,
		value.NewRelationText("colleague"),
	} {
		assert.NoError(t, v.Visit(r))
	}
	assert.Equal(t, []string{"id", "uri:http://example.com/", "embedded:VCARD", "text:colleague"}, r.got)
}

func TestContactID_MapKey(t *testing.T) {
	t.Parallel()

	seen := map[value.ContactID]int{}
	for _, s := range []string{
		"urn:uuid:" + sampleUUID,
		sampleUUID,
		"http://example.com/",
		" http://example.com/ ",
		"someone",
	} {
		seen[value.ParseIdentifier(s)]++
	}

	assert.Equal(t, 2, seen[value.ParseIdentifier(sampleUUID)])
	assert.Equal(t, 2, seen[value.ParseIdentifier("http://example.com/")])
	assert.Equal(t, 1, seen[value.NewIdentifierText("someone")])

	u, err := value.NewIdentifierURI("http://example.com/")
	require.NoError(t, err)
	assert.True(t, u == value.ParseIdentifier("http://example.com/"))
	assert.Equal(t, "example.com", u.URI().Host)
	assert.Nil(t, value.NewIdentifierText("x").URI())
}

func TestRelation_Key(t *testing.T) {
	t.Parallel()

	fn := row.New("", "FN", param.List{}, "Agent Smith")
	a := value.NewEmbedded("vcard", []*row.Row{fn})
	b := value.NewEmbedded("VCARD", []*row.Row{row.New("", "FN", param.List{}, "Agent Smith")})
	require.True(t, a.Equal(b))
	assert.Equal(t, a.Key(), b.Key())

	seen := map[string]value.Relation{a.Key(): a}
	_, ok := seen[b.Key()]
	assert.True(t, ok)

	byUUID := value.ParseRelation("urn:uuid:" + sampleUUID)
	id, err := value.NewIdentifierURI("urn:uuid:" + sampleUUID)
	require.NoError(t, err)
	byURI := value.NewRelationIdentifier(id)
	assert.False(t, byUUID.Equal(byURI))
	assert.NotEqual(t, byUUID.Key(), byURI.Key())
	assert.NotEqual(t, value.NewRelationText("x").Key(), value.ParseRelation("http://x.example/").Key())
}

func TestParseBinary(t *testing.T) {
	t.Parallel()

	v := content.New("QUJD")
	require.NoError(t, v.DecodeTransfer(param.Parse("ENCODING=b", true), revision.Intermediate))
	b := value.ParseBinary(v, revision.Intermediate)
	assert.Equal(t, value.Data, b.Kind())
	assert.Equal(t, []byte("ABC"), b.Data())
	assert.Equal(t, "QUJD", b.Format(revision.Intermediate))
	assert.Equal(t, "data:application/octet-stream;base64,QUJD", b.Format(revision.Current))

	b = b.WithMediaType("Image/PNG")
	assert.Equal(t, "image/png", b.MediaType())
	assert.Equal(t, "data:image/png;base64,QUJD", b.String())

	v = content.New("data:image/png;base64,QUJD")
	require.NoError(t, v.DecodeTransfer(param.List{}, revision.Current))
	b = value.ParseBinary(v, revision.Current)
	assert.Equal(t, value.Data, b.Kind())
	assert.Equal(t, "image/png", b.MediaType())
	assert.True(t, b.Equal(value.NewData([]byte("ABC"), "image/png")))

	// a data URL is read in other revisions too, once it is text
	v = content.New("data:image/gif;base64,QUJD")
	require.NoError(t, v.DecodeTransfer(param.List{}, revision.Intermediate))
	b = value.ParseBinary(v, revision.Intermediate)
	assert.Equal(t, value.Data, b.Kind())
	assert.Equal(t, "image/gif", b.MediaType())

	v = content.New("http://example.com/photo.jpg")
	require.NoError(t, v.DecodeTransfer(param.List{}, revision.Current))
	b = value.ParseBinary(v, revision.Current)
	assert.Equal(t, value.URI, b.Kind())
	assert.Equal(t, "http://example.com/photo.jpg", b.URI())
	assert.Equal(t, "http://example.com/photo.jpg", b.Format(revision.Legacy))

	v = content.New(`no photo\, sorry`)
	require.NoError(t, v.DecodeTransfer(param.List{}, revision.Current))
	b = value.ParseBinary(v, revision.Current)
	assert.Equal(t, value.Text, b.Kind())
	assert.Equal(t, "no photo, sorry", b.Text())
}

func TestNewReference(t *testing.T) {
	t.Parallel()

	b, err := value.NewReference("http://example.com/a.png", "IMAGE/PNG")
	require.NoError(t, err)
	assert.Equal(t, value.URI, b.Kind())
	assert.Equal(t, "image/png", b.MediaType())

	_, err = value.NewReference("a.png", "")
	assert.ErrorIs(t, err, value.ErrRelativeURI)
}

func TestBinary_Visit(t *testing.T) {
	t.Parallel()

	r := &idRecorder{}
	ref, err := value.NewReference("http://example.com/a.png", "")
	require.NoError(t, err)

	for _, b := range []value.Binary{
		value.NewData([]byte("ABC"), "image/png"),
		ref,
		value.NewBinaryText("none"),
	} {
		assert.NoError(t, b.Visit(r))
	}
	assert.Equal(t, []string{"data:image/png:ABC", "uri:http://example.com/a.png", "text:none"}, r.got)

	assert.Error(t, value.Binary{}.Visit(r))
}

func TestKind_String(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "date", value.Date.String())
	assert.Equal(t, "embedded", value.Embedded.String())
	assert.Equal(t, "invalid", value.Kind(99).String())
}
