package row_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zostay/go-vcard/param"
	"github.com/zostay/go-vcard/revision"
	"github.com/zostay/go-vcard/row"
)

func TestParse(t *testing.T) {
	t.Parallel()

	r, err := row.Parse("KEY;PARAM=A,B:value", revision.Current)
	require.NoError(t, err)

	assert.Equal(t, "", r.Group())
	assert.Equal(t, "KEY", r.Name())
	assert.Equal(t, 1, r.Params().Len())
	assert.Equal(t, []string{"A", "B"}, r.Params().Values("PARAM"))
	assert.Equal(t, "value", r.Value())
}

func TestParse_Group(t *testing.T) {
	t.Parallel()

	r, err := row.Parse("item1.tel;type=cell:+1 555 0100", revision.Current)
	require.NoError(t, err)
	assert.Equal(t, "ITEM1", r.Group())
	assert.Equal(t, "TEL", r.Name())
	assert.Equal(t, "cell", r.Params().Get(param.Type))
	assert.Equal(t, "+1 555 0100", r.Value())

	// a period in the parameters is not a group separator
	r, err = row.Parse("URL;X-HOST=a.b:http://example.com/", revision.Current)
	require.NoError(t, err)
	assert.Equal(t, "", r.Group())
	assert.Equal(t, "URL", r.Name())
	assert.Equal(t, "a.b", r.Params().Get("X-HOST"))
	assert.Equal(t, "http://example.com/", r.Value())
}

func TestParse_QuoteAware(t *testing.T) {
	t.Parallel()

	r, err := row.Parse(`ADR;TYPE="HOME,WORK":;;Main St`, revision.Current)
	require.NoError(t, err)
	assert.Equal(t, "ADR", r.Name())
	assert.Equal(t, []param.Param{{Name: "TYPE", Raw: `"HOME,WORK"`}}, r.Params().All())
	assert.Equal(t, []string{"HOME,WORK"}, r.Params().Values(param.Type))
	assert.Equal(t, ";;Main St", r.Value())

	r, err = row.Parse(`GEO;LABEL="a:b;c":geo:1,2`, revision.Current)
	require.NoError(t, err)
	assert.Equal(t, "a:b;c", r.Params().Get("LABEL"))
	assert.Equal(t, "geo:1,2", r.Value())
}

func TestParse_NoValue(t *testing.T) {
	t.Parallel()

	r, err := row.Parse("AGENT:", revision.Legacy)
	require.NoError(t, err)
	assert.Equal(t, "AGENT", r.Name())
	assert.Equal(t, "", r.Value())

	r, err = row.Parse("X-FLAG", revision.Legacy)
	require.NoError(t, err)
	assert.Equal(t, "X-FLAG", r.Name())
	assert.Equal(t, "", r.Value())
}

func TestParse_Malformed(t *testing.T) {
	t.Parallel()

	tests := []string{
		":value",
		";TYPE=HOME:value",
		"group.:value",
		`KEY;LABEL="open:value`,
	}

	for _, text := range tests {
		r, err := row.Parse(text, revision.Current)
		assert.Nil(t, r, text)
		assert.ErrorIs(t, err, row.ErrMalformed, text)

		var merr *row.MalformedError
		if assert.True(t, errors.As(err, &merr), text) {
			assert.Equal(t, text, merr.Text)
		}
	}
}

func TestParse_Caret(t *testing.T) {
	t.Parallel()

	r, err := row.Parse(`ADR;LABEL=a^nb:x`, revision.Current)
	require.NoError(t, err)
	assert.Equal(t, "a\nb", r.Params().Get("LABEL"))

	r, err = row.Parse(`ADR;LABEL=a^nb:x`, revision.Legacy)
	require.NoError(t, err)
	assert.Equal(t, "a^nb", r.Params().Get("LABEL"))
}

func TestRow_String(t *testing.T) {
	t.Parallel()

	r := row.New("item2", "email", param.New(true, param.Param{Name: "type", Raw: "work"}), "a@example.com")
	assert.Equal(t, "ITEM2.EMAIL;TYPE=work:a@example.com", r.String())

	text := `ADR;TYPE="HOME,WORK":;;Main St`
	pr, err := row.Parse(text, revision.Current)
	require.NoError(t, err)
	assert.Equal(t, text, pr.String())
}

func TestClassify(t *testing.T) {
	t.Parallel()

	h := row.Classify([]byte("NOTE;ENCODING=QUOTED-PRINTABLE:line one=0D=0A="))
	assert.True(t, h.Valid)
	assert.Equal(t, "NOTE", h.Name)
	assert.True(t, h.QuotedPrintable)
	assert.True(t, h.SoftBreak)
	assert.True(t, h.HasValue)

	h = row.Classify([]byte("NOTE;QUOTED-PRINTABLE:done"))
	assert.True(t, h.QuotedPrintable)
	assert.False(t, h.SoftBreak)

	h = row.Classify([]byte("PHOTO;ENCODING=BASE64;TYPE=JPEG:QUJD"))
	assert.True(t, h.Base64)
	assert.True(t, h.HasValue)

	h = row.Classify([]byte("PHOTO;BASE64:"))
	assert.True(t, h.Base64)
	assert.False(t, h.HasValue)

	h = row.Classify([]byte("VERSION:4.0"))
	assert.Equal(t, "VERSION", h.Name)
	assert.Equal(t, revision.Current, h.Version)

	h = row.Classify([]byte("FN:x"))
	assert.Equal(t, revision.Unknown, h.Version)

	assert.Equal(t, row.Hints{}, row.Classify([]byte(":nothing")))
}
