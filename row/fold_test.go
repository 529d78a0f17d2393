package row_test

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zostay/go-vcard/revision"
	"github.com/zostay/go-vcard/row"
)

func fold(t *testing.T, vf *row.FoldEncoding, s string, lb row.Break) string {
	t.Helper()

	var buf bytes.Buffer
	n, err := vf.Fold(&buf, []byte(s), lb)
	require.NoError(t, err)
	assert.Equal(t, int64(buf.Len()), n)
	return buf.String()
}

func TestNewFoldEncoding(t *testing.T) {
	t.Parallel()

	_, err := row.NewFoldEncoding("  ", 75, false)
	assert.ErrorIs(t, err, row.ErrFoldIndentSpace)

	_, err = row.NewFoldEncoding("x", 75, false)
	assert.ErrorIs(t, err, row.ErrFoldIndentSpace)

	_, err = row.NewFoldEncoding(" ", 2, false)
	assert.ErrorIs(t, err, row.ErrFoldLengthTooShort)

	vf, err := row.NewFoldEncoding("\t", 10, false)
	require.NoError(t, err)
	assert.Equal(t, "KEY:abcdef\r\n\tghijklmn\r\n", fold(t, vf, "KEY:abcdefghijklmn", row.CRLF))
}

func TestFoldEncoding_Fold(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "FN:short\r\n", fold(t, row.DefaultFoldEncoding, "FN:short", row.CRLF))
	assert.Equal(t, "FN:short\n", fold(t, row.DefaultFoldEncoding, "FN:short", row.LF))
	assert.Equal(t, "FN:short\r\n", fold(t, row.DefaultFoldEncoding, "FN:short", row.Meh))

	long := "NOTE:" + strings.Repeat("0123456789", 10)
	folded := fold(t, row.DefaultFoldEncoding, long, row.CRLF)
	lines := strings.Split(strings.TrimSuffix(folded, "\r\n"), "\r\n")
	require.Len(t, lines, 2)
	assert.Len(t, lines[0], 75)
	assert.Equal(t, " ", lines[1][:1])
	assert.Equal(t, long, lines[0]+lines[1][1:])

	assert.Equal(t, long+"\r\n", fold(t, row.DoNotFoldEncoding, long, row.CRLF))
}

func TestFoldEncoding_FoldUTF8(t *testing.T) {
	t.Parallel()

	vf, err := row.NewFoldEncoding(" ", 8, false)
	require.NoError(t, err)

	// each é is two octets; a break must not land between them
	folded := fold(t, vf, "N:éééééééé", row.LF)
	for _, line := range strings.Split(strings.TrimSuffix(folded, "\n"), "\n") {
		assert.True(t, len(line) <= 8, line)
		assert.True(t, strings.ToValidUTF8(line, "?") == line, line)
	}
	assert.Equal(t, "N:éééééééé", string(row.Unfold([]byte(folded), revision.Current)))
}

func TestFoldEncoding_FoldLegacy(t *testing.T) {
	t.Parallel()

	vf, err := row.NewFoldEncoding(" ", 12, true)
	require.NoError(t, err)

	assert.Equal(t,
		"NOTE:one two\r\n three four\r\n",
		fold(t, vf, "NOTE:one two three four", row.CRLF),
	)
	assert.Equal(t,
		"NOTE:one two\r\n three four\r\n five six\r\n",
		fold(t, vf, "NOTE:one two three four five six", row.CRLF),
	)

	// no whitespace, no break
	assert.Equal(t,
		"NOTE:onetwothreefour\r\n",
		fold(t, vf, "NOTE:onetwothreefour", row.CRLF),
	)

	// the first whitespace past the limit is used when none fits
	assert.Equal(t,
		"NOTE:onetwothree\r\n four\r\n",
		fold(t, vf, "NOTE:onetwothree four", row.CRLF),
	)
}

func TestUnfold(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "KEY:abcdef", string(row.Unfold([]byte("KEY:abc\n def"), revision.Current)))
	assert.Equal(t, "KEY:abc def", string(row.Unfold([]byte("KEY:abc\r\n def\r\n"), revision.Legacy)))
	assert.Equal(t, "KEY:abc\tdef", string(row.Unfold([]byte("KEY:abc\r \tdef"), revision.Intermediate)))
}

func TestFold_Idempotence(t *testing.T) {
	t.Parallel()

	rows := []string{
		"NOTE:" + strings.Repeat("The quick brown fox jumps over the lazy dog. ", 8),
		"NOTE:" + strings.Repeat("Ünïcödé ✓ ", 30),
		"PHOTO:data:image/png;base64," + strings.Repeat("QUJD", 60),
	}

	for _, rev := range []revision.Revision{revision.Legacy, revision.Intermediate, revision.Current} {
		vf := row.FoldEncodingFor(rev)
		for _, r := range rows {
			folded := fold(t, vf, r, row.CRLF)
			unfolded := row.Unfold([]byte(folded), rev)
			assert.Equal(t, r, string(unfolded), "%s", rev)
			assert.Equal(t, folded, fold(t, vf, string(unfolded), row.CRLF), "%s", rev)
		}
	}
}
