package transfer_test

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zostay/go-vcard/transfer"
)

const dec = `1 Timothy 6:10 - For the love of money is a root of all kinds of evils.`
const enc = `MSBUaW1vdGh5IDY6MTAgLSBGb3IgdGhlIGxvdmUgb2YgbW9uZXkgaXMgYSByb290IG9mIGFsbCBr
aW5kcyBvZiBldmlscy4=`

func TestDecodeString(t *testing.T) {
	t.Parallel()

	b, err := transfer.DecodeString("BASE64", enc)
	require.NoError(t, err)
	assert.Equal(t, []byte(dec), b)

	b, err = transfer.DecodeString("b", "  "+enc+"\n ")
	require.NoError(t, err)
	assert.Equal(t, []byte(dec), b)

	b, err = transfer.DecodeString("Quoted-Printable", "caf=C3=A9 =\nau lait")
	require.NoError(t, err)
	assert.Equal(t, []byte("café au lait"), b)

	b, err = transfer.DecodeString("8bit", "as is")
	require.NoError(t, err)
	assert.Equal(t, []byte("as is"), b)

	_, err = transfer.DecodeString("x-uuencode", "begin")
	assert.ErrorIs(t, err, transfer.ErrUnknownEncoding)
}

func TestDecodeString_SoftBreakWhitespace(t *testing.T) {
	t.Parallel()

	b, err := transfer.DecodeString(transfer.QuotedPrintable, "abc= \ndef")
	require.NoError(t, err)
	assert.Equal(t, []byte("abcdef"), b)

	b, err = transfer.DecodeString(transfer.QuotedPrintable, "caf=C3=A9=\t \r\nbar  \r\nend= ")
	require.NoError(t, err)
	assert.Equal(t, []byte("caf\u00e9bar\r\nend"), b)
}

func TestDecodeBase64_Unpadded(t *testing.T) {
	t.Parallel()

	b, err := transfer.DecodeBase64("QUJDRA")
	require.NoError(t, err)
	assert.Equal(t, []byte("ABCD"), b)
}

func TestEncodeString(t *testing.T) {
	t.Parallel()

	s, err := transfer.EncodeString("base64", []byte("ABC"))
	require.NoError(t, err)
	assert.Equal(t, "QUJD", s)

	s, err = transfer.EncodeString(transfer.QuotedPrintable, []byte("line one\r\nline=two"))
	require.NoError(t, err)
	assert.Equal(t, "line one=0D=0Aline=3Dtwo", s)

	s, err = transfer.EncodeString(transfer.Bit7, []byte("plain"))
	require.NoError(t, err)
	assert.Equal(t, "plain", s)
}

func TestNewBase64LineEncoder(t *testing.T) {
	t.Parallel()

	w := &bytes.Buffer{}
	wc := transfer.NewBase64LineEncoder(w, 8, []byte("\n "))
	n, err := wc.Write([]byte(dec[:24]))
	assert.Equal(t, 24, n)
	assert.NoError(t, err)
	assert.NoError(t, wc.Close())

	assert.Equal(t, "MSBUaW1v\n dGh5IDY6\n MTAgLSBG\n b3IgdGhl", w.String())

	b, err := transfer.DecodeBase64(w.String())
	require.NoError(t, err)
	assert.Equal(t, []byte(dec[:24]), b)
}

func TestHasSoftBreak(t *testing.T) {
	t.Parallel()

	assert.True(t, transfer.HasSoftBreak([]byte("NOTE;QUOTED-PRINTABLE:abc=")))
	assert.True(t, transfer.HasSoftBreak([]byte("abc= \t")))
	assert.False(t, transfer.HasSoftBreak([]byte("abc=3D")))
	assert.False(t, transfer.HasSoftBreak([]byte("")))
}

func TestSoftBreaks(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "a=\nb", transfer.SoftBreaks("a=\r\nb", "\n"))
	assert.Equal(t, "a=\r\nb", transfer.SoftBreaks("a=\r\nb", "\r\n"))
}
