// Package transfer contains utilities for the legacy content transfer
// encodings a property may declare with its ENCODING parameter. Only
// quoted-printable and base64 (including the "b" spelling used by the
// intermediate revision) actually change the value. Other settings such as
// 7bit or 8bit leave the bytes as-is.
//
// The package also reads and writes data URLs, which the current revision
// uses to carry inline binary values in place of an ENCODING parameter.
//
// For the sake of this module, the term "decoded" means the value has been
// transformed from the named encoding into raw bytes. Meanwhile, "encoded"
// means the raw bytes have been transformed into the named encoding.
package transfer
