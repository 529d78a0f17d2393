// Package vcard reads and writes contact records in the three revisions of
// the vCard format: the legacy 2.1 revision, the intermediate 3.0 revision,
// and the current 4.0 revision.
//
// The revisions disagree about almost everything below the record level: how
// long rows are folded onto physical lines, which characters are escaped,
// how binary data and non-ASCII text are transfer encoded, and whether a
// record may be embedded in another. The work is split up accordingly:
//
//   - lexer turns physical lines into logical rows, following the folding,
//     quoted-printable, base64 block, and embedded record rules,
//   - row splits a logical row into group, name, parameters, and raw value,
//   - param tokenizes the parameters,
//   - content undoes the transfer encoding and the escaping of a value,
//   - value holds the values that can take more than one shape, and
//   - property builds typed values from rows.
//
// This package ties those together. A Reader produces one Record at a time
// and a Writer writes a Record back out in any revision:
//
//	recs, err := vcard.Parse(r)
//	if err != nil {
//	    return err
//	}
//
//	w := vcard.NewWriter(os.Stdout, vcard.WithRevision(revision.Current))
//	for _, rec := range recs {
//	    if err := w.Write(rec); err != nil {
//	        return err
//	    }
//	}
//
// Reading is forgiving. Rows that cannot be understood are skipped and
// reported through the logger given with WithLogger, and Reader.Dropped says
// how many there were. Only errors from the underlying io.Reader stop a
// Reader.
package vcard
