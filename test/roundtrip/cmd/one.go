package cmd

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/sergi/go-diff/diffmatchpatch"
	"github.com/spf13/cobra"

	"github.com/zostay/go-vcard"
	"github.com/zostay/go-vcard/revision"
)

var outRevision string

var oneCmd = &cobra.Command{
	Use:   "one file",
	Short: "Shows the diff of a single file round-trip",
	Args:  cobra.ExactArgs(1),
	RunE:  RunOne,
}

func init() {
	oneCmd.Flags().StringVarP(&outRevision, "revision", "r", "", "write every record in this revision (2.1, 3.0, or 4.0)")
	rootCmd.AddCommand(oneCmd)
}

func RunOne(cmd *cobra.Command, args []string) error {
	path := args[0]
	orig, err := os.ReadFile(path)
	if err != nil {
		return err
	}

	var opts []vcard.Option
	if outRevision != "" {
		rev, err := revision.Parse(outRevision)
		if err != nil {
			return err
		}
		opts = append(opts, vcard.WithRevision(rev))
	}

	r := vcard.NewReader(bytes.NewReader(orig), vcard.WithLogger(logger))
	recs, err := readAll(r)
	if err != nil {
		return err
	}

	var rt bytes.Buffer
	w := vcard.NewWriter(&rt, append(opts, vcard.WithLogger(logger))...)
	for _, rec := range recs {
		if err := w.Write(rec); err != nil {
			return err
		}
	}

	fmt.Printf("path    = %s\n", path)
	fmt.Printf("records = %d\n", len(recs))
	fmt.Printf("dropped = %d\n", r.Dropped())

	dmp := diffmatchpatch.New()
	a, b, lines := dmp.DiffLinesToChars(string(orig), rt.String())
	diffs := dmp.DiffCharsToLines(dmp.DiffMain(a, b, false), lines)
	if len(diffs) == 0 || (len(diffs) == 1 && diffs[0].Type == diffmatchpatch.DiffEqual) {
		fmt.Println("no differences")
		return nil
	}

	fmt.Print(dmp.DiffPrettyText(diffs))
	return nil
}

func readAll(r *vcard.Reader) ([]*vcard.Record, error) {
	var recs []*vcard.Record
	for {
		rec, err := r.Next()
		if err != nil {
			if errors.Is(err, io.EOF) {
				return recs, nil
			}
			return recs, err
		}
		recs = append(recs, rec)
	}
}
