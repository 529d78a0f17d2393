package cmd

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/go-kit/log/level"
	"github.com/spf13/cobra"

	"github.com/zostay/go-vcard/lexer"
)

var rowsCmd = &cobra.Command{
	Use:   "rows file",
	Short: "Dumps the logical rows the lexer finds in a file",
	Args:  cobra.ExactArgs(1),
	RunE:  RunRows,
}

func init() {
	rootCmd.AddCommand(rowsCmd)
}

func RunRows(cmd *cobra.Command, args []string) error {
	f, err := os.Open(args[0])
	if err != nil {
		return err
	}
	defer func() { _ = f.Close() }()

	lx := lexer.New(f)
	for {
		line, err := lx.Next()
		var merr *lexer.MalformedError
		switch {
		case errors.As(err, &merr):
			level.Warn(logger).Log("msg", "skipping malformed input", "line", merr.Number, "err", err)
			continue
		case errors.Is(err, io.EOF):
			fmt.Printf("break = %q, revision = %s\n", lx.Break(), lx.Revision())
			return nil
		case err != nil:
			return err
		}

		nested := ""
		if line.Nested {
			nested = " nested"
		}
		fmt.Printf("%5d %-5s%s %q\n", line.Number, line.Kind, nested, line.Text)
	}
}
