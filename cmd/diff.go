package cmd

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/nroehner/libSBOL/internal/docdiff"
)

var errDocumentsDiffer = errors.New("documents differ")

func (c *cli) diffCmd() *cobra.Command {
	var exitCode bool
	cmd := &cobra.Command{
		Use:   "diff A B",
		Short: "Show the triples that differ between two documents",
		Long: `Compare two documents triple by triple. Lines only in A are prefixed with "- ",
lines only in B with "+ ". The files may be in different formats.

Examples:
  sbol diff before.nq after.json
  sbol diff before.nq after.nq --exit-code`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			a, err := c.readDocument(ctx, args[0])
			if err != nil {
				return err
			}
			defer a.Close()
			b, err := c.readDocument(ctx, args[1])
			if err != nil {
				return err
			}
			defer b.Close()

			res, err := docdiff.Documents(ctx, a, b)
			if err != nil {
				return err
			}
			if res.Equal() {
				_, err = fmt.Fprintln(cmd.OutOrStdout(), "documents are identical")
				return err
			}
			if _, err := fmt.Fprint(cmd.OutOrStdout(), res.String()); err != nil {
				return err
			}
			if exitCode {
				return errDocumentsDiffer
			}
			return nil
		},
	}
	cmd.Flags().BoolVar(&exitCode, "exit-code", false, "fail when the documents differ")
	return cmd
}
