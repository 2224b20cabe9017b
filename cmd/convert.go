package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/nroehner/libSBOL/internal/sbolio"
)

func (c *cli) convertCmd() *cobra.Command {
	var to string
	cmd := &cobra.Command{
		Use:   "convert IN OUT",
		Short: "Convert a document between formats",
		Long: `Read IN and write it to OUT. Formats follow the file extensions (.nq, .json, .db or
.sqlite) unless --to names the output format.

Examples:
  sbol convert design.nq design.json
  sbol convert design.json store.bin --to sqlite`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			doc, err := c.readDocument(ctx, args[0])
			if err != nil {
				return err
			}
			defer doc.Close()

			format := to
			if format == "" {
				format = sbolio.FormatForPath(args[1], c.cfg.FileFormat)
			}
			if err := c.serializer.WriteAs(ctx, doc, args[1], format); err != nil {
				return err
			}
			_, err = fmt.Fprintf(cmd.OutOrStdout(), "wrote %d objects to %s (%s)\n", doc.Len(), args[1], format)
			return err
		},
	}
	cmd.Flags().StringVar(&to, "to", "", "output format: json, nquads or sqlite")
	return cmd
}
