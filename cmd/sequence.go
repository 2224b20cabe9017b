package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/nroehner/libSBOL/internal/tracing"
)

func (c *cli) sequenceCmd() *cobra.Command {
	var prefix string
	cmd := &cobra.Command{
		Use:   "sequence FILE URI",
		Short: "Print the composed sequence of a component definition",
		Long: `Print the sequence of a component definition. A composite definition is composed from
the sequences of its components in constraint order, recursively; a leaf definition prints its
own sequence elements.

Examples:
  sbol sequence design.nq http://examples.com/ComponentDefinition/cassette/1.0.0
  sbol sequence design.json http://examples.com/cd/1 --prefix NNN`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			seq, err := c.composeSequence(cmd.Context(), args[0], args[1], prefix)
			if err != nil {
				return err
			}
			_, err = fmt.Fprintln(cmd.OutOrStdout(), seq)
			return err
		},
	}
	cmd.Flags().StringVarP(&prefix, "prefix", "p", "", "text prepended to a composite sequence")
	return cmd
}

func (c *cli) composeSequence(ctx context.Context, path, uri, prefix string) (string, error) {
	doc, err := c.readDocument(ctx, path)
	if err != nil {
		return "", err
	}
	defer doc.Close()

	var seq string
	err = tracing.Run(ctx, c.tracer(), tracing.SpanSequence, func(ctx context.Context, span trace.Span) error {
		def, err := doc.ComponentDefinitions.Get(uri)
		if err != nil {
			return err
		}
		seq, err = def.UpdateSequence(prefix)
		return err
	}, attribute.String(tracing.AttrDefinition, uri))
	return seq, err
}
