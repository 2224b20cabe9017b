package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/nroehner/libSBOL/internal/domain/sbol"
	"github.com/nroehner/libSBOL/internal/log"
	"github.com/nroehner/libSBOL/internal/tracing"
)

func (c *cli) assembleCmd() *cobra.Command {
	var (
		displayID string
		out       string
	)
	cmd := &cobra.Command{
		Use:   "assemble FILE URI URI...",
		Short: "Create a definition assembled from ordered parts",
		Long: `Create a new component definition whose components instantiate the given definitions
in order, chained by precedes constraints. Requires compliant identities and a homespace.

The document is written back to FILE unless --out names another path.

Examples:
  sbol assemble design.nq --id cassette \
    http://examples.com/ComponentDefinition/promoter/1.0.0 \
    http://examples.com/ComponentDefinition/cds/1.0.0 \
    --homespace http://examples.com --compliant --typed`,
		Args: cobra.MinimumNArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			if displayID == "" {
				return fmt.Errorf("--id is required")
			}
			ctx := cmd.Context()
			doc, err := c.readDocument(ctx, args[0])
			if err != nil {
				return err
			}
			defer doc.Close()

			target, err := c.assemble(ctx, doc, displayID, args[1:])
			if err != nil {
				return err
			}

			dest := args[0]
			if out != "" {
				dest = out
			}
			if err := c.serializer.Write(ctx, doc, dest); err != nil {
				return err
			}
			_, err = fmt.Fprintln(cmd.OutOrStdout(), target.URI())
			return err
		},
	}
	cmd.Flags().StringVar(&displayID, "id", "", "display id of the new definition (required)")
	cmd.Flags().StringVarP(&out, "out", "o", "", "write the result here instead of FILE")
	return cmd
}

func (c *cli) assemble(ctx context.Context, doc *sbol.Document, displayID string, uris []string) (*sbol.ComponentDefinition, error) {
	var target *sbol.ComponentDefinition
	err := tracing.Run(ctx, c.tracer(), tracing.SpanAssemble, func(ctx context.Context, span trace.Span) error {
		parts := make([]*sbol.ComponentDefinition, 0, len(uris))
		for _, uri := range uris {
			def, err := doc.ComponentDefinitions.Get(uri)
			if err != nil {
				return err
			}
			parts = append(parts, def)
		}

		var err error
		target, err = doc.ComponentDefinitions.Create(displayID)
		if err != nil {
			return err
		}
		if target == nil {
			return fmt.Errorf("definition %q was not created", displayID)
		}
		span.SetAttributes(attribute.String(tracing.AttrDefinition, target.URI()))
		return target.Assemble(parts)
	}, attribute.Int(tracing.AttrParts, len(uris)))
	if err != nil {
		return nil, err
	}
	log.Info(log.CatCLI, "assembled", "definition", target.URI(), "parts", len(uris))
	return target, nil
}
