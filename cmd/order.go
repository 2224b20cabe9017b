package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/nroehner/libSBOL/internal/presentation"
)

func (c *cli) orderCmd() *cobra.Command {
	var asJSON bool
	cmd := &cobra.Command{
		Use:   "order FILE URI",
		Short: "List a definition's components in constraint order",
		Long: `List the components of a definition by walking its precedes constraints from the
first component to the last. Branching or cyclic constraints are reported as errors.

Examples:
  sbol order design.nq http://examples.com/ComponentDefinition/cassette/1.0.0
  sbol order design.nq http://examples.com/ComponentDefinition/cassette/1.0.0 --json | jq '.components[].definition'`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			doc, err := c.readDocument(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			defer doc.Close()

			def, err := doc.ComponentDefinitions.Get(args[1])
			if err != nil {
				return err
			}
			components, err := def.InSequentialOrder()
			if err != nil {
				return err
			}

			dto := presentation.FromOrder(def, components)
			if asJSON {
				return presentation.NewFormatter(cmd.OutOrStdout()).FormatOrder(dto)
			}
			for _, comp := range dto.Components {
				if _, err := fmt.Fprintf(cmd.OutOrStdout(), "%d\t%s\t%s\n", comp.Position, comp.URI, comp.Definition); err != nil {
					return err
				}
			}
			return nil
		},
	}
	cmd.Flags().BoolVar(&asJSON, "json", false, "print the order as JSON")
	return cmd
}
