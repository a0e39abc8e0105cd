package main

import (
	"encoding/json"
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	tooltip "github.com/goliatone/go-tooltip"
	"github.com/goliatone/go-tooltip/schema/openapi"
)

func newAttributesCmd() *cobra.Command {
	var asJSON, asOpenAPI bool
	cmd := &cobra.Command{
		Use:   "attributes",
		Short: "List the configurable attributes and their defaults",
		RunE: func(cmd *cobra.Command, args []string) error {
			if asOpenAPI {
				doc, err := openapi.Generate(openapi.WithInfo("", Version))
				if err != nil {
					return err
				}
				enc := json.NewEncoder(cmd.OutOrStdout())
				enc.SetIndent("", "  ")
				return enc.Encode(doc)
			}
			descriptors := tooltip.AttributeDescriptors()
			if asJSON {
				enc := json.NewEncoder(cmd.OutOrStdout())
				enc.SetIndent("", "  ")
				return enc.Encode(descriptors)
			}
			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "ATTRIBUTE\tKEY\tTYPE\tDEFAULT\tDESCRIPTION")
			for _, d := range descriptors {
				fmt.Fprintf(w, "%s\t%s\t%s\t%v\t%s\n", d.Attribute, d.Key, d.Type, d.Default, d.Description)
			}
			return w.Flush()
		},
	}
	cmd.Flags().BoolVar(&asJSON, "json", false, "print JSON")
	cmd.Flags().BoolVar(&asOpenAPI, "openapi", false, "print an OpenAPI components document")
	return cmd
}
