package main

import (
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

func newVariantsCmd(a *app) *cobra.Command {
	var asYAML bool

	cmd := &cobra.Command{
		Use:   "variants",
		Short: "List the proposal variants",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			catalog := a.engine.Catalog()
			if asYAML {
				enc := yaml.NewEncoder(cmd.OutOrStdout())
				enc.SetIndent(2)
				if err := enc.Encode(catalog); err != nil {
					return err
				}
				return enc.Close()
			}

			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "NAME\tTEMPLATE\tPRICING")
			for _, v := range catalog.Variants() {
				keys := make([]string, len(v.PricingFields))
				for i, f := range v.PricingFields {
					keys[i] = f.Key
				}
				fmt.Fprintf(w, "%s\t%s\t%s\n", v.Name, a.engine.TemplatePath(v), strings.Join(keys, ", "))
			}
			return w.Flush()
		},
	}
	cmd.Flags().BoolVar(&asYAML, "yaml", false, "Print the catalog as YAML, ready to be edited and passed to --catalog")
	return cmd
}

func newTokensCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "tokens <variant>",
		Short: "List the placeholders a variant's template may use",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			v, err := a.engine.Catalog().Lookup(args[0])
			if err != nil {
				return err
			}
			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			for _, d := range v.Describe() {
				fmt.Fprintf(w, "%s\t%s\n", color.CyanString(d[0]), d[1])
			}
			return w.Flush()
		},
	}
}
