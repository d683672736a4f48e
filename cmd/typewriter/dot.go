package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/comalice/typewriterx"
	"github.com/comalice/typewriterx/internal/render"
)

var (
	dotMode string
	dotJSON bool
)

var dotCmd = &cobra.Command{
	Use:   "dot",
	Short: "Print the mode graph as Graphviz DOT",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		edges := typewriterx.ModeGraph()
		if dotJSON {
			data, err := render.ExportJSON(edges)
			if err != nil {
				return err
			}
			_, err = fmt.Fprintln(cmd.OutOrStdout(), string(data))
			return err
		}

		current := typewriterx.Typing
		if dotMode != "" {
			m, err := typewriterx.ParseMode(dotMode)
			if err != nil {
				return err
			}
			current = m
		}
		_, err := fmt.Fprint(cmd.OutOrStdout(), render.ExportDOT(edges, current))
		return err
	},
}

func init() {
	dotCmd.Flags().StringVar(&dotMode, "mode", "", "highlight this mode (default typing)")
	dotCmd.Flags().BoolVar(&dotJSON, "json", false, "print the edge list as JSON instead")
}
