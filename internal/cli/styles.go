package cli

import (
	"fmt"

	"github.com/rtl-agents/rtlagents/internal/parser/css"
	"github.com/spf13/cobra"
)

func newStylesCmd(s *state) *cobra.Command {
	var summary bool

	cmd := &cobra.Command{
		Use:   "styles",
		Short: "Print the generated RTL stylesheet",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			styles := s.client().Styles()
			out := cmd.OutOrStdout()

			if !summary {
				_, err := fmt.Fprintln(out, styles)
				return err
			}

			sheet, err := css.NewParser().ParseString(styles)
			if err != nil {
				return fmt.Errorf("parse generated css: %w", err)
			}
			_, err = fmt.Fprintf(out, "%d rules, %d selectors, %d bytes\n", len(sheet.Rules), sheet.SelectorCount(), len(styles))
			return err
		},
	}

	s.addStyleFlags(cmd)
	cmd.Flags().BoolVar(&summary, "summary", false, "Print rule and selector counts instead of the CSS")
	return cmd
}
