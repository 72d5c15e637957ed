package cli

import (
	"github.com/spf13/cobra"
)

func newPreviewCmd(s *state) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "preview <file|url>",
		Short: "Show the direction each element resolves to under the generated stylesheet",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			rows, err := s.client().PreviewLocation(args[0])
			if err != nil {
				return err
			}

			t := &table{header: []string{"ELEMENT", "DIRECTION", "TEXT-ALIGN", "UNICODE-BIDI"}}
			for _, r := range rows {
				dir := r.Direction
				if r.Important {
					dir += " !"
				}
				t.add(r.Path, dir, r.TextAlign, r.UnicodeBidi)
			}
			return t.write(cmd.OutOrStdout())
		},
	}

	s.addStyleFlags(cmd)
	return cmd
}
