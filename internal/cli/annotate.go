package cli

import (
	"bytes"
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"
)

func newAnnotateCmd(s *state) *cobra.Command {
	var (
		output string
		embed  bool
	)

	cmd := &cobra.Command{
		Use:   "annotate <file|url>",
		Short: "Set dir and lang on the message elements of an HTML document",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var buf bytes.Buffer
			stats, err := s.client().AnnotateLocation(args[0], &buf, embed)
			if err != nil {
				return err
			}

			slog.Info("annotated", "input", args[0],
				"elements", stats.Elements, "rtl", stats.RTL, "ltr", stats.LTR, "auto", stats.Auto)

			if output == "" {
				_, err = cmd.OutOrStdout().Write(buf.Bytes())
				return err
			}
			if err := os.WriteFile(output, buf.Bytes(), 0o644); err != nil {
				return fmt.Errorf("write %s: %w", output, err)
			}
			return nil
		},
	}

	s.addStyleFlags(cmd)
	cmd.Flags().StringVarP(&output, "output", "o", "", "Output file (default stdout)")
	cmd.Flags().BoolVar(&embed, "inject", false, "Embed the generated stylesheet in head")
	return cmd
}
