package cli

import (
	"log/slog"

	"github.com/rtl-agents/rtlagents/pkg/api"
	"github.com/spf13/cobra"
)

func newReportCmd(s *state) *cobra.Command {
	var (
		output    string
		font      string
		logo      string
		title     string
		landscape bool
	)

	cmd := &cobra.Command{
		Use:   "report <file|url>",
		Short: "Write a PDF report classifying each line of a text document",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts := []api.Option{api.WithTitle(title)}
			if landscape {
				opts = append(opts, api.WithPageOrientation(api.PageOrientationLandscape))
			}
			c := s.client(opts...)

			lines, err := c.ReadLines(args[0])
			if err != nil {
				return err
			}
			if err := c.ReportToFile(lines, output, api.ReportOptions{Font: font, Logo: logo}); err != nil {
				return err
			}

			slog.Info("report written", "input", args[0], "output", output, "lines", len(lines))
			return nil
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "Output PDF file")
	cmd.Flags().StringVar(&font, "font", "", "UTF-8 TrueType font file or URL; searched in $RTLAGENTS_FONT_DIR")
	cmd.Flags().StringVar(&logo, "logo", "", "Header image file or URL")
	cmd.Flags().StringVar(&title, "title", api.DefaultOptions().Title, "Report title")
	cmd.Flags().BoolVar(&landscape, "landscape", false, "Landscape pages")
	cmd.MarkFlagRequired("output")
	return cmd
}
