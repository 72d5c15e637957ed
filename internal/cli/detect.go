package cli

import (
	"bufio"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"github.com/rtl-agents/rtlagents/pkg/api"
	"github.com/spf13/cobra"
)

// detection is one line of detect --json output
type detection struct {
	Text string `json:"text"`
	api.DetectionResult
	CSSDirection api.Direction `json:"cssDirection"`
}

func newDetectCmd(s *state) *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "detect [text...]",
		Short: "Classify text direction",
		Long:  "Classifies each argument, or each non-empty line of stdin when no argument is given.",
		RunE: func(cmd *cobra.Command, args []string) error {
			inputs := args
			if len(inputs) == 0 {
				scanner := bufio.NewScanner(cmd.InOrStdin())
				scanner.Buffer(make([]byte, 64*1024), 1024*1024)
				for scanner.Scan() {
					if line := scanner.Text(); strings.TrimSpace(line) != "" {
						inputs = append(inputs, line)
					}
				}
				if err := scanner.Err(); err != nil {
					return fmt.Errorf("read stdin: %w", err)
				}
			}

			detector := s.client().Detector()
			results := make([]detection, 0, len(inputs))
			for _, in := range inputs {
				results = append(results, detection{
					Text:            in,
					DetectionResult: detector.Detect(in),
					CSSDirection:    detector.CSSDirection(in),
				})
			}

			s.logger.Debug("classified inputs", "count", len(results))

			out := cmd.OutOrStdout()
			if asJSON {
				enc := json.NewEncoder(out)
				for _, r := range results {
					if err := enc.Encode(r); err != nil {
						return err
					}
				}
				return nil
			}

			t := &table{header: []string{"TEXT", "LANGUAGE", "DIRECTION", "CONFIDENCE", "RTL%", "CSS"}}
			for _, r := range results {
				t.add(r.Text,
					r.Language.String(),
					r.Direction.String(),
					strconv.FormatFloat(r.Confidence, 'f', 2, 64),
					strconv.FormatFloat(r.RTLPercentage*100, 'f', 0, 64),
					r.CSSDirection.String())
			}
			return t.write(out)
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "Print one JSON object per input")
	return cmd
}
