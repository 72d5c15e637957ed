// Package cli implements the rtlagents CLI commands.
package cli

import (
	"log/slog"

	"github.com/rtl-agents/rtlagents/internal/config"
	"github.com/rtl-agents/rtlagents/internal/logging"
	"github.com/rtl-agents/rtlagents/pkg/api"
	"github.com/spf13/cobra"
)

// state is shared by the subcommands of one root command
type state struct {
	cfg      config.Config
	mode     string
	logLevel string
	debug    bool
	logger   *slog.Logger
}

// NewRootCmd builds the top-level command. Flag defaults come from the
// RTLAGENTS_* environment.
func NewRootCmd() *cobra.Command {
	cfg := config.Load()
	s := &state{cfg: cfg, mode: string(cfg.Style.Mode)}

	root := &cobra.Command{
		Use:   "rtlagents",
		Short: "RTL support for chat and agent output",
		Long: "Detects right-to-left text (Persian, Arabic, Hebrew), generates the CSS that\n" +
			"lays it out correctly and annotates or reports on HTML and text documents.",
		SilenceUsage: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			level := logging.ParseLevel(s.logLevel)
			if s.debug {
				level = slog.LevelDebug
			}
			// records follow the output format of commands that have --json
			jsonOutput, _ := cmd.Flags().GetBool("json")
			s.logger = logging.Init(cmd.ErrOrStderr(), jsonOutput, level)
		},
	}

	root.PersistentFlags().StringVar(&s.logLevel, "log-level", s.cfg.Logging.Level, "Log level: debug, info, warn or error")
	root.PersistentFlags().BoolVar(&s.debug, "debug", false, "Enable debug logging")

	root.AddCommand(
		newDetectCmd(s),
		newStylesCmd(s),
		newAnnotateCmd(s),
		newPreviewCmd(s),
		newReportCmd(s),
	)

	return root
}

// client builds an API client from the configuration and the style flags
func (s *state) client(opts ...api.Option) *api.Client {
	s.cfg.Style.Mode = api.ParseMode(s.mode)

	o := api.DefaultOptions()
	api.WithStyleOptions(s.cfg.Style.Options())(&o)
	o.Debug = s.debug || logging.ParseLevel(s.logLevel) == slog.LevelDebug
	o.Logger = s.logger
	if s.cfg.Report.FontDir != "" {
		o.FontDirectories = append(o.FontDirectories, s.cfg.Report.FontDir)
	}
	for _, opt := range opts {
		opt(&o)
	}
	return api.NewWithOptions(o)
}

// addStyleFlags binds the stylesheet flags of cmd to s.cfg.Style
func (s *state) addStyleFlags(cmd *cobra.Command) {
	cmd.Flags().StringVar(&s.mode, "mode", s.mode, "Direction mode: auto, rtl or ltr")
	cmd.Flags().StringVar(&s.cfg.Style.FontFamily, "font-family", s.cfg.Style.FontFamily, "Font family forced on RTL content")
	cmd.Flags().Float64Var(&s.cfg.Style.FontSize, "font-size", s.cfg.Style.FontSize, "Font size in px; 0 keeps the editor size")
	cmd.Flags().Float64Var(&s.cfg.Style.LineHeight, "line-height", s.cfg.Style.LineHeight, "Line height")
	cmd.Flags().StringArrayVar(&s.cfg.Style.Targets, "target", s.cfg.Style.Targets, "Target selector (repeatable)")
}
