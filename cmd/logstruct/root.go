package main

import (
	"io"
	"os"

	"github.com/bjaus/logstruct"
	"github.com/mattn/go-isatty"
	"github.com/muesli/termenv"
	"github.com/spf13/cobra"
)

type renderFlags struct {
	graph      string
	title      string
	titleStyle string
	width      int
	keyWidth   int
	indent     string
	normalize  bool
	showCount  bool
	tableStyle string
	outputFile string
	quiet      bool
}

func newRootCmd() *cobra.Command {
	var (
		verbosity int
		noColor   bool
	)
	root := &cobra.Command{
		Use:           "logstruct",
		Short:         "Render nested JSON or YAML data as readable console text",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().CountVarP(&verbosity, "verbose", "v", "Increase verbosity (-v INFO, -vv DEBUG, -vvv TRACE)")
	root.PersistentFlags().BoolVar(&noColor, "no-color", false, "Disable colored output")

	colorOff := func(cmd *cobra.Command) bool {
		return noColor || !isColorTerminal(cmd.OutOrStdout())
	}
	root.AddCommand(newRenderCmd(&verbosity, colorOff), newSampleCmd())
	return root
}

func newRenderCmd(verbosity *int, colorOff func(*cobra.Command) bool) *cobra.Command {
	var f renderFlags
	cmd := &cobra.Command{
		Use:   "render [file]",
		Short: "Render a JSON or YAML document (stdin when no file is given)",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			noColor := colorOff(cmd)
			logger := newLogger(cmd.ErrOrStderr(), *verbosity, noColor)

			data, err := readData(cmd, args)
			if err != nil {
				return err
			}
			opts := logstruct.Options{
				Indent:         f.indent,
				Title:          f.title,
				LineWidth:      f.width,
				KeyWidth:       f.keyWidth,
				ShowArrayCount: f.showCount,
				OutputFile:     f.outputFile,
				Stdout:         cmd.OutOrStdout(),
				Logger:         logger,
				NoColor:        noColor,
			}
			if f.graph != "" {
				g, err := logstruct.LoadGraph(f.graph)
				if err != nil {
					return err
				}
				opts.Graph = g
			}
			if f.titleStyle != "" {
				if opts.TitleStyle, err = logstruct.ParseHeadingStyle(f.titleStyle); err != nil {
					return err
				}
			}
			if f.tableStyle != "" {
				if opts.TableStyle, err = logstruct.ParseTableStyle(f.tableStyle); err != nil {
					return err
				}
			}
			if f.normalize {
				opts.ConvertDataTo = logstruct.Normalized
			}
			opts.OutputAs = outputTargets(f)

			logger.Debug().Str("graph", f.graph).Strs("args", args).Msg("rendering")
			_, err = logstruct.Render(data, opts)
			return err
		},
	}
	flags := cmd.Flags()
	flags.StringVarP(&f.graph, "graph", "g", "", "Graph configuration file (.yaml, .yml, .json or .toml)")
	flags.StringVarP(&f.title, "title", "t", "", "Document title")
	flags.StringVar(&f.titleStyle, "title-style", "", "Title style: heading, subheading or section")
	flags.IntVarP(&f.width, "width", "w", logstruct.DefaultLineWidth, "Line width")
	flags.IntVar(&f.keyWidth, "key-width", logstruct.DefaultKeyWidth, "Key label width")
	flags.StringVar(&f.indent, "indent", logstruct.DefaultIndent, "Indent per nesting level")
	flags.BoolVar(&f.normalize, "normalize", false, "Convert nested data to records before rendering")
	flags.BoolVar(&f.showCount, "show-count", false, "Print a count after each array")
	flags.StringVar(&f.tableStyle, "table-style", "", "Table style: pipe, rounded, ascii, heavy, double or markdown")
	flags.StringVarP(&f.outputFile, "output-file", "o", "", "Also write plain output to this file")
	flags.BoolVarP(&f.quiet, "quiet", "q", false, "Do not print to the console")
	return cmd
}

func outputTargets(f renderFlags) []logstruct.OutputTarget {
	var targets []logstruct.OutputTarget
	if !f.quiet {
		targets = append(targets, logstruct.Console)
	}
	if f.outputFile != "" {
		targets = append(targets, logstruct.File)
	}
	if len(targets) == 0 {
		targets = append(targets, logstruct.None)
	}
	return targets
}

func newSampleCmd() *cobra.Command {
	var format string
	cmd := &cobra.Command{
		Use:   "sample [file]",
		Short: "Print a starter graph configuration for a document",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := readData(cmd, args)
			if err != nil {
				return err
			}
			return logstruct.WriteSampleGraph(cmd.OutOrStdout(), data, format)
		},
	}
	cmd.Flags().StringVarP(&format, "format", "f", "yaml", "Output format: yaml or toml")
	return cmd
}

func readData(cmd *cobra.Command, args []string) (any, error) {
	if len(args) == 1 {
		return logstruct.LoadData(args[0])
	}
	b, err := io.ReadAll(cmd.InOrStdin())
	if err != nil {
		return nil, err
	}
	return logstruct.ParseData(b)
}

// isColorTerminal mirrors the usual NO_COLOR and TTY checks.
func isColorTerminal(w io.Writer) bool {
	if termenv.EnvNoColor() {
		return false
	}
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}
