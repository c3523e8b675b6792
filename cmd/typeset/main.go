// Package main is the entry point for the typeset command line tool,
// which converts Markdown manuscripts into styled HTML and DOCX output.
package main

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/adrg/frontmatter"
	"github.com/charmbracelet/glamour"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/tsawler/typeset"
	"github.com/tsawler/typeset/format"
)

var (
	// Version information (set at build time)
	version = "dev"

	outputPath   string
	fromFormat   string
	verbose      bool
	previewWidth int

	logger zerolog.Logger
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "typeset [input]",
		Short: "Convert Markdown manuscripts to styled HTML and DOCX",
		Long: `Typeset converts Markdown manuscripts into styled HTML pages and DOCX
word processing documents. Both outputs share one stylesheet derived
from the document's front matter, so a manuscript renders the same
whether it ends up in a browser or in Word.

Convert a file:        typeset report.md -o report.docx
Convert from stdin:    cat report.md | typeset - -t html
Preview in terminal:   typeset preview report.md

Defaults for --to, --highlight, --font-size, and --strict-tables can be
placed in a .typeset.yaml file in the working directory or your home
directory (keys: output-format, highlight, font-size, strict-tables).`,
		Version:          version,
		Args:             cobra.MaximumNArgs(1),
		PersistentPreRun: initLogging,
		RunE:             runConvert,
		SilenceUsage:     true,
		SilenceErrors:    true,
	}

	rootCmd.Flags().StringVarP(&outputPath, "output", "o", "", "output file path (default: input name with the target extension)")
	rootCmd.Flags().StringVarP(&fromFormat, "from", "f", "", "input format (only \"md\" is supported)")
	rootCmd.Flags().StringP("to", "t", "", "output format: html or docx")
	rootCmd.Flags().Int("font-size", 0, "base font size in points (overrides document metadata)")
	rootCmd.Flags().String("highlight", "", "chroma style for code block highlighting")
	rootCmd.Flags().Bool("strict-tables", false, "fail on malformed grid tables instead of warning")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose diagnostic output on stderr")

	formatsCmd := &cobra.Command{
		Use:   "formats",
		Short: "List supported input and output formats",
		Run:   runFormats,
	}

	previewCmd := &cobra.Command{
		Use:   "preview [input]",
		Short: "Render a Markdown document in the terminal",
		Long: `Render a Markdown document directly in the terminal for a quick look
before converting. Reads stdin when the input is "-".`,
		Args: cobra.ExactArgs(1),
		RunE: runPreview,
	}
	previewCmd.Flags().IntVar(&previewWidth, "width", 100, "wrap width for the rendered output")

	rootCmd.AddCommand(formatsCmd)
	rootCmd.AddCommand(previewCmd)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error: "+err.Error())
		os.Exit(1)
	}
}

// initLogging configures the stderr diagnostic logger. Warnings always
// show; --verbose opens up debug and info output.
func initLogging(cmd *cobra.Command, args []string) {
	level := zerolog.WarnLevel
	if verbose {
		level = zerolog.DebugLevel
	}
	console := zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: "15:04:05"}
	logger = zerolog.New(console).Level(level).With().Timestamp().Logger()
}

func runConvert(cmd *cobra.Command, args []string) error {
	if len(args) == 0 {
		return cmd.Help()
	}
	input := args[0]

	v, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	if file := v.ConfigFileUsed(); file != "" {
		logger.Debug().Str("config", file).Msg("loaded configuration")
	}

	if err := checkInput(input); err != nil {
		return err
	}

	target, err := resolveTarget(v)
	if err != nil {
		return err
	}
	dest := resolveOutput(input, target)

	conv := buildConverter(cmd, input, v)

	logger.Info().Str("input", input).Stringer("to", target).Msg("converting")

	var result []byte
	var warnings []typeset.Warning
	if target == format.DOCX {
		result, warnings, err = conv.DOCX()
	} else {
		result, warnings, err = conv.HTML()
	}
	if err != nil {
		return err
	}
	for _, w := range warnings {
		logger.Warn().Msg(w.String())
	}

	if dest == "" {
		_, err := cmd.OutOrStdout().Write(result)
		return err
	}
	if err := os.WriteFile(dest, result, 0644); err != nil {
		return fmt.Errorf("writing %s: %w", dest, err)
	}
	logger.Info().Str("output", dest).Int("bytes", len(result)).Msg("wrote document")
	return nil
}

func runFormats(cmd *cobra.Command, args []string) {
	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "%-10s %-11s %s\n", "FORMAT", "EXTENSION", "DIRECTION")
	fmt.Fprintf(out, "%-10s %-11s %s\n", format.Markdown, format.Markdown.Extension(), "read")
	fmt.Fprintf(out, "%-10s %-11s %s\n", format.HTML, format.HTML.Extension(), "write")
	fmt.Fprintf(out, "%-10s %-11s %s\n", format.DOCX, format.DOCX.Extension(), "write")
}

func runPreview(cmd *cobra.Command, args []string) error {
	source, err := readInput(cmd, args[0])
	if err != nil {
		return err
	}

	// Split off front matter so the fences don't render as horizontal
	// rules; the title comes back as a heading instead.
	var meta struct {
		Title string `yaml:"title"`
	}
	body, err := frontmatter.Parse(bytes.NewReader(source), &meta)
	if err != nil {
		body = source
	}
	text := string(body)
	if meta.Title != "" {
		text = "# " + meta.Title + "\n\n" + text
	}

	renderer, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(previewWidth),
	)
	if err != nil {
		return fmt.Errorf("initializing terminal renderer: %w", err)
	}
	rendered, err := renderer.Render(text)
	if err != nil {
		return fmt.Errorf("rendering preview: %w", err)
	}
	fmt.Fprint(cmd.OutOrStdout(), rendered)
	return nil
}

// loadConfig reads the optional .typeset.yaml configuration and binds the
// configurable flags over it, so explicit flags win over file values.
func loadConfig(cmd *cobra.Command) (*viper.Viper, error) {
	v := viper.New()
	v.SetConfigName(".typeset")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	if home, err := os.UserHomeDir(); err == nil {
		v.AddConfigPath(home)
	}
	v.SetEnvPrefix("TYPESET")
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("reading config: %w", err)
		}
	}

	if err := v.BindPFlag("output-format", cmd.Flags().Lookup("to")); err != nil {
		return nil, err
	}
	if err := v.BindPFlag("highlight", cmd.Flags().Lookup("highlight")); err != nil {
		return nil, err
	}
	if err := v.BindPFlag("font-size", cmd.Flags().Lookup("font-size")); err != nil {
		return nil, err
	}
	if err := v.BindPFlag("strict-tables", cmd.Flags().Lookup("strict-tables")); err != nil {
		return nil, err
	}
	return v, nil
}

// checkInput rejects inputs that cannot be read. Only Markdown sources are
// readable; --from overrides extension-based detection.
func checkInput(input string) error {
	if fromFormat != "" {
		switch strings.ToLower(fromFormat) {
		case "md", "markdown":
			return nil
		default:
			return fmt.Errorf("unsupported input format %q (only Markdown can be read)", fromFormat)
		}
	}
	if input == "-" {
		return nil
	}
	if f := format.Detect(input); f == format.HTML || f == format.DOCX {
		return fmt.Errorf("input %s detected as %s; only Markdown can be read", input, f)
	}
	return nil
}

// resolveTarget picks the output format from --to or the config file, and
// otherwise infers it from the --output extension. Bare conversions
// default to HTML.
func resolveTarget(v *viper.Viper) (format.Format, error) {
	if name := v.GetString("output-format"); name != "" {
		switch strings.ToLower(name) {
		case "html":
			return format.HTML, nil
		case "docx":
			return format.DOCX, nil
		default:
			return format.Unknown, fmt.Errorf("unsupported output format %q (supported: html, docx)", name)
		}
	}
	if outputPath != "" && outputPath != "-" {
		if f := format.Detect(outputPath); f == format.HTML || f == format.DOCX {
			return f, nil
		}
		return format.Unknown, fmt.Errorf("cannot infer the output format from %q; use --to", outputPath)
	}
	return format.HTML, nil
}

// resolveOutput returns the destination path, or "" for stdout.
func resolveOutput(input string, target format.Format) string {
	if outputPath == "-" {
		return ""
	}
	if outputPath != "" {
		return outputPath
	}
	if input == "-" {
		return ""
	}
	return strings.TrimSuffix(input, filepath.Ext(input)) + target.Extension()
}

// buildConverter assembles the converter chain from the input source and
// the resolved option values.
func buildConverter(cmd *cobra.Command, input string, v *viper.Viper) *typeset.Converter {
	var conv *typeset.Converter
	if input == "-" {
		conv = typeset.FromReader(cmd.InOrStdin())
	} else {
		conv = typeset.Open(input)
	}
	if size := v.GetInt("font-size"); size > 0 {
		conv = conv.BaseFontSize(size)
	}
	if style := v.GetString("highlight"); style != "" {
		conv = conv.Highlight(style)
	}
	if v.GetBool("strict-tables") {
		conv = conv.StrictTables()
	}
	return conv
}

func readInput(cmd *cobra.Command, path string) ([]byte, error) {
	if path == "-" {
		data, err := io.ReadAll(cmd.InOrStdin())
		if err != nil {
			return nil, fmt.Errorf("reading stdin: %w", err)
		}
		return data, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}
	return data, nil
}
