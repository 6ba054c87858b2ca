package commands

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/hashicorp/go-multierror"

	"github.com/erraggy/treeq/goast"
	"github.com/erraggy/treeq/internal/cliutil"
	"github.com/erraggy/treeq/internal/pipeline"
	"github.com/erraggy/treeq/query"
	"github.com/erraggy/treeq/walker"
)

// QueryFlags contains flags for the query command.
type QueryFlags struct {
	Pipeline string // Pipeline text, e.g. "find FuncDecl | first".
	Plan     string // Path to a YAML plan file.
	Format   string // Output format: text, json, yaml.
	Color    string // Color mode: auto, always, never.
	Comments bool   // Keep comment nodes.
	Text     bool   // Include each match's source text.
	Limit    int    // Maximum matches reported per file; 0 means all.
	Quiet    bool   // Suppress the summary line.
	Verbose  bool   // Debug logging on stderr.
}

// fileReport is the outcome of running the pipeline over one file.
type fileReport struct {
	File    string        `json:"file" yaml:"file"`
	Matched int           `json:"matched" yaml:"matched"`
	Verdict *bool         `json:"verdict,omitempty" yaml:"verdict,omitempty"`
	Matches []matchRecord `json:"matches,omitempty" yaml:"matches,omitempty"`
}

type matchRecord struct {
	Kind   string `json:"kind" yaml:"kind"`
	Name   string `json:"name,omitempty" yaml:"name,omitempty"`
	Path   string `json:"path" yaml:"path"`
	Line   int    `json:"line" yaml:"line"`
	Column int    `json:"column" yaml:"column"`
	Text   string `json:"text,omitempty" yaml:"text,omitempty"`
}

func setupQueryFlags(output io.Writer) (*flag.FlagSet, *QueryFlags) {
	fs := flag.NewFlagSet("query", flag.ContinueOnError)
	fs.SetOutput(output)
	flags := &QueryFlags{}

	fs.StringVar(&flags.Pipeline, "pipeline", "", "query pipeline, steps separated by |")
	fs.StringVar(&flags.Pipeline, "p", "", "query pipeline (shorthand)")
	fs.StringVar(&flags.Plan, "plan", "", "read the pipeline from a YAML plan file")
	fs.StringVar(&flags.Format, "format", FormatText, "output format: text, json, yaml")
	fs.StringVar(&flags.Color, "color", cliutil.ColorAuto, "color mode: auto, always, never")
	fs.BoolVar(&flags.Comments, "comments", false, "keep comment nodes (CommentGroup and Comment kinds)")
	fs.BoolVar(&flags.Text, "text", false, "include each match's source text")
	fs.IntVar(&flags.Limit, "limit", 0, "maximum matches reported per file (0 = all)")
	fs.BoolVar(&flags.Quiet, "quiet", false, "suppress the summary line")
	fs.BoolVar(&flags.Quiet, "q", false, "suppress the summary line (shorthand)")
	fs.BoolVar(&flags.Verbose, "verbose", false, "log traversal details to stderr")

	fs.Usage = func() {
		cliutil.Writef(output, "Usage: treeq query [flags] <file|dir|dir/...|->...\n\n")
		cliutil.Writef(output, "Run a query pipeline over Go source files.\n\n")
		cliutil.Writef(output, "Flags:\n")
		fs.PrintDefaults()
		cliutil.Writef(output, "\nPipeline operators:\n  %s\n", strings.Join(pipeline.Ops(), ", "))
		cliutil.Writef(output, "\nExamples:\n")
		cliutil.Writef(output, "  treeq query -p 'find FuncDecl' main.go\n")
		cliutil.Writef(output, "  treeq query -p 'find FuncDecl | filter '\\''name startsWith \"Test\"'\\''' ./...\n")
		cliutil.Writef(output, "  treeq query -p 'find CallExpr | parent *' --text --format json pkg/\n")
		cliutil.Writef(output, "  treeq query --plan plan.yaml -q ./...\n")
	}

	return fs, flags
}

// HandleQuery executes the query command.
func HandleQuery(args []string) error {
	return runQuery(args, os.Stdin, os.Stdout, os.Stderr)
}

func runQuery(args []string, stdin io.Reader, stdout, stderr io.Writer) error {
	fs, flags := setupQueryFlags(stderr)
	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return nil
		}
		return err
	}

	if err := ValidateOutputFormat(flags.Format); err != nil {
		return err
	}
	if flags.Limit < 0 {
		return fmt.Errorf("invalid limit %d: must not be negative", flags.Limit)
	}
	pal, err := cliutil.PaletteFor(stdout, flags.Color)
	if err != nil {
		return err
	}

	plan, err := loadPlan(flags)
	if err != nil {
		return fmt.Errorf("query: %w", err)
	}
	p, err := pipeline.Compile(plan, goast.NewRegistry(flags.Comments))
	if err != nil {
		return fmt.Errorf("query: %w", err)
	}

	if fs.NArg() == 0 {
		fs.Usage()
		return fmt.Errorf("query command requires at least one source file")
	}
	paths, err := ExpandSources(fs.Args())
	if err != nil {
		return fmt.Errorf("query: %w", err)
	}
	if len(paths) == 0 {
		return fmt.Errorf("query: no Go files found in %s", strings.Join(fs.Args(), " "))
	}

	logger := newLogger(stderr, flags.Verbose)
	logger.Debug("compiled pipeline", "pipeline", p.Plan().String(), "files", len(paths))

	var merr *multierror.Error
	reports := make([]fileReport, 0, len(paths))
	total := 0
	for _, path := range paths {
		report, err := queryFile(p, path, stdin, flags, logger)
		if err != nil {
			merr = multierror.Append(merr, err)
			continue
		}
		total += report.Matched
		reports = append(reports, report)
	}

	if flags.Format == FormatText {
		renderQueryText(stdout, reports, pal)
	} else if err := OutputStructured(stdout, reports, flags.Format); err != nil {
		return err
	}

	if !flags.Quiet {
		cliutil.Writef(stderr, "%d matches in %d of %d files\n", total, len(reports), len(paths))
	}
	return merr.ErrorOrNil()
}

// loadPlan reads the pipeline from whichever of --pipeline or --plan was set.
func loadPlan(flags *QueryFlags) (*pipeline.Plan, error) {
	switch {
	case flags.Pipeline != "" && flags.Plan != "":
		return nil, fmt.Errorf("use either --pipeline or --plan, not both")
	case flags.Pipeline != "":
		return pipeline.Parse(flags.Pipeline)
	case flags.Plan != "":
		data, err := os.ReadFile(flags.Plan)
		if err != nil {
			return nil, fmt.Errorf("reading plan: %w", err)
		}
		return pipeline.ParsePlan(data)
	default:
		return nil, fmt.Errorf("a pipeline is required: use --pipeline or --plan")
	}
}

// queryFile loads one source and runs p over it.
func queryFile(p *pipeline.Pipeline, path string, stdin io.Reader, flags *QueryFlags, logger walker.Logger) (fileReport, error) {
	name := FormatSourcePath(path)
	opts := []goast.Option{
		goast.WithComments(flags.Comments),
		goast.WithLogger(logger.With("file", name)),
	}
	if path == StdinFilePath {
		opts = append(opts, goast.WithReader(stdin), goast.WithSourceName(name))
	} else {
		opts = append(opts, goast.WithFilePath(path))
	}

	file, err := goast.Load(opts...)
	if err != nil {
		return fileReport{}, err
	}
	tree, err := file.Tree()
	if err != nil {
		return fileReport{}, fmt.Errorf("%s: %w", name, err)
	}
	out, err := p.Run(tree, pipeline.FileDescriber(file))
	if err != nil {
		return fileReport{}, fmt.Errorf("%s: %w", name, err)
	}

	matches := out.Result.Matches()
	report := fileReport{File: name, Matched: len(matches), Verdict: out.Verdict}
	if out.Verdict != nil {
		return report, nil
	}
	if flags.Limit > 0 && len(matches) > flags.Limit {
		matches = matches[:flags.Limit]
	}
	report.Matches = make([]matchRecord, 0, len(matches))
	for _, m := range matches {
		report.Matches = append(report.Matches, newMatchRecord(file, m, flags.Text))
	}
	return report, nil
}

func newMatchRecord(file *goast.File, m query.Match[any], withText bool) matchRecord {
	pos := file.Position(m.Node)
	rec := matchRecord{
		Kind:   m.Kind().Name(),
		Name:   goast.NameOf(m.Node),
		Path:   m.Path.String(),
		Line:   pos.Line,
		Column: pos.Column,
	}
	if withText {
		rec.Text = file.Text(m.Node)
	}
	return rec
}

// renderQueryText prints one line per match, grep style, or one verdict line
// per file for pipelines ending in a check.
func renderQueryText(w io.Writer, reports []fileReport, pal *cliutil.Palette) {
	for _, r := range reports {
		if r.Verdict != nil {
			verdict := pal.Bad("%t", false)
			if *r.Verdict {
				verdict = pal.Good("%t", true)
			}
			cliutil.Writef(w, "%s: %s\n", r.File, verdict)
			continue
		}
		for _, m := range r.Matches {
			line := pal.Pos("%s:%d:%d", r.File, m.Line, m.Column) + "  " + pal.Kind("%s", m.Kind) + "  " + pal.Path("%s", m.Path)
			if m.Name != "" {
				line += "  " + pal.Name("%s", m.Name)
			}
			cliutil.Writeln(w, line)
			if m.Text != "" {
				for _, text := range strings.Split(m.Text, "\n") {
					cliutil.Writef(w, "    %s\n", pal.Faint("%s", text))
				}
			}
		}
	}
}

// newLogger returns a debug-level slog logger on w when verbose is set.
func newLogger(w io.Writer, verbose bool) walker.Logger {
	if !verbose {
		return walker.NopLogger{}
	}
	handler := slog.NewTextHandler(w, &slog.HandlerOptions{Level: slog.LevelDebug})
	return walker.NewSlogAdapter(slog.New(handler))
}
