package commands

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/hashicorp/go-multierror"

	"github.com/erraggy/treeq/goast"
	"github.com/erraggy/treeq/grammar"
	"github.com/erraggy/treeq/internal/cliutil"
	"github.com/erraggy/treeq/walker"
)

// KindsFlags contains flags for the kinds command.
type KindsFlags struct {
	Format   string
	Color    string
	Comments bool
	Quiet    bool
}

type kindRecord struct {
	Kind  string `json:"kind" yaml:"kind"`
	Type  string `json:"type" yaml:"type"`
	Count int    `json:"count,omitempty" yaml:"count,omitempty"`
}

func setupKindsFlags(output io.Writer) (*flag.FlagSet, *KindsFlags) {
	fs := flag.NewFlagSet("kinds", flag.ContinueOnError)
	fs.SetOutput(output)
	flags := &KindsFlags{}

	fs.StringVar(&flags.Format, "format", FormatText, "output format: text, json, yaml")
	fs.StringVar(&flags.Color, "color", cliutil.ColorAuto, "color mode: auto, always, never")
	fs.BoolVar(&flags.Comments, "comments", false, "include the comment kinds")
	fs.BoolVar(&flags.Quiet, "quiet", false, "omit the table header")
	fs.BoolVar(&flags.Quiet, "q", false, "omit the table header (shorthand)")

	fs.Usage = func() {
		cliutil.Writef(output, "Usage: treeq kinds [flags] [file|dir|dir/...|-]...\n\n")
		cliutil.Writef(output, "List the go/ast node kinds a pipeline can name. With sources, list only\n")
		cliutil.Writef(output, "the kinds found in them, with counts, in order of first appearance.\n\n")
		cliutil.Writef(output, "Flags:\n")
		fs.PrintDefaults()
	}

	return fs, flags
}

// HandleKinds executes the kinds command.
func HandleKinds(args []string) error {
	return runKinds(args, os.Stdin, os.Stdout, os.Stderr)
}

func runKinds(args []string, stdin io.Reader, stdout, stderr io.Writer) error {
	fs, flags := setupKindsFlags(stderr)
	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return nil
		}
		return err
	}
	if err := ValidateOutputFormat(flags.Format); err != nil {
		return err
	}
	pal, err := cliutil.PaletteFor(stdout, flags.Color)
	if err != nil {
		return err
	}

	var records []kindRecord
	var merr *multierror.Error
	if fs.NArg() == 0 {
		for _, k := range goast.NewRegistry(flags.Comments).Kinds() {
			records = append(records, kindRecord{Kind: k.Name(), Type: k.String()})
		}
	} else {
		records, merr = countSourceKinds(fs.Args(), stdin, flags.Comments)
	}

	if flags.Format != FormatText {
		if err := OutputStructured(stdout, records, flags.Format); err != nil {
			return err
		}
		return merr.ErrorOrNil()
	}

	headers := []string{"KIND", "TYPE"}
	if fs.NArg() > 0 {
		headers = append(headers, "COUNT")
	}
	rows := make([][]string, 0, len(records))
	for _, r := range records {
		row := []string{r.Kind, r.Type}
		if fs.NArg() > 0 {
			row = append(row, strconv.Itoa(r.Count))
		}
		rows = append(rows, row)
	}
	RenderTable(stdout, headers, rows, flags.Quiet, pal)
	return merr.ErrorOrNil()
}

// countSourceKinds totals kind occurrences over every source, keeping the
// order in which kinds first appear. Sources that fail to load are reported
// in the returned error and skipped.
func countSourceKinds(args []string, stdin io.Reader, comments bool) ([]kindRecord, *multierror.Error) {
	paths, err := ExpandSources(args)
	if err != nil {
		return nil, multierror.Append(nil, fmt.Errorf("kinds: %w", err))
	}

	var merr *multierror.Error
	var records []kindRecord
	index := make(map[grammar.Kind]int)
	for _, path := range paths {
		opts := []goast.Option{goast.WithComments(comments)}
		if path == StdinFilePath {
			opts = append(opts, goast.WithReader(stdin), goast.WithSourceName(FormatSourcePath(path)))
		} else {
			opts = append(opts, goast.WithFilePath(path))
		}
		file, err := goast.Load(opts...)
		if err != nil {
			merr = multierror.Append(merr, err)
			continue
		}
		counts, err := walker.CountKinds(file.Registry, file.AST)
		if err != nil {
			merr = multierror.Append(merr, fmt.Errorf("%s: %w", file.Path, err))
			continue
		}
		for _, c := range counts {
			i, ok := index[c.Kind]
			if !ok {
				i = len(records)
				index[c.Kind] = i
				records = append(records, kindRecord{Kind: c.Kind.Name(), Type: c.Kind.String()})
			}
			records[i].Count += c.Count
		}
	}
	return records, merr
}
