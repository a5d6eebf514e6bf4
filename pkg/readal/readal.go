// 17 Oct 2026
// readal reads alignments in whatever format and writes them out again
// in one or more others, or reports on what it found.

package readal

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/andrew-torda/readal/pkg/alignment"
	"github.com/andrew-torda/readal/pkg/codec"
	"github.com/andrew-torda/readal/pkg/convert"
	. "github.com/andrew-torda/readal/pkg/seq/common"
	"github.com/andrew-torda/readal/pkg/seqlen"
	"github.com/andrew-torda/readal/pkg/squash"
)

// listFlag collects a flag which may be given more than once, or as
// a comma separated list, or both.
type listFlag []string

func (l *listFlag) String() string { return strings.Join(*l, ",") }

func (l *listFlag) Set(s string) error {
	for _, f := range strings.Split(s, ",") {
		if f = strings.TrimSpace(f); f != "" {
			*l = append(*l, f)
		}
	}
	return nil
}

// legacy maps the old one-format flags to format names.
var legacy = []struct{ flag, format string }{
	{"html", "html"},
	{"nbrf", "nbrf"},
	{"mega", "mega"},
	{"nexus", "nexus"},
	{"clustal", "clustal"},
	{"fasta", "fasta"},
	{"onlyseqs", "fasta"},
	{"fasta_m10", "fasta_m10"},
	{"phylip", "phylip40"},
	{"phylip_m10", "phylip40_m10"},
	{"phylip_paml", "phylippaml"},
	{"phylip_paml_m10", "phylippaml_m10"},
	{"phylip3.2", "phylip32"},
	{"phylip3.2_m10", "phylip32_m10"},
}

// CmdFlag holds what came from the command line.
type CmdFlag struct {
	Inputs      listFlag
	Formats     listFlag
	Out         string
	ConfigFile  string
	Squash      string
	Reverse     bool
	KeepHeaders bool
	Append      bool
	Overwrite   bool
	Split       bool
	Format      bool
	Type        bool
	Info        bool
	Verbose     bool
}

// report is true if any of the per file reports were asked for.
func (f *CmdFlag) report() bool { return f.Format || f.Type || f.Info }

func newFlagSet(flags *CmdFlag, stderr io.Writer) *flag.FlagSet {
	fs := flag.NewFlagSet("readal", flag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.Var(&flags.Inputs, "in", "input `file`s, repeat or separate with commas")
	fs.Var(&flags.Formats, "formats", "output `format`s, repeat or separate with commas")
	fs.StringVar(&flags.Out, "out", "", "output file `pattern` with [in], [format], [extension]. Default stdout")
	fs.StringVar(&flags.ConfigFile, "config", "", "yaml configuration `file`")
	fs.StringVar(&flags.Squash, "squash", "", "remove columns where `ref` sequence has a gap")
	fs.BoolVar(&flags.Reverse, "reverse", false, "write sequences backwards")
	fs.BoolVar(&flags.KeepHeaders, "keepHeaders", false, "write full header lines instead of names")
	fs.BoolVar(&flags.Append, "append", false, "append to output files instead of renaming")
	fs.BoolVar(&flags.Overwrite, "overwrite", false, "overwrite files when renaming gives up")
	fs.BoolVar(&flags.Split, "split", false, "write each sequence on its own")
	fs.BoolVar(&flags.Format, "format", false, "report input format and if aligned")
	fs.BoolVar(&flags.Type, "type", false, "report sequence type")
	fs.BoolVar(&flags.Info, "info", false, "report sequence statistics")
	fs.BoolVar(&flags.Verbose, "v", false, "verbose logging")
	for _, l := range legacy {
		format := l.format
		fs.BoolFunc(l.flag, "same as -formats "+format, func(string) error {
			flags.Formats = append(flags.Formats, format)
			return nil
		})
	}
	return fs
}

func usage(fs *flag.FlagSet, reg *codec.Registry, w io.Writer) func() {
	return func() {
		fmt.Fprintln(w, "usage: readal -in file [-in file...] [-out pattern] [-formats f1,f2] [flags] [file...]")
		fmt.Fprintln(w, "Input formats: ", strings.Join(reg.AvailableLoaders(), " "))
		fmt.Fprintln(w, "Output formats:", strings.Join(reg.AvailableSavers(), " "))
		fmt.Fprintln(w, `Example: readal -in x.fasta -out "[in].[format].[extension]" -formats clustal,nexus`)
		fs.PrintDefaults()
	}
}

// makeConfig starts from the defaults or a config file. Whatever was
// given on the command line wins.
func makeConfig(flags *CmdFlag, stderr io.Writer) (*convert.Config, error) {
	cfg := convert.DefaultConfig()
	if flags.ConfigFile != "" {
		var err error
		if cfg, err = convert.LoadConfig(flags.ConfigFile); err != nil {
			return nil, err
		}
	}
	cfg.Reverse = cfg.Reverse || flags.Reverse
	cfg.KeepHeader = cfg.KeepHeader || flags.KeepHeaders
	cfg.Append = cfg.Append || flags.Append
	cfg.Overwrite = cfg.Overwrite || flags.Overwrite
	if len(flags.Formats) > 0 {
		cfg.Formats = flags.Formats
	}
	if flags.Out != "" {
		cfg.Pattern = flags.Out
	}
	level := slog.LevelWarn
	if flags.Verbose {
		level = slog.LevelDebug
	}
	cfg.Logger = slog.New(slog.NewTextHandler(stderr, &slog.HandlerOptions{Level: level}))
	return cfg, cfg.Validate()
}

// Mymain is main, but with the arguments and output streams passed in.
func Mymain(args []string, stdout, stderr io.Writer) int {
	var flags CmdFlag
	reg := codec.DefaultRegistry()
	fs := newFlagSet(&flags, stderr)
	fs.Usage = usage(fs, reg, stderr)
	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return ExitSuccess
		}
		return ExitUsageError
	}
	inputs := append([]string(nil), flags.Inputs...)
	inputs = append(inputs, fs.Args()...)
	if len(inputs) == 0 {
		fmt.Fprintln(stderr, "ERROR: no input files")
		fs.Usage()
		return ExitUsageError
	}
	cfg, err := makeConfig(&flags, stderr)
	if err != nil {
		fmt.Fprintln(stderr, "ERROR:", err)
		return ExitUsageError
	}
	cv := &convert.Converter{Registry: reg, Config: cfg, Stdout: stdout}

	var ok bool
	switch {
	case flags.report():
		ok = reportAll(cv, &flags, inputs, stdout)
	case len(cfg.Formats) > 0 || cfg.Reverse || flags.Split || flags.Squash != "":
		ok = convertAll(cv, &flags, inputs)
	default:
		fmt.Fprintln(stderr, "ERROR: An option has to be chosen")
		return ExitUsageError
	}
	if !ok {
		return ExitFailure
	}
	return ExitSuccess
}

// prepare applies the squash and split options to one alignment.
func prepare(flags *CmdFlag, aln *alignment.Alignment) ([]*alignment.Alignment, error) {
	if flags.Squash != "" {
		if err := squash.Mask(aln, flags.Squash); err != nil {
			return nil, err
		}
	}
	if flags.Split {
		return convert.SplitKeepingEachSequence(aln), nil
	}
	return []*alignment.Alignment{aln}, nil
}

// convertAll is the plain conversion, with no reports.
func convertAll(cv *convert.Converter, flags *CmdFlag, inputs []string) bool {
	cfg := cv.Config
	if flags.Squash == "" && !flags.Split {
		return cv.ConvertBatch(inputs, cfg.Pattern, cfg.Formats)
	}
	if err := cv.ConsoleCheck(cfg.Pattern, cfg.Formats); err != nil {
		cfg.Logger.Error("refusing to convert", "err", err)
		return false
	}
	alns := cv.LoadMany(inputs)
	ok := len(alns) == len(inputs)
	var todo []*alignment.Alignment
	for _, aln := range alns {
		more, err := prepare(flags, aln)
		if err != nil {
			cfg.Logger.Error("cannot squash", "path", aln.SourcePath, "err", err)
			ok = false
			continue
		}
		todo = append(todo, more...)
	}
	return cv.SaveMany(todo, cfg.Pattern, cfg.Formats) && ok
}

// reportAll prints the reports for each input and saves it if formats
// were given.
func reportAll(cv *convert.Converter, flags *CmdFlag, inputs []string, stdout io.Writer) bool {
	cfg := cv.Config
	ok := true
	for _, in := range inputs {
		aln, c, err := cv.Registry.Load(in)
		if err != nil {
			cfg.Logger.Error("cannot load alignment", "path", in, "err", err)
			ok = false
			continue
		}
		if err := report(aln, c, flags, in, stdout); err != nil {
			cfg.Logger.Error("report failed", "path", in, "err", err)
			return false
		}
		if len(cfg.Formats) == 0 {
			continue
		}
		alns, err := prepare(flags, aln)
		if err != nil {
			cfg.Logger.Error("cannot squash", "path", in, "err", err)
			ok = false
			continue
		}
		ok = cv.SaveMany(alns, cfg.Pattern, cfg.Formats) && ok
	}
	return ok
}

// report writes the lines for one alignment, then a blank line.
func report(aln *alignment.Alignment, c codec.Codec, flags *CmdFlag, in string, w io.Writer) error {
	fmt.Fprintf(w, "## Alignment File:\t%s\n", in)
	if flags.Format {
		yesNo := "NO"
		if aln.Aligned {
			yesNo = "YES"
		}
		fmt.Fprintf(w, "## Input file format\t%s\n## Input file aligned\t%s\n", c.Name(), yesNo)
	}
	if flags.Type {
		fmt.Fprintf(w, "## Input file datatype\t%s\n", aln.Type())
	}
	if flags.Info {
		if err := seqlen.Get(aln).Write(w); err != nil {
			return err
		}
	}
	_, err := fmt.Fprintln(w)
	return err
}
