package convert_test

import (
	"bytes"
	"errors"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/andrew-torda/readal/pkg/alignment"
	"github.com/andrew-torda/readal/pkg/codec"
	. "github.com/andrew-torda/readal/pkg/convert"
)

// newConv gives a converter that logs into a buffer and writes
// "standard output" into another.
func newConv() (cv *Converter, logs, stdout *bytes.Buffer) {
	logs, stdout = new(bytes.Buffer), new(bytes.Buffer)
	cfg := DefaultConfig()
	cfg.Logger = slog.New(slog.NewTextHandler(logs, nil))
	cv = New(cfg)
	cv.Stdout = stdout
	return cv, logs, stdout
}

func wrtFile(t *testing.T, dir, name, s string) string {
	t.Helper()
	fname := filepath.Join(dir, name)
	if err := os.WriteFile(fname, []byte(s), 0o644); err != nil {
		t.Fatal(err)
	}
	return fname
}

// listDir returns the sorted file names in dir.
func listDir(t *testing.T, dir string) []string {
	t.Helper()
	ents, err := os.ReadDir(dir)
	if err != nil {
		t.Fatal(err)
	}
	var names []string
	for _, e := range ents {
		names = append(names, e.Name())
	}
	sort.Strings(names)
	return names
}

func TestScenario(t *testing.T) {
	dir := t.TempDir()
	in := wrtFile(t, dir, "seqs.fasta", ">A\nACGT\n>B\nAC-T\n")
	cv, _, _ := newConv()
	pattern := filepath.Join(dir, "[in].[format].[extension]")
	if !cv.ConvertBatch([]string{in}, pattern, []string{"clustal"}) {
		t.Fatal("conversion failed")
	}
	got, err := os.ReadFile(filepath.Join(dir, "seqs.clustal.clw"))
	if err != nil {
		t.Fatal(err)
	}
	want := "CLUSTAL multiple sequence alignment\n\nA     ACGT\nB     AC-T\n\n\n"
	if string(got) != want {
		t.Errorf("got\n%q\nwant\n%q", got, want)
	}
}

func TestAmbiguousConsole(t *testing.T) {
	dir := t.TempDir()
	in := wrtFile(t, dir, "seqs.fasta", ">A\nACGT\n")
	cv, logs, stdout := newConv()
	if cv.ConvertBatch([]string{in}, "", []string{"fasta", "clustal"}) {
		t.Error("two formats to stdout should fail")
	}
	if stdout.Len() != 0 {
		t.Errorf("nothing should be written, got %q", stdout.String())
	}
	if !strings.Contains(logs.String(), codec.ErrAmbiguousConsoleOutput.Error()) {
		t.Errorf("error not logged, logs:\n%s", logs.String())
	}
	if files := listDir(t, dir); len(files) != 1 {
		t.Errorf("files were written: %v", files)
	}
}

func TestConsole(t *testing.T) {
	dir := t.TempDir()
	in := wrtFile(t, dir, "seqs.fasta", ">A\nACGT\n")
	cv, _, stdout := newConv()
	if !cv.ConvertBatch([]string{in}, "", nil) { // nil formats means fasta
		t.Fatal("conversion failed")
	}
	if stdout.String() != ">A\nACGT\n" {
		t.Errorf("got %q", stdout.String())
	}
	cv.Config.Reverse = true
	stdout.Reset()
	if !cv.ConvertBatch([]string{in}, "-", []string{"pir"}) {
		t.Fatal("conversion failed")
	}
	if !strings.Contains(stdout.String(), " TGCA*") {
		t.Errorf("reverse not passed on, got %q", stdout.String())
	}
}

// TestAggregation has three inputs and two formats. One input is not
// aligned, so clustal fails for it, but everything else is written.
func TestAggregation(t *testing.T) {
	dir := t.TempDir()
	out := t.TempDir()
	ins := []string{
		wrtFile(t, dir, "a.fasta", ">x\nACGT\n>y\nAC-T\n"),
		wrtFile(t, dir, "b.fasta", ">x\nACGT\n>y\nAC\n"),
		wrtFile(t, dir, "c.fasta", ">x\nGGGG\n>y\nGG-G\n"),
	}
	cv, logs, _ := newConv()
	pattern := filepath.Join(out, "[in].[format]")
	if cv.ConvertBatch(ins, pattern, []string{"fasta", "clustal"}) {
		t.Error("batch with a failure should be false")
	}
	want := []string{"a.clustal", "a.fasta", "b.fasta", "c.clustal", "c.fasta"}
	if diff := cmp.Diff(want, listDir(t, out)); diff != "" {
		t.Errorf("outputs (-want +got):\n%s", diff)
	}
	if !strings.Contains(logs.String(), "format=clustal") {
		t.Errorf("failure not logged with format:\n%s", logs.String())
	}
}

func TestUnknownFormat(t *testing.T) {
	dir := t.TempDir()
	in := wrtFile(t, dir, "a.fasta", ">x\nACGT\n")
	cv, logs, _ := newConv()
	pattern := filepath.Join(dir, "out.[extension]")
	if cv.ConvertBatch([]string{in}, pattern, []string{"nonsense", "mega_interleaved", "pir"}) {
		t.Error("unknown format should make the result false")
	}
	if _, err := os.Stat(filepath.Join(dir, "out.pir")); err != nil {
		t.Error("known format should still be written:", err)
	}
	for _, s := range []string{"nonsense", "mega_interleaved"} {
		if !strings.Contains(logs.String(), s) {
			t.Errorf("%s not reported in\n%s", s, logs.String())
		}
	}
}

func TestLoadFailure(t *testing.T) {
	dir := t.TempDir()
	ins := []string{
		wrtFile(t, dir, "good.fasta", ">x\nACGT\n"),
		filepath.Join(dir, "missing.fasta"),
		wrtFile(t, dir, "empty.fasta", ""),
	}
	cv, logs, _ := newConv()
	if got := cv.LoadMany(ins); len(got) != 1 || got[0].Names[0] != "x" {
		t.Fatalf("LoadMany got %d alignments", len(got))
	}
	if !strings.Contains(logs.String(), "missing.fasta") {
		t.Errorf("missing file not logged:\n%s", logs.String())
	}
	pattern := filepath.Join(dir, "[in].out")
	if cv.ConvertBatch(ins, pattern, nil) {
		t.Error("failed loads should make the batch false")
	}
	if _, err := os.Stat(filepath.Join(dir, "good.out")); err != nil {
		t.Error("good input not written:", err)
	}
	if cv.ConvertBatch(nil, pattern, nil) {
		t.Error("no inputs should be false")
	}
}

func TestEmptyAlignment(t *testing.T) {
	aln, _ := alignment.New([]string{"a"}, []string{"ACGT"})
	aln.SetSeqMask([]bool{false})
	cv, logs, stdout := newConv()
	if cv.SaveOne(aln, "", nil) {
		t.Error("alignment with nothing left should not save")
	}
	if stdout.Len() != 0 || !strings.Contains(logs.String(), codec.ErrEmptyAlignment.Error()) {
		t.Errorf("stdout %q logs %s", stdout.String(), logs.String())
	}
}

func TestResolvePath(t *testing.T) {
	dir := t.TempDir()
	p := filepath.Join(dir, "x")
	var logs bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&logs, nil))

	if got, err := ResolvePath(p, 5, false, logger); got != p || err != nil {
		t.Errorf("free path: got %s %v", got, err)
	}
	wrtFile(t, dir, "x", "")
	wrtFile(t, dir, "x.0", "")
	got, err := ResolvePath(p, 5, false, logger)
	if got != p+".1" || err != nil {
		t.Errorf("want %s.1, got %s %v", p, got, err)
	}
	want := "To prevent overriding file " + p + " a suffix has been added. Final filename: " + p + ".1"
	if !strings.Contains(logs.String(), want) {
		t.Errorf("warning missing, logs:\n%s", logs.String())
	}

	wrtFile(t, dir, "x.1", "")
	for _, tc := range []struct {
		overwrite bool
		want      string
	}{{false, p + ".1"}, {true, p}} {
		got, err := ResolvePath(p, 1, tc.overwrite, logger)
		if got != tc.want || !errors.Is(err, codec.ErrRenameCollisionExhausted) {
			t.Errorf("overwrite %t: got %s %v, want %s", tc.overwrite, got, err, tc.want)
		}
	}
	if got, err := ResolvePath(p, 0, false, logger); got != p+".0" || err == nil {
		t.Errorf("max 0: got %s %v", got, err)
	}
}

func TestNoTrashing(t *testing.T) {
	dir := t.TempDir()
	in := wrtFile(t, dir, "s.fasta", ">A\nACGT\n")
	cv, _, _ := newConv()
	pattern := filepath.Join(dir, "[in].[format].out")
	for i := 0; i < 3; i++ {
		if !cv.ConvertBatch([]string{in}, pattern, nil) {
			t.Fatal("conversion", i, "failed")
		}
	}
	want := []string{"s.fasta", "s.fasta.out", "s.fasta.out.0", "s.fasta.out.1"}
	if diff := cmp.Diff(want, listDir(t, dir)); diff != "" {
		t.Errorf("(-want +got):\n%s", diff)
	}
}

func TestExhaustedStillWrites(t *testing.T) {
	dir := t.TempDir()
	in := wrtFile(t, dir, "s.fasta", ">A\nACGT\n")
	out := wrtFile(t, dir, "o", "old")
	wrtFile(t, dir, "o.0", "old")
	cv, _, _ := newConv()
	cv.Config.MaxSuffix = 0
	cv.Config.Overwrite = true
	if !cv.ConvertBatch([]string{in}, out, nil) {
		t.Fatal("conversion failed")
	}
	if b, _ := os.ReadFile(out); string(b) != ">A\nACGT\n" {
		t.Errorf("old file not overwritten, got %q", b)
	}
}

// TestExhaustedNoOverwrite has every suffix taken, so the last one
// tried is written over, with a warning saying so.
func TestExhaustedNoOverwrite(t *testing.T) {
	dir := t.TempDir()
	in := wrtFile(t, dir, "s.fasta", ">A\nACGT\n")
	out := wrtFile(t, dir, "o", "old")
	wrtFile(t, dir, "o.0", "old")
	cv, logs, _ := newConv()
	cv.Config.MaxSuffix = 0
	if !cv.ConvertBatch([]string{in}, out, nil) {
		t.Fatal("conversion failed")
	}
	if b, _ := os.ReadFile(out); string(b) != "old" {
		t.Errorf("%s should be left alone, got %q", out, b)
	}
	if b, _ := os.ReadFile(out + ".0"); string(b) != ">A\nACGT\n" {
		t.Errorf("%s.0 got %q", out, b)
	}
	for _, want := range []string{
		"Failed to rename " + out + ", no free suffix. Writing over " + out + ".0",
		codec.ErrRenameCollisionExhausted.Error(),
	} {
		if !strings.Contains(logs.String(), want) {
			t.Errorf("log does not have %q:\n%s", want, logs.String())
		}
	}
	if strings.Contains(logs.String(), "a suffix has been added") {
		t.Errorf("failed rename reported as a rename:\n%s", logs.String())
	}
}

func TestAppend(t *testing.T) {
	dir := t.TempDir()
	in := wrtFile(t, dir, "s.fasta", ">A\nACGT\n")
	cv, _, _ := newConv()
	cv.Config.Append = true
	out := filepath.Join(dir, "all.fasta")
	for i := 0; i < 2; i++ {
		if !cv.ConvertBatch([]string{in}, out, nil) {
			t.Fatal("conversion failed")
		}
	}
	if b, _ := os.ReadFile(out); string(b) != ">A\nACGT\n>A\nACGT\n" {
		t.Errorf("got %q", b)
	}
	if files := listDir(t, dir); len(files) != 2 {
		t.Errorf("append should not rename, got %v", files)
	}
}

func TestSplit(t *testing.T) {
	aln, _ := alignment.New([]string{"a", "b", "c"}, []string{"AC-T", "ACGT", "A"})
	aln.HeaderInfo = []string{"a one", "b two", "c three"}
	aln.Metadata = "MISSING=?"
	aln.SetSeqMask([]bool{true, false, true})
	aln.SetResMask([]bool{true, false, true, true})
	parts := SplitKeepingEachSequence(aln)
	if len(parts) != 3 {
		t.Fatalf("got %d parts, want 3", len(parts))
	}
	for i, p := range parts {
		if p.NSeq != 1 || !p.Aligned || p.SeqMask != nil || p.ResMask != nil {
			t.Errorf("part %d: %+v", i, p)
		}
		if p.Names[0] != aln.Names[i] || p.Residues[0] != aln.Residues[i] || p.SourcePath != aln.Names[i] {
			t.Errorf("part %d: got %s %s %s", i, p.Names[0], p.Residues[0], p.SourcePath)
		}
		if p.OrigNRes != len(aln.Residues[i]) || p.HeaderInfo != nil || p.Metadata != "" {
			t.Errorf("part %d: nres %d header %q metadata %q", i, p.OrigNRes, p.HeaderInfo, p.Metadata)
		}
	}
	parts[0].Names[0] = "changed"
	if aln.Names[0] != "a" {
		t.Error("split shares names with the original")
	}
}

func TestSplitAndSave(t *testing.T) {
	dir := t.TempDir()
	aln, _ := alignment.New([]string{"a", "b"}, []string{"ACGT", "AC-T"})
	cv, _, _ := newConv()
	if !cv.SaveMany(SplitKeepingEachSequence(aln), filepath.Join(dir, "[in].[extension]"), []string{"pir"}) {
		t.Fatal("save failed")
	}
	if diff := cmp.Diff([]string{"a.pir", "b.pir"}, listDir(t, dir)); diff != "" {
		t.Errorf("(-want +got):\n%s", diff)
	}
}

func TestConfig(t *testing.T) {
	dir := t.TempDir()
	good := wrtFile(t, dir, "good.yaml", "reverse: true\nformats: [clustal, nexus]\nmax_suffix: 3\npattern: \"[in].[extension]\"\n")
	cfg, err := LoadConfig(good)
	if err != nil {
		t.Fatal(err)
	}
	if !cfg.Reverse || cfg.MaxSuffix != 3 || cfg.Pattern != "[in].[extension]" || cfg.Logger == nil {
		t.Errorf("got %+v", cfg)
	}
	if diff := cmp.Diff([]string{"clustal", "nexus"}, cfg.Formats); diff != "" {
		t.Errorf("formats (-want +got):\n%s", diff)
	}
	for _, s := range []string{"max_suffix: -1\n", "append: true\noverwrite: true\n", "reverse: [\n"} {
		if _, err := LoadConfig(wrtFile(t, dir, "bad.yaml", s)); err == nil {
			t.Errorf("%q should not be accepted", s)
		}
	}
	if _, err := LoadConfig(filepath.Join(dir, "nope.yaml")); err == nil {
		t.Error("missing file should be an error")
	}
	if err := DefaultConfig().Validate(); err != nil {
		t.Error("default config not valid:", err)
	}
}

func TestExpandPattern(t *testing.T) {
	c := codec.NewPhylip40()
	for _, tc := range []struct{ pattern, want string }{
		{"[in].[format].[extension]", "seqs.phylip40.phy2"},
		{"out/[in]_[in].txt", "out/seqs_seqs.txt"},
		{"plain", "plain"},
	} {
		if got := ExpandPattern(tc.pattern, "seqs", c); got != tc.want {
			t.Errorf("%s: got %s, want %s", tc.pattern, got, tc.want)
		}
	}
}
