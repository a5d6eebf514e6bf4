// 29 April 2020
// Squash an alignment using some specified sequence as a reference.

package main

import (
	"flag"
	"fmt"
	"os"
	"path"

	. "github.com/andrew-torda/readal/pkg/seq/common"
	"github.com/andrew-torda/readal/pkg/squash"
)

// usage
func usage() {
	name := path.Base(os.Args[0])
	fmt.Fprintln(os.Stderr, "usage:", name, "[-f format] sequence_string inputfile [outputfile]")
	flag.PrintDefaults()
}

func main() {
	var format, seqstring, infile, outfile string
	flag.StringVar(&format, "f", "fasta", "output format")
	flag.Usage = usage
	flag.Parse()
	if flag.NArg() < 2 {
		fmt.Fprintln(os.Stderr, "require a sequence and an input file")
		usage()
		os.Exit(ExitUsageError)
	}
	seqstring, infile = flag.Arg(0), flag.Arg(1)
	if flag.NArg() > 2 {
		outfile = flag.Arg(2)
	}
	os.Exit(squash.MyMain(seqstring, infile, outfile, format))
}
