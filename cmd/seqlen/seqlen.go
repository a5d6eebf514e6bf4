// 25 may 2025
// 17 Oct 2026 reads any alignment format and prints the readal -info lines.
// seqlen visits an alignment and reports the length of sequences
// after removing gaps.

package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/andrew-torda/readal/pkg/convert"
	. "github.com/andrew-torda/readal/pkg/seq/common"
	"github.com/andrew-torda/readal/pkg/seqlen"
)

func main() {
	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: %s input [input...]\n\n", os.Args[0])
		flag.PrintDefaults()
	}
	flag.Parse()
	if flag.NArg() == 0 {
		flag.Usage()
		os.Exit(ExitUsageError)
	}
	cv := convert.New(nil)
	ret := ExitSuccess
	for _, in := range flag.Args() {
		aln := cv.LoadOne(in)
		if aln == nil {
			ret = ExitFailure
			continue
		}
		fmt.Printf("## Alignment File:\t%s\n", in)
		if err := seqlen.Get(aln).Write(os.Stdout); err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(ExitFailure)
		}
		fmt.Println()
	}
	os.Exit(ret)
}
