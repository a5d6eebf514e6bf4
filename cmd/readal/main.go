// 17 Oct 2026
// Convert multiple sequence alignments between formats.

package main

import (
	"os"

	"github.com/andrew-torda/readal/pkg/readal"
)

func main() {
	os.Exit(readal.Mymain(os.Args[1:], os.Stdout, os.Stderr))
}
