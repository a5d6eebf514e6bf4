// 16 Oct 2026

package codec

import (
	"fmt"
	"io"
	"strings"

	"github.com/andrew-torda/matrix"
	"golang.org/x/net/html"

	"github.com/andrew-torda/readal/pkg/alignment"
)

const htmlBlock = 120 // columns per block in the report

// HTMLReport writes an alignment as a coloured web page. It cannot be
// read back.
type HTMLReport struct {
	base
	saveOnly
}

func NewHTMLReport() *HTMLReport {
	return &HTMLReport{base: base{name: "html", ext: "html", aliases: []string{"HTML", "htmlreport"}}}
}

func (c *HTMLReport) Load(string) (*alignment.Alignment, error) { return nil, c.loadErr(c.name) }

const htmlHead = `<!DOCTYPE html>
<html><head>
    <meta http-equiv="Content-Type" content="text/html;charset=ISO-8859-1" />
    <title>readal</title>
    <style type="text/css">
    .b  { background-color: #3366ff; }
    .r  { background-color: #cc0000; }
    .g  { background-color: #33cc00; }
    .p  { background-color: #ff6666; }
    .m  { background-color: #cc33cc; }
    .o  { background-color: #ff9900; }
    .c  { background-color: #46C7C7; }
    .y  { background-color: #FFFF00; }
    </style>
  </head>

  <body>
  <pre>
`

const htmlTail = "    </pre>\n  </body>\n</html>\n"

// Residue groups for the colour scheme
const (
	hydrophobic = "AILMFWVC"
	positive    = "KR"
	negative    = "DE"
	polar       = "NQST"
	aromatic    = "HY"
)

// colour picks a clustalx style colour for residue c in column j of
// the counts. 'w' means no colour. Glycine and proline are always
// coloured. Other residues only get a colour if enough of the column
// has similar residues.
func colour(c byte, counts *matrix.FMatrix2d, j, nseq int) byte {
	frac := func(syms string) float32 { return alignment.ColFrac(counts, j, nseq, syms) }
	if 'a' <= c && c <= 'z' {
		c -= 'a' - 'A'
	}
	switch c {
	case 'G':
		return 'o'
	case 'P':
		return 'y'
	case 'A', 'I', 'L', 'M', 'F', 'W', 'V':
		if frac(hydrophobic) > 0.6 {
			return 'b'
		}
	case 'C':
		if frac("C") > 0.85 {
			return 'p'
		}
		if frac(hydrophobic) > 0.6 {
			return 'b'
		}
	case 'K', 'R':
		if frac(positive) > 0.6 {
			return 'r'
		}
	case 'D', 'E':
		if frac(negative) > 0.5 {
			return 'm'
		}
	case 'N', 'Q', 'S', 'T':
		if frac(polar) > 0.5 {
			return 'g'
		}
	case 'H', 'Y':
		if frac(aromatic) > 0.5 || frac(hydrophobic) > 0.6 {
			return 'c'
		}
	}
	return 'w'
}

// Save writes blocks of 120 columns. Each block has a line with column
// numbers and a line with a "+" every ten columns.
func (c *HTMLReport) Save(aln *alignment.Alignment, w io.Writer, cfg *SaveConfig) error {
	cfg = orDefault(cfg)
	if err := needAligned(c.name, aln); err != nil {
		return err
	}
	r := keptRows(aln, cfg, false)
	out, err := alignment.New(r.names, r.seqs)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrSaveFailed, err)
	}
	counts := out.Counts()
	nseq := len(r.seqs)
	maxName := r.maxName()

	bw := newWriter(w)
	fmt.Fprint(bw, htmlHead)
	for j, upper := 0, htmlBlock; j < r.nres; j, upper = j+htmlBlock, upper+htmlBlock {
		fmt.Fprintf(bw, "\n%*d", maxName+19, j+10)
		for i := j + 20; i <= r.nres && i <= upper; i += 10 {
			fmt.Fprintf(bw, "%10d", i)
		}
		var ruler strings.Builder
		for i := j + 1; i <= r.nres && i <= upper; i++ {
			if i%10 == 0 {
				ruler.WriteByte('+')
			} else {
				ruler.WriteByte('=')
			}
		}
		fmt.Fprintf(bw, "\n%*s", maxName+10, ruler.String())
		for i, s := range r.seqs {
			name := r.names[i]
			fmt.Fprint(bw, "\n", html.EscapeString(name), strings.Repeat(" ", maxName+9-len(name)))
			for k := j; k < r.nres && k < upper; k++ {
				res := html.EscapeString(s[k : k+1])
				if col := colour(s[k], counts, k, nseq); col != 'w' {
					fmt.Fprintf(bw, "<span class=%c>%s</span>", col, res)
				} else {
					fmt.Fprint(bw, res)
				}
			}
		}
		fmt.Fprint(bw, "\n")
	}
	fmt.Fprint(bw, htmlTail)
	return finish(bw, c.name)
}
