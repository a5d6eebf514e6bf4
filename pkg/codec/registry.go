// 16 Oct 2026

package codec

import (
	"fmt"

	"github.com/andrew-torda/readal/pkg/alignment"
)

// Registry is an ordered list of codecs. The order matters. When two
// codecs are equally sure about a file, the one registered first wins.
// A registry does not change after it is made, so it can be shared.
type Registry struct {
	codecs []Codec
}

// NewRegistry makes a registry from codecs, in the order given.
func NewRegistry(codecs ...Codec) *Registry {
	return &Registry{codecs: append([]Codec(nil), codecs...)}
}

// DefaultRegistry has every format we know about.
func DefaultRegistry() *Registry {
	return NewRegistry(
		NewClustal(),
		NewFastaM10(),
		NewFasta(),
		NewHTMLReport(),
		NewMegaInterleaved(),
		NewMegaSequential(),
		NewNexusM10(),
		NewNexus(),
		NewPhylip32M10(),
		NewPhylip32(),
		NewPhylip40M10(),
		NewPhylip40(),
		NewPhylipPamlM10(),
		NewPhylipPaml(),
		NewPir(),
	)
}

// Codecs returns the codecs in registration order. The slice is a copy.
func (reg *Registry) Codecs() []Codec { return append([]Codec(nil), reg.codecs...) }

// ResolveByContent opens a file and asks every codec how sure it is
// that it can read it. The first codec with the highest score wins.
// No codec is asked about a file which cannot be opened or is empty.
func (reg *Registry) ResolveByContent(fname string) (Codec, error) {
	c, err := openContent(fname)
	if err != nil {
		return nil, err
	}
	defer c.Close()
	var best Codec
	bestScore := 0
	for _, cdc := range reg.codecs {
		if score := cdc.Detect(c.view()); score > bestScore {
			best, bestScore = cdc, score
		}
	}
	if best == nil {
		return nil, fmt.Errorf("%w: %s", ErrUnrecognizedFormat, fname)
	}
	return best, nil
}

// ResolveByName returns the first codec which answers to a name.
func (reg *Registry) ResolveByName(token string) (Codec, error) {
	for _, cdc := range reg.codecs {
		if cdc.MatchesName(token) {
			return cdc, nil
		}
	}
	return nil, fmt.Errorf("%w: %q", ErrUnrecognizedFormat, token)
}

// AvailableLoaders lists the names of codecs which can read.
func (reg *Registry) AvailableLoaders() []string {
	var names []string
	for _, cdc := range reg.codecs {
		if cdc.CanLoad() {
			names = append(names, cdc.Name())
		}
	}
	return names
}

// AvailableSavers lists the names of codecs which can write.
func (reg *Registry) AvailableSavers() []string {
	var names []string
	for _, cdc := range reg.codecs {
		if cdc.CanSave() {
			names = append(names, cdc.Name())
		}
	}
	return names
}

// Load works out the format of a file and reads it.
func (reg *Registry) Load(fname string) (*alignment.Alignment, Codec, error) {
	cdc, err := reg.ResolveByContent(fname)
	if err != nil {
		return nil, nil, err
	}
	aln, err := cdc.Load(fname)
	if err != nil {
		return nil, cdc, fmt.Errorf("loading %s as %s: %w", fname, cdc.Name(), err)
	}
	return aln, cdc, nil
}
