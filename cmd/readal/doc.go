// 17 Oct 2026

/*
Readal reads multiple sequence alignments and writes them in other formats.

The input format is guessed by looking at the file. Gzipped files are fine.
Formats it can read are clustal, fasta, mega (sequential and interleaved),
nexus, phylip 3.2, phylip 4.0, phylip paml and pir/nbrf. It can also write
the _m10 variants, which cut names to ten characters, and an html report
where columns are coloured, clustalx style.

Usage:

	readal -in file [-in file...] [-out pattern] [-formats f1,f2] [flags] [file...]

The output pattern may contain

	[in]        the input file name without directory or extension
	[format]    the name of the output format
	[extension] the usual extension for the output format

so

	readal -in ex1.clw -out "[in].[format].[extension]" -formats fasta,phylip32

writes ex1.fasta.fasta and ex1.phylip32.phy. Without -out, the alignment goes
to standard output, and only one format can be given.
If an output file is already there, it is not trashed. Instead, a suffix
.0, .1, ... is added and a warning printed. With -append, output is added to
the end of existing files.

The flags are:

	-in file
		Input file. May be repeated or given as a comma separated list.
		Arguments after the flags are taken as input files too.
	-formats format
		Output format. May be repeated or given as a comma separated list.
		Defaults to fasta.
	-out pattern
		Output file name pattern, as above.
	-reverse
		Write each sequence backwards.
	-keepHeaders
		Write the whole original header line, not just the name.
	-append
		Append to output files.
	-overwrite
		If no free suffix can be found, write over the file.
	-squash ref
		Remove columns where sequence ref has a gap. ref is part of a
		sequence name, or a number, counting from 1.
	-split
		Write each sequence as its own alignment, named after the sequence.
	-format, -type, -info
		Report the input format and whether it is aligned, the sequence
		type, or statistics on sequence lengths.
	-config file.yaml
		Read settings from a yaml file. Command line flags win.
	-v
		Verbose. Print debugging messages.

Old style flags like -clustal, -fasta, -phylip3.2, -nbrf or -html add one
format each to the list.
*/
package main
