// 20 April 2020
// 27 april 2020
// 17 Oct 2026 any input format, -f for output

/*
Squash removes columns from a multiple sequence alignment

We take a multiple sequence alignment and some specified sequence.
From the multiple sequence alignment remove any columns which
correspond to a gap in the specified sequence.

Usage:

	squash [-f format] name input [output]

The input may be in any format readal understands. Output is fasta,
unless -f gives another format.
If no output file is given, stdout will be used. If the output file
exists, a suffix like .0 is added rather than trashing it.
Sequences are not changed. The columns are only hidden when writing.

The name argument is tricky. It is a string, so it will have to be quoted
on the command line.
It must be contained within the name or comment of a sequence, so

	'blah blah [homo sapiens]'

will look for 'blah blah [homo sapiens]' within the sequences. It will
stop looking at the first match it finds.
Be careful. If there is a sequence that starts

	> blah blah [homo sapiens]

and there is another that starts

	> blah blah foo foo [monkey]

and you search for "blah blah", it will return the first sequence it
finds, even if you want the monkey sequence.
There is more.
If the string starts and ends with an integer like "1" it will take
this as the number of the reference sequence, counting from 1.
Very often, the first sequence is the reference, so you would say

	1

instead of a sequence name.
*/
package main
