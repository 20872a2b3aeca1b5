/*
Package word defines the data model shared by the macro expander and the
assembler: the 24-bit machine word, its two bit layouts, the addressing
modes, the opcode rule table that is the entire ISA, and the symbol kind
lattice.

Bit packing is expressed as pure encode/decode functions rather than native
bit-field structs, since C-style bit fields are not portable and the hex
text format is the real contract (see the assembler's object file format).
*/
package word
