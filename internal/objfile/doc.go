/*
Package objfile implements the three emitted output files: the object
listing, the entry table, and the external-reference table. Each is a
fixed-width textual format, rendered by an encoding.TextMarshaler on a
small value type. The object listing also implements
encoding.TextUnmarshaler, so it decodes back into words; the entry and
external listings are encode-only.

	    101 3
	0000100 037D04
	...
	0000200 3C0004
	0000201 000003
	0000202 FFFFFF
	0000203 00002A

Hex fields are always six uppercase digits; addresses are always seven
decimal digits, zero-padded.
*/
package objfile
