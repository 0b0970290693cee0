// Package phpserial decodes the text notation produced by PHP's serialize()
// as it appears in PHP session records.
//
// # Grammar
//
// A value is a one-character type tag followed by its body:
//
//	N;                                  null
//	b:0; b:1;                           boolean
//	i:<int>;                            integer
//	d:<float>;                          float (INF, -INF and NAN accepted)
//	s:<len>:"<bytes>";                  string, <len> counts bytes
//	a:<n>:{<key><value>...}             ordered array of n pairs
//	O:<len>:"<class>":<n>:{<key><value>...}  object with n attributes
//
// Decoding is strictly left to right with no backtracking. Any deviation,
// including bytes left over after the top-level value, aborts the whole
// decode with an error wrapping [ErrMalformed]; no partial value is returned.
//
// # Architecture boundaries
//
// This package is pure: no I/O, no shared state. It does NOT know about
// Redis, cookies or HTTP. Callers strip session framework metadata with
// [StripPrefix] and flatten the result with [Attributes].
package phpserial
