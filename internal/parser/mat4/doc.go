// Package mat4 reads and writes MAT level 4 containers, the format
// OpenModelica uses for simulation results.
//
// A container is a plain sequence of matrices. Each matrix starts with a
// 20-byte header of five int32 values:
//
//	type    MOPT code: M*1000 + O*100 + P*10 + T
//	mrows   row count
//	ncols   column count
//	imagf   1 when an imaginary part follows
//	namlen  name length including the terminating NUL
//
// followed by the name and the real part in column-major order. M selects
// the byte order (0 little endian, 1 big endian), P the element precision
// and T the matrix kind (0 numeric, 1 text, 2 sparse). Sparse and complex
// matrices are rejected.
//
// OpenModelica writes the result arrays either transposed ("binTrans", the
// canonical layout used by the rest of this module) or as-is ("binNormal").
// [Normalize] rewrites binNormal files into the canonical layout.
package mat4
