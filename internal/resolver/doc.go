// Package resolver turns the arrays of a deserialized result file into named
// series.
//
// Two steps run in order:
//
//   - [DecodeNames] unpacks the column-wise character matrix into an ordered
//     list of variable names.
//   - [Resolve] follows the dataInfo index table into data_1 or data_2 and
//     binds every resolvable name to a copy of its row. Row 0 of data_2 is
//     the shared time axis ([ExtractTime]).
//
// Neither step fails. A truncated name column yields a shorter or empty name,
// and an index entry that points nowhere leaves its name out of the table.
// [ResolveWithReport] exposes those gaps as data for logging and tests.
package resolver
