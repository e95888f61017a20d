// Package puzzle models sliding-block ("Rush Hour") boards.
//
// # Overview
//
// A puzzle is split into two read-only halves:
//
//   - [Layout]: facts fixed for the whole puzzle. Board size and, per
//     vehicle, its orientation, length and fixed coordinate (the lane it
//     can never leave).
//   - [State]: one snapshot of where every vehicle currently sits along
//     its free axis, plus the goal test.
//
// Vehicle ids are dense integers in [0, n). Id 0 is always the target
// vehicle, the one that has to reach the exit on the far edge of its axis
// (the right edge for a horizontal target).
//
// # Formats
//
// Boards are read from two text formats:
//
// Grid rows, one string per row. '.' (or 'o') is an empty cell, 'A' is
// the target and any other rune labels a vehicle:
//
//	BB...C
//	D..E.C
//	DAAE.C
//	D..E..
//	F...GG
//	F.HHH.
//
// The jam format, a size line followed by "col row h|v length" per
// vehicle, target first. Files may hold several jams, each introduced by a
// "Jam-N" header and closed by a "." line:
//
//	Jam-1
//	6
//	1 2 h 2
//	0 1 v 3
//	.
//
// Walls are not supported.
//
// # Levels
//
// [Levels] exposes the classic forty levels shipped with
// github.com/fogleman/rush, and [Solve] runs that library's optimal solver
// as a reference for how close an estimate gets to the real move count.
package puzzle
