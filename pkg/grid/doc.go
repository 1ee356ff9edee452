// Package grid computes the geometry of a responsive grid of square cells.
//
// # Overview
//
// [Compute] turns a viewport size and a handful of [Settings] into a
// [Metrics] snapshot: column and row counts, the cell size, the pixel extent
// of the grid, a reference center and radius for radial patterns, a stroke
// width, and the current rotation.
//
// The column count is chosen first, then the cell size is derived from it,
// so cells always tile the viewport width exactly:
//
//	columns  = max(MinColumns, floor(width / TargetCellSize))
//	cellSize = width / columns
//	rows     = max(1, floor(height / cellSize))
//
// # Alignment
//
// The reference center is rounded to the nearest cell boundary and then
// clamped half a cell inside the grid on each axis. The reference radius is
// rounded to the nearest whole number of cells. Both roundings make shapes
// drawn by callers line up with cell edges instead of cutting cells in half.
//
// Metrics are plain values: they are produced once per rebuild and handed
// unchanged to every hook of that rebuild.
package grid
