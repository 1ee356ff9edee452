// Package render drives one rebuild of a cell grid onto a drawing surface.
//
// # Overview
//
// A [Driver] consumes a [grid.Metrics] snapshot and emits every cell in
// row-major order onto a [Surface], consulting caller-supplied [Hooks] along
// the way:
//
//  1. Surface.Reset clears the previous frame and sizes the surface
//  2. Hooks.OnBuildStart
//  3. for each row, for each column: Hooks.IsHighlighted, Surface.DrawCell,
//     Hooks.OnCell
//  4. Hooks.DrawOverlay
//  5. Hooks.OnBuildEnd
//  6. Surface.Commit (when the surface implements [Committer])
//  7. the status text from Hooks.Status is published to the [Output]
//
// Every hook sees the same metrics value. No cell state survives a rebuild.
//
// # Surfaces
//
// Surfaces live in the [sink] subpackage: SVG markup, PNG rasters, and
// colored terminal text. Tests can implement [Surface] directly to record
// draw calls.
//
// # Helpers
//
// [Helpers] bundles geometry shared by predicates and overlays so that a
// highlighted cell and a drawn stroke agree on distances:
//
//	hooks := render.Hooks{
//	    IsHighlighted: func(c render.CellContext) bool {
//	        d := c.Helpers.DistanceToSegment(c.CX, c.CY, 0, 0, c.Metrics.GridWidth, c.Metrics.GridHeight)
//	        return d <= c.Metrics.StrokeWidth/2
//	    },
//	}
//
// [grid.Metrics]: github.com/matzehuels/pixelgrid/pkg/grid.Metrics
// [sink]: github.com/matzehuels/pixelgrid/pkg/render/sink
package render
