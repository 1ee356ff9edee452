// Package sink provides drawing surfaces for the render driver.
//
// # Overview
//
// Each sink implements [render.Surface] and [render.Committer]. Draw calls
// accumulate into a pending frame; Commit publishes it. Readers only ever see
// complete frames, so a concurrent reader never observes half a grid.
//
//   - [SVG]: SVG markup with one <rect> per cell
//   - [PNG]: raster image drawn with fogleman/gg
//   - [Terminal]: two characters per cell, colored with lipgloss
//   - [JSON]: the metrics plus every cell and overlay primitive as data
//
// Basic usage:
//
//	svg := sink.NewSVG(sink.WithID("grid"))
//	driver.Render(svg, metrics, nil)
//	os.WriteFile("grid.svg", svg.Bytes(), 0o644)
//
// [render.Surface]: github.com/matzehuels/pixelgrid/pkg/render.Surface
// [render.Committer]: github.com/matzehuels/pixelgrid/pkg/render.Committer
package sink
