// Package pkg provides the core libraries for pixelgrid responsive grid rendering.
//
// # Overview
//
// Pixelgrid fills a viewport with square cells, highlights cells with a
// pattern, and redraws when the viewport or an input changes. The pkg
// directory is organized into four main areas:
//
//  1. Layout - pure geometry ([geom], [grid])
//  2. Rendering - the rebuild driver and its surfaces ([render], [render/sink])
//  3. Live binding - documents, engines, and patterns ([page], [engine], [patterns])
//  4. Infrastructure - configuration, caching, sessions, and orchestration
//     ([config], [cache], [session], [pipeline], [observability], [errors])
//
// # Architecture
//
// The data flow of one rebuild:
//
//	viewport size + inputs (page)
//	         ↓
//	    [grid] package (metrics snapshot)
//	         ↓
//	    [render] package (hooks + driver)
//	         ↓
//	    [render/sink] surface (SVG, PNG, terminal, JSON)
//	         ↓
//	    status text published to the page
//
// # Quick Start
//
// Bind an engine to an in-memory page and redraw on input:
//
//	import (
//	    "github.com/matzehuels/pixelgrid/pkg/engine"
//	    "github.com/matzehuels/pixelgrid/pkg/page"
//	    "github.com/matzehuels/pixelgrid/pkg/patterns"
//	    "github.com/matzehuels/pixelgrid/pkg/render/sink"
//	)
//
//	p := page.New(1280, 720)
//	svg := sink.NewSVG()
//	p.AddSurface("grid", svg)
//	p.AddInput("rotation", "0")
//	p.AddOutput("hud")
//
//	ring, _ := patterns.Lookup("ring")
//	e, err := engine.Init(p, engine.Options{
//	    StatusID:   "hud",
//	    RotationID: "rotation",
//	    Hooks:      ring.Hooks,
//	})
//	if err != nil {
//	    return err
//	}
//	defer e.Close()
//
//	p.SetValue("rotation", "30") // rebuilds immediately
//	p.SetSize(1920, 1080)        // rebuilds once the resize settles
//
// # Main Packages
//
// [grid] - Column count, cell size, row count, reference center, radius, and
// stroke width for a viewport. Pure and deterministic.
//
// [render] - Drives one rebuild: resets the surface, consults the highlight
// predicate for every cell in row-major order, draws the overlay, commits,
// and publishes the status line.
//
// [render/sink] - Surfaces: SVG markup, PNG raster (gg), colored terminal
// text (lipgloss), and a JSON cell dump.
//
// [engine] - Binds a document to a driver. Inputs rebuild immediately; resizes
// are debounced per engine.
//
// [pipeline] - One-shot rendering of a configuration to artifacts with cache
// lookups, used by the CLI and the frame API.
//
// # Testing
//
// Run tests:
//
//	go test ./pkg/...           # All tests
//	go test ./pkg/engine/...    # Specific package
//	go test -run Example ./...  # Examples only
//
// Set PIXELGRID_TEST_REDIS to a redis address to include the Redis cache tests.
//
// [geom]: https://pkg.go.dev/github.com/matzehuels/pixelgrid/pkg/geom
// [grid]: https://pkg.go.dev/github.com/matzehuels/pixelgrid/pkg/grid
// [render]: https://pkg.go.dev/github.com/matzehuels/pixelgrid/pkg/render
// [render/sink]: https://pkg.go.dev/github.com/matzehuels/pixelgrid/pkg/render/sink
// [page]: https://pkg.go.dev/github.com/matzehuels/pixelgrid/pkg/page
// [engine]: https://pkg.go.dev/github.com/matzehuels/pixelgrid/pkg/engine
// [patterns]: https://pkg.go.dev/github.com/matzehuels/pixelgrid/pkg/patterns
// [config]: https://pkg.go.dev/github.com/matzehuels/pixelgrid/pkg/config
// [cache]: https://pkg.go.dev/github.com/matzehuels/pixelgrid/pkg/cache
// [session]: https://pkg.go.dev/github.com/matzehuels/pixelgrid/pkg/session
// [pipeline]: https://pkg.go.dev/github.com/matzehuels/pixelgrid/pkg/pipeline
// [observability]: https://pkg.go.dev/github.com/matzehuels/pixelgrid/pkg/observability
// [errors]: https://pkg.go.dev/github.com/matzehuels/pixelgrid/pkg/errors
package pkg
