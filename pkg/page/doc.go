// Package page is an in-memory host document for grid engines.
//
// A Page plays the role a browser document plays for a drawing widget: it
// holds drawing surfaces, text inputs, and text outputs under string
// identifiers, knows the current viewport size, and notifies listeners when
// an input value or the viewport changes. Listeners run synchronously on the
// goroutine that made the change.
//
// The CLI, the terminal viewer, and the live server each build a Page and hand
// it to engine.Init:
//
//	p := page.New(800, 600)
//	p.AddSurface("grid", sink.NewSVG())
//	p.AddInput("rotation", "0")
//	p.AddOutput("hud")
//
//	e, err := engine.Init(p, engine.Options{RotationID: "rotation", StatusID: "hud"})
//	...
//	p.SetValue("rotation", "45") // rebuilds immediately
//	p.SetSize(1024, 768)         // rebuilds once the resize burst settles
package page
