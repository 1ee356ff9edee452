package pipeline

import (
	"fmt"

	"github.com/matzehuels/pixelgrid/pkg/config"
	"github.com/matzehuels/pixelgrid/pkg/render"
	"github.com/matzehuels/pixelgrid/pkg/render/sink"
)

// output is a surface plus a way to read its committed frame.
type output struct {
	surface render.Surface
	bytes   func() ([]byte, error)
}

func newOutput(format string, cfg *config.Config, scale float64) (output, error) {
	switch format {
	case FormatSVG:
		var opts []sink.SVGOption
		if cfg.Style.Background != "" {
			opts = append(opts, sink.WithBackground(cfg.Style.Background))
		}
		s := sink.NewSVG(opts...)
		return output{s, func() ([]byte, error) { return s.Bytes(), nil }}, nil
	case FormatPNG:
		opts := []sink.PNGOption{sink.WithScale(scale)}
		if cfg.Style.Background != "" {
			opts = append(opts, sink.WithPNGBackground(cfg.Style.Background))
		}
		p := sink.NewPNG(opts...)
		return output{p, func() ([]byte, error) { return p.Bytes(), p.Err() }}, nil
	case FormatTXT:
		t := sink.NewTerminal()
		return output{t, func() ([]byte, error) { return []byte(t.String() + "\n"), nil }}, nil
	case FormatJSON:
		j := sink.NewJSON()
		return output{j, func() ([]byte, error) { return j.Bytes(), j.Err() }}, nil
	default:
		return output{}, fmt.Errorf("unsupported format: %s", format)
	}
}
