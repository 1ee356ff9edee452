package server

import (
	_ "embed"
	"html/template"
	"net/http"

	"github.com/matzehuels/pixelgrid/pkg/buildinfo"
	"github.com/matzehuels/pixelgrid/pkg/patterns"
)

//go:embed index.html
var indexHTML string

var indexTmpl = template.Must(template.New("index").Parse(indexHTML))

type indexData struct {
	Version  string
	Patterns []patternInfo
	Default  string
	CellSize float64
	Rotation float64
}

func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	data := indexData{
		Version:  buildinfo.Version,
		Default:  s.cfg.Grid.Pattern,
		CellSize: s.cfg.Grid.Grid.CellSize,
		Rotation: s.cfg.Grid.Rotation,
	}
	for _, p := range patterns.All() {
		data.Patterns = append(data.Patterns, patternInfo{Name: p.Name, Description: p.Description})
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := indexTmpl.Execute(w, data); err != nil {
		s.logger.Error("render index", "error", err)
	}
}
