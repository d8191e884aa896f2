// Package export turns a rendered Document Tree into a downloadable PDF:
// serialize to HTML, sanitize color functions the rasterizer cannot parse,
// rasterize at a supersampling factor, then embed the bitmap full-bleed on a
// single A4 page.
package export

import (
	"context"
	"encoding/base64"
	"fmt"
	"strings"

	"resume-architect/internal/render"
)

// Rasterizer is the port to the headless-browser raster engine.
type Rasterizer interface {
	Rasterize(ctx context.Context, html string, scale float64) ([]byte, error)
	PrintPDF(ctx context.Context, html string) ([]byte, error)
}

// Supersampling factor for the raster stage. 2x keeps 12px body text legible
// in the final PDF without ballooning file size.
const defaultScale = 2.0

// Artifact is a finished export: the PDF bytes plus the suggested download
// name derived from the profile's identity.
type Artifact struct {
	Data     []byte
	Filename string
}

type Exporter struct {
	engine Rasterizer
	scale  float64
}

func NewExporter(engine Rasterizer) *Exporter {
	return &Exporter{engine: engine, scale: defaultScale}
}

// SetScale overrides the supersampling factor; non-positive values are
// ignored.
func (e *Exporter) SetScale(scale float64) {
	if scale > 0 {
		e.scale = scale
	}
}

// Export produces the PDF artifact for a rendered tree. The tree is a
// snapshot: rewrites finishing after export starts don't affect the output.
// Any raster failure aborts the whole export; no partial file is produced.
func (e *Exporter) Export(ctx context.Context, tree render.Tree, ownerName string) (Artifact, error) {
	html, err := render.HTMLDocument(tree)
	if err != nil {
		return Artifact{}, fmt.Errorf("serialize document: %w", err)
	}
	html = SanitizeColors(html)

	bitmap, err := e.engine.Rasterize(ctx, html, e.scale)
	if err != nil {
		return Artifact{}, fmt.Errorf("rasterize document: %w", err)
	}

	pdf, err := e.engine.PrintPDF(ctx, bitmapPage(bitmap))
	if err != nil {
		return Artifact{}, fmt.Errorf("package document: %w", err)
	}

	return Artifact{Data: pdf, Filename: Filename(ownerName)}, nil
}

// bitmapPage wraps the raster as a full-bleed image on one A4-proportioned
// page.
func bitmapPage(png []byte) string {
	return `<!DOCTYPE html><html><head><style>
@page { size: A4; margin: 0; }
html, body { margin: 0; padding: 0; }
img { display: block; width: 210mm; height: 297mm; }
</style></head><body><img src="data:image/png;base64,` +
		base64.StdEncoding.EncodeToString(png) + `"></body></html>`
}

// Filename derives the suggested download name from the identity's full
// name: whitespace collapsed to underscores, ".pdf" appended.
func Filename(ownerName string) string {
	name := strings.Join(strings.Fields(ownerName), "_")
	if name == "" {
		name = "resume"
	}
	return name + ".pdf"
}
