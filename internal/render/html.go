package render

import (
	"bytes"
	"html/template"
)

// HTMLDocument serializes a Document Tree into a standalone HTML page. The
// page carries its stylesheet inline so the exporter can hand a single string
// to the raster engine.
func HTMLDocument(t Tree) (string, error) {
	var buf bytes.Buffer
	if err := pageTpl.Execute(&buf, t); err != nil {
		return "", err
	}
	return buf.String(), nil
}

var pageTpl = template.Must(template.New("page").Parse(`<!DOCTYPE html>
<html>
<head>
<meta charset="utf-8">
<style>
  * { margin: 0; padding: 0; box-sizing: border-box; }
  body { font-family: Georgia, 'Times New Roman', serif; color: rgb(34, 34, 34); background: rgb(255, 255, 255); }
  .page { width: 210mm; min-height: 297mm; padding: 14mm 16mm; }
  h1 { font-size: 26px; margin-bottom: 2px; }
  h2 { font-size: 14px; text-transform: uppercase; letter-spacing: 1px; margin: 14px 0 6px; color: rgb(51, 65, 85); }
  h3 { font-size: 13px; margin: 8px 0 2px; }
  p { font-size: 12px; line-height: 1.45; }
  p.meta { font-size: 11px; color: rgb(100, 116, 139); }
  hr { border: none; border-top: 1px solid rgb(203, 213, 225); margin: 8px 0; }
  ul { margin: 4px 0 4px 18px; }
  li { font-size: 12px; line-height: 1.45; }
  .split { display: flex; gap: 18px; }
  .split.root > .col-left { flex: 0 0 34%; background: rgb(241, 245, 249); padding: 10px; }
  .split.root > .col-right { flex: 1; }
  .col-left, .col-right { flex: 1; }
  .sidebar-block { margin-bottom: 12px; }
  .sidebar-block h2 { margin-top: 0; }
</style>
</head>
<body>
<div class="page variant-{{.Variant}}">
{{template "nodes" .Nodes}}
</div>
</body>
</html>
{{define "nodes"}}{{range .}}{{template "node" .}}{{end}}{{end}}
{{define "node"}}{{if eq .Kind "heading"}}{{if eq .Level 1}}<h1>{{.Text}}</h1>{{else if eq .Level 2}}<h2>{{.Text}}</h2>{{else}}<h3>{{.Text}}</h3>{{end}}
{{else if eq .Kind "rule"}}<hr>
{{else if eq .Kind "paragraph"}}{{if .Meta}}<p>{{.Text}}</p><p class="meta">{{.Meta}}</p>{{else}}<p>{{.Text}}</p>{{end}}
{{else if eq .Kind "bullet-list"}}<ul>{{range .Items}}<li>{{.}}</li>{{end}}</ul>
{{else if eq .Kind "two-column-split"}}<div class="split root"><div class="col-left">{{template "nodes" .Left}}</div><div class="col-right">{{template "nodes" .Right}}</div></div>
{{else if eq .Kind "sidebar-block"}}<div class="sidebar-block"><h2>{{.Text}}</h2>{{template "nodes" .Children}}</div>
{{end}}{{end}}`))
