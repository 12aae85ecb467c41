package sink

import (
	"bytes"
	"html/template"

	"github.com/branislavfamily/familysite/pkg/render/tree"
	"github.com/branislavfamily/familysite/pkg/viewport"
)

var htmlTmpl = template.Must(template.New("tree").Parse(`
{{- define "node" -}}
<div class="tree-node" data-key="{{.Card.Key}}">
<div class="tree-card reveal" data-key="{{.Card.Key}}" data-path="{{.Card.Path}}" data-depth="{{.Card.Depth}}">
{{- if .Card.Image}}<img class="tree-avatar" src="{{.Card.Image}}" alt="{{.Card.Name}}" loading="lazy">
{{- else}}<span class="tree-avatar tree-initials" aria-hidden="true">{{.Card.Initials}}</span>{{end}}
<h3 class="tree-name">{{.Card.Name}}</h3><p class="tree-role">{{.Card.Role}}</p></div>
{{- if .Connector}}
<div class="tree-connector-v" aria-hidden="true"></div>
<div class="tree-children">
{{- range .Children}}
<div class="tree-slot">{{template "node" .View}}</div>
{{- if .SiblingConnector}}<div class="tree-connector-h" aria-hidden="true"></div>{{end}}
{{- end}}
</div>
{{- end}}
</div>
{{- end -}}
<div class="tree-viewport" data-scale="{{.T.Scale}}" data-x="{{.T.X}}" data-y="{{.T.Y}}">
<div class="tree-canvas" style="transform: {{.CSS}}">
{{- if .View}}{{template "node" .View}}{{end}}
</div>
</div>
`))

// RenderHTML renders v as nested markup inside a viewport container whose
// canvas carries transform t.
func RenderHTML(v *tree.View, t viewport.Transform) ([]byte, error) {
	var buf bytes.Buffer
	err := htmlTmpl.Execute(&buf, struct {
		View *tree.View
		T    viewport.Transform
		CSS  template.CSS
	}{v, t, template.CSS(t.CSS())})
	if err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
