package export

import (
	"bytes"
	"fmt"
	"html/template"
	"regexp"

	"liteedit/internal/document"
)

// cssColorPattern accepts hex colors, named colors and rgb()/hsl() functions
// with plain numeric arguments.
var cssColorPattern = regexp.MustCompile(`^(?:#(?:[0-9a-fA-F]{3,4}|[0-9a-fA-F]{6}|[0-9a-fA-F]{8})|[a-zA-Z]+|(?:rgba?|hsla?)\((?:[0-9.,%/ +-]|deg|turn)*\))$`)

// cssColor marks recognised colors as safe CSS. Anything else stays a plain
// string, which the template replaces with its safe placeholder.
func cssColor(c string) any {
	if cssColorPattern.MatchString(c) {
		return template.CSS(c)
	}
	return c
}

var pageTmpl = template.Must(template.New("page").Funcs(template.FuncMap{"cssColor": cssColor}).Parse(`<!DOCTYPE html>
<html>
<head>
    <title>LiteEdit Export</title>
    <style>
        body { margin: 0; background: #1e1e1e; }
        .canvas {
            width: {{.Width}}px;
            height: {{.Height}}px;
            background: #1e1e1e;
            position: relative;
            margin: 50px auto;
            overflow: hidden;
        }
    </style>
</head>
<body>
    <div class="canvas">
{{- range .Elements}}
        <div id="{{.ID}}" style="position: absolute; left: {{.X}}px; top: {{.Y}}px; width: {{.W}}px; height: {{.H}}px; transform: rotate({{.Rotation}}deg); z-index: {{.ZIndex}}; display: flex; align-items: center; justify-content: center; {{if .IsText}}color: {{cssColor .Color}};{{else}}background-color: {{cssColor .Color}};{{end}}">{{if .IsText}}{{.Text}}{{end}}</div>
{{- end}}
    </div>
</body>
</html>
`))

// HTML is a standalone page with a canvas-sized container and one
// absolutely positioned box per element, in paint order. Colors that are not
// hex, named, rgb() or hsl() values are replaced by the template's safe
// placeholder.
func HTML(doc *document.Document) ([]byte, error) {
	if doc.Len() == 0 {
		return nil, ErrEmptyDocument
	}

	data := struct {
		Width    float64
		Height   float64
		Elements []document.Element
	}{
		Width:    doc.Bounds().Width,
		Height:   doc.Bounds().Height,
		Elements: doc.PaintOrder(),
	}

	var buf bytes.Buffer
	if err := pageTmpl.Execute(&buf, data); err != nil {
		return nil, fmt.Errorf("render html: %w", err)
	}
	return buf.Bytes(), nil
}
