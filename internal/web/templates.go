package web

import (
	"bytes"
	"html/template"
)

var pages = template.Must(template.New("wiki").Parse(`
{{define "index"}}<!DOCTYPE html>
<html>
<head><meta charset="utf-8"><title>24 Wiki</title></head>
<body>
<h1>24 Wiki</h1>
<ul>
    <li><a href="/char/">Characters</a></li>
    <li><a href="/top/victim_nationalities">Victim Nationalities</a></li>
</ul>
</body>
</html>
{{end}}

{{define "characters"}}<!DOCTYPE html>
<html>
<head><meta charset="utf-8"><title>Characters</title></head>
<body>
<h1>Characters</h1>
<ul>
{{- range .Characters}}
    <li><a href="{{.URL}}">{{.Name}}</a></li>
{{- end}}
</ul>
</body>
</html>
{{end}}

{{define "character"}}<!DOCTYPE html>
<html>
<head><meta charset="utf-8"><title>{{.Name}}</title></head>
<body>
<h1>{{.Name}}</h1>
<dl>
    <dt>Nationality:</dt>
    <dd>{{.Nationality}}</dd>
    <dt>Played by:</dt>
    <dd>{{with .Actor}}{{.}}{{else}}Unknown{{end}}</dd>
    <dt>Appearances:</dt>
    <dd>
        <ul>
        {{- range .Appearances}}
            <li>{{.Season}} ({{.Episodes}} episodes)</li>
        {{- end}}
        </ul>
    </dd>
    <dt>Killed:</dt>
    <dd>
        <ul>
        {{- range .Victims}}
            <li><a href="{{.URL}}">{{.Name}}</a></li>
        {{- end}}
        </ul>
    </dd>
</dl>
<p><a href="/char/">Return to character list</a></p>
</body>
</html>
{{end}}

{{define "nationalities"}}<!DOCTYPE html>
<html>
<head><meta charset="utf-8"><title>Top Victim Nationalities</title></head>
<body>
<h1>Top Victim Nationalities</h1>
<ul>
{{- range .Nationalities}}
    <li>{{.Name}} {{.Deaths}}</li>
{{- end}}
</ul>
</body>
</html>
{{end}}
`))

// renderPage executes a page into memory so a template failure turns into
// a clean 500 instead of a truncated page.
func renderPage(name string, data any) ([]byte, error) {
	var buf bytes.Buffer
	if err := pages.ExecuteTemplate(&buf, name, data); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
