package web

import (
	"html/template"

	"github.com/gridboard/gridboard/pkg/forms"
)

var baseTpl = `<!doctype html>
<html lang="en">
<head>
<meta charset="utf-8">
<meta name="viewport" content="width=device-width, initial-scale=1">
<title>Gridboard</title>
<style>
body { font-family: system-ui, -apple-system, Segoe UI, Roboto, Arial, sans-serif; margin: 0; background: #f7f7f8; color: #1f2328; }
header { padding: 12px 16px; background: #24292f; color: #f6f8fa; }
.container { padding: 16px; max-width: 1200px; margin: 0 auto; }
h1, h2, h3, h4 { margin: 0 0 12px 0; }
table { border-collapse: collapse; font-size: 13px; margin-bottom: 16px; }
th, td { border: 1px solid #d0d7de; padding: 4px 8px; text-align: right; }
th { background: #eaeef2; }
td.name, th.name { text-align: left; }
.param-block { background: #ffffff; border: 1px solid #d0d7de; border-radius: 6px; padding: 12px; margin-bottom: 12px; }
.zero { color: #b0b6bd; }
a.nav { color: #9fc1ff; text-decoration: none; margin-right: 12px; }
button { background: #1f6feb; color: white; border: 0; padding: 8px 12px; border-radius: 6px; cursor: pointer; }
input[type="text"] { border: 1px solid #d0d7de; border-radius: 6px; padding: 6px; }
.notice { background: #dafbe1; border: 1px solid #aceebb; border-radius: 6px; padding: 8px 12px; margin-bottom: 16px; }
</style>
</head>
<body>
<header>
  <div class="container">
    <h1 style="display:inline-block;margin-right:16px;">Gridboard</h1>
    <nav style="display:inline-block">
      <a class="nav" href="/">Global errors</a>
      <a class="nav" href="/history">Action history</a>
    </nav>
  </div>
</header>
<main class="container">
  {{ template "content" . }}
</main>
</body>
</html>`

var indexTplBody = `{{ define "content" }}
<h2>Global errors by {{ .Title }}</h2>
<p>
  Divide by:
  <a href="/?pievar=errorcode">error code</a> |
  <a href="/?pievar=sitename">site name</a> |
  <a href="/?pievar=stepname">workflow</a>
</p>
<table>
  <tr>
    <th class="name">{{ .RowAxis }}</th>
    {{ range .Cols }}<th>{{ . }}</th>{{ end }}
    <th>total</th>
  </tr>
  {{ range .Rows }}
  <tr>
    <td class="name">{{ if .Link }}<a href="{{ .Link }}">{{ .Name }}</a>{{ else }}{{ .Name }}{{ end }}</td>
    {{ range .Cells }}<td{{ if eq .Total 0 }} class="zero"{{ end }}{{ if .Breakdown }} title="{{ .Breakdown }}"{{ end }}>{{ .Total }}</td>{{ end }}
    <td><b>{{ .Total }}</b></td>
  </tr>
  {{ end }}
</table>
{{ end }}`

var workflowTplBody = `{{ define "content" }}
<h2>Workflow {{ .Workflow }}</h2>
{{ if .Submitted }}<div class="notice">Action submitted.</div>{{ end }}

{{ range .Steps }}
<h3 id="step-{{ taskName .Step }}">{{ taskName .Step }}</h3>
<table>
  <tr>
    <th class="name">error code</th>
    {{ range .Sites }}<th>{{ . }}</th>{{ end }}
  </tr>
  {{ range .Rows }}
  <tr>
    <td class="name">{{ .Code }}</td>
    {{ range .Counts }}<td{{ if eq . 0 }} class="zero"{{ end }}>{{ . }}</td>{{ end }}
  </tr>
  {{ end }}
</table>
{{ end }}

<h3>Submit action</h3>
<p>
  {{ range .Actions }}
  <a href="/workflow/{{ $.Workflow }}?action={{ . }}">{{ . }}</a> |
  {{ end }}
</p>

<form method="post" action="/submit">
  <input type="hidden" name="workflow" value="{{ .Workflow }}">
  <input type="hidden" name="action" value="{{ .Selected }}">
  <div id="parameter_form">
    {{ .FormHTML }}
  </div>
  {{ if .Selected }}
  <p><b>reasons</b><br>
  {{ range .Reasons }}
  <label><input type="checkbox" name="reason" value="{{ .Short }}"> {{ .Short }}</label><br>
  {{ end }}
  </p>
  <p><b>new reason</b><br>
  <input type="text" name="newreason_short" placeholder="short name">
  <input type="text" name="newreason_long" placeholder="description">
  </p>
  <p><b>operator</b><br><input type="text" name="operator" value=""></p>
  <button type="submit">Submit</button>
  {{ end }}
</form>
{{ end }}`

func newTemplates() (index, workflow *template.Template) {
	funcs := template.FuncMap{
		"taskName": forms.TaskDisplayName,
	}

	index = template.Must(template.New("base").Funcs(funcs).Parse(baseTpl))
	template.Must(index.Parse(indexTplBody))

	workflow = template.Must(template.New("base").Funcs(funcs).Parse(baseTpl))
	template.Must(workflow.Parse(workflowTplBody))
	return index, workflow
}
