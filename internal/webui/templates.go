// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package webui

import "html/template"

var indexTmpl = template.Must(template.New("index").Parse(`<!DOCTYPE html>
<html lang="en"><head><meta charset="UTF-8"><meta name="viewport" content="width=device-width,initial-scale=1">
<title>Company Directory Extractor</title>
<style>
body{font-family:system-ui,sans-serif;max-width:720px;margin:2rem auto;padding:0 1rem;color:#222;background:#fafafa}
h1{font-size:1.4rem;border-bottom:2px solid #e0e0e0;padding-bottom:.5rem}
form{background:#fff;border:1px solid #e0e0e0;border-radius:6px;padding:1rem;margin-bottom:1rem}
label{display:block;margin-bottom:.5rem;font-weight:600}
input[type=text]{width:100%;padding:.4rem;margin-bottom:1rem;border:1px solid #ccc;border-radius:4px}
button{padding:.5rem 1.2rem;border:none;border-radius:4px;background:#2a6;color:#fff;cursor:pointer}
.hint{font-size:.8rem;color:#666}
</style></head><body>
<h1>Company Directory Extractor</h1>
<form method="post" action="/convert" enctype="multipart/form-data">
<label for="document">Upload a document</label>
<input type="file" id="document" name="document">
<label for="uri">&hellip;or fetch from a URI</label>
<input type="text" id="uri" name="uri" placeholder="https://example.com/batch.html">
<p class="hint">http, https, file and data URIs are supported. The upload takes precedence when both are given.</p>
<button type="submit">Convert &amp; Extract</button>
</form>
</body></html>`))

var resultTmpl = template.Must(template.New("result").Parse(`<!DOCTYPE html>
<html lang="en"><head><meta charset="UTF-8"><meta name="viewport" content="width=device-width,initial-scale=1">
<title>{{.Name}} — Company Directory Extractor</title>
<style>
body{font-family:system-ui,sans-serif;max-width:960px;margin:2rem auto;padding:0 1rem;color:#222;background:#fafafa}
h1{font-size:1.4rem;border-bottom:2px solid #e0e0e0;padding-bottom:.5rem}
h2{font-size:1.1rem}
table{border-collapse:collapse;width:100%;background:#fff}
th,td{border:1px solid #e0e0e0;padding:.4rem .6rem;text-align:left;font-size:.9rem}
th{background:#f0f0f0}
pre{background:#fff;border:1px solid #e0e0e0;border-radius:6px;padding:1rem;overflow-x:auto;font-size:.85rem}
.issue{color:#a33;font-size:.85rem}
.meta{font-size:.85rem;color:#666;margin-bottom:1rem}
.downloads a{margin-right:1rem}
.empty{color:#999;font-style:italic}
</style></head><body>
<h1>{{.Name}}</h1>
<p class="meta">Source: {{.Source}} &mdash; {{len .Companies}} companies extracted</p>
<p class="downloads">
<a href="/result/{{.ID}}/markdown">Download Markdown</a>
<a href="/result/{{.ID}}/companies.json">Download JSON</a>
<a href="/">Convert another</a>
</p>
{{- if .Issues}}
<h2>Diagnostics</h2>
{{- range .Issues}}
<p class="issue">{{.}}</p>
{{- end}}
{{- end}}
{{- if .Companies}}
<h2>Companies</h2>
<table>
<tr><th>Company</th><th>Website</th><th>Description</th><th>Tags</th><th>Location</th></tr>
{{- range .Companies}}
<tr><td>{{.Company}}</td><td>{{.CompanyWebsite}}</td><td>{{.ShortDescription}}</td><td>{{range $i, $t := .Tags}}{{if $i}}, {{end}}{{$t}}{{end}}</td><td>{{.Location}}</td></tr>
{{- end}}
</table>
{{- else}}
<h2>Companies</h2>
<p class="empty">No directory table found. The converted Markdown is shown below.</p>
{{- end}}
<h2>Markdown</h2>
<pre>{{.Markdown}}</pre>
</body></html>`))
