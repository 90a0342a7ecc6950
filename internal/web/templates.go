package web

import "html/template"

// Page templates, kept inline so the binary is self-contained.
var pageTemplates = template.Must(template.New("").Parse(`
{{define "index"}}<!DOCTYPE html>
<html>
<head><meta charset="utf-8"><title>Taiwan ETF Tracker</title>
<style>
body { font-family: sans-serif; max-width: 720px; margin: 2em auto; color: #222; }
a { color: #0366d6; text-decoration: none; }
li { margin: 0.4em 0; }
footer { margin-top: 3em; color: #888; font-size: 0.85em; }
</style>
</head>
<body>
<h1>Taiwan ETF Tracker</h1>
<p>Daily technical-analysis signals for Taiwan ETFs.</p>
<ul>
{{range .ETFs}}<li><a href="/etf/{{.}}">{{.}}</a> — <a href="/chart/{{.}}">chart</a> · <a href="/api/etf/{{.}}">json</a></li>
{{end}}</ul>
<footer>Generated {{.Now}}</footer>
</body>
</html>{{end}}

{{define "report"}}<!DOCTYPE html>
<html>
<head><meta charset="utf-8"><title>ETF {{.Code}} | Taiwan ETF Tracker</title>
<style>
body { font-family: sans-serif; max-width: 720px; margin: 2em auto; color: #222; }
table { border-collapse: collapse; }
td, th { border: 1px solid #ddd; padding: 0.4em 0.8em; text-align: left; }
.signal { font-size: 1.3em; font-weight: bold; }
.buy { color: #0a7d33; } .sell { color: #c22; } .hold { color: #666; }
a { color: #0366d6; text-decoration: none; }
</style>
</head>
<body>
<h1>ETF {{.Code}} — {{.Date}}</h1>
<p class="signal {{.CategoryClass}}">{{.Category}}</p>
<table>
<tr><th>Close</th><td>{{.Close}}</td></tr>
<tr><th>Change</th><td>{{.ChangePercent}}%</td></tr>
<tr><th>Volume</th><td>{{.Volume}}</td></tr>
<tr><th>Strength</th><td>{{.Strength}}</td></tr>
<tr><th>K / D</th><td>{{.K}} / {{.D}}</td></tr>
<tr><th>MACD / Signal</th><td>{{.MACD}} / {{.MACDSignal}}</td></tr>
<tr><th>RSI</th><td>{{.RSI}}</td></tr>
</table>
<p><a href="/chart/{{.Code}}">Full technical chart →</a></p>
<p><a href="/">← All ETFs</a></p>
</body>
</html>{{end}}

{{define "error"}}<!DOCTYPE html>
<html>
<head><meta charset="utf-8"><title>Error | Taiwan ETF Tracker</title></head>
<body style="font-family: sans-serif; max-width: 720px; margin: 2em auto;">
<h1>{{.Status}}</h1>
<p>{{.Message}}</p>
<p><a href="/">← All ETFs</a></p>
</body>
</html>{{end}}
`))
