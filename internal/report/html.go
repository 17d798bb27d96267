package report

import (
	"bytes"
	"html/template"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
)

type htmlReportData struct {
	Title string
	Body  template.HTML
}

var markdownRenderer = goldmark.New(goldmark.WithExtensions(extension.GFM))

// HTML renders doc as a standalone HTML page.
func HTML(doc Document) (string, error) {
	var body bytes.Buffer
	if err := markdownRenderer.Convert([]byte(Markdown(doc)), &body); err != nil {
		return "", err
	}

	var buf bytes.Buffer
	err := htmlReportTemplate.Execute(&buf, htmlReportData{
		Title: doc.Title,
		Body:  template.HTML(body.String()),
	})
	if err != nil {
		return "", err
	}
	return buf.String(), nil
}

var htmlReportTemplate = template.Must(template.New("cpg-report").Parse(htmlReportTemplateHTML))

const htmlReportTemplateHTML = `<!DOCTYPE html>
<html lang="en">
<head>
  <meta charset="UTF-8">
  <meta name="viewport" content="width=device-width, initial-scale=1">
  <title>{{ .Title }}</title>
  <style>
    :root {
      --primary: #334155;
      --secondary: #64748B;
      --accent: #3B82F6;
      --light: #F1F5F9;
      --background: #FFFFFF;
      --text: #0F172A;
      --border: #E2E8F0;
    }
    body {
      font-family: system-ui, -apple-system, "Segoe UI", Roboto, sans-serif;
      background-color: var(--light);
      color: var(--text);
      margin: 0;
    }
    main {
      max-width: 1100px;
      margin: 2rem auto;
      padding: 1.5rem 2rem;
      background: var(--background);
      border: 1px solid var(--border);
      border-radius: 16px;
      box-shadow: 0 1px 3px rgba(15, 23, 42, 0.1);
    }
    h1 { color: var(--primary); }
    h2 {
      color: var(--primary);
      border-bottom: 2px solid var(--border);
      padding-bottom: 0.25rem;
      margin-top: 2rem;
    }
    table {
      border-collapse: collapse;
      width: 100%;
      margin-bottom: 1rem;
    }
    th, td {
      border: 1px solid var(--border);
      padding: 0.35rem 0.6rem;
    }
    thead th {
      background-color: var(--light);
    }
    tbody tr:first-child td {
      background-color: #DBEAFE;
      font-weight: 600;
    }
    code { color: var(--secondary); }
  </style>
</head>
<body>
  <main>
{{ .Body }}
  </main>
</body>
</html>
`
