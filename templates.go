package main

import (
	"embed"
	"fmt"
	"html/template"
)

//go:embed templates/*.html
var templateFS embed.FS

var templateFuncs = template.FuncMap{
	"add": func(a, b int) int { return a + b },
	"formatSize": func(size int64) string {
		const unit = 1024
		if size < unit {
			return fmt.Sprintf("%d B", size)
		}
		div, exp := int64(unit), 0
		for n := size / unit; n >= unit; n /= unit {
			div *= unit
			exp++
		}
		return fmt.Sprintf("%.1f %cB", float64(size)/float64(div), "KMGTPE"[exp])
	},
}

var (
	uploadTemplate     = mustTemplate("upload.html")
	columnsTemplate    = mustTemplate("columns.html")
	duplicatesTemplate = mustTemplate("duplicates.html")
	inputsTemplate     = mustTemplate("inputs.html")
	resultTemplate     = mustTemplate("result.html")
)

func mustTemplate(name string) *template.Template {
	return template.Must(template.New(name).Funcs(templateFuncs).ParseFS(templateFS, "templates/"+name))
}
