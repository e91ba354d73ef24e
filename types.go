package main

import (
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// View models for the wizard templates. One struct per page; handlers fill
// them, templates render them.

type uploadView struct {
	MaxUploadBytes int64
	Error          string
}

type columnsView struct {
	RunID      string
	POBCols    []string
	PortalCols []string
	POBRows    int
	PortalRows int
	Error      string
}

type duplicatesView struct {
	RunID         string
	POBFlagged    int
	PortalFlagged int
}

type inputField struct {
	Key   string
	Label string
}

type inputsView struct {
	RunID  string
	Fields []inputField
	Error  string
}

type resultView struct {
	RunID         string
	ManifestCount int
	ReturnCount   int
	POBKept       int
	POBDropped    int
	PortalKept    int
	PortalDropped int
}

var titleCaser = cases.Title(language.English)

// fieldLabel turns a form key like "return_origin" into "Return Origin",
// keeping the roster acronyms upper-case.
func fieldLabel(key string) string {
	words := strings.Split(key, "_")
	for i, w := range words {
		switch w {
		case "rfm", "ned", "pob":
			words[i] = strings.ToUpper(w)
		default:
			words[i] = titleCaser.String(w)
		}
	}
	return strings.Join(words, " ")
}
