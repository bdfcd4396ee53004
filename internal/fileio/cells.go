package fileio

import "strings"

var cellSpaces = strings.NewReplacer("\u00A0", " ", "\u202F", " ", "\u2009", " ")

// normalizeCell trims a spreadsheet cell, turning NBSP/NNBSP/thin spaces into plain ones.
func normalizeCell(s string) string {
	return strings.TrimSpace(cellSpaces.Replace(s))
}
