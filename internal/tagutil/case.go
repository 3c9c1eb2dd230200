package tagutil

import "github.com/viant/tagly/format/text"

// FormatName converts a Go field name to caseFormat. An undefined case format
// keeps the name unchanged.
func FormatName(name string, caseFormat text.CaseFormat) string {
	if caseFormat == "" {
		return name
	}
	if name == "ID" {
		switch caseFormat {
		case text.CaseFormatLower, text.CaseFormatLowerCamel, text.CaseFormatLowerUnderscore:
			return "id"
		}
	}
	src := text.DetectCaseFormat(name)
	if !src.IsDefined() {
		src = text.CaseFormatUpperCamel
	}
	return src.Format(name, caseFormat)
}
