package file

import "strings"

// Category is the coarse file-type classification used for filtering
// and stats.
type Category string

const (
	CategoryDocument     Category = "document"
	CategoryImage        Category = "image"
	CategorySpreadsheet  Category = "spreadsheet"
	CategoryPresentation Category = "presentation"
	CategoryOther        Category = "other"
)

// categoryOrder fixes the lookup order: the first category whose
// allow-list contains the extension wins.
var categoryOrder = []Category{
	CategoryDocument,
	CategoryImage,
	CategorySpreadsheet,
	CategoryPresentation,
}

var categoryExtensions = map[Category][]string{
	CategoryDocument:     {"pdf", "doc", "docx", "txt", "rtf", "odt"},
	CategoryImage:        {"jpg", "jpeg", "png", "gif", "webp", "bmp"},
	CategorySpreadsheet:  {"xls", "xlsx", "csv", "ods"},
	CategoryPresentation: {"ppt", "pptx", "odp"},
}

// Extension returns the part of name after the final dot, lowercased.
// Returns "" when the name has no extension.
func Extension(name string) string {
	idx := strings.LastIndex(name, ".")
	if idx < 0 || idx == len(name)-1 {
		return ""
	}
	return strings.ToLower(name[idx+1:])
}

// CategoryForExtension classifies an already-lowercased extension.
func CategoryForExtension(ext string) Category {
	for _, cat := range categoryOrder {
		for _, e := range categoryExtensions[cat] {
			if e == ext {
				return cat
			}
		}
	}
	return CategoryOther
}

// CategoryForName classifies by the file name's extension.
func CategoryForName(name string) Category {
	return CategoryForExtension(Extension(name))
}

// IsValidCategory reports whether c is one of the known categories.
func IsValidCategory(c Category) bool {
	switch c {
	case CategoryDocument, CategoryImage, CategorySpreadsheet, CategoryPresentation, CategoryOther:
		return true
	}
	return false
}
