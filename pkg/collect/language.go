// File: pkg/collect/language.go
package collect

import (
	"path/filepath"
	"strings"
)

// FallbackLanguage labels files whose extension has no table entry.
const FallbackLanguage = "text"

// langByExt maps lower-cased extensions to fence labels.
var langByExt = map[string]string{
	".py":         "python",
	".js":         "javascript",
	".ts":         "typescript",
	".tsx":        "tsx",
	".jsx":        "jsx",
	".json":       "json",
	".yml":        "yaml",
	".yaml":       "yaml",
	".toml":       "toml",
	".ini":        "ini",
	".conf":       "ini",
	".env":        "text",
	".md":         "markdown",
	".rst":        "rst",
	".html":       "html",
	".htm":        "html",
	".css":        "css",
	".scss":       "scss",
	".sass":       "sass",
	".less":       "less",
	".sql":        "sql",
	".sh":         "bash",
	".bat":        "bat",
	".ps1":        "powershell",
	".dockerfile": "dockerfile",
	".gradle":     "groovy",
	".groovy":     "groovy",
	".kt":         "kotlin",
	".java":       "java",
	".c":          "c",
	".h":          "c",
	".cpp":        "cpp",
	".hpp":        "cpp",
	".cs":         "csharp",
	".go":         "go",
	".rs":         "rust",
	".rb":         "ruby",
	".php":        "php",
	".xml":        "xml",
	".vue":        "vue",
	".txt":        "text",
}

// langByName covers well-known extensionless filenames.
var langByName = map[string]string{
	"dockerfile":  "dockerfile",
	"makefile":    "makefile",
	"gnumakefile": "makefile",
}

// LanguageFor returns the fence label for a path. Pure lookup, no I/O.
func LanguageFor(path string) string {
	name := strings.ToLower(filepath.Base(path))
	if lang, ok := langByName[name]; ok {
		return lang
	}
	if lang, ok := langByExt[strings.ToLower(filepath.Ext(path))]; ok {
		return lang
	}
	return FallbackLanguage
}
