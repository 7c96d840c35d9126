package ingest

import (
	sitter "github.com/smacker/go-tree-sitter"
	"github.com/smacker/go-tree-sitter/golang"
	"github.com/smacker/go-tree-sitter/javascript"
	"github.com/smacker/go-tree-sitter/python"
	"github.com/smacker/go-tree-sitter/rust"
	"github.com/smacker/go-tree-sitter/typescript/typescript"
)

// syntaxLanguages maps source file extensions to their tree-sitter grammar.
var syntaxLanguages = map[string]func() *sitter.Language{
	".go":  golang.GetLanguage,
	".py":  python.GetLanguage,
	".js":  javascript.GetLanguage,
	".ts":  typescript.GetLanguage,
	".tsx": typescript.GetLanguage,
	".rs":  rust.GetLanguage,
}

// DetectLanguageFromExt returns the tree-sitter Language for a file
// extension. Returns ok=false for unsupported extensions.
func DetectLanguageFromExt(ext string) (*sitter.Language, bool) {
	get, ok := syntaxLanguages[ext]
	if !ok {
		return nil, false
	}
	return get(), true
}
