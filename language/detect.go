package language

import (
	"path/filepath"
	"strings"
)

// extensionToFenceTag maps file extensions (without dot) to the language
// identifier used on fenced code blocks. Extensions that already are the
// conventional tag (go, css, json, ...) are omitted; FenceTag falls back to
// the bare extension for those.
var extensionToFenceTag = map[string]string{
	// JavaScript / TypeScript
	"js": "javascript", "mjs": "javascript", "cjs": "javascript",
	"ts": "typescript", "mts": "typescript", "cts": "typescript",
	// Python
	"py": "python", "pyi": "python", "pyw": "python",
	// Rust
	"rs": "rust",
	// Kotlin
	"kt": "kotlin", "kts": "kotlin",
	// C / C++
	"h":  "c",
	"cc": "cpp", "cxx": "cpp", "hpp": "cpp", "hxx": "cpp",
	// C#
	"cs": "csharp", "csx": "csharp",
	// Ruby
	"rb": "ruby",
	// Shell
	"sh": "bash", "bash": "bash", "zsh": "bash",
	"ps1": "powershell", "psm1": "powershell",
	// Web
	"htm": "html",
	// Data / Config
	"yml": "yaml", "jsonc": "json",
	// Markup
	"md": "markdown", "mdx": "markdown", "rst": "rest", "tex": "latex",
	// Misc
	"gql": "graphql",
	"tf":  "hcl", "tfvars": "hcl",
	"ex": "elixir", "exs": "elixir",
	"erl": "erlang", "hrl": "erlang",
	"hs":  "haskell",
	"pl":  "perl",
	"bat": "batch", "cmd": "batch",
	"txt": "text",
}

// FenceTag returns the fenced-block language identifier for a file path,
// derived from its extension. Extension-less well-known filenames (Makefile,
// Dockerfile, ...) get their conventional tag; anything unrecognized falls
// back to the lower-cased extension itself, or "" when there is none.
func FenceTag(filePath string) string {
	ext := strings.ToLower(strings.TrimPrefix(filepath.Ext(filePath), "."))
	if ext == "" {
		switch strings.ToLower(filepath.Base(filePath)) {
		case "makefile", "gnumakefile":
			return "makefile"
		case "dockerfile":
			return "dockerfile"
		case "gemfile", "rakefile":
			return "ruby"
		case ".gitignore", ".gitattributes":
			return "gitignore"
		case ".env":
			return "dotenv"
		}
		return ""
	}
	if tag, ok := extensionToFenceTag[ext]; ok {
		return tag
	}
	return ext
}
