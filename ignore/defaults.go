package ignore

// defaultIgnoreNames are path components that are always hard-ignored. These
// directories (and OS droppings) never carry selectable content, so files
// under them are removed from scan output entirely.
var defaultIgnoreNames = []string{
	// Version control
	".git",
	".svn",
	".hg",

	// Dependencies
	"node_modules",
	"vendor",
	"bower_components",
	".npm",
	".yarn",

	// Build output
	"dist",
	"build",
	"out",
	"target",
	".next",
	".nuxt",

	// IDE / Editor
	".idea",
	".vscode",
	".vs",

	// Caches
	"__pycache__",
	".cache",
	".parcel-cache",
	".nyc_output",
	"htmlcov",
	"coverage",

	// Virtualenvs
	".venv",
	"venv",

	// OS files
	".DS_Store",
	"Thumbs.db",
	"desktop.ini",
}

// defaultExclusionPatterns are soft exclusions: matching files still appear in
// scan output but are deselected by default. Lock files, generated bundles,
// and secret-looking names are noise for assembly yet still worth listing.
var defaultExclusionPatterns = []string{
	// Lock files
	"package-lock.json",
	"yarn.lock",
	"pnpm-lock.yaml",
	"Gemfile.lock",
	"poetry.lock",
	"Cargo.lock",
	"composer.lock",
	"go.sum",

	// Generated / minified
	"*.min.js",
	"*.min.css",
	"*.map",
	"*.generated.*",

	// Logs
	"*.log",

	// Secrets-like
	".env",
	".env.*",
	"*.pem",
	"*.key",
	"*.crt",
	"*.p12",
	"id_rsa",
	"id_rsa.*",
	"*credentials*",
	".npmrc",
	".netrc",
}
