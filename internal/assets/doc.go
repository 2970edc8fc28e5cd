// Package assets provides the LaTeX templates used for figure and table blocks.
//
// # Loader Architecture
//
// The package implements a layered loading system:
//
//	AssetLoader (interface)
//	    │
//	    ├── EmbeddedLoader    - loads from go:embed filesystem (built-in sets)
//	    ├── FilesystemLoader  - loads from custom directory on disk
//	    └── AssetResolver     - combines both with custom-first fallback
//
// EmbeddedLoader provides the built-in template sets ("default", "portable")
// embedded at compile time.
//
// FilesystemLoader allows users to provide template sets from a directory,
// with path traversal protection and symlink resolution.
//
// AssetResolver tries the custom FilesystemLoader first, falling back to
// EmbeddedLoader if the set is not found. This enables overriding a single
// set while keeping the built-in ones.
//
// # Directory Structure
//
//	{basePath}/
//	└── templates/
//	    └── {name}/
//	        ├── figure.tex       # emitted for ![caption](path.png)
//	        └── table.tex        # emitted for ![caption](path.csv)
//
// Templates are plain text with the placeholders ---path--- and ---caption---.
// The trailing newline of each file is part of the emitted block.
//
// # Security
//
// Set names are validated to prevent path traversal attacks.
// FilesystemLoader resolves symlinks and verifies paths stay within basePath.
package assets
