// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package fallback generates deterministic synthetic file content for use
// when the real backend is unreachable.
package fallback

import "strings"

// =============================================================================
// KNOWN FILES
// =============================================================================

// knownPreviews holds exact content for a small set of well-known paths.
// Lookup tries the full path first, then the bare filename.
var knownPreviews = map[string]string{
	"README.md": `# ChatFS
A native app for chatting with your files.

## Features
- File system navigation
- Chat-based interface
- Real-time file analysis

## Installation
` + "```bash" + `
pnpm install
pnpm run dev
` + "```" + `

## Development
This project uses Tauri for the desktop app and React for the frontend.`,

	"package.json": `{
  "name": "chatfs",
  "version": "0.1.0",
  "scripts": {
    "dev": "tauri dev",
    "build": "tauri build",
    "preview": "vite preview"
  },
  "dependencies": {
    "react": "^19.1.0",
    "react-dom": "^19.1.0"
  },
  "devDependencies": {
    "@tauri-apps/cli": "^2.0.0",
    "vite": "^6.3.5"
  }
}`,
}

// =============================================================================
// PREVIEW GENERATION
// =============================================================================

// Preview returns deterministic synthetic content for path. Well-known
// paths get their exact fixed content; everything else gets boilerplate
// templated by the file extension. Identical input always yields identical
// output so callers and tests can assert exact text.
func Preview(path string) string {
	if content, ok := knownPreviews[path]; ok {
		return content
	}

	filename := baseName(path)
	if content, ok := knownPreviews[filename]; ok {
		return content
	}

	switch extension(filename) {
	case "md":
		return "# " + filename + "\n\nMarkdown file content...\n\n## Section 1\nSample content here.\n\n## Section 2\nMore content with examples."
	case "json":
		name := strings.TrimSuffix(filename, ".json")
		return "{\n  \"name\": \"" + name + "\",\n  \"version\": \"1.0.0\",\n  \"description\": \"Sample JSON file\",\n  \"main\": \"index.js\",\n  \"scripts\": {\n    \"start\": \"node index.js\"\n  }\n}"
	case "txt":
		return filename + "\n" + strings.Repeat("=", len(filename)) + "\n\nText file content...\nLine 2 with more details\nLine 3 with additional information\n\nEnd of file."
	case "py":
		return "# " + filename + "\n\ndef main():\n    \"\"\"Sample Python file\"\"\"\n    print(\"Hello World\")\n    \n    # Add your code here\n    result = process_data()\n    return result\n\ndef process_data():\n    return \"Processed successfully\"\n\nif __name__ == \"__main__\":\n    main()"
	case "js", "ts", "tsx", "jsx":
		return "// " + filename + "\n\nfunction main() {\n  console.log('Hello World');\n  \n  // Initialize application\n  const app = new Application();\n  app.start();\n  \n  return 0;\n}\n\nclass Application {\n  start() {\n    console.log('Application started');\n  }\n}\n\nmain();"
	case "rs":
		return "// " + filename + "\n\nfn main() {\n    println!(\"Hello, world!\");\n    \n    // Initialize application\n    let app = Application::new();\n    app.start();\n}\n\nstruct Application;\n\nimpl Application {\n    fn new() -> Self {\n        Application\n    }\n    \n    fn start(&self) {\n        println!(\"Application started\");\n    }\n}"
	default:
		return "File: " + filename + "\n\nBinary or unknown file type.\nPreview not available.\n\nFile size: Unknown\nLast modified: Unknown"
	}
}

// Extension returns the lowercase extension used for badge display, or
// "file" when the name has none.
func Extension(path string) string {
	if ext := extension(baseName(path)); ext != "" {
		return ext
	}
	return "file"
}

// =============================================================================
// HELPER FUNCTIONS
// =============================================================================

// baseName returns the final path element, or the path itself when it has
// no separator.
func baseName(path string) string {
	if idx := strings.LastIndexByte(path, '/'); idx >= 0 && idx+1 < len(path) {
		return path[idx+1:]
	}
	return path
}

// extension returns the lowercase text after the final dot, or "" when the
// filename has no extension.
func extension(filename string) string {
	idx := strings.LastIndexByte(filename, '.')
	if idx < 0 || idx+1 >= len(filename) {
		return ""
	}
	return strings.ToLower(filename[idx+1:])
}
