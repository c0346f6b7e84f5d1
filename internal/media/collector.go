package media

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// DefaultExtensions is the photo extension allow-list used when the caller
// does not configure one.
var DefaultExtensions = []string{".jpg", ".jpeg"}

// NormalizeExtensions lowercases the allow-list and ensures every entry has
// a leading dot. An empty list yields DefaultExtensions.
func NormalizeExtensions(exts []string) []string {
	var out []string
	for _, ext := range exts {
		ext = strings.ToLower(strings.TrimSpace(ext))
		if ext == "" {
			continue
		}
		if !strings.HasPrefix(ext, ".") {
			ext = "." + ext
		}
		out = append(out, ext)
	}
	if len(out) == 0 {
		return append([]string(nil), DefaultExtensions...)
	}
	return out
}

// SupportedPhoto reports whether the path's extension is in the allow-list.
// Matching is case-insensitive on the file suffix.
func SupportedPhoto(path string, exts []string) bool {
	ext := strings.ToLower(filepath.Ext(path))
	for _, allowed := range exts {
		if ext == allowed {
			return true
		}
	}
	return false
}

// CollectFiles resolves the input into a flat list of candidate files. It
// accepts direct file paths, directories, glob patterns, and several of
// those separated by ';' or newlines. Directories are listed one level deep
// unless recursive is set.
func CollectFiles(input string, recursive bool) ([]string, error) {
	inputs := splitInputs(input)
	if len(inputs) == 0 {
		return nil, fmt.Errorf("input path is empty")
	}

	seen := make(map[string]struct{})
	var results []string

	addFile := func(path string) {
		if _, dup := seen[path]; dup {
			return
		}
		seen[path] = struct{}{}
		results = append(results, path)
	}

	for _, in := range inputs {
		matches, err := expandInput(in)
		if err != nil {
			return nil, err
		}

		for _, candidate := range matches {
			info, err := os.Stat(candidate)
			if err != nil {
				return nil, fmt.Errorf("stat %s: %w", candidate, err)
			}
			if !info.IsDir() {
				addFile(candidate)
				continue
			}
			if err := walkDir(candidate, recursive, addFile); err != nil {
				return nil, err
			}
		}
	}

	return results, nil
}

func splitInputs(raw string) []string {
	var out []string
	for _, part := range strings.FieldsFunc(raw, func(r rune) bool {
		return r == ';' || r == '\n' || r == '\r'
	}) {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

func expandInput(input string) ([]string, error) {
	if !strings.ContainsAny(input, "*?[") {
		return []string{input}, nil
	}
	matches, err := filepath.Glob(input)
	if err != nil {
		return nil, fmt.Errorf("expand glob: %w", err)
	}
	if len(matches) == 0 {
		return nil, fmt.Errorf("no files matched pattern %q", input)
	}
	return matches, nil
}

func walkDir(root string, recursive bool, add func(string)) error {
	return filepath.WalkDir(root, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			// In flat mode only the root itself is entered.
			if !recursive && path != root {
				return filepath.SkipDir
			}
			return nil
		}
		if d.Type().IsRegular() {
			add(path)
		}
		return nil
	})
}
