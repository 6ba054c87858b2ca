package commands

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"slices"
	"strings"
)

// recursiveSuffix marks a directory argument whose whole subtree is searched,
// as in "./...".
const recursiveSuffix = "/..."

// ExpandSources turns command-line arguments into the ordered list of Go files
// to load. An argument may be a file, StdinFilePath, a directory (its .go files),
// or a directory followed by "/..." (every .go file beneath it). Directories
// named testdata or vendor, and those starting with "." or "_", are skipped
// while recursing. Duplicates are dropped, keeping first occurrence order.
func ExpandSources(args []string) ([]string, error) {
	var out []string
	seen := make(map[string]bool)
	add := func(path string) {
		if !seen[path] {
			seen[path] = true
			out = append(out, path)
		}
	}

	for _, arg := range args {
		if arg == StdinFilePath {
			add(arg)
			continue
		}
		if root, ok := strings.CutSuffix(filepath.ToSlash(arg), recursiveSuffix); ok {
			if root == "" || root == "." {
				root = "."
			}
			files, err := walkGoFiles(filepath.FromSlash(root))
			if err != nil {
				return nil, err
			}
			for _, f := range files {
				add(f)
			}
			continue
		}

		info, err := os.Stat(arg)
		if err != nil {
			return nil, fmt.Errorf("source %s: %w", arg, err)
		}
		if !info.IsDir() {
			add(arg)
			continue
		}
		files, err := dirGoFiles(arg)
		if err != nil {
			return nil, err
		}
		for _, f := range files {
			add(f)
		}
	}
	return out, nil
}

// dirGoFiles lists the .go files directly inside dir, in name order.
func dirGoFiles(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("source %s: %w", dir, err)
	}
	var out []string
	for _, e := range entries {
		if !e.IsDir() && isGoFile(e.Name()) {
			out = append(out, filepath.Join(dir, e.Name()))
		}
	}
	return out, nil
}

// walkGoFiles lists the .go files beneath root in lexical walk order.
func walkGoFiles(root string) ([]string, error) {
	var out []string
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			if path != root && skipDir(d.Name()) {
				return filepath.SkipDir
			}
			return nil
		}
		if isGoFile(d.Name()) {
			out = append(out, path)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("source %s%s: %w", root, recursiveSuffix, err)
	}
	return out, nil
}

func isGoFile(name string) bool {
	return strings.HasSuffix(name, ".go") && !strings.HasPrefix(name, ".")
}

func skipDir(name string) bool {
	return slices.Contains([]string{"testdata", "vendor"}, name) ||
		strings.HasPrefix(name, ".") || strings.HasPrefix(name, "_")
}
