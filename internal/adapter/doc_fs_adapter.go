// Package adapter contains infrastructure adapters for the linkfmt CLI.
package adapter

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	m "github.com/mouse-blink/linkfmt/internal/model"
)

const markdownExt = ".md"

// DocFSAdapter abstracts the filesystem operations the domain layer relies
// on when discovering and rewriting documents. It intentionally hides direct
// `os` access so the workflow logic can be tested without touching the disk.
type DocFSAdapter interface {
	// Discover collects markdown documents for the provided roots. A root
	// may be a single file, a directory, or a directory with the recursive
	// `/...` suffix. Exclude patterns are regular expressions matched
	// against the full path.
	Discover(roots []m.Path, exclude []string) ([]m.Path, error)

	// ReadFile loads a document from disk and returns its contents.
	ReadFile(path m.Path) ([]byte, error)

	// WriteFile overwrites a document with the given permissions. Callers
	// only invoke this after the whole pipeline succeeded for the document.
	WriteFile(path m.Path, content []byte, perm os.FileMode) error

	// FileInfo returns metadata for a path so the domain can check existence
	// or distinguish files from directories.
	FileInfo(path m.Path) (os.FileInfo, error)
}

// FilepathWalkFunc mirrors the callback shape used by filepath.Walk. It is
// defined here to avoid leaking the standard-library type into the domain
// layer.
type FilepathWalkFunc func(path string, info os.FileInfo, err error) error

// LocalDocFSAdapter is the disk-backed DocFSAdapter implementation.
type LocalDocFSAdapter struct{}

// NewLocalDocFSAdapter constructs a LocalDocFSAdapter ready to be wired into
// the workflow.
func NewLocalDocFSAdapter() *LocalDocFSAdapter {
	return &LocalDocFSAdapter{}
}

// Discover collects markdown files for the provided roots.
func (a *LocalDocFSAdapter) Discover(roots []m.Path, exclude []string) ([]m.Path, error) {
	excludeRes, err := compileExcludes(exclude)
	if err != nil {
		return nil, err
	}

	seen := make(map[string]struct{})

	var files []m.Path

	for _, root := range roots {
		rootStr, recursive := parseRootPath(string(root))

		info, err := a.FileInfo(m.Path(rootStr))
		if err != nil {
			return nil, fmt.Errorf("root path error: %w", err)
		}

		if !info.IsDir() {
			collect(&files, seen, rootStr, excludeRes)
			continue
		}

		err = a.walk(m.Path(rootStr), recursive, func(path string, info os.FileInfo, err error) error {
			if err != nil {
				return err
			}

			if info.IsDir() {
				return nil
			}

			collect(&files, seen, path, excludeRes)

			return nil
		})
		if err != nil {
			return nil, err
		}
	}

	return files, nil
}

// walk iterates over files under root, optionally descending into
// subdirectories.
func (a *LocalDocFSAdapter) walk(root m.Path, recursive bool, fn FilepathWalkFunc) error {
	rootStr := string(root)

	return filepath.Walk(rootStr, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return fn(path, info, err)
		}

		if info.IsDir() && !recursive && path != rootStr {
			return filepath.SkipDir
		}

		return fn(path, info, nil)
	})
}

// ReadFile loads file contents from disk.
func (a *LocalDocFSAdapter) ReadFile(path m.Path) ([]byte, error) {
	return os.ReadFile(string(path))
}

// WriteFile overwrites a document in place.
func (a *LocalDocFSAdapter) WriteFile(path m.Path, content []byte, perm os.FileMode) error {
	return os.WriteFile(string(path), content, perm)
}

// FileInfo returns os.FileInfo metadata for the given path.
func (a *LocalDocFSAdapter) FileInfo(path m.Path) (os.FileInfo, error) {
	return os.Stat(string(path))
}

// parseRootPath extracts the root path and recursive flag from a path
// string using the `dir/...` suffix convention.
func parseRootPath(rootStr string) (path string, recursive bool) {
	if strings.HasSuffix(rootStr, "/...") {
		return strings.TrimSuffix(rootStr, "/..."), true
	}

	return rootStr, false
}

func compileExcludes(patterns []string) ([]*regexp.Regexp, error) {
	res := make([]*regexp.Regexp, 0, len(patterns))

	for _, pattern := range patterns {
		re, err := regexp.Compile(pattern)
		if err != nil {
			return nil, fmt.Errorf("invalid exclude pattern %q: %w", pattern, err)
		}

		res = append(res, re)
	}

	return res, nil
}

func collect(files *[]m.Path, seen map[string]struct{}, path string, excludes []*regexp.Regexp) {
	if filepath.Ext(path) != markdownExt {
		return
	}

	for _, re := range excludes {
		if re.MatchString(path) {
			return
		}
	}

	if _, ok := seen[path]; ok {
		return
	}

	seen[path] = struct{}{}
	*files = append(*files, m.Path(path))
}
