// Package arch_test holds source-level checks on the internal packages:
// GoDoc coverage and the import layering between packages.
package arch_test

import (
	"go/ast"
	"go/parser"
	"go/token"
	"os"
	"path/filepath"
	"runtime"
	"slices"
	"strconv"
	"strings"
	"testing"
)

const internalPfx = "github.com/papapumpkin/gramsort/internal/"

// internalDirPath returns the internal/ directory, found relative to this
// source file.
func internalDirPath(t *testing.T) string {
	t.Helper()
	_, self, _, ok := runtime.Caller(0)
	if !ok {
		t.Fatal("runtime.Caller failed")
	}
	return filepath.Dir(filepath.Dir(self))
}

// internalPackages lists the directories under internal/ holding non-test Go
// files, excluding arch_test.
func internalPackages(t *testing.T) []string {
	t.Helper()
	dir := internalDirPath(t)
	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatalf("reading %s: %v", dir, err)
	}
	var pkgs []string
	for _, e := range entries {
		if e.IsDir() && e.Name() != "arch_test" && len(goFilesIn(t, filepath.Join(dir, e.Name()))) > 0 {
			pkgs = append(pkgs, e.Name())
		}
	}
	return pkgs
}

// goFilesIn returns the non-test .go files in dir, sorted.
func goFilesIn(t *testing.T, dir string) []string {
	t.Helper()
	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatalf("reading %s: %v", dir, err)
	}
	var files []string
	for _, e := range entries {
		name := e.Name()
		if !e.IsDir() && strings.HasSuffix(name, ".go") && !strings.HasSuffix(name, "_test.go") {
			files = append(files, filepath.Join(dir, name))
		}
	}
	return files
}

// importsOf returns the internal packages imported by the non-test files in
// pkgDir, by their first path element under internal/.
func importsOf(t *testing.T, pkgDir string) []string {
	t.Helper()
	fset := token.NewFileSet()
	var out []string
	for _, file := range goFilesIn(t, pkgDir) {
		node, err := parser.ParseFile(fset, file, nil, parser.ImportsOnly)
		if err != nil {
			t.Fatalf("parsing imports in %s: %v", file, err)
		}
		for _, imp := range node.Imports {
			path, _ := strconv.Unquote(imp.Path.Value)
			rel, ok := strings.CutPrefix(path, internalPfx)
			if !ok {
				continue
			}
			rel, _, _ = strings.Cut(rel, "/")
			if !slices.Contains(out, rel) {
				out = append(out, rel)
			}
		}
	}
	slices.Sort(out)
	return out
}

// docText returns the text of the first non-nil comment group.
func docText(groups ...*ast.CommentGroup) string {
	for _, g := range groups {
		if g != nil {
			return g.Text()
		}
	}
	return ""
}

func TestInternalPackages(t *testing.T) {
	t.Parallel()

	pkgs := internalPackages(t)
	for _, want := range []string{"category", "config", "grouped", "regroup", "table", "verify"} {
		if !slices.Contains(pkgs, want) {
			t.Errorf("internalPackages() = %v, missing %q", pkgs, want)
		}
	}
	if slices.Contains(pkgs, "arch_test") {
		t.Error("internalPackages should exclude arch_test")
	}
}

func TestImportsOf(t *testing.T) {
	t.Parallel()

	got := importsOf(t, filepath.Join(internalDirPath(t), "regroup"))
	want := []string{"category", "grouped", "table", "telemetry"}
	if !slices.Equal(got, want) {
		t.Errorf("importsOf(regroup) = %v, want %v", got, want)
	}
}
