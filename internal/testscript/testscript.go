// Package testscript loads golden end-to-end fixtures for the
// pipeline: a txtar archive bundling one nyx source file and the exact
// list of diagnostic titles it should produce, in order. This is a
// supplemented addition (SPEC_FULL.md's DOMAIN STACK) — the original
// had no golden-fixture runner of its own, only inline Rust unit tests
// — modeled on golang.org/x/tools/txtar's own standard use as a
// table-of-files format for exactly this purpose (compiler/toolchain
// test fixtures bundling a source file with its expected output).
package testscript

import (
	"fmt"
	"strings"

	"golang.org/x/tools/txtar"

	"github.com/nyxlang/nyxc/internal/config"
	"github.com/nyxlang/nyxc/internal/pipeline"
)

// Case is one golden fixture: a source buffer and the diagnostic
// titles a full pipeline.Run over it must produce, in report order.
type Case struct {
	Name       string
	Source     string
	WantTitles []string
}

// Load parses the txtar archive at path into a Case. The archive must
// contain a "source.nyx" file; a "diagnostics" file is optional and
// holds one expected diagnostic title per line — its absence means the
// fixture expects a clean run (no diagnostics at all).
func Load(path string) (*Case, error) {
	arc, err := txtar.ParseFile(path)
	if err != nil {
		return nil, fmt.Errorf("testscript: reading %s: %w", path, err)
	}

	c := &Case{Name: path, WantTitles: []string{}}
	var haveSource bool
	for _, f := range arc.Files {
		switch f.Name {
		case "source.nyx":
			c.Source = string(f.Data)
			haveSource = true
		case "diagnostics":
			c.WantTitles = splitNonEmptyLines(string(f.Data))
		}
	}
	if !haveSource {
		return nil, fmt.Errorf("testscript: %s: missing \"source.nyx\" file", path)
	}
	return c, nil
}

func splitNonEmptyLines(s string) []string {
	var out []string
	for _, line := range strings.Split(s, "\n") {
		line = strings.TrimSpace(line)
		if line != "" {
			out = append(out, line)
		}
	}
	return out
}

// Run executes the full pipeline over the case's source and returns
// the titles of every diagnostic it produced, in report order, for a
// caller to compare against WantTitles.
func (c *Case) Run(cfg *config.Config) []string {
	result := pipeline.Run(c.Source, cfg)
	titles := make([]string, 0, result.Diags.Len())
	for _, d := range result.Diags.All() {
		titles = append(titles, d.Title)
	}
	return titles
}
