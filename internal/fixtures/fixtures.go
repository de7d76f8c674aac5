// Package fixtures provides the static data a fresh store starts from.
package fixtures

import (
	_ "embed"
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/gyaneshwarpardhi/opsdash/internal/hierarchy"
	"github.com/gyaneshwarpardhi/opsdash/internal/store"
	"github.com/gyaneshwarpardhi/opsdash/internal/validation"
)

//go:embed seed.yaml
var defaultSeed []byte

// Default returns the built-in seed.
func Default() (store.Seed, error) {
	return Parse(defaultSeed)
}

// Load reads a seed from path, or returns the built-in seed when path is
// empty.
func Load(path string) (store.Seed, error) {
	if path == "" {
		return Default()
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return store.Seed{}, fmt.Errorf("read fixtures %s: %w", path, err)
	}
	seed, err := Parse(data)
	if err != nil {
		return store.Seed{}, fmt.Errorf("fixtures %s: %w", path, err)
	}
	return seed, nil
}

// Parse decodes a YAML seed document.
func Parse(data []byte) (store.Seed, error) {
	var seed store.Seed
	if err := yaml.Unmarshal(data, &seed); err != nil {
		return store.Seed{}, fmt.Errorf("parse fixtures: %w", err)
	}
	return seed, nil
}

// Validate checks every seeded entity against the same rules mutations go
// through, and that each org hierarchy resolves under policy. All problems
// are reported together.
func Validate(seed store.Seed, policy hierarchy.DanglingPolicy) error {
	var errs []string
	check := func(where string, v any) {
		if fe := validation.Struct(v); fe != nil {
			errs = append(errs, fmt.Sprintf("%s: %s", where, fe.Error()))
		}
	}

	for i := range seed.Records {
		check("records["+seed.Records[i].ID+"]", &seed.Records[i])
	}
	for i := range seed.Tasks {
		check("tasks["+seed.Tasks[i].ID+"]", &seed.Tasks[i])
	}
	for _, col := range seed.Kanban {
		check("kanban["+col.ID+"]", &col)
		for i := range col.Cards {
			check("kanban["+col.ID+"].cards["+col.Cards[i].ID+"]", &col.Cards[i])
		}
	}
	for i := range seed.Forms {
		check("forms["+seed.Forms[i].ID+"]", &seed.Forms[i])
	}
	for i := range seed.Org.Teams {
		check("org.teams["+seed.Org.Teams[i].ID+"]", &seed.Org.Teams[i])
	}
	for i := range seed.Org.Jobs {
		check("org.jobs["+seed.Org.Jobs[i].ID+"]", &seed.Org.Jobs[i])
	}
	for i := range seed.Org.Forms {
		check("org.forms["+seed.Org.Forms[i].ID+"]", &seed.Org.Forms[i])
	}

	org := map[string][]hierarchy.Node{
		"teams": hierarchy.Of(seed.Org.Teams),
		"jobs":  hierarchy.Of(seed.Org.Jobs),
		"forms": hierarchy.Of(seed.Org.Forms),
	}
	opts := hierarchy.Options{OnDanglingParent: policy}
	for _, name := range []string{"teams", "jobs", "forms"} {
		if _, err := hierarchy.Resolve(org[name], opts); err != nil {
			errs = append(errs, fmt.Sprintf("org.%s: %v", name, err))
		}
	}

	if len(errs) > 0 {
		return fmt.Errorf("fixture validation errors:\n  - %s", strings.Join(errs, "\n  - "))
	}
	return nil
}
