package config

import (
	"fmt"
	"os"
	"path"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/equipsync/toollist/internal/schema"
)

// ProgramRule routes files matching a glob to a fixed schema variant,
// bypassing header autodetection. Useful for exports whose file names
// and headers carry no program token.
type ProgramRule struct {
	// Program labels the rule in logs and reports.
	Program string `yaml:"program"`

	// Match is a glob applied to the lowercased base file name.
	Match string `yaml:"match"`

	// Variant names the layout: flat, sectioned or paired (program
	// aliases x590, p702 and u553 also work).
	Variant string `yaml:"variant"`
}

// Programs holds the full routing rule set.
type Programs struct {
	Rules []ProgramRule `yaml:"programs"`
}

// LoadPrograms reads routing rules from a YAML file. A missing file is
// not an error; every file then goes through autodetection.
func LoadPrograms(path string) (*Programs, error) {
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return &Programs{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read programs file: %w", err)
	}

	var p Programs
	if err := yaml.Unmarshal(data, &p); err != nil {
		return nil, fmt.Errorf("parse programs file %s: %w", path, err)
	}

	for i, rule := range p.Rules {
		if rule.Match == "" {
			return nil, fmt.Errorf("programs rule %d: match pattern is empty", i)
		}
		if _, err := schema.Parse(rule.Variant); err != nil {
			return nil, fmt.Errorf("programs rule %d (%s): %w", i, rule.Program, err)
		}
	}
	return &p, nil
}

// VariantFor returns the forced variant for a file, if any rule
// matches. The first matching rule wins.
func (p *Programs) VariantFor(fileName string) (schema.Variant, bool) {
	base := strings.ToLower(filepath.Base(fileName))
	for _, rule := range p.Rules {
		ok, err := path.Match(strings.ToLower(rule.Match), base)
		if err != nil || !ok {
			continue
		}
		v, err := schema.Parse(rule.Variant)
		if err != nil || v == schema.VariantUnknown {
			continue
		}
		return v, true
	}
	return schema.VariantUnknown, false
}
