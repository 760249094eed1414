// Package lexload loads a legal framework from YAML rule files into the
// node and edge records consumed by the integration pipeline. The loader is
// an adapter: it owns file parsing and identifier stability, while graph
// semantics stay with the orchestrator.
package lexload

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"gopkg.in/yaml.v3"
)

// Record is one legal entity produced by the loader. IDs are taken verbatim
// from the rule file so repeated loads of the same framework yield the same
// identifiers.
type Record struct {
	ID         string
	Kind       string // "statute", "case", "principle", "role", "procedure", "stage", "concept"
	Label      string
	Attributes map[string]interface{}
}

// EdgeRecord is a structural relation between legal entities, most commonly
// a citation.
type EdgeRecord struct {
	ID           string
	RelationType string
	Members      []string
	Weight       float64
}

// framework mirrors the YAML layout of a single rule file.
type framework struct {
	Jurisdiction string `yaml:"jurisdiction"`
	Statutes     []struct {
		ID    string   `yaml:"id"`
		Label string   `yaml:"label"`
		Year  int      `yaml:"year,omitempty"`
		Cites []string `yaml:"cites,omitempty"`
	} `yaml:"statutes,omitempty"`
	Cases []struct {
		ID    string   `yaml:"id"`
		Label string   `yaml:"label"`
		Court string   `yaml:"court,omitempty"`
		Year  int      `yaml:"year,omitempty"`
		Cites []string `yaml:"cites,omitempty"`
	} `yaml:"cases,omitempty"`
	Principles []struct {
		ID    string `yaml:"id"`
		Label string `yaml:"label"`
	} `yaml:"principles,omitempty"`
	Roles []struct {
		ID    string `yaml:"id"`
		Label string `yaml:"label"`
		Role  string `yaml:"role"` // "adjudicative-entity", "representative-entity", ...
	} `yaml:"roles,omitempty"`
	Procedures []struct {
		ID        string `yaml:"id"`
		Label     string `yaml:"label"`
		Procedure string `yaml:"procedure"` // "filing_procedure", ...
	} `yaml:"procedures,omitempty"`
	Stages []struct {
		ID    string `yaml:"id"`
		Label string `yaml:"label"`
		Stage string `yaml:"stage"` // "filing_stage", ...
	} `yaml:"stages,omitempty"`
}

// LoadDir parses every *.yaml file under dir, in ascending filename order,
// and returns the combined legal records and citation edges.
func LoadDir(dir string) ([]Record, []EdgeRecord, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, nil, fmt.Errorf("read lex dir: %w", err)
	}

	var files []string
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		ext := filepath.Ext(e.Name())
		if ext == ".yaml" || ext == ".yml" {
			files = append(files, filepath.Join(dir, e.Name()))
		}
	}
	sort.Strings(files)

	var records []Record
	var edges []EdgeRecord
	for _, path := range files {
		r, e, err := LoadFile(path)
		if err != nil {
			return nil, nil, err
		}
		records = append(records, r...)
		edges = append(edges, e...)
	}
	return records, edges, nil
}

// LoadFile parses a single rule file.
func LoadFile(path string) ([]Record, []EdgeRecord, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, nil, fmt.Errorf("read rule file %s: %w", path, err)
	}
	return Parse(data)
}

// Parse decodes a rule file body into records and citation edges.
func Parse(data []byte) ([]Record, []EdgeRecord, error) {
	var fw framework
	if err := yaml.Unmarshal(data, &fw); err != nil {
		return nil, nil, fmt.Errorf("parse rule file: %w", err)
	}

	var records []Record
	var edges []EdgeRecord

	jurAttr := func() map[string]interface{} {
		if fw.Jurisdiction == "" {
			return nil
		}
		return map[string]interface{}{"jurisdiction": fw.Jurisdiction}
	}

	for _, s := range fw.Statutes {
		attrs := jurAttr()
		if s.Year != 0 {
			if attrs == nil {
				attrs = make(map[string]interface{})
			}
			attrs["year"] = s.Year
		}
		records = append(records, Record{ID: s.ID, Kind: "statute", Label: s.Label, Attributes: attrs})
		for i, target := range s.Cites {
			edges = append(edges, EdgeRecord{
				ID:           fmt.Sprintf("cite_%s_%d", s.ID, i),
				RelationType: "citation",
				Members:      []string{s.ID, target},
			})
		}
	}

	for _, c := range fw.Cases {
		attrs := jurAttr()
		if c.Court != "" || c.Year != 0 {
			if attrs == nil {
				attrs = make(map[string]interface{})
			}
			if c.Court != "" {
				attrs["court"] = c.Court
			}
			if c.Year != 0 {
				attrs["year"] = c.Year
			}
		}
		records = append(records, Record{ID: c.ID, Kind: "case", Label: c.Label, Attributes: attrs})
		for i, target := range c.Cites {
			edges = append(edges, EdgeRecord{
				ID:           fmt.Sprintf("cite_%s_%d", c.ID, i),
				RelationType: "citation",
				Members:      []string{c.ID, target},
			})
		}
	}

	for _, p := range fw.Principles {
		records = append(records, Record{ID: p.ID, Kind: "principle", Label: p.Label, Attributes: jurAttr()})
	}

	for _, r := range fw.Roles {
		records = append(records, Record{
			ID: r.ID, Kind: "role", Label: r.Label,
			Attributes: map[string]interface{}{"role": r.Role},
		})
	}

	for _, p := range fw.Procedures {
		records = append(records, Record{
			ID: p.ID, Kind: "procedure", Label: p.Label,
			Attributes: map[string]interface{}{"procedure": p.Procedure},
		})
	}

	for _, s := range fw.Stages {
		records = append(records, Record{
			ID: s.ID, Kind: "stage", Label: s.Label,
			Attributes: map[string]interface{}{"stage": s.Stage},
		})
	}

	return records, edges, nil
}
