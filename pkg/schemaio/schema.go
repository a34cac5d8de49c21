// Package schemaio loads and renders the YAML document shapes used to
// author schemas and mapping programs on disk, per spec.md §6. It is a
// thin translation layer: every structural decision (inheritance
// folding, cycle detection, rule evaluation) stays in pkg/schema and
// pkg/mapping, which know nothing about YAML.
package schemaio

import (
	"fmt"

	"gopkg.in/yaml.v3"

	"github.com/errfld/rsedi-sub001/pkg/schema"
)

type schemaDoc struct {
	Name        string          `yaml:"name"`
	Version     string          `yaml:"version"`
	Parent      string          `yaml:"parent,omitempty"`
	Segments    []segmentDoc    `yaml:"segments,omitempty"`
	Constraints []constraintDoc `yaml:"constraints,omitempty"`
	CodeLists   []codeListDoc   `yaml:"code_lists,omitempty"`
}

type segmentDoc struct {
	Tag            string       `yaml:"tag"`
	Mandatory      bool         `yaml:"mandatory"`
	MaxRepetitions *int         `yaml:"max_repetitions,omitempty"`
	Elements       []elementDoc `yaml:"elements,omitempty"`
}

type elementDoc struct {
	ID        string `yaml:"id"`
	Name      string `yaml:"name"`
	DataType  string `yaml:"data_type"`
	MinLength int    `yaml:"min_length,omitempty"`
	MaxLength int    `yaml:"max_length,omitempty"`
	Mandatory bool   `yaml:"mandatory"`
}

type constraintDoc struct {
	Type      string `yaml:"type"`
	Path      string `yaml:"path"`
	MinLength int    `yaml:"min_length,omitempty"`
	MaxLength int    `yaml:"max_length,omitempty"`
	Regex     string `yaml:"regex,omitempty"`
	ListID    string `yaml:"list_id,omitempty"`
}

type codeListDoc struct {
	Name          string   `yaml:"name"`
	Codes         []string `yaml:"codes"`
	CaseSensitive bool     `yaml:"case_sensitive"`
	Description   string   `yaml:"description,omitempty"`
}

// LoadSchema decodes a single YAML schema document into a *schema.Schema.
func LoadSchema(data []byte) (*schema.Schema, error) {
	var doc schemaDoc
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("schemaio: decoding schema: %w", err)
	}

	s := schema.NewSchema(doc.Name, doc.Version)
	s.Parent = doc.Parent

	for _, sd := range doc.Segments {
		seg := schema.SegmentDefinition{
			Tag:            sd.Tag,
			IsMandatory:    sd.Mandatory,
			MaxRepetitions: sd.MaxRepetitions,
		}

		for _, ed := range sd.Elements {
			seg.Elements = append(seg.Elements, schema.ElementDefinition{
				ID:          ed.ID,
				Name:        ed.Name,
				DataType:    ed.DataType,
				MinLength:   ed.MinLength,
				MaxLength:   ed.MaxLength,
				IsMandatory: ed.Mandatory,
			})
		}

		s.Segments = append(s.Segments, seg)
	}

	for _, cd := range doc.Constraints {
		c, err := toConstraint(cd)
		if err != nil {
			return nil, err
		}

		s.Constraints = append(s.Constraints, c)
	}

	for _, cl := range doc.CodeLists {
		s.CodeLists[cl.Name] = schema.NewCodeList(cl.Name, cl.Codes, cl.CaseSensitive, cl.Description)
	}

	return s, nil
}

func toConstraint(cd constraintDoc) (schema.Constraint, error) {
	switch cd.Type {
	case "required":
		return schema.Required(cd.Path), nil
	case "length":
		return schema.Length(cd.Path, cd.MinLength, cd.MaxLength), nil
	case "pattern":
		return schema.Pattern(cd.Path, cd.Regex), nil
	case "code_list":
		return schema.CodeListConstraint(cd.Path, cd.ListID), nil
	default:
		return schema.Constraint{}, fmt.Errorf("schemaio: unknown constraint type %q", cd.Type)
	}
}

// DumpSchema renders s back to its YAML document shape, the inverse of
// LoadSchema. Used by the "schema resolve" CLI command to print a
// resolved (inheritance-folded) schema.
func DumpSchema(s *schema.Schema) ([]byte, error) {
	doc := schemaDoc{Name: s.Name, Version: s.Version, Parent: s.Parent}

	for _, seg := range s.Segments {
		sd := segmentDoc{Tag: seg.Tag, Mandatory: seg.IsMandatory, MaxRepetitions: seg.MaxRepetitions}

		for _, e := range seg.Elements {
			sd.Elements = append(sd.Elements, elementDoc{
				ID:        e.ID,
				Name:      e.Name,
				DataType:  e.DataType,
				MinLength: e.MinLength,
				MaxLength: e.MaxLength,
				Mandatory: e.IsMandatory,
			})
		}

		doc.Segments = append(doc.Segments, sd)
	}

	for _, c := range s.Constraints {
		doc.Constraints = append(doc.Constraints, fromConstraint(c))
	}

	for name, cl := range s.CodeLists {
		codes := make([]string, 0, len(cl.Codes))
		for code := range cl.Codes {
			codes = append(codes, code)
		}

		doc.CodeLists = append(doc.CodeLists, codeListDoc{
			Name:          name,
			Codes:         codes,
			CaseSensitive: cl.CaseSensitive,
			Description:   cl.Description,
		})
	}

	return yaml.Marshal(doc)
}

func fromConstraint(c schema.Constraint) constraintDoc {
	cd := constraintDoc{Path: c.Path}

	switch c.Variant {
	case schema.ConstraintRequired:
		cd.Type = "required"
	case schema.ConstraintLength:
		cd.Type = "length"
		cd.MinLength = c.MinLength
		cd.MaxLength = c.MaxLength
	case schema.ConstraintPattern:
		cd.Type = "pattern"
		cd.Regex = c.Regex
	case schema.ConstraintCodeList:
		cd.Type = "code_list"
		cd.ListID = c.ListID
	}

	return cd
}

// SkeletonSchema returns a minimal, empty schema ready for a caller to
// fill in, so a partner-specific schema has a starting point rather than
// a blank file. No command of the edicore CLI calls it.
func SkeletonSchema(name, version, parent string) *schema.Schema {
	s := schema.NewSchema(name, version)
	s.Parent = parent

	return s
}
