package model

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// #region document

// Document is the YAML form of a quality model.
type Document struct {
	Goals []GoalSpec `yaml:"goals"`
}

// GoalSpec is one node in a YAML model document. A node with sub-goals is a
// composite, one without is a leaf. Weight 0 means "use the default of 1".
type GoalSpec struct {
	Name        string     `yaml:"name"`
	Description string     `yaml:"description"`
	Weight      float64    `yaml:"weight"`
	Goals       []GoalSpec `yaml:"goals"`
}

// #endregion document

// #region parse

// ParseModel builds a tree from a YAML model document.
func ParseModel(data []byte) (*Tree, error) {
	var doc Document
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("parse model document: %w", err)
	}
	if len(doc.Goals) == 0 {
		return nil, fmt.Errorf("model document defines no goals")
	}

	t := NewTree()
	for _, spec := range doc.Goals {
		root, err := t.AddRoot(spec.Name, spec.Description, spec.Weight, kindOf(spec))
		if err != nil {
			return nil, err
		}
		if err := addSubGoals(t, root, spec.Goals); err != nil {
			return nil, err
		}
	}
	return t, nil
}

// LoadModel reads a YAML model document from disk.
func LoadModel(path string) (*Tree, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read model %s: %w", path, err)
	}
	return ParseModel(data)
}

func addSubGoals(t *Tree, parent NodeID, specs []GoalSpec) error {
	for _, spec := range specs {
		if spec.Name == "" {
			return fmt.Errorf("goal under %q has no name", t.Node(parent).Name)
		}
		id, err := t.AddChild(parent, spec.Name, spec.Description, spec.Weight, kindOf(spec))
		if err != nil {
			return err
		}
		if err := addSubGoals(t, id, spec.Goals); err != nil {
			return err
		}
	}
	return nil
}

func kindOf(spec GoalSpec) Kind {
	if len(spec.Goals) > 0 {
		return KindComposite
	}
	return KindLeaf
}

// #endregion parse
