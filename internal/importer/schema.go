package importer

import (
	"bytes"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Document is a seed file: clients, templates, projects and their weekly
// reports.
// Entities refer to one another by ref; database ids are assigned on import.
// JSON documents parse as YAML.
type Document struct {
	Clients      []ClientImport      `yaml:"clients"`
	ProjectTypes []ProjectTypeImport `yaml:"project_types"`
	Milestones   []MilestoneImport   `yaml:"milestones"`
	Projects     []ProjectImport     `yaml:"projects"`
	Reports      []ReportImport      `yaml:"reports"`
}

type ClientImport struct {
	Ref   string `yaml:"ref"`
	Name  string `yaml:"name"`
	Email string `yaml:"email"`
}

type ProjectTypeImport struct {
	Ref  string `yaml:"ref"`
	Name string `yaml:"name"`
}

type SubMilestoneImport struct {
	Ref  string `yaml:"ref"`
	Name string `yaml:"name"`
}

type MilestoneImport struct {
	Ref           string               `yaml:"ref"`
	Name          string               `yaml:"name"`
	Description   string               `yaml:"description"`
	ProjectTypes  []string             `yaml:"project_types"`
	SubMilestones []SubMilestoneImport `yaml:"sub_milestones"`
}

type ScheduleImport struct {
	Milestone string `yaml:"milestone"`
	StartDate string `yaml:"start_date"`
	EndDate   string `yaml:"end_date"`
}

type ProjectImport struct {
	Ref              string           `yaml:"ref"`
	Name             string           `yaml:"name"`
	Client           string           `yaml:"client"`
	Manager          string           `yaml:"manager"`
	ProjectType      string           `yaml:"project_type"`
	StartDate        string           `yaml:"start_date"`
	EstimatedEndDate string           `yaml:"estimated_end_date"`
	Status           string           `yaml:"status,omitempty"`
	Milestones       []ScheduleImport `yaml:"milestones,omitempty"`
}

// ReportImport is one saved week. Progress is derived from the completed
// sub-milestones when omitted.
type ReportImport struct {
	Project   string   `yaml:"project"`
	Week      int      `yaml:"week"`
	Summary   string   `yaml:"summary"`
	Status    string   `yaml:"status,omitempty"`
	Completed []string `yaml:"completed,omitempty"`
	Progress  *int     `yaml:"progress,omitempty"`
	Submitted string   `yaml:"submitted,omitempty"`
}

// Parse decodes a YAML or JSON seed document, rejecting unknown keys.
func Parse(data []byte) (*Document, error) {
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	var doc Document
	if err := dec.Decode(&doc); err != nil {
		return nil, fmt.Errorf("parsing import file: %w", err)
	}
	return &doc, nil
}

// LoadDocument reads and parses a seed file.
func LoadDocument(path string) (*Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return Parse(data)
}
