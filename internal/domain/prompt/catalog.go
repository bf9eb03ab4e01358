package prompt

import (
	_ "embed"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

//go:embed prompts.yaml
var defaultPrompts []byte

// Catalog holds every prompt text the nutrition use cases send.
type Catalog struct {
	CountCaloriesSystem string
	DietSystem          string
	AnalyzePhotoSystem  string
	AnalyzePhotoUser    string
}

type catalogDocument struct {
	CountCalories struct {
		System string `yaml:"system"`
	} `yaml:"count_calories"`
	Diet struct {
		System string `yaml:"system"`
	} `yaml:"diet"`
	AnalyzePhoto struct {
		System string `yaml:"system"`
		User   string `yaml:"user"`
	} `yaml:"analyze_photo"`
}

// Default returns the embedded catalog.
func Default() (*Catalog, error) {
	doc, err := parse(defaultPrompts)
	if err != nil {
		return nil, fmt.Errorf("parse embedded prompts: %w", err)
	}
	catalog := &Catalog{}
	catalog.apply(doc)
	return catalog, catalog.validate()
}

// Load returns the embedded catalog with any keys set in the file at path
// layered on top. An empty path means no overrides.
func Load(path string) (*Catalog, error) {
	catalog, err := Default()
	if err != nil {
		return nil, err
	}
	if strings.TrimSpace(path) == "" {
		return catalog, nil
	}

	cleanPath := filepath.Clean(path)
	data, err := os.ReadFile(cleanPath)
	if err != nil {
		return nil, fmt.Errorf("read prompts file %q: %w", cleanPath, err)
	}
	doc, err := parse(data)
	if err != nil {
		return nil, fmt.Errorf("parse prompts file %q: %w", cleanPath, err)
	}
	catalog.apply(doc)
	return catalog, catalog.validate()
}

func parse(data []byte) (catalogDocument, error) {
	var doc catalogDocument
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return catalogDocument{}, err
	}
	return doc, nil
}

func (c *Catalog) apply(doc catalogDocument) {
	set := func(dst *string, value string) {
		if v := strings.TrimSpace(value); v != "" {
			*dst = v
		}
	}
	set(&c.CountCaloriesSystem, doc.CountCalories.System)
	set(&c.DietSystem, doc.Diet.System)
	set(&c.AnalyzePhotoSystem, doc.AnalyzePhoto.System)
	set(&c.AnalyzePhotoUser, doc.AnalyzePhoto.User)
}

func (c *Catalog) validate() error {
	var missing []string
	if c.CountCaloriesSystem == "" {
		missing = append(missing, "count_calories.system")
	}
	if c.DietSystem == "" {
		missing = append(missing, "diet.system")
	}
	if c.AnalyzePhotoSystem == "" {
		missing = append(missing, "analyze_photo.system")
	}
	if c.AnalyzePhotoUser == "" {
		missing = append(missing, "analyze_photo.user")
	}
	if len(missing) > 0 {
		return errors.New("prompt catalog missing: " + strings.Join(missing, ", "))
	}
	return nil
}
