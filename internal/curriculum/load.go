package curriculum

import (
	"bytes"
	_ "embed"
	"fmt"
	"io"
	"os"
	"sync"

	"gopkg.in/yaml.v3"
)

//go:embed courses.yaml
var defaultCourses []byte

type document struct {
	Courses []Course `yaml:"courses"`
}

// Load decodes a YAML curriculum document and builds a validated Catalog.
func Load(r io.Reader) (*Catalog, error) {
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)

	var doc document
	if err := dec.Decode(&doc); err != nil {
		if err == io.EOF {
			return nil, fmt.Errorf("decode curriculum: empty document")
		}
		return nil, fmt.Errorf("decode curriculum: %w", err)
	}
	return New(doc.Courses)
}

// LoadFile reads a curriculum from a YAML file on disk.
func LoadFile(path string) (*Catalog, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open curriculum: %w", err)
	}
	defer f.Close()

	cat, err := Load(f)
	if err != nil {
		return nil, fmt.Errorf("load %s: %w", path, err)
	}
	return cat, nil
}

var (
	defaultOnce    sync.Once
	defaultCatalog *Catalog
)

// Default returns the built-in Kubernetes certification catalog. The embedded
// dataset is parsed once; an invalid dataset is a programming error and panics.
func Default() *Catalog {
	defaultOnce.Do(func() {
		cat, err := Load(bytes.NewReader(defaultCourses))
		if err != nil {
			panic(fmt.Sprintf("curriculum: invalid embedded dataset: %v", err))
		}
		defaultCatalog = cat
	})
	return defaultCatalog
}
