package curriculum

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

const sampleYAML = `
courses:
  - id: base
    title: Base
    description: Foundations
    dependencies: []
    position: {x: 10, y: 20}
    sections:
      - title: Intro
        topics:
          - {id: pods, title: Pods}
          - {id: svc, title: Services}
    contribution:
      target: base
      weights: {adv: 40}
  - id: adv
    title: Advanced
    dependencies: [base]
    position: {x: 30, y: 20}
    sections:
      - title: Deep
        topics:
          - {id: adv-pods, title: Pods}
          - {id: adv-svc, title: Service objects, related: [svc]}
`

func TestLoad(t *testing.T) {
	cat, err := Load(strings.NewReader(sampleYAML))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cat.TopicCount() != 4 {
		t.Errorf("TopicCount() = %d, want 4", cat.TopicCount())
	}
	adv, ok := cat.Course("adv")
	if !ok {
		t.Fatal("course adv missing")
	}
	if adv.Position.X != 30 || adv.Position.Y != 20 {
		t.Errorf("position = %+v, want {30 20}", adv.Position)
	}
	if adv.Contribution != nil {
		t.Error("adv should have no contribution")
	}
	base, _ := cat.Course("base")
	if base.Contribution == nil || base.Contribution.Weights["adv"] != 40 {
		t.Errorf("base contribution = %+v", base.Contribution)
	}
	if got := cat.RelatedCourses("svc"); len(got) != 2 {
		t.Errorf("RelatedCourses(svc) = %v, want both courses", got)
	}
}

func TestLoad_Errors(t *testing.T) {
	tests := []struct {
		name string
		doc  string
		want string
	}{
		{"empty", "", "empty document"},
		{"malformed", "courses: [", "decode curriculum"},
		{"unknown field", "courses:\n  - id: a\n    color: red\n", "decode curriculum"},
		{"invalid graph", "courses:\n  - id: a\n    dependencies: [b]\n", "nonexistent dependency"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(strings.NewReader(tt.doc))
			if err == nil {
				t.Fatal("expected error, got nil")
			}
			if !strings.Contains(err.Error(), tt.want) {
				t.Errorf("error should contain %q, got: %v", tt.want, err)
			}
		})
	}
}

func TestLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "courses.yaml")
	if err := os.WriteFile(path, []byte(sampleYAML), 0o644); err != nil {
		t.Fatal(err)
	}
	cat, err := LoadFile(path)
	if err != nil {
		t.Fatalf("LoadFile: %v", err)
	}
	if len(cat.Courses()) != 2 {
		t.Errorf("got %d courses, want 2", len(cat.Courses()))
	}

	if _, err := LoadFile(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Error("LoadFile on a missing file should fail")
	}
}

func TestDefault_IsSingleton(t *testing.T) {
	if Default() != Default() {
		t.Error("Default() should return the same catalog")
	}
}
