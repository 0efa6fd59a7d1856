package agent

import (
	"os"
	"path/filepath"
	"testing"
)

func writeFile(t *testing.T, dir, name, content string) {
	t.Helper()
	if err := os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644); err != nil {
		t.Fatalf("write %s: %v", name, err)
	}
}

const writerYAML = `
name: Writer
description: Drafts the post
instructions: Write the post.
temperature: 0.7
`

const criticYAML = `
name: Critic
description: Reviews the post
instructions: Review the post and score it.
temperature: 0.2
`

func TestLoadDefinition(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "writer.yaml", writerYAML)

	def, err := LoadDefinition(filepath.Join(dir, "writer.yaml"))
	if err != nil {
		t.Fatalf("LoadDefinition: %v", err)
	}
	if def.Name != "Writer" || def.Description != "Drafts the post" {
		t.Fatalf("definition: %+v", def)
	}
	if def.Temperature == nil || *def.Temperature != 0.7 {
		t.Fatalf("temperature: %v", def.Temperature)
	}
}

func TestLoadDefinition_RejectsIncomplete(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "bad.yaml", "name: Nameless\n")
	if _, err := LoadDefinition(filepath.Join(dir, "bad.yaml")); err == nil {
		t.Fatal("definition without instructions must fail")
	}
}

func TestLoadDefinitions_SortedAndFiltered(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "writer.yaml", writerYAML)
	writeFile(t, dir, "critic.yml", criticYAML)
	writeFile(t, dir, "readme.md", "not an agent")

	defs, err := LoadDefinitions(dir)
	if err != nil {
		t.Fatalf("LoadDefinitions: %v", err)
	}
	if len(defs) != 2 {
		t.Fatalf("expected 2 definitions, got %d", len(defs))
	}
	// Filename order, not declaration order.
	if defs[0].Name != "Critic" || defs[1].Name != "Writer" {
		t.Fatalf("order: %s, %s", defs[0].Name, defs[1].Name)
	}
}

func TestLoadDefinitions_MissingDir(t *testing.T) {
	if _, err := LoadDefinitions(filepath.Join(t.TempDir(), "absent")); err == nil {
		t.Fatal("missing directory must fail")
	}
}
