package main

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/realmforge/realmforge/pkg/actor"
)

func main() {
	if len(os.Args) < 2 {
		fmt.Fprintf(os.Stderr, "Usage: %s <template.json | bestiary-dir>\n", os.Args[0])
		os.Exit(1)
	}

	target := os.Args[1]
	validator := &TemplateValidator{}

	info, err := os.Stat(target)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Validation failed: %v\n", err)
		os.Exit(1)
	}

	if info.IsDir() {
		if err := validator.validateDir(target); err != nil {
			fmt.Fprintf(os.Stderr, "Validation failed: %v\n", err)
			os.Exit(1)
		}
	} else {
		if err := validator.validateFile(target); err != nil {
			fmt.Fprintf(os.Stderr, "Validation failed: %v\n", err)
			os.Exit(1)
		}
	}

	fmt.Println("Bestiary is valid!")
}

type TemplateValidator struct {
	errors []string
}

func (v *TemplateValidator) validateDir(dir string) error {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return fmt.Errorf("failed to read directory %s: %w", dir, err)
	}

	var failed bool
	for _, entry := range entries {
		if entry.IsDir() || filepath.Ext(entry.Name()) != ".json" {
			continue
		}
		if err := v.validateFile(filepath.Join(dir, entry.Name())); err != nil {
			fmt.Fprintf(os.Stderr, "%v\n", err)
			failed = true
		}
	}
	if failed {
		return fmt.Errorf("one or more templates failed validation")
	}
	return nil
}

func (v *TemplateValidator) validateFile(filename string) error {
	fmt.Printf("Validating %s...\n", filename)

	baseName := filepath.Base(filename)
	if !strings.HasSuffix(baseName, ".json") {
		return fmt.Errorf("template file must have .json extension: %s", baseName)
	}

	nameWithoutExt := strings.TrimSuffix(baseName, ".json")
	if !isValidTemplateFilename(nameWithoutExt) {
		return fmt.Errorf("template filename '%s' must be lowercase snake_case (e.g., ancient_red_dragon.json)", baseName)
	}

	data, err := os.ReadFile(filename)
	if err != nil {
		return fmt.Errorf("failed to read file %s: %w", filename, err)
	}

	v.errors = nil

	if !json.Valid(data) {
		return fmt.Errorf("file %s contains invalid JSON", filename)
	}

	var tmpl actor.Template
	decoder := json.NewDecoder(strings.NewReader(string(data)))
	decoder.DisallowUnknownFields()

	if err := decoder.Decode(&tmpl); err != nil {
		return fmt.Errorf("file %s failed strict JSON unmarshaling: %w", filename, err)
	}

	v.validateTemplate(&tmpl)

	if len(v.errors) > 0 {
		return fmt.Errorf("validation errors in %s:\n%s", filename, strings.Join(v.errors, "\n"))
	}

	return nil
}

func (v *TemplateValidator) validateTemplate(tmpl *actor.Template) {
	if err := tmpl.Validate(); err != nil {
		v.errors = append(v.errors, fmt.Sprintf("  - %v", err))
	}

	scores := tmpl.Stats.ToAttributes()
	for name, score := range scores {
		if score < 1 || score > 30 {
			v.errors = append(v.errors, fmt.Sprintf("  - %s score %d outside [1,30]", name, score))
		}
	}

	for _, action := range tmpl.Actions {
		if action.Name == "" {
			v.errors = append(v.errors, "  - action missing name")
		}
		if action.DamageDice != "" && !isValidDiceExpr(action.DamageDice) {
			v.errors = append(v.errors, fmt.Sprintf("  - action %q has malformed damage dice %q", action.Name, action.DamageDice))
		}
	}

	if tmpl.Gold != nil && *tmpl.Gold < 0 {
		v.errors = append(v.errors, "  - gold must not be negative")
	}
}

var (
	templateFilenamePattern = regexp.MustCompile(`^[a-z0-9]+(_[a-z0-9]+)*$`)
	diceExprPattern         = regexp.MustCompile(`^\d+d\d+$`)
)

func isValidTemplateFilename(name string) bool {
	return templateFilenamePattern.MatchString(name)
}

func isValidDiceExpr(expr string) bool {
	return diceExprPattern.MatchString(expr)
}
