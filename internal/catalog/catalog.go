// Package catalog loads the list of courses a school offers from HCL files:
//
//	course "CMPT120" {
//	  credit_hours = 2
//	}
package catalog

import (
	_ "embed"
	"fmt"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"

	"github.com/noah-isme/school-records/internal/models"
)

//go:embed courses.hcl
var defaultCatalog []byte

// Default returns the courses shipped with the module.
func Default() ([]models.Course, error) {
	return Parse(defaultCatalog, "courses.hcl")
}

type hclCatalogFile struct {
	Courses []*hclCourse `hcl:"course,block"`
}

type hclCourse struct {
	Name        string `hcl:"name,label"`
	CreditHours int    `hcl:"credit_hours"`
}

// Load parses the catalog file at path.
func Load(path string) ([]models.Course, error) {
	file, diags := hclparse.NewParser().ParseHCLFile(path)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to parse catalog %s: %w", path, diags)
	}
	return decode(file.Body, path)
}

// Parse decodes catalog source; filename is used in diagnostics only.
func Parse(src []byte, filename string) ([]models.Course, error) {
	file, diags := hclparse.NewParser().ParseHCL(src, filename)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to parse catalog %s: %w", filename, diags)
	}
	return decode(file.Body, filename)
}

func decode(body hcl.Body, filename string) ([]models.Course, error) {
	var parsed hclCatalogFile
	if diags := gohcl.DecodeBody(body, nil, &parsed); diags.HasErrors() {
		return nil, fmt.Errorf("failed to decode catalog %s: %w", filename, diags)
	}

	courses := make([]models.Course, 0, len(parsed.Courses))
	seen := make(map[string]struct{}, len(parsed.Courses))
	for _, c := range parsed.Courses {
		if c.CreditHours < 0 {
			return nil, fmt.Errorf("catalog %s: course %q has negative credit hours", filename, c.Name)
		}
		if _, dup := seen[c.Name]; dup {
			return nil, fmt.Errorf("catalog %s: course %q declared twice", filename, c.Name)
		}
		seen[c.Name] = struct{}{}
		courses = append(courses, models.Course{Name: c.Name, CreditHours: c.CreditHours})
	}
	return courses, nil
}
