package csv

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/vsinha/fibercalc/pkg/domain/entities"
)

func TestLoader_LoadConstraints(t *testing.T) {
	path := filepath.Join(t.TempDir(), "constraints.csv")
	content := "label,multiple,remainder\nrib,4,2\nlace,6,\n,8,3\n"
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	constraints, err := NewLoader().LoadConstraints(path)
	if err != nil {
		t.Fatalf("LoadConstraints: %v", err)
	}

	expected := []entities.PatternConstraint{
		{Multiple: 4, Remainder: 2, Label: "rib"},
		{Multiple: 6, Remainder: 0, Label: "lace"},
		{Multiple: 8, Remainder: 3},
	}
	if len(constraints) != len(expected) {
		t.Fatalf("Expected %d constraints, got %d", len(expected), len(constraints))
	}
	for i, c := range constraints {
		if c != expected[i] {
			t.Errorf("row %d: expected %+v, got %+v", i, expected[i], c)
		}
	}
}

func TestLoader_ReadConstraints_Errors(t *testing.T) {
	tests := []struct {
		name    string
		content string
		want    string
	}{
		{"header only", "label,multiple,remainder\n", "at least one data row"},
		{"wrong header", "name,multiple,remainder\nx,4,0\n", "header mismatch"},
		{"bad multiple", "label,multiple,remainder\nx,four,0\n", "invalid multiple"},
		{"zero multiple", "label,multiple,remainder\nx,0,0\n", "row 2"},
		{"short row", "label,multiple,remainder\nx,4\n", "failed to read"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewLoader().ReadConstraints(strings.NewReader(tt.content))
			if err == nil {
				t.Fatal("Expected error, got nil")
			}
			if !strings.Contains(err.Error(), tt.want) {
				t.Errorf("Expected error containing %q, got %v", tt.want, err)
			}
		})
	}
}

func TestLoader_ReadConstraints_ZeroMultipleIsInvalidConstraint(t *testing.T) {
	_, err := NewLoader().ReadConstraints(strings.NewReader("label,multiple,remainder\nx,0,0\n"))
	if !errors.Is(err, entities.ErrInvalidConstraint) {
		t.Errorf("Expected ErrInvalidConstraint, got %v", err)
	}
}

func TestLoader_ReadProjects(t *testing.T) {
	content := strings.Join([]string{
		"name,width,height,yarn_weight,shape,stitch_multiplier,skein_length,skein_weight,gauge_stitches,gauge_rows",
		"blanket,40,60,worsted,rectangle,,220,100,,",
		"shawl,60,30,lace,triangle,1.3,400,50,7,10",
	}, "\n")

	projects, err := NewLoader().ReadProjects(strings.NewReader(content))
	if err != nil {
		t.Fatalf("ReadProjects: %v", err)
	}
	if len(projects) != 2 {
		t.Fatalf("Expected 2 projects, got %d", len(projects))
	}

	blanket := projects[0]
	if blanket.Name != "blanket" || blanket.YarnWeight != entities.Worsted || blanket.Shape != entities.Rectangle {
		t.Errorf("blanket parsed wrong: %+v", blanket)
	}
	if blanket.StitchMultiplier != 1.0 {
		t.Errorf("empty multiplier should default to 1.0, got %g", blanket.StitchMultiplier)
	}
	if blanket.Gauge != nil {
		t.Errorf("empty gauge columns should leave gauge nil")
	}

	shawl := projects[1]
	if shawl.Shape != entities.Triangle || shawl.StitchMultiplier != 1.3 {
		t.Errorf("shawl parsed wrong: %+v", shawl)
	}
	if shawl.Gauge == nil || shawl.Gauge.StitchesPerUnit != 7 || shawl.Gauge.RowsPerUnit != 10 {
		t.Errorf("shawl gauge parsed wrong: %+v", shawl.Gauge)
	}
}

func TestLoader_ReadProjects_Errors(t *testing.T) {
	header := "name,width,height,yarn_weight,shape,stitch_multiplier,skein_length,skein_weight,gauge_stitches,gauge_rows\n"
	tests := []struct {
		name string
		row  string
		want error
	}{
		{"unknown weight", "x,10,10,mohair,rectangle,,,,,", entities.ErrUnknownYarnWeight},
		{"unknown shape", "x,10,10,dk,hexagon,,,,,", entities.ErrUnknownShape},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewLoader().ReadProjects(strings.NewReader(header + tt.row + "\n"))
			if !errors.Is(err, tt.want) {
				t.Errorf("Expected %v, got %v", tt.want, err)
			}
		})
	}

	if _, err := NewLoader().ReadProjects(strings.NewReader(header + "x,ten,10,dk,rectangle,,,,,\n")); err == nil ||
		!strings.Contains(err.Error(), "invalid width") {
		t.Errorf("Expected width parse error, got %v", err)
	}
}

func TestLoader_ReadProjects_KeepsIncompleteRows(t *testing.T) {
	content := strings.Join([]string{
		"name,width,height,yarn_weight,shape,stitch_multiplier,skein_length,skein_weight,gauge_stitches,gauge_rows",
		"blanket,40,60,worsted,rectangle,,220,,,",
		"todo,0,60,worsted,rectangle,,220,,,",
		"undecided,20,20,,hat,,,,,",
		"half swatch,10,10,dk,rectangle,,,,5,",
	}, "\n")

	projects, err := NewLoader().ReadProjects(strings.NewReader(content))
	if err != nil {
		t.Fatalf("ReadProjects: %v", err)
	}
	if len(projects) != 4 {
		t.Fatalf("Expected 4 projects, got %d", len(projects))
	}

	if !projects[0].Complete() {
		t.Errorf("blanket should be complete: %+v", projects[0])
	}
	for _, p := range projects[1:] {
		if p.Complete() {
			t.Errorf("%s should be incomplete: %+v", p.Name, p)
		}
	}
	if projects[2].YarnWeight != entities.NoYarnWeight {
		t.Errorf("empty weight column should leave weight unset, got %v", projects[2].YarnWeight)
	}
	if projects[3].Gauge == nil || projects[3].Gauge.RowsPerUnit != 0 {
		t.Errorf("half gauge should be kept as given: %+v", projects[3].Gauge)
	}
}

func TestLoader_MissingFile(t *testing.T) {
	if _, err := NewLoader().LoadProjects(filepath.Join(t.TempDir(), "nope.csv")); err == nil {
		t.Error("Expected error for missing file")
	}
}
