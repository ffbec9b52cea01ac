package pixel

import (
	"go/ast"
	"go/importer"
	"go/parser"
	"go/token"
	"go/types"
	"path/filepath"
	"strings"
	"testing"
)

const pixelImportPath = "github.com/ironsheep/phany/internal/pixel"

// probeImporter resolves this package from source and everything else from the
// standard library export data.
type probeImporter struct {
	pixel    *types.Package
	fallback types.Importer
}

func (p probeImporter) Import(path string) (*types.Package, error) {
	if path == pixelImportPath {
		return p.pixel, nil
	}
	return p.fallback.Import(path)
}

// checkProbe type-checks src against the non-test sources of this package.
func checkProbe(t *testing.T, src string) error {
	t.Helper()
	fset := token.NewFileSet()

	names, err := filepath.Glob("*.go")
	if err != nil {
		t.Fatalf("failed to list package sources: %v", err)
	}
	var files []*ast.File
	for _, name := range names {
		if strings.HasSuffix(name, "_test.go") {
			continue
		}
		f, err := parser.ParseFile(fset, name, nil, 0)
		if err != nil {
			t.Fatalf("failed to parse %s: %v", name, err)
		}
		files = append(files, f)
	}

	std := importer.Default()
	pkg, err := (&types.Config{Importer: std}).Check(pixelImportPath, fset, files, nil)
	if err != nil {
		t.Fatalf("package does not type-check: %v", err)
	}

	probe, err := parser.ParseFile(fset, "probe.go", src, 0)
	if err != nil {
		t.Fatalf("failed to parse probe: %v", err)
	}
	conf := types.Config{Importer: probeImporter{pixel: pkg, fallback: std}}
	_, err = conf.Check("probe", fset, []*ast.File{probe}, nil)
	return err
}

func TestShapeConstraint_Accepts(t *testing.T) {
	tests := []struct {
		name string
		decl string
	}{
		{"mono u8", "var _ pixel.Image[uint8, pixel.Mono[uint8]]"},
		{"pair i32", "var _ pixel.Image[int32, pixel.Pair[int32]]"},
		{"triple u8", "var _ pixel.Image[uint8, pixel.Triple[uint8]]"},
		{"quad f64", "var _ pixel.Image[float64, pixel.Quad[float64]]"},
		{"plain array", "var _ pixel.Image[uint16, [4]uint16]"},
		{"triple literal", "var _ = pixel.Triple[uint8]{1, 2, 3}"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			src := "package probe\n\nimport \"" + pixelImportPath + "\"\n\n" + tt.decl + "\n"
			if err := checkProbe(t, src); err != nil {
				t.Errorf("%s should type-check: %v", tt.decl, err)
			}
		})
	}
}

func TestShapeConstraint_RejectsMixedPrimitives(t *testing.T) {
	tests := []struct {
		name string
		decl string
	}{
		{"shape of other primitive", "var _ pixel.Image[uint8, pixel.Triple[uint16]]"},
		{"mixed channel value", "var _ = pixel.Triple[uint8]{1, 2, uint16(3)}"},
		{"mixed struct pixel", "var _ pixel.Image[uint8, struct{ A uint8; B uint16 }]"},
		{"five channels", "var _ pixel.Image[uint8, [5]uint8]"},
		{"non-numeric primitive", "var _ pixel.Image[string, [3]string]"},
		{"integer where float required", "func f[T pixel.FloatPrimitive]() {}\n\nvar _ = f[uint8]"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			src := "package probe\n\nimport \"" + pixelImportPath + "\"\n\n" + tt.decl + "\n"
			if err := checkProbe(t, src); err == nil {
				t.Errorf("%s should fail to type-check", tt.decl)
			}
		})
	}
}
