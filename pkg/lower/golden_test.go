package lower

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
	"golang.org/x/tools/txtar"

	"github.com/koatl-lang/koatl/pkg/config"
	"github.com/koatl-lang/koatl/pkg/koatlast"
	"github.com/koatl-lang/koatl/pkg/pyast"
)

// TestGolden drives pkg/lower end to end through its JSON embedding
// boundary (pkg/koatlast.BlockFromJSON in, pkg/pyast.ToJSON out): each
// testdata/*.txtar fixture holds an "input.json" koatlast.Block and the
// "want.json" PyAST tree TransformAST must produce from it. The
// input.json text itself is passed as TransformAST's source, so
// synthesized temp names carry line/column positions within that JSON
// text.
func TestGolden(t *testing.T) {
	matches, err := filepath.Glob("testdata/*.txtar")
	require.NoError(t, err)
	require.NotEmpty(t, matches, "expected at least one golden fixture")

	for _, path := range matches {
		path := path
		t.Run(filepath.Base(path), func(t *testing.T) {
			archive, err := txtar.ParseFile(path)
			require.NoError(t, err)

			var input, want []byte
			for _, f := range archive.Files {
				switch f.Name {
				case "input.json":
					input = f.Data
				case "want.json":
					want = f.Data
				}
			}
			require.NotNil(t, input, "fixture is missing input.json")
			require.NotNil(t, want, "fixture is missing want.json")

			block, err := koatlast.BlockFromJSON(input)
			require.NoError(t, err)

			out, err := TransformAST(string(input), block, config.TranspileOptions{Mode: config.ModeModule})
			require.NoError(t, err)

			gotJSON, err := pyast.ToJSON(out)
			require.NoError(t, err)

			require.JSONEq(t, string(want), string(gotJSON))
		})
	}
}
