package fuzztests

import (
	"bytes"
	"io/fs"
	"os"
	"path/filepath"
	"testing"
)

// maxSeedBytes ограничивает один сид из testdata.
const maxSeedBytes = 64 << 10

var inlineSeeds = []string{
	"",
	"const n = 10;\nvar i;\nbegin i := 0; while i < n do i := i + 1 end.\n",
	"x := 32767; y := 32768",
	"a:=b<>c<=d>=e<f>g",
	"# only a comment",
	"# comment\n\tcall p # another\n",
	":",
	"x :y",
	"@$%^&~`?!\x00\xff",
	"abcdefghijklmnopqrstuvwxyzabcdefghijklmnopqrstuvwxyz0123456789",
	"000000000000000000001",
}

func addCorpusSeeds(f *testing.F) {
	for _, s := range inlineSeeds {
		f.Add([]byte(s))
	}
	for _, src := range testdataSeeds(os.DirFS(filepath.Join("..", "..", "testdata"))) {
		f.Add(src)
	}
}

// testdataSeeds собирает все *.pl0 из дерева; нечитаемые файлы пропускаются.
func testdataSeeds(root fs.FS) [][]byte {
	var seeds [][]byte
	_ = fs.WalkDir(root, ".", func(path string, d fs.DirEntry, err error) error {
		if err != nil || d.IsDir() || filepath.Ext(path) != ".pl0" {
			return nil
		}
		src, err := fs.ReadFile(root, path)
		if err == nil {
			seeds = append(seeds, bytes.Clone(src[:min(len(src), maxSeedBytes)]))
		}
		return nil
	})
	return seeds
}
