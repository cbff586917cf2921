package kvline_test

import (
	"bufio"
	"bytes"
	"flag"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/KimNorgaard/go-kvline"
	"github.com/stretchr/testify/require"
)

var update = flag.Bool("update", false, "update golden files")

// TestGolden parses every line of testdata/*.kv and compares the canonical
// encoding, or the error, against the matching .golden file. Lines starting
// with '#' are comments.
func TestGolden(t *testing.T) {
	files, err := filepath.Glob("testdata/*.kv")
	require.NoError(t, err)
	require.NotEmpty(t, files)

	for _, file := range files {
		t.Run(file, func(t *testing.T) {
			src, err := os.ReadFile(file)
			require.NoError(t, err)

			var actual bytes.Buffer
			sc := bufio.NewScanner(bytes.NewReader(src))
			for sc.Scan() {
				line := sc.Text()
				if strings.HasPrefix(line, "#") {
					continue
				}
				m, err := kvline.Parse(line)
				if err != nil {
					actual.WriteString("error: " + err.Error() + "\n")
					continue
				}
				actual.WriteString(m.String() + "\n")
			}
			require.NoError(t, sc.Err())

			goldenFile := strings.Replace(file, ".kv", ".golden", 1)
			if *update {
				err := os.WriteFile(goldenFile, actual.Bytes(), 0o644)
				require.NoError(t, err)
			}

			expected, err := os.ReadFile(goldenFile)
			require.NoError(t, err, "Golden file not found. Run with -update to create it.")

			require.Equal(t, string(expected), actual.String(), "Parser output does not match golden file.")
		})
	}
}
