package debugdump

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type snapshot struct {
	Name  string    `json:"name"`
	Items []float64 `json:"items"`
}

func TestWriter_WriteRead(t *testing.T) {
	tests := []struct {
		name     string
		compress bool
		file     string
	}{
		{name: "plain json", compress: false, file: "output-complete.json"},
		{name: "brotli", compress: true, file: "output-complete.json.br"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dir := t.TempDir()
			w := New(dir, tt.compress)
			in := snapshot{Name: "seoul", Items: []float64{10.5, 12.25}}

			require.NoError(t, w.Write("output-complete", in))
			assert.FileExists(t, filepath.Join(dir, tt.file))

			var out snapshot
			require.NoError(t, w.Read("output-complete", &out))
			assert.Equal(t, in, out)

			entries, err := os.ReadDir(dir)
			require.NoError(t, err)
			assert.Len(t, entries, 1, "temp files must not be left behind")
		})
	}
}

func TestWriter_DisabledIsNoop(t *testing.T) {
	var nilWriter *Writer
	assert.False(t, nilWriter.Enabled())
	assert.NoError(t, nilWriter.Write("x", 1))

	w := New("", false)
	assert.False(t, w.Enabled())
	assert.NoError(t, w.Write("x", 1))
}
