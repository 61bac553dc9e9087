package filter

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestExtensionFilter_Accept(t *testing.T) {
	f := NewExtensionFilter(DefaultExtensions)

	tests := []struct {
		path string
		want bool
	}{
		{path: "a.ts", want: true},
		{path: "c.md", want: true},
		{path: "b.png", want: false},
		{path: "App.VUE", want: true},
		{path: "styles/main.Scss", want: true},
		{path: "archive.tar.js", want: true},
		{path: "data.json.bak", want: false},
		{path: "README", want: false},
		{path: ".txt", want: true},
		{path: "notes.txt/inner.go", want: false},
		{path: "script.jsx", want: false},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			assert.Equal(t, tt.want, f.Accept(tt.path))
		})
	}
}

func TestNewExtensionFilter_Normalizes(t *testing.T) {
	f := NewExtensionFilter([]string{"GO", " .Mod ", "", ".sum"})

	assert.Equal(t, []string{".go", ".mod", ".sum"}, f.Suffixes())
	assert.True(t, f.Accept("main.go"))
	assert.True(t, f.Accept("go.MOD"))
	assert.False(t, f.Accept("logo"))
}

func TestExtensionFilter_Empty(t *testing.T) {
	f := NewExtensionFilter(nil)
	assert.False(t, f.Accept("a.txt"))
}
