package slug

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGenerate(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"Hello World", "hello-world"},
		{"  Growing Roses at Altitude  ", "growing-roses-at-altitude"},
		{"Rosé & Spray Roses: A Guide", "rose-spray-roses-a-guide"},
		{"Naïve Café Crème", "naive-cafe-creme"},
		{"5 Tips -- for   Fresh Cut Flowers!", "5-tips-for-fresh-cut-flowers"},
		{"---", ""},
		{"", ""},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			assert.Equal(t, tt.want, Generate(tt.input))
		})
	}
}

func TestUnique(t *testing.T) {
	taken := map[string]bool{"roses": true, "roses-2": true}
	has := func(s string) bool { return taken[s] }

	assert.Equal(t, "lilies", Unique("lilies", has))
	assert.Equal(t, "roses-3", Unique("roses", has))
}
