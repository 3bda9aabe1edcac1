package normalize

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestText(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"Café", "cafe"},
		{"AÇÚCAR Cristal", "acucar cristal"},
		{"Pão de Queijo", "pao de queijo"},
		{"sem acento", "sem acento"},
		{"", ""},
	}
	for _, c := range cases {
		assert.Equal(t, c.want, Text(c.in), c.in)
	}
}
