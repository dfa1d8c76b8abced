package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestInitTemplatesEmbedded(t *testing.T) {
	for name, data := range map[string][]byte{
		"bash": bashInit,
		"zsh":  zshInit,
		"fish": fishInit,
	} {
		t.Run(name, func(t *testing.T) {
			assert.NotEmpty(t, data)
			assert.Contains(t, string(data), "gitprompt")
			assert.Contains(t, string(data), "--color always")
		})
	}
}
