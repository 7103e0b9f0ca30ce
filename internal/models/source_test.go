package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDisplayTitle(t *testing.T) {
	withTitle := Source{Title: "Thread about tire prices", URL: "https://forum.example.com/t/123"}
	assert.Equal(t, "Thread about tire prices", withTitle.DisplayTitle())

	untitled := Source{Title: "  ", URL: "https://forum.example.com/t/123"}
	assert.Equal(t, "https://forum.example.com/t/123", untitled.DisplayTitle())
}

func TestSourceValidate(t *testing.T) {
	assert.NoError(t, Source{URL: "https://forum.example.com/t/123"}.Validate())
	assert.ErrorIs(t, Source{URL: ""}.Validate(), ErrInvalidSourceURL)
	assert.ErrorIs(t, Source{URL: "ftp://forum.example.com"}.Validate(), ErrInvalidSourceURL)
	assert.ErrorIs(t, Source{URL: "/t/123"}.Validate(), ErrInvalidSourceURL)
}
