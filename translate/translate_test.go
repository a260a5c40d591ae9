package translate

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFrom(t *testing.T) {
	assert := assert.New(t)

	assert.Equal("register 3 out of range", From("register %d out of range", 3))
}

func TestFprint(t *testing.T) {
	assert := assert.New(t)

	var sb strings.Builder
	assert.NoError(Fprint(&sb, "path: %v\n", "prog.sc"))
	assert.Equal("path: prog.sc\n", sb.String())
}
