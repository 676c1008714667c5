package textutil

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestHash(t *testing.T) {
	assert.Equal(t, Hash("Madeline"), Hash("Madeline"))
	assert.NotEqual(t, Hash("Madeline"), Hash("Badeline"))
	assert.Len(t, Hash(""), 64)
}

func TestTruncate(t *testing.T) {
	assert.Equal(t, "Theo", Truncate("Theo", 10))
	assert.Equal(t, "Made...", Truncate("Madeline", 4))
	assert.Equal(t, "草莓...", Truncate("草莓草莓", 2))
}
