package cmn

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGCO_DefaultsBeforePut(t *testing.T) {
	owner := &globalConfigOwner{}
	assert.Equal(t, &Config{}, owner.Get())
}

func TestGCO_PutThenGet(t *testing.T) {
	owner := &globalConfigOwner{}
	owner.Put(&Config{MaxSize: 4, Verbosity: 2})
	assert.Equal(t, &Config{MaxSize: 4, Verbosity: 2}, owner.Get())
}
