package util

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMask(t *testing.T) {
	assert.Equal(t, "", Mask(""))
	assert.Equal(t, "****", Mask("abcd"))
	assert.Equal(t, "****cdef", Mask("sk-abcdef"))
	assert.Equal(t, "****钥密钥密", Mask("密钥密钥密钥密"))
}
