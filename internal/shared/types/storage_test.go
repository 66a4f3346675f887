package types

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsS3URI(t *testing.T) {
	assert.True(t, IsS3URI("s3://a/b.dxf"))
	assert.True(t, IsS3URI("S3://a/b.dxf"))
	assert.False(t, IsS3URI("part.dxf"))
	assert.False(t, IsS3URI("./s3://weird"))
}
