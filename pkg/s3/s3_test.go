package s3

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestObjectKey(t *testing.T) {
	at := time.Date(2025, 9, 15, 3, 32, 41, 0, time.UTC)

	assert.Equal(t, "blog-images/2025/09/15/abc.png", ObjectKey("blog-images", at, "abc", "Photo.PNG"))
	assert.Equal(t, "blog-images/2025/09/15/abc", ObjectKey("blog-images", at, "abc", "noext"))
}

func TestKeyFromURL(t *testing.T) {
	c := &s3Client{bucketName: "bucket", region: "eu-west-1"}

	key, err := c.keyFromURL(PublicURL("bucket", "eu-west-1", "blog-images/2025/09/15/a%20b.jpg"))
	assert.NoError(t, err)
	assert.Equal(t, "blog-images/2025/09/15/a b.jpg", key)

	assert.True(t, c.OwnsURL("https://bucket.s3.eu-west-1.amazonaws.com/x.png"))
	assert.False(t, c.OwnsURL("https://example.com/x.png"))
}
