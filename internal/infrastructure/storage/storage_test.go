package storage

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPublicURLAndObjectPath(t *testing.T) {
	url := PublicURL("http://cdn.local/", "procureflow", "/tickets/3/canvass/abc.pdf")
	assert.Equal(t, "http://cdn.local/procureflow/tickets/3/canvass/abc.pdf", url)

	path, ok := ObjectPath("http://cdn.local", "procureflow", url)
	require.True(t, ok)
	assert.Equal(t, "tickets/3/canvass/abc.pdf", path)

	_, ok = ObjectPath("http://cdn.local", "other", url)
	assert.False(t, ok)
}

func TestObjectPaths(t *testing.T) {
	p, err := CanvassObjectPath(12, "Quote From Supplier.PDF")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(p, "tickets/12/canvass/"))
	assert.True(t, strings.HasSuffix(p, ".pdf"))

	a, err := AvatarObjectPath(4, "me.png")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(a, "users/4/avatar/"))
	assert.True(t, strings.HasSuffix(a, ".png"))
}
