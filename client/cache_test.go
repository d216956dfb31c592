package client

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestQueryCacheInvalidatePrefix(t *testing.T) {
	c := NewQueryCache(0)
	c.Set(keyProject("p1"), json.RawMessage(`{}`))
	c.Set(keyRecommendations("p1"), json.RawMessage(`[]`))
	c.Set(keyCurrentUser(), json.RawMessage(`{}`))

	c.InvalidatePrefix("project:")

	_, ok := c.Get(keyProject("p1"))
	assert.False(t, ok)
	_, ok = c.Get(keyRecommendations("p1"))
	assert.False(t, ok)
	_, ok = c.Get(keyCurrentUser())
	assert.True(t, ok)
}

func TestQueryCacheOrganizationUpdateInvalidatesCurrentUser(t *testing.T) {
	c := NewQueryCache(0)
	c.Set(keyCurrentUser(), json.RawMessage(`{"id":"u1"}`))
	c.Set(keyOrganization("o1"), json.RawMessage(`{"id":"o1"}`))
	c.Set(keyActivity("a1"), json.RawMessage(`{"id":"a1"}`))

	c.InvalidateFor(opUpdateOrganization)

	_, ok := c.Get(keyCurrentUser())
	assert.False(t, ok, "cached user embeds organizationId and must go stale")
	_, ok = c.Get(keyOrganization("o1"))
	assert.False(t, ok)
	_, ok = c.Get(keyActivity("a1"))
	assert.True(t, ok, "activity entries are unrelated to the mutation")
}

func TestQueryCachePurge(t *testing.T) {
	c := NewQueryCache(4)
	c.Set(keyCurrentUser(), json.RawMessage(`{}`))
	c.Set(keyActivity("a1"), json.RawMessage(`{}`))

	c.Purge()

	_, ok := c.Get(keyCurrentUser())
	assert.False(t, ok)
	_, ok = c.Get(keyActivity("a1"))
	assert.False(t, ok)
}
