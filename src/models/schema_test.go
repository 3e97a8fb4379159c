package models_test

import (
	"testing"

	"securities/src/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildSchemaEdges(t *testing.T) {
	schema := models.BuildSchema()
	edges := schema.Edges()
	require.Len(t, edges, 4)

	securityChildren := schema.ChildrenOf("securities")
	require.Len(t, securityChildren, 2)
	assert.Equal(t, "markets", securityChildren[0].ChildTable)
	assert.Equal(t, "security_id", securityChildren[0].ForeignKey)
	assert.Equal(t, "events", securityChildren[1].ChildTable)

	marketChildren := schema.ChildrenOf("markets")
	require.Len(t, marketChildren, 1)
	assert.Equal(t, "prices", marketChildren[0].ChildTable)
	assert.Equal(t, "market_id", marketChildren[0].ForeignKey)
}

func TestSchemaParentOf(t *testing.T) {
	schema := models.BuildSchema()

	edge, ok := schema.ParentOf("prices")
	require.True(t, ok)
	assert.Equal(t, "markets", edge.ParentTable)

	edge, ok = schema.ParentOf("exchangerates_prices")
	require.True(t, ok)
	assert.Equal(t, "exchangerates", edge.ParentTable)
	assert.Equal(t, "prices", edge.Alias)

	_, ok = schema.ParentOf("securities")
	assert.False(t, ok)

	_, ok = schema.ParentOf("client_updates")
	assert.False(t, ok)
}

func TestSchemaLeavesHaveNoChildren(t *testing.T) {
	schema := models.BuildSchema()
	assert.Empty(t, schema.ChildrenOf("prices"))
	assert.Empty(t, schema.ChildrenOf("events"))
	assert.Empty(t, schema.ChildrenOf("exchangerates_prices"))
}

func TestSecurityTypeSet(t *testing.T) {
	for _, valid := range []string{"share", "fund", "bond", "index"} {
		assert.True(t, models.IsValidSecurityType(valid), valid)
	}
	assert.False(t, models.IsValidSecurityType("etf"))
	assert.False(t, models.IsValidSecurityType(""))
	assert.False(t, models.IsValidSecurityType("Share"))
}
