package models

// Edge declares one directional ownership relation: the child table carries a
// foreign key back to the parent table, and deleting a parent removes its
// children. Every edge in this schema cascades, there are no restrict or
// set-null relations.
type Edge struct {
	Parent      string
	ParentTable string
	Child       string
	ChildTable  string
	ForeignKey  string
	// Alias names the child collection when fetched through the parent,
	// empty means the child's own name is used.
	Alias string
}

// Schema is the fully wired entity graph. It is built once by BuildSchema and
// is read-only afterwards, entities never register themselves as a side
// effect of being imported.
type Schema struct {
	edges []Edge
}

// BuildSchema wires the entity graph in dependency order, parents before
// children.
func BuildSchema() *Schema {
	return &Schema{
		edges: []Edge{
			{
				Parent:      "Security",
				ParentTable: Security{}.TableName(),
				Child:       "Market",
				ChildTable:  Market{}.TableName(),
				ForeignKey:  "security_id",
			},
			{
				Parent:      "Security",
				ParentTable: Security{}.TableName(),
				Child:       "Event",
				ChildTable:  Event{}.TableName(),
				ForeignKey:  "security_id",
			},
			{
				Parent:      "Market",
				ParentTable: Market{}.TableName(),
				Child:       "Price",
				ChildTable:  Price{}.TableName(),
				ForeignKey:  "market_id",
			},
			{
				Parent:      "ExchangeRate",
				ParentTable: ExchangeRate{}.TableName(),
				Child:       "ExchangeRatePrice",
				ChildTable:  ExchangeRatePrice{}.TableName(),
				ForeignKey:  "exchangerate_id",
				Alias:       "prices",
			},
		},
	}
}

// Edges returns a copy of the declared edges.
func (s *Schema) Edges() []Edge {
	edges := make([]Edge, len(s.edges))
	copy(edges, s.edges)
	return edges
}

// ChildrenOf returns the edges whose parent is the given table.
func (s *Schema) ChildrenOf(parentTable string) []Edge {
	var children []Edge
	for _, e := range s.edges {
		if e.ParentTable == parentTable {
			children = append(children, e)
		}
	}
	return children
}

// ParentOf returns the ownership edge pointing from the given child table to
// its parent, if the child has one.
func (s *Schema) ParentOf(childTable string) (Edge, bool) {
	for _, e := range s.edges {
		if e.ChildTable == childTable {
			return e, true
		}
	}
	return Edge{}, false
}

// Entities lists every persisted entity in creation order, parents before
// children, for migrations and test database setup.
func Entities() []interface{} {
	return []interface{}{
		&Security{},
		&Market{},
		&Price{},
		&Event{},
		&ExchangeRate{},
		&ExchangeRatePrice{},
		&ClientUpdate{},
	}
}
