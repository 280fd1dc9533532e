package docsystem

// Category is a node of the Docs taxonomy.
type Category struct {
	ID        string   `json:"id" db:"id" yaml:"id"`
	Name      string   `json:"name" db:"name" yaml:"name"`
	Slug      string   `json:"slug" db:"slug" yaml:"slug"`
	ParentID  *string  `json:"parent_id" db:"parent_id" yaml:"parent,omitempty"` // NULL = top-level
	SortOrder *int     `json:"sort_order,omitempty" db:"sort_order" yaml:"sort_order,omitempty"`
	ChildIDs  []string `json:"child_ids,omitempty" yaml:"-"` // Direct children, filled by the resolver
}

// IsTopLevel reports whether the category has no parent.
func (c *Category) IsTopLevel() bool {
	return c.ParentID == nil
}
