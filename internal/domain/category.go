package domain

import (
	"fmt"
	"sort"
	"strings"
	"time"
)

// Category represents a node in the question category hierarchy. The
// parent pointers form a forest; a category with an empty or unresolvable
// ParentID is a root.
type Category struct {
	ID        string
	Name      string
	ParentID  string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Validate validates the category.
func (c *Category) Validate() error {
	if strings.TrimSpace(c.Name) == "" {
		return NewValidationError("category name is required")
	}
	return nil
}

// CategoryNode is a category linked into its tree, with the computed
// full path from its root.
type CategoryNode struct {
	Category
	FullPath string
	Children []*CategoryNode
}

// BuildCategoryTree links a flat category set into a forest and computes
// full paths. A node whose parent does not resolve becomes a root. A
// parent chain that cycles is a structural-integrity failure and yields
// ErrCategoryCycle rather than an infinite walk.
func BuildCategoryTree(categories []*Category) ([]*CategoryNode, error) {
	nodes := make(map[string]*CategoryNode, len(categories))
	for _, c := range categories {
		nodes[c.ID] = &CategoryNode{Category: *c}
	}

	var roots []*CategoryNode
	for _, c := range categories {
		node := nodes[c.ID]
		if parent, ok := nodes[c.ParentID]; ok {
			parent.Children = append(parent.Children, node)
		} else {
			roots = append(roots, node)
		}
	}

	// Walk from the roots computing paths. Nodes left unvisited are only
	// reachable through a cycle.
	visited := 0
	var walk func(n *CategoryNode, prefix string)
	walk = func(n *CategoryNode, prefix string) {
		visited++
		if prefix == "" {
			n.FullPath = n.Name
		} else {
			n.FullPath = prefix + "/" + n.Name
		}
		sort.Slice(n.Children, func(i, j int) bool {
			return n.Children[i].Name < n.Children[j].Name
		})
		for _, child := range n.Children {
			walk(child, n.FullPath)
		}
	}
	sort.Slice(roots, func(i, j int) bool { return roots[i].Name < roots[j].Name })
	for _, root := range roots {
		walk(root, "")
	}

	if visited != len(categories) {
		return nil, ErrCategoryCycle
	}
	return roots, nil
}

// FullCategoryPath walks the parent chain from id to its root and joins
// the names with "/".
func FullCategoryPath(id string, categories []*Category) (string, error) {
	byID := make(map[string]*Category, len(categories))
	for _, c := range categories {
		byID[c.ID] = c
	}

	current, ok := byID[id]
	if !ok {
		return "", NewNotFoundError(fmt.Sprintf("Category not found: %s", id))
	}

	seen := map[string]bool{}
	names := []string{}
	for current != nil {
		if seen[current.ID] {
			return "", ErrCategoryCycle
		}
		seen[current.ID] = true
		names = append([]string{current.Name}, names...)
		current = byID[current.ParentID]
	}
	return strings.Join(names, "/"), nil
}

// DescendantCategoryIDs collects the ids of all transitive children of id,
// excluding id itself. The traversal tracks visited nodes so a malformed
// cyclic graph cannot loop.
func DescendantCategoryIDs(id string, categories []*Category) []string {
	childrenOf := make(map[string][]string, len(categories))
	for _, c := range categories {
		if c.ParentID != "" {
			childrenOf[c.ParentID] = append(childrenOf[c.ParentID], c.ID)
		}
	}

	var descendants []string
	seen := map[string]bool{id: true}
	queue := append([]string{}, childrenOf[id]...)
	for len(queue) > 0 {
		current := queue[0]
		queue = queue[1:]
		if seen[current] {
			continue
		}
		seen[current] = true
		descendants = append(descendants, current)
		queue = append(queue, childrenOf[current]...)
	}
	return descendants
}
