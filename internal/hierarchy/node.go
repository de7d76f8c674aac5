package hierarchy

import (
	"errors"
	"fmt"
	"strings"
)

// Node is anything that sits in a parent-linked forest.
// An empty ParentNodeID marks a root.
type Node interface {
	NodeID() string
	ParentNodeID() string
}

// Of converts a typed slice into the []Node form the resolver accepts.
func Of[N Node](ns []N) []Node {
	out := make([]Node, len(ns))
	for i, n := range ns {
		out[i] = n
	}
	return out
}

// DanglingPolicy decides what happens when a parent id names no node.
type DanglingPolicy string

const (
	// TreatAsRoot stops the ancestor climb at the missing parent.
	TreatAsRoot DanglingPolicy = "treat_as_root"
	// RejectDangling fails resolution with ErrDanglingParent.
	RejectDangling DanglingPolicy = "error"
)

// Valid reports whether p is a known policy. The zero value counts as TreatAsRoot.
func (p DanglingPolicy) Valid() bool {
	switch p {
	case "", TreatAsRoot, RejectDangling:
		return true
	}
	return false
}

var (
	ErrMalformedHierarchy = errors.New("malformed hierarchy")
	ErrDanglingParent     = errors.New("dangling parent reference")
)

// CycleError reports an ancestor chain that loops back on itself.
type CycleError struct {
	Chain []string // ids in climb order, the repeated id last
}

func (e *CycleError) Error() string {
	return fmt.Sprintf("%s: parent cycle %s", ErrMalformedHierarchy, strings.Join(e.Chain, " -> "))
}

func (e *CycleError) Unwrap() error { return ErrMalformedHierarchy }

// DuplicateIDError reports two nodes sharing an id.
type DuplicateIDError struct {
	ID string
}

func (e *DuplicateIDError) Error() string {
	return fmt.Sprintf("%s: duplicate node id %q", ErrMalformedHierarchy, e.ID)
}

func (e *DuplicateIDError) Unwrap() error { return ErrMalformedHierarchy }

// DanglingParentError names the node whose parent could not be found.
type DanglingParentError struct {
	NodeID   string
	ParentID string
}

func (e *DanglingParentError) Error() string {
	return fmt.Sprintf("%s: node %q references unknown parent %q", ErrDanglingParent, e.NodeID, e.ParentID)
}

func (e *DanglingParentError) Unwrap() error { return ErrDanglingParent }
