package schema

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegistryResolveFoldsInheritanceChain(t *testing.T) {
	base := NewSchema("base", "1.0")
	base.Segments = append(base.Segments, SegmentDefinition{
		Tag:         "UNH",
		IsMandatory: true,
		Elements:    []ElementDefinition{{ID: "1", Name: "message_ref", DataType: "an", IsMandatory: true}},
	})

	orders := NewSchema("orders", "1.0")
	orders.Parent = "base"
	orders.Segments = append(orders.Segments, SegmentDefinition{Tag: "BGM", IsMandatory: true})

	registry := NewRegistry()
	require.NoError(t, registry.Register(base))
	require.NoError(t, registry.Register(orders))

	resolved, err := registry.Resolve("orders")
	require.NoError(t, err)

	assert.Equal(t, "orders", resolved.Name)
	_, hasUNH := resolved.SegmentByTag("UNH")
	_, hasBGM := resolved.SegmentByTag("BGM")
	assert.True(t, hasUNH, "resolved schema should inherit UNH from base")
	assert.True(t, hasBGM, "resolved schema should keep its own BGM")
}

func TestRegisterRejectsCyclicInheritance(t *testing.T) {
	registry := NewRegistry()

	a := NewSchema("a", "1.0")
	b := NewSchema("b", "1.0")
	b.Parent = "a"

	require.NoError(t, registry.Register(a))
	require.NoError(t, registry.Register(b))

	cyclic := NewSchema("a", "2.0")
	cyclic.Parent = "b"

	err := registry.Replace(cyclic)
	if err == nil {
		t.Fatal("want InheritanceError for a cycle, got nil")
	}

	var inheritErr *InheritanceError
	if !asInheritanceError(err, &inheritErr) {
		t.Fatalf("want *InheritanceError, got %T: %v", err, err)
	}
}

func TestRegisterRejectsMissingParent(t *testing.T) {
	registry := NewRegistry()

	child := NewSchema("child", "1.0")
	child.Parent = "missing"

	err := registry.Register(child)
	assert.Error(t, err)
}

func TestGetReturnsIndependentClone(t *testing.T) {
	registry := NewRegistry()
	s := NewSchema("orders", "1.0")
	s.Segments = append(s.Segments, SegmentDefinition{Tag: "BGM"})

	require.NoError(t, registry.Register(s))

	got, ok := registry.Get("orders")
	require.True(t, ok)

	got.Segments[0].Tag = "MUTATED"

	again, _ := registry.Get("orders")
	assert.Equal(t, "BGM", again.Segments[0].Tag, "mutating a Get result must not affect the registry")
}

func asInheritanceError(err error, target **InheritanceError) bool {
	e, ok := err.(*InheritanceError)
	if ok {
		*target = e
	}
	return ok
}
