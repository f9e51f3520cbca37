package provider

import (
	"context"
	"testing"
)

type fakeProvider struct{ name string }

func (f *fakeProvider) Name() string                       { return f.name }
func (f *fakeProvider) IsAvailable(_ context.Context) bool { return true }

func TestRegistryCreate(t *testing.T) {
	reg := NewRegistry[*fakeProvider]()
	reg.RegisterFactory("fake", func(cfg map[string]any) (*fakeProvider, error) {
		name, _ := cfg["name"].(string)
		return &fakeProvider{name: name}, nil
	})

	p, err := reg.Create("fake", map[string]any{"name": "p1"})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if p.Name() != "p1" {
		t.Errorf("expected p1, got %s", p.Name())
	}
}

func TestRegistryUnknownFactory(t *testing.T) {
	reg := NewRegistry[*fakeProvider]()
	if _, err := reg.Create("ghost", nil); err == nil {
		t.Error("expected error for unknown factory")
	}
}

func TestRegistryList(t *testing.T) {
	reg := NewRegistry[*fakeProvider]()
	reg.RegisterFactory("b", func(map[string]any) (*fakeProvider, error) { return &fakeProvider{}, nil })
	reg.RegisterFactory("a", func(map[string]any) (*fakeProvider, error) { return &fakeProvider{}, nil })

	names := reg.List()
	if len(names) != 2 || names[0] != "a" || names[1] != "b" {
		t.Errorf("expected sorted [a b], got %v", names)
	}
}
