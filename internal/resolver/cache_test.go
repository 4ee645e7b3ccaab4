package resolver

import (
	"path/filepath"
	"testing"

	"calorie-bot/internal/storage"
)

func TestEnergyCachePersistsAcrossInstances(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cache.json")

	c := NewEnergyCache(storage.NewFileStore[int](path))
	if err := c.Put("гречка", 343); err != nil {
		t.Fatalf("put: %v", err)
	}

	reloaded := NewEnergyCache(storage.NewFileStore[int](path))
	kcal, ok := reloaded.Get("гречка")
	if !ok || kcal != 343 {
		t.Errorf("expected 343 after reload, got %d ok=%v", kcal, ok)
	}
}

func TestEnergyCacheMiss(t *testing.T) {
	c := NewEnergyCache(storage.NewFileStore[int](filepath.Join(t.TempDir(), "cache.json")))
	if _, ok := c.Get("нет такого"); ok {
		t.Error("expected miss on empty cache")
	}
}

func TestEnergyCachePutOverwrites(t *testing.T) {
	c := NewEnergyCache(storage.NewFileStore[int](filepath.Join(t.TempDir(), "cache.json")))
	if err := c.Put("гречка", 300); err != nil {
		t.Fatalf("put: %v", err)
	}
	if err := c.Put("гречка", 343); err != nil {
		t.Fatalf("put: %v", err)
	}
	if kcal, _ := c.Get("гречка"); kcal != 343 {
		t.Errorf("expected 343 after overwrite, got %d", kcal)
	}
}
