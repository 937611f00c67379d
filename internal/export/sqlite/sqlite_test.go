package sqlite

import (
	"context"
	"path/filepath"
	"reflect"
	"testing"

	"textstats/internal/domain"
)

func TestExportReplacesTable(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "stats.db")
	exp := NewExporter(path)

	first := []domain.DocumentStats{
		{Ordinal: 1, Name: "a.txt", TotalWords: 10, UniqueWords: 7, NewWords: 7},
		{Ordinal: 2, Name: "b.txt", TotalWords: 8, UniqueWords: 5, NewWords: 2},
		{Ordinal: 3, Name: "c.txt", TotalWords: 0, UniqueWords: 0, NewWords: 0},
	}
	if err := exp.Export(ctx, first); err != nil {
		t.Fatal(err)
	}
	got, err := Load(ctx, path)
	if err != nil {
		t.Fatal(err)
	}
	if !reflect.DeepEqual(got, first) {
		t.Fatalf("got %+v, want %+v", got, first)
	}

	second := first[:1]
	if err := exp.Export(ctx, second); err != nil {
		t.Fatal(err)
	}
	got, err = Load(ctx, path)
	if err != nil {
		t.Fatal(err)
	}
	if !reflect.DeepEqual(got, second) {
		t.Fatalf("table not replaced: %+v", got)
	}
}

func TestExportEmpty(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "empty.db")
	if err := NewExporter(path).Export(ctx, nil); err != nil {
		t.Fatal(err)
	}
	got, err := Load(ctx, path)
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != 0 {
		t.Fatalf("expected no rows, got %d", len(got))
	}
}
