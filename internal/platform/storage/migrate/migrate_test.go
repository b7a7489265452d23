package migrate

import (
	"strings"
	"testing"
	"testing/fstest"
)

func TestLoadKeysIncludeRoot(t *testing.T) {
	t.Parallel()

	migrations := fstest.MapFS{
		"postgres/001_init.sql": &fstest.MapFile{Data: []byte("-- +migrate Up\nSELECT 1;")},
		"postgres/README.md":    &fstest.MapFile{Data: []byte("docs")},
	}
	loaded, err := Load(migrations, "postgres")
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if len(loaded) != 1 {
		t.Fatalf("expected one migration, got %d", len(loaded))
	}
	if loaded[0].Key != "postgres/001_init.sql" {
		t.Fatalf("key = %q, want postgres/001_init.sql", loaded[0].Key)
	}
	if strings.TrimSpace(loaded[0].Up) != "SELECT 1;" {
		t.Fatalf("up = %q", loaded[0].Up)
	}
}

func TestExtractUpMigration(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		content string
		want    string
	}{
		{name: "no markers", content: "CREATE TABLE a(id INT);", want: "CREATE TABLE a(id INT);"},
		{name: "up only", content: "-- +migrate Up\nCREATE TABLE a(id INT);", want: "CREATE TABLE a(id INT);"},
		{name: "up and down", content: "-- +migrate Up\nCREATE TABLE a(id INT);\n-- +migrate Down\nDROP TABLE a;", want: "CREATE TABLE a(id INT);"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			if got := strings.TrimSpace(ExtractUpMigration(tc.content)); got != tc.want {
				t.Fatalf("ExtractUpMigration() = %q, want %q", got, tc.want)
			}
		})
	}
}

func TestLoadRequiresFS(t *testing.T) {
	t.Parallel()

	if _, err := Load(nil, ""); err == nil {
		t.Fatal("expected error for nil fs")
	}
}

func TestLoadSortsFiles(t *testing.T) {
	t.Parallel()

	migrations := fstest.MapFS{
		"002_b.sql": &fstest.MapFile{Data: []byte("SELECT 2;")},
		"001_a.sql": &fstest.MapFile{Data: []byte("SELECT 1;")},
	}
	loaded, err := Load(migrations, "")
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if len(loaded) != 2 || loaded[0].Key != "001_a.sql" || loaded[1].Key != "002_b.sql" {
		t.Fatalf("loaded = %+v", loaded)
	}
}
