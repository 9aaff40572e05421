package testsupport

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
)

// FixturePath resolves name inside the calling package's testdata directory.
func FixturePath(name string) string {
	return filepath.Join("testdata", name)
}

// ReadFixture returns the raw bytes of a testdata file, failing the test if
// it cannot be read.
func ReadFixture(t testing.TB, name string) []byte {
	t.Helper()

	data, err := os.ReadFile(FixturePath(name))
	if err != nil {
		t.Fatalf("read fixture %s: %v", name, err)
	}
	return data
}

// LoadJSON decodes a testdata JSON file into T.
func LoadJSON[T any](t testing.TB, name string) T {
	t.Helper()

	var out T
	if err := json.Unmarshal(ReadFixture(t, name), &out); err != nil {
		t.Fatalf("decode fixture %s: %v", name, err)
	}
	return out
}
