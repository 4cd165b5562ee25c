package config

import (
	"os"
	"testing"
)

// chdir, Go 1.24'teki t.Chdir ile aynı işi yapar: çalışma dizinini
// değiştirir ve test bitince eski dizine geri döner.
func chdir(t *testing.T, dir string) {
	t.Helper()
	old, err := os.Getwd()
	if err != nil {
		t.Fatal(err)
	}
	if err := os.Chdir(dir); err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() {
		if err := os.Chdir(old); err != nil {
			t.Fatal(err)
		}
	})
}
