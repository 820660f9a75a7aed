package benchmark_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/fogfactory/conveyor/benchmark"
	"github.com/maxatome/go-testdeep/td"
)

func TestProfile(t *testing.T) {
	// Arrange
	dir := t.TempDir()
	t.Chdir(dir)

	// Act
	err := benchmark.Profile(1000, 1, 32)

	// Assert
	td.Require(t).CmpNoError(err)
	files, err := filepath.Glob(filepath.Join(dir, "conveyor_*_n1000_1-32.prof"))
	td.Require(t).CmpNoError(err)
	td.Require(t).Cmp(files, td.Len(1))
	info, err := os.Stat(files[0])
	td.Require(t).CmpNoError(err)
	td.Cmp(t, info.Size(), td.Gt(int64(0)))
}
