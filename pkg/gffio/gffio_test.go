package gffio

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/klauspost/pgzip"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sample = "##gff-version 3\r\nchrXI\tSGD\tgene\t1\t4\t.\t+\t.\tID=GENE1\n>chrXI\nACGT"

func TestReadLines(t *testing.T) {
	lines, err := ReadLines(strings.NewReader(sample))
	require.NoError(t, err)

	require.Len(t, lines, 4)
	assert.Equal(t, "##gff-version 3\r", lines[0])
	assert.Equal(t, "ACGT", lines[3])
}

func TestReadLines_Empty(t *testing.T) {
	lines, err := ReadLines(strings.NewReader(""))
	require.NoError(t, err)
	assert.Empty(t, lines)
}

func TestReadFile_Plain(t *testing.T) {
	path := filepath.Join(t.TempDir(), "in.gff3")
	require.NoError(t, os.WriteFile(path, []byte(sample), 0644))

	lines, err := ReadFile(path)
	require.NoError(t, err)
	assert.Len(t, lines, 4)
}

func TestReadFile_Gzip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "in.gff3.gz")
	f, err := os.Create(path)
	require.NoError(t, err)
	zw := pgzip.NewWriter(f)
	_, err = zw.Write([]byte(sample))
	require.NoError(t, err)
	require.NoError(t, zw.Close())
	require.NoError(t, f.Close())

	lines, err := ReadFile(path)
	require.NoError(t, err)
	require.Len(t, lines, 4)
	assert.Equal(t, "chrXI\tSGD\tgene\t1\t4\t.\t+\t.\tID=GENE1", lines[1])
}

func TestReadFile_Missing(t *testing.T) {
	_, err := ReadFile(filepath.Join(t.TempDir(), "absent.gff3"))
	assert.Error(t, err)
}

func TestCreate(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "out.xml")
	w, err := Create(path)
	require.NoError(t, err)
	_, err = w.Write([]byte("<rdf/>"))
	require.NoError(t, err)
	require.NoError(t, w.Close())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "<rdf/>", string(data))

	stdout, err := Create("-")
	require.NoError(t, err)
	assert.NoError(t, stdout.Close())
}

func TestOutputPath(t *testing.T) {
	tests := []struct {
		in, ext, want string
	}{
		{"chr11.gff3", ".xml", "chr11.xml"},
		{"dir/chr11.gff", ".ttl", "dir/chr11.ttl"},
		{"chr11.gff3.gz", ".jsonld", "chr11.jsonld"},
		{"notes.txt", ".xml", "notes.txt.xml"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, OutputPath(tt.in, tt.ext), tt.in)
	}
}
