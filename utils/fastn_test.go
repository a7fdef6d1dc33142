package utils

import (
	"compress/gzip"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeGzip(t *testing.T, path, content string) {
	t.Helper()
	f, err := os.Create(path)
	require.NoError(t, err)
	gz := gzip.NewWriter(f)
	_, err = gz.Write([]byte(content))
	require.NoError(t, err)
	require.NoError(t, gz.Close())
	require.NoError(t, f.Close())
}

func TestFastns(t *testing.T) {
	dir := t.TempDir()
	for _, name := range []string{
		"test.fastq.1.gz", "test.fastq.2.gz", "test.fastq.3.gz",
		"other.fasta.1.gz", "notes.txt",
	} {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte("x"), 0644))
	}

	got, err := Fastns(dir)
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{
		filepath.Join(dir, "test.fastq.1.gz"),
		filepath.Join(dir, "other.fasta.1.gz"),
	}, got[1])
	assert.Empty(t, got[2], "second ends only returned when requested")

	got, err = Fastns(dir, 1, 2)
	require.NoError(t, err)
	assert.Equal(t, []string{filepath.Join(dir, "test.fastq.2.gz")}, got[2])

	got, err = Fastns(dir, 1, 2, 3)
	require.NoError(t, err)
	assert.Equal(t, []string{filepath.Join(dir, "test.fastq.3.gz")}, got[3])
}

func TestFastnsInvalidEnds(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "test.fastq.1.gz"), []byte("x"), 0644))

	_, err := Fastns(dir, 2)
	require.Error(t, err)
	_, err = Fastns(dir, 1, 3)
	require.Error(t, err)
}

func TestFastnsEmptyDir(t *testing.T) {
	_, err := Fastns(t.TempDir())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no fastq or fasta files")
}

func TestMetaFastnPaired(t *testing.T) {
	dir := t.TempDir()
	fq1 := filepath.Join(dir, "sample.fastq.1.gz")
	fq2 := filepath.Join(dir, "sample.fastq.2.gz")
	writeGzip(t, fq1, "@r1\nACGT\n+\nIIII\n")
	writeGzip(t, fq2, "@r1\nTTTT\n+\nIIII\n")

	m, err := NewMetaFastn(fq1)
	require.NoError(t, err)
	assert.True(t, m.Paired())
	assert.Equal(t, fq2, m.Fastn2)
	assert.Empty(t, m.Fastn3)
	assert.Equal(t, "fastq", m.Format)
	assert.Equal(t, "sample", m.Prefix)
	assert.Equal(t, ".fastq.1.gz", m.Suffix1)
	assert.Equal(t, ".fastq.2.gz", m.Suffix2)
}

func TestMetaFastnSingletons(t *testing.T) {
	dir := t.TempDir()
	fq1 := filepath.Join(dir, "sample.fastq.1.gz")
	fq2 := filepath.Join(dir, "sample.fastq.2.gz")
	fq3 := filepath.Join(dir, "sample.fastq.3.gz")
	writeGzip(t, fq1, "@r1\nACGT\n+\nIIII\n")
	writeGzip(t, fq2, "@r1\nTTTT\n+\nIIII\n")
	writeGzip(t, fq3, "@r1\nGGGG\n+\nIIII\n")

	m, err := NewMetaFastn(fq1)
	require.NoError(t, err)
	assert.Equal(t, fq3, m.Fastn3)
	assert.Equal(t, ".fastq.3.gz", m.Suffix3)
}

func TestMetaFastnMissingMate(t *testing.T) {
	dir := t.TempDir()
	fq1 := filepath.Join(dir, "sample.fastq.1.gz")
	writeGzip(t, fq1, "@r1\nACGT\n+\nIIII\n")

	_, err := NewMetaFastn(fq1)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "read 2")
}

func TestMetaFastnSingleEndFasta(t *testing.T) {
	dir := t.TempDir()
	fa := filepath.Join(dir, "contigs.fasta.gz")
	writeGzip(t, fa, ">c1\nACGT\n")

	m, err := NewMetaFastn(fa)
	require.NoError(t, err)
	assert.False(t, m.Paired())
	assert.Equal(t, "fasta", m.Format)
	assert.Equal(t, "contigs", m.Prefix)
	assert.Equal(t, ".fasta.gz", m.Suffix1)
}

func TestMetaFastnBadHeader(t *testing.T) {
	dir := t.TempDir()
	fq := filepath.Join(dir, "sample.fastq.gz")
	writeGzip(t, fq, ">not_a_fastq_header\nACGT\n")

	_, err := NewMetaFastn(fq)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid fastq header")
}
