package pipelines

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseENAScript(t *testing.T) {
	script := `#!/bin/bash
wget -nc ftp://ftp.sra.ebi.ac.uk/vol1/fastq/SRR123/004/SRR1234567/SRR1234567_1.fastq.gz
wget -nc ftp://ftp.sra.ebi.ac.uk/vol1/fastq/SRR123/004/SRR1234567/SRR1234567_2.fastq.gz

# a comment
wget -nc ftp://ftp.sra.ebi.ac.uk/vol1/fastq/SRR765/001/SRR7654321/SRR7654321.fastq.gz
`
	path := filepath.Join(t.TempDir(), "ena.sh")
	require.NoError(t, os.WriteFile(path, []byte(script), 0644))

	dls, err := ParseENAScript(path)
	require.NoError(t, err)
	require.Len(t, dls, 2)

	assert.Equal(t, "SRR1234567", dls[0].Accession)
	assert.Equal(t, []string{"SRR1234567_1.fastq.gz", "SRR1234567_2.fastq.gz"}, dls[0].Files)
	assert.Len(t, dls[0].Commands, 2)
	assert.Contains(t, dls[0].Commands[0], "SRR1234567_1.fastq.gz")

	assert.Equal(t, "SRR7654321", dls[1].Accession)
	assert.Equal(t, []string{"SRR7654321.fastq.gz"}, dls[1].Files)
}

func TestParseENAScriptNoCommands(t *testing.T) {
	path := filepath.Join(t.TempDir(), "ena.sh")
	require.NoError(t, os.WriteFile(path, []byte("#!/bin/bash\necho nothing\n"), 0644))

	_, err := ParseENAScript(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no wget commands")
}

func TestParseENAScriptMissingFile(t *testing.T) {
	_, err := ParseENAScript(filepath.Join(t.TempDir(), "missing.sh"))
	require.Error(t, err)
}

func TestWriteFailedChecksums(t *testing.T) {
	dir := t.TempDir()
	report := filepath.Join(dir, "report.txt")
	failedFile := filepath.Join(dir, "failed_check_sums.txt")
	content := "SRR1234567/SRR1234567_1.fastq.gz: OK\n" +
		"SRR1234567/SRR1234567_2.fastq.gz: FAILED\n" +
		"SRR7654321/SRR7654321.fastq.gz: OK\n"
	require.NoError(t, os.WriteFile(report, []byte(content), 0644))

	failed, err := WriteFailedChecksums(report, failedFile)
	require.NoError(t, err)
	assert.Equal(t, []string{"SRR1234567/SRR1234567_2.fastq.gz: FAILED"}, failed)

	data, err := os.ReadFile(failedFile)
	require.NoError(t, err)
	assert.Equal(t, "SRR1234567/SRR1234567_2.fastq.gz: FAILED\n", string(data))
}

func TestWriteFailedChecksumsAllPassed(t *testing.T) {
	dir := t.TempDir()
	report := filepath.Join(dir, "report.txt")
	failedFile := filepath.Join(dir, "failed_check_sums.txt")
	require.NoError(t, os.WriteFile(report, []byte("a.gz: OK\nb.gz: OK\n"), 0644))
	// leftover from an earlier run with failures
	require.NoError(t, os.WriteFile(failedFile, []byte("a.gz: FAILED\n"), 0644))

	failed, err := WriteFailedChecksums(report, failedFile)
	require.NoError(t, err)
	assert.Empty(t, failed)

	_, err = os.Stat(failedFile)
	assert.True(t, os.IsNotExist(err), "stale failure list is removed when all checks pass")
}

func TestWriteFailedChecksumsMissingReport(t *testing.T) {
	_, err := WriteFailedChecksums(filepath.Join(t.TempDir(), "report.txt"), "failed_check_sums.txt")
	require.Error(t, err)
}

func TestAccessionOf(t *testing.T) {
	assert.Equal(t, "SRR1234567", accessionOf("SRR1234567_1.fastq.gz"))
	assert.Equal(t, "SRR1234567", accessionOf("SRR1234567.fastq.gz"))
	assert.Equal(t, "ERR42", accessionOf("ERR42_2.fastq.gz"))
}
