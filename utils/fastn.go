package utils

import (
	"bufio"
	"compress/gzip"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"
)

var fastnRe = regexp.MustCompile(`\.fast[aq]\.([123])\.gz$`)

// Fastns finds the read files in dir, bucketed by read end. Paired files
// follow the .fastq.1.gz / .fastq.2.gz convention, singletons .fastq.3.gz.
// ends must be 1; 1,2; or 1,2,3 and defaults to just the first ends. No
// pairedness check is performed here; see MetaFastn.
func Fastns(dir string, ends ...int) (map[int][]string, error) {
	if len(ends) == 0 {
		ends = []int{1}
	}
	want := make(map[int]bool, len(ends))
	for _, e := range ends {
		want[e] = true
	}
	valid := len(want) == len(ends) && want[1] &&
		(len(ends) == 1 || (len(ends) == 2 && want[2]) || (len(ends) == 3 && want[2] && want[3]))
	if !valid {
		return nil, fmt.Errorf("fastns: request ends as 1; 1,2; or 1,2,3 (got %v)", ends)
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("fastns: %w", err)
	}
	found := make(map[int][]string)
	any := false
	for _, e := range entries {
		m := fastnRe.FindStringSubmatch(e.Name())
		if m == nil {
			continue
		}
		any = true
		end := int(m[1][0] - '0')
		if want[end] {
			found[end] = append(found[end], filepath.Join(dir, e.Name()))
		}
	}
	if !any {
		return nil, fmt.Errorf("fastns: no fastq or fasta files in %s; expected names like"+
			" sample.fastq.1.gz / sample.fastq.2.gz for paired ends", dir)
	}
	return found, nil
}

// MetaFastn describes one sequencing sample from its first-end read file:
// format, pairedness, singleton presence and the prefix/suffix split of the
// name. It reads only the file header.
type MetaFastn struct {
	Fastn1 string
	Fastn2 string // empty when single end
	Fastn3 string // empty when no singletons

	Format  string // "fasta" or "fastq"
	Prefix  string
	Suffix1 string
	Suffix2 string
	Suffix3 string
}

// NewMetaFastn inspects fastn1 and resolves its mates. A .1.gz file without
// its .2.gz mate is an error; a .3.gz singleton file is picked up only when
// present and non-empty.
func NewMetaFastn(fastn1 string) (*MetaFastn, error) {
	m := &MetaFastn{Fastn1: fastn1}

	head, err := readHeaderLine(fastn1)
	if err != nil {
		return nil, fmt.Errorf("metafastn: cannot open %s: %w", fastn1, err)
	}

	switch {
	case strings.Contains(fastn1, ".fasta"):
		m.Format = "fasta"
	case strings.Contains(fastn1, ".fastq"):
		m.Format = "fastq"
	default:
		return nil, fmt.Errorf("metafastn: %s is neither fasta nor fastq", fastn1)
	}
	wantHeader := byte('@')
	if m.Format == "fasta" {
		wantHeader = '>'
	}
	if len(head) == 0 || head[0] != wantHeader {
		return nil, fmt.Errorf("metafastn: %s: invalid %s header on first line", fastn1, m.Format)
	}

	if strings.HasSuffix(fastn1, ".1.gz") {
		mate := strings.TrimSuffix(fastn1, ".1.gz") + ".2.gz"
		if _, err := os.Stat(mate); err != nil {
			return nil, fmt.Errorf("metafastn: cannot find read 2 file %s for %s", mate, fastn1)
		}
		m.Fastn2 = mate
		m.Suffix1 = "." + m.Format + ".1.gz"
		m.Suffix2 = "." + m.Format + ".2.gz"

		singleton := strings.TrimSuffix(fastn1, ".1.gz") + ".3.gz"
		if st, err := os.Stat(singleton); err == nil && st.Size() > 0 {
			m.Fastn3 = singleton
			m.Suffix3 = "." + m.Format + ".3.gz"
		}
	} else {
		if !strings.HasSuffix(fastn1, "."+m.Format+".gz") {
			return nil, fmt.Errorf("metafastn: single-end files must be named *.%s.gz (got %s)", m.Format, fastn1)
		}
		m.Suffix1 = "." + m.Format + ".gz"
	}
	m.Prefix = strings.TrimSuffix(filepath.Base(m.Fastn1), m.Suffix1)
	return m, nil
}

// Paired reports whether the sample has a second-end file.
func (m *MetaFastn) Paired() bool { return m.Fastn2 != "" }

func readHeaderLine(path string) (string, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", err
	}
	defer f.Close()

	var r *bufio.Reader
	if strings.HasSuffix(path, ".gz") {
		gz, err := gzip.NewReader(f)
		if err != nil {
			return "", err
		}
		defer gz.Close()
		r = bufio.NewReader(gz)
	} else {
		r = bufio.NewReader(f)
	}
	line, err := r.ReadString('\n')
	if err != nil && line == "" {
		return "", err
	}
	return strings.TrimRight(line, "\n"), nil
}
