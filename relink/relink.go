// Package relink creates renamed symbolic links to raw sequencing files.
//
// Sequencers emit files named after long run barcodes. Given a two-column
// mapping file of barcode to sample ID, Run symlinks every file in an input
// directory matching a suffix into an output directory under the sample ID,
// and records each applied mapping in a read map log for audit.
package relink

import (
	"bufio"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// CollisionPolicy controls what happens when a link target already exists.
type CollisionPolicy string

const (
	CollisionError     CollisionPolicy = "error"
	CollisionSkip      CollisionPolicy = "skip"
	CollisionOverwrite CollisionPolicy = "overwrite"
)

// DefaultLogFile is the read map written into the output directory when no
// log name is given.
const DefaultLogFile = "read.map"

// InputError reports a bad argument or an unusable path.
type InputError struct {
	Path   string
	Reason string
}

func (e *InputError) Error() string {
	return fmt.Sprintf("relink: %s: %s", e.Path, e.Reason)
}

// MappingError reports a malformed row in the mapping file.
type MappingError struct {
	Path   string
	Line   int
	Reason string
}

func (e *MappingError) Error() string {
	return fmt.Sprintf("relink: mapping %s line %d: %s", e.Path, e.Line, e.Reason)
}

// LinkExistsError reports a collision at a link path under the error policy.
type LinkExistsError struct {
	Path string
}

func (e *LinkExistsError) Error() string {
	return fmt.Sprintf("relink: %s already exists, remove it or rerun with --on-collision=skip|overwrite", e.Path)
}

// Pair is one mapping file row.
type Pair struct {
	OldID string
	NewID string
}

// Mapping is the ordered barcode to sample ID table loaded from a mapping
// file. Duplicate barcodes keep their first position but take the last ID.
type Mapping struct {
	pairs []Pair
	index map[string]int
}

// LoadMapping reads a two-column tab-separated mapping file. A UTF-8 BOM on
// the first line is tolerated since mapping files are often exported from
// spreadsheets. Rows that do not split into exactly two fields are rejected.
func LoadMapping(path string) (*Mapping, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, &InputError{Path: path, Reason: fmt.Sprintf("cannot open mapping file: %v", err)}
	}
	defer f.Close()

	m := &Mapping{index: make(map[string]int)}
	scanner := bufio.NewScanner(f)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := scanner.Text()
		if lineNo == 1 {
			line = strings.TrimPrefix(line, "\ufeff")
		}
		if strings.TrimSpace(line) == "" {
			continue
		}
		fields := strings.Split(line, "\t")
		if len(fields) != 2 {
			return nil, &MappingError{Path: path, Line: lineNo,
				Reason: fmt.Sprintf("expected 2 tab-separated fields, got %d", len(fields))}
		}
		oldID, newID := strings.TrimSpace(fields[0]), strings.TrimSpace(fields[1])
		if oldID == "" || newID == "" {
			return nil, &MappingError{Path: path, Line: lineNo, Reason: "empty identifier"}
		}
		if i, ok := m.index[oldID]; ok {
			m.pairs[i].NewID = newID
			continue
		}
		m.index[oldID] = len(m.pairs)
		m.pairs = append(m.pairs, Pair{OldID: oldID, NewID: newID})
	}
	if err := scanner.Err(); err != nil {
		return nil, &InputError{Path: path, Reason: fmt.Sprintf("reading mapping file: %v", err)}
	}
	return m, nil
}

// Len returns the number of mapping rows.
func (m *Mapping) Len() int { return len(m.pairs) }

// Lookup returns the sample ID for an exact barcode.
func (m *Mapping) Lookup(oldID string) (string, bool) {
	i, ok := m.index[oldID]
	if !ok {
		return "", false
	}
	return m.pairs[i].NewID, true
}

// Match finds the mapping row for a candidate filename. An exact match on the
// filename prefix (name minus suffix) wins; otherwise the first row in
// mapping order whose barcode occurs in the name applies.
func (m *Mapping) Match(name, suffix string) (Pair, bool) {
	prefix := strings.TrimSuffix(name, suffix)
	if i, ok := m.index[prefix]; ok {
		return m.pairs[i], true
	}
	for _, p := range m.pairs {
		if strings.Contains(name, p.OldID) {
			return p, true
		}
	}
	return Pair{}, false
}

// Options configure a Run.
type Options struct {
	InDir        string
	Suffix       string
	TargetSuffix string // defaults to Suffix
	OutDir       string
	MappingFile  string
	LogFile      string // relative paths resolve inside OutDir
	OnCollision  CollisionPolicy
}

// Record is one applied rename.
type Record struct {
	OldID  string
	NewID  string
	Source string
	Target string
}

// Result reports what a Run did. Unmatched lists candidate files that had no
// mapping row; they are skipped, not errors.
type Result struct {
	Records   []Record
	Unmatched []string
}

// Run enumerates candidates, creates the renamed symlinks and writes the read
// map. The read map is rewritten on every run and covers each mapping with a
// link in the output directory, including links kept by the skip policy.
// Links created before a failure remain; there is no rollback.
func Run(opts Options) (*Result, error) {
	if opts.Suffix == "" {
		return nil, &InputError{Path: opts.InDir, Reason: "suffix must not be empty"}
	}
	if opts.TargetSuffix == "" {
		opts.TargetSuffix = opts.Suffix
	}
	if opts.LogFile == "" {
		opts.LogFile = DefaultLogFile
	}
	switch opts.OnCollision {
	case "":
		opts.OnCollision = CollisionError
	case CollisionError, CollisionSkip, CollisionOverwrite:
	default:
		return nil, &InputError{Path: string(opts.OnCollision), Reason: "unknown collision policy"}
	}

	info, err := os.Stat(opts.InDir)
	if err != nil {
		return nil, &InputError{Path: opts.InDir, Reason: fmt.Sprintf("cannot read input directory: %v", err)}
	}
	if !info.IsDir() {
		return nil, &InputError{Path: opts.InDir, Reason: "not a directory"}
	}

	mapping, err := LoadMapping(opts.MappingFile)
	if err != nil {
		return nil, err
	}

	entries, err := os.ReadDir(opts.InDir)
	if err != nil {
		return nil, &InputError{Path: opts.InDir, Reason: fmt.Sprintf("cannot list input directory: %v", err)}
	}
	var candidates []string
	for _, e := range entries {
		if e.IsDir() || !strings.HasSuffix(e.Name(), opts.Suffix) {
			continue
		}
		candidates = append(candidates, e.Name())
	}
	// directory order is not stable across filesystems, sort for a
	// deterministic read map
	sort.Strings(candidates)

	if err := os.MkdirAll(opts.OutDir, 0755); err != nil {
		return nil, &InputError{Path: opts.OutDir, Reason: fmt.Sprintf("cannot create output directory: %v", err)}
	}

	logPath := opts.LogFile
	if !filepath.IsAbs(logPath) {
		logPath = filepath.Join(opts.OutDir, logPath)
	}
	logFile, err := os.Create(logPath)
	if err != nil {
		return nil, &InputError{Path: logPath, Reason: fmt.Sprintf("cannot create log file: %v", err)}
	}
	defer logFile.Close()

	res := &Result{}
	for _, name := range candidates {
		pair, ok := mapping.Match(name, opts.Suffix)
		if !ok {
			slog.Warn("no sample ID in mapping file, skipping", "file", name)
			res.Unmatched = append(res.Unmatched, name)
			continue
		}

		base := strings.TrimSuffix(name, opts.Suffix)
		newBase := strings.Replace(base, pair.OldID, pair.NewID, 1)
		target := filepath.Join(opts.OutDir, newBase+opts.TargetSuffix)

		source, err := filepath.Abs(filepath.Join(opts.InDir, name))
		if err != nil {
			return res, &InputError{Path: name, Reason: fmt.Sprintf("cannot resolve source path: %v", err)}
		}

		if _, err := os.Lstat(target); err == nil {
			switch opts.OnCollision {
			case CollisionSkip:
				// the link stays in place, so its mapping still
				// belongs in the read map
				slog.Info("link exists, skipping", "target", target)
				if _, err := fmt.Fprintf(logFile, "%s\t%s\n", pair.OldID, pair.NewID); err != nil {
					return res, &InputError{Path: logPath, Reason: fmt.Sprintf("cannot write log: %v", err)}
				}
				continue
			case CollisionOverwrite:
				if err := os.Remove(target); err != nil {
					return res, &InputError{Path: target, Reason: fmt.Sprintf("cannot replace existing link: %v", err)}
				}
			default:
				return res, &LinkExistsError{Path: target}
			}
		}
		if err := os.Symlink(source, target); err != nil {
			return res, &InputError{Path: target, Reason: fmt.Sprintf("cannot create symlink: %v", err)}
		}
		if _, err := fmt.Fprintf(logFile, "%s\t%s\n", pair.OldID, pair.NewID); err != nil {
			return res, &InputError{Path: logPath, Reason: fmt.Sprintf("cannot write log: %v", err)}
		}
		res.Records = append(res.Records, Record{
			OldID:  pair.OldID,
			NewID:  pair.NewID,
			Source: source,
			Target: target,
		})
	}
	return res, nil
}

// Relink symlinks dst to the absolute path of src, replacing whatever is
// already at dst.
func Relink(src, dst string) error {
	abs, err := filepath.Abs(src)
	if err != nil {
		return err
	}
	err = os.Symlink(abs, dst)
	if err != nil && os.IsExist(err) {
		if err := os.Remove(dst); err != nil {
			return err
		}
		return os.Symlink(abs, dst)
	}
	return err
}
