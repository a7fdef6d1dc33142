package pipelines

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	sp "github.com/scipipe/scipipe"
	spcomp "github.com/scipipe/scipipe/components"

	"github.com/OxfordCMS/ocmstoolkit/utils"
)

// Zstd builds the recompression workflow. For every .gz file in the input
// directory: record the md5 of the uncompressed content, recompress with
// zstd, then decompress the .zst and check it against the recorded md5.
// zstd gives a noticeably better ratio than gzip on raw fastq.
func Zstd(cfg utils.Config, maxTasks int) (*sp.Workflow, error) {
	lvl := cfg.Zstd.CompressionLvl
	if lvl < 1 || lvl > 22 {
		return nil, fmt.Errorf("zstd: invalid compression_lvl %d in pipeline.yml, must be between 1 - 22", lvl)
	}
	ultra := ""
	if lvl >= 20 {
		ultra = " --ultra"
	}

	files, err := filepath.Glob(filepath.Join(cfg.InputDir, "*.gz"))
	if err != nil {
		return nil, fmt.Errorf("zstd: %w", err)
	}
	if len(files) == 0 {
		return nil, fmt.Errorf("zstd: no .gz files in %s", cfg.InputDir)
	}

	wf := sp.NewWorkflow("zstd_compression", maxTasks)
	for _, gz := range files {
		name := strings.TrimSuffix(filepath.Base(gz), ".gz")
		src := spcomp.NewFileSource(wf, "gz_"+name, gz)

		md5 := wf.NewProc("input_md5_"+name,
			"mkdir -p 01_input_md5sum.dir && zstd --force --decompress --keep --stdout {i:gz} | md5sum > {o:md5}")
		md5.In("gz").From(src.Out())
		md5.SetOut("md5", "01_input_md5sum.dir/"+name+".md5")

		compress := wf.NewProc("zstd_compress_"+name, fmt.Sprintf(
			"mkdir -p 02_compressed.dir && zcat {i:gz} | zstd --compress -%d%s --threads=%d -o {o:zst}",
			lvl, ultra, cfg.Zstd.Threads))
		compress.In("gz").From(src.Out())
		compress.SetOut("zst", "02_compressed.dir/"+name+".zst")

		check := wf.NewProc("check_md5_"+name,
			"mkdir -p 03_check_md5sum.dir && zstd --decompress --keep --stdout {i:zst} | md5sum -c {i:md5} > {o:out} 2>/dev/null")
		check.In("zst").From(compress.Out("zst"))
		check.In("md5").From(md5.Out("md5"))
		check.SetOut("out", "03_check_md5sum.dir/"+name+".md5sum.out")
	}
	return wf, nil
}

// SummariseMD5Checks reads the md5sum check outputs under checkDir and
// splits the sample names into passed and failed lists.
func SummariseMD5Checks(checkDir string) (success, fail []string, err error) {
	outs, err := filepath.Glob(filepath.Join(checkDir, "*.md5sum.out"))
	if err != nil {
		return nil, nil, fmt.Errorf("zstd: %w", err)
	}
	for _, out := range outs {
		sample := strings.TrimSuffix(filepath.Base(out), ".md5sum.out")
		if sample == "successful" || sample == "failed" {
			// summary files from a previous run
			continue
		}
		data, err := os.ReadFile(out)
		if err != nil {
			return nil, nil, fmt.Errorf("zstd: %w", err)
		}
		switch {
		case strings.Contains(string(data), "FAILED"):
			fail = append(fail, sample)
		case strings.Contains(string(data), "OK"):
			success = append(success, sample)
		}
	}
	return success, fail, nil
}

// WriteMD5Summary writes the passed-sample list into checkDir, plus a failed
// list when any check failed.
func WriteMD5Summary(checkDir string) error {
	success, fail, err := SummariseMD5Checks(checkDir)
	if err != nil {
		return err
	}
	okPath := filepath.Join(checkDir, "successful.md5sum.out")
	if err := os.WriteFile(okPath, []byte(strings.Join(success, "\n")), 0644); err != nil {
		return fmt.Errorf("zstd: %w", err)
	}
	if len(fail) > 0 {
		failPath := filepath.Join(checkDir, "failed.md5sum.out")
		if err := os.WriteFile(failPath, []byte(strings.Join(fail, "\n")), 0644); err != nil {
			return fmt.Errorf("zstd: %w", err)
		}
	}
	return nil
}
