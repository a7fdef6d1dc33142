package pipelines

import (
	"fmt"
	"path/filepath"
	"strings"
	"time"

	sp "github.com/scipipe/scipipe"
	spcomp "github.com/scipipe/scipipe/components"
	"golang.org/x/exp/rand"

	"github.com/OxfordCMS/ocmstoolkit/utils"
)

// Subsample builds the workflow that subsamples every read file in the
// configured input directory to cfg.Depth reads with seqtk. All files of one
// run share a seed so paired ends stay in sync; the seed actually used is
// returned for the run log.
func Subsample(cfg utils.Config, maxTasks int) (*sp.Workflow, int, error) {
	reads, err := filepath.Glob(filepath.Join(cfg.InputDir, "*.fastq.*gz"))
	if err != nil {
		return nil, 0, fmt.Errorf("subsample: %w", err)
	}
	if len(reads) == 0 {
		return nil, 0, fmt.Errorf("subsample: no *.fastq.*gz files in %s", cfg.InputDir)
	}

	seed := cfg.Seed
	if seed == 0 {
		rng := rand.New(rand.NewSource(uint64(time.Now().UnixNano())))
		seed = rng.Intn(1<<30) + 1
	}

	wf := sp.NewWorkflow("subsample", maxTasks)
	for _, fq := range reads {
		base := filepath.Base(fq)
		src := spcomp.NewFileSource(wf, "reads_"+base, fq)
		sub := wf.NewProc("subsample_"+base, fmt.Sprintf(
			"mkdir -p subsampled.dir && seqtk sample -s%d {i:reads} %d | gzip -c > {o:sub}",
			seed, cfg.Depth))
		sub.In("reads").From(src.Out())
		sub.SetOut("sub", "subsampled.dir/"+strings.Replace(base, ".fastq", "_subsampled.fastq", 1))
	}
	return wf, seed, nil
}
