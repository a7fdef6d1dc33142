// Package pipelines builds the toolkit's batch pipelines as scipipe
// workflows. Constructors only declare processes and their dependencies;
// scheduling, output file tracking and resuming of incomplete tasks are
// scipipe's job, and the computational work happens in the external tools
// each process shells out to.
package pipelines

import (
	"fmt"
	"path/filepath"

	sp "github.com/scipipe/scipipe"
	spcomp "github.com/scipipe/scipipe/components"
)

// FastQC builds the quality-control workflow: FastQC over every read file in
// indir, then a single MultiQC report across all of them.
func FastQC(indir string, maxTasks int) (*sp.Workflow, error) {
	reads, err := filepath.Glob(filepath.Join(indir, "*.fastq.*gz"))
	if err != nil {
		return nil, fmt.Errorf("fastqc: %w", err)
	}
	if len(reads) == 0 {
		return nil, fmt.Errorf("fastqc: no *.fastq.*gz files in %s", indir)
	}

	wf := sp.NewWorkflow("fastqc", maxTasks)
	done := spcomp.NewStreamToSubStream(wf, "fastqc_done")
	for _, fq := range reads {
		base := filepath.Base(fq)
		src := spcomp.NewFileSource(wf, "reads_"+base, fq)
		fqc := wf.NewProc("fastqc_"+base,
			"mkdir -p fastqc.dir && fastqc --extract --outdir=fastqc.dir {i:reads} && echo fastqc_done > {o:done}")
		fqc.In("reads").From(src.Out())
		fqc.SetOut("done", "fastqc.dir/"+base+".done")
		done.In().From(fqc.Out("done"))
	}

	multiqc := wf.NewProc("multiqc",
		"multiqc -f -s fastqc.dir -o $(o={o:report}; echo ${o%/multiqc_report.html}) # {i:done|join: }")
	multiqc.In("done").From(done.OutSubStream())
	multiqc.SetOut("report", "multiqc/multiqc_report.html")
	return wf, nil
}
