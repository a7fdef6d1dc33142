package pipelines

import (
	"bufio"
	"fmt"
	"os"
	"path"
	"strings"

	sp "github.com/scipipe/scipipe"
)

// ENADownload is the set of download commands for one SRA accession, parsed
// from an ENA browser script.
type ENADownload struct {
	Accession string
	Commands  []string // wget invocations, verbatim from the script
	Files     []string // fastq file names the commands produce
}

// ParseENAScript reads the download script the ENA browser generates for a
// bioproject and groups its wget commands by accession. Accession order
// follows first appearance in the script.
func ParseENAScript(scriptPath string) ([]ENADownload, error) {
	f, err := os.Open(scriptPath)
	if err != nil {
		return nil, fmt.Errorf("sra: cannot open ENA script: %w", err)
	}
	defer f.Close()

	var order []string
	byAcc := make(map[string]*ENADownload)

	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if !strings.HasPrefix(line, "wget") {
			continue
		}
		fields := strings.Fields(line)
		url := fields[len(fields)-1]
		file := path.Base(url)
		acc := accessionOf(file)
		if acc == "" {
			return nil, fmt.Errorf("sra: cannot derive accession from %q", url)
		}
		dl, ok := byAcc[acc]
		if !ok {
			dl = &ENADownload{Accession: acc}
			byAcc[acc] = dl
			order = append(order, acc)
		}
		dl.Commands = append(dl.Commands, line)
		dl.Files = append(dl.Files, file)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("sra: reading ENA script: %w", err)
	}
	if len(order) == 0 {
		return nil, fmt.Errorf("sra: no wget commands in %s", scriptPath)
	}

	out := make([]ENADownload, len(order))
	for i, acc := range order {
		out[i] = *byAcc[acc]
	}
	return out, nil
}

// accessionOf strips the read-end and extension parts of an ENA fastq name,
// e.g. SRR1234567_1.fastq.gz -> SRR1234567.
func accessionOf(file string) string {
	acc := file
	if i := strings.IndexAny(acc, "_."); i > 0 {
		acc = acc[:i]
	}
	return acc
}

// SRA builds the download workflow: one process per accession fetching its
// fastq files into an accession-named subdirectory, then an md5 record of
// each download under check_sums/ and a verification of the downloaded files
// against it. Downloads need internet access, so run this on a login node.
func SRA(script string, maxTasks int) (*sp.Workflow, error) {
	downloads, err := ParseENAScript(script)
	if err != nil {
		return nil, err
	}

	wf := sp.NewWorkflow("sra", maxTasks)
	for _, dl := range downloads {
		acc := dl.Accession
		statement := fmt.Sprintf("mkdir -p %s && cd %s && %s && cd .. && echo downloaded > {o:done}",
			acc, acc, strings.Join(dl.Commands, " && "))
		fetch := wf.NewProc("ena_"+acc, statement)
		fetch.SetOut("done", acc+"/download.done")

		md5 := wf.NewProc("md5_"+acc,
			fmt.Sprintf("mkdir -p check_sums && md5sum %s/*.gz > {o:md5} # {i:done}", acc))
		md5.In("done").From(fetch.Out("done"))
		md5.SetOut("md5", "check_sums/"+acc+".md5")

		// a failed check must not kill the run, failures are collected
		// into failed_check_sums.txt afterwards
		verify := wf.NewProc("verify_md5_"+acc,
			"md5sum -c {i:md5} > {o:out} 2>&1 || true")
		verify.In("md5").From(md5.Out("md5"))
		verify.SetOut("out", "check_sums/"+acc+".check.out")
	}
	return wf, nil
}

// WriteFailedChecksums reads the merged md5 check report and writes every
// line that is not an OK check to failedFile, removing a stale failedFile
// when all checks passed. The failed lines are returned for logging.
func WriteFailedChecksums(reportFile, failedFile string) ([]string, error) {
	data, err := os.ReadFile(reportFile)
	if err != nil {
		return nil, fmt.Errorf("sra: reading check report: %w", err)
	}
	var failed []string
	for _, line := range strings.Split(string(data), "\n") {
		line = strings.TrimSpace(line)
		if line == "" || strings.HasSuffix(line, ": OK") {
			continue
		}
		failed = append(failed, line)
	}
	if len(failed) == 0 {
		if err := os.Remove(failedFile); err != nil && !os.IsNotExist(err) {
			return nil, fmt.Errorf("sra: %w", err)
		}
		return nil, nil
	}
	if err := os.WriteFile(failedFile, []byte(strings.Join(failed, "\n")+"\n"), 0644); err != nil {
		return failed, fmt.Errorf("sra: writing %s: %w", failedFile, err)
	}
	return failed, nil
}
