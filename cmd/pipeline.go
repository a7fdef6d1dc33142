package cmd

import (
	"fmt"
	"log/slog"
	"os"

	sp "github.com/scipipe/scipipe"
)

// initRunLog appends JSON records to the pipeline's run log and makes it the
// default slog destination, so a rerun's history sits next to its outputs.
func initRunLog(name string) (*os.File, error) {
	f, err := os.OpenFile(name, os.O_RDWR|os.O_CREATE|os.O_APPEND, 0666)
	if err != nil {
		return nil, err
	}
	slog.SetDefault(slog.New(slog.NewJSONHandler(f, nil)))
	return f, nil
}

// runWorkflow either plots the workflow graph and stops, or runs it.
func runWorkflow(wf *sp.Workflow, dotFile string) {
	if dotFile != "" {
		wf.PlotGraph(dotFile)
		fmt.Println("Wrote workflow graph to:", dotFile)
		return
	}
	wf.Run()
}
