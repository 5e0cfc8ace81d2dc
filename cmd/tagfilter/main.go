// Command tagfilter prints the api_ids of exported events carrying a tag.
package main

import (
	"flag"
	"fmt"
	"io"
	"os"

	"attendeelist/config"
	"attendeelist/internal/adapters/metrics"
	"attendeelist/internal/repository/jsonfile"
	"attendeelist/internal/services"
)

func main() {
	if err := run(os.Args[1:], os.Stdout); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run(args []string, stdout io.Writer) error {
	fs := flag.NewFlagSet("tagfilter", flag.ContinueOnError)
	configPath := fs.String("config", "", "YAML config file (default: $CONFIG_FILE)")
	input := fs.String("input", "", "Event export JSON path (default: $EVENTS_FILE or "+config.DefaultEventsFile+")")
	tag := fs.String("tag", "", "Tag name to match, case-sensitive (default: $TARGET_TAG or "+config.DefaultTargetTag+")")
	out := fs.String("out", "", "Optional path to also write the api_ids, one per line")
	if err := fs.Parse(args); err != nil {
		return err
	}

	cfg, err := config.Load(*configPath)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	if *input == "" {
		*input = cfg.Files.Events
	}
	if *tag == "" {
		*tag = cfg.Filter.TargetTag
	}

	logger := config.NewLogger("tagfilter")
	svc := services.NewTagFilterService(jsonfile.NewEventExportReader(), logger)

	ids, stats, err := svc.ExtractAPIIDs(*input, *tag)
	if err != nil {
		return err
	}

	fmt.Fprintln(stdout, "\nFiltered api_id results:")
	for _, id := range ids {
		fmt.Fprintln(stdout, id)
	}

	if *out != "" {
		if err := (jsonfile.APIIDList{}).Write(*out, ids); err != nil {
			return err
		}
		logger.Info("api_ids written", "path", *out, "count", len(ids))
	}

	if err := metrics.NewRecorder(cfg.Metrics.TextfileDir, metrics.PipelineTagFilter).RecordFilter(stats); err != nil {
		logger.Error("failed to record metrics", "error", err)
	}
	return nil
}
