package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"time"

	"github.com/spf13/cobra"

	"github.com/Bibek021/dental-one-sub000/internal/domain/scheduling"
)

type sampleOptions struct {
	seed uint64
	now  string
}

func (o sampleOptions) clock() (scheduling.Clock, error) {
	if o.now == "" {
		return scheduling.SystemClock{}, nil
	}
	ts, err := time.Parse(time.RFC3339, o.now)
	if err != nil {
		return nil, fmt.Errorf("--now must be RFC3339: %w", err)
	}
	return scheduling.FixedClock(ts), nil
}

func (o sampleOptions) service() (*scheduling.Service, error) {
	clock, err := o.clock()
	if err != nil {
		return nil, err
	}
	dir := scheduling.DemoDirectory()
	svc := scheduling.NewService(scheduling.NewStore(nil), dir, dir.Roster(), clock)
	svc.Regenerate(context.Background(), o.seed)
	return svc, nil
}

func (o *sampleOptions) bind(cmd *cobra.Command) {
	cmd.Flags().Uint64Var(&o.seed, "seed", 1, "generator seed")
	cmd.Flags().StringVar(&o.now, "now", "", "current time as RFC3339 (default: wall clock)")
}

func writeJSON(w io.Writer, v interface{}) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func generateCmd() *cobra.Command {
	var opts sampleOptions
	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Print a generated two-week appointment list as JSON",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runGenerate(cmd.OutOrStdout(), opts)
		},
	}
	opts.bind(cmd)
	return cmd
}

func runGenerate(w io.Writer, opts sampleOptions) error {
	svc, err := opts.service()
	if err != nil {
		return err
	}
	cursor := scheduling.NewCursor(svc, scheduling.ViewMonth)
	return writeJSON(w, svc.List(context.Background(), cursor, scheduling.FilterState{Status: scheduling.StatusAll}))
}

type calendarOptions struct {
	sampleOptions
	view   string
	date   string
	status string
	query  string
}

func calendarCmd() *cobra.Command {
	var opts calendarOptions
	cmd := &cobra.Command{
		Use:   "calendar",
		Short: "Print a bucketed calendar view of generated appointments as JSON",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCalendar(cmd.OutOrStdout(), opts)
		},
	}
	opts.bind(cmd)
	cmd.Flags().StringVar(&opts.view, "view", "week", "day, week or month")
	cmd.Flags().StringVar(&opts.date, "date", "", "cursor date as 2006-01-02 (default: today)")
	cmd.Flags().StringVar(&opts.status, "status", "all", "status filter")
	cmd.Flags().StringVar(&opts.query, "q", "", "search text")
	return cmd
}

type calendarOutput struct {
	Cursor   scheduling.Cursor       `json:"cursor"`
	Calendar scheduling.CalendarView `json:"calendar"`
}

func runCalendar(w io.Writer, opts calendarOptions) error {
	mode, err := scheduling.ParseViewMode(opts.view)
	if err != nil {
		return err
	}
	status, err := scheduling.ParseStatusFilter(opts.status)
	if err != nil {
		return err
	}
	svc, err := opts.service()
	if err != nil {
		return err
	}

	cursor := scheduling.NewCursor(svc, mode)
	if opts.date != "" {
		d, err := time.ParseInLocation("2006-01-02", opts.date, cursor.Date.Location())
		if err != nil {
			return fmt.Errorf("--date must be YYYY-MM-DD: %w", err)
		}
		cursor.Date = d
	}

	state := scheduling.FilterState{Status: status, Query: opts.query}
	return writeJSON(w, calendarOutput{
		Cursor:   cursor,
		Calendar: svc.Calendar(context.Background(), cursor, state),
	})
}
