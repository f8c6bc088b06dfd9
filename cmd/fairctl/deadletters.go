package main

import (
	"github.com/spf13/cobra"

	"github.com/osse101/ProvablyFair_Go/internal/config"
	"github.com/osse101/ProvablyFair_Go/internal/event"
)

type deadLetterSummary struct {
	File    string                  `json:"file"`
	Count   int                     `json:"count"`
	ByType  map[event.Type]int      `json:"byType"`
	Entries []event.DeadLetterEntry `json:"entries,omitempty"`
}

func newDeadLettersCmd() *cobra.Command {
	var (
		file    string
		summary bool
	)

	cmd := &cobra.Command{
		Use:   "dead-letters",
		Short: "List events that exhausted their delivery retries",
		RunE: func(cmd *cobra.Command, _ []string) error {
			entries, err := event.ReadDeadLetters(file)
			if err != nil {
				return err
			}

			out := deadLetterSummary{File: file, Count: len(entries), ByType: map[event.Type]int{}}
			for _, e := range entries {
				out.ByType[e.EventType]++
			}
			if !summary {
				out.Entries = entries
			}
			return writeJSON(cmd.OutOrStdout(), out)
		},
	}

	cmd.Flags().StringVar(&file, "file", config.DefaultEventDeadLetterPath, "dead-letter JSONL file")
	cmd.Flags().BoolVar(&summary, "summary", false, "print counts only")
	return cmd
}
