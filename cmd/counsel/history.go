package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/stemsi/jinro-backend/internal/history"
	"github.com/stemsi/jinro-backend/internal/topic"
)

var (
	historyLimit int
	topicsLimit  int
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "List recent chat exchanges, newest first",
	RunE:  runHistory,
}

var topicsCmd = &cobra.Command{
	Use:   "topics",
	Short: "Rank the most asked-about topics in the chat history",
	RunE:  runTopics,
}

func init() {
	historyCmd.Flags().IntVarP(&historyLimit, "limit", "n", 5, "Number of entries to show")
	topicsCmd.Flags().IntVarP(&topicsLimit, "limit", "n", topic.DefaultPopularLimit, "Number of topics to show")
	rootCmd.AddCommand(historyCmd, topicsCmd)
}

func runHistory(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()
	a, err := openApp(ctx)
	if err != nil {
		return err
	}
	defer a.Close()

	store, err := a.history()
	if err != nil {
		return err
	}
	entries, err := store.All(ctx)
	if err != nil {
		return err
	}
	recent := history.Recent(entries, historyLimit)

	out := cmd.OutOrStdout()
	if jsonFlag {
		return printJSON(out, recent)
	}
	if len(recent) == 0 {
		fmt.Fprintln(out, "아직 상담 기록이 없습니다.")
		return nil
	}
	for i, e := range recent {
		fmt.Fprintf(out, "%d. %s\n   Q: %s\n", i+1, e.Summary, e.Question)
	}
	return nil
}

func runTopics(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()
	a, err := openApp(ctx)
	if err != nil {
		return err
	}
	defer a.Close()

	store, err := a.history()
	if err != nil {
		return err
	}
	entries, err := store.All(ctx)
	if err != nil {
		return err
	}
	topics := topic.Popular(entries, topicsLimit)

	out := cmd.OutOrStdout()
	if jsonFlag {
		return printJSON(out, topics)
	}
	if len(topics) == 0 {
		fmt.Fprintln(out, "아직 집계할 질문이 없습니다.")
		return nil
	}
	for i, t := range topics {
		fmt.Fprintf(out, "%d. %s (%d회)\n", i+1, t.Topic, t.Count)
	}
	return nil
}
