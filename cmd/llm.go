package cmd

import (
	"context"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/abhisek/alefba/internal/llm"
	"github.com/abhisek/alefba/internal/store"
)

const timeLayout = "2006-01-02 15:04:05"

var llmCmd = &cobra.Command{
	Use:   "llm",
	Short: "Inspect the story requests sent to the LLM provider",
}

var llmListCmd = &cobra.Command{
	Use:   "list",
	Short: "List recent LLM requests",
	RunE: func(cmd *cobra.Command, args []string) error {
		limit, _ := cmd.Flags().GetInt("limit")
		purpose, _ := cmd.Flags().GetString("purpose")

		e, err := openEnv(cmd)
		if err != nil {
			return err
		}
		defer e.Close()
		return writeLLMList(cmd.Context(), os.Stdout, e.store.EventRepo(), limit, purpose)
	},
}

var llmViewCmd = &cobra.Command{
	Use:   "view <id>",
	Short: "Show the full prompt and reply of one request",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := strconv.Atoi(args[0])
		if err != nil {
			return fmt.Errorf("invalid ID %q", args[0])
		}

		e, err := openEnv(cmd)
		if err != nil {
			return err
		}
		defer e.Close()

		ev, err := e.store.EventRepo().GetLLMEvent(cmd.Context(), id)
		if err != nil {
			return fmt.Errorf("get event: %w", err)
		}
		if ev == nil {
			return fmt.Errorf("event %d not found", id)
		}
		writeLLMEvent(os.Stdout, ev)
		return nil
	},
}

var llmStatsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show token usage and estimated cost",
	RunE: func(cmd *cobra.Command, args []string) error {
		e, err := openEnv(cmd)
		if err != nil {
			return err
		}
		defer e.Close()
		return writeLLMStats(cmd.Context(), os.Stdout, e.store.EventRepo())
	},
}

func rule(w io.Writer, n int) {
	fmt.Fprintln(w, strings.Repeat("─", n))
}

func writeLLMList(ctx context.Context, w io.Writer, events store.EventRepo, limit int, purpose string) error {
	list, err := events.QueryLLMEvents(ctx, store.QueryOpts{Limit: limit})
	if err != nil {
		return fmt.Errorf("query events: %w", err)
	}

	shown := 0
	for _, ev := range list {
		if purpose != "" && ev.Purpose != purpose {
			continue
		}
		if shown == 0 {
			fmt.Fprintf(w, "%-5s  %-19s  %-8s  %-28s  %6s  %6s  %7s  %s\n",
				"ID", "Time", "Purpose", "Model", "In", "Out", "Ms", "OK")
			rule(w, 96)
		}
		shown++
		mark := "✓"
		if !ev.Success {
			mark = "✗"
		}
		fmt.Fprintf(w, "%-5d  %-19s  %-8s  %-28s  %6d  %6d  %7d  %s\n",
			ev.ID, ev.Timestamp.Local().Format(timeLayout), ev.Purpose, truncate(ev.Model, 28),
			ev.InputTokens, ev.OutputTokens, ev.LatencyMs, mark)
	}
	if shown == 0 {
		fmt.Fprintln(w, "No LLM requests recorded.")
	}
	return nil
}

func writeLLMEvent(w io.Writer, ev *store.LLMRequestEvent) {
	fields := [][2]string{
		{"ID", strconv.Itoa(ev.ID)},
		{"Time", ev.Timestamp.Local().Format(timeLayout)},
		{"Provider", ev.Provider},
		{"Model", ev.Model},
		{"Purpose", ev.Purpose},
		{"Tokens", fmt.Sprintf("%d in / %d out", ev.InputTokens, ev.OutputTokens)},
		{"Latency", fmt.Sprintf("%dms", ev.LatencyMs)},
		{"Success", strconv.FormatBool(ev.Success)},
	}
	if ev.ErrorMessage != "" {
		fields = append(fields, [2]string{"Error", ev.ErrorMessage})
	}
	for _, f := range fields {
		fmt.Fprintf(w, "%-10s %s\n", f[0]+":", f[1])
	}

	for _, sec := range [][2]string{{"REQUEST", ev.RequestBody}, {"RESPONSE", ev.ResponseBody}} {
		body := sec[1]
		if body == "" {
			body = "(not captured)"
		}
		fmt.Fprintln(w)
		rule(w, 60)
		fmt.Fprintln(w, sec[0])
		rule(w, 60)
		fmt.Fprintln(w, body)
	}
}

func writeLLMStats(ctx context.Context, w io.Writer, events store.EventRepo) error {
	byPurpose, err := events.LLMUsageByPurpose(ctx)
	if err != nil {
		return fmt.Errorf("query usage: %w", err)
	}
	if len(byPurpose) == 0 {
		fmt.Fprintln(w, "No LLM usage recorded yet.")
		return nil
	}

	var total store.LLMUsageStats
	fmt.Fprintf(w, "%-12s  %6s  %9s  %9s  %8s\n", "Purpose", "Calls", "Input", "Output", "Avg Ms")
	rule(w, 52)
	for _, st := range byPurpose {
		fmt.Fprintf(w, "%-12s  %6d  %9d  %9d  %8d\n",
			st.Purpose, st.Calls, st.InputTokens, st.OutputTokens, st.AvgLatencyMs)
		total.Calls += st.Calls
		total.InputTokens += st.InputTokens
		total.OutputTokens += st.OutputTokens
	}
	rule(w, 52)
	fmt.Fprintf(w, "%-12s  %6d  %9d  %9d\n", "TOTAL", total.Calls, total.InputTokens, total.OutputTokens)

	byModel, err := events.LLMUsageByModel(ctx)
	if err != nil {
		return fmt.Errorf("query model usage: %w", err)
	}
	if len(byModel) == 0 {
		return nil
	}

	fmt.Fprintln(w)
	fmt.Fprintf(w, "%-30s  %6s  %10s\n", "Model", "Calls", "Cost (USD)")
	rule(w, 50)
	var (
		sum     float64
		unknown []string
	)
	for _, mu := range byModel {
		cost := "?"
		if price := llm.LookupCost(mu.Model); price != nil {
			c := price.Cost(mu.InputTokens, mu.OutputTokens)
			sum += c
			cost = formatCost(c)
		} else {
			unknown = append(unknown, mu.Model)
		}
		fmt.Fprintf(w, "%-30s  %6d  %10s\n", truncate(mu.Model, 30), mu.Calls, cost)
	}
	rule(w, 50)
	label := "TOTAL"
	if len(unknown) > 0 {
		label = "TOTAL (partial)"
	}
	fmt.Fprintf(w, "%-30s  %6s  %10s\n", label, "", formatCost(sum))
	if len(unknown) > 0 {
		fmt.Fprintf(w, "\nNo pricing for: %s\n", strings.Join(unknown, ", "))
	}
	return nil
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n]
}

func formatCost(usd float64) string {
	if usd < 0.01 {
		return fmt.Sprintf("$%.4f", usd)
	}
	return fmt.Sprintf("$%.2f", usd)
}

func init() {
	llmListCmd.Flags().IntP("limit", "n", 20, "Number of requests to show")
	llmListCmd.Flags().StringP("purpose", "p", "", "Only show one purpose (e.g. story)")

	llmCmd.AddCommand(llmListCmd, llmViewCmd, llmStatsCmd)
}
