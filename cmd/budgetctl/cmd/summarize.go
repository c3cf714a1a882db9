package cmd

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"sort"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"

	"github.com/budget-tracker/backend/config"
	"github.com/budget-tracker/backend/internal/domain/aggregation"
	"github.com/budget-tracker/backend/internal/domain/entity"
)

const granularityAll = "all"

type summarizeOptions struct {
	file        string
	granularity string
	timezone    string
	thresholds  string
}

// transactionRecord is one element of the input JSON array.
type transactionRecord struct {
	ID         string      `json:"id"`
	Amount     json.Number `json:"amount"`
	Kind       string      `json:"kind"`
	Category   string      `json:"category"`
	OccurredAt string      `json:"occurred_at"`
}

// recordIssue describes an input record left out of the summaries.
type recordIssue struct {
	Index  int
	ID     string
	Reason string
}

func newSummarizeCmd() *cobra.Command {
	summaryCfg := config.Load().Summary
	opts := summarizeOptions{
		granularity: granularityAll,
		timezone:    summaryCfg.Timezone,
		thresholds:  summaryCfg.ThresholdsFile,
	}

	c := &cobra.Command{
		Use:   "summarize",
		Short: "Aggregate a JSON file of transactions into period summaries",
		Long: `Reads a JSON array of transactions and prints weekly, monthly and yearly
summaries with per-category totals and budget warnings.

Each element looks like:
  {"id": "...", "amount": 120.50, "kind": "expense", "category": "food",
   "occurred_at": "2024-03-05T12:00:00Z"}

Malformed records are skipped and reported on stderr.

Example:
  budgetctl summarize --file transactions.json --granularity weekly --timezone Europe/Berlin`,
		RunE: func(cmd *cobra.Command, args []string) error {
			in := cmd.InOrStdin()
			if opts.file != "" && opts.file != "-" {
				f, err := os.Open(opts.file)
				if err != nil {
					return fmt.Errorf("failed to open input: %w", err)
				}
				defer f.Close()
				in = f
			}
			return runSummarize(in, cmd.OutOrStdout(), cmd.ErrOrStderr(), opts)
		},
	}

	c.Flags().StringVarP(&opts.file, "file", "f", "", "JSON file of transactions (default stdin)")
	c.Flags().StringVarP(&opts.granularity, "granularity", "g", opts.granularity, "weekly, monthly, yearly or all")
	c.Flags().StringVar(&opts.timezone, "timezone", opts.timezone, "IANA timezone period boundaries are computed in")
	c.Flags().StringVar(&opts.thresholds, "thresholds", opts.thresholds, "YAML file overriding the warning thresholds")

	return c
}

func runSummarize(in io.Reader, out, errOut io.Writer, opts summarizeOptions) error {
	granularities, err := parseGranularity(opts.granularity)
	if err != nil {
		return err
	}

	loc, err := time.LoadLocation(opts.timezone)
	if err != nil {
		return fmt.Errorf("invalid timezone %q: %w", opts.timezone, err)
	}

	table, err := config.LoadThresholds(opts.thresholds)
	if err != nil {
		return err
	}

	var records []transactionRecord
	dec := json.NewDecoder(in)
	dec.UseNumber()
	if err := dec.Decode(&records); err != nil {
		return fmt.Errorf("failed to decode transactions: %w", err)
	}

	txs, issues := toTransactions(records)
	valid, rejected := aggregation.Partition(txs)
	for _, r := range rejected {
		issues = append(issues, recordIssue{Index: -1, ID: r.TransactionID.String(), Reason: r.Reason.Error()})
	}
	slog.Debug("Transactions loaded", "records", len(records), "valid", len(valid), "skipped", len(issues))

	for _, issue := range issues {
		if issue.Index >= 0 {
			fmt.Fprintf(errOut, "skipped record %d (%s): %s\n", issue.Index, issue.ID, issue.Reason)
		} else {
			fmt.Fprintf(errOut, "skipped record %s: %s\n", issue.ID, issue.Reason)
		}
	}

	localized := aggregation.Localize(valid, loc)
	for i, g := range granularities {
		if i > 0 {
			fmt.Fprintln(out)
		}
		summaries := aggregation.SortChronologically(aggregation.Aggregate(localized, g), g)
		if err := printSummaries(out, g, summaries, table.For(g)); err != nil {
			return err
		}
	}

	return nil
}

func parseGranularity(value string) ([]aggregation.Granularity, error) {
	value = strings.ToLower(strings.TrimSpace(value))
	if value == "" || value == granularityAll {
		return aggregation.Granularities(), nil
	}
	g := aggregation.Granularity(value)
	if !g.IsValid() {
		return nil, fmt.Errorf("unknown granularity %q: expected weekly, monthly, yearly or all", value)
	}
	return []aggregation.Granularity{g}, nil
}

// toTransactions converts the decoded records. Records whose fields cannot be
// parsed are reported instead of converted; structural validation is left to
// aggregation.Partition.
func toTransactions(records []transactionRecord) ([]entity.Transaction, []recordIssue) {
	txs := make([]entity.Transaction, 0, len(records))
	var issues []recordIssue
	for i, rec := range records {
		tx, err := rec.toEntity()
		if err != nil {
			issues = append(issues, recordIssue{Index: i, ID: rec.ID, Reason: err.Error()})
			continue
		}
		txs = append(txs, tx)
	}
	return txs, issues
}

func (r transactionRecord) toEntity() (entity.Transaction, error) {
	id := uuid.New()
	if r.ID != "" {
		parsed, err := uuid.Parse(r.ID)
		if err != nil {
			return entity.Transaction{}, fmt.Errorf("invalid id: %w", err)
		}
		id = parsed
	}

	if r.Amount == "" {
		return entity.Transaction{}, errors.New("missing amount")
	}
	amount, err := decimal.NewFromString(r.Amount.String())
	if err != nil {
		return entity.Transaction{}, fmt.Errorf("invalid amount: %w", err)
	}

	var occurredAt time.Time
	if r.OccurredAt != "" {
		occurredAt, err = time.Parse(time.RFC3339, r.OccurredAt)
		if err != nil {
			return entity.Transaction{}, fmt.Errorf("invalid occurred_at: %w", err)
		}
	}

	return entity.Transaction{
		ID:         id,
		Amount:     amount.Round(2).InexactFloat64(),
		Kind:       entity.TransactionKind(strings.ToLower(r.Kind)),
		Category:   strings.ToLower(strings.TrimSpace(r.Category)),
		OccurredAt: occurredAt,
	}, nil
}

func printSummaries(out io.Writer, g aggregation.Granularity, summaries []aggregation.PeriodSummary, thresholds aggregation.Thresholds) error {
	fmt.Fprintf(out, "== %s ==\n", g)
	if len(summaries) == 0 {
		fmt.Fprintln(out, "no transactions")
		return nil
	}

	tw := tabwriter.NewWriter(out, 0, 0, 2, ' ', tabwriter.AlignRight)
	fmt.Fprintln(tw, "PERIOD\tINCOME\tEXPENSES\tSAVINGS\tBALANCE\tCOUNT\t")
	for _, s := range summaries {
		fmt.Fprintf(tw, "%s\t%.2f\t%.2f\t%.2f\t%.2f\t%d\t\n",
			s.PeriodKey, s.TotalIncome, s.TotalExpenses, s.TotalSavings, s.Balance(), s.TransactionCount)
	}
	if err := tw.Flush(); err != nil {
		return err
	}

	for _, s := range summaries {
		if len(s.ExpensesByCategory) > 0 {
			fmt.Fprintf(out, "%s expenses: %s\n", s.PeriodKey, formatCategories(s.ExpensesByCategory))
		}
		report := aggregation.EvaluateSummary(s, thresholds)
		for _, msg := range report.Messages() {
			fmt.Fprintf(out, "%s warning: %s\n", s.PeriodKey, msg)
		}
	}
	return nil
}

func formatCategories(amounts map[string]float64) string {
	categories := make([]string, 0, len(amounts))
	for c := range amounts {
		categories = append(categories, c)
	}
	sort.Strings(categories)

	parts := make([]string, len(categories))
	for i, c := range categories {
		parts[i] = fmt.Sprintf("%s=%.2f", c, amounts[c])
	}
	return strings.Join(parts, " ")
}
