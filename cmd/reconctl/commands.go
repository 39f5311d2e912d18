package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"debtrecon/internal/domain"
	"debtrecon/internal/logging"
	"debtrecon/internal/money"
)

type rootOptions struct {
	server      string
	demo        bool
	databaseURL string
	timeout     time.Duration
	verbose     bool
	log         *zap.Logger
}

func newRootCmd() *cobra.Command {
	o := &rootOptions{}
	root := &cobra.Command{
		Use:          "reconctl",
		Short:        "Compute representative debt and detect drift between ledger views",
		SilenceUsage: true,
		PersistentPreRunE: func(*cobra.Command, []string) error {
			if !o.verbose {
				o.log = zap.NewNop()
				return nil
			}
			l, err := logging.New("development", "debug")
			if err != nil {
				return err
			}
			o.log = l
			return nil
		},
	}
	f := root.PersistentFlags()
	f.StringVar(&o.server, "server", "", "base URL of a running server; computes in-process when empty")
	f.BoolVar(&o.demo, "demo", false, "use a built-in demo ledger instead of the database")
	f.StringVar(&o.databaseURL, "database-url", os.Getenv("DATABASE_URL"), "postgres connection string")
	f.DurationVar(&o.timeout, "timeout", 30*time.Second, "overall command timeout")
	f.BoolVarP(&o.verbose, "verbose", "v", false, "log to stderr")

	root.AddCommand(
		newBulkDebtCmd(o),
		newDriftCmd(o),
		newBreakdownCmd(o),
		newClassifyCmd(o),
		newMigrateCmd(o),
	)
	return root
}

// withBackend runs fn against the selected backend under the command timeout.
func withBackend(cmd *cobra.Command, o *rootOptions, fn func(context.Context, backend) (any, error)) error {
	ctx, cancel := context.WithTimeout(cmd.Context(), o.timeout)
	defer cancel()

	b, err := openBackend(ctx, o)
	if err != nil {
		return err
	}
	defer b.Close()

	out, err := fn(ctx, b)
	if err != nil {
		return err
	}
	return printJSON(cmd, out)
}

func printJSON(cmd *cobra.Command, v any) error {
	enc := json.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func newBulkDebtCmd(o *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "bulk-debt <representative-id>...",
		Short: "Compute debt for representatives and the system total",
		RunE: func(cmd *cobra.Command, args []string) error {
			ids := make([]int64, 0, len(args))
			for _, a := range args {
				id, err := strconv.ParseInt(a, 10, 64)
				if err != nil {
					return fmt.Errorf("representative id %q: %w", a, err)
				}
				ids = append(ids, id)
			}
			return withBackend(cmd, o, func(ctx context.Context, b backend) (any, error) {
				return b.BulkDebt(ctx, ids)
			})
		},
	}
}

func newDriftCmd(o *rootOptions) *cobra.Command {
	var scope string
	cmd := &cobra.Command{
		Use:   "drift",
		Short: "Compare legacy, ledger and cache debt sums",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withBackend(cmd, o, func(ctx context.Context, b backend) (any, error) {
				return b.Drift(ctx, scope)
			})
		},
	}
	cmd.Flags().StringVar(&scope, "scope", "global", `"global" or "representative:<id>"`)
	return cmd
}

func newBreakdownCmd(o *rootOptions) *cobra.Command {
	var (
		scope string
		limit int
	)
	cmd := &cobra.Command{
		Use:   "breakdown",
		Short: "List representatives whose legacy and ledger debt disagree",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withBackend(cmd, o, func(ctx context.Context, b backend) (any, error) {
				return b.Breakdown(ctx, scope, limit)
			})
		},
	}
	cmd.Flags().StringVar(&scope, "scope", "global", `"global" or "representative:<id>"`)
	cmd.Flags().IntVar(&limit, "limit", 100, "maximum rows")
	return cmd
}

type classification struct {
	Amount    money.Money     `json:"amount"`
	DebtLevel domain.DebtTier `json:"debt_level"`
}

func newClassifyCmd(o *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "classify <amount>",
		Short: "Print the debt tier of an amount",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			amount, err := money.Parse(args[0])
			if err != nil {
				return err
			}
			// Tiers need no ledger data, so only --server changes where this runs.
			if o.server == "" {
				tier, err := (&local{}).Classify(cmd.Context(), amount)
				if err != nil {
					return err
				}
				return printJSON(cmd, classification{amount, tier})
			}
			return withBackend(cmd, o, func(ctx context.Context, b backend) (any, error) {
				tier, err := b.Classify(ctx, amount)
				if err != nil {
					return nil, err
				}
				return classification{amount, tier}, nil
			})
		},
	}
}

func newMigrateCmd(o *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Apply database schema migrations",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx, cancel := context.WithTimeout(cmd.Context(), o.timeout)
			defer cancel()
			db, err := o.connect(ctx)
			if err != nil {
				return err
			}
			defer db.Close()
			n, err := db.Migrate(ctx)
			if err != nil {
				return err
			}
			_, err = fmt.Fprintf(cmd.OutOrStdout(), "applied %d migration(s)\n", n)
			return err
		},
	}
}
