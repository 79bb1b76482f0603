package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"os"
	"text/tabwriter"

	"complaintportal/backend/internal/config"
	"complaintportal/backend/internal/display"
	"complaintportal/backend/internal/models"
	"complaintportal/backend/internal/storage"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

// opener connects the configured backend.
type opener func(ctx context.Context) (storage.Backend, func() error, error)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("WARNING: Error loading .env file")
	}

	open := func(ctx context.Context) (storage.Backend, func() error, error) {
		cfg, err := config.Load()
		if err != nil {
			return nil, nil, fmt.Errorf("invalid configuration: %w", err)
		}
		return storage.Open(ctx, cfg)
	}

	if err := rootCmd(open).Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func rootCmd(open opener) *cobra.Command {
	var (
		store     storage.Backend
		closeFunc func() error
	)

	cmd := &cobra.Command{
		Use:           "admin",
		Short:         "Inspect complaints and move them through their statuses",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			var err error
			store, closeFunc, err = open(cmd.Context())
			return err
		},
		PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
			if closeFunc != nil {
				return closeFunc()
			}
			return nil
		},
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "list",
		Short: "List every complaint in submission order",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			all, err := store.Load(cmd.Context())
			if err != nil {
				return err
			}
			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "ID\tSTATUS\tPRIORITY\tCATEGORY\tDISTRICT\tSUBMITTED")
			for _, c := range all {
				fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t%s\n",
					c.ID, c.Status, c.Priority, c.Category, c.District, display.FormatDate(c.SubmittedAt))
			}
			return w.Flush()
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "show <id>",
		Short: "Print one complaint as JSON",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := store.FindByID(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			if c == nil {
				return fmt.Errorf("complaint %s: %w", args[0], storage.ErrNotFound)
			}
			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")
			return enc.Encode(c)
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "set-status <id> <status>",
		Short: `Change a complaint's status ("Pending", "In Progress", "Completed", "Rejected")`,
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			status, ok := models.ParseStatus(args[1])
			if !ok {
				return fmt.Errorf("unknown status %q", args[1])
			}
			if err := store.UpdateStatus(cmd.Context(), args[0], status); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Complaint %s is now %s.\n", args[0], status)
			return nil
		},
	})

	return cmd
}
