package main

import (
	"fmt"
	"time"

	"catalog/loader/internal/container"
	"catalog/loader/internal/domain"
	"catalog/loader/internal/queue"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

func newImportCmd() *cobra.Command {
	var (
		file       string
		sheetName  string
		maxRows    int
		purgeFirst bool
	)

	cmd := &cobra.Command{
		Use:   "import",
		Short: "Create or update products from the spreadsheet",
		RunE: func(cmd *cobra.Command, args []string) error {
			opts := container.ImportOptions{
				File:       cfg.Import.File,
				Sheet:      cfg.Import.Sheet,
				MaxRows:    cfg.Import.MaxRows,
				PurgeFirst: purgeFirst,
			}
			if cmd.Flags().Changed("file") {
				opts.File = file
			}
			if cmd.Flags().Changed("sheet") {
				opts.Sheet = sheetName
			}
			if cmd.Flags().Changed("max-rows") {
				opts.MaxRows = maxRows
			}

			app, err := container.New(cmd.Context(), cfg)
			if err != nil {
				return err
			}
			defer app.Close()

			log.Info("Starting catalog import...")
			report, err := app.RunImport(cmd.Context(), opts)
			if report != nil {
				printReport(cmd, report)
			}
			return err
		},
	}

	cmd.Flags().StringVarP(&file, "file", "f", "", "spreadsheet to import (overrides import.file)")
	cmd.Flags().StringVar(&sheetName, "sheet", "", "sheet name (overrides import.sheet)")
	cmd.Flags().IntVarP(&maxRows, "max-rows", "n", 0, "rows to process, 0 for all (overrides import.max_rows)")
	cmd.Flags().BoolVar(&purgeFirst, "purge-first", false, "delete every product before importing")
	return cmd
}

func printReport(cmd *cobra.Command, report *domain.ImportReport) {
	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Run %s (%s)\n", report.RunID, report.FinishedAt.Sub(report.StartedAt).Round(time.Millisecond))
	for _, outcome := range domain.Outcomes {
		fmt.Fprintf(out, "  %-8s %d\n", outcome, report.Count(outcome))
	}
	fmt.Fprintf(out, "  categories created %d\n", report.CategoriesCreated)
	for _, row := range report.Failures() {
		fmt.Fprintf(out, "  row %d (SKU %s): %s\n", row.Row, row.SKU, row.Reason)
	}
}

func newPurgeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "purge",
		Short: "Delete every product of the remote catalog",
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := container.New(cmd.Context(), cfg)
			if err != nil {
				return err
			}
			defer app.Close()

			count, err := app.Service.Purge(cmd.Context())
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Deleted %d products\n", count)
			return nil
		},
	}
}

func newCategoryCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "category <name>",
		Short: "Print the id of the category with exactly this name",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := container.New(cmd.Context(), cfg)
			if err != nil {
				return err
			}
			defer app.Close()

			id, err := app.Client.FetchCategoryByName(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), id)
			return nil
		},
	}
}

func newProductCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "product <sku>",
		Short: "Show the stored state of the product carrying this SKU",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := container.New(cmd.Context(), cfg)
			if err != nil {
				return err
			}
			defer app.Close()

			product, err := app.Service.LookupProduct(cmd.Context(), args[0])
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "%s %s\n", product.ID, product.Name)
			if product.Category != nil {
				fmt.Fprintf(out, "  category     %s (%s)\n", product.Category.Name, product.Category.ID)
			}
			if product.BasePrice != nil {
				fmt.Fprintf(out, "  price        %s %s\n", product.BasePrice.Amount, product.BasePrice.Currency)
			}
			if product.Weight != nil {
				fmt.Fprintf(out, "  weight       %s %s\n", product.Weight.Value, product.Weight.Unit)
			}
			fmt.Fprintf(out, "  published    %t\n", product.IsPublished)
			fmt.Fprintf(out, "  charge taxes %t\n", product.ChargeTaxes)
			fmt.Fprintf(out, "  seo title    %s\n", product.SEO.Title)
			for _, variant := range product.Variants {
				fmt.Fprintf(out, "  variant      %s sku=%s\n", variant.ID, variant.SKU)
			}
			return nil
		},
	}
}

func newFailuresCmd() *cobra.Command {
	var limit int64

	cmd := &cobra.Command{
		Use:   "failures",
		Short: "List recently failed rows from the Redis stream",
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := container.New(cmd.Context(), cfg)
			if err != nil {
				return err
			}
			defer app.Close()

			if app.Queue == nil {
				return fmt.Errorf("redis is not enabled (redis.enabled)")
			}

			messages, err := app.Queue.ListTasks(cmd.Context(), "FailedRowTask", limit)
			if err != nil {
				return err
			}
			for _, msg := range messages {
				failed, err := queue.DecodeFailedRow(msg)
				if err != nil {
					log.Warnf("⚠️ Skipping message %s: %v", msg.ID, err)
					continue
				}
				fmt.Fprintf(cmd.OutOrStdout(), "%s run=%s row=%d sku=%s: %s\n",
					failed.FailedAt.Format("2006-01-02 15:04:05"), failed.RunID, failed.Row, failed.SKU, failed.Error)
			}
			return nil
		},
	}

	cmd.Flags().Int64VarP(&limit, "limit", "l", 20, "number of failures to show")
	return cmd
}

func newHistoryCmd() *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "history",
		Short: "List recent import runs stored in Postgres",
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := container.New(cmd.Context(), cfg)
			if err != nil {
				return err
			}
			defer app.Close()

			if app.Reports == nil {
				return fmt.Errorf("database is not enabled (database.enabled)")
			}

			runs, err := app.Reports.RecentRuns(cmd.Context(), limit)
			if err != nil {
				return err
			}
			for _, run := range runs {
				fmt.Fprintf(cmd.OutOrStdout(), "%s %s created=%d updated=%d skipped=%d failed=%d categories=%d\n",
					run.StartedAt.Format("2006-01-02 15:04:05"), run.ID,
					run.Created, run.Updated, run.Skipped, run.Failed, run.CategoriesCreated)
			}
			return nil
		},
	}

	cmd.Flags().IntVarP(&limit, "limit", "l", 10, "number of runs to show")
	return cmd
}
