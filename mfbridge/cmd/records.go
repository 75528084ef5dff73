package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/mfbridge/mfbridge/datarecording"
	"github.com/mfbridge/mfbridge/tracing"
)

var recordsFlags struct {
	table   string
	where   string
	orderBy string
	limit   int
	offset  int
}

var recordsCmd = &cobra.Command{
	Use:   "records FILE",
	Short: "Inspect a recording.",
	Long: "`records FILE` lists the tables of a recording. " +
		"`records FILE --table NAME` prints the entries of a table as YAML.",
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		reader, err := datarecording.NewReader(args[0])
		if err != nil {
			return err
		}
		defer reader.Close()

		mapRecordTables(reader)

		out := cmd.OutOrStdout()

		if recordsFlags.table == "" {
			tables, err := reader.StoredTables(context.Background())
			if err != nil {
				return err
			}

			for _, t := range tables {
				fmt.Fprintln(out, t)
			}

			return nil
		}

		results, total, err := reader.Query(context.Background(),
			recordsFlags.table, datarecording.QueryParams{
				Where:   recordsFlags.where,
				OrderBy: recordsFlags.orderBy,
				Limit:   recordsFlags.limit,
				Offset:  recordsFlags.offset,
			})
		if err != nil {
			return err
		}

		fmt.Fprintf(out, "# %d of %d entries\n", len(results), total)

		encoder := yaml.NewEncoder(out)
		encoder.SetIndent(2)

		if err := encoder.Encode(results); err != nil {
			return err
		}

		return encoder.Close()
	},
}

func mapRecordTables(reader datarecording.DataReader) {
	for name, sample := range tracing.Tables() {
		reader.MapTable(name, sample)
	}

	reader.MapTable(datarecording.RunTable, datarecording.RunInfo{})
}

func init() {
	rootCmd.AddCommand(recordsCmd)

	f := recordsCmd.Flags()
	f.StringVar(&recordsFlags.table, "table", "", "Table to print")
	f.StringVar(&recordsFlags.where, "where", "",
		"SQL condition on the table columns")
	f.StringVar(&recordsFlags.orderBy, "order-by", "", "SQL ordering")
	f.IntVar(&recordsFlags.limit, "limit", 0, "Maximum entries, 0 for all")
	f.IntVar(&recordsFlags.offset, "offset", 0, "Entries to skip")
}
