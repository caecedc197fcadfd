package cmd

import (
	"encoding/csv"
	"fmt"
	"os"
	"reflect"

	"github.com/fatih/structs"
	"github.com/spf13/cobra"

	"github.com/famlab/dynasty/datarecording"
	"github.com/famlab/dynasty/sim"
)

// personRow mirrors the schema of the people table the simulation records.
type personRow struct {
	ID              string
	BirthYear       int
	Status          string
	StatusSince     int
	ParentID        string
	Generation      int
	ProbationLength int
}

var tableSchemas = map[string]any{
	"snapshots": sim.Snapshot{},
	"people":    personRow{},
}

var exportCmd = &cobra.Command{
	Use:   "export [database file]",
	Short: "Export a recorded run to CSV.",
	Long: `export reads a table out of a recorded .sqlite3 run file and ` +
		`writes it as CSV, to stdout or to --out.`,
	Args: cobra.ExactArgs(1),
	RunE: exportTable,
}

func init() {
	exportCmd.Flags().String("table", "snapshots",
		"table to export, snapshots or people")
	exportCmd.Flags().String("out", "", "output file, defaults to stdout")

	rootCmd.AddCommand(exportCmd)
}

func exportTable(cmd *cobra.Command, args []string) error {
	tableName, _ := cmd.Flags().GetString("table")

	schema, ok := tableSchemas[tableName]
	if !ok {
		return fmt.Errorf("unknown table %q", tableName)
	}

	reader := datarecording.NewReader(args[0])
	defer reader.Close()

	reader.MapTable(tableName, schema)

	orderBy := ""
	if tableName == "snapshots" {
		orderBy = "Year"
	}

	rows, err := reader.Query(
		cmd.Context(),
		tableName,
		datarecording.QueryParams{OrderBy: orderBy},
	)
	if err != nil {
		return err
	}

	out := os.Stdout
	if outPath, _ := cmd.Flags().GetString("out"); outPath != "" {
		out, err = os.Create(outPath)
		if err != nil {
			return err
		}
		defer out.Close()
	}

	return writeCSV(out, schema, rows)
}

func writeCSV(out *os.File, schema any, rows []any) error {
	w := csv.NewWriter(out)

	if err := w.Write(structs.Names(schema)); err != nil {
		return err
	}

	for _, row := range rows {
		values := reflect.ValueOf(row)

		record := make([]string, values.NumField())
		for i := range record {
			record[i] = fmt.Sprintf("%v", values.Field(i).Interface())
		}

		if err := w.Write(record); err != nil {
			return err
		}
	}

	w.Flush()

	return w.Error()
}
