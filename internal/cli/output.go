package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/agentx-labs/recordx/internal/record"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

var printer = message.NewPrinter(language.English)

// printRecords writes recs as an aligned table followed by a count, or as
// indented JSON.
func printRecords(w io.Writer, recs []*record.Record, asJSON bool) error {
	if asJSON {
		if recs == nil {
			recs = []*record.Record{}
		}
		data, err := json.MarshalIndent(recs, "", "  ")
		if err != nil {
			return fmt.Errorf("marshaling records: %w", err)
		}
		fmt.Fprintln(w, string(data))
		return nil
	}

	if len(recs) == 0 {
		fmt.Fprintln(w, "No records.")
		return nil
	}

	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tNAME\tARG\tNEW")
	for _, r := range recs {
		isNew := ""
		if r.NewRecord {
			isNew = "yes"
		}
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n", dash(string(r.ID)), dash(r.Name), dash(r.Arg), isNew)
	}
	if err := tw.Flush(); err != nil {
		return err
	}
	printer.Fprintf(w, "\n%d record(s)\n", len(recs))
	return nil
}

func dash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}
