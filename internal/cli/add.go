package cli

import (
	"fmt"

	"github.com/agentx-labs/recordx/internal/record"
	"github.com/agentx-labs/recordx/internal/store"
	"github.com/spf13/cobra"
)

var addCmd = &cobra.Command{
	Use:   "add <name>...",
	Short: "Add named records to a scope",
	Long: `Append one record per name to the scope and save its snapshot. Names that
already exist are added again; use "find --append-new" to only add missing ones.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runAdd,
}

func init() {
	rootCmd.AddCommand(addCmd)
}

func runAdd(cmd *cobra.Command, args []string) error {
	sess, err := openSession(cmd)
	if err != nil {
		return err
	}
	ctx := cmd.Context()
	if _, err := sess.load(ctx, false, false); err != nil {
		return err
	}

	recs := make([]*record.Record, len(args))
	for i, name := range args {
		recs[i] = record.Named(name)
	}
	sess.store.Append(sess.scope, recs, store.AppendOptions{})

	if err := sess.save(ctx); err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	for _, r := range recs {
		fmt.Fprintf(out, "Added %s (%s)\n", r.Name, r.ID)
	}
	return nil
}
