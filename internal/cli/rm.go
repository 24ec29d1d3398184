package cli

import (
	"fmt"
	"slices"

	"github.com/agentx-labs/recordx/internal/record"
	"github.com/spf13/cobra"
)

var rmCmd = &cobra.Command{
	Use:     "rm <name>...",
	Aliases: []string{"remove"},
	Short:   "Remove records from a scope by name",
	Long:    `Remove every record whose name is one of the arguments and save the snapshot.`,
	Args:    cobra.MinimumNArgs(1),
	RunE:    runRemove,
}

func init() {
	rootCmd.AddCommand(rmCmd)
}

func runRemove(cmd *cobra.Command, args []string) error {
	sess, err := openSession(cmd)
	if err != nil {
		return err
	}
	ctx := cmd.Context()
	recs, err := sess.load(ctx, false, false)
	if err != nil {
		return err
	}

	victims := slices.DeleteFunc(recs, func(r *record.Record) bool {
		return !slices.Contains(args, r.Name)
	})
	if len(victims) == 0 {
		fmt.Fprintln(cmd.OutOrStdout(), "No matching records.")
		return nil
	}

	sess.store.Remove(sess.scope, victims...)
	if err := sess.save(ctx); err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	for _, r := range victims {
		fmt.Fprintf(out, "Removed %s (%s)\n", r.Name, r.ID)
	}
	return nil
}
