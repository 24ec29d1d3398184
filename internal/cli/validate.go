package cli

import (
	"errors"
	"fmt"

	"github.com/agentx-labs/recordx/internal/snapshot"
	"github.com/spf13/cobra"
)

var errInvalidSnapshot = errors.New("snapshot is invalid")

var validateCmd = &cobra.Command{
	Use:   "validate [path]",
	Short: "Check a snapshot file against the snapshot schema",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runValidate,
}

func init() {
	rootCmd.AddCommand(validateCmd)
}

func runValidate(cmd *cobra.Command, args []string) error {
	path := ""
	if len(args) == 1 {
		path = args[0]
	} else {
		sess, err := openSession(cmd)
		if err != nil {
			return err
		}
		path = sess.snapshot
	}

	result, err := snapshot.ValidateFile(path)
	if err != nil {
		return fmt.Errorf("validating %s: %w", path, err)
	}

	out := cmd.OutOrStdout()
	if result.Valid {
		fmt.Fprintf(out, "%s: valid\n", path)
		return nil
	}
	for _, issue := range result.Issues {
		fmt.Fprintf(out, "  %s\n", issue)
	}
	return fmt.Errorf("%s: %w", path, errInvalidSnapshot)
}
