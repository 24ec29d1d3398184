package cli

import (
	"github.com/spf13/cobra"
)

var (
	listDirsOnly  bool
	listFilesOnly bool
	listJSON      bool
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List the records of a scope",
	Long: `Load the scope from its snapshot, or from a listing of the source directory
when no snapshot exists yet, and print every record with its id.`,
	Args: cobra.NoArgs,
	RunE: runList,
}

func init() {
	listCmd.Flags().BoolVar(&listDirsOnly, "dirs-only", false, "Only list directories when reading the source directory")
	listCmd.Flags().BoolVar(&listFilesOnly, "files-only", false, "Only list files when reading the source directory")
	listCmd.Flags().BoolVar(&listJSON, "json", false, "Output in JSON format")
	listCmd.MarkFlagsMutuallyExclusive("dirs-only", "files-only")
	rootCmd.AddCommand(listCmd)
}

func runList(cmd *cobra.Command, args []string) error {
	sess, err := openSession(cmd)
	if err != nil {
		return err
	}

	recs, err := sess.load(cmd.Context(), listDirsOnly, listFilesOnly)
	if err != nil {
		return err
	}
	return printRecords(cmd.OutOrStdout(), recs, listJSON)
}
