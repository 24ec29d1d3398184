package cli

import (
	"fmt"
	"strings"

	"github.com/agentx-labs/recordx/internal/record"
	"github.com/agentx-labs/recordx/internal/rules"
	"github.com/agentx-labs/recordx/internal/store"
	"github.com/spf13/cobra"
)

var (
	findMatch     string
	findRename    string
	findAttrs     []string
	findForceNew  bool
	findUnique    bool
	findAppendNew bool
	findSave      bool
	findJSON      bool
)

var findCmd = &cobra.Command{
	Use:   "find [ref...]",
	Short: "Resolve references against a scope",
	Long: `Resolve each reference to every record it matches. References that match
nothing produce a new record. By default a reference matches records with the
same name; --match takes an expression over arg, name, key, id, new and attrs.

Examples:
  recordx find file1.ts newFile.ts
  recordx find --match 'name startsWith arg' file
  recordx find --rename 'trimSuffix(key, ".ts")' --append-new --save newFile.ts`,
	RunE: runFind,
}

func init() {
	f := findCmd.Flags()
	f.StringVar(&findMatch, "match", "", "Match expression (default: name == arg)")
	f.StringVar(&findRename, "rename", "", "Expression computing each result's name")
	f.StringArrayVar(&findAttrs, "attr", nil, "Annotate results: key=expression (repeatable)")
	f.BoolVar(&findForceNew, "force-new", false, "Create a new record for every reference")
	f.BoolVar(&findUnique, "unique", false, "Return one record per name")
	f.BoolVar(&findAppendNew, "append-new", false, "Add new records to the scope")
	f.BoolVar(&findSave, "save", false, "Write the scope's snapshot afterwards")
	f.BoolVar(&findJSON, "json", false, "Output in JSON format")
	rootCmd.AddCommand(findCmd)
}

func runFind(cmd *cobra.Command, args []string) error {
	opts, err := findOptions()
	if err != nil {
		return err
	}

	sess, err := openSession(cmd)
	if err != nil {
		return err
	}
	ctx := cmd.Context()
	if _, err := sess.load(ctx, false, false); err != nil {
		return err
	}

	recs, err := sess.store.Find(ctx, sess.scope, args, opts)
	if err != nil {
		return err
	}

	if findSave {
		if err := sess.save(ctx); err != nil {
			return err
		}
	}
	return printRecords(cmd.OutOrStdout(), recs, findJSON)
}

func findOptions() (store.FindOptions, error) {
	opts := store.FindOptions{
		Matcher:   rules.NameEquals,
		ForceNew:  findForceNew,
		Unique:    findUnique,
		AppendNew: findAppendNew,
	}

	if findMatch != "" {
		m, err := rules.Match(findMatch)
		if err != nil {
			return opts, fmt.Errorf("--match: %w", err)
		}
		opts.Matcher = m
	}

	var mods []record.Modifier
	if findRename != "" {
		m, err := rules.Rename(findRename)
		if err != nil {
			return opts, fmt.Errorf("--rename: %w", err)
		}
		mods = append(mods, m)
	}
	for _, attr := range findAttrs {
		key, expression, ok := strings.Cut(attr, "=")
		if !ok {
			return opts, fmt.Errorf("--attr %q: expected key=expression", attr)
		}
		m, err := rules.Annotate(key, expression)
		if err != nil {
			return opts, fmt.Errorf("--attr %q: %w", attr, err)
		}
		mods = append(mods, m)
	}
	opts.Modify = rules.Chain(mods...)
	return opts, nil
}
