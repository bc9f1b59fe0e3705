package main

import (
	"encoding/json"
	"fmt"
	"text/tabwriter"

	"catalog-app/internal/domain/catalog"
	"catalog-app/internal/revision"

	"github.com/spf13/cobra"
	"gorm.io/gorm"
)

func printHistory(cmd *cobra.Command, db *gorm.DB, kind catalog.Kind, id int64, rev int) error {
	ctx := cmd.Context()
	out := cmd.OutOrStdout()

	if rev > 0 {
		snap, err := revision.GetHistoryAt(ctx, db, kind, id, rev)
		if err != nil {
			return err
		}
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(snap)
	}

	entries, err := revision.ListRevisions(ctx, db, kind, id)
	if err != nil {
		return err
	}
	tw := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "REV\tUSER\tHIDDEN\tLOCKED\tCREATED\tCOMMENT")
	for _, e := range entries {
		fmt.Fprintf(tw, "%d\t%s\t%t\t%t\t%s\t%s\n",
			e.Revision, e.Username, e.Ihid, e.Ilock, e.Created.Format("2006-01-02 15:04"), e.Comments)
	}
	return tw.Flush()
}
