package cmd

import (
	"fmt"
	"io"
	"text/tabwriter"
	"time"

	"go-url-admin/types"
	"go-url-admin/views"
)

func printNotices(out, errOut io.Writer, active []types.Notice) {
	for _, n := range active {
		switch n.Kind {
		case types.NoticeError:
			fmt.Fprintln(errOut, "✖ "+n.Message)
		case types.NoticeSuccess:
			fmt.Fprintln(out, "✔ "+n.Message)
		default:
			fmt.Fprintln(out, n.Message)
		}
	}
}

// writeTable prints the URL table in aligned columns.
func writeTable(out io.Writer, linkBase string, table types.Table) error {
	if table.Error != "" {
		_, err := fmt.Fprintln(out, "❌ Error loading data: "+table.Error)
		return err
	}
	if table.Empty() {
		_, err := fmt.Fprintln(out, "📝 No shortened URLs yet")
		return err
	}

	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tSHORT URL\tORIGINAL URL\tCREATED\tVISITS")
	for _, u := range table.Rows {
		fmt.Fprintf(w, "%d\t%s\t%s\t%s\t%d\n",
			u.ID,
			views.ShortLink(linkBase, u.ShortURL),
			u.OriginalURL,
			views.FormatTime(u.CreatedAt, time.Local),
			u.AccessCount)
	}
	return w.Flush()
}
