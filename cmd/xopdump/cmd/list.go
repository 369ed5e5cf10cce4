package cmd

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/zostay/go-xop/header"
	"github.com/zostay/go-xop/xop"
)

func newListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list [file|url]",
		Short: "List the parts of a package",
		Args:  cobra.MaximumNArgs(1),
		RunE:  RunList,
	}
}

// RunList prints one line per part: index, content-id, content-type, size in
// bytes and, when the part has a Date field, its time in UTC.
func RunList(cmd *cobra.Command, args []string) error {
	cfg, logger, err := setup(cmd)
	if err != nil {
		return err
	}

	r, err := openReader(cmd.Context(), cfg, srcArg(args), cmd.InOrStdin(), logger)
	if err != nil {
		return err
	}
	defer func() { _ = r.Close() }()

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "boundary %s\n", r.Boundary)
	fmt.Fprintf(out, "start    %s\n", r.StartID)
	if r.StartInfo != "" {
		fmt.Fprintf(out, "info     %s\n", r.StartInfo)
	}

	return r.Walk(func(i int, p *xop.Part) error {
		if err := checkContentID(cfg, p); err != nil {
			return err
		}

		size := int64(len(p.Body))
		if !p.IsStart() {
			n, err := p.Content().Drain()
			if err != nil {
				return err
			}
			size = n
		}

		ct, _ := p.Lookup(header.ContentType)
		fmt.Fprintf(out, "%d\t%s\t%s\t%d", i, p.ContentID, ct, size)
		if _, ok := p.Lookup(header.Date); ok {
			if t, err := p.GetTime(header.Date); err == nil {
				fmt.Fprintf(out, "\t%s", t.UTC().Format(time.RFC3339))
			} else {
				logger.Warn("unreadable Date field", "part", i, "error", err)
			}
		}
		fmt.Fprintln(out)
		return nil
	})
}
