package cmd

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/zostay/go-xop/xop"
)

func newExtractCmd() *cobra.Command {
	extractCmd := &cobra.Command{
		Use:   "extract [file|url]",
		Short: "Write every part of a package to its own file",
		Args:  cobra.MaximumNArgs(1),
		RunE:  RunExtract,
	}

	extractCmd.Flags().String("out", ".", "Directory to write parts to")

	return extractCmd
}

// RunExtract writes each part to <out>/<index>-<content-id>.
func RunExtract(cmd *cobra.Command, args []string) error {
	cfg, logger, err := setup(cmd)
	if err != nil {
		return err
	}

	dir, err := cmd.Flags().GetString("out")
	if err != nil {
		return err
	}

	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}

	r, err := openReader(cmd.Context(), cfg, srcArg(args), cmd.InOrStdin(), logger)
	if err != nil {
		return err
	}
	defer func() { _ = r.Close() }()

	out := cmd.OutOrStdout()
	save := func(p *xop.Part) error {
		path := filepath.Join(dir, PartFileName(p))
		f, err := os.Create(path)
		if err != nil {
			return err
		}

		n, err := io.Copy(f, p.Reader())
		if cerr := f.Close(); err == nil {
			err = cerr
		}
		if err != nil {
			return fmt.Errorf("writing %s: %w", path, err)
		}

		fmt.Fprintf(out, "%s\t%d\n", path, n)
		return nil
	}

	return r.Walk(func(_ int, p *xop.Part) error {
		if err := checkContentID(cfg, p); err != nil {
			return err
		}
		return save(p)
	})
}

// PartFileName names the file a part is extracted to. Characters that are
// awkward in file names are replaced with underscores.
func PartFileName(p *xop.Part) string {
	id := xop.NormalizeContentID(p.ContentID)
	if id == "" {
		id = "part"
	}

	safe := strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
			return r
		case r == '.' || r == '-' || r == '_' || r == '@':
			return r
		default:
			return '_'
		}
	}, id)

	return fmt.Sprintf("%d-%s", p.Index, safe)
}
