package cmd

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/sergi/go-diff/diffmatchpatch"
	"github.com/spf13/cobra"

	"github.com/zostay/go-xop/internal/config"
	"github.com/zostay/go-xop/transport"
	"github.com/zostay/go-xop/xop"
)

// ErrRoundTripDiffers is returned when a re-encoded package does not match
// its input.
var ErrRoundTripDiffers = errors.New("round trip output differs from input")

func newRoundtripCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "roundtrip file",
		Short: "Shows the diff of a single package round-trip",
		Args:  cobra.ExactArgs(1),
		RunE:  RunRoundtrip,
	}
}

// RunRoundtrip decodes a package, encodes it again with the same boundary
// and start id and prints a diff if the bytes are not the same.
func RunRoundtrip(cmd *cobra.Command, args []string) error {
	cfg, logger, err := setup(cmd)
	if err != nil {
		return err
	}

	if cfg.HTTP {
		return fmt.Errorf("roundtrip reads a bare body; --http is not supported")
	}

	if cfg.ContentType == "" {
		return fmt.Errorf("--content-type or %s is required", config.ContentTypeEnv)
	}

	path := args[0]
	orig, err := os.ReadFile(path)
	if err != nil {
		return err
	}

	resp := transport.FromReader(cfg.ContentType, bytes.NewReader(orig),
		transport.WithMaxLineLength(cfg.MaxLine))
	r, err := xop.NewReader(resp, readerOptions(cfg, logger)...)
	if err != nil {
		return err
	}
	defer func() { _ = r.Close() }()

	rt, err := Reencode(r)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "path = %s\n", path)

	if bytes.Equal(orig, rt) {
		fmt.Fprintln(out, "identical")
		return nil
	}

	dmp := diffmatchpatch.New()
	diffs := dmp.DiffMain(string(orig), string(rt), true)
	patches := dmp.PatchMake(string(orig), diffs)
	fmt.Fprint(out, dmp.PatchToText(patches))

	return ErrRoundTripDiffers
}

// Reencode writes the parts of r into a new package using r's boundary,
// start id and line break.
func Reencode(r *xop.Reader) ([]byte, error) {
	buf := &bytes.Buffer{}
	w := xop.NewWriter(buf,
		xop.WithBoundary(r.Boundary),
		xop.WithStartID(r.StartID),
		xop.WithStartInfo(r.StartInfo),
		xop.WithWriterBreak(r.Break))

	err := r.Walk(func(_ int, p *xop.Part) error {
		pw, err := w.CreatePart(&p.Header)
		if err != nil {
			return err
		}

		_, err = io.Copy(pw, p.Reader())
		return err
	})
	if err != nil {
		return nil, err
	}

	if err := w.Close(); err != nil {
		return nil, err
	}

	return buf.Bytes(), nil
}
