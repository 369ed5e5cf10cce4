package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/zostay/go-xop/internal/config"
	"github.com/zostay/go-xop/transport"
	"github.com/zostay/go-xop/xop"
)

// fileResponse closes the input file along with the response.
type fileResponse struct {
	transport.Response
	file io.Closer
}

func (r *fileResponse) Close() error {
	return errors.Join(r.Response.Close(), r.file.Close())
}

// openInput opens src, which is a file name, "-" or "" for stdin, or an http
// URL.
func openInput(ctx context.Context, cfg config.Config, src string, stdin io.Reader) (transport.Response, error) {
	topts := []transport.Option{transport.WithMaxLineLength(cfg.MaxLine)}

	if transport.IsURL(src) {
		return transport.Get(ctx, nil, src, topts...)
	}

	var in io.ReadCloser
	if src == "" || src == "-" {
		in = io.NopCloser(stdin)
	} else {
		f, err := os.Open(src)
		if err != nil {
			return nil, err
		}
		in = f
	}

	if cfg.HTTP {
		resp, err := transport.ReadHTTP(in, topts...)
		if err != nil {
			_ = in.Close()
			return nil, err
		}
		return &fileResponse{Response: resp, file: in}, nil
	}

	if cfg.NeedsContentType(src) && cfg.ContentType == "" {
		_ = in.Close()
		return nil, fmt.Errorf("--content-type or %s is required when reading %q", config.ContentTypeEnv, src)
	}

	return transport.FromReader(cfg.ContentType, in, topts...), nil
}

func readerOptions(cfg config.Config, logger *slog.Logger) []xop.Option {
	opts := []xop.Option{
		xop.WithBreak(cfg.Break),
		xop.WithLogger(logger),
	}

	if cfg.StrictHeaders {
		opts = append(opts, xop.WithStrictHeaders())
	}

	return opts
}

// openReader opens src and decodes the start part.
func openReader(ctx context.Context, cfg config.Config, src string, stdin io.Reader, logger *slog.Logger) (*xop.Reader, error) {
	resp, err := openInput(ctx, cfg, src, stdin)
	if err != nil {
		return nil, err
	}

	r, err := xop.NewReader(resp, readerOptions(cfg, logger)...)
	if err != nil {
		_ = resp.Close()
		return nil, err
	}

	if err := checkContentID(cfg, r.Start()); err != nil {
		_ = r.Close()
		return nil, err
	}

	return r, nil
}

// checkContentID enforces --strict-cid.
func checkContentID(cfg config.Config, p *xop.Part) error {
	if !cfg.StrictCID {
		return nil
	}

	if err := xop.ValidateContentID(p.ContentID); err != nil {
		return fmt.Errorf("part %d: %w", p.Index, err)
	}

	return nil
}

func srcArg(args []string) string {
	if len(args) == 0 {
		return "-"
	}
	return args[0]
}
