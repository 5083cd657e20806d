package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"time"

	"github.com/arloliu/la716/api"
	"github.com/arloliu/la716/blob"
	"github.com/arloliu/la716/internal/monitoring"
)

const shutdownTimeout = 10 * time.Second

func runServe(ctx context.Context, args []string, stderr io.Writer) error {
	fs := newFlagSet("serve", stderr)
	listen := fs.String("listen", ":8000", "HTTP listen address")
	root := fs.String("root", "/data/", "Directory holding the .716 files")
	maxBody := fs.Int("max-body", blob.DefaultMaxBodySize, "Largest data body decoded, in bytes")
	maxUpload := fs.Int64("max-upload", api.DefaultMaxUploadSize, "Largest accepted upload, in bytes")
	assetsHost := fs.String("assets-host", "", "Base URL of the echarts assets for chart pages")
	if err := parseFlags(fs, args); err != nil {
		return err
	}
	if fs.NArg() != 0 {
		return usagef("serve takes no arguments")
	}

	srv, err := api.NewServer(*root,
		api.WithMaxBodySize(*maxBody),
		api.WithMaxUploadSize(*maxUpload),
		api.WithAssetsHost(*assetsHost),
	)
	if err != nil {
		return err
	}

	ln, err := net.Listen("tcp", *listen)
	if err != nil {
		return err
	}

	return serve(ctx, ln, srv.Handler())
}

// serve runs an HTTP server on ln until ctx is done, then shuts it down gracefully.
func serve(ctx context.Context, ln net.Listener, h http.Handler) error {
	hs := &http.Server{
		Handler:           h,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		monitoring.Logf("la716: listening on http://%s", ln.Addr())
		errCh <- hs.Serve(ln)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := hs.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	if err := <-errCh; err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	monitoring.Logf("la716: server stopped")

	return nil
}
