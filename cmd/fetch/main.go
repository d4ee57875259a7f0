// Command fetch dispatches one JSON request against a configured API root.
package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"maps"
	"os"
	"strings"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"

	"github.com/kochabx/fetch/config"
	"github.com/kochabx/fetch/core/net/http"
	"github.com/kochabx/fetch/core/tag"
	"github.com/kochabx/fetch/fetch"
	"github.com/kochabx/fetch/log"
	"github.com/kochabx/fetch/log/writer"
	"github.com/kochabx/fetch/metrics"
)

type flags struct {
	config   string
	apiURL   string
	method   string
	data     string
	headers  []string
	external bool
	metrics  bool
}

func main() {
	if err := newRootCmd(os.Stdout, os.Stderr).Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func newRootCmd(stdout, stderr io.Writer) *cobra.Command {
	f := &flags{}

	cmd := &cobra.Command{
		Use:   "fetch [url]",
		Short: "Dispatch a JSON request against the configured API root",
		Example: `  fetch /users/1
  fetch -X post_auth -d '{"name":"n"}' /users
  fetch --external https://example.org/health`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd.Context(), f, args[0], stdout, stderr)
		},
	}

	fs := cmd.Flags()
	fs.StringVarP(&f.config, "config", "c", "", "config file (yaml, json or toml)")
	fs.StringVar(&f.apiURL, "api-url", "", "API root, overrides api_url from the config file")
	fs.StringVarP(&f.method, "method", "X", "GET", "method token: GET, PUT, POST, PATCH or *_AUTH variants")
	fs.StringVarP(&f.data, "data", "d", "", "request body; sent as JSON when valid JSON, verbatim otherwise")
	fs.StringArrayVarP(&f.headers, "header", "H", nil, "extra header as key:value, repeatable")
	fs.BoolVar(&f.external, "external", false, "send the URL as is instead of prefixing the API root")
	fs.BoolVar(&f.metrics, "metrics", false, "write request metrics to stderr after the request")

	return cmd
}

func run(ctx context.Context, f *flags, url string, stdout, stderr io.Writer) error {
	if ctx == nil {
		ctx = context.Background()
	}

	cfg, err := loadConfig(f)
	if err != nil {
		return err
	}
	if cfg.APIURL == "" && !f.external {
		return fmt.Errorf("no API root: set api_url or pass --api-url")
	}

	logger, err := newLogger(cfg.Log, stderr)
	if err != nil {
		return err
	}
	defer logger.Close()
	log.SetGlobalLogger(logger)

	tokens, release, err := cfg.Token.provider()
	if err != nil {
		return err
	}
	defer release()

	headers, err := parseHeaders(cfg.Headers, f.headers)
	if err != nil {
		return err
	}

	opts := []fetch.Option{fetch.WithRoot(cfg.APIURL), fetch.WithLogger(logger)}
	if tokens != nil {
		opts = append(opts, fetch.WithTokenProvider(tokens))
	}
	if f.metrics || cfg.Metrics.Enabled {
		reg := prometheus.NewRegistry()
		collector, err := metrics.New(reg, cfg.Metrics.Namespace)
		if err != nil {
			return err
		}
		opts = append(opts, fetch.WithObserver(collector))
		defer func() {
			if err := metrics.Write(stderr, reg); err != nil {
				logger.Warn().Err(err).Msg("failed to write metrics")
			}
		}()
	}
	d, err := fetch.New(http.New(http.WithHeader(headers)), opts...)
	if err != nil {
		return err
	}

	var callOpts []fetch.CallOption
	if body := parseData(f.data); body != nil {
		callOpts = append(callOpts, fetch.WithBody(body))
	}
	if f.external {
		callOpts = append(callOpts, fetch.External())
	}

	result, err := d.Dispatch(ctx, url, f.method, callOpts...)
	if err != nil {
		if se, ok := fetch.AsStatusError(err); ok {
			printStatusError(stderr, se)
		}
		return err
	}

	out, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(stdout, string(out))
	return err
}

func loadConfig(f *flags) (*Config, error) {
	cfg := &Config{}
	if f.config != "" {
		if err := config.New(cfg, config.WithPath(f.config)).Load(); err != nil {
			return nil, err
		}
	} else if err := tag.ApplyDefaults(cfg); err != nil {
		return nil, err
	}

	if f.apiURL != "" {
		cfg.APIURL = f.apiURL
	}
	return cfg, nil
}

// newLogger keeps console output on stderr so stdout carries only the
// result.
func newLogger(c log.Config, stderr io.Writer) (*log.Logger, error) {
	if c.Output == "" || c.Output == "console" {
		return log.FromConfig(c, log.WithWriter(writer.ConsoleTo(stderr)))
	}
	return log.FromConfig(c)
}

// parseHeaders layers "key:value" flags over the configured headers.
func parseHeaders(base map[string]string, flags []string) (map[string]string, error) {
	headers := make(map[string]string, len(base)+len(flags))
	maps.Copy(headers, base)
	for _, h := range flags {
		k, v, ok := strings.Cut(h, ":")
		if !ok || strings.TrimSpace(k) == "" {
			return nil, fmt.Errorf("invalid header %q, want key:value", h)
		}
		headers[strings.TrimSpace(k)] = strings.TrimSpace(v)
	}
	return headers, nil
}

func parseData(s string) any {
	switch {
	case s == "":
		return nil
	case json.Valid([]byte(s)):
		return json.RawMessage(s)
	default:
		return s
	}
}

func printStatusError(w io.Writer, se *fetch.StatusError) {
	fmt.Fprintf(w, "%d %s\n", se.StatusCode, se.Message)
	if se.Errors == nil {
		return
	}
	if out, err := json.MarshalIndent(se.Errors, "", "  "); err == nil {
		fmt.Fprintln(w, string(out))
	}
}
