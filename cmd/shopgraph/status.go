// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Shopgraph Contributors

package main

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/samber/oops"
	"github.com/spf13/cobra"

	"github.com/shopgraph/shopgraph/internal/config"
)

// ServerStatus holds the probe results for a running server.
type ServerStatus struct {
	Addr  string `json:"addr"`
	Live  bool   `json:"live"`
	Ready bool   `json:"ready"`
	Error string `json:"error,omitempty"`
}

// statusConfig holds configuration for the status command.
type statusConfig struct {
	jsonOutput  bool
	metricsAddr string
}

// NewStatusCmd creates the status subcommand.
func NewStatusCmd() *cobra.Command {
	cfg := &statusConfig{}

	cmd := &cobra.Command{
		Use:   "status",
		Short: "Show health of a running Shopgraph server",
		Long: `Probes the observability endpoints of a running server and reports
liveness and readiness. The address comes from the config file unless
--metrics-addr overrides it.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runStatus(cmd, cfg)
		},
	}

	cmd.Flags().BoolVar(&cfg.jsonOutput, "json", false, "output status as JSON")
	cmd.Flags().StringVar(&cfg.metricsAddr, "metrics-addr", "", "metrics/health address to probe")

	return cmd
}

func runStatus(cmd *cobra.Command, cfg *statusConfig) error {
	addr := cfg.metricsAddr
	if addr == "" {
		// Status only needs the metrics address; a missing token secret
		// should not block a health probe.
		appCfg, err := config.Load(configFile, nil)
		if err == nil {
			addr = appCfg.Metrics.Listen
		} else {
			addr = config.Default().Metrics.Listen
		}
	}
	if strings.HasPrefix(addr, ":") {
		addr = "127.0.0.1" + addr
	}

	status := probeServer(addr)

	if cfg.jsonOutput {
		data, err := json.MarshalIndent(status, "", "  ")
		if err != nil {
			return oops.Wrap(err)
		}
		cmd.Println(string(data))
	} else {
		cmd.Println(formatStatusTable(status))
	}

	if !status.Live {
		return oops.Code("STATUS_NOT_RUNNING").Errorf("server is not running at %s", addr)
	}
	return nil
}

// probeServer queries the liveness and readiness endpoints.
func probeServer(addr string) ServerStatus {
	status := ServerStatus{Addr: addr}
	client := &http.Client{Timeout: 2 * time.Second}

	resp, err := client.Get("http://" + addr + "/healthz/liveness")
	if err != nil {
		status.Error = fmt.Sprintf("failed to connect: %v", err)
		return status
	}
	drainAndClose(resp)
	status.Live = resp.StatusCode == http.StatusOK

	resp, err = client.Get("http://" + addr + "/healthz/readiness")
	if err != nil {
		status.Error = fmt.Sprintf("readiness probe failed: %v", err)
		return status
	}
	drainAndClose(resp)
	status.Ready = resp.StatusCode == http.StatusOK

	return status
}

func drainAndClose(resp *http.Response) {
	_, _ = io.Copy(io.Discard, resp.Body)
	_ = resp.Body.Close()
}

// formatStatusTable formats the status as a human-readable table.
func formatStatusTable(status ServerStatus) string {
	var sb strings.Builder
	w := tabwriter.NewWriter(&sb, 0, 0, 2, ' ', 0)

	_, _ = fmt.Fprintln(w, "ADDR\tLIVE\tREADY")
	_, _ = fmt.Fprintln(w, "----\t----\t-----")

	live, ready := "no", "no"
	if status.Live {
		live = "yes"
	}
	if status.Ready {
		ready = "yes"
	}
	if status.Error != "" {
		_, _ = fmt.Fprintf(w, "%s\t%s\t%s\t(%s)\n", status.Addr, live, ready, status.Error)
	} else {
		_, _ = fmt.Fprintf(w, "%s\t%s\t%s\n", status.Addr, live, ready)
	}

	_ = w.Flush()
	return sb.String()
}
