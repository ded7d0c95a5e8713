// Copyright (c) 2026 BookWise. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Liveness and readiness probes for the orchestrator.
package api

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/taibuivan/bookwise/internal/platform/respond"
)

// probeTimeout bounds a single dependency check.
const probeTimeout = 2 * time.Second

// Probe is one named readiness check, e.g. "postgres" or "redis".
type Probe struct {
	Name  string
	Check func(context.Context) error
}

type probeResult struct {
	Name  string `json:"name"`
	OK    bool   `json:"ok"`
	Error string `json:"error,omitempty"`
}

// NewHealthHandlers returns the /health and /ready handlers.
//
// /health answers 200 while the process runs. /ready runs every probe in
// order and answers 503 "degraded" when any of them fails.
func NewHealthHandlers(probes []Probe, logger *slog.Logger) (liveness, readiness http.HandlerFunc) {
	liveness = func(writer http.ResponseWriter, _ *http.Request) {
		respond.OK(writer, map[string]string{"status": "ok"})
	}

	readiness = func(writer http.ResponseWriter, request *http.Request) {
		results := make([]probeResult, 0, len(probes))
		status, httpStatus := "ready", http.StatusOK

		for _, probe := range probes {
			result := runProbe(request.Context(), probe)
			if !result.OK {
				status, httpStatus = "degraded", http.StatusServiceUnavailable
				logger.Error("readiness_check_failed",
					slog.String("dependency", probe.Name),
					slog.String("error", result.Error),
				)
			}
			results = append(results, result)
		}

		respond.JSON(writer, httpStatus, map[string]any{
			"status": status,
			"checks": results,
		})
	}

	return liveness, readiness
}

func runProbe(parent context.Context, probe Probe) probeResult {
	ctx, cancel := context.WithTimeout(parent, probeTimeout)
	defer cancel()

	if err := probe.Check(ctx); err != nil {
		return probeResult{Name: probe.Name, Error: err.Error()}
	}
	return probeResult{Name: probe.Name, OK: true}
}
