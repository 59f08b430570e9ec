package handler

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/use-agent/kanoon/models"
)

// Runner executes one scrape-and-deliver job.
type Runner interface {
	Run(ctx context.Context, req *models.ScrapeRequest) (*models.RunSummary, error)
}

// Scrape returns a handler for POST /scrape.
//
// Orchestration flow:
//  1. Parse & validate request, apply defaults.
//  2. Runner.Run, detached from client cancellation.
//  3. 200 with the run summary, or 400/500 by error code.
func Scrape(runner Runner) gin.HandlerFunc {
	return func(c *gin.Context) {
		// ── 1. Parse request ────────────────────────────────────────
		var req models.ScrapeRequest
		if err := c.ShouldBindJSON(&req); err != nil && !errors.Is(err, io.EOF) {
			c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: err.Error()})
			return
		}
		req.Defaults()
		if verr := req.Validate(); verr != nil {
			c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: verr.Description()})
			return
		}

		slog.Info("scrape request accepted",
			"url", req.URL,
			"webhook_url", req.WebhookURL,
			"max_documents", req.Limit(),
			"format", req.Format,
		)

		// ── 2. Run ──────────────────────────────────────────────────
		// A started run is never cancelled, even if the client goes away.
		summary, err := runner.Run(context.WithoutCancel(c.Request.Context()), &req)
		if err != nil {
			respondError(c, err)
			return
		}

		// ── 3. Respond ──────────────────────────────────────────────
		c.JSON(http.StatusOK, summary)
	}
}

// respondError maps a run error to its HTTP status and JSON body.
func respondError(c *gin.Context, err error) {
	var scrapeErr *models.ScrapeError
	if !errors.As(err, &scrapeErr) {
		scrapeErr = models.NewScrapeError(models.ErrCodeInternal, err.Error(), nil)
	}

	if scrapeErr.Code == models.ErrCodeInvalidInput {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: scrapeErr.Description()})
		return
	}

	slog.Error("scrape run failed", "code", scrapeErr.Code, "error", scrapeErr.Description())
	c.JSON(http.StatusInternalServerError, models.FailureResponse{
		Success: false,
		Error:   scrapeErr.Description(),
		Message: models.CriticalErrorMessage,
	})
}
