package handlers

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/geocoder89/fintrack/internal/cache"
	"github.com/geocoder89/fintrack/internal/config"
	"github.com/geocoder89/fintrack/internal/domain/transaction"
	"github.com/geocoder89/fintrack/internal/http/middlewares"
	"github.com/geocoder89/fintrack/internal/observability"
	"github.com/gin-gonic/gin"
)

type TransactionsStore interface {
	Create(ctx context.Context, userID string, req transaction.CreateTransactionRequest) (transaction.Transaction, error)
	ListByUser(ctx context.Context, userID string) ([]transaction.Transaction, error)
	Update(ctx context.Context, id, userID string, req transaction.UpdateTransactionRequest) (transaction.Transaction, error)
	Delete(ctx context.Context, id, userID string) error
	Summarize(ctx context.Context, userID string) (transaction.Summary, error)
}

type TransactionsHandler struct {
	store     TransactionsStore
	summaries cache.SummaryCache
	metrics   *observability.Prom
	log       *slog.Logger

	cacheBackend string // label for the cache hit/miss counters
}

func NewTransactionsHandler(store TransactionsStore, summaries cache.SummaryCache, metrics *observability.Prom, log *slog.Logger, cacheBackend string) *TransactionsHandler {
	return &TransactionsHandler{
		store:        store,
		summaries:    summaries,
		metrics:      metrics,
		log:          log,
		cacheBackend: cacheBackend,
	}
}

func (h *TransactionsHandler) Create(ctx *gin.Context) {
	userID, ok := middlewares.UserIDFromContext(ctx)

	if !ok {
		RespondUnAuthorized(ctx, "No token, authorization denied")
		return
	}

	var req transaction.CreateTransactionRequest

	if !BindJSON(ctx, &req) {
		return
	}

	cctx, cancel := config.WithTimeout(3 * time.Second)

	defer cancel()

	var created transaction.Transaction

	err := h.metrics.ObserveDB("tx_create", func() error {
		var err error
		created, err = h.store.Create(cctx, userID, req)
		return err
	})

	if err != nil {
		h.log.Error("create transaction failed", "err", err)
		RespondInternal(ctx, "Server error")
		return
	}

	// totals changed, drop the cached summary
	h.summaries.Invalidate(cctx, userID)

	ctx.JSON(http.StatusOK, created)
}

func (h *TransactionsHandler) List(ctx *gin.Context) {
	userID, ok := middlewares.UserIDFromContext(ctx)

	if !ok {
		RespondUnAuthorized(ctx, "No token, authorization denied")
		return
	}

	cctx, cancel := config.WithTimeout(3 * time.Second)

	defer cancel()

	var list []transaction.Transaction

	err := h.metrics.ObserveDB("tx_list", func() error {
		var err error
		list, err = h.store.ListByUser(cctx, userID)
		return err
	})

	if err != nil {
		h.log.Error("list transactions failed", "err", err)
		RespondInternal(ctx, "Server error")
		return
	}

	RespondJSONWithETag(ctx, http.StatusOK, list)
}

func (h *TransactionsHandler) Update(ctx *gin.Context) {
	userID, ok := middlewares.UserIDFromContext(ctx)

	if !ok {
		RespondUnAuthorized(ctx, "No token, authorization denied")
		return
	}

	id := ctx.Param("id")

	var req transaction.UpdateTransactionRequest

	if !BindJSON(ctx, &req) {
		return
	}

	cctx, cancel := config.WithTimeout(3 * time.Second)

	defer cancel()

	var updated transaction.Transaction

	err := h.metrics.ObserveDB("tx_update", func() error {
		var err error
		updated, err = h.store.Update(cctx, id, userID, req)
		return err
	})

	if err != nil {
		// missing and not-owned answer the same way
		if errors.Is(err, transaction.ErrNotFound) {
			RespondNotFound(ctx, "Transaction not found")
			return
		}

		h.log.Error("update transaction failed", "err", err)
		RespondInternal(ctx, "Server error")
		return
	}

	h.summaries.Invalidate(cctx, userID)

	ctx.JSON(http.StatusOK, updated)
}

func (h *TransactionsHandler) Delete(ctx *gin.Context) {
	userID, ok := middlewares.UserIDFromContext(ctx)

	if !ok {
		RespondUnAuthorized(ctx, "No token, authorization denied")
		return
	}

	id := ctx.Param("id")

	cctx, cancel := config.WithTimeout(3 * time.Second)

	defer cancel()

	err := h.metrics.ObserveDB("tx_delete", func() error {
		return h.store.Delete(cctx, id, userID)
	})

	if err != nil {
		if errors.Is(err, transaction.ErrNotFound) {
			RespondNotFound(ctx, "Transaction not found")
			return
		}

		h.log.Error("delete transaction failed", "err", err)
		RespondInternal(ctx, "Server error")
		return
	}

	h.summaries.Invalidate(cctx, userID)

	ctx.JSON(http.StatusOK, gin.H{"message": "Transaction deleted"})
}

// Summary feeds the pie chart: income and expense totals for the caller.
func (h *TransactionsHandler) Summary(ctx *gin.Context) {
	userID, ok := middlewares.UserIDFromContext(ctx)

	if !ok {
		RespondUnAuthorized(ctx, "No token, authorization denied")
		return
	}

	cctx, cancel := config.WithTimeout(3 * time.Second)

	defer cancel()

	if s, ok := h.summaries.Get(cctx, userID); ok {
		h.metrics.CacheHits.WithLabelValues(h.cacheBackend).Inc()
		ctx.JSON(http.StatusOK, s)
		return
	}

	h.metrics.CacheMisses.WithLabelValues(h.cacheBackend).Inc()

	var s transaction.Summary

	err := h.metrics.ObserveDB("tx_summarize", func() error {
		var err error
		s, err = h.store.Summarize(cctx, userID)
		return err
	})

	if err != nil {
		h.log.Error("summarize transactions failed", "err", err)
		RespondInternal(ctx, "Server error")
		return
	}

	h.summaries.Set(cctx, userID, s)

	ctx.JSON(http.StatusOK, s)
}
