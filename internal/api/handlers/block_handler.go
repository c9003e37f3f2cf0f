package handlers

import (
	"context"
	"log/slog"

	"github.com/gin-gonic/gin"

	"github.com/thanhnp/tron-block-api/internal/apperr"
	"github.com/thanhnp/tron-block-api/internal/models"
	"github.com/thanhnp/tron-block-api/internal/rpc/tron"
)

// BlockFetcher returns the raw head block from the node
type BlockFetcher interface {
	FetchLatestBlock(ctx context.Context) (tron.RawBlock, error)
}

// BlockProcessor normalizes and validates raw blocks
type BlockProcessor interface {
	ToSummary(raw tron.RawBlock) (*models.BlockSummary, error)
	ToDetail(raw tron.RawBlock) (*models.BlockDetail, error)
	Validate(summary *models.BlockSummary) bool
}

// BlockHandler handles head block API requests. Every request triggers a
// fresh node call; nothing is cached.
type BlockHandler struct {
	client    BlockFetcher
	processor BlockProcessor
	logger    *slog.Logger
}

// NewBlockHandler creates a new BlockHandler
func NewBlockHandler(client BlockFetcher, processor BlockProcessor, logger *slog.Logger) *BlockHandler {
	return &BlockHandler{
		client:    client,
		processor: processor,
		logger:    logger,
	}
}

func (h *BlockHandler) RegisterRoutes(r gin.IRouter) {
	r.GET("/latest-block", h.GetLatest)
	r.GET("/latest-details", h.GetLatestDetails)
}

// GetLatest returns the validated summary of the head block
// GET /latest-block
func (h *BlockHandler) GetLatest(c *gin.Context) {
	raw, err := h.client.FetchLatestBlock(c.Request.Context())
	if err != nil {
		RespondError(c, h.logger, err)
		return
	}

	summary, err := h.processor.ToSummary(raw)
	if err != nil {
		RespondError(c, h.logger, err)
		return
	}

	if !h.processor.Validate(summary) {
		RespondError(c, h.logger, apperr.New(apperr.DataError, "block data validation failed"))
		return
	}

	respondOK(c, summary)
}

// GetLatestDetails returns the head block with its transactions
// GET /latest-details
func (h *BlockHandler) GetLatestDetails(c *gin.Context) {
	raw, err := h.client.FetchLatestBlock(c.Request.Context())
	if err != nil {
		RespondError(c, h.logger, err)
		return
	}

	detail, err := h.processor.ToDetail(raw)
	if err != nil {
		RespondError(c, h.logger, err)
		return
	}

	respondOK(c, detail)
}
