package processor

import "github.com/thanhnp/tron-block-api/internal/models"

// Validate reports whether the summary carries a block number, a timestamp
// and a hash. It checks presence only, not ranges or formats.
func (p *Processor) Validate(summary *models.BlockSummary) bool {
	if summary == nil {
		p.logger.Error("Block data validation failed", "reason", "empty summary")
		return false
	}

	var missing []string
	if summary.BlockNumber == nil {
		missing = append(missing, "blockNumber")
	}
	if summary.Timestamp == nil {
		missing = append(missing, "timestamp")
	}
	if summary.Hash == nil {
		missing = append(missing, "hash")
	}

	if len(missing) > 0 {
		p.logger.Error("Block data validation failed", "missing", missing)
		return false
	}
	return true
}
