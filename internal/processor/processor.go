package processor

import (
	"bytes"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/thanhnp/tron-block-api/internal/apperr"
	"github.com/thanhnp/tron-block-api/internal/models"
	"github.com/thanhnp/tron-block-api/internal/rpc/tron"
)

const invalidBlockMsg = "invalid block data structure"

type Option func(*Processor)

// WithBase58Addresses renders hex account addresses (41...) as base58check (T...)
func WithBase58Addresses(enabled bool) Option {
	return func(p *Processor) {
		p.base58 = enabled
	}
}

// Processor turns raw node blocks into the summary and detail views.
// It is stateless apart from its options.
type Processor struct {
	base58 bool
	logger *slog.Logger
}

func New(logger *slog.Logger, opts ...Option) *Processor {
	if logger == nil {
		logger = slog.Default()
	}
	p := &Processor{logger: logger.With("component", "processor")}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// ToSummary builds the lightweight block view
func (p *Processor) ToSummary(raw tron.RawBlock) (*models.BlockSummary, error) {
	block, header, err := decode(raw)
	if err != nil {
		return nil, err
	}

	return &models.BlockSummary{
		BlockNumber:      header.Number,
		Timestamp:        header.Timestamp,
		TransactionCount: len(block.Transactions),
		Producer:         p.address(header.WitnessAddress),
		Hash:             block.BlockID,
	}, nil
}

// ToDetail builds the full block view. Each transaction is mapped from its
// first contract entry only; a transaction without any contract entry makes
// the whole block invalid.
func (p *Processor) ToDetail(raw tron.RawBlock) (*models.BlockDetail, error) {
	block, header, err := decode(raw)
	if err != nil {
		return nil, err
	}

	txs := make([]models.TransactionRecord, 0, len(block.Transactions))
	for i, tx := range block.Transactions {
		record, err := p.transaction(tx)
		if err != nil {
			p.logger.Error("Rejecting block", "block", deref(block.BlockID), "tx_index", i, "error", err)
			return nil, err
		}
		txs = append(txs, record)
	}

	return &models.BlockDetail{
		BlockNumber:      deref(header.Number),
		BlockHash:        deref(block.BlockID),
		Timestamp:        deref(header.Timestamp),
		ProducerAddress:  p.address(header.WitnessAddress),
		TransactionCount: len(txs),
		Transactions:     txs,
		BlockSize:        header.Size,
		Confirmations:    block.Confirmed,
		Version:          header.Version,
	}, nil
}

func (p *Processor) transaction(tx tron.Txn) (models.TransactionRecord, error) {
	contract, ok := firstContract(tx)
	if !ok {
		return models.TransactionRecord{}, apperr.New(apperr.DataError,
			fmt.Sprintf("transaction %s has no contract entries", tx.TxID))
	}

	value := contract.Parameter.Value
	return models.TransactionRecord{
		TxID:         tx.TxID,
		FromAddress:  p.address(value.OwnerAddress),
		ToAddress:    p.address(value.ToAddress),
		Amount:       value.Amount,
		Timestamp:    tx.RawData.Timestamp,
		ContractType: string(contract.Type),
	}, nil
}

// firstContract picks the contract entry a transaction record is built from.
// TRON transactions carry exactly one contract in practice; extra entries are ignored.
func firstContract(tx tron.Txn) (tron.Contract, bool) {
	if len(tx.RawData.Contract) == 0 {
		return tron.Contract{}, false
	}
	return tx.RawData.Contract[0], true
}

func (p *Processor) address(addr string) string {
	if !p.base58 {
		return addr
	}
	return tron.ToBase58Address(addr)
}

func decode(raw tron.RawBlock) (*tron.Block, *tron.BlockRawData, error) {
	if len(bytes.TrimSpace(raw)) == 0 {
		return nil, nil, apperr.New(apperr.DataError, invalidBlockMsg)
	}

	var block tron.Block
	if err := json.Unmarshal(raw, &block); err != nil {
		return nil, nil, apperr.Wrap(apperr.DataError, invalidBlockMsg, err)
	}
	if block.BlockHeader == nil || block.BlockHeader.RawData == nil {
		return nil, nil, apperr.New(apperr.DataError, invalidBlockMsg)
	}
	return &block, block.BlockHeader.RawData, nil
}

func deref[T any](v *T) T {
	var zero T
	if v == nil {
		return zero
	}
	return *v
}
