package models

// BlockSummary is the lightweight view of the head block.
// BlockNumber, Timestamp and Hash are nil when the node omitted them.
type BlockSummary struct {
	BlockNumber      *int64  `json:"blockNumber,omitempty"`
	Timestamp        *int64  `json:"timestamp,omitempty"` // epoch ms
	TransactionCount int     `json:"transactionCount"`
	Producer         string  `json:"producer"`
	Hash             *string `json:"hash,omitempty"`
}

// BlockDetail is the full view of the head block including its transactions
type BlockDetail struct {
	BlockNumber      int64               `json:"blockNumber"`
	BlockHash        string              `json:"blockHash"`
	Timestamp        int64               `json:"timestamp"` // epoch ms
	ProducerAddress  string              `json:"producerAddress"`
	TransactionCount int                 `json:"transactionCount"`
	Transactions     []TransactionRecord `json:"transactions"`
	BlockSize        int64               `json:"blockSize"`
	Confirmations    int64               `json:"confirmations"`
	Version          int64               `json:"version"`
}
