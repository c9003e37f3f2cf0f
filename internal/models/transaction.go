package models

// TransactionRecord is a flattened transaction built from its first contract entry
type TransactionRecord struct {
	TxID         string `json:"txId"`
	FromAddress  string `json:"fromAddress"`
	ToAddress    string `json:"toAddress"`
	Amount       int64  `json:"amount"` // SUN
	Timestamp    int64  `json:"timestamp"`
	ContractType string `json:"contractType"`
}
