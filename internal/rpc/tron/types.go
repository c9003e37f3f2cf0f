package tron

import "encoding/json"

// DefaultEndpoint is the node path returning the current head block
const DefaultEndpoint = "wallet/getnowblock"

// ContractType is the type tag of a transaction contract entry
type ContractType string

const (
	ContractTypeTransfer             ContractType = "TransferContract"
	ContractTypeTransferAsset        ContractType = "TransferAssetContract"
	ContractTypeTriggerSmartContract ContractType = "TriggerSmartContract"
)

// RawBlock is the undecoded response body of the node. It is handed to the
// block processor as-is, even when empty or malformed.
type RawBlock json.RawMessage

// Pointer fields distinguish "absent in the payload" from zero values.
type (
	Block struct {
		BlockID      *string      `json:"blockID"`
		BlockHeader  *BlockHeader `json:"block_header"`
		Transactions []Txn        `json:"transactions"`
		Confirmed    int64        `json:"confirmed"`
	}

	BlockHeader struct {
		RawData *BlockRawData `json:"raw_data"`
	}

	BlockRawData struct {
		Number         *int64 `json:"number"`
		Timestamp      *int64 `json:"timestamp"`
		WitnessAddress string `json:"witness_address"`
		ParentHash     string `json:"parentHash"`
		Size           int64  `json:"size"`
		Version        int64  `json:"version"`
	}

	Txn struct {
		TxID    string     `json:"txID"`
		RawData TxnRawData `json:"raw_data"`
	}

	TxnRawData struct {
		Contract  []Contract `json:"contract"`
		Timestamp int64      `json:"timestamp"`
	}

	Contract struct {
		Parameter ContractParam `json:"parameter"`
		Type      ContractType  `json:"type"`
	}

	ContractParam struct {
		Value ContractValue `json:"value"`
	}

	// ContractValue holds the fields shared by transfer-like contracts.
	// Contracts without a receiver or amount leave them zero.
	ContractValue struct {
		OwnerAddress string `json:"owner_address"`
		ToAddress    string `json:"to_address"`
		Amount       int64  `json:"amount"`
	}
)
