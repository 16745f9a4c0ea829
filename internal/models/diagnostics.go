package models

// RecordCounts is the number of stored rows per collection.
type RecordCounts struct {
	Accounts     int `json:"accounts"`
	Transactions int `json:"transactions"`
	Settings     int `json:"settings"`
}

// DiagnosticInfo describes the storage backing the gateway. A zero value
// means the status could not be determined.
type DiagnosticInfo struct {
	StorageLocation  string       `json:"storageLocation"`
	StorageExists    bool         `json:"storageExists"`
	StorageSizeBytes int64        `json:"storageSizeBytes"`
	RecordCounts     RecordCounts `json:"recordCounts"`
}
