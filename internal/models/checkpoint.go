package models

// CheckpointRecord is the only state that survives across invocations.
// All three fields are stored as stringified epoch numbers.
type CheckpointRecord struct {
	TimeCurr  string `json:"time_curr"`
	TimeStart string `json:"time_start"`
	TimeEnd   string `json:"time_end"`
}

// LegacyUpgrade lifts the historical bare-number checkpoint (window start
// only) into the current record shape. The upgraded record is in-memory
// only; it is not persisted until the next regular save.
func LegacyUpgrade(raw string) CheckpointRecord {
	return CheckpointRecord{TimeStart: raw}
}
