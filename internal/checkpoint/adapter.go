package checkpoint

import (
	"context"
	"strings"

	json "github.com/goccy/go-json"

	"lpec/internal/models"
	"lpec/internal/providers"
	"lpec/internal/structures"
)

// Adapter reads and writes the named checkpoint record. Loading is
// fail-safe: an unreadable, legacy-format or partially populated record is
// treated as absent, so any corruption degrades to "start fresh".
type Adapter struct {
	store  Store
	logger providers.Logger
	key    string
}

func NewAdapter(store Store, conf *structures.Config, logger providers.Logger) *Adapter {
	return &Adapter{store: store, logger: logger, key: conf.Checkpoint.Key}
}

// Load fetches the stored record. ok=false means "no usable checkpoint";
// it is never an error. A bare-number value is the historical format and is
// upgraded in memory to a record carrying only the window start.
func (a *Adapter) Load(ctx context.Context) (models.CheckpointRecord, bool) {
	raw, found, err := a.store.Get(ctx, a.key)
	if err != nil {
		a.logger.Warnf(providers.TypeCheckpoint, "Loading checkpoint. Unable to load checkpoint. reason=%q", err)
		return models.CheckpointRecord{}, false
	}
	if !found {
		return models.CheckpointRecord{}, false
	}

	trimmed := strings.TrimSpace(string(raw))
	if k := models.Classify(trimmed); k == models.KindDigit || k == models.KindFloat {
		a.logger.Warnf(providers.TypeCheckpoint, "Old checkpoint found. Upgrading to model with time start, end, and current values.")
		return models.LegacyUpgrade(trimmed), true
	}

	var rec models.CheckpointRecord
	if err := json.Unmarshal(raw, &rec); err != nil {
		a.logger.Warnf(providers.TypeCheckpoint, "Loading checkpoint. Malformed payload discarded. reason=%q", err)
		return models.CheckpointRecord{}, false
	}

	// The whole record is discarded if any field is missing or will not
	// normalize; a partially trusted checkpoint is worse than none.
	for _, f := range []struct{ name, val string }{
		{"time_curr", rec.TimeCurr},
		{"time_start", rec.TimeStart},
		{"time_end", rec.TimeEnd},
	} {
		if f.val == "" {
			a.logger.Warnf(providers.TypeCheckpoint, "Loading checkpoint. valid %s field not found in checkpoint payload", f.name)
			return models.CheckpointRecord{}, false
		}
		if _, err := models.ToStorageString(f.val); err != nil {
			a.logger.Warnf(providers.TypeCheckpoint, "Loading checkpoint. %s=%q failed normalization. reason=%q", f.name, f.val, err)
			return models.CheckpointRecord{}, false
		}
	}

	a.logger.Debugf(providers.TypeCheckpoint, "Extracted checkpoint time values. time_curr=%q time_start=%q time_end=%q",
		rec.TimeCurr, rec.TimeStart, rec.TimeEnd)
	return rec, true
}

// Save normalizes all three instants to storage strings and writes them as
// one record.
func (a *Adapter) Save(ctx context.Context, timeCurr, timeStart, timeEnd any) error {
	var rec models.CheckpointRecord
	var err error

	if rec.TimeCurr, err = models.ToStorageString(timeCurr); err != nil {
		return &StoreError{Op: "save", Err: err}
	}
	if rec.TimeStart, err = models.ToStorageString(timeStart); err != nil {
		return &StoreError{Op: "save", Err: err}
	}
	if rec.TimeEnd, err = models.ToStorageString(timeEnd); err != nil {
		return &StoreError{Op: "save", Err: err}
	}

	raw, err := json.Marshal(rec)
	if err != nil {
		return &StoreError{Op: "save", Err: err}
	}

	a.logger.Debugf(providers.TypeCheckpoint, "Saving checkpoint. payload=%s", raw)
	if err := a.store.Put(ctx, a.key, raw); err != nil {
		return &StoreError{Op: "save", Err: err}
	}
	return nil
}
