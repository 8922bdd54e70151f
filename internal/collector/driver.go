package collector

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	json "github.com/goccy/go-json"

	"lpec/internal/checkpoint"
	"lpec/internal/models"
	"lpec/internal/providers"
	"lpec/internal/sink"
	"lpec/internal/structures"
)

const (
	cmdReporting = "reporting"
	apiUser      = "splunk.collector"
	apiUserScope = "allusers"
)

// ErrQueryRejected marks a decoded response whose status field is not OK.
// The whole invocation terminates on it; the host maps it to a non-zero
// exit.
var ErrQueryRejected = errors.New("reporting query rejected, validate request params")

type reportRequest struct {
	CID      string      `json:"cid"`
	ProvHash string      `json:"provhash"`
	Cmd      string      `json:"cmd"`
	APIUser  string      `json:"apiuser"`
	User     string      `json:"user"`
	Data     reportRange `json:"data"`
}

type reportRange struct {
	From string `json:"from"`
	To   string `json:"to"`
}

type wireEvent struct {
	ID  string
	Raw json.RawMessage
}

// Driver runs the per-window fetch, decode, emit, checkpoint cycle. One
// invocation is single-threaded: each window is fully drained before the
// next begins.
type Driver struct {
	conf        *structures.Config
	logger      providers.Logger
	client      providers.HTTPClientInterface
	sink        sink.Sink
	checkpoints *checkpoint.Adapter
	cache       providers.CacheProviderInterface
	archive     *Archive
	planner     *Planner
	metrics     providers.MetricsProviderInterface
	now         func() time.Time
}

func NewDriver(
	conf *structures.Config,
	logger providers.Logger,
	client providers.HTTPClientInterface,
	snk sink.Sink,
	checkpoints *checkpoint.Adapter,
	cache providers.CacheProviderInterface,
	archive *Archive,
	planner *Planner,
	metrics providers.MetricsProviderInterface,
) *Driver {
	return &Driver{
		conf:        conf,
		logger:      logger,
		client:      client,
		sink:        snk,
		checkpoints: checkpoints,
		cache:       cache,
		archive:     archive,
		planner:     planner,
		metrics:     metrics,
		now:         time.Now,
	}
}

// Collect performs one full invocation: load checkpoint, plan windows, then
// drain every window in order. Returns the number of emitted events.
func (d *Driver) Collect(ctx context.Context) (int, error) {
	now := d.now()

	var cp *models.CheckpointRecord
	if rec, ok := d.checkpoints.Load(ctx); ok {
		cp = &rec
	}

	var opStart *time.Time
	if ts := d.conf.LastPass.TimeStart; ts != "" {
		if t, ok := models.ToBoundedInstant(ts, now); ok {
			opStart = &t
		} else {
			d.logger.Warnf(providers.TypeCollect, "Validating time format. out of range. time_val=%q", ts)
		}
	}

	effStart := d.planner.EffectiveStart(opStart, cp, now)
	windows := d.planner.Windows(effStart, now)
	d.metrics.ObserveWindowsPlanned(len(windows))

	if d.planner.SpanDays(effStart, now) >= 7 {
		d.logger.Infof(providers.TypeCollect, "LastPass event report collection. large date range. start=%q end=%q",
			models.ToWireFormat(effStart), models.ToWireFormat(now))
	}

	total := 0
	for _, w := range windows {
		n, err := d.collectWindow(ctx, w, effStart, now)
		total += n
		if err != nil {
			if errors.Is(err, ErrQueryRejected) {
				d.logger.Errorf(providers.TypeCollect,
					"LastPass event report collection. REST call successful, but query is bad. Validate request params. Terminating run")
				return total, err
			}
			d.logger.Errorf(providers.TypeCollect, "LastPass event report collection. Error in forwarding data: %s", err)
			return total, err
		}
	}

	d.metrics.SetLastRunTime(now)
	return total, nil
}

func (d *Driver) collectWindow(ctx context.Context, w models.QueryWindow, effStart, now time.Time) (int, error) {
	req := reportRequest{
		CID:      d.conf.LastPass.CID,
		ProvHash: d.conf.LastPass.ProvHash,
		Cmd:      cmdReporting,
		APIUser:  apiUser,
		User:     apiUserScope,
		Data: reportRange{
			From: models.ToWireFormat(w.From),
			To:   models.ToWireFormat(w.To),
		},
	}
	body, err := json.Marshal(req)
	if err != nil {
		return 0, err
	}

	d.logger.Debugf(providers.TypeCollect, "LastPass event report collection. Tracking event pulling: time_start=%q time_end=%q",
		req.Data.From, req.Data.To)

	fetchStart := time.Now()
	resp, err := d.client.Post(ctx, d.conf.LastPass.APIURL, nil, body)
	d.metrics.ObserveFetchDuration(time.Since(fetchStart))
	if err != nil {
		d.metrics.IncFetchErrors()
		return 0, fmt.Errorf("request data failed: %w", err)
	}

	// Transport and auth trouble is logged and the body still decoded: a
	// decodable non-OK status is fatal regardless of the HTTP code, while a
	// warned body that does not decode only skips the window.
	warned := false
	if resp.StatusCode != 200 {
		d.metrics.IncFetchErrors()
		d.logger.Errorf(providers.TypeCollect, "LastPass event report collection. request data failed. status=%d", resp.StatusCode)
		warned = true
	} else if strings.Contains(resp.Text(), "Authorization Error") {
		d.metrics.IncFetchErrors()
		d.logger.Errorf(providers.TypeCollect, "LastPass event report collection. request data failed. 401: Unauthorized. Verify cid/provhash.")
		warned = true
	}

	if err := d.archive.Write(w, resp.Body); err != nil {
		d.logger.Warnf(providers.TypeCollect, "Archiving response failed: %s", err)
	}

	status, events, err := decodeReport(resp.Body)
	if err != nil {
		if warned {
			return 0, nil
		}
		return 0, fmt.Errorf("decoding report response: %w", err)
	}
	if !strings.Contains(status, "OK") {
		d.metrics.IncQueryRejections()
		return 0, ErrQueryRejected
	}

	emitted := 0
	var lastEventTime time.Time

	checkpointEvery := d.conf.Collector.CheckpointEvery
	if checkpointEvery <= 0 {
		checkpointEvery = 1000
	}

	meta := sink.Metadata{
		Source:     d.conf.Collector.Source,
		Sourcetype: d.conf.Collector.Sourcetype,
	}

	for _, ev := range events {
		if _, seen := d.cache.Get(ev.ID); seen {
			d.metrics.IncDedupSkipped()
			continue
		}

		var payload map[string]any
		if err := json.Unmarshal(ev.Raw, &payload); err != nil {
			return emitted, fmt.Errorf("decoding event %s: %w", ev.ID, err)
		}

		collected := d.now()
		payload["event_id"] = ev.ID
		payload["time_collected"] = epochSeconds(collected)

		// Event time comes from the record itself when parseable; the
		// fallback is the ingestion wall clock, which keeps sub-second
		// precision the parsed path does not have.
		eventTime, ok := models.ToInstant(payload["Time"])
		if !ok {
			eventTime = collected
		}

		data, err := json.Marshal(payload)
		if err != nil {
			return emitted, fmt.Errorf("encoding event %s: %w", ev.ID, err)
		}
		if err := d.sink.Emit(ctx, data, eventTime, meta); err != nil {
			return emitted, fmt.Errorf("emitting event %s: %w", ev.ID, err)
		}

		d.cache.Set(ev.ID, []byte{1})
		emitted++
		d.metrics.IncEventsEmitted(1)
		lastEventTime = eventTime

		if emitted%checkpointEvery == 0 {
			if err := d.saveCheckpoint(ctx, lastEventTime, effStart, now, req.Data); err != nil {
				return emitted, err
			}
		}
	}

	if emitted > 0 {
		if err := d.saveCheckpoint(ctx, lastEventTime, effStart, now, req.Data); err != nil {
			return emitted, err
		}
	}

	return emitted, nil
}

func (d *Driver) saveCheckpoint(ctx context.Context, curr, start, end time.Time, rng reportRange) error {
	if err := d.checkpoints.Save(ctx, curr, start, end); err != nil {
		return err
	}
	d.metrics.IncCheckpointWrites()
	d.logger.Debugf(providers.TypeCheckpoint,
		"LastPass event report collection. Updating checkpoint to date: time_start=%q time_end=%q curr_time=%q",
		rng.From, rng.To, models.ToWireFormat(curr))
	return nil
}

// decodeReport parses the vendor body while preserving the order of the
// record-by-ID mapping. The response is documented most-recent-first and
// the last record processed drives the checkpoint's time_curr, so records
// must not be re-sorted.
func decodeReport(body []byte) (string, []wireEvent, error) {
	dec := json.NewDecoder(bytes.NewReader(body))

	tok, err := dec.Token()
	if err != nil {
		return "", nil, err
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '{' {
		return "", nil, fmt.Errorf("unexpected response shape: %v", tok)
	}

	var status string
	var events []wireEvent

	for dec.More() {
		keyTok, err := dec.Token()
		if err != nil {
			return "", nil, err
		}
		key, _ := keyTok.(string)

		switch key {
		case "status":
			if err := dec.Decode(&status); err != nil {
				return "", nil, err
			}
		case "data":
			tok, err := dec.Token()
			if err != nil {
				return "", nil, err
			}
			delim, ok := tok.(json.Delim)
			if !ok {
				// data is null or a scalar: nothing to collect
				continue
			}
			if delim != '{' {
				return "", nil, fmt.Errorf("unexpected data shape: %v", tok)
			}
			for dec.More() {
				idTok, err := dec.Token()
				if err != nil {
					return "", nil, err
				}
				id, _ := idTok.(string)
				var raw json.RawMessage
				if err := dec.Decode(&raw); err != nil {
					return "", nil, err
				}
				events = append(events, wireEvent{ID: id, Raw: raw})
			}
			if _, err := dec.Token(); err != nil {
				return "", nil, err
			}
		default:
			var skip json.RawMessage
			if err := dec.Decode(&skip); err != nil {
				return "", nil, err
			}
		}
	}

	return status, events, nil
}

func epochSeconds(t time.Time) float64 {
	return float64(t.UnixNano()) / 1e9
}
