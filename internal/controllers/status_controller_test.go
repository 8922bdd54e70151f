package controllers

import (
	"net/http"
	"net/http/httptest"
	"testing"

	json "github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"lpec/internal/checkpoint"
	"lpec/internal/services"
	"lpec/internal/structures"
	"lpec/internal/testutil"
)

func newStatusController(store checkpoint.Store) *StatusController {
	conf := &structures.Config{}
	conf.Checkpoint.Key = "LastPass_reporting"
	adapter := checkpoint.NewAdapter(store, conf, &testutil.MockLogger{})
	return NewStatusController(services.NewRunStatusService(), adapter)
}

func TestStatusWithoutCheckpoint(t *testing.T) {
	sc := newStatusController(testutil.NewMockStore())

	req := httptest.NewRequest(http.MethodGet, "/status", nil)
	rec := httptest.NewRecorder()
	sc.Status(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)

	var resp map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.NotContains(t, resp, "checkpoint")
}

func TestStatusWithCheckpoint(t *testing.T) {
	store := testutil.NewMockStore()
	store.Data["LastPass_reporting"] = []byte(`{"time_curr":"1638757100","time_start":"1638700000","time_end":"1638757200"}`)
	sc := newStatusController(store)

	req := httptest.NewRequest(http.MethodGet, "/status", nil)
	rec := httptest.NewRecorder()
	sc.Status(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)

	var resp struct {
		Checkpoint struct {
			TimeCurr string `json:"time_curr"`
		} `json:"checkpoint"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "1638757100", resp.Checkpoint.TimeCurr)
}
