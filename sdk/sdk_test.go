package sdk

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/fomo4claw/clawlaunch/schema"
	"github.com/stretchr/testify/assert"
)

func TestPrepareLaunch(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/launch/prepare", r.URL.Path)
		assert.Equal(t, http.MethodPost, r.Method)
		req := schema.PrepareLaunchReq{}
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "MOLTY", req.TokenDetails.Symbol)
		json.NewEncoder(w).Encode(schema.RespPrepareLaunch{
			ChainID:   84532,
			SaltMined: true,
		})
	}))
	defer srv.Close()

	cli := New(srv.URL)
	res, err := cli.PrepareLaunch(schema.LaunchRequest{
		Name:   "Molty Coin",
		Symbol: "MOLTY",
		Wallet: "0x742d35cc6634c0532925a3b844bc9e7595f2bd12",
	})
	assert.NoError(t, err)
	assert.Equal(t, int64(84532), res.ChainID)
	assert.True(t, res.SaltMined)
}

func TestTriggerScanAuth(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("Authorization") != "Bearer top-secret" {
			w.WriteHeader(http.StatusUnauthorized)
			json.NewEncoder(w).Encode(schema.RespErr{Err: "unauthorized"})
			return
		}
		json.NewEncoder(w).Encode(schema.RespScan{MentionsFound: 2, Launched: 1, Skipped: 1})
	}))
	defer srv.Close()

	_, err := New(srv.URL).TriggerScan()
	assert.EqualError(t, err, "unauthorized")

	res, err := NewWithSecret(srv.URL, "top-secret").TriggerScan()
	assert.NoError(t, err)
	assert.Equal(t, 2, res.MentionsFound)
	assert.Equal(t, 1, res.Launched)
}

func TestGetLaunchNotFound(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		json.NewEncoder(w).Encode(schema.RespErr{Err: "not_found"})
	}))
	defer srv.Close()

	_, err := New(srv.URL).GetLaunch("123")
	assert.EqualError(t, err, "not_found")
}
