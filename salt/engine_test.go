package salt

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
)

type failSource struct{ name string }

func (f failSource) Name() string { return f.name }
func (f failSource) Mine(ctx context.Context, req MineRequest) (Salt, error) {
	return Salt{}, errors.New("unavailable")
}

func TestSearchFallsBackToRandom(t *testing.T) {
	eng := NewEngineWithSources(failSource{"remote"}, failSource{"forge"}, RandomSource{})

	res, err := eng.Search(context.Background(), MineRequest{TokenName: "T", TokenSymbol: "T"})
	assert.NoError(t, err)
	assert.False(t, res.Mined)
	assert.Contains(t, res.Reason, "remote")
	assert.Contains(t, res.Reason, "forge")
	assert.NotEqual(t, Salt{}, res.Salt)
}

func TestSearchRandomSaltsDiffer(t *testing.T) {
	eng := NewEngineWithSources(RandomSource{})
	r1, err := eng.Search(context.Background(), MineRequest{})
	assert.NoError(t, err)
	r2, err := eng.Search(context.Background(), MineRequest{})
	assert.NoError(t, err)
	assert.NotEqual(t, r1.Salt, r2.Salt)
}

func TestRemoteSourceMine(t *testing.T) {
	const minedSalt = "0x7a7a7a7a7a7a7a7a7a7a7a7a7a7a7a7a7a7a7a7a7a7a7a7a7a7a7a7a7a7a7a7a"
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/mine", r.URL.Path)
		assert.Equal(t, "secret", r.Header.Get("X-API-Key"))
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"salt":"` + minedSalt + `","tokenName":"Molty Coin","tokenSymbol":"MOLTY"}`))
	}))
	defer srv.Close()

	src := NewRemoteSource(srv.URL, "secret")
	s, err := src.Mine(context.Background(), MineRequest{TokenName: "Molty Coin", TokenSymbol: "MOLTY"})
	assert.NoError(t, err)
	assert.Equal(t, minedSalt, s.Hex())
}

func TestRemoteSourceRejectsWrongTokenEcho(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"salt":"0x7a7a7a7a7a7a7a7a7a7a7a7a7a7a7a7a7a7a7a7a7a7a7a7a7a7a7a7a7a7a7a7a","tokenName":"Other","tokenSymbol":"OTHR"}`))
	}))
	defer srv.Close()

	src := NewRemoteSource(srv.URL, "")
	_, err := src.Mine(context.Background(), MineRequest{TokenName: "Molty Coin", TokenSymbol: "MOLTY"})
	assert.Error(t, err)
}

func TestRemoteSourceNon2xx(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		w.Write([]byte(`{"error":"mining failed"}`))
	}))
	defer srv.Close()

	src := NewRemoteSource(srv.URL, "")
	_, err := src.Mine(context.Background(), MineRequest{})
	assert.Error(t, err)

	eng := NewEngineWithSources(src, RandomSource{})
	res, err := eng.Search(context.Background(), MineRequest{})
	assert.NoError(t, err)
	assert.False(t, res.Mined)
}
