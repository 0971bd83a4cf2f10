package cache

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestLocalCache(t *testing.T) {
	c, err := NewLocalCache(time.Minute)
	assert.NoError(t, err)

	err = c.SetBoard([]byte(`[{"symbol":"MOLTY"}]`))
	assert.NoError(t, err)
	data, err := c.GetBoard()
	assert.NoError(t, err)
	assert.Equal(t, `[{"symbol":"MOLTY"}]`, string(data))

	_, err = c.GetInfo()
	assert.Error(t, err)
	err = c.SetInfo([]byte(`{"chainId":84532}`))
	assert.NoError(t, err)
	data, err = c.GetInfo()
	assert.NoError(t, err)
	assert.Equal(t, `{"chainId":84532}`, string(data))
}
