package cache

import (
	"time"
)

const (
	boardKey = "launch-board"
	infoKey  = "service-info"
)

type Cache struct {
	Cache ICache
}

type ICache interface {
	Set(key string, entry []byte) error

	Get(key string) ([]byte, error)
}

func NewLocalCache(allKeysExpTime time.Duration) (*Cache, error) {
	cache, err := NewBigCache(allKeysExpTime)
	if err != nil {
		return nil, err
	}
	return &Cache{Cache: cache}, nil
}

func (c *Cache) SetBoard(data []byte) error {
	return c.Cache.Set(boardKey, data)
}

func (c *Cache) GetBoard() ([]byte, error) {
	return c.Cache.Get(boardKey)
}

func (c *Cache) SetInfo(data []byte) error {
	return c.Cache.Set(infoKey, data)
}

func (c *Cache) GetInfo() ([]byte, error) {
	return c.Cache.Get(infoKey)
}
