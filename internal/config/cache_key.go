package config

import (
	"fmt"
)

type CacheKeyStruct struct{}

func NewCacheKeyStruct() *CacheKeyStruct {
	return &CacheKeyStruct{}
}

// SessionKey returns the cache key for a counselling session context
func (r *CacheKeyStruct) SessionKey(sessionID string) string {
	return fmt.Sprintf("session:%s", sessionID)
}

// VisualizationKey returns the cache key for a rendered chart PNG
func (r *CacheKeyStruct) VisualizationKey(kind string) string {
	return fmt.Sprintf("visualization:%s:png", kind)
}

var CacheKey = NewCacheKeyStruct()
