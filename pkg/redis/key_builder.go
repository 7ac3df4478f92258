package redis

import (
	"fmt"
	"strings"
)

// KeyBuilder provides environment-aware Redis key building so staging
// and production can share an instance without colliding.
type KeyBuilder struct {
	prefix string
}

// NewKeyBuilder creates a new key builder with environment-based prefix
func NewKeyBuilder(environment string) *KeyBuilder {
	prefix := "prod"
	if environment == "development" || environment == "staging" || environment == "test" {
		prefix = "staging"
	}
	return &KeyBuilder{prefix: prefix}
}

// BuildKey constructs a Redis key with the environment prefix
func (kb *KeyBuilder) BuildKey(key string) string {
	return fmt.Sprintf("%s:%s", kb.prefix, key)
}

// GetPrefix returns the current environment prefix
func (kb *KeyBuilder) GetPrefix() string {
	return kb.prefix
}

// KeyActivityByName builds the cache key for an activity looked up by
// its case-insensitive name.
func (kb *KeyBuilder) KeyActivityByName(name string) string {
	return kb.BuildKey(fmt.Sprintf(KeyActivityByName, strings.ToLower(name)))
}

// KeyScanCooldown builds the cooldown marker key for a (user, activity) pair.
func (kb *KeyBuilder) KeyScanCooldown(userID, activityID int64) string {
	return kb.BuildKey(fmt.Sprintf(KeyScanCooldown, userID, activityID))
}
