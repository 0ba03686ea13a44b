package config

import (
	"time"
)

// DescriptionsEnabled reports whether product pages should be fetched for
// descriptions, treating an unset value as disabled
func (s *TargetSettings) DescriptionsEnabled() bool {
	return s.WithDescriptions != nil && *s.WithDescriptions
}

// GetSleep returns the inter-request delay as time.Duration
func (s *TargetSettings) GetSleep() time.Duration {
	if s.Sleep <= 0 {
		return time.Second // default 1 second
	}
	return time.Duration(s.Sleep * float64(time.Second))
}
