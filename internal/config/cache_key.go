package config

import (
	"fmt"
)

type CacheKeyStruct struct{}

func NewCacheKeyStruct() *CacheKeyStruct {
	return &CacheKeyStruct{}
}

// UserLoginKey returns the cache key for a user's login session (JTI).
func (r *CacheKeyStruct) UserLoginKey(userID int) string {
	return fmt.Sprintf("login:%d", userID)
}

// UserExamSessionKey returns the cache key holding a user's in-progress
// exam session state. One key per user: starting a new exam overwrites
// whatever stale session was left behind.
func (r *CacheKeyStruct) UserExamSessionKey(userID int) string {
	return fmt.Sprintf("user:%d:exam_session", userID)
}

var CacheKey = NewCacheKeyStruct()
