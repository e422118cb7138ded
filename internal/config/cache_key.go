package config

import (
	"fmt"
)

type CacheKeyStruct struct{}

func NewCacheKeyStruct() *CacheKeyStruct {
	return &CacheKeyStruct{}
}

// ExamPayloadKey returns the cache key for an exam's student-facing payload
func (r *CacheKeyStruct) ExamPayloadKey(examID string) string {
	return fmt.Sprintf("exam:%s:payload", examID)
}

// ExamAnswerKey returns the cache key for an exam's answer key hash
func (r *CacheKeyStruct) ExamAnswerKey(examID string) string {
	return fmt.Sprintf("exam:%s:key", examID)
}

// AttemptKey returns the cache key for an attempt's session record
func (r *CacheKeyStruct) AttemptKey(attemptID string) string {
	return fmt.Sprintf("attempt:%s", attemptID)
}

// AttemptAnswersKey returns the cache key for an attempt's answer hash
func (r *CacheKeyStruct) AttemptAnswersKey(attemptID string) string {
	return fmt.Sprintf("attempt:%s:answers", attemptID)
}

// DraftKey returns the cache key for an authoring draft
func (r *CacheKeyStruct) DraftKey(draftID string) string {
	return fmt.Sprintf("draft:%s", draftID)
}

// ExamMonitorChannel returns the Redis PubSub channel for an exam's
// live submission stream
func (r *CacheKeyStruct) ExamMonitorChannel(examID string) string {
	return fmt.Sprintf("exam:%s:monitor", examID)
}

var CacheKey = NewCacheKeyStruct()
