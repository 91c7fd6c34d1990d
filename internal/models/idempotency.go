package models

import "time"

// IdempotencyKey caches a response so repeated submissions of the same
// mutating request replay the original outcome instead of running twice.
type IdempotencyKey struct {
	Key            string    `json:"key"`
	RequestPath    string    `json:"requestPath"`
	ResponseStatus int       `json:"responseStatus"`
	ResponseBody   string    `json:"responseBody"`
	CreatedAt      time.Time `json:"createdAt"`
}
