package entity

import "errors"

// ErrZipNotFound is returned by zip lookups when a code has no record at all.
// Callers distinguish it from lookup infrastructure failures.
var ErrZipNotFound = errors.New("zip code not found")

// Place is one city/state pair a zip code maps to.
type Place struct {
	City  string `json:"city" bson:"city"`
	State string `json:"state" bson:"state"`
}

// Zip is a zip code lookup record. A code can map to zero, one, or several
// places; only a unique match lets the bot assume the user's city and state.
type Zip struct {
	Code   string  `json:"code" bson:"code"`
	Places []Place `json:"places" bson:"places"`
}
