package models

// Source identifies which tier of the resolution pipeline produced a value.
type Source string

const (
	SourceLocal  Source = "local"
	SourceCache  Source = "cache"
	SourceRemote Source = "remote"
)

// Item is the outcome of resolving a single query token.
type Item struct {
	Query  string `json:"query"`
	Kcal   int    `json:"kcal"`
	Found  bool   `json:"found"`
	Source Source `json:"source,omitempty"`
}

// Report is the structured result of processing one message: per-item
// outcomes, the kcal added by this message, and the running total for today.
type Report struct {
	Items      []Item `json:"items"`
	TotalAdded int    `json:"total_added"`
	TotalToday int    `json:"total_today"`
	Empty      bool   `json:"empty,omitempty"` // message contained no usable tokens
}
