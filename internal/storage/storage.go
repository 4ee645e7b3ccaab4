package storage

// Store persists a full string-keyed mapping. Load never fails: an absent or
// unreadable backing store yields an empty mapping. Save rewrites the whole
// mapping at once.
type Store[V any] interface {
	Load() map[string]V
	Save(map[string]V) error
}
