package redis

const (
	// KeyPrefix namespaces every value written by archivetag
	KeyPrefix = "archivetag:"
)

// ValueKey returns the Redis key for a named value
func ValueKey(name string) string {
	return KeyPrefix + name
}
