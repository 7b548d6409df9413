package api

// Cache-Control header values.
const (
	// CacheRecap lets clients reuse a recap for five minutes.
	CacheRecap   = "public, max-age=300"
	CacheNoStore = "no-cache"
)
