package factor

// Minimum encodable factor offset and length. A match shorter than
// MinLength, or one that could somehow resolve to an offset below
// MinOffset, is never worth encoding as a factor — parse.Optimize
// treats anything shorter as a literal run instead.
const (
	MinOffset = 1
	MinLength = 3
)
