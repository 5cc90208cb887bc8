package ports

// Hasher defines the interface for digesting decorator-relevant content.
//
//go:generate go run go.uber.org/mock/mockgen -source=hasher.go -destination=mocks/mock_hasher.go -package=mocks
type Hasher interface {
	// HashDecorators returns a digest of the lines of content that carry decorators.
	HashDecorators(content []byte) string
}
