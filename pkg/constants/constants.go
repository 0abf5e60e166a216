package constants

type contextKey int

const (
	LoggerKey contextKey = iota
	RequestStart
)
