package errors

// ErrorCode represents a unique error code for identifying different error types.
type ErrorCode int

const (
	// General errors (1-99)
	ErrCodeUnknown ErrorCode = 1

	// Validation errors (100-199)
	ErrCodeInvalidParameter     ErrorCode = 100
	ErrCodeInvalidConfiguration ErrorCode = 101
	ErrCodeInvalidCandle        ErrorCode = 102
	ErrCodeInvalidType          ErrorCode = 103
	ErrCodeInvalidPeriod        ErrorCode = 104
	ErrCodeMissingParameter     ErrorCode = 105

	// Data errors (200-299)
	ErrCodeInsufficientData ErrorCode = 200
	ErrCodeDataNotFound     ErrorCode = 201
	ErrCodeQueryFailed      ErrorCode = 202

	// Metrics errors (300-399)
	ErrCodeInvalidGeometry ErrorCode = 300

	// Strategy errors (400-499)
	ErrCodeUnknownStrategy   ErrorCode = 400
	ErrCodeDuplicateStrategy ErrorCode = 401
	ErrCodeStrategyFailed    ErrorCode = 402

	// Risk errors (500-599)
	ErrCodeRiskInvariantViolation ErrorCode = 500

	// Backtest errors (600-699)
	ErrCodeBacktestState  ErrorCode = 600
	ErrCodePositionExists ErrorCode = 601
	ErrCodeNoPosition     ErrorCode = 602

	// Gateway errors (700-799)
	ErrCodeGatewayFailure ErrorCode = 700
	ErrCodeOrderRejected  ErrorCode = 701
)
