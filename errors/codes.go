package errors

// ErrorCode identifies a failure class in API responses and logs.
type ErrorCode string

func (c ErrorCode) String() string {
	return string(c)
}

const (
	// General
	ErrorCode_INTERNAL          ErrorCode = "INTERNAL"
	ErrorCode_INVALID_ARGUMENT  ErrorCode = "INVALID_ARGUMENT"
	ErrorCode_NOT_FOUND         ErrorCode = "NOT_FOUND"
	ErrorCode_ALREADY_EXISTS    ErrorCode = "ALREADY_EXISTS"
	ErrorCode_PERMISSION_DENIED ErrorCode = "PERMISSION_DENIED"
	ErrorCode_UNAUTHENTICATED   ErrorCode = "UNAUTHENTICATED"
	ErrorCode_INVALID_PAYLOAD   ErrorCode = "INVALID_PAYLOAD"

	// Authentication
	ErrorCode_AUTH_INVALID_TOKEN ErrorCode = "AUTH_INVALID_TOKEN"
	ErrorCode_AUTH_TOKEN_EXPIRED ErrorCode = "AUTH_TOKEN_EXPIRED"

	// Slide generation
	ErrorCode_GENERATION_FAILED       ErrorCode = "GENERATION_FAILED"
	ErrorCode_SLIDE_PARSE_FAILED      ErrorCode = "SLIDE_PARSE_FAILED"
	ErrorCode_NO_VALID_SLIDES         ErrorCode = "NO_VALID_SLIDES"
	ErrorCode_IMAGE_GENERATION_FAILED ErrorCode = "IMAGE_GENERATION_FAILED"
	ErrorCode_CRAWL_FAILED            ErrorCode = "CRAWL_FAILED"

	// Practice analysis
	ErrorCode_TRANSCRIPTION_FAILED ErrorCode = "TRANSCRIPTION_FAILED"
	ErrorCode_ANALYSIS_FAILED      ErrorCode = "ANALYSIS_FAILED"
	ErrorCode_MISSING_AUDIO        ErrorCode = "MISSING_AUDIO"

	// Interactive Q&A
	ErrorCode_TURN_GENERATION_FAILED ErrorCode = "TURN_GENERATION_FAILED"
	ErrorCode_SPEECH_SYNTHESIS_FAILED ErrorCode = "SPEECH_SYNTHESIS_FAILED"

	// Infrastructure
	ErrorCode_AI_SERVICE_UNAVAILABLE        ErrorCode = "AI_SERVICE_UNAVAILABLE"
	ErrorCode_AI_QUOTA_EXCEEDED             ErrorCode = "AI_QUOTA_EXCEEDED"
	ErrorCode_INTEGRATION_STORAGE_FAILED    ErrorCode = "INTEGRATION_STORAGE_FAILED"
	ErrorCode_INTEGRATION_CACHE_FAILED      ErrorCode = "INTEGRATION_CACHE_FAILED"
	ErrorCode_INTEGRATION_EXTERNAL_API_FAILED ErrorCode = "INTEGRATION_EXTERNAL_API_FAILED"
	ErrorCode_DB_CONNECTION_FAILED          ErrorCode = "DB_CONNECTION_FAILED"
	ErrorCode_DB_QUERY_FAILED               ErrorCode = "DB_QUERY_FAILED"
)
