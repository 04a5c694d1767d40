package errors

type Code string

const (
	CodeUnknown          Code = "UNKNOWN"
	CodeInternal         Code = "INTERNAL_ERROR"
	CodeConfigValidation Code = "CONFIG_VALIDATION_ERROR"
	CodeConfigReadError  Code = "CONFIG_READ_ERROR"
	CodeConfigParseError Code = "CONFIG_PARSE_ERROR"
	CodeNotImplemented   Code = "NOT_IMPLEMENTED"

	// Declaration loading and linting
	CodeLoadError        Code = "LOAD_ERROR"
	CodeDecodeError      Code = "DECODE_ERROR"
	CodeSchemaValidation Code = "SCHEMA_VALIDATION_ERROR"
	CodePolicyViolation  Code = "POLICY_VIOLATION"
	CodeBaselineError    Code = "POLICY_BASELINE_ERROR"

	// Remote flag service
	CodeRemoteFetchError    Code = "REMOTE_FETCH_ERROR"
	CodeRemoteMutationError Code = "REMOTE_MUTATION_ERROR"
	CodeRemoteAPIError      Code = "REMOTE_API_ERROR"
	CodeRemoteAuthError     Code = "REMOTE_AUTH_ERROR"
	CodeResourceNotFound    Code = "RESOURCE_NOT_FOUND"

	// Reporting
	CodeReportWriteError  Code = "REPORT_WRITE_ERROR"
	CodeReportUploadError Code = "REPORT_UPLOAD_ERROR"
)

func (c Code) String() string {
	return string(c)
}
