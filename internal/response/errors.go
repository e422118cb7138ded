package response

// ErrCode is a typed error code enum for consistent API error identification.
type ErrCode string

const (
	// ─── Authentication ────────────────────────────────────────────────
	ErrInvalidCredentials ErrCode = "INVALID_CREDENTIALS"
	ErrTokenRequired      ErrCode = "TOKEN_REQUIRED"
	ErrTokenInvalid       ErrCode = "TOKEN_INVALID"
	ErrTokenExpired       ErrCode = "TOKEN_EXPIRED"

	// ─── Validation ────────────────────────────────────────────────────
	ErrValidation     ErrCode = "VALIDATION_ERROR"
	ErrInvalidID      ErrCode = "INVALID_ID"
	ErrInvalidPayload ErrCode = "INVALID_PAYLOAD"

	// ─── Resources ─────────────────────────────────────────────────────
	ErrNotFound        ErrCode = "NOT_FOUND"
	ErrConflict        ErrCode = "CONFLICT"
	ErrActionForbidden ErrCode = "ACTION_FORBIDDEN"

	// ─── Exam-specific ─────────────────────────────────────────────────
	ErrExamNotFound      ErrCode = "EXAM_NOT_FOUND"
	ErrExamNotActive     ErrCode = "EXAM_NOT_ACTIVE"
	ErrNoQuestions       ErrCode = "NO_QUESTIONS"
	ErrAttemptNotFound   ErrCode = "ATTEMPT_NOT_FOUND"
	ErrAttemptSubmitted  ErrCode = "ATTEMPT_ALREADY_SUBMITTED"
	ErrStudentIdentity   ErrCode = "STUDENT_IDENTITY_REQUIRED"
	ErrUnknownOption     ErrCode = "UNKNOWN_OPTION"
	ErrSubmitFailed      ErrCode = "SUBMIT_FAILED"

	// ─── Authoring ─────────────────────────────────────────────────────
	ErrDraftNotFound  ErrCode = "DRAFT_NOT_FOUND"
	ErrOptionLimit    ErrCode = "OPTION_LIMIT_REACHED"
	ErrOptionFloor    ErrCode = "OPTION_FLOOR_REACHED"
	ErrExtraction     ErrCode = "EXTRACTION_FAILED"
	ErrNoExtracted    ErrCode = "NO_QUESTIONS_EXTRACTED"
	ErrPublishFailed  ErrCode = "PUBLISH_FAILED"

	// ─── Upload ────────────────────────────────────────────────────────
	ErrFileRequired    ErrCode = "FILE_REQUIRED"
	ErrUnsupportedFile ErrCode = "UNSUPPORTED_FILE_TYPE"
	ErrFileTooLarge    ErrCode = "FILE_TOO_LARGE"

	// ─── Rate Limiting ─────────────────────────────────────────────────
	ErrRateLimitExceeded ErrCode = "RATE_LIMIT_EXCEEDED"

	// ─── Server ────────────────────────────────────────────────────────
	ErrInternal ErrCode = "INTERNAL_ERROR"
)

// GetMessage returns a human-readable message for a given error code.
func GetMessage(code ErrCode) string {
	switch code {
	// ─── Authentication ────────────────────────────────────────────────
	case ErrInvalidCredentials:
		return "Email or password is incorrect."
	case ErrTokenRequired:
		return "An authentication token is required."
	case ErrTokenInvalid:
		return "The authentication token is invalid."
	case ErrTokenExpired:
		return "The authentication token has expired."

	// ─── Validation ────────────────────────────────────────────────────
	case ErrValidation:
		return "Validation failed. Please check your input."
	case ErrInvalidID:
		return "Invalid identifier format."
	case ErrInvalidPayload:
		return "The request payload is invalid."

	// ─── Resources ─────────────────────────────────────────────────────
	case ErrNotFound:
		return "Resource not found."
	case ErrConflict:
		return "The resource already exists."
	case ErrActionForbidden:
		return "This action is not allowed."

	// ─── Exam-specific ─────────────────────────────────────────────────
	case ErrExamNotFound:
		return "Exam not found. Please check the exam link."
	case ErrExamNotActive:
		return "This exam is not currently accepting submissions."
	case ErrNoQuestions:
		return "This exam has no questions."
	case ErrAttemptNotFound:
		return "Exam session not found or expired. Please reload the exam page."
	case ErrAttemptSubmitted:
		return "This exam has already been submitted."
	case ErrStudentIdentity:
		return "Please enter both your name and your student ID."
	case ErrUnknownOption:
		return "The selected option does not belong to this question."
	case ErrSubmitFailed:
		return "Failed to submit the exam. Your answers are kept — please try again."

	// ─── Authoring ─────────────────────────────────────────────────────
	case ErrDraftNotFound:
		return "Draft not found or expired. Please upload the PDF again."
	case ErrOptionLimit:
		return "A question cannot have more than 6 options."
	case ErrOptionFloor:
		return "A question must keep at least 2 options."
	case ErrExtraction:
		return "Failed to extract questions from the PDF."
	case ErrNoExtracted:
		return "No questions could be extracted from this PDF."
	case ErrPublishFailed:
		return "Failed to publish the exam. The draft is kept — please try again."

	// ─── Upload ────────────────────────────────────────────────────────
	case ErrFileRequired:
		return "A file upload is required."
	case ErrUnsupportedFile:
		return "Please upload a PDF file."
	case ErrFileTooLarge:
		return "File size exceeds the 10MB limit."

	// ─── Rate Limiting ─────────────────────────────────────────────────
	case ErrRateLimitExceeded:
		return "Too many requests. Please try again later."

	// ─── Server ────────────────────────────────────────────────────────
	case ErrInternal:
		return "An internal server error occurred."
	default:
		return "An unexpected error occurred."
	}
}
