package response

// ErrCode is a typed error code enum for consistent API error identification.
type ErrCode string

const (
	// ─── Session ───────────────────────────────────────────────────────
	ErrSessionRequired ErrCode = "SESSION_REQUIRED"
	ErrSessionNotFound ErrCode = "SESSION_NOT_FOUND"

	// ─── Validation ────────────────────────────────────────────────────
	ErrValidation     ErrCode = "VALIDATION_ERROR"
	ErrInvalidPayload ErrCode = "INVALID_PAYLOAD"
	ErrInvalidQuery   ErrCode = "INVALID_QUERY"

	// ─── Resources ─────────────────────────────────────────────────────
	ErrNotFound ErrCode = "NOT_FOUND"

	// ─── Chat ──────────────────────────────────────────────────────────
	ErrNoPendingOffer ErrCode = "NO_PENDING_OFFER"

	// ─── Quiz ──────────────────────────────────────────────────────────
	ErrQuizComplete   ErrCode = "QUIZ_COMPLETE"
	ErrQuizIncomplete ErrCode = "QUIZ_INCOMPLETE"
	ErrInvalidChoice  ErrCode = "INVALID_CHOICE"

	// ─── Visualization ─────────────────────────────────────────────────
	ErrUnknownVisualization ErrCode = "UNKNOWN_VISUALIZATION"
	ErrNotAChart            ErrCode = "NOT_A_CHART"
	ErrChartsDisabled       ErrCode = "CHARTS_DISABLED"

	// ─── Rate Limiting ─────────────────────────────────────────────────
	ErrRateLimitExceeded ErrCode = "RATE_LIMIT_EXCEEDED"

	// ─── Server ────────────────────────────────────────────────────────
	ErrInternal ErrCode = "INTERNAL_ERROR"
)

// GetMessage returns a human-readable message for a given error code.
func GetMessage(code ErrCode) string {
	switch code {
	// ─── Session ───────────────────────────────────────────────────────
	case ErrSessionRequired:
		return "세션 ID가 필요합니다."
	case ErrSessionNotFound:
		return "세션이 만료되었거나 존재하지 않습니다. 새 세션을 시작해주세요."

	// ─── Validation ────────────────────────────────────────────────────
	case ErrValidation:
		return "입력값 검증에 실패했습니다. 입력 내용을 확인해주세요."
	case ErrInvalidPayload:
		return "요청 본문이 올바르지 않습니다."
	case ErrInvalidQuery:
		return "쿼리 매개변수가 올바르지 않습니다."

	// ─── Resources ─────────────────────────────────────────────────────
	case ErrNotFound:
		return "요청한 리소스를 찾을 수 없습니다."

	// ─── Chat ──────────────────────────────────────────────────────────
	case ErrNoPendingOffer:
		return "답변을 기다리는 표/그래프 제안이 없습니다."

	// ─── Quiz ──────────────────────────────────────────────────────────
	case ErrQuizComplete:
		return "적성검사를 이미 모두 완료했습니다."
	case ErrQuizIncomplete:
		return "적성검사를 아직 완료하지 않았습니다."
	case ErrInvalidChoice:
		return "선택지는 A, B, C, D 중 하나여야 합니다."

	// ─── Visualization ─────────────────────────────────────────────────
	case ErrUnknownVisualization:
		return "알 수 없는 시각화 유형입니다."
	case ErrNotAChart:
		return "이 시각화는 그래프가 아닙니다."
	case ErrChartsDisabled:
		return "그래프 기능이 비활성화되어 있습니다."

	// ─── Rate Limiting ─────────────────────────────────────────────────
	case ErrRateLimitExceeded:
		return "요청이 너무 많습니다. 잠시 후 다시 시도해주세요."

	// ─── Server ────────────────────────────────────────────────────────
	case ErrInternal:
		return "서버 내부 오류가 발생했습니다."
	default:
		return "알 수 없는 오류가 발생했습니다."
	}
}
