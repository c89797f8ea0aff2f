package gpt

// Fixed user-facing replies. Every failure below the orchestrator
// boundary maps onto one of these; none carries the auth token, raw
// identifiers, or provider error text, and all fit a voice reply.
const (
	// ReplyOverloaded covers exhausted budgets, repeated transient
	// failures, and admission timeouts.
	ReplyOverloaded = "Сейчас большая нагрузка. Попробуй чуть позже."
	// ReplyUnparseable covers a 200 with no extractable text.
	ReplyUnparseable = "Не удалось корректно разобрать ответ модели."
	// ReplyBadResponse covers a 200 whose body is not valid JSON.
	ReplyBadResponse = "Произошла ошибка при обработке ответа от GPT."
	// ReplyTruncated covers output cut short by the length cap when no
	// partial text survived and no retry budget remains.
	ReplyTruncated = "Ответ получился слишком длинным и был обрезан. Попробуй спросить короче."
	// ReplyAskSomething prompts the user after an empty utterance.
	ReplyAskSomething = "Скажи, что ты хочешь спросить у GPT."
	// ReplyNotHeard covers an empty answer from the orchestrator.
	ReplyNotHeard = "Не расслышал, повтори, пожалуйста."
	// ReplyOnline answers health probes on the webhook path.
	ReplyOnline = "Навык на связи."
)

// replyServiceUnavailable embeds the numeric status for statuses that
// are neither negotiated nor retried.
const replyServiceUnavailable = "Сервис временно недоступен (%d). Попробуй ещё раз позже."
