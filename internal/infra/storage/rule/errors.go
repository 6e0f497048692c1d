package rule

import "errors"

var (
	// ErrRuleNotFound возвращается, когда у работника нет сохраненного правила
	ErrRuleNotFound = errors.New("rule.repository: rule not found")

	// ErrBuildQuery возвращается при ошибке построения SQL запроса
	ErrBuildQuery = errors.New("rule.repository: failed to build query")

	// ErrExecQuery возвращается при ошибке выполнения SQL запроса
	ErrExecQuery = errors.New("rule.repository: failed to execute query")

	// ErrScanRow возвращается при ошибке сканирования результата запроса
	ErrScanRow = errors.New("rule.repository: failed to scan row")

	// ErrEncodePayload возвращается при ошибке сериализации правила
	ErrEncodePayload = errors.New("rule.repository: failed to encode rule payload")

	// ErrDecodePayload возвращается при ошибке десериализации правила
	ErrDecodePayload = errors.New("rule.repository: failed to decode rule payload")
)
