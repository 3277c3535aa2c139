package constant

const (
	DefaultBatchSize = 100
	DefaultConfig    = "configs/config.yaml"

	RunKeyPrefix        = "runs"
	SummaryKeySuffix    = "summary"
	EvaluationKeyPrefix = "eval"
	UnevaluatedKeyPref  = "unevaluated"

	RunEventSubject = "run"
)
