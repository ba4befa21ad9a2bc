package domain

// Payload — тело отправки. Реализации (JSON, multipart) живут в транспортном слое;
// диспетчер кодирует тело один раз и переиспользует байты для fallback-попытки.
type Payload interface {
	Encode() (body []byte, contentType string, err error)
}

// Source — откуда пришло значение кэша.
type Source string

const (
	SourceCache    Source = "cache"    // свежий кэш, без сети
	SourceUpstream Source = "upstream" // только что получено из бэкенда
	SourceStale    Source = "stale"    // бэкенд недоступен, последнее удачное значение
	SourceDefault  Source = "default"  // кэш пуст и бэкенд недоступен, набор по умолчанию
)
