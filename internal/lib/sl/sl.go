// Package sl дополняет log/slog мелкими помощниками, чтобы записи
// об ошибках во всех пакетах выглядели одинаково.
package sl

import "log/slog"

// Err оборачивает ошибку в slog.Attr с ключом "error":
//
//	log.Error("failed to save user", sl.Err(err))
func Err(err error) slog.Attr {
	return slog.Attr{
		Key:   "error",
		Value: slog.StringValue(err.Error()),
	}
}
