package handlers

import (
	"net/http"
	"os"
	"strings"

	"lead-connector/internal/domain/dto"
	"lead-connector/internal/infra/logger"
)

// logTailLines bounds how much of the log file one request can pull back.
const logTailLines = 200

type LogHandlers struct {
	Logger  *logger.Logger
	LogFile string
}

func NewLogHandlers(log *logger.Logger, logFile string) *LogHandlers {
	return &LogHandlers{Logger: log, LogFile: logFile}
}

// Tail returns the most recent lines of the service log file.
func (lh *LogHandlers) Tail(w http.ResponseWriter, r *http.Request) {
	data, err := os.ReadFile(lh.LogFile)
	if err != nil {
		writeError(w, http.StatusInternalServerError, dto.CodeStorage, "Could not read the log file")
		return
	}

	lines := strings.Split(strings.TrimRight(string(data), "\n"), "\n")
	if len(lines) > logTailLines {
		lines = lines[len(lines)-logTailLines:]
	}

	writeSuccess(w, http.StatusOK, "Log tail", lines)
}
