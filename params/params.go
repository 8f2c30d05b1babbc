package params

import "log/slog"

var AppName = "tilecut"

var DefaultSlogLevel = slog.LevelInfo
