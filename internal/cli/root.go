package cli

import (
	"fmt"

	"github.com/julianstephens/horizon/internal/constants"
	"github.com/julianstephens/horizon/internal/scheduler"
	"github.com/julianstephens/horizon/internal/storage"
	"github.com/julianstephens/horizon/internal/utils"
)

// Context carries the shared dependencies into every command.
type Context struct {
	Store  storage.Provider
	Engine *scheduler.Engine
}

// ResolveDate turns a user-supplied date argument into a YYYY-MM-DD string,
// accepting the literal "today".
func ResolveDate(arg string) (string, error) {
	if arg == "" || arg == "today" {
		return utils.FormatDate(utils.Today()), nil
	}
	if _, err := utils.ParseDate(arg); err != nil {
		return "", fmt.Errorf("invalid date format, use YYYY-MM-DD or 'today': %w", err)
	}
	return arg, nil
}

// ClampHorizon bounds a horizon argument into the supported range.
func ClampHorizon(days int) int {
	if days < constants.MinHorizonDays {
		return constants.MinHorizonDays
	}
	if days > constants.MaxHorizonDays {
		return constants.MaxHorizonDays
	}
	return days
}
