package fx

import (
	"github.com/orgball2608/wallify-bot/internal/repositories/download"
	"github.com/orgball2608/wallify-bot/internal/repositories/preference"
	"go.uber.org/fx"
)

var Module = fx.Options(
	preference.Module,
	download.Module,
)
