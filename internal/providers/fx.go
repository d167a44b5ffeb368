package providers

import (
	"github.com/kiranapos/kirana/internal/providers/message"
	"github.com/kiranapos/kirana/internal/providers/pdf"
	"go.uber.org/fx"
)

var Module = fx.Module("providers",
	message.Module,
	pdf.Module,
)
