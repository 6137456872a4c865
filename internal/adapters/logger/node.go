package logger

import (
	"context"

	"github.com/grindlemire/graft"
	"github.com/spf13/viper"
	"go.trai.ch/pak/internal/adapters/config"
	"go.trai.ch/pak/internal/core/ports"
)

// NodeID is the unique identifier for the logger Graft node.
const NodeID graft.ID = "adapter.logger"

func init() {
	graft.Register(graft.Node[ports.Logger]{
		ID:        NodeID,
		Cacheable: true,
		Run: func(_ context.Context) (ports.Logger, error) {
			l := New()
			l.SetJSON(viper.GetBool(config.KeyJSONLogs))
			return l, nil
		},
	})
}
