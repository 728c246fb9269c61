package bootstrap

import (
	"github.com/kbukum/fetchkit/config"
)

// Config is the constraint for application configuration types.
// Any struct embedding config.ServiceConfig satisfies it through promoted
// methods; httpclient.FileConfig is the usual choice.
type Config interface {
	GetServiceConfig() *config.ServiceConfig
	ApplyDefaults()
	Validate() error
}
