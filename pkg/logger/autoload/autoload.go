// Package autoload initializes the global logger from the environment when
// blank-imported. Keep it as the first import of main.
package autoload

import (
	configx "github.com/iquotehq/iquote/pkg/config"
	logx "github.com/iquotehq/iquote/pkg/logger"
)

func init() {
	cfg := configx.MustNew[logx.Config]("LOG")
	logx.Init(*cfg)
}
