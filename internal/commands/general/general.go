// Package general holds the commands every member can run.
package general

import (
	"github.com/code-society-lab/grace/internal/core"
)

// Register adds info, help and projects to r.
func Register(r *core.Registry, prefix string, github Projects, mws ...core.Middleware) {
	r.Register(core.ApplyMiddlewares(&InfoCommand{Prefix: prefix}, mws...))
	r.Register(core.ApplyMiddlewares(&HelpCommand{Registry: r, Prefix: prefix}, mws...))
	r.Register(core.ApplyMiddlewares(&ProjectsCommand{GitHub: github}, mws...))
}
