package system

import (
	"github.com/julianstephens/horizon/internal/cli"
	"github.com/julianstephens/horizon/internal/constants"
	"github.com/julianstephens/horizon/internal/server"
)

type ServeCmd struct {
	Addr string `help:"Address to listen on." default:":8433"`
}

func (c *ServeCmd) Run(ctx *cli.Context) error {
	addr := c.Addr
	if addr == "" {
		addr = constants.DefaultListenAddr
	}
	return server.New(ctx.Store, ctx.Engine, addr).ListenAndServe()
}
