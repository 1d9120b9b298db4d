// FILE: lixenwraith/rlog/example/gnet/main.go
package main

import (
	"github.com/panjf2000/gnet/v2"

	"github.com/lixenwraith/rlog"
	"github.com/lixenwraith/rlog/compat"
)

// Example gnet event handler
type echoServer struct {
	gnet.BuiltinEventEngine
}

func (es *echoServer) OnTraffic(c gnet.Conn) gnet.Action {
	buf, _ := c.Next(-1)
	c.Write(buf)
	return gnet.None
}

func main() {
	c, err := rlog.NewBuilder().
		FilePath("/var/log/gnet/gnet.log").
		Appender(rlog.AppenderFile).
		Level(rlog.LevelDebug).
		Build()
	if err != nil {
		panic(err)
	}
	defer c.Close()
	c.Init(c.LogPath())

	gnetAdapter := compat.NewGnetAdapter(c.GetLogger("gnet"))

	// Configure gnet server with the logger
	err = gnet.Run(
		&echoServer{},
		"tcp://127.0.0.1:9000",
		gnet.WithMulticore(true),
		gnet.WithLogger(gnetAdapter),
		gnet.WithReusePort(true),
	)
	if err != nil {
		panic(err)
	}
}
