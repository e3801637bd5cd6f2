package main

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/facebookgo/stackerr"

	"github.com/skipor/avc"
	"github.com/skipor/avc/config"
	"github.com/skipor/avc/log"
)

// console serves the debug/introspection protocol: a tiny line-oriented
// wire format (read a line, dispatch on verb, write a response, flush) for
// STATS / SEQNO / RESET <seqno> / DISABLE / RELOAD / QUIT.
type console struct {
	*bufio.Writer
	r          *bufio.Reader
	closer     io.Closer
	handler    avc.Handler
	configPath string
	log        log.Logger
}

func newConsole(l log.Logger, h avc.Handler, configPath string, rwc io.ReadWriteCloser) *console {
	return &console{
		Writer:     bufio.NewWriter(rwc),
		r:          bufio.NewReader(rwc),
		closer:     rwc,
		handler:    h,
		configPath: configPath,
		log:        l,
	}
}

func (c *console) serve() {
	c.log.Info("debug console: connection opened")
	defer func() {
		if r := recover(); r != nil {
			c.respondf("ERROR panic: %v", r)
			c.Flush()
			c.closer.Close()
			panic(r)
		}
		c.Flush()
		c.closer.Close()
		c.log.Info("debug console: connection closed")
	}()

	if err := c.loop(); err != nil && err != io.EOF {
		c.log.Error("debug console: ", err)
	}
}

func (c *console) loop() error {
	for {
		line, err := c.r.ReadString('\n')
		if err != nil {
			if len(line) == 0 {
				return err
			}
		}
		fields := strings.Fields(line)
		if len(fields) == 0 {
			continue
		}

		c.log.Debugf("debug console: command %q", fields[0])
		switch strings.ToUpper(fields[0]) {
		case "STATS":
			c.respond(c.handler.HashStatsText())
		case "SEQNO":
			c.respondf("%d", c.handler.PolicySeqno())
		case "RESET":
			if len(fields) != 2 {
				c.respond("ERROR usage: RESET <seqno>")
				break
			}
			seqno, perr := strconv.ParseUint(fields[1], 10, 32)
			if perr != nil {
				c.respondf("ERROR bad seqno: %v", perr)
				break
			}
			if rerr := c.handler.SSReset(uint32(seqno)); rerr != nil {
				c.respondf("ERROR reset callback failed: %v", rerr)
				break
			}
			c.respond("OK")
		case "DISABLE":
			c.handler.Disable()
			c.respond("OK")
		case "RELOAD":
			cfg, rerr := config.Load(c.configPath)
			if rerr != nil {
				c.respondf("ERROR reload config: %v", rerr)
				break
			}
			c.handler.SetTunables(cfg.CacheThreshold, cfg.ReclaimBatch)
			if rerr := config.Save(c.configPath, cfg); rerr != nil {
				c.respondf("ERROR rewrite config: %v", rerr)
				break
			}
			c.respond("OK")
		case "QUIT":
			return io.EOF
		default:
			c.respondf("ERROR unknown command %q", fields[0])
		}

		if err := c.Flush(); err != nil {
			return stackerr.Wrap(err)
		}
		if err == io.EOF {
			return io.EOF
		}
	}
}

func (c *console) respond(s string) {
	fmt.Fprintln(c, strings.TrimRight(s, "\n"))
	fmt.Fprintln(c, "END")
}

func (c *console) respondf(format string, args ...interface{}) {
	c.respond(fmt.Sprintf(format, args...))
}
