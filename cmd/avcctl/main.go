// Command avcctl runs a demo Access Vector Cache behind a tiny debug
// console (STATS / SEQNO / RESET <seqno> / DISABLE / RELOAD / QUIT), and
// optionally drives it interactively with a liner-backed REPL.
package main

import (
	"fmt"
	"net"
	"os"

	"github.com/peterh/liner"
	"github.com/spf13/pflag"

	"github.com/skipor/avc"
	"github.com/skipor/avc/cmd/avcctl/internal/demo"
	"github.com/skipor/avc/config"
	"github.com/skipor/avc/log"
)

func main() {
	var (
		listenAddr  = pflag.StringP("listen", "l", "127.0.0.1:11822", "debug console listen address")
		configPath  = pflag.StringP("config", "c", "avcctl.json", "tunables config file (HuJSON)")
		interactive = pflag.BoolP("interactive", "i", false, "drive the console with a local REPL instead of listening")
		logLevel    = pflag.String("log-level", "INFO", "DEBUG|INFO|WARN|ERROR|FATAL")
	)
	pflag.Parse()

	level, err := log.LevelFromString(*logLevel)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}
	l := log.NewLogger(level, os.Stderr)

	cfg, err := config.Load(*configPath)
	if err != nil {
		l.Fatalf("load config: %v", err)
	}

	cache := avc.New(demo.NewSecurityServer(), avc.NopAuditor{}, avc.Options{
		CacheThreshold: cfg.CacheThreshold,
		ReclaimBatch:   cfg.ReclaimBatch,
		Log:            l,
	})

	if *interactive {
		runREPL(l, cache, *configPath)
		return
	}

	ln, err := net.Listen("tcp", *listenAddr)
	if err != nil {
		l.Fatalf("listen: %v", err)
	}
	l.Infof("avcctl: debug console listening on %s", ln.Addr())

	for {
		conn, err := ln.Accept()
		if err != nil {
			l.Error("accept: ", err)
			continue
		}
		go newConsole(l, cache, *configPath, conn).serve()
	}
}

// runREPL drives the console in-process, via a pipe, so a human can poke at
// the cache without opening a second terminal for netcat.
func runREPL(l log.Logger, cache *avc.Cache, configPath string) {
	clientSide, serverSide := net.Pipe()
	go newConsole(l, cache, configPath, serverSide).serve()

	line := liner.NewLiner()
	defer line.Close()
	line.SetCtrlCAborts(true)

	fmt.Println("avcctl interactive console. Commands: STATS, SEQNO, RESET <seqno>, DISABLE, RELOAD, QUIT")
	for {
		cmd, err := line.Prompt("avc> ")
		if err != nil {
			return
		}
		line.AppendHistory(cmd)
		fmt.Fprintln(clientSide, cmd)
		buf := make([]byte, 4096)
		n, _ := clientSide.Read(buf)
		fmt.Print(string(buf[:n]))
		if cmd == "QUIT" {
			return
		}
	}
}

