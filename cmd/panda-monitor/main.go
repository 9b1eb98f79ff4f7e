// panda-monitor - live web dashboard for robot state
//
// Connects to the controller, runs a read session, and streams every state
// cycle to browser clients over websocket. REST endpoints expose the latest
// state and server status.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"sync/atomic"
	"syscall"
	"time"

	"github.com/openmanip/go-panda/internal/config"
	"github.com/openmanip/go-panda/internal/log"
	"github.com/openmanip/go-panda/pkg/monitor"
	"github.com/openmanip/go-panda/pkg/robot"
)

func main() {
	addr := flag.String("addr", config.RobotAddr("127.0.0.1:"+config.DefaultControlPort), "controller address (host:port)")
	port := flag.String("port", config.MonitorPort(), "dashboard HTTP port")
	flag.Parse()

	log.Init(config.LogLevel())

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	r, err := robot.Connect(ctx, *addr, robot.WithLogger(log.L()))
	if err != nil {
		log.Error("connect failed", "addr", *addr, "error", err)
		os.Exit(1)
	}
	defer r.Close()

	srv := monitor.NewServer(*port)
	fmt.Printf("panda-monitor: robot %s, dashboard on :%s\n", *addr, *port)

	// Stop the read session on Ctrl+C by letting the callback return false.
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	var stopping atomic.Bool
	go func() {
		<-sigChan
		stopping.Store(true)
	}()

	go func() {
		if err := srv.Start(); err != nil {
			log.Error("dashboard server stopped", "error", err)
		}
	}()
	defer srv.Shutdown()

	err = r.Read(func(state *robot.RobotState) bool {
		srv.Publish(state)
		return !stopping.Load()
	})
	if err != nil {
		log.Error("read session failed", "error", err)
		os.Exit(1)
	}
	log.Info("monitor stopped", "cycles", srv.Cycles())
}
