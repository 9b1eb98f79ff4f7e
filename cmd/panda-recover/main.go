// panda-recover - runs automatic error recovery
//
// Clears recoverable controller errors (e.g. after a collision reflex) and
// prints the robot mode before and after.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/openmanip/go-panda/internal/config"
	"github.com/openmanip/go-panda/internal/log"
	"github.com/openmanip/go-panda/pkg/robot"
)

func main() {
	addr := flag.String("addr", config.RobotAddr("127.0.0.1:"+config.DefaultControlPort), "controller address (host:port)")
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

	before, err := r.ReadOnce()
	if err != nil {
		log.Error("read state failed", "error", err)
		os.Exit(1)
	}
	fmt.Printf("robot mode: %s, errors: %v\n", before.RobotMode, before.Errors)

	if err := r.AutomaticErrorRecovery(); err != nil {
		log.Error("error recovery failed", "error", err)
		os.Exit(1)
	}

	after, err := r.ReadOnce()
	if err != nil {
		log.Error("read state failed", "error", err)
		os.Exit(1)
	}
	fmt.Printf("recovered, robot mode: %s\n", after.RobotMode)
}
