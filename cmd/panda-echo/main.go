// panda-echo - prints robot state cycles to stdout
//
// Connects to the controller and runs a read session for a fixed number of
// cycles, printing joint positions and the reported modes.
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
	cycles := flag.Int("cycles", 100, "number of state cycles to print")
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

	fmt.Printf("connected to %s (server version %d)\n", *addr, r.ServerVersion())

	count := 0
	err = r.Read(func(state *robot.RobotState) bool {
		count++
		fmt.Printf("[%6d] t=%8s q=%v controller=%s robot=%s\n",
			count, state.Time, state.Q, state.ControllerMode, state.RobotMode)
		return count < *cycles
	})
	if err != nil {
		log.Error("read session failed", "error", err)
		os.Exit(1)
	}
}
