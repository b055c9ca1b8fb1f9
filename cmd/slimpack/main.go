package main

import (
	"context"
	"os"
	"strings"

	slimpack "github.com/kvant-lab/slimpack/internal/apps/slimpack/cmds"
	"github.com/kvant-lab/slimpack/internal/logs"
)

func main() {
	logs.SetComponent(detectComponent("slimpack"))

	err := slimpack.Execute(context.Background())
	if err != nil {
		logs.Errorf("%v", err)
		logs.Infof("Type 'slimpack help' to get help.")
	}

	os.Exit(slimpack.ExitCode(err))
}

func detectComponent(base string) string {
	if len(os.Args) > 1 && len(os.Args[1]) > 0 && os.Args[1][0] != '-' {
		return base + ":" + strings.Join(os.Args[1:], " ")
	}
	return base
}
