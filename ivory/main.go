// Copyright 2023-2026 The Ivory Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// ivory is a UCI chess engine.
package main

import (
	"bufio"
	"flag"
	"fmt"
	"os"
	"runtime"

	logging "github.com/op/go-logging"
	"github.com/pkg/profile"

	"github.com/ivorychess/ivory/internal/config"
)

var (
	buildVersion = "(devel)"

	log = logging.MustGetLogger("ivory")

	cpuprofile = flag.Bool("cpuprofile", false, "write a cpu profile to the working directory")
	configPath = flag.String("config", "", "path to an engine settings file")
	version    = flag.Bool("version", false, "only print the version and exit")
)

func setupLogging() {
	backend := logging.NewLogBackend(os.Stderr, "", 0)
	format := logging.MustStringFormatter(`%{time:15:04:05.000} %{level:.4s} %{message}`)
	logging.SetBackend(logging.NewBackendFormatter(backend, format))
}

func main() {
	fmt.Printf("ivory %v, built with %v, running on %v\n",
		buildVersion, runtime.Version(), runtime.GOARCH)

	flag.Parse()
	setupLogging()
	if *version {
		return
	}
	if *cpuprofile {
		defer profile.Start(profile.CPUProfile, profile.ProfilePath(".")).Stop()
	}
	if *configPath != "" {
		if err := config.Load(*configPath); err != nil {
			log.Errorf("cannot load settings from %s: %v", *configPath, err)
			os.Exit(1)
		}
	}

	bio := bufio.NewReader(os.Stdin)
	uci := NewUCI()
	for {
		line, err := bio.ReadString('\n')
		if err != nil {
			log.Errorf("stdin closed: %v", err)
			break
		}
		if err := uci.Execute(line); err != nil {
			if err == errQuit {
				break
			}
			// User input errors are data, not failures. Report them on
			// the protocol stream and keep running.
			fmt.Printf("info string %v\n", err)
		}
	}
}
