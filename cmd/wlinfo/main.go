// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

// Command wlinfo connects to the running compositor and lists the
// globals it advertises, marking the ones this client binds.
package main

import (
	"flag"
	"fmt"
	"log"
	"log/slog"
	"os"

	"github.com/gogpu/wayland"
	"github.com/gogpu/wayland/wire"
)

func main() {
	verbose := flag.Bool("v", false, "enable debug logging")
	flag.Parse()

	if *verbose {
		wayland.SetLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
			Level: slog.LevelDebug,
		})))
	}

	conn, err := wire.Dial()
	if err != nil {
		log.Fatalf("connect: %v", err)
	}
	s, err := wayland.Connect(conn)
	if err != nil {
		log.Fatalf("session: %v", err)
	}
	defer s.Close()

	for _, g := range s.Registry().Globals() {
		fmt.Printf("%3d  %-45s v%d\n", g.Name, g.Interface, g.Version)
	}

	formats := s.ShmFormats()
	fmt.Printf("\n%d shm formats advertised\n", len(formats))
}
