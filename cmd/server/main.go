package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"modviz/internal/audio"
	"modviz/internal/config"
	"modviz/internal/server"
)

func main() {
	addr := flag.String("addr", "", "Server address (overrides config)")
	staticDir := flag.String("static", "", "Static file directory (overrides config)")
	configPath := flag.String("config", "", "Path to YAML config file")
	listDevices := flag.Bool("list-devices", false, "List audio devices and exit")
	noAudio := flag.Bool("no-audio", false, "Disable waveform playback")
	flag.Parse()

	cfg := config.Discover()
	if *configPath != "" {
		loaded, err := config.Load(*configPath)
		if err != nil {
			log.Fatalf("Failed to load config: %v", err)
		}
		cfg = loaded
	}
	if *addr != "" {
		cfg.Addr = *addr
	}
	if *staticDir != "" {
		cfg.StaticDir = *staticDir
	}

	// Initialize PortAudio unless playback is off. A machine with no
	// sound stack still gets the visualizer, just without /api/play.
	var player *audio.Player
	if !*noAudio {
		if err := audio.Init(); err != nil {
			log.Printf("PortAudio unavailable, playback disabled: %v", err)
		} else {
			defer audio.Terminate()
			player = audio.NewPlayer()
		}
	}

	if *listDevices {
		if player == nil {
			log.Fatal("Audio is disabled, cannot list devices")
		}
		if err := audio.PrintDevices(); err != nil {
			log.Fatalf("Failed to list devices: %v", err)
		}
		return
	}

	handlers := server.NewHandlers(cfg, player)
	srv := server.NewServer(cfg.Addr, handlers, cfg.StaticDir)

	// Handle graceful shutdown
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		<-sigCh
		fmt.Println("\nShutting down...")
		if player != nil {
			audio.Terminate()
		}
		os.Exit(0)
	}()

	if err := srv.Start(); err != nil {
		log.Fatalf("Server error: %v", err)
	}
}
