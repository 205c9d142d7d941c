package main

import (
	"flag"
	"fmt"
	"os"

	"drivekit/internal/sim"
	"drivekit/internal/vehicle"

	"go.uber.org/zap"
)

func main() {
	tuningPath := flag.String("tuning", "", "path to a YAML tuning overlay")
	flag.Parse()

	log, err := zap.NewDevelopment()
	if err != nil {
		fmt.Fprintf(os.Stderr, "logger init failed: %v\n", err)
		os.Exit(1)
	}
	defer log.Sync()

	tuning := vehicle.DefaultTuning()
	if *tuningPath != "" {
		tuning, err = vehicle.LoadTuning(*tuningPath)
		if err != nil {
			log.Fatal("failed to load tuning", zap.Error(err))
		}
		log.Info("tuning loaded", zap.String("path", *tuningPath))
	}

	sim.New(tuning, log).Run()
}
