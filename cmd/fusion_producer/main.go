package main

import (
	"log"

	"github.com/relabs-tech/nmea_fusion/internal/app"
	"github.com/relabs-tech/nmea_fusion/internal/config"
)

func main() {
	log.Println("starting nmea-fusion producer (serial NMEA → MQTT)")

	// Load configuration
	if err := config.InitGlobal("nmea_fusion.conf"); err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	if err := app.RunFusionProducer(); err != nil {
		log.Fatalf("fatal: %v", err)
	}
}
