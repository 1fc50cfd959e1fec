// Copyright (c) 2026 Daniel Alarcon Rubio / Relabs Tech
// SPDX-License-Identifier: MIT
// See LICENSE file for full license text

package app

import (
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	mqtt "github.com/eclipse/paho.mqtt.golang"

	"github.com/relabs-tech/nmea_fusion/internal/config"
	"github.com/relabs-tech/nmea_fusion/internal/nmea"
)

// RunMockProducer drives the fusion engine from simulated NMEA sentences
// instead of a serial port. Useful for demos and for exercising the
// console and web subscribers without a receiver attached.
func RunMockProducer() error {
	cfg := config.Get()

	opts := mqtt.NewClientOptions().
		AddBroker(cfg.MQTTBroker).
		SetClientID(cfg.MQTTClientIDProducer + "-mock")

	client := mqtt.NewClient(opts)
	if token := client.Connect(); token.Wait() && token.Error() != nil {
		return token.Error()
	}
	defer client.Disconnect(250)
	log.Printf("mock producer connected to MQTT broker at %s", cfg.MQTTBroker)

	engine := nmea.New()
	engine.SetDebug(cfg.Debug)
	engine.OnUpdate(func(fix nmea.Fix) {
		publishFix(client, cfg.TopicGPSFix, fix)
	})

	sim := nmea.NewSimulator()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)

	ticker := time.NewTicker(time.Second)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			for _, line := range sim.Next() {
				engine.ProcessLine(line)
			}
		case <-sigCh:
			log.Println("mock producer: shutting down")
			return nil
		}
	}
}
