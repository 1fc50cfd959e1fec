package app

import (
	"encoding/json"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	mqtt "github.com/eclipse/paho.mqtt.golang"

	"github.com/relabs-tech/nmea_fusion/internal/config"
	"github.com/relabs-tech/nmea_fusion/internal/nmea"
)

// RunConsoleMQTT subscribes to the fused fix topic and prints one line
// per update, with the UTC time token shifted to the configured local
// timezone.
func RunConsoleMQTT() error {
	cfg := config.Get()

	opts := mqtt.NewClientOptions().
		AddBroker(cfg.MQTTBroker).
		SetClientID(cfg.MQTTClientIDConsole)

	client := mqtt.NewClient(opts)
	if token := client.Connect(); token.Wait() && token.Error() != nil {
		return token.Error()
	}
	log.Printf("console: connected to MQTT broker at %s", cfg.MQTTBroker)

	token := client.Subscribe(cfg.TopicGPSFix, 0, func(_ mqtt.Client, msg mqtt.Message) {
		var f nmea.Fix
		if err := json.Unmarshal(msg.Payload(), &f); err != nil {
			log.Printf("console: fix unmarshal error: %v", err)
			return
		}

		fmt.Printf(
			"[FIX ] time=%s pos=%s,%s alt=%sm speed=%skm/h course=%s° sats=%s/%s quality=%s hdop=%s pdop=%s vdop=%s n=%d\n",
			nmea.UTCToLocal(f.Timestamp, cfg.TZOffsetHours),
			floatOrDash(f.Latitude, 6), floatOrDash(f.Longitude, 6),
			floatOrDash(f.AltitudeM, 1),
			floatOrDash(f.SpeedKmh, 2), floatOrDash(f.CourseDeg, 1),
			intOrDash(f.SatellitesUsed), intOrDash(f.SatellitesVisible),
			stringOrDash(f.FixQuality),
			floatOrDash(f.HDOP, 1), floatOrDash(f.PDOP, 1), floatOrDash(f.VDOP, 1),
			f.SentencesProcessed,
		)
	})
	token.Wait()
	if token.Error() != nil {
		return token.Error()
	}
	log.Printf("console: subscribed to %s", cfg.TopicGPSFix)

	// Wait for Ctrl+C
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	<-sigCh

	log.Println("console: shutting down")
	client.Disconnect(250)
	return nil
}

func floatOrDash(v *float64, prec int) string {
	if v == nil {
		return "--"
	}
	return fmt.Sprintf("%.*f", prec, *v)
}

func intOrDash(v *int) string {
	if v == nil {
		return "--"
	}
	return fmt.Sprintf("%d", *v)
}

func stringOrDash(v string) string {
	if v == "" {
		return "--"
	}
	return v
}
