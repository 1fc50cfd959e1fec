package app

import (
	"bufio"
	"encoding/json"
	"fmt"
	"log"
	"os"
	"os/signal"
	"path/filepath"
	"sync/atomic"
	"syscall"
	"time"

	mqtt "github.com/eclipse/paho.mqtt.golang"
	serial "github.com/jacobsa/go-serial/serial"

	"github.com/relabs-tech/nmea_fusion/internal/config"
	"github.com/relabs-tech/nmea_fusion/internal/nmea"
)

// RunFusionProducer opens the GPS serial port, fuses incoming NMEA
// sentences into the current fix, publishes each update as JSON to MQTT,
// and appends a snapshot to the fix log on the configured interval.
func RunFusionProducer() error {
	cfg := config.Get()

	// ---- 1) Connect to MQTT broker ----
	opts := mqtt.NewClientOptions().
		AddBroker(cfg.MQTTBroker).
		SetClientID(cfg.MQTTClientIDProducer)

	client := mqtt.NewClient(opts)
	if token := client.Connect(); token.Wait() && token.Error() != nil {
		return token.Error()
	}
	defer client.Disconnect(250)
	log.Printf("fusion producer connected to MQTT broker at %s", cfg.MQTTBroker)

	// ---- 2) Open GPS serial port ----
	serialOpts := serial.OpenOptions{
		PortName:              cfg.GPSSerialPort,
		BaudRate:              uint(cfg.GPSBaudRate),
		DataBits:              8,
		StopBits:              1,
		MinimumReadSize:       1,
		ParityMode:            serial.PARITY_NONE,
		InterCharacterTimeout: 0,
	}

	port, err := serial.Open(serialOpts)
	if err != nil {
		return fmt.Errorf("open serial port %s: %w", cfg.GPSSerialPort, err)
	}
	defer port.Close()
	log.Printf("GPS serial port opened on %s at %d baud", cfg.GPSSerialPort, cfg.GPSBaudRate)

	// ---- 3) Fuse, publish, log ----
	engine := nmea.New()
	engine.SetDebug(cfg.Debug)
	engine.OnUpdate(func(fix nmea.Fix) {
		publishFix(client, cfg.TopicGPSFix, fix)
	})

	logPath := filepath.Join(cfg.LogDir,
		fmt.Sprintf("gps_fusion_%s.log", time.Now().Format("20060102_150405")))
	logInterval := time.Duration(cfg.LogIntervalSeconds) * time.Second

	var running atomic.Bool
	running.Store(true)

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-sigCh
		log.Println("fusion producer: shutdown requested")
		running.Store(false)
		port.Close() // unblock the pending read
	}()

	reader := bufio.NewReader(port)
	lastLog := time.Now()

	// One line, one decode. The stop flag is checked once per iteration,
	// so a sentence is never interrupted mid-merge.
	for running.Load() {
		line, err := reader.ReadString('\n')
		if err != nil {
			if !running.Load() {
				break
			}
			return fmt.Errorf("GPS read: %w", err)
		}

		engine.ProcessLine(line)

		if time.Since(lastLog) >= logInterval {
			if err := appendFixLog(logPath, engine.Snapshot()); err != nil {
				log.Printf("fix log write error: %v", err)
			}
			lastLog = time.Now()
		}
	}

	// Final snapshot before exit, like the periodic one.
	if err := appendFixLog(logPath, engine.Snapshot()); err != nil {
		log.Printf("fix log write error: %v", err)
	}
	return nil
}

func publishFix(client mqtt.Client, topic string, fix nmea.Fix) {
	payload, err := json.Marshal(fix)
	if err != nil {
		log.Printf("fix JSON marshal error: %v", err)
		return
	}

	token := client.Publish(topic, 0, true, payload)
	token.Wait()
	if token.Error() != nil {
		log.Printf("fix publish error: %v", token.Error())
	}
}

func appendFixLog(path string, fix nmea.Fix) error {
	f, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		return err
	}
	defer f.Close()

	payload, err := json.MarshalIndent(fix, "", "  ")
	if err != nil {
		return err
	}
	_, err = f.Write(append(payload, '\n'))
	return err
}
