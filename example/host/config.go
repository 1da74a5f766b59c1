// Package host is a minimal demo harness that drives a locomotion.Engine
// the way a real XR host process would: it owns the fixed-tick goroutine,
// feeds it a scene fixture, and renders its Stats to a terminal.
package host

import (
	"os"

	"github.com/RestartFU/gophig"
)

// HostConfig persists the harness's own settings between runs — which scene
// fixture to load and at what frequency to drive the engine — separate from
// the locomotion engine's own runtime Config message.
//
// Grounded on the teacher's readConfig (main.go): same
// exists-check/create-then-read/write-back TOML round-trip via gophig.
type HostConfig struct {
	ScenePath string
	Frequency float32
}

const hostConfigPath = "host.toml"

// LoadHostConfig reads host.toml, creating it with defaults on first run.
func LoadHostConfig() (HostConfig, error) {
	var c HostConfig
	if _, err := os.Stat(hostConfigPath); os.IsNotExist(err) {
		c = HostConfig{ScenePath: "scene.yaml", Frequency: 60}
		if err := gophig.SetConfComplex(hostConfigPath, gophig.TOMLMarshaler{}, c, 0644); err != nil {
			return c, err
		}
	}
	if err := gophig.GetConfComplex(hostConfigPath, gophig.TOMLMarshaler{}, &c); err != nil {
		return c, err
	}
	if c.ScenePath == "" {
		c.ScenePath = "scene.yaml"
	}
	if c.Frequency <= 0 {
		c.Frequency = 60
	}
	if err := gophig.SetConfComplex(hostConfigPath, gophig.TOMLMarshaler{}, c, 0644); err != nil {
		return c, err
	}
	return c, nil
}
