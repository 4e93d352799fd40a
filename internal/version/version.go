package version

import (
	"encoding/json"
	"log"
	"os"
)

type Info struct {
	Version string `json:"version"`
}

// Load reads version.json from the working directory. A missing or broken
// file is not fatal; the zero version is reported instead.
func Load() Info {
	fallback := Info{Version: "0.0.0"}
	data, err := os.ReadFile("version.json")
	if err != nil {
		log.Printf("warning: could not read version.json: %v", err)
		return fallback
	}
	var info Info
	if err := json.Unmarshal(data, &info); err != nil {
		log.Printf("warning: could not parse version.json: %v", err)
		return fallback
	}
	if info.Version == "" {
		return fallback
	}
	return info
}
