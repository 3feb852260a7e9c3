package config

import (
	"encoding/json"
	"errors"
	"log"
	"os"
	"reflect"

	"github.com/haldorsen/sinisterwar/cerrs"
)

// Config carries the settings read from the optional JSON config file. The
// controller and team binaries consult only DebugFlags; Grid and Pacing are
// loaded but not read by either binary.
type Config struct {
	DebugFlags DebugFlags_t `json:"DebugFlags"`
	Grid       Grid_t       `json:"Grid"`
	Pacing     Pacing_t     `json:"Pacing"`
}

type DebugFlags_t struct {
	Parser    bool `json:"Parser,omitempty"`
	Protocol  bool `json:"Protocol,omitempty"`
	Battle    bool `json:"Battle,omitempty"`
	Simulator bool `json:"Simulator,omitempty"`
}

// Grid_t holds toroidal-grid dimensions. The controller takes its height and
// width from its required positional arguments, not from these fields.
type Grid_t struct {
	Width  int `json:"Width"`
	Height int `json:"Height"`
}

// Pacing_t holds default round/tick timing.
type Pacing_t struct {
	Rounds       int `json:"Rounds"`
	RoundTimeout int `json:"RoundTimeoutSeconds"`
}

const (
	ErrIsDirectory = cerrs.Error("is directory")
	ErrIsNotAFile  = cerrs.Error("is not a file")
)

func Default() *Config {
	return &Config{
		Grid: Grid_t{
			Width:  8,
			Height: 8,
		},
		Pacing: Pacing_t{
			Rounds:       10,
			RoundTimeout: 30,
		},
	}
}

// Load reads a JSON config file, merging any fields it sets on top of
// Default(). A missing file is not an error; it simply yields the defaults.
func Load(name string, debug bool) (*Config, error) {
	if debug {
		log.Printf("[config] %q: loading configuration...\n", name)
	}
	cfg := Default()
	if sb, err := os.Stat(name); errors.Is(err, os.ErrNotExist) || os.IsNotExist(err) {
		if debug {
			log.Printf("[config] %q: %v\n", name, err)
		}
		return cfg, nil
	} else if sb.Mode().IsDir() {
		return cfg, ErrIsDirectory
	} else if !sb.Mode().IsRegular() {
		return cfg, ErrIsNotAFile
	}

	var tmp Config
	if data, err := os.ReadFile(name); err != nil {
		if debug {
			log.Printf("[config] %q: %v\n", name, err)
		}
		return cfg, nil
	} else if err = json.Unmarshal(data, &tmp); err != nil {
		if debug {
			log.Printf("[config] %q: %v\n", name, err)
		}
		return cfg, nil
	} else if debug {
		if nice, err := json.MarshalIndent(tmp, "", "  "); err == nil {
			log.Printf("[config] %s\n", nice)
		} else {
			log.Printf("[config] %q: loaded %s\n", name, string(data))
		}
	}

	// copy over every value from tmp to cfg that isn't the default (zero) value
	copyNonZeroFields(&tmp, cfg)

	return cfg, nil
}

// copyNonZeroFields recursively copies non-zero fields from src to dst using reflection
func copyNonZeroFields(src, dst interface{}) {
	srcVal := reflect.ValueOf(src)
	dstVal := reflect.ValueOf(dst)

	// Dereference pointers
	if srcVal.Kind() == reflect.Ptr {
		srcVal = srcVal.Elem()
	}
	if dstVal.Kind() == reflect.Ptr {
		dstVal = dstVal.Elem()
	}

	// Only work with structs
	if srcVal.Kind() != reflect.Struct || dstVal.Kind() != reflect.Struct {
		return
	}

	for i := 0; i < srcVal.NumField(); i++ {
		srcField := srcVal.Field(i)
		dstField := dstVal.Field(i)

		// Skip unexported fields
		if !srcField.CanInterface() || !dstField.CanSet() {
			continue
		}

		// Check if source field is zero value
		if srcField.IsZero() {
			continue
		}

		// Handle different field types
		switch srcField.Kind() {
		case reflect.Struct:
			// Recursively copy struct fields
			copyNonZeroFields(srcField.Interface(), dstField.Addr().Interface())
		default:
			// Copy primitive types and other values
			dstField.Set(srcField)
		}
	}
}
