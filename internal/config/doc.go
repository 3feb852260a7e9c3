// Package config manages JSON configuration loading for the controller and
// team binaries. It handles debug flags, default grid dimensions, and round
// pacing. Configuration is loaded from a sinisterwar.json file with sensible
// defaults, merging only the fields the file sets.
package config
