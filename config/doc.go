// Package config loads the IPMC configuration document and the board
// address table.
//
// # Configuration Document
//
// The configuration is a two-level YAML mapping of groups to fields:
//
//	board:
//	  serial: 207
//	  rev: 3
//	eeprom:
//	  version: 1
//	zynq:
//	  bootmode: 1
//	mac:
//	  eth0: "aa:bb:cc:dd:ee:ff"
//	  eth1: "11:22:33:44:55:66"
//
// Load it and hand the normalized values to the protocol codec, which
// performs the exhaustive field validation:
//
//	doc, err := config.Load("ipmc_config.yaml")
//	commands, err := protocol.BuildWriteCommands(doc.Values())
//
// # Board Map
//
// The board map resolves service module numbers to IPMC addresses.
// It is constructed explicitly (from DefaultBoardMap or a YAML file)
// and passed to the code that dials, never consulted through a
// package-level global.
package config
