package protocol

import (
	"fmt"
	"strconv"
)

// ExpectedState derives the status-dump keys and values the controller
// must report after a successful write of the given configuration.
//
// Formatting mirrors the controller's own output: version and bootmode
// are reported as 0x-prefixed two-digit uppercase hex, the hardware
// identity as "rev<rev> #<serial>", MAC addresses verbatim. The
// "bootmode" key is only expected when zynq.bootmode is configured.
//
// Required fields are assumed present (BuildWriteCommands validates
// them); a non-integer version or bootmode fails with a *ValueError.
func ExpectedState(values Values) (map[string]string, error) {
	version, err := intValue(values, "eeprom", "version")
	if err != nil {
		return nil, err
	}

	serial, _ := values.Lookup("board", "serial")
	rev, _ := values.Lookup("board", "rev")
	eth0, _ := values.Lookup("mac", "eth0")
	eth1, _ := values.Lookup("mac", "eth1")

	expected := map[string]string{
		"prom version": fmt.Sprintf("0x%02X", version),
		"hw":           fmt.Sprintf("rev%s #%s", rev, serial),
		"eth0_mac":     eth0,
		"eth1_mac":     eth1,
	}

	if _, ok := values.Lookup("zynq", "bootmode"); ok {
		bootmode, err := intValue(values, "zynq", "bootmode")
		if err != nil {
			return nil, err
		}
		expected["bootmode"] = fmt.Sprintf("0x%02X", bootmode)
	}

	return expected, nil
}

func intValue(values Values, group, field string) (int, error) {
	raw, _ := values.Lookup(group, field)
	n, err := strconv.Atoi(raw)
	if err != nil {
		return 0, &ValueError{Group: group, Field: field, Value: raw}
	}
	return n, nil
}
