package protocol

// FieldSpec identifies one controller-writable EEPROM field: the group
// and field name it is read from in the configuration document, and the
// literal command keyword that writes it.
type FieldSpec struct {
	// Group is the configuration group name (e.g. "board", "mac")
	Group string

	// Field is the field name within the group (e.g. "serial", "eth0")
	Field string

	// Keyword is the command keyword that writes the field, including
	// any fixed argument (e.g. "ethmacwr 0")
	Keyword string

	// Optional marks fields that may be absent from the configuration.
	// Absent optional fields are skipped, not errors.
	Optional bool
}

// Fields returns the write-command table in transmission order.
// The order determines the order of transmission and reporting only;
// the controller does not care.
func Fields() []FieldSpec {
	return []FieldSpec{
		{Group: "board", Field: "serial", Keyword: "idwr"},
		{Group: "board", Field: "rev", Keyword: "revwr"},
		{Group: "eeprom", Field: "version", Keyword: "verwr"},
		{Group: "zynq", Field: "bootmode", Keyword: "bootmode", Optional: true},
		{Group: "mac", Field: "eth0", Keyword: "ethmacwr 0"},
		{Group: "mac", Field: "eth1", Keyword: "ethmacwr 1"},
	}
}
