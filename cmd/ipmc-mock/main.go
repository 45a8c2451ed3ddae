// ipmc-mock is a TCP mock of the IPMC telnet console for bench
// testing the provisioning tools without hardware. It reproduces the
// wire behavior the tools depend on: per-byte echo, CRLF-terminated
// commands, and the prompt marker with its two-byte suffix after every
// response.
package main

import (
	"bufio"
	"fmt"
	"net"
	"strconv"
	"strings"

	log "github.com/sirupsen/logrus"
	"gopkg.in/alecthomas/kingpin.v2"
)

var (
	listen = kingpin.Flag("listen", "Address to listen on.").Default(":2323").String()
)

// eeprom is the mock controller's persistent store.
type eeprom struct {
	serial   int
	rev      int
	version  int
	bootmode int
	eth0     string
	eth1     string
}

func (e *eeprom) dump() string {
	lines := []string{
		fmt.Sprintf("prom version = 0x%02X", e.version),
		fmt.Sprintf("bootmode = 0x%02X", e.bootmode),
		fmt.Sprintf("hw = rev%d #%d", e.rev, e.serial),
		fmt.Sprintf("eth0_mac = %s", e.eth0),
		fmt.Sprintf("eth1_mac = %s", e.eth1),
	}
	return strings.Join(lines, "\r\n")
}

// handle executes one command line and returns the response text,
// without trailing newline.
func (e *eeprom) handle(line string) string {
	tokens := strings.Fields(line)
	if len(tokens) == 0 {
		return ""
	}

	atoi := func(s string) int {
		n, _ := strconv.Atoi(s)
		return n
	}

	switch tokens[0] {
	case "eepromrd":
		return e.dump()
	case "idwr":
		if len(tokens) > 1 {
			e.serial = atoi(tokens[1])
		}
		return "OK"
	case "revwr":
		if len(tokens) > 1 {
			e.rev = atoi(tokens[1])
		}
		return "OK"
	case "verwr":
		if len(tokens) > 1 {
			e.version = atoi(tokens[1])
		}
		return "OK"
	case "bootmode":
		if len(tokens) > 1 {
			e.bootmode = atoi(tokens[1])
		}
		return "OK"
	case "ethmacwr":
		// ethmacwr <port> <six octets, space-separated>
		if len(tokens) == 8 {
			mac := strings.Join(tokens[2:], ":")
			if tokens[1] == "0" {
				e.eth0 = mac
			} else {
				e.eth1 = mac
			}
			return "OK"
		}
		return "bad arguments"
	default:
		return "unknown command: " + tokens[0]
	}
}

func serve(conn net.Conn) {
	defer conn.Close()
	clog := log.WithField("peer", conn.RemoteAddr())
	clog.Info("session opened")

	store := &eeprom{
		serial:   0,
		rev:      0,
		version:  0,
		bootmode: 0,
		eth0:     "00:00:00:00:00:00",
		eth1:     "00:00:00:00:00:00",
	}

	r := bufio.NewReader(conn)
	var line strings.Builder
	for {
		b, err := r.ReadByte()
		if err != nil {
			clog.Info("session closed")
			return
		}

		// The console echoes every input byte before acting on it.
		if _, err := conn.Write([]byte{b}); err != nil {
			return
		}

		line.WriteByte(b)
		if !strings.HasSuffix(line.String(), "\r\n") {
			continue
		}

		cmd := strings.TrimSuffix(line.String(), "\r\n")
		line.Reset()

		response := store.handle(cmd)
		clog.WithField("command", cmd).Debug("command handled")

		// Response, then the prompt marker and its two filler bytes.
		if _, err := conn.Write([]byte(response + "\r\n>> ")); err != nil {
			return
		}
	}
}

func main() {
	kingpin.HelpFlag.Short('h')
	kingpin.Parse()

	ln, err := net.Listen("tcp", *listen)
	if err != nil {
		log.Fatal(err)
	}
	log.WithField("addr", ln.Addr()).Info("mock IPMC listening")

	for {
		conn, err := ln.Accept()
		if err != nil {
			log.Fatal(err)
		}
		go serve(conn)
	}
}
