// ipmc-info polls an IPMC and prints the service module number it
// reports in its EEPROM status dump.
package main

import (
	"context"
	"fmt"

	log "github.com/sirupsen/logrus"
	"gopkg.in/alecthomas/kingpin.v2"

	"github.com/apollo-tools/go-ipmc/ipmc"
	"github.com/apollo-tools/go-ipmc/protocol"
	"github.com/apollo-tools/go-ipmc/session"
)

var (
	addr    = kingpin.Arg("address", "IP address of the IPMC to poll.").Required().String()
	port    = kingpin.Flag("port", "Telnet service port on the IPMC.").Default(fmt.Sprint(protocol.DefaultPort)).Int()
	timeout = kingpin.Flag("timeout", "Per-operation socket timeout.").Default("5s").Duration()
	dump    = kingpin.Flag("dump", "Print the full status dump instead of just the module number.").Bool()
)

func main() {
	kingpin.HelpFlag.Short('h')
	kingpin.Parse()

	s, err := session.Dial(*addr, *port, session.WithTimeout(*timeout))
	if err != nil {
		log.Fatal(err)
	}
	defer s.Close()

	cfg := ipmc.New(s)
	_, raw, err := cfg.ReadStatus(context.Background())
	if err != nil {
		if session.IsTimeout(err) {
			log.Fatal("command timed out")
		}
		log.Fatal(err)
	}

	if *dump {
		fmt.Print(raw)
		return
	}

	number, err := protocol.BoardNumber(raw)
	if err != nil {
		log.Fatal(err)
	}
	fmt.Println(number)
}
