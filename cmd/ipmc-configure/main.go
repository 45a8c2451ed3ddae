// ipmc-configure pushes the persistent identity fields of a service
// module's IPMC (serial, revision, firmware version, boot mode, MAC
// addresses) into EEPROM and verifies the write by reading them back.
package main

import (
	"context"
	"fmt"
	"os"

	log "github.com/sirupsen/logrus"
	"gopkg.in/alecthomas/kingpin.v2"

	"github.com/apollo-tools/go-ipmc/config"
	"github.com/apollo-tools/go-ipmc/ipmc"
	"github.com/apollo-tools/go-ipmc/protocol"
	"github.com/apollo-tools/go-ipmc/session"
)

var (
	boardNumber = kingpin.Arg("board", "The serial number of the service module to provision.").Required().Int()
	configPath  = kingpin.Flag("config", "Path to the IPMC config file.").Short('c').Default("config/ipmc_config.yaml").String()
	boardsPath  = kingpin.Flag("boards", "Path to a board map YAML file; defaults to the built-in table.").String()
	port        = kingpin.Flag("port", "Telnet service port on the IPMC.").Default(fmt.Sprint(protocol.DefaultPort)).Int()
	timeout     = kingpin.Flag("timeout", "Per-operation socket timeout.").Default("5s").Duration()
	settle      = kingpin.Flag("settle", "Quiescence period between commands.").Default("500ms").Duration()
	debug       = kingpin.Flag("debug", "Enable debug logging.").Bool()
)

// logrusAdapter bridges the ipmc.Logger interface onto logrus.
type logrusAdapter struct{}

func (logrusAdapter) Debug(msg string, kv ...interface{}) { log.WithFields(fields(kv)).Debug(msg) }
func (logrusAdapter) Info(msg string, kv ...interface{})  { log.WithFields(fields(kv)).Info(msg) }
func (logrusAdapter) Error(msg string, kv ...interface{}) { log.WithFields(fields(kv)).Error(msg) }

func fields(kv []interface{}) log.Fields {
	f := make(log.Fields, len(kv)/2)
	for i := 0; i+1 < len(kv); i += 2 {
		f[fmt.Sprint(kv[i])] = kv[i+1]
	}
	return f
}

func main() {
	kingpin.HelpFlag.Short('h')
	kingpin.Parse()

	if *debug {
		log.SetLevel(log.DebugLevel)
	}

	boards := config.DefaultBoardMap()
	if *boardsPath != "" {
		var err error
		boards, err = config.LoadBoardMap(*boardsPath)
		if err != nil {
			log.Fatal(err)
		}
	}

	host, err := boards.Resolve(*boardNumber)
	if err != nil {
		log.Fatal(err)
	}

	doc, err := config.Load(*configPath)
	if err != nil {
		log.Fatal(err)
	}

	s, err := session.Dial(host, *port, session.WithTimeout(*timeout))
	if err != nil {
		log.Fatal(err)
	}
	defer s.Close()

	log.WithFields(log.Fields{
		"board":   fmt.Sprintf("SM%d", *boardNumber),
		"addr":    s.RemoteAddr(),
		"timeout": *timeout,
	}).Info("connection established")

	cfg := ipmc.New(s,
		ipmc.WithSettleDelay(*settle),
		ipmc.WithLogger(logrusAdapter{}),
		ipmc.WithProgressCallback(func(p ipmc.Progress) {
			if p.Phase == ipmc.PhaseWriting {
				fmt.Printf(">> %s\n", p.Command)
			}
		}),
	)

	report, err := cfg.Configure(context.Background(), doc.Values())
	if err != nil {
		log.Fatal(err)
	}

	fmt.Println("\nCommands are done. EEPROM reads as:")
	fmt.Println(report.Dump)

	if !report.OK() {
		for _, c := range report.Commands {
			if c.TimedOut {
				log.WithField("keyword", c.Command.Keyword).Error("command was skipped")
			}
		}
		for _, f := range report.Verification.Failures() {
			switch f.Outcome {
			case protocol.OutcomeAbsent:
				log.WithField("key", f.Key).Error("expected key not found")
			default:
				log.WithFields(log.Fields{
					"key":      f.Key,
					"expected": f.Expected,
					"actual":   f.Actual,
				}).Error("key value does not match")
			}
		}
		os.Exit(1)
	}

	log.Info("EEPROM verified OK")
}
