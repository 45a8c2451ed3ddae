// ipmc-fwupdate upgrades and activates IPMC firmware on one or more
// crate slots through the shelf manager, after checking each slot's
// FRU inventory identifies a controller we are willing to flash.
package main

import (
	"context"
	"errors"
	"net"
	"os"
	"path/filepath"
	"time"

	log "github.com/sirupsen/logrus"
	"gopkg.in/alecthomas/kingpin.v2"

	"github.com/apollo-tools/go-ipmc/fwupdate"
)

var (
	upgradeFile = kingpin.Flag("upgrade-file", "Path to the .hpm file to be used to update IPMC firmware.").Short('u').Required().ExistingFile()
	shelf       = kingpin.Flag("shelf", "The shelf IP address where the blades to update are located.").Short('s').Required().String()
	ipmbAddrs   = kingpin.Flag("ipmb", "Slot IPMB address of an IPMC to update (repeatable).").Short('i').Required().Strings()
)

func main() {
	kingpin.HelpFlag.Short('h')
	kingpin.Parse()

	if net.ParseIP(*shelf) == nil {
		log.Fatalf("invalid IP address for the shelf: %s", *shelf)
	}
	for _, ipmb := range *ipmbAddrs {
		// Slot addresses are raw hex on the ipmitool command line.
		if len(ipmb) < 3 || ipmb[:2] != "0x" {
			log.Fatalf("invalid slot address given: %s", ipmb)
		}
	}

	absPath, err := filepath.Abs(*upgradeFile)
	if err != nil {
		log.Fatal(err)
	}

	updater := fwupdate.New(*shelf)
	ctx := context.Background()
	failed := false

	for _, ipmb := range *ipmbAddrs {
		slotLog := log.WithField("slot", ipmb)
		slotLog.Info("validating IPMC information")

		if err := updater.ValidateInfo(ctx, ipmb); err != nil {
			failed = true
			var mismatch *fwupdate.InfoMismatchError
			if errors.As(err, &mismatch) {
				slotLog.WithFields(log.Fields{
					"field":    mismatch.Field,
					"actual":   mismatch.Actual,
					"expected": mismatch.Expected,
				}).Error("wrong IPMC information, skipping slot")
			} else {
				slotLog.WithError(err).Error("failed to retrieve IPMC information, skipping slot")
			}
			continue
		}

		slotLog.WithFields(log.Fields{
			"shelf": *shelf,
			"file":  absPath,
		}).Info("updating and activating IPMC firmware")

		if err := updater.Upgrade(ctx, ipmb, absPath); err != nil {
			failed = true
			slotLog.WithError(err).Error("firmware upgrade failed, skipping slot")
			continue
		}

		// Give the controller a moment between upgrade and activate.
		time.Sleep(time.Second)

		if err := updater.Activate(ctx, ipmb); err != nil {
			failed = true
			slotLog.WithError(err).Error("firmware activation failed")
			continue
		}

		slotLog.Info("firmware updated")
	}

	if failed {
		os.Exit(1)
	}
}
