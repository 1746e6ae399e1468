package main

import (
	"os"
	"runtime"
	"strings"
	"sync/atomic"
	"time"

	"pkt.systems/embsh"
	"pkt.systems/embsh/internal/version"
)

var startTime = time.Now()

// registerDiagnostics installs the demo diagnostic commands on the
// default registry.
func registerDiagnostics() error {
	counter := new(atomic.Int64)
	for _, c := range []struct {
		name string
		fn   embsh.Func
		data any
		desc string
	}{
		{"sysinfo", cmdSysinfo, nil, "Show host and runtime info"},
		{"uptime", cmdUptime, nil, "Show process uptime"},
		{"echo", cmdEcho, nil, "Echo arguments back"},
		{"counter", cmdCounter, counter, "Increment and print a counter"},
	} {
		if err := embsh.Register(c.name, c.fn, c.data, c.desc); err != nil {
			return err
		}
	}
	return nil
}

func cmdSysinfo(inv *embsh.Invocation) int {
	host, _ := os.Hostname()
	inv.Printf("host:    %s\r\n", host)
	inv.Printf("os:      %s/%s\r\n", runtime.GOOS, runtime.GOARCH)
	inv.Printf("cpus:    %d\r\n", runtime.NumCPU())
	inv.Printf("go:      %s\r\n", runtime.Version())
	inv.Printf("version: %s\r\n", version.Current())
	return 0
}

func cmdUptime(inv *embsh.Invocation) int {
	inv.Printf("up %s\r\n", time.Since(startTime).Round(time.Second))
	return 0
}

func cmdEcho(inv *embsh.Invocation) int {
	inv.Printf("%s\r\n", strings.Join(inv.Args[1:], " "))
	return 0
}

func cmdCounter(inv *embsh.Invocation) int {
	c, ok := inv.Data.(*atomic.Int64)
	if !ok {
		inv.Printf("counter unavailable\r\n")
		return 1
	}
	inv.Printf("%d\r\n", c.Add(1))
	return 0
}
