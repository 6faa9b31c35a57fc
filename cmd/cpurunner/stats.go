package main

import (
	"log"
	"os"

	"github.com/bradleyjkemp/memviz"
	"github.com/go-echarts/statsview"
	"github.com/go-echarts/statsview/viewer"

	"github.com/FabianRolfMatthiasNoll/lr35902/internal/emu"
)

const statsviewURL = "/debug/statsview"

// launchStatsview starts a goroutine serving runtime statistics. Useful for
// watching allocation and GC behaviour during long runs.
func launchStatsview(addr string) {
	go func() {
		viewer.SetConfiguration(viewer.WithAddr(addr))
		mgr := statsview.New()
		mgr.Start()
	}()
	log.Printf("stats server available at %s%s", addr, statsviewURL)
}

// writeMemviz writes a graphviz description of the machine snapshot.
func writeMemviz(path string, m *emu.Machine) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}

	snapshot := m.Snapshot()
	memviz.Map(f, &snapshot)
	return f.Close()
}
