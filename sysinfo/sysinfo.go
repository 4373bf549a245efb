// Package sysinfo probes the host the scanner is running on: the OS family
// for informational log lines, plus a point-in-time hardware snapshot.
package sysinfo

import (
	"fmt"
	"runtime"
	"time"

	"github.com/shirou/gopsutil/v4/cpu"
	"github.com/shirou/gopsutil/v4/host"
	"github.com/shirou/gopsutil/v4/mem"
)

// PlatformInfo answers OS-family queries for one GOOS value.
type PlatformInfo struct {
	goos string
}

// Host probes the running platform.
func Host() *PlatformInfo {
	return &PlatformInfo{goos: runtime.GOOS}
}

func (p *PlatformInfo) IsLinux() bool   { return p.goos == "linux" }
func (p *PlatformInfo) IsMac() bool     { return p.goos == "darwin" }
func (p *PlatformInfo) IsWindows() bool { return p.goos == "windows" }

func (p *PlatformInfo) String() string { return p.goos }

// HostSnapshot is a point-in-time view of the host's CPU, memory and uptime.
type HostSnapshot struct {
	OS           string
	PhysicalCPUs int
	LogicalCPUs  int
	TotalMemory  uint64
	UsedMemory   uint64
	LastBoot     time.Time
}

// Snapshot collects CPU counts, memory usage and the last boot time.
func (p *PlatformInfo) Snapshot() (*HostSnapshot, error) {
	physical, err := cpu.Counts(false)
	if err != nil {
		return nil, fmt.Errorf("counting physical CPUs: %w", err)
	}
	logical, err := cpu.Counts(true)
	if err != nil {
		return nil, fmt.Errorf("counting logical CPUs: %w", err)
	}

	vm, err := mem.VirtualMemory()
	if err != nil {
		return nil, fmt.Errorf("reading memory stats: %w", err)
	}

	bootTime, err := host.BootTime()
	if err != nil {
		return nil, fmt.Errorf("reading boot time: %w", err)
	}

	return &HostSnapshot{
		OS:           p.goos,
		PhysicalCPUs: physical,
		LogicalCPUs:  logical,
		TotalMemory:  vm.Total,
		UsedMemory:   vm.Used,
		LastBoot:     time.Unix(int64(bootTime), 0),
	}, nil
}
