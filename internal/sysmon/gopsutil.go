package sysmon

import (
	"context"
	"errors"
	"os"
	"strings"
	"time"

	"github.com/shirou/gopsutil/v4/cpu"
	"github.com/shirou/gopsutil/v4/disk"
	"github.com/shirou/gopsutil/v4/host"
	"github.com/shirou/gopsutil/v4/mem"
	"github.com/shirou/gopsutil/v4/net"
	"github.com/shirou/gopsutil/v4/process"

	"github.com/agbru/l3p/internal/snapshot"
)

var errZeroTotal = errors.New("reported total is zero")

// GopsutilSource reads metrics from the OS through gopsutil.
type GopsutilSource struct {
	self *process.Process
}

// NewGopsutilSource creates the default OS-backed Source.
func NewGopsutilSource() *GopsutilSource {
	src := &GopsutilSource{}
	if p, err := process.NewProcess(int32(os.Getpid())); err == nil {
		src.self = p
	}
	return src
}

// CPUPercent implements Source.
func (g *GopsutilSource) CPUPercent(ctx context.Context, interval time.Duration) (float64, error) {
	pcts, err := cpu.PercentWithContext(ctx, interval, false)
	if err != nil {
		return 0, err
	}
	if len(pcts) == 0 {
		return 0, errors.New("cpu: no readings")
	}
	return pcts[0], nil
}

// MemPercent implements Source as (total-available)/total.
func (g *GopsutilSource) MemPercent(ctx context.Context) (float64, error) {
	vm, err := mem.VirtualMemoryWithContext(ctx)
	if err != nil {
		return 0, err
	}
	if vm.Total == 0 {
		return 0, errZeroTotal
	}
	used := vm.Total - min(vm.Available, vm.Total)
	return float64(used) / float64(vm.Total) * 100, nil
}

// DiskPercent implements Source as used/total of the volume at path.
func (g *GopsutilSource) DiskPercent(ctx context.Context, path string) (float64, error) {
	u, err := disk.UsageWithContext(ctx, path)
	if err != nil {
		return 0, err
	}
	if u.Total == 0 {
		return 0, errZeroTotal
	}
	return float64(u.Used) / float64(u.Total) * 100, nil
}

// Details implements Source. Every section is queried independently.
func (g *GopsutilSource) Details(ctx context.Context, path string) *snapshot.Details {
	d := &snapshot.Details{}

	if n, err := cpu.CountsWithContext(ctx, false); err == nil {
		d.CPU.PhysicalCores = n
	}
	if n, err := cpu.CountsWithContext(ctx, true); err == nil {
		d.CPU.LogicalCores = n
	}
	if infos, err := cpu.InfoWithContext(ctx); err == nil && len(infos) > 0 {
		d.CPU.FrequencyMHz = infos[0].Mhz
	}
	if per, err := cpu.PercentWithContext(ctx, 0, true); err == nil {
		d.CPU.PerCore = per
	}

	if vm, err := mem.VirtualMemoryWithContext(ctx); err == nil {
		d.Memory.Total = vm.Total
		d.Memory.Available = vm.Available
	}
	if sw, err := mem.SwapMemoryWithContext(ctx); err == nil {
		d.Memory.SwapTotal = sw.Total
		d.Memory.SwapPercent = sw.UsedPercent
	}

	d.Disk.MountPoint = path
	if u, err := disk.UsageWithContext(ctx, path); err == nil {
		d.Disk.Total = u.Total
	}
	if io, err := disk.IOCountersWithContext(ctx); err == nil {
		for _, c := range io {
			d.Disk.ReadBytes += c.ReadBytes
			d.Disk.WriteBytes += c.WriteBytes
		}
	}

	if counters, err := net.IOCountersWithContext(ctx, false); err == nil && len(counters) > 0 {
		d.Network.BytesSent = counters[0].BytesSent
		d.Network.BytesRecv = counters[0].BytesRecv
		d.Network.PacketsSent = counters[0].PacketsSent
		d.Network.PacketsRecv = counters[0].PacketsRecv
	}

	if pids, err := process.PidsWithContext(ctx); err == nil {
		d.Process.Total = len(pids)
	}
	if g.self != nil {
		if pct, err := g.self.PercentWithContext(ctx, 0); err == nil {
			d.Process.SelfCPU = pct
		}
		if pct, err := g.self.MemoryPercentWithContext(ctx); err == nil {
			d.Process.SelfMemPct = float64(pct)
		}
		if n, err := g.self.NumThreadsWithContext(ctx); err == nil {
			d.Process.SelfThreads = n
		}
	}

	if info, err := host.InfoWithContext(ctx); err == nil {
		d.System.Hostname = info.Hostname
		d.System.Platform = strings.TrimSpace(strings.Join([]string{info.Platform, info.PlatformVersion, info.KernelArch}, " "))
		d.System.BootTime = time.Unix(int64(info.BootTime), 0)
		d.System.Uptime = time.Duration(info.Uptime) * time.Second
	}
	return d
}
