package snapshot

import "time"

// Details holds the extended readings shown by the profile view.
// Each section is zero-valued when its OS query failed.
type Details struct {
	CPU     CPUDetails
	Memory  MemoryDetails
	Disk    DiskDetails
	Network NetworkDetails
	Process ProcessDetails
	System  SystemDetails
}

// CPUDetails describes processor topology and per-core load.
type CPUDetails struct {
	PhysicalCores int
	LogicalCores  int
	FrequencyMHz  float64
	PerCore       []float64
}

// MemoryDetails describes physical and swap memory.
type MemoryDetails struct {
	Total       uint64
	Available   uint64
	SwapTotal   uint64
	SwapPercent float64
}

// DiskDetails describes the monitored volume and cumulative device I/O.
type DiskDetails struct {
	MountPoint string
	Total      uint64
	ReadBytes  uint64
	WriteBytes uint64
}

// NetworkDetails holds cumulative counters across all interfaces.
type NetworkDetails struct {
	BytesSent   uint64
	BytesRecv   uint64
	PacketsSent uint64
	PacketsRecv uint64
}

// ProcessDetails describes the process table and l3p itself.
type ProcessDetails struct {
	Total       int
	SelfCPU     float64
	SelfMemPct  float64
	SelfThreads int32
}

// SystemDetails identifies the host.
type SystemDetails struct {
	Hostname string
	Platform string
	BootTime time.Time
	Uptime   time.Duration
}
