// Package sysmon samples system-wide and per-process resource usage for the
// dashboard footer.
package sysmon

import (
	"context"
	"fmt"
	"os"

	"github.com/shirou/gopsutil/v4/cpu"
	"github.com/shirou/gopsutil/v4/mem"
	"github.com/shirou/gopsutil/v4/process"
)

// Stats holds a single snapshot of resource usage.
type Stats struct {
	CPUPercent float64 // system-wide, 0.0 .. 100.0
	MemPercent float64 // system-wide, 0.0 .. 100.0
	ProcessRSS uint64  // resident set size of this process in bytes
}

// String renders the snapshot for a status line.
func (s Stats) String() string {
	return fmt.Sprintf("CPU %.1f%%  MEM %.1f%%  RSS %.1f MiB", s.CPUPercent, s.MemPercent, float64(s.ProcessRSS)/(1<<20))
}

// Sampler collects snapshots. The zero value is not usable; call NewSampler.
type Sampler struct {
	proc *process.Process
}

// NewSampler creates a sampler for the current process. If the process
// handle cannot be opened, ProcessRSS stays zero.
func NewSampler() *Sampler {
	p, err := process.NewProcess(int32(os.Getpid()))
	if err != nil {
		p = nil
	}
	return &Sampler{proc: p}
}

// Sample collects a snapshot. CPU uses interval=0 (delta since the last
// call). Fields that cannot be read are left at zero.
func (s *Sampler) Sample(ctx context.Context) Stats {
	var st Stats
	if pcts, err := cpu.PercentWithContext(ctx, 0, false); err == nil && len(pcts) > 0 {
		st.CPUPercent = pcts[0]
	}
	if vmem, err := mem.VirtualMemoryWithContext(ctx); err == nil && vmem != nil {
		st.MemPercent = vmem.UsedPercent
	}
	if s.proc != nil {
		if info, err := s.proc.MemoryInfoWithContext(ctx); err == nil && info != nil {
			st.ProcessRSS = info.RSS
		}
	}
	return st
}

// Sample collects a single snapshot with a fresh sampler.
func Sample() Stats {
	return NewSampler().Sample(context.Background())
}
