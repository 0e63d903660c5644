package service

import (
	"context"
	"runtime"
	"time"

	"github.com/shirou/gopsutil/v3/cpu"
	"github.com/shirou/gopsutil/v3/disk"
	"github.com/shirou/gopsutil/v3/host"
	"github.com/shirou/gopsutil/v3/mem"

	"go-consult/app/consult"
)

type ServerStatus struct {
	Hostname   string  `json:"hostname"`
	OS         string  `json:"os"`
	UptimeSecs uint64  `json:"uptimeSecs"`
	Goroutines int     `json:"goroutines"`
	CPUPercent float64 `json:"cpuPercent"`
	MemTotal   uint64  `json:"memTotal"`
	MemUsed    uint64  `json:"memUsed"`
	MemPercent float64 `json:"memPercent"`
	DiskTotal  uint64  `json:"diskTotal"`
	DiskUsed   uint64  `json:"diskUsed"`
	DiskFree   uint64  `json:"diskFree"`
}

// GetServerStatus samples the host for the ops page. Probe failures leave
// the affected fields zero rather than failing the whole read-out.
func GetServerStatus(ctx context.Context) ServerStatus {
	status := ServerStatus{
		OS:         runtime.GOOS,
		Goroutines: runtime.NumGoroutine(),
	}
	if info, err := host.InfoWithContext(ctx); err == nil {
		status.Hostname = info.Hostname
		status.UptimeSecs = info.Uptime
	} else {
		consult.Logger().WithContext(ctx).Warn("host probe: ", err.Error())
	}
	if percents, err := cpu.PercentWithContext(ctx, 200*time.Millisecond, false); err == nil && len(percents) > 0 {
		status.CPUPercent = percents[0]
	} else if err != nil {
		consult.Logger().WithContext(ctx).Warn("cpu probe: ", err.Error())
	}
	if vm, err := mem.VirtualMemoryWithContext(ctx); err == nil {
		status.MemTotal = vm.Total
		status.MemUsed = vm.Used
		status.MemPercent = vm.UsedPercent
	} else {
		consult.Logger().WithContext(ctx).Warn("memory probe: ", err.Error())
	}
	if usage, err := disk.UsageWithContext(ctx, "/"); err == nil {
		status.DiskTotal = usage.Total
		status.DiskUsed = usage.Used
		status.DiskFree = usage.Free
	} else {
		consult.Logger().WithContext(ctx).Warn("disk probe: ", err.Error())
	}
	return status
}
