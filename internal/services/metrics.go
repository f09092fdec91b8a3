package services

import (
	"os"
	"time"

	"github.com/shirou/gopsutil/v3/cpu"
	"github.com/shirou/gopsutil/v3/disk"
	"github.com/shirou/gopsutil/v3/mem"
	"github.com/shirou/gopsutil/v3/process"
)

// SystemSnapshot is a point-in-time view of the host, captured on request.
type SystemSnapshot struct {
	CapturedAt        time.Time `json:"capturedAt"`
	ProcessRSSBytes   int64     `json:"processRssBytes"`
	ProcessCpuLoad    float64   `json:"processCpuLoad"`
	SystemMemoryTotal int64     `json:"systemMemoryTotalBytes"`
	SystemMemoryUsed  int64     `json:"systemMemoryUsedBytes"`
	DiskPath          string    `json:"diskPath"`
	DiskTotalBytes    int64     `json:"diskTotalBytes"`
	DiskUsedBytes     int64     `json:"diskUsedBytes"`
	SystemCpuLoad     float64   `json:"systemCpuLoad"`
}

func CaptureSystem(diskPath string) (SystemSnapshot, error) {
	snapshot := SystemSnapshot{CapturedAt: time.Now().UTC(), DiskPath: diskPath}

	memStat, err := mem.VirtualMemory()
	if err != nil {
		return SystemSnapshot{}, WrapError(err, "virtual memory")
	}
	snapshot.SystemMemoryTotal = int64(memStat.Total)
	snapshot.SystemMemoryUsed = int64(memStat.Total - memStat.Available)

	diskStat, err := disk.Usage(diskPath)
	if err != nil {
		snapshot.DiskPath = "/"
		diskStat, err = disk.Usage("/")
	}
	if err == nil {
		snapshot.DiskTotalBytes = int64(diskStat.Total)
		snapshot.DiskUsedBytes = int64(diskStat.Used)
	}

	if proc, err := process.NewProcess(int32(os.Getpid())); err == nil {
		if rss, err := proc.MemoryInfo(); err == nil && rss != nil {
			snapshot.ProcessRSSBytes = int64(rss.RSS)
		}
		if cpuPerc, err := proc.CPUPercent(); err == nil {
			snapshot.ProcessCpuLoad = cpuPerc / 100.0
		}
	}
	if sysCPU, err := cpu.Percent(0, false); err == nil && len(sysCPU) > 0 {
		snapshot.SystemCpuLoad = sysCPU[0] / 100.0
	}
	return snapshot, nil
}
