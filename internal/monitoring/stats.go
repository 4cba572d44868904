// Package monitoring collects host and database statistics for the admin
// system status endpoint.
package monitoring

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shirou/gopsutil/v3/cpu"
	"github.com/shirou/gopsutil/v3/disk"
	"github.com/shirou/gopsutil/v3/mem"
)

type Collector struct {
	db *pgxpool.Pool
}

func NewCollector(db *pgxpool.Pool) *Collector {
	return &Collector{db: db}
}

type SystemStats struct {
	DatabaseStatus    string  `json:"database_status"`
	ActiveConnections int     `json:"active_connections"`
	ResponseTime      int64   `json:"response_time_ms"`
	DBSize            string  `json:"db_size"`
	DBUptime          string  `json:"db_uptime"`
	CPUPercent        float64 `json:"cpu_percent"`
	MemoryPercent     float64 `json:"memory_percent"`
	MemoryUsed        string  `json:"memory_used"`
	MemoryTotal       string  `json:"memory_total"`
	DiskPercent       float64 `json:"disk_percent"`
	DiskUsed          string  `json:"disk_used"`
	DiskTotal         string  `json:"disk_total"`
}

// Collect gathers database and host metrics in one pass.
func (c *Collector) Collect(ctx context.Context) SystemStats {
	ctx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()

	start := time.Now()
	err := c.db.Ping(ctx)
	responseTime := time.Since(start).Milliseconds()

	dbStatus := "healthy"
	if err != nil {
		dbStatus = "unhealthy"
	}

	var activeConns int
	c.db.QueryRow(ctx, "SELECT count(*) FROM pg_stat_activity").Scan(&activeConns)

	var dbSizeBytes int64
	c.db.QueryRow(ctx, "SELECT pg_database_size(current_database())").Scan(&dbSizeBytes)

	var uptimeSec int
	c.db.QueryRow(ctx, "SELECT EXTRACT(EPOCH FROM (NOW() - pg_postmaster_start_time()))::int").Scan(&uptimeSec)

	cpuPercents, _ := cpu.Percent(0, false)
	cpuPercent := 0.0
	if len(cpuPercents) > 0 {
		cpuPercent = cpuPercents[0]
	}

	memStats, _ := mem.VirtualMemory()
	diskStats, _ := disk.Usage("/")

	return SystemStats{
		DatabaseStatus:    dbStatus,
		ActiveConnections: activeConns,
		ResponseTime:      responseTime,
		DBSize:            formatBytes(uint64(dbSizeBytes)),
		DBUptime:          formatUptime(uptimeSec),
		CPUPercent:        cpuPercent,
		MemoryPercent:     memStats.UsedPercent,
		MemoryUsed:        formatBytes(memStats.Used),
		MemoryTotal:       formatBytes(memStats.Total),
		DiskPercent:       diskStats.UsedPercent,
		DiskUsed:          formatBytes(diskStats.Used),
		DiskTotal:         formatBytes(diskStats.Total),
	}
}

func formatBytes(bytes uint64) string {
	gb := float64(bytes) / (1024 * 1024 * 1024)
	if gb < 1 {
		mb := float64(bytes) / (1024 * 1024)
		return fmt.Sprintf("%.1f MB", mb)
	}
	return fmt.Sprintf("%.1f GB", gb)
}

func formatUptime(seconds int) string {
	days := seconds / 86400
	hours := (seconds % 86400) / 3600
	minutes := (seconds % 3600) / 60

	if days > 0 {
		return fmt.Sprintf("%dd %dh", days, hours)
	}
	if hours > 0 {
		return fmt.Sprintf("%dh %dm", hours, minutes)
	}
	return fmt.Sprintf("%dm", minutes)
}
