// Package metrics provides Prometheus metrics for part maintenance
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	RepairsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "mekparts_repairs_total",
			Help: "Total number of completed repairs",
		},
		[]string{"campaign", "kind"},
	)

	RemovalsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "mekparts_removals_total",
			Help: "Total number of parts removed from units",
		},
		[]string{"campaign", "kind", "mode"},
	)

	DestructionsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "mekparts_destructions_total",
			Help: "Total number of parts destroyed outright by damage",
		},
		[]string{"campaign", "kind"},
	)

	ReplacementsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "mekparts_replacements_total",
			Help: "Total number of missing parts replaced from the warehouse",
		},
		[]string{"campaign", "kind"},
	)

	BlockedTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "mekparts_blocked_tasks_total",
			Help: "Total number of maintenance tasks that could not be done",
		},
		[]string{"campaign", "kind"},
	)

	WarehouseSpares = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "mekparts_warehouse_spares",
			Help: "Number of spare records held in the warehouse",
		},
		[]string{"campaign"},
	)
)

// Removal modes
const (
	ModeSalvage = "salvage"
	ModeScrap   = "scrap"
)

// MaintenanceMetrics records maintenance metrics for one campaign
type MaintenanceMetrics struct {
	campaign string
}

// NewMaintenanceMetrics creates a new metrics recorder for a campaign
func NewMaintenanceMetrics(campaign string) *MaintenanceMetrics {
	return &MaintenanceMetrics{campaign: campaign}
}

func (m *MaintenanceMetrics) RecordRepair(kind string) {
	RepairsTotal.WithLabelValues(m.campaign, kind).Inc()
}

func (m *MaintenanceMetrics) RecordRemoval(kind string, salvage bool) {
	mode := ModeScrap
	if salvage {
		mode = ModeSalvage
	}
	RemovalsTotal.WithLabelValues(m.campaign, kind, mode).Inc()
}

func (m *MaintenanceMetrics) RecordDestruction(kind string) {
	DestructionsTotal.WithLabelValues(m.campaign, kind).Inc()
}

func (m *MaintenanceMetrics) RecordReplacement(kind string) {
	ReplacementsTotal.WithLabelValues(m.campaign, kind).Inc()
}

func (m *MaintenanceMetrics) RecordBlocked(kind string) {
	BlockedTotal.WithLabelValues(m.campaign, kind).Inc()
}

func (m *MaintenanceMetrics) SetWarehouseSpares(n int) {
	WarehouseSpares.WithLabelValues(m.campaign).Set(float64(n))
}
