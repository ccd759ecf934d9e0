package domain

// Grouped tallies. Null categories (no priority, no work type) are omitted.

type ControlCounts struct {
	ByType     map[ControlType]int   `json:"byType"`
	ByPriority map[Priority]int      `json:"byPriority"`
	ByStatus   map[ControlStatus]int `json:"byStatus"`
}

func NewControlCounts() ControlCounts {
	return ControlCounts{
		ByType:     map[ControlType]int{},
		ByPriority: map[Priority]int{},
		ByStatus:   map[ControlStatus]int{},
	}
}

type WorkItemCounts struct {
	ByStatus map[WorkStatus]int `json:"byStatus"`
	ByType   map[WorkType]int   `json:"byType"`
}

func NewWorkItemCounts() WorkItemCounts {
	return WorkItemCounts{
		ByStatus: map[WorkStatus]int{},
		ByType:   map[WorkType]int{},
	}
}

// WorkDashboard is the aggregated view both front ends serialize as is.
type WorkDashboard struct {
	ResilienceBacklog ResilienceBacklog `json:"resilienceBacklog"`
	IncidentWork      IncidentWork      `json:"incidentWork"`
	ReadinessTrends   []ReadinessTrend  `json:"readinessTrends"`
	Summary           DashboardSummary  `json:"summary"`
}

type ResilienceBacklog struct {
	Controls        []Control             `json:"controls"`
	CountByType     map[ControlType]int   `json:"countByType"`
	CountByPriority map[Priority]int      `json:"countByPriority"`
	CountByStatus   map[ControlStatus]int `json:"countByStatus"`
}

type IncidentWork struct {
	WorkItems     []WorkItem         `json:"workItems"`
	CountByStatus map[WorkStatus]int `json:"countByStatus"`
	CountByType   map[WorkType]int   `json:"countByType"`
}

type DashboardSummary struct {
	TotalControls     int     `json:"totalControls"`
	TotalWorkItems    int     `json:"totalWorkItems"`
	ServicesTracked   int     `json:"servicesTracked"`
	AvgReadinessScore float64 `json:"avgReadinessScore"`
}
