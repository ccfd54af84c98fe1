package models

// Measure is one response action inside a playbook. SeverityMin gates
// visibility: the measure surfaces only at that severity or above.
type Measure struct {
	Priority    int     `json:"priority"`
	Action      string  `json:"action"`
	Owner       string  `json:"owner"`
	SLAHours    float64 `json:"sla_hours"`
	SeverityMin string  `json:"severity_min"`
}

// Playbook is the static response catalog for one hazard type
// (fire, quake or combined). Never mutated by the dashboard.
type Playbook struct {
	Name      string    `json:"name"`
	Color     string    `json:"color"`
	Icon      string    `json:"icon"`
	Measures  []Measure `json:"measures"`
	Checklist []string  `json:"checklist"`
}
