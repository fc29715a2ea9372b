package viewmodel

import "github.com/ManuelReschke/RechargeFox/internal/pkg/recharge"

// Tab is one entry of the plan tab bar.
type Tab struct {
	Label  string
	Active bool
}

// PlansPage is everything the plans view renders.
type PlansPage struct {
	Layout
	Tabs      []Tab
	ActiveTab recharge.Category
	Plans     []recharge.Plan
	Total     int
	Phone     string
	// Fallback is set when the catalogue could not be fetched and the
	// default plans are shown instead.
	Fallback bool
}

// NewPlansPage selects the plans of the active tab from the full list.
func NewPlansPage(layout Layout, plans []recharge.Plan, active recharge.Category) PlansPage {
	tabs := make([]Tab, 0, len(recharge.Tabs))
	for _, t := range recharge.Tabs {
		tabs = append(tabs, Tab{Label: string(t), Active: t == active})
	}
	return PlansPage{
		Layout:    layout,
		Tabs:      tabs,
		ActiveTab: active,
		Plans:     recharge.FilterPlans(plans, active),
		Total:     len(plans),
	}
}

// Filtered is the number of plans under the active tab.
func (p PlansPage) Filtered() int {
	return len(p.Plans)
}
