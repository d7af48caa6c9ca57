package models

// Portal data tabs that carry indicator tables on a country page
const (
	TabElectricity = "electricity"
	TabEnergy      = "energy"
)

// Selection identifies one portal indicator to extract for every country,
// together with the fixed classification stored on its records
type Selection struct {
	Metric       string
	Unit         string // expected unit, used when the page does not state one
	Sector       string
	SubSector    string
	SubSubSector string
	Tab          string // portal data tab the indicator renders under
	RowLabel     string // row heading as rendered on the portal; empty means Metric
}

// Label is the row heading to look for in the rendered tables
func (s Selection) Label() string {
	if s.RowLabel != "" {
		return s.RowLabel
	}
	return s.Metric
}

// ItemName returns the metric name, qualified when selections share one
func (s Selection) ItemName() string {
	if s.SubSubSector != "" {
		return s.Metric + " (" + s.SubSubSector + ")"
	}
	return s.Metric
}

// catalog is the fixed set of indicators extracted per country; row labels
// track the portal's wording where it differs from the stored metric name
var catalog = []Selection{
	{
		Metric: "Electricity access", Unit: "%",
		Sector: "Electricity", SubSector: "Access", SubSubSector: "National",
		Tab: TabElectricity, RowLabel: "Access to electricity",
	},
	{
		Metric: "Electricity access", Unit: "%",
		Sector: "Electricity", SubSector: "Access", SubSubSector: "Urban",
		Tab: TabElectricity, RowLabel: "Access to electricity (urban)",
	},
	{
		Metric: "Electricity access", Unit: "%",
		Sector: "Electricity", SubSector: "Access", SubSubSector: "Rural",
		Tab: TabElectricity, RowLabel: "Access to electricity (rural)",
	},
	{
		Metric: "Electricity generation", Unit: "GWh",
		Sector: "Electricity", SubSector: "Supply", SubSubSector: "",
		Tab: TabElectricity,
	},
	{
		Metric: "Installed generation capacity", Unit: "MW",
		Sector: "Electricity", SubSector: "Supply", SubSubSector: "",
		Tab: TabElectricity, RowLabel: "Installed capacity",
	},
	{
		Metric: "Transmission and distribution losses", Unit: "%",
		Sector: "Electricity", SubSector: "Supply", SubSubSector: "Losses",
		Tab: TabElectricity,
	},
	{
		Metric: "Electricity consumption", Unit: "GWh",
		Sector: "Electricity", SubSector: "Demand", SubSubSector: "",
		Tab: TabElectricity,
	},
	{
		Metric: "Electricity consumption per capita", Unit: "kWh per capita",
		Sector: "Electricity", SubSector: "Demand", SubSubSector: "Per capita",
		Tab: TabElectricity,
	},
	{
		Metric: "Electricity imports", Unit: "GWh",
		Sector: "Electricity", SubSector: "Trade", SubSubSector: "Imports",
		Tab: TabElectricity,
	},
	{
		Metric: "Electricity exports", Unit: "GWh",
		Sector: "Electricity", SubSector: "Trade", SubSubSector: "Exports",
		Tab: TabElectricity,
	},
	{
		Metric: "Clean cooking access", Unit: "%",
		Sector: "Energy", SubSector: "Access", SubSubSector: "",
		Tab: TabEnergy, RowLabel: "Access to clean cooking",
	},
	{
		Metric: "Renewable energy share", Unit: "%",
		Sector: "Energy", SubSector: "Renewables", SubSubSector: "",
		Tab: TabEnergy, RowLabel: "Renewable energy share of final consumption",
	},
	{
		Metric: "CO2 emissions from fuel combustion", Unit: "kt",
		Sector: "Energy", SubSector: "Emissions", SubSubSector: "",
		Tab: TabEnergy, RowLabel: "CO2 emissions",
	},
}

// Catalog returns the fixed indicator selections in extraction order
func Catalog() []Selection {
	out := make([]Selection, len(catalog))
	copy(out, catalog)
	return out
}

// PortalTabs returns the distinct tabs the catalog draws from, in
// first-use order
func PortalTabs() []string {
	var tabs []string
	seen := make(map[string]bool)
	for _, s := range catalog {
		if !seen[s.Tab] {
			seen[s.Tab] = true
			tabs = append(tabs, s.Tab)
		}
	}
	return tabs
}
