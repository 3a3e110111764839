package resolver

// Indicator is one entry of the national indicator catalog: a fixed mapping
// from a registered key to a canonical upstream series ID.
type Indicator struct {
	SeriesID string
	Title    string
}

// nationalIndicators covers the major national labor statistics: CPI, the
// household survey (LNS), nonfarm payrolls (CES), JOLTS, and PPI. All of
// these publish monthly.
var nationalIndicators = map[string]Indicator{
	// Consumer Price Index (CPI)
	"cpi-all-items":    {"CUUR0000SA0", "CPI - All Urban Consumers, All Items, US City Average"},
	"cpi-wage-earners": {"SUUR0000SA0", "CPI - All Urban Wage Earners, All Items, US City Average"},
	"cpi-food":         {"CUUR0000SAF1", "CPI - Food"},
	"cpi-shelter":      {"CUUR0000SAH1", "CPI - Shelter"},
	"cpi-new-vehicles": {"CUUR0000SETA01", "CPI - New Vehicles"},
	"cpi-used-cars":    {"CUUR0000SETB01", "CPI - Used Cars and Trucks"},
	"cpi-medical-care": {"CUUR0000SAM", "CPI - Medical Care"},
	"cpi-energy":       {"CUUR0000SA0E", "CPI - Energy"},

	// Employment / unemployment (household survey)
	"unemployment-rate":          {"LNS14000000", "Unemployment Rate"},
	"employment-level":           {"LNS12000000", "Employment Level"},
	"labor-force-level":          {"LNS11000000", "Civilian Labor Force Level"},
	"unemployment-level":         {"LNS13000000", "Unemployment Level"},
	"unemployment-rate-black":    {"LNS14000006", "Unemployment Rate - Black or African American"},
	"unemployment-rate-hispanic": {"LNS14000003", "Unemployment Rate - Hispanic or Latino"},
	"unemployment-rate-white":    {"LNS14000009", "Unemployment Rate - White"},

	// Nonfarm payrolls (Current Employment Statistics)
	"nonfarm-employment":                   {"CES0000000001", "Total Nonfarm Employment"},
	"private-employment":                   {"CES0500000001", "Total Private Employment"},
	"mining-logging-employment":            {"CES1000000001", "Mining and Logging Employment"},
	"construction-employment":              {"CES2000000001", "Construction Employment"},
	"manufacturing-employment":             {"CES3000000001", "Manufacturing Employment"},
	"trade-transport-utilities-employment": {"CES4000000001", "Trade, Transportation, and Utilities Employment"},
	"information-employment":               {"CES5000000001", "Information Employment"},
	"financial-activities-employment":      {"CES5500000001", "Financial Activities Employment"},
	"professional-business-employment":     {"CES6000000001", "Professional and Business Services Employment"},
	"education-health-employment":          {"CES6500000001", "Education and Health Services Employment"},
	"leisure-hospitality-employment":       {"CES7000000001", "Leisure and Hospitality Employment"},
	"other-services-employment":            {"CES8000000001", "Other Services Employment"},
	"government-employment":                {"CES9000000001", "Government Employment"},

	// Earnings
	"average-hourly-earnings": {"CES0500000003", "Average Hourly Earnings - Total Private"},

	// Job Openings and Labor Turnover (JOLTS)
	"job-openings": {"JTS000000000000000JOL", "Total Nonfarm Job Openings"},
	"hires":        {"JTS000000000000000HIL", "Total Nonfarm Hires"},
	"separations":  {"JTS000000000000000TSL", "Total Nonfarm Separations"},
	"quits":        {"JTS000000000000000QUL", "Total Nonfarm Quits"},

	// Producer Price Index (PPI)
	"ppi-finished-goods": {"WPUFD4", "PPI - Finished Goods"},
	"ppi-consumer-foods": {"WPUFD49104", "PPI - Finished Consumer Foods"},
	"ppi-energy-goods":   {"WPUFD49116", "PPI - Finished Energy Goods"},
}
