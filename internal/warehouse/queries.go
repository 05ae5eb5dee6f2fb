package warehouse

import (
	"fmt"
	"regexp"
	"sort"
	"time"

	"cloud.google.com/go/civil"
)

// ChartQuery describes one representative-value series of a property.
type ChartQuery struct {
	Type   string
	View   string
	Column string
}

// ChartQueries lists the property views charted on the portal, in query order.
var ChartQueries = []ChartQuery{
	{Type: "Electricity", View: "portal_properties_electricity_view", Column: "electric"},
	{Type: "Occupancy", View: "portal_properties_occupancy_view", Column: "occupancy"},
	{Type: "Ambient_Temperature", View: "portal_properties_ambient_temperature_view", Column: "sum_temperature"},
	{Type: "Ambient_Wind_Direction", View: "portal_properties_ambient_wind_direction_view", Column: "sum_wind_direction"},
	{Type: "Ambient_Wind_Speed", View: "portal_properties_ambient_wind_speed_view", Column: "sum_wind_speed"},
	{Type: "Ambient_Humidity", View: "portal_properties_ambient_humidity_view", Column: "sum_humidity"},
	{Type: "Ambient_Cloud_Cover", View: "portal_properties_ambient_cloud_cover_view", Column: "sum_cloud_cover"},
	{Type: "Ambient_Dew_Point", View: "portal_properties_ambient_dew_point_view", Column: "sum_dew_point"},
	{Type: "Average_Grid_Emissions", View: "portal_properties_average_grid_emissions_view", Column: "sum_grid_emissions"},
	{Type: "Marginal_Grid_Emissions", View: "portal_properties_marginal_grid_emissions_view", Column: "sum_grid_emissions"},
}

// ChartTypes returns the chart type names sorted alphabetically.
func ChartTypes() []string {
	types := make([]string, 0, len(ChartQueries))
	for _, cq := range ChartQueries {
		types = append(types, cq.Type)
	}
	sort.Strings(types)
	return types
}

var datasetPattern = regexp.MustCompile(`^[A-Za-z0-9_]+$`)

// Catalog builds the portal queries against one dataset.
type Catalog struct {
	dataset string
}

// NewCatalog validates the dataset identifier; it is interpolated into table references.
func NewCatalog(dataset string) (Catalog, error) {
	if !datasetPattern.MatchString(dataset) {
		return Catalog{}, fmt.Errorf("invalid warehouse dataset %q", dataset)
	}
	return Catalog{dataset: dataset}, nil
}

// Weights selects the meter weights of a property.
func (c Catalog) Weights(propertyURI string) Query {
	return Query{
		SQL: fmt.Sprintf("SELECT *\nFROM `%s.portal_weights_view`\nWHERE property_uri = @property_uri\nORDER BY meter_uri ASC", c.dataset),
		Parameters: map[string]any{
			"property_uri": propertyURI,
		},
	}
}

// Series selects one chart series of a property between start and end inclusive.
// The views carry a DATETIME timestamp, so the bounds are bound as UTC civil times.
func (c Catalog) Series(cq ChartQuery, propertyURI string, start, end time.Time) Query {
	return Query{
		SQL: fmt.Sprintf("SELECT *\nFROM `%s.%s`\nWHERE property_uri = @property_uri\n  AND timestamp BETWEEN @start AND @end\nORDER BY timestamp DESC", c.dataset, cq.View),
		Parameters: map[string]any{
			"property_uri": propertyURI,
			"start":        civil.DateTimeOf(start.UTC()),
			"end":          civil.DateTimeOf(end.UTC()),
		},
	}
}

// AssignedProperties selects the property URIs owned by the given participants.
func (c Catalog) AssignedProperties(participants []int) Query {
	ids := make([]int64, 0, len(participants))
	for _, n := range participants {
		ids = append(ids, int64(n))
	}
	return Query{
		SQL: fmt.Sprintf("SELECT property_uri\nFROM `%s.properties`\nWHERE ref_participant_id IN UNNEST(@participants)", c.dataset),
		Parameters: map[string]any{
			"participants": ids,
		},
	}
}
