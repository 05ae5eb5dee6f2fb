package model

import (
	"fmt"
	"time"
)

// Status values shared by participants, meters, pushes and properties.
const (
	StatusSuccess = "success"
	StatusWarning = "warning"
	StatusDanger  = "danger"
	StatusError   = "error"
)

// ParticipantConfigFile is the participant definition inside each participant bucket.
const ParticipantConfigFile = "config/participant.xml"

// Participant is the per-bucket view-model assembled from configuration files,
// storage listings and warehouse queries.
type Participant struct {
	Idx        string     `json:"idx"`
	Number     int        `json:"number"`
	Env        string     `json:"env"`
	Bucket     string     `json:"bucket"`
	Admin      bool       `json:"admin"`
	Name       string     `json:"name"`
	Status     string     `json:"status"`
	Validation []string   `json:"validation"`
	FileName   string     `json:"file_name"`
	Meters     []Meter    `json:"meters"`
	Pushes     []Push     `json:"pushes"`
	Properties []Property `json:"properties"`
	Codes      []Code     `json:"codes"`
}

// BucketName returns the participant bucket for a project.
func BucketName(project string, number int) string {
	return fmt.Sprintf("%s_participant_%d", project, number)
}

// NewParticipant returns an unmodelled participant stub for a project and grant.
func NewParticipant(project string, g Grant) *Participant {
	bucket := BucketName(project, g.Number)
	return &Participant{
		Idx:        bucket,
		Number:     g.Number,
		Env:        project,
		Bucket:     bucket,
		Admin:      g.IsAdmin(),
		Status:     StatusSuccess,
		Validation: []string{},
		FileName:   ParticipantConfigFile,
		Meters:     []Meter{},
		Pushes:     []Push{},
		Properties: []Property{},
		Codes:      []Code{},
	}
}

// Fail marks the participant as errored with a validation message.
func (p *Participant) Fail(msg string) {
	p.Status = StatusError
	p.Validation = append(p.Validation, msg)
}

// Code is a meter provider authorization file.
type Code struct {
	Name     string `json:"name"`
	BaseName string `json:"base_name"`
	Content  string `json:"content"`
}

// Meter is a meter definition together with the freshness of its standardized data.
type Meter struct {
	Idx                      string        `json:"idx"`
	Bucket                   string        `json:"bucket"`
	FileName                 string        `json:"file_name"`
	URI                      string        `json:"uri"`
	ShortURI                 string        `json:"short_uri"`
	Type                     string        `json:"type"`
	IconType                 string        `json:"icon_type"`
	UpdateFrequency          string        `json:"update_frequency"`
	StdFiles                 []DataFile    `json:"std_files"`
	LastStdUpdate            *time.Time    `json:"last_std_update,omitempty"`
	Duration                 time.Duration `json:"duration"`
	LastUpdateHours          int           `json:"last_update_hours"`
	LastUpdateHoursHumanized string        `json:"last_update_hours_humanized"`
	Status                   string        `json:"status"`
	Validation               []string      `json:"validation"`
	Haystack                 []string      `json:"haystack"`
}

// DataFile is a timestamp-named standardized data object.
type DataFile struct {
	BaseName string `json:"base_name"`
	Name     string `json:"name"`
	Bucket   string `json:"bucket"`
}

// MeterRef is a short description of a meter referenced by a push connector.
type MeterRef struct {
	MeterURI string `json:"meter_uri"`
	Type     string `json:"type"`
	IconType string `json:"icon_type"`
}

// Push is a connector whose data is pushed by the participant into its raw data location.
type Push struct {
	Idx           string     `json:"idx"`
	MeterURIs     []MeterRef `json:"meter_uris"`
	Timezone      string     `json:"timezone"`
	ConnectorName string     `json:"connector_name"`
	Description   string     `json:"description"`
	Bucket        string     `json:"bucket"`
	FileName      string     `json:"file_name"`
	Uploads       []string   `json:"uploads"`
	Validation    []string   `json:"validation"`
}

// Weight is a meter to property association from the warehouse.
type Weight struct {
	Type        string  `json:"type"`
	IconType    string  `json:"icon_type"`
	PropertyURI string  `json:"property_uri"`
	MeterURI    string  `json:"meter_uri"`
	Weight      float64 `json:"weight"`
}

// Point is a [unix millis, value] pair ready for time-series charts.
type Point [2]float64

// Property is a building with its warehouse weights and recent representative values.
type Property struct {
	Idx            string             `json:"idx"`
	URI            string             `json:"uri"`
	Status         string             `json:"status"`
	Validation     []string           `json:"validation"`
	Bucket         string             `json:"bucket"`
	FileName       string             `json:"file_name"`
	DashboardLink  string             `json:"dashboard_link"`
	Name           string             `json:"name"`
	Address        string             `json:"address"`
	GrossFloorArea string             `json:"gross_floor_area"`
	Haystack       []string           `json:"haystack"`
	Weights        []Weight           `json:"weights"`
	Series         map[string][]Point `json:"series"`
}

// Portal is the view-model returned to a signed-in user.
type Portal struct {
	Name         string        `json:"name"`
	Participants []Participant `json:"participants"`
	ChartTypes   []string      `json:"chart_types"`
	GeneratedAt  time.Time     `json:"generated_at"`
}
