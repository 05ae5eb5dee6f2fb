package configxml

import (
	"path"
	"strings"
)

// Location is a bucket/path pair carried as attributes.
type Location struct {
	Bucket string
	Path   string
}

func locationOf(n *Node) Location {
	return Location{Bucket: n.Attr("bucket"), Path: n.Attr("path")}
}

// PushConnector is a connector whose fetch strategy is a participant push.
// A connector with several push descriptions yields one value per description.
type PushConnector struct {
	Function        string
	Timezone        string
	Description     string
	MeterURIs       []string
	RawDataLocation Location
}

// ParticipantDoc is the content of config/participant.xml used by the portal.
type ParticipantDoc struct {
	Name         string
	Pushes       []PushConnector
	PropertyURIs []string
}

// Participant extracts the participant name, push connectors and property URIs.
func Participant(doc *Node) ParticipantDoc {
	out := ParticipantDoc{
		Name: doc.First("hbd:participant", "hbd:name").Text(),
	}

	for _, desc := range doc.Find("hbd:participant", "hbd:connectors", "hbd:connector", "hbd:fetchStrategy", "hbd:push", "hbd:description") {
		connector := desc.Closest("hbd:connector")
		pc := PushConnector{Description: desc.Text()}
		if connector != nil {
			pc.Function = connector.First("hbd:function").Text()
			pc.Timezone = connector.Child("hbd:timezone").Text()
			for _, m := range connector.ChildrenNamed("hbd:meterURI") {
				pc.MeterURIs = append(pc.MeterURIs, m.TrimmedText())
			}
			if loc := connector.Child("hbd:rawDataLocation"); loc != nil {
				pc.RawDataLocation = locationOf(loc)
			}
		}
		out.Pushes = append(out.Pushes, pc)
	}

	for _, p := range doc.Find("hbd:participant", "hbd:properties", "hbd:propertyURI") {
		out.PropertyURIs = append(out.PropertyURIs, p.TrimmedText())
	}
	return out
}

// MeterDoc is the content of a config/meter_*.xml file.
type MeterDoc struct {
	URI                 string
	Type                string
	UpdateFrequency     string
	MeteredDataLocation Location
	Haystack            []string
}

// Meter extracts the meter definition.
func Meter(doc *Node) MeterDoc {
	out := MeterDoc{
		URI:             doc.First("hbd:meterURI").Text(),
		Type:            MeterType(doc),
		UpdateFrequency: doc.First("hbd:updateFrequency").Text(),
		Haystack:        HaystackTags(doc, "hbd:meter", "hbd:tags", "haystack:haystack"),
	}
	if loc := doc.First("hbd:meteredDataLocation"); loc != nil {
		out.MeteredDataLocation = locationOf(loc)
	}
	return out
}

// MeterType returns the type of a meter document, used for connector meter summaries.
func MeterType(doc *Node) string {
	return doc.First("hbd:type").Text()
}

// PropertyDoc is the content of a property XML file.
type PropertyDoc struct {
	Name           string
	Address        string
	GrossFloorArea string
	Haystack       []string
}

// Property extracts the property name, address, floor area and haystack tags.
func Property(doc *Node) PropertyDoc {
	out := PropertyDoc{
		Name:           doc.First("espm:name").Text(),
		GrossFloorArea: doc.First("hbd:property", "espm:grossFloorArea", "espm:value").Text(),
		Haystack:       HaystackTags(doc, "hbd:property", "hbd:tags", "haystack:haystack"),
	}
	addr := doc.First("hbd:property", "espm:address")
	out.Address = strings.Join([]string{addr.Attr("address1"), addr.Attr("address2"), addr.Attr("city")}, ", ")
	return out
}

// HaystackTags renders the children of the first element matching path as "name: value".
func HaystackTags(doc *Node, path ...string) []string {
	tags := make([]string, 0)
	hs := doc.First(path...)
	if hs == nil {
		return tags
	}
	for _, c := range hs.Children {
		tags = append(tags, c.Name.Local+": "+c.Text())
	}
	return tags
}

// Basename strips directories and the last extension from an object name.
func Basename(name string) string {
	if i := strings.LastIndexAny(name, `/\`); i >= 0 {
		name = name[i+1:]
	}
	ext := path.Ext(name)
	return strings.TrimSuffix(name, ext)
}
